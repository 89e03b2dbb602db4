package ports

import (
	"context"
	"math/big"

	"github.com/uaplabs/minidapps/core"
)

// ChainReader exposes the view side of the faucet token contract plus raw
// transaction lookups. Nothing here can mutate chain state.
type ChainReader interface {
	// HasClaimed reports the per-address claim flag stored by the contract.
	HasClaimed(ctx context.Context, address string) (bool, error)

	// BalanceOf returns the on-chain token balance in base units.
	BalanceOf(ctx context.Context, address string) (*big.Int, error)

	// FaucetUsers lists every address that has claimed.
	FaucetUsers(ctx context.Context) ([]string, error)

	// FaucetAmount returns the fixed claim amount in base units.
	FaucetAmount(ctx context.Context) (*big.Int, error)

	// TransferLogs returns Transfer events involving the address, from the
	// earliest block to the latest.
	TransferLogs(ctx context.Context, address string) ([]core.TransferLog, error)

	// TransactionDetails fetches a transaction and its receipt by hash.
	TransactionDetails(ctx context.Context, hash string) (*core.TxDetails, error)
}

// TransactionSigner is the narrow capability to submit state-changing calls
// signed with the service's own key. Only the faucet service holds it.
type TransactionSigner interface {
	// Claim submits claimTokens() and returns the transaction hash.
	Claim(ctx context.Context) (string, error)

	// Transfer submits transfer(to, amount) and returns the transaction hash.
	Transfer(ctx context.Context, to string, amount *big.Int) (string, error)

	// Approve submits approve(spender, amount) and returns the transaction hash.
	Approve(ctx context.Context, spender string, amount *big.Int) (string, error)
}
