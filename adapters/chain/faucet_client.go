// Package chain adapts the faucet token contract behind the ChainReader and
// TransactionSigner ports using a go-ethereum RPC client.
package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/uaplabs/minidapps/core"
)

// FaucetClient talks to the deployed FaucetToken contract. Reads go through
// eth_call, writes are signed with the service's own key.
type FaucetClient struct {
	client   *ethclient.Client
	contract *bind.BoundContract
	abi      abi.ABI
	address  common.Address
	key      *ecdsa.PrivateKey
	chainID  *big.Int
}

// NewFaucetClient dials the RPC endpoint and binds the contract.
func NewFaucetClient(rpcURL, contractAddress, privateKeyHex string, chainID int64) (*FaucetClient, error) {
	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial rpc endpoint: %w", err)
	}

	parsed, err := abi.JSON(strings.NewReader(faucetTokenABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse contract abi: %w", err)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse service key: %w", err)
	}

	address := common.HexToAddress(contractAddress)
	contract := bind.NewBoundContract(address, parsed, client, client, client)

	return &FaucetClient{
		client:   client,
		contract: contract,
		abi:      parsed,
		address:  address,
		key:      key,
		chainID:  big.NewInt(chainID),
	}, nil
}

// Close releases the underlying RPC connection.
func (c *FaucetClient) Close() {
	c.client.Close()
}

// HasClaimed reports the per-address claim flag stored by the contract.
func (c *FaucetClient) HasClaimed(ctx context.Context, address string) (bool, error) {
	var out []interface{}
	err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "hasAddressClaimed", common.HexToAddress(address))
	if err != nil {
		return false, &core.UpstreamError{Op: "hasAddressClaimed", Err: err}
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

// BalanceOf returns the token balance of an address in base units.
func (c *FaucetClient) BalanceOf(ctx context.Context, address string) (*big.Int, error) {
	var out []interface{}
	err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "balanceOf", common.HexToAddress(address))
	if err != nil {
		return nil, &core.UpstreamError{Op: "balanceOf", Err: err}
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// FaucetUsers lists every address that has claimed from the faucet.
func (c *FaucetClient) FaucetUsers(ctx context.Context) ([]string, error) {
	var out []interface{}
	err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getFaucetUsers")
	if err != nil {
		return nil, &core.UpstreamError{Op: "getFaucetUsers", Err: err}
	}

	addresses := *abi.ConvertType(out[0], new([]common.Address)).(*[]common.Address)
	users := make([]string, len(addresses))
	for i, addr := range addresses {
		users[i] = addr.Hex()
	}
	return users, nil
}

// FaucetAmount returns the fixed claim amount in base units.
func (c *FaucetClient) FaucetAmount(ctx context.Context) (*big.Int, error) {
	var out []interface{}
	err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getFaucetAmount")
	if err != nil {
		return nil, &core.UpstreamError{Op: "getFaucetAmount", Err: err}
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// Claim submits claimTokens() signed by the service key.
func (c *FaucetClient) Claim(ctx context.Context) (string, error) {
	return c.transact(ctx, "claimTokens")
}

// Transfer submits transfer(to, amount) signed by the service key.
func (c *FaucetClient) Transfer(ctx context.Context, to string, amount *big.Int) (string, error) {
	return c.transact(ctx, "transfer", common.HexToAddress(to), amount)
}

// Approve submits approve(spender, amount) signed by the service key.
func (c *FaucetClient) Approve(ctx context.Context, spender string, amount *big.Int) (string, error) {
	return c.transact(ctx, "approve", common.HexToAddress(spender), amount)
}

func (c *FaucetClient) transact(ctx context.Context, method string, params ...interface{}) (string, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(c.key, c.chainID)
	if err != nil {
		return "", fmt.Errorf("failed to build transactor: %w", err)
	}
	opts.Context = ctx

	tx, err := c.contract.Transact(opts, method, params...)
	if err != nil {
		return "", &core.UpstreamError{Op: method, Err: err}
	}
	return tx.Hash().Hex(), nil
}

// TransferLogs returns Transfer events involving the address, earliest to
// latest. A topic filter cannot express "from OR to", so the log is queried
// once per side and merged.
func (c *FaucetClient) TransferLogs(ctx context.Context, address string) ([]core.TransferLog, error) {
	transferTopic := c.abi.Events["Transfer"].ID
	addrTopic := common.BytesToHash(common.HexToAddress(address).Bytes())

	queries := []ethereum.FilterQuery{
		{
			FromBlock: big.NewInt(0),
			Addresses: []common.Address{c.address},
			Topics:    [][]common.Hash{{transferTopic}, {addrTopic}},
		},
		{
			FromBlock: big.NewInt(0),
			Addresses: []common.Address{c.address},
			Topics:    [][]common.Hash{{transferTopic}, nil, {addrTopic}},
		},
	}

	seen := make(map[string]bool)
	var entries []core.TransferLog
	for _, query := range queries {
		logs, err := c.client.FilterLogs(ctx, query)
		if err != nil {
			return nil, &core.UpstreamError{Op: "eth_getLogs", Err: err}
		}
		for _, entry := range logs {
			key := fmt.Sprintf("%s:%d", entry.TxHash.Hex(), entry.Index)
			if seen[key] || len(entry.Topics) < 3 {
				continue
			}
			seen[key] = true
			entries = append(entries, core.TransferLog{
				TxHash:      entry.TxHash.Hex(),
				BlockNumber: entry.BlockNumber,
				From:        common.BytesToAddress(entry.Topics[1].Bytes()).Hex(),
				To:          common.BytesToAddress(entry.Topics[2].Bytes()).Hex(),
				Value:       new(big.Int).SetBytes(entry.Data).String(),
			})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].BlockNumber < entries[j].BlockNumber
	})
	return entries, nil
}

// TransactionDetails fetches a transaction and its receipt by hash and
// classifies the outcome.
func (c *FaucetClient) TransactionDetails(ctx context.Context, hash string) (*core.TxDetails, error) {
	txHash := common.HexToHash(hash)

	tx, isPending, err := c.client.TransactionByHash(ctx, txHash)
	if err != nil {
		return nil, &core.UpstreamError{Op: "eth_getTransactionByHash", Err: err}
	}

	details := &core.TxDetails{
		Hash:   tx.Hash().Hex(),
		Value:  tx.Value().String(),
		Nonce:  tx.Nonce(),
		Status: core.TxStatusPending,
	}
	if to := tx.To(); to != nil {
		details.To = to.Hex()
	}
	if from, err := types.Sender(types.LatestSignerForChainID(c.chainID), tx); err == nil {
		details.From = from.Hex()
	}

	if isPending {
		return details, nil
	}

	receipt, err := c.client.TransactionReceipt(ctx, txHash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return details, nil
		}
		return nil, &core.UpstreamError{Op: "eth_getTransactionReceipt", Err: err}
	}

	details.GasUsed = receipt.GasUsed
	details.BlockNum = receipt.BlockNumber
	if receipt.Status == types.ReceiptStatusSuccessful {
		details.Status = core.TxStatusConfirmed
	} else {
		details.Status = core.TxStatusFailed
	}
	return details, nil
}
