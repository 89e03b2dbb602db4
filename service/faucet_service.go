package service

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/uaplabs/minidapps/core"
	"github.com/uaplabs/minidapps/ports"
)

// ClaimSuccessMessage is returned alongside the transaction hash of a claim.
const ClaimSuccessMessage = "1,000,000 FAUCET tokens claimed successfully!"

// FaucetService forwards claim, transfer, approve, status and history
// requests to the deployed token contract. It is the only holder of the
// TransactionSigner capability.
type FaucetService struct {
	reader   ports.ChainReader
	signer   ports.TransactionSigner
	eventPub ports.EventPublisher
	log      *zap.Logger

	contractAddress string
	chainID         int64
}

// NewFaucetService creates a new faucet gateway service.
func NewFaucetService(
	reader ports.ChainReader,
	signer ports.TransactionSigner,
	eventPub ports.EventPublisher,
	log *zap.Logger,
	contractAddress string,
	chainID int64,
) *FaucetService {
	return &FaucetService{
		reader:          reader,
		signer:          signer,
		eventPub:        eventPub,
		log:             log,
		contractAddress: contractAddress,
		chainID:         chainID,
	}
}

// Status returns the claim flag, balance and claimant list for an address.
// Callers may only inspect their own address.
func (s *FaucetService) Status(ctx context.Context, caller, address string) (*core.FaucetStatus, error) {
	if !common.IsHexAddress(address) {
		return nil, core.NewValidationError("address", "invalid ethereum address")
	}
	if !strings.EqualFold(caller, address) {
		return nil, core.ErrForbidden
	}

	hasClaimed, err := s.reader.HasClaimed(ctx, address)
	if err != nil {
		return nil, err
	}
	balance, err := s.reader.BalanceOf(ctx, address)
	if err != nil {
		return nil, err
	}
	users, err := s.reader.FaucetUsers(ctx)
	if err != nil {
		return nil, err
	}

	return &core.FaucetStatus{
		HasClaimed: hasClaimed,
		Balance:    balance.String(),
		Users:      users,
	}, nil
}

// Claim submits a claim transaction for the caller unless the contract
// already marks the address as claimed. The transaction is signed by the
// service's own key, not the caller's.
func (s *FaucetService) Claim(ctx context.Context, caller string) (string, error) {
	hasClaimed, err := s.reader.HasClaimed(ctx, caller)
	if err != nil {
		return "", err
	}
	if hasClaimed {
		return "", core.ErrAlreadyClaimed
	}

	txHash, err := s.signer.Claim(ctx)
	if err != nil {
		return "", err
	}

	if err := s.eventPub.PublishClaim(ctx, strings.ToLower(caller), txHash); err != nil {
		s.log.Warn("failed to publish claim event", zap.Error(err))
	}

	return txHash, nil
}

// Transfer moves tokens from the service account to a recipient after
// checking the caller's balance covers the amount.
func (s *FaucetService) Transfer(ctx context.Context, caller, to, amount string) (string, error) {
	if !common.IsHexAddress(to) {
		return "", core.NewValidationError("toAddress", "invalid ethereum address")
	}
	scaled, err := scaleAmount(amount)
	if err != nil {
		return "", err
	}

	balance, err := s.reader.BalanceOf(ctx, caller)
	if err != nil {
		return "", err
	}
	if balance.Cmp(scaled) < 0 {
		return "", core.ErrInsufficientBalance
	}

	return s.signer.Transfer(ctx, to, scaled)
}

// Approve grants a spender an allowance. No balance check, matching the
// ERC-20 approve semantics.
func (s *FaucetService) Approve(ctx context.Context, spender, amount string) (string, error) {
	if !common.IsHexAddress(spender) {
		return "", core.NewValidationError("spenderAddress", "invalid ethereum address")
	}
	scaled, err := scaleAmount(amount)
	if err != nil {
		return "", err
	}

	return s.signer.Approve(ctx, spender, scaled)
}

// History returns the raw Transfer log entries involving an address. Callers
// may only query their own history.
func (s *FaucetService) History(ctx context.Context, caller, address string) ([]core.TransferLog, error) {
	if address == "" {
		address = caller
	}
	if !common.IsHexAddress(address) {
		return nil, core.NewValidationError("address", "invalid ethereum address")
	}
	if !strings.EqualFold(caller, address) {
		return nil, core.ErrForbidden
	}

	return s.reader.TransferLogs(ctx, address)
}

// TransactionDetails fetches a transaction and classifies its outcome.
func (s *FaucetService) TransactionDetails(ctx context.Context, hash string) (*core.TxDetails, error) {
	if !isHexHash(hash) {
		return nil, core.NewValidationError("hash", "invalid transaction hash")
	}
	return s.reader.TransactionDetails(ctx, hash)
}

// Info returns the public description of the faucet. No authentication.
func (s *FaucetService) Info(ctx context.Context) (*core.FaucetInfo, error) {
	amount, err := s.reader.FaucetAmount(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.reader.FaucetUsers(ctx)
	if err != nil {
		return nil, err
	}

	return &core.FaucetInfo{
		ContractAddress: s.contractAddress,
		FaucetAmount:    amount.String(),
		TotalUsers:      len(users),
		Network:         networkName(s.chainID),
		ChainID:         s.chainID,
	}, nil
}

// scaleAmount converts a human-readable decimal amount to base units using
// the contract's fixed 18-decimal scale.
func scaleAmount(amount string) (*big.Int, error) {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, core.NewValidationError("amount", "must be a decimal number")
	}
	if !value.IsPositive() {
		return nil, core.NewValidationError("amount", "must be greater than zero")
	}

	scaled := value.Shift(core.TokenDecimals)
	if !scaled.IsInteger() {
		return nil, core.NewValidationError("amount", fmt.Sprintf("more than %d decimal places", core.TokenDecimals))
	}
	return scaled.BigInt(), nil
}

func networkName(chainID int64) string {
	switch chainID {
	case 1:
		return "Ethereum Mainnet"
	case 11155111:
		return "Sepolia Testnet"
	default:
		return fmt.Sprintf("Chain %d", chainID)
	}
}

func isHexHash(hash string) bool {
	if len(hash) != 66 || !strings.HasPrefix(hash, "0x") {
		return false
	}
	for _, r := range hash[2:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
