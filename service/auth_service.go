package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	siwe "github.com/spruceid/siwe-go"
	"go.uber.org/zap"

	"github.com/uaplabs/minidapps/core"
	"github.com/uaplabs/minidapps/ports"
)

const (
	// NonceTTL is how long an issued nonce stays valid for one sign-in.
	NonceTTL = 10 * time.Minute

	// SessionTTL is the lifetime of an issued bearer token.
	SessionTTL = 24 * time.Hour

	siweStatement = "Sign in with Ethereum to access the Faucet DApp."
)

// AuthService issues sign-in challenges and exchanges verified signatures
// for bearer session tokens.
type AuthService struct {
	nonces    ports.NonceStore
	tokenizer ports.Tokenizer
	eventPub  ports.EventPublisher
	log       *zap.Logger

	domain  string
	uri     string
	chainID int
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	nonces ports.NonceStore,
	tokenizer ports.Tokenizer,
	eventPub ports.EventPublisher,
	log *zap.Logger,
	domain, uri string,
	chainID int64,
) *AuthService {
	return &AuthService{
		nonces:    nonces,
		tokenizer: tokenizer,
		eventPub:  eventPub,
		log:       log,
		domain:    domain,
		uri:       uri,
		chainID:   int(chainID),
	}
}

// IssueMessage generates a fresh nonce for the address, stores it keyed by
// the lower-cased address (overwriting any prior unused nonce), and returns
// the EIP-4361 message to sign together with the nonce.
func (s *AuthService) IssueMessage(ctx context.Context, address string) (string, string, error) {
	if !common.IsHexAddress(address) {
		return "", "", core.NewValidationError("address", "invalid ethereum address")
	}

	nonce := siwe.GenerateNonce()

	record := core.NonceRecord{
		Address:  strings.ToLower(address),
		Nonce:    nonce,
		IssuedAt: time.Now(),
	}
	if err := s.nonces.Put(ctx, record); err != nil {
		return "", "", fmt.Errorf("failed to store nonce: %w", err)
	}

	message, err := siwe.InitMessage(s.domain, common.HexToAddress(address).Hex(), s.uri, nonce, map[string]interface{}{
		"statement": siweStatement,
		"chainId":   s.chainID,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to build sign-in message: %w", err)
	}

	return message.String(), nonce, nil
}

// SignIn verifies a signed message against the stored nonce and issues a
// 24h bearer token bound to the recovered address.
func (s *AuthService) SignIn(ctx context.Context, message, signature string) (*core.SignInResult, error) {
	siweMessage, err := siwe.ParseMessage(message)
	if err != nil {
		return nil, core.ErrInvalidMessage
	}

	// Signature must recover to the address embedded in the message.
	if _, err := siweMessage.Verify(signature, nil, nil, nil); err != nil {
		return nil, core.ErrInvalidSignature
	}

	address := strings.ToLower(siweMessage.GetAddress().Hex())

	// Single use: the stored nonce is consumed here regardless of match.
	record, err := s.nonces.GetAndDelete(ctx, address, NonceTTL)
	if err != nil {
		return nil, err
	}
	if record.Nonce != siweMessage.GetNonce() {
		return nil, core.ErrNonceMismatch
	}

	now := time.Now()
	session := &core.Session{
		ID:        uuid.New().String(),
		Address:   address,
		IssuedAt:  now,
		ExpiresAt: now.Add(SessionTTL),
	}

	token, err := s.tokenizer.SessionToToken(session)
	if err != nil {
		return nil, fmt.Errorf("failed to create token: %w", err)
	}

	if err := s.eventPub.PublishLogin(ctx, address); err != nil {
		// The sign-in itself succeeded; a missed event is not fatal.
		s.log.Warn("failed to publish login event", zap.Error(err))
	}

	return &core.SignInResult{Token: token, Address: address}, nil
}

// ValidateToken parses a bearer token and returns the session it encodes.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*core.Session, error) {
	return s.tokenizer.TokenToSession(token)
}

// SweepNonces removes expired nonces from the store. Scheduled by the
// process lifecycle, not by request handling.
func (s *AuthService) SweepNonces(ctx context.Context) {
	if err := s.nonces.SweepExpired(ctx, NonceTTL); err != nil {
		s.log.Warn("nonce sweep failed", zap.Error(err))
	}
}
