package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/uaplabs/minidapps/ports"
)

const (
	// LoginTopic carries successful sign-in events.
	LoginTopic = "auth.login"

	// ClaimTopic carries submitted faucet claim transactions.
	ClaimTopic = "faucet.claimed"
)

// LoginEvent represents a successful sign-in.
type LoginEvent struct {
	Address  string    `json:"address"`
	SignedIn time.Time `json:"signed_in"`
}

// ClaimEvent represents a submitted faucet claim.
type ClaimEvent struct {
	Address string `json:"address"`
	TxHash  string `json:"tx_hash"`
}

// WatermillPublisher implements the EventPublisher interface using Watermill.
type WatermillPublisher struct {
	publisher message.Publisher
}

// NewWatermillPublisher creates a new Watermill publisher.
func NewWatermillPublisher(publisher message.Publisher) ports.EventPublisher {
	return &WatermillPublisher{publisher: publisher}
}

// PublishLogin publishes a sign-in event.
func (p *WatermillPublisher) PublishLogin(ctx context.Context, address string) error {
	return p.publish(LoginTopic, LoginEvent{Address: address, SignedIn: time.Now().UTC()})
}

// PublishClaim publishes a faucet claim event.
func (p *WatermillPublisher) PublishClaim(ctx context.Context, address, txHash string) error {
	return p.publish(ClaimTopic, ClaimEvent{Address: address, TxHash: txHash})
}

func (p *WatermillPublisher) publish(topic string, event interface{}) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(uuid.New().String(), payload)

	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// NopPublisher discards all events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishLogin(ctx context.Context, address string) error       { return nil }
func (NopPublisher) PublishClaim(ctx context.Context, address, txHash string) error { return nil }
