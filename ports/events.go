package ports

import "context"

// EventPublisher notifies other instances about auth and faucet activity.
type EventPublisher interface {
	// PublishLogin publishes a successful sign-in for an address.
	PublishLogin(ctx context.Context, address string) error

	// PublishClaim publishes a submitted faucet claim transaction.
	PublishClaim(ctx context.Context, address, txHash string) error
}
