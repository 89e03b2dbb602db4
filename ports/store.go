package ports

import (
	"context"
	"time"

	"github.com/uaplabs/minidapps/core"
)

// NonceStore keeps single-use sign-in nonces keyed by lower-cased address.
type NonceStore interface {
	// Put stores a nonce record, overwriting any prior unused nonce for
	// the same address.
	Put(ctx context.Context, record core.NonceRecord) error

	// GetAndDelete consumes the record for an address. It returns
	// core.ErrNonceMismatch when no record exists or the record is older
	// than ttl.
	GetAndDelete(ctx context.Context, address string, ttl time.Duration) (core.NonceRecord, error)

	// SweepExpired removes records older than ttl.
	SweepExpired(ctx context.Context, ttl time.Duration) error
}
