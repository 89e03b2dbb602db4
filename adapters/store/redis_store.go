package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/uaplabs/minidapps/core"
	"github.com/uaplabs/minidapps/ports"
)

// RedisStore is a Redis implementation of the NonceStore interface for
// deployments where the nonce table must survive restarts or be shared
// between instances.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a new Redis nonce store.
func NewRedisStore(client *redis.Client) ports.NonceStore {
	return &RedisStore{
		client: client,
		prefix: "minidapps:nonce:",
	}
}

// Put stores a nonce record under the lower-cased address. The 10 minute TTL
// is delegated to Redis key expiry.
func (s *RedisStore) Put(ctx context.Context, record core.NonceRecord) error {
	record.Address = strings.ToLower(record.Address)

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal nonce record: %w", err)
	}

	key := s.prefix + record.Address
	if err := s.client.Set(ctx, key, payload, 10*time.Minute).Err(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreOperation, err)
	}
	return nil
}

// GetAndDelete atomically consumes the record for an address.
func (s *RedisStore) GetAndDelete(ctx context.Context, address string, ttl time.Duration) (core.NonceRecord, error) {
	key := s.prefix + strings.ToLower(address)

	payload, err := s.client.GetDel(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return core.NonceRecord{}, core.ErrNonceMismatch
		}
		return core.NonceRecord{}, fmt.Errorf("%w: %v", core.ErrStoreOperation, err)
	}

	var record core.NonceRecord
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return core.NonceRecord{}, fmt.Errorf("failed to unmarshal nonce record: %w", err)
	}

	if time.Since(record.IssuedAt) > ttl {
		return core.NonceRecord{}, core.ErrNonceMismatch
	}
	return record, nil
}

// SweepExpired is a no-op: Redis evicts expired keys on its own.
func (s *RedisStore) SweepExpired(ctx context.Context, ttl time.Duration) error {
	return nil
}
