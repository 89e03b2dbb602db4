package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/uaplabs/minidapps/core"
	"github.com/uaplabs/minidapps/ports"
)

// MemoryStore is an in-memory implementation of the NonceStore interface.
type MemoryStore struct {
	nonces map[string]core.NonceRecord
	mu     sync.Mutex
}

// NewMemoryStore creates a new in-memory nonce store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nonces: make(map[string]core.NonceRecord),
	}
}

var _ ports.NonceStore = (*MemoryStore)(nil)

// Put stores a nonce record, overwriting any prior unused nonce for the address.
func (s *MemoryStore) Put(ctx context.Context, record core.NonceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.Address = strings.ToLower(record.Address)
	s.nonces[record.Address] = record
	return nil
}

// GetAndDelete consumes the record for an address. Records past their TTL are
// treated as absent even if the sweep has not run yet.
func (s *MemoryStore) GetAndDelete(ctx context.Context, address string, ttl time.Duration) (core.NonceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(address)
	record, ok := s.nonces[key]
	if !ok {
		return core.NonceRecord{}, core.ErrNonceMismatch
	}
	delete(s.nonces, key)

	if time.Since(record.IssuedAt) > ttl {
		return core.NonceRecord{}, core.ErrNonceMismatch
	}
	return record, nil
}

// SweepExpired removes records older than ttl.
func (s *MemoryStore) SweepExpired(ctx context.Context, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-ttl)
	for key, record := range s.nonces {
		if record.IssuedAt.Before(cutoff) {
			delete(s.nonces, key)
		}
	}
	return nil
}

// Len reports the number of stored nonces. Used in tests.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.nonces)
}
