package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uaplabs/minidapps/core"
)

func TestMemoryStore_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Put(ctx, core.NonceRecord{Address: "0xAbC", Nonce: "first", IssuedAt: time.Now()}))
	require.NoError(t, s.Put(ctx, core.NonceRecord{Address: "0xabc", Nonce: "second", IssuedAt: time.Now()}))

	record, err := s.GetAndDelete(ctx, "0xABC", 10*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "second", record.Nonce)
}

func TestMemoryStore_GetAndDeleteIsSingleUse(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Put(ctx, core.NonceRecord{Address: "0xabc", Nonce: "n", IssuedAt: time.Now()}))

	_, err := s.GetAndDelete(ctx, "0xabc", 10*time.Minute)
	require.NoError(t, err)

	_, err = s.GetAndDelete(ctx, "0xabc", 10*time.Minute)
	assert.ErrorIs(t, err, core.ErrNonceMismatch)
}

func TestMemoryStore_ExpiredRecordRejected(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Put(ctx, core.NonceRecord{
		Address:  "0xabc",
		Nonce:    "n",
		IssuedAt: time.Now().Add(-11 * time.Minute),
	}))

	_, err := s.GetAndDelete(ctx, "0xabc", 10*time.Minute)
	assert.ErrorIs(t, err, core.ErrNonceMismatch)
}

func TestMemoryStore_SweepExpired(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Put(ctx, core.NonceRecord{Address: "0xold", Nonce: "a", IssuedAt: time.Now().Add(-11 * time.Minute)}))
	require.NoError(t, s.Put(ctx, core.NonceRecord{Address: "0xnew", Nonce: "b", IssuedAt: time.Now()}))

	require.NoError(t, s.SweepExpired(ctx, 10*time.Minute))

	assert.Equal(t, 1, s.Len())
	_, err := s.GetAndDelete(ctx, "0xnew", 10*time.Minute)
	assert.NoError(t, err)
}
