package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterBlocksAfterBudget(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)

	assert.True(t, rl.limiter("1.2.3.4").Allow())
	assert.True(t, rl.limiter("1.2.3.4").Allow())
	assert.False(t, rl.limiter("1.2.3.4").Allow())

	// Budgets are per client.
	assert.True(t, rl.limiter("5.6.7.8").Allow())
}

func TestRateLimiterPrunesIdleClients(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	rl.limiter("1.2.3.4")
	rl.limiter("5.6.7.8")

	rl.mu.Lock()
	rl.clients["1.2.3.4"].lastSeen = time.Now().Add(-2 * time.Minute)
	rl.mu.Unlock()

	rl.PruneIdle(time.Minute)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.clients, "1.2.3.4")
	assert.Contains(t, rl.clients, "5.6.7.8")
}
