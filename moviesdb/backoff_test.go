package moviesdb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackoffSchedule(t *testing.T) {
	p := BackoffPolicy{Base: time.Second, MaxRetries: 3, MaxDelay: 30 * time.Second}

	delay, ok := p.NextDelay(0, 429)
	require.True(t, ok)
	assert.Equal(t, time.Second, delay)

	delay, ok = p.NextDelay(1, 429)
	require.True(t, ok)
	assert.Equal(t, 2*time.Second, delay)

	delay, ok = p.NextDelay(2, 503)
	require.True(t, ok)
	assert.Equal(t, 4*time.Second, delay)

	_, ok = p.NextDelay(3, 429)
	assert.False(t, ok, "retry budget should be spent at the cap")
}

func TestBackoffMonotoneAndCapped(t *testing.T) {
	p := BackoffPolicy{Base: 250 * time.Millisecond, MaxRetries: 10, MaxDelay: 2 * time.Second}

	var prev time.Duration
	for attempt := 0; attempt < p.MaxRetries; attempt++ {
		delay, ok := p.NextDelay(attempt, 500)
		require.True(t, ok, "attempt %d", attempt)
		assert.GreaterOrEqual(t, delay, prev, "attempt %d", attempt)
		assert.LessOrEqual(t, delay, p.MaxDelay, "attempt %d", attempt)
		prev = delay
	}
}

func TestBackoffNonRetryableStatuses(t *testing.T) {
	p := DefaultBackoff()

	for _, status := range []int{400, 401, 403, 404, 422} {
		_, ok := p.NextDelay(0, status)
		assert.False(t, ok, "status %d must not be retried", status)
	}
}

func TestBackoffRetryableStatuses(t *testing.T) {
	p := DefaultBackoff()

	for _, status := range []int{0, 429, 500, 502, 503, 504} {
		_, ok := p.NextDelay(0, status)
		assert.True(t, ok, "status %d should be retried", status)
	}
}
