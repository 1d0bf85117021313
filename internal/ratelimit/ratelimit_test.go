package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleRateLimiter_Wait(t *testing.T) {
	t.Run("first call does not block", func(t *testing.T) {
		limiter := NewSimpleRateLimiter(time.Second, 2*time.Second)

		start := time.Now()
		err := limiter.Wait(context.Background())
		require.NoError(t, err)

		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("second call is spaced by at least the minimum delay", func(t *testing.T) {
		limiter := NewSimpleRateLimiter(50*time.Millisecond, 50*time.Millisecond)

		require.NoError(t, limiter.Wait(context.Background()))

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background()))

		assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
	})

	t.Run("cancelled context aborts the wait", func(t *testing.T) {
		limiter := NewSimpleRateLimiter(10*time.Second, 10*time.Second)

		require.NoError(t, limiter.Wait(context.Background()))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := limiter.Wait(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestAdaptiveRateLimiter_Backoff(t *testing.T) {
	t.Run("repeated errors widen the window", func(t *testing.T) {
		limiter := NewAdaptiveRateLimiter(2*time.Second, 10*time.Second)

		limiter.RecordError()
		limiter.RecordError()
		limiter.RecordError()

		assert.Equal(t, 3*time.Second, limiter.minDelay)
		assert.Equal(t, 15*time.Second, limiter.maxDelay)
	})

	t.Run("a success resets the error streak", func(t *testing.T) {
		limiter := NewAdaptiveRateLimiter(2*time.Second, 10*time.Second)

		limiter.RecordError()
		limiter.RecordError()
		limiter.RecordSuccess()
		limiter.RecordError()

		assert.Equal(t, 2*time.Second, limiter.minDelay)
	})

	t.Run("sustained success tightens the minimum down to a floor", func(t *testing.T) {
		limiter := NewAdaptiveRateLimiter(2*time.Second, 10*time.Second)

		for i := 0; i < 60; i++ {
			limiter.RecordSuccess()
		}

		assert.GreaterOrEqual(t, limiter.minDelay, time.Second)
		assert.Less(t, limiter.minDelay, 2*time.Second)
	})

	t.Run("backoff is capped", func(t *testing.T) {
		limiter := NewAdaptiveRateLimiter(50*time.Second, 110*time.Second)

		for i := 0; i < 9; i++ {
			limiter.RecordError()
		}

		assert.LessOrEqual(t, limiter.minDelay, 60*time.Second)
		assert.LessOrEqual(t, limiter.maxDelay, 120*time.Second)
	})
}
