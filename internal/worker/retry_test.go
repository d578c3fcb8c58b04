package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fastRetries(t *testing.T) {
	t.Helper()
	prev := retryBaseDelay
	retryBaseDelay = time.Millisecond
	t.Cleanup(func() { retryBaseDelay = prev })
}

func TestWithRetry_SucceedsAfterTransientFailures(t *testing.T) {
	fastRetries(t)
	calls := 0
	attempts, err := withRetry(context.Background(), 3, func(int) error {
		calls++
		if calls < 3 {
			return errors.New("flaky")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestWithRetry_ExhaustsAttempts(t *testing.T) {
	fastRetries(t)
	boom := errors.New("boom")
	attempts, err := withRetry(context.Background(), 2, func(int) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, attempts)
}

func TestWithRetry_PermanentStopsImmediately(t *testing.T) {
	fastRetries(t)
	boom := errors.New("bad input")
	calls := 0
	attempts, err := withRetry(context.Background(), 5, func(int) error {
		calls++
		return Permanent(boom)
	})
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, attempts)
	assert.True(t, IsPermanent(err))
	assert.ErrorIs(t, err, boom)
}

func TestWithRetry_ContextCancelledDuringBackoff(t *testing.T) {
	prev := retryBaseDelay
	retryBaseDelay = time.Hour
	t.Cleanup(func() { retryBaseDelay = prev })

	ctx, cancel := context.WithCancel(context.Background())
	attempts, err := withRetry(ctx, 3, func(int) error {
		cancel()
		return errors.New("fail")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}

func TestPermanent_Nil(t *testing.T) {
	assert.NoError(t, Permanent(nil))
	assert.False(t, IsPermanent(errors.New("x")))
}
