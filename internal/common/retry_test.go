package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadencefin/cadence/internal/service"
)

func fastRetryOptions() service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestWithRetry(t *testing.T) {
	tests := []struct {
		name         string
		failures     int
		failWith     error
		wantErr      error
		wantAttempts int
	}{
		{
			name:         "succeeds first try",
			failures:     0,
			wantAttempts: 1,
		},
		{
			name:         "busy database recovers",
			failures:     2,
			failWith:     ErrBusy,
			wantAttempts: 3,
		},
		{
			name:         "non-retryable fails fast",
			failures:     3,
			failWith:     errors.New("constraint violation"),
			wantErr:      nil, // the operation's own error, checked below
			wantAttempts: 1,
		},
		{
			name:         "retryable exhausts attempts",
			failures:     5,
			failWith:     &RetryableError{Err: errors.New("flaky"), Retryable: true},
			wantErr:      ErrMaxRetries,
			wantAttempts: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := 0
			err := WithRetry(context.Background(), func() error {
				attempts++
				if attempts <= tt.failures {
					return tt.failWith
				}
				return nil
			}, fastRetryOptions())

			assert.Equal(t, tt.wantAttempts, attempts)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.failures >= tt.wantAttempts:
				// Gave up without retrying: the original error comes back.
				assert.Equal(t, tt.failWith, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestWithRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	err := WithRetry(ctx, func() error {
		attempts++
		cancel() // cancel while the first backoff is pending
		return ErrBusy
	}, service.RetryOptions{MaxAttempts: 5, InitialDelay: time.Minute})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts, "no further attempts after cancellation")
}

func TestWithRetry_DefaultsApplied(t *testing.T) {
	// Zero-valued options fall back to sane defaults instead of looping
	// forever or not at all.
	attempts := 0
	err := WithRetry(context.Background(), func() error {
		attempts++
		return nil
	}, service.RetryOptions{})

	assert.NoError(t, err)
	assert.Equal(t, 1, attempts)
}
