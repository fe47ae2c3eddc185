package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prath-way/boitech/internal/service"
)

func fastRetry(attempts int) service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Millisecond,
	}
}

func TestWithRetry_SucceedsAfterTransientFailure(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		if calls < 2 {
			return ErrWeatherUnavailable
		}
		return nil
	}, fastRetry(3))

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestWithRetry_StopsOnPermanentError(t *testing.T) {
	permanent := errors.New("schema corrupt")
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return permanent
	}, fastRetry(3))

	require.Error(t, err)
	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls, "a non-retryable error must not be retried")
}

func TestWithRetry_ExhaustsAttempts(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return ErrWeatherUnavailable
	}, fastRetry(3))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMaxRetries)
	assert.Equal(t, 3, calls)
}

func TestWithRetry_HonorsRetryableWrapper(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return &RetryableError{Err: errors.New("flaky write"), Retryable: true}
	}, fastRetry(2))

	require.Error(t, err)
	assert.Equal(t, 2, calls)

	calls = 0
	err = WithRetry(context.Background(), func() error {
		calls++
		return &RetryableError{Err: errors.New("bad request"), Retryable: false}
	}, fastRetry(2))

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrWeatherUnavailable))
	assert.True(t, IsRetryable(context.DeadlineExceeded))
	assert.True(t, IsRetryable(&RetryableError{Err: errors.New("x"), Retryable: true}))
	assert.False(t, IsRetryable(&RetryableError{Err: errors.New("x"), Retryable: false}))
	assert.False(t, IsRetryable(ErrInvalidLocation))
	assert.False(t, IsRetryable(errors.New("anything else")))
}

func TestUserError(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := NewUserError("could not reach the weather service", cause)

	assert.Contains(t, err.Error(), "could not reach the weather service")
	assert.ErrorIs(t, err, cause)

	bare := NewUserError("nothing to do", nil)
	assert.Equal(t, "nothing to do", bare.Error())
}
