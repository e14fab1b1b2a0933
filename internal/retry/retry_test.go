package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_SucceedsAfterFailures(t *testing.T) {
	p := NewPolicy(3, time.Millisecond)

	calls := 0
	err := p.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestExecute_ReturnsLastError(t *testing.T) {
	p := NewPolicy(2, time.Millisecond)
	sentinel := errors.New("still down")

	calls := 0
	err := p.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return sentinel
	})

	assert.ErrorIs(t, err, sentinel)
	assert.Contains(t, err.Error(), "failed after 2 attempts")
	assert.Equal(t, 2, calls)
}

func TestExecute_StopsOnCancel(t *testing.T) {
	p := NewPolicy(5, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := p.Execute(ctx, func(ctx context.Context) error {
		calls++
		cancel()
		return errors.New("boom")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestNewPolicy_AtLeastOneAttempt(t *testing.T) {
	assert.Equal(t, 1, NewPolicy(0, time.Second).MaxAttempts())
}
