package provider

import (
	"context"
	"errors"
	"testing"

	"pixfusion-be/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingAttempt(name string, calls *int, output string, err error) Attempt[string] {
	return Attempt[string]{
		Name: name,
		Invoke: func(ctx context.Context) (string, error) {
			*calls++
			return output, err
		},
	}
}

func TestRunChainPrimarySucceeds(t *testing.T) {
	var primary, secondary int
	attempts := []Attempt[string]{
		countingAttempt("a", &primary, "from-a", nil),
		countingAttempt("b", &secondary, "from-b", nil),
	}

	result, err := RunChain(context.Background(), nil, "test", attempts)
	require.NoError(t, err)
	assert.Equal(t, "from-a", result.Output)
	assert.Equal(t, "a", result.Provider)
	assert.False(t, result.FallbackUsed)
	// The secondary is never touched when the primary succeeds.
	assert.Equal(t, 1, primary)
	assert.Zero(t, secondary)
}

func TestRunChainAdvancesInOrder(t *testing.T) {
	var first, second, third int
	attempts := []Attempt[string]{
		countingAttempt("a", &first, "", errors.New("down")),
		countingAttempt("b", &second, "", errors.New("down")),
		countingAttempt("c", &third, "from-c", nil),
	}

	result, err := RunChain(context.Background(), nil, "test", attempts)
	require.NoError(t, err)
	assert.Equal(t, "from-c", result.Output)
	assert.Equal(t, "c", result.Provider)
	assert.True(t, result.FallbackUsed)

	// Each failed provider is attempted exactly once.
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
	assert.Equal(t, 1, third)
}

func TestRunChainAllFail(t *testing.T) {
	var calls int
	attempts := []Attempt[string]{
		countingAttempt("a", &calls, "", errors.New("down")),
		countingAttempt("b", &calls, "", errors.New("down")),
	}

	result, err := RunChain(context.Background(), nil, "test", attempts)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperror.ErrAllProvidersExhausted)
	assert.Equal(t, 2, calls)
}

func TestRunChainEmpty(t *testing.T) {
	result, err := RunChain[string](context.Background(), nil, "test", nil)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperror.ErrAllProvidersExhausted)
}
