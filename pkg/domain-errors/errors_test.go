package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errCause = errors.New("connection reset")

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(errCause, CodeStoreFailure, "failed to record subscription")

	require.Error(t, err)
	assert.ErrorIs(t, err, errCause)
	assert.True(t, HasCode(err, CodeStoreFailure))
	assert.Equal(t, "failed to record subscription: connection reset", err.Error())
	assert.Equal(t, "failed to record subscription", Message(err))
}

func TestHasCodeThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("subscribe: %w", New(CodeHubFailure, "hub rejected subscription"))

	assert.True(t, HasCode(err, CodeHubFailure))
	assert.False(t, HasCode(err, CodeInternal))
	assert.Equal(t, CodeHubFailure, CodeOf(err))
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errCause))
	assert.False(t, Is(errCause, CodeInternal))
	assert.Empty(t, Message(errCause))
}
