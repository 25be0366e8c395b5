package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapFormatsCause(t *testing.T) {
	err := Wrap("invalid_input", "invalid BAC input", errors.New("ABV cannot exceed 1"))
	require.Equal(t, "invalid BAC input: ABV cannot exceed 1", err.Error())

	bare := Wrap("user_not_found", "user not found", nil)
	require.Equal(t, "user not found", bare.Error())
}

func TestIsCodeThroughWrapping(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("handler: %w", Wrap("store_error", "failed", cause))

	require.True(t, IsCode(err, "store_error"))
	require.False(t, IsCode(err, "invalid_input"))
	require.ErrorIs(t, err, cause)
	require.Equal(t, "", CodeOf(cause))
}
