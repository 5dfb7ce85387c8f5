package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewError(t *testing.T) {
	err := New(ErrConfig, "Invalid refresh interval", "Use a duration like 1s or 500ms")
	require.NotNil(t, err)
	assert.Equal(t, ErrConfig, err.Code)
	assert.Contains(t, err.Error(), "Invalid refresh interval")
	assert.Contains(t, err.Error(), "Use a duration like 1s or 500ms")
}

func TestWrapDefaultsToFetch(t *testing.T) {
	cause := fmt.Errorf("exec: nvidia-smi: exit status 9")
	err := Wrap(cause, "GPU process query failed")
	assert.Equal(t, ErrFetch, err.Code)
	assert.Contains(t, err.Error(), "exit status 9")
	assert.Equal(t, cause, stderrors.Unwrap(err))
}

func TestWrapWithCode(t *testing.T) {
	cause := fmt.Errorf("open /proc/swaps: permission denied")
	err := WrapWithCode(cause, ErrSource, "Cannot read swap devices", "Check /proc is mounted")
	assert.Equal(t, ErrSource, err.Code)
	assert.True(t, IsCode(err, ErrSource))
	assert.False(t, IsCode(err, ErrFetch))
}

func TestIsCode(t *testing.T) {
	assert.False(t, IsCode(nil, ErrConfig))
	assert.False(t, IsCode(fmt.Errorf("plain"), ErrConfig))

	wrapped := fmt.Errorf("outer: %w", New(ErrExec, "boom", ""))
	assert.True(t, IsCode(wrapped, ErrExec))
}
