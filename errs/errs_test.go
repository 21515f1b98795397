package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodeMapping(t *testing.T) {
	require.Zero(t, Code(nil))

	require.Equal(t, -1, Code(ErrInvalidArgument))
	require.Equal(t, -1, Code(ErrInvalidBlockSize))
	require.Equal(t, -1, Code(ErrUnimplementedFormat))
	require.Equal(t, -1, Code(ErrHeaderInit))
	require.Equal(t, -1, Code(ErrSampleOverflow))
	require.Equal(t, -2, Code(ErrCompress))
	require.Equal(t, -3, Code(ErrAlloc))
}

func TestCodeSeesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("packing record 3: %w", ErrCompress)
	require.Equal(t, -2, Code(wrapped))
	require.True(t, errors.Is(wrapped, ErrCompress))
}

func TestCodeUnrecognizedError(t *testing.T) {
	require.Equal(t, -1, Code(errors.New("something else")))
}
