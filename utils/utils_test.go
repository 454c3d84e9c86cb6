package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitReverse64(t *testing.T) {
	require.Equal(t, uint64(0), BitReverse64(0, 4))
	require.Equal(t, uint64(8), BitReverse64(1, 4))
	require.Equal(t, uint64(6), BitReverse64(6, 4))
	require.Equal(t, uint64(1), BitReverse64(4, 3))
	require.Equal(t, uint64(0), BitReverse64(0, 0))
}

func TestIsPowerOfTwo(t *testing.T) {
	require.True(t, IsPowerOfTwo(1))
	require.True(t, IsPowerOfTwo(1024))
	require.False(t, IsPowerOfTwo(0))
	require.False(t, IsPowerOfTwo(-8))
	require.False(t, IsPowerOfTwo(12))
	require.Equal(t, 10, Log2(1024))
	require.Equal(t, 0, Log2(1))
}
