package sampling_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/nttbench/utils/sampling"
)

func read(t *testing.T, prng sampling.PRNG, n int) []byte {
	sum := make([]byte, n)
	_, err := prng.Read(sum)
	require.NoError(t, err)
	return sum
}

func TestKeyedPRNG(t *testing.T) {

	seed := []byte("nttbench")

	t.Run("Deterministic", func(t *testing.T) {
		Ha, err := sampling.NewKeyedPRNG(seed, 10, 0x3ffffffc001)
		require.NoError(t, err)
		Hb, err := sampling.NewKeyedPRNG(seed, 10, 0x3ffffffc001)
		require.NoError(t, err)

		// Chunking does not change the stream.
		whole := read(t, Ha, 1024)
		require.Equal(t, whole[:512], read(t, Hb, 512))
		require.Equal(t, whole[512:], read(t, Hb, 512))
	})

	t.Run("Separation", func(t *testing.T) {
		ref, err := sampling.NewKeyedPRNG(seed, 10, 0x3ffffffc001)
		require.NoError(t, err)
		sum := read(t, ref, 64)

		for _, labels := range [][]uint64{{11, 0x3ffffffc001}, {0x3ffffffc001, 10}, {10}, {}} {
			other, err := sampling.NewKeyedPRNG(seed, labels...)
			require.NoError(t, err)
			require.NotEqual(t, sum, read(t, other, 64), labels)
		}

		other, err := sampling.NewKeyedPRNG([]byte("other"), 10, 0x3ffffffc001)
		require.NoError(t, err)
		require.NotEqual(t, sum, read(t, other, 64))

		// A nil seed is a valid, empty seed.
		_, err = sampling.NewKeyedPRNG(nil)
		require.NoError(t, err)
	})

	t.Run("RandBytes", func(t *testing.T) {
		a, b := sampling.RandBytes(sampling.KeySize), sampling.RandBytes(sampling.KeySize)
		require.Len(t, a, sampling.KeySize)
		require.NotEqual(t, a, b)
	})
}

func TestDeriveKey(t *testing.T) {
	seed := []byte("nttbench")

	k0 := sampling.DeriveKey(seed, 10, 0x3ffffffc001)
	k1 := sampling.DeriveKey(seed, 10, 0x3ffffffc001)
	require.Len(t, k0, sampling.KeySize)
	require.Equal(t, k0, k1)

	require.NotEqual(t, k0, sampling.DeriveKey(seed, 11, 0x3ffffffc001))
	require.NotEqual(t, k0, sampling.DeriveKey([]byte("other"), 10, 0x3ffffffc001))
	require.NotEqual(t, sampling.DeriveKey(seed, 1, 2), sampling.DeriveKey(seed, 2, 1))
}
