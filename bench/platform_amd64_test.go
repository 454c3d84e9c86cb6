package bench

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/nttbench/ntt"
)

func TestPlatformAVX512IFMA(t *testing.T) {

	require.Equal(t, []Capability{Generic, AVX512IFMA}, Compiled())

	_, err := NewRegistry(S390XVectorFacility)
	require.ErrorIs(t, err, ErrCapabilityNotCompiled)

	// The kernels are portable: the family can be forced on any amd64 CPU.
	reg, err := NewRegistry(AVX512IFMA)
	require.NoError(t, err)

	require.Equal(t, []string{
		"rad2-ref", "rad2-SEAL", "rad4", "rad4x4",
		"rad2-hexl", "rad4-ifma", "rad4-ifmau", "r4r2-ifma", "r216-ifma",
		"rad2-dbl"}, labels(reg.Forward()))
	require.Equal(t, labels(genericForwardLazy()), labels(reg.ForwardLazy()))
	require.Equal(t, labels(genericInverse()), labels(reg.Inverse()))

	for _, id := range []VariantID{FwdR4HEXL, FwdR4AVX512IFMA, FwdR4AVX512IFMAUnordered, FwdR4R2AVX512IFMA, FwdR2R16AVX512IFMA} {
		_, err := reg.Lookup(id)
		require.NoError(t, err)
	}
	_, err = reg.Lookup(FwdR4VMSL)
	require.ErrorIs(t, err, ErrUnsupportedVariant)

	tc := genTestCase(t, reg, 10, 42)
	for _, layout := range []ntt.Layout{ntt.LayoutR2HEXL, ntt.LayoutR4IFMA, ntt.LayoutR4IFMAUnordered, ntt.LayoutR4R2IFMA, ntt.LayoutR2R16IFMA} {
		require.Contains(t, tc.Layouts, layout)
	}

	// Moduli above 2^50 do not fit the 52-bit constants
	N := 1 << 10
	_, err = NewTestCase(10, N, genTestCase(t, genericRegistry(t), 10, 55).Q, reg)
	require.Error(t, err)

	h := NewHarness(reg, testSeed)
	h.Timer = testTimer

	row, err := h.RunForward(tc)
	require.NoError(t, err)
	require.Len(t, row.Cells, 10+3)

	c, err := h.RunSingle(tc, FwdR2R16AVX512IFMA)
	require.NoError(t, err)
	require.Equal(t, "r216-ifma", c.Variant.Label)
}
