package bench

import (
	"fmt"
	"math/bits"

	"github.com/klauspost/cpuid/v2"
	"github.com/tuneinsight/nttbench/ntt"
)

var (
	fwdR2HEXL = Variant{ID: FwdR4HEXL, Label: "rad2-hexl", Direction: Forward,
		run: func(tc *TestCase, a, _ []uint64) {
			w := tc.Layouts[ntt.LayoutR2HEXL]
			ntt.ForwardRadix2HEXL(a, tc.N, tc.Q, w.Powers, w.Constants)
		}}

	fwdR4IFMA = Variant{ID: FwdR4AVX512IFMA, Label: "rad4-ifma", Direction: Forward,
		run: func(tc *TestCase, a, _ []uint64) {
			w := tc.Layouts[ntt.LayoutR4IFMA]
			ntt.ForwardRadix4IFMA(a, tc.N, tc.Q, w.Powers, w.Constants)
		}}

	fwdR4IFMAUnordered = Variant{ID: FwdR4AVX512IFMAUnordered, Label: "rad4-ifmau", Direction: Forward,
		run: func(tc *TestCase, a, _ []uint64) {
			w := tc.Layouts[ntt.LayoutR4IFMAUnordered]
			ntt.ForwardRadix4IFMAUnordered(a, tc.N, tc.Q, w.Powers, w.Constants)
		}}

	fwdR4R2IFMA = Variant{ID: FwdR4R2AVX512IFMA, Label: "r4r2-ifma", Direction: Forward,
		run: func(tc *TestCase, a, _ []uint64) {
			w := tc.Layouts[ntt.LayoutR4R2IFMA]
			ntt.ForwardR4R2IFMA(a, tc.N, tc.Q, w.Powers, w.Constants)
		}}

	fwdR2R16IFMA = Variant{ID: FwdR2R16AVX512IFMA, Label: "r216-ifma", Direction: Forward,
		run: func(tc *TestCase, a, _ []uint64) {
			w := tc.Layouts[ntt.LayoutR2R16IFMA]
			ntt.ForwardR2R16IFMA(a, tc.N, tc.Q, w.Powers, w.Constants)
		}}
)

func precomputeIFMA(tc *TestCase) error {

	if bits.Len64(tc.Q) > ntt.IFMAMaxModulusBits {
		return fmt.Errorf("invalid modulus for %s: %#x exceeds %d bits", AVX512IFMA, tc.Q, ntt.IFMAMaxModulusBits)
	}

	w := tc.Forward.Powers

	tc.Layouts[ntt.LayoutR2HEXL] = ntt.NewTable(w, tc.Q, ntt.IFMAWordSize)
	tc.Layouts[ntt.LayoutR4IFMA] = ntt.NewTable(tc.ForwardR4.Powers, tc.Q, ntt.IFMAWordSize)
	tc.Layouts[ntt.LayoutR4IFMAUnordered] = ntt.NewTable(ntt.Radix4UnorderedForwardPowers(w), tc.Q, ntt.IFMAWordSize)
	tc.Layouts[ntt.LayoutR4R2IFMA] = ntt.NewTable(ntt.R4R2ForwardPowers(w), tc.Q, ntt.IFMAWordSize)
	tc.Layouts[ntt.LayoutR2R16IFMA] = ntt.NewTable(ntt.R2R16ForwardPowers(w), tc.Q, ntt.IFMAWordSize)

	return nil
}

func init() {
	registerPlatform(AVX512IFMA, platform{
		supported: func() bool {
			return cpuid.CPU.Supports(cpuid.AVX512F, cpuid.AVX512IFMA)
		},
		forward: append(genericForward(),
			fwdR2HEXL, fwdR4IFMA, fwdR4IFMAUnordered, fwdR4R2IFMA, fwdR2R16IFMA,
			fwdRefDouble),
		forwardLazy: genericForwardLazy(),
		inverse:     genericInverse(),
		precompute:  precomputeIFMA,
	})
}
