package bench

import (
	"github.com/tuneinsight/nttbench/ntt"
)

var (
	fwdRef = Variant{ID: FwdRef, Label: "rad2-ref", Direction: Forward,
		run: func(tc *TestCase, a, _ []uint64) {
			ntt.ForwardRef(a, tc.N, tc.Q, tc.Forward.Powers, tc.Forward.Constants)
		}}

	fwdSEAL = Variant{ID: FwdSEAL, Label: "rad2-SEAL", Direction: Forward,
		run: func(tc *TestCase, a, _ []uint64) {
			ntt.ForwardSEAL(a, tc.N, tc.Q, tc.Forward.Powers, tc.Forward.Constants)
		}}

	fwdR4 = Variant{ID: FwdR4, Label: "rad4", Direction: Forward,
		run: func(tc *TestCase, a, _ []uint64) {
			ntt.ForwardRadix4(a, tc.N, tc.Q, tc.ForwardR4.Powers, tc.ForwardR4.Constants)
		}}

	fwdR4x4 = Variant{ID: FwdR4x4, Label: "rad4x4", Direction: Forward,
		run: func(tc *TestCase, a, _ []uint64) {
			ntt.ForwardRadix4x4(a, tc.N, tc.Q, tc.ForwardR4.Powers, tc.ForwardR4.Constants)
		}}

	fwdRefDouble = Variant{ID: FwdRefDouble, Label: "rad2-dbl", Direction: Forward, Double: true,
		run: func(tc *TestCase, a, b []uint64) {
			ntt.ForwardRefDouble(a, b, tc.N, tc.Q, tc.Forward.Powers, tc.Forward.Constants)
		}}

	fwdRefLazy = Variant{ID: FwdRefLazy, Label: "rad2-ref", Direction: Forward, Lazy: true,
		run: func(tc *TestCase, a, _ []uint64) {
			ntt.ForwardRefLazy(a, tc.N, tc.Q, tc.Forward.Powers, tc.Forward.Constants)
		}}

	fwdSEALLazy = Variant{ID: FwdSEALLazy, Label: "rad2-SEAL", Direction: Forward, Lazy: true,
		run: func(tc *TestCase, a, _ []uint64) {
			ntt.ForwardSEALLazy(a, tc.N, tc.Q, tc.Forward.Powers, tc.Forward.Constants)
		}}

	fwdR4Lazy = Variant{ID: FwdR4Lazy, Label: "rad4", Direction: Forward, Lazy: true,
		run: func(tc *TestCase, a, _ []uint64) {
			ntt.ForwardRadix4Lazy(a, tc.N, tc.Q, tc.ForwardR4.Powers, tc.ForwardR4.Constants)
		}}

	invRef = Variant{ID: InvRef, Label: "rad2-ref", Direction: Inverse,
		run: func(tc *TestCase, a, _ []uint64) {
			ntt.InverseRef(a, tc.N, tc.Q, tc.NInv, tc.Inverse.Powers, tc.Inverse.Constants)
		}}

	invSEAL = Variant{ID: InvSEAL, Label: "rad2-SEAL", Direction: Inverse,
		run: func(tc *TestCase, a, _ []uint64) {
			ntt.InverseSEAL(a, tc.N, tc.Q, tc.NInv, tc.Inverse.Powers, tc.Inverse.Constants)
		}}

	invR4 = Variant{ID: InvR4, Label: "rad4", Direction: Inverse,
		run: func(tc *TestCase, a, _ []uint64) {
			ntt.InverseRadix4(a, tc.N, tc.Q, tc.NInv, tc.InverseR4.Powers, tc.InverseR4.Constants)
		}}
)

// genericForward returns the four radix-2/radix-4 forward variants leading
// the forward table of every platform.
func genericForward() []Variant {
	return []Variant{fwdRef, fwdSEAL, fwdR4, fwdR4x4}
}

func genericForwardLazy() []Variant {
	return []Variant{fwdRefLazy, fwdSEALLazy, fwdR4Lazy}
}

func genericInverse() []Variant {
	return []Variant{invRef, invSEAL, invR4}
}

func init() {
	registerPlatform(Generic, platform{
		supported:   func() bool { return true },
		forward:     append(genericForward(), fwdRefDouble),
		forwardLazy: genericForwardLazy(),
		inverse:     genericInverse(),
		precompute:  func(*TestCase) error { return nil },
	})
}
