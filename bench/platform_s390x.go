package bench

import (
	"fmt"
	"math/bits"

	"github.com/tuneinsight/nttbench/ntt"
	"golang.org/x/sys/cpu"
)

var (
	fwdR4VMSL = Variant{ID: FwdR4VMSL, Label: "rad4-vmsl", Direction: Forward,
		run: func(tc *TestCase, a, _ []uint64) {
			w := tc.Layouts[ntt.LayoutR4VEF]
			ntt.ForwardRadix4VEF(a, tc.N, tc.Q, w.Powers, w.Constants)
		}}

	fwdR4VMSLDouble = Variant{ID: FwdR4VMSLDouble, Label: "rad4v-dbl", Direction: Forward, Double: true,
		run: func(tc *TestCase, a, b []uint64) {
			w := tc.Layouts[ntt.LayoutR4VEF]
			ntt.ForwardRadix4VEFDouble(a, b, tc.N, tc.Q, w.Powers, w.Constants)
		}}

	fwdR4VMSLLazy = Variant{ID: FwdR4VMSLLazy, Label: "rad4-vmsl", Direction: Forward, Lazy: true,
		run: func(tc *TestCase, a, _ []uint64) {
			w := tc.Layouts[ntt.LayoutR4VEF]
			ntt.ForwardRadix4VEFLazy(a, tc.N, tc.Q, w.Powers, w.Constants)
		}}

	invR4VMSL = Variant{ID: InvR4VMSL, Label: "rad4-vmsl", Direction: Inverse,
		run: func(tc *TestCase, a, _ []uint64) {
			w := tc.Layouts[ntt.LayoutR4VEFInverse]
			ntt.InverseRadix4VEF(a, tc.N, tc.Q, tc.LayoutNInv[ntt.LayoutR4VEFInverse], w.Powers, w.Constants)
		}}
)

func precomputeVEF(tc *TestCase) error {

	if bits.Len64(tc.Q) > ntt.VEFMaxModulusBits {
		return fmt.Errorf("invalid modulus for %s: %#x exceeds %d bits", S390XVectorFacility, tc.Q, ntt.VEFMaxModulusBits)
	}

	tc.Layouts[ntt.LayoutR4VEF] = ntt.NewTable(tc.ForwardR4.Powers, tc.Q, ntt.VEFWordSize)
	tc.Layouts[ntt.LayoutR4VEFInverse] = ntt.NewTable(tc.InverseR4.Powers, tc.Q, ntt.VEFWordSize)
	tc.LayoutNInv[ntt.LayoutR4VEFInverse] = ntt.NewMulOperand(tc.NInv.Op, tc.Q, ntt.VEFWordSize)

	return nil
}

func init() {
	registerPlatform(S390XVectorFacility, platform{
		supported: func() bool {
			return cpu.S390X.HasVX
		},
		forward:     append(genericForward(), fwdR4VMSL, fwdRefDouble, fwdR4VMSLDouble),
		forwardLazy: append(genericForwardLazy(), fwdR4VMSLLazy),
		inverse:     append(genericInverse(), invR4VMSL),
		precompute:  precomputeVEF,
	})
}
