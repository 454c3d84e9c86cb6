package bench

import (
	"fmt"

	"github.com/tuneinsight/nttbench/ntt"
	"github.com/tuneinsight/nttbench/ring"
	"github.com/tuneinsight/nttbench/utils"
)

// MinimumN is the smallest transform length accepted by NewTestCase.
const MinimumN = 16

// TestCase bundles the twiddle tables of one (N, Q) instance for every
// variant of a Registry. It is read-only once returned by NewTestCase.
type TestCase struct {
	// M is the display label of the case, log2(N) by default.
	M int
	N int
	Q uint64

	// Forward and Inverse are the bit-reversed radix-2 tables with 64-bit constants.
	Forward ntt.Table
	Inverse ntt.Table

	// ForwardR4 and InverseR4 are the radix-4 re-arrangements of Forward and Inverse.
	ForwardR4 ntt.Table
	InverseR4 ntt.Table

	// NInv is N^-1 mod Q with its 64-bit constant.
	NInv ntt.MulOperand

	// Layouts and LayoutNInv hold the architecture-specific tables.
	Layouts    map[ntt.Layout]ntt.Table
	LayoutNInv map[ntt.Layout]ntt.MulOperand
}

// NewTestCase generates the tables of the case (N, Q) for the variants of reg.
// N must be a power of two of at least MinimumN and Q an NTT-friendly prime
// (Q = 1 mod 2N) fitting the word size of every variant of reg.
func NewTestCase(m, N int, Q uint64, reg *Registry) (tc *TestCase, err error) {

	if N < MinimumN || !utils.IsPowerOfTwo(N) {
		return nil, fmt.Errorf("invalid N: must be a power of 2 greater or equal to %d but is %d", MinimumN, N)
	}

	table, err := ring.NewNTTTable(N, Q)
	if err != nil {
		return nil, fmt.Errorf("cannot NewTestCase: %w", err)
	}

	tc = &TestCase{
		M:          m,
		N:          N,
		Q:          Q,
		Layouts:    map[ntt.Layout]ntt.Table{},
		LayoutNInv: map[ntt.Layout]ntt.MulOperand{},
	}

	tc.Forward, tc.Inverse = ntt.NewRadix2Tables(table, ntt.WordSize)
	tc.ForwardR4 = ntt.NewTable(ntt.Radix4ForwardPowers(tc.Forward.Powers), Q, ntt.WordSize)
	tc.InverseR4 = ntt.NewTable(ntt.Radix4InversePowers(tc.Inverse.Powers), Q, ntt.WordSize)
	tc.NInv = ntt.NewMulOperand(table.NInv, Q, ntt.WordSize)

	if err = reg.precompute(tc); err != nil {
		return nil, fmt.Errorf("cannot NewTestCase: %w", err)
	}

	return
}

func (tc *TestCase) String() string {
	return fmt.Sprintf("m=%d/N=%d/Q=%#x", tc.M, tc.N, tc.Q)
}
