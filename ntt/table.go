package ntt

import (
	"github.com/tuneinsight/nttbench/ring"
	"github.com/tuneinsight/nttbench/utils"
)

// WordSize is the bit-size of the Shoup constants consumed by the scalar kernels.
const WordSize = 64

// Layout identifies an architecture-specific arrangement of a twiddle table.
type Layout string

const (
	// LayoutR4VEF is the radix-4 layout with 56-bit constants of the s390x vector-facility kernels.
	LayoutR4VEF = Layout("r4-vmsl")
	// LayoutR4VEFInverse is the inverse counterpart of LayoutR4VEF.
	LayoutR4VEFInverse = Layout("r4-vmsl-inv")
	// LayoutR2HEXL is the radix-2 layout with 52-bit constants of the HEXL-style kernel.
	LayoutR2HEXL = Layout("r2-hexl")
	// LayoutR4IFMA is the radix-4 layout with 52-bit constants.
	LayoutR4IFMA = Layout("r4-ifma")
	// LayoutR4IFMAUnordered is the radix-4 layout with per-butterfly twiddles on the narrow layers.
	LayoutR4IFMAUnordered = Layout("r4-ifma-unordered")
	// LayoutR4R2IFMA is the mixed radix-4 then radix-2 layout.
	LayoutR4R2IFMA = Layout("r4r2-ifma")
	// LayoutR2R16IFMA is the radix-2 layout followed by 16-coefficient leaves.
	LayoutR2R16IFMA = Layout("r2r16-ifma")
)

// Table is a twiddle-factor table: the powers of the root of unity (w_powers)
// and their Shoup constants (w_powers_con), in the order a kernel consumes them.
type Table struct {
	Powers    []uint64
	Constants []uint64
}

// NewTable returns the Table of the given powers with their Shoup constants
// floor(w * 2^wordSize / q).
func NewTable(powers []uint64, q uint64, wordSize uint) Table {
	constants := make([]uint64, len(powers))
	for i, w := range powers {
		constants[i] = ring.ShoupConstant(w, q, wordSize)
	}
	return Table{Powers: powers, Constants: constants}
}

// Len returns the number of entries of the table.
func (t Table) Len() int {
	return len(t.Powers)
}

// MulOperand is a multiplicand with its Shoup constant.
type MulOperand struct {
	Op  uint64
	Con uint64
}

// NewMulOperand returns the MulOperand of op mod q for the given word size.
func NewMulOperand(op, q uint64, wordSize uint) MulOperand {
	return MulOperand{Op: op, Con: ring.ShoupConstant(op, q, wordSize)}
}

// NewRadix2Tables returns the bit-reversed forward and inverse tables of the
// radix-2 kernels (reference, SEAL and double).
func NewRadix2Tables(t *ring.NTTTable, wordSize uint) (forward, inverse Table) {
	forward = NewTable(append([]uint64{}, t.RootsForward...), t.Modulus, wordSize)
	inverse = NewTable(append([]uint64{}, t.RootsBackward...), t.Modulus, wordSize)
	return
}

// Radix4ForwardPowers re-arranges the bit-reversed powers w for the radix-4
// forward kernels: a leading radix-2 root when log2(N) is odd, then for each
// pair of layers (m, 2m) and each block i, the triple (w[m+i], w[2m+2i], w[2m+2i+1]).
func Radix4ForwardPowers(w []uint64) (r4 []uint64) {

	n := len(w)

	r4 = make([]uint64, 0, n)

	m := 1
	if utils.Log2(n)&1 == 1 {
		r4 = append(r4, w[1])
		m = 2
	}

	for ; m < n; m <<= 2 {
		for i := 0; i < m; i++ {
			r4 = append(r4, w[m+i], w[2*m+2*i], w[2*m+2*i+1])
		}
	}

	return
}

// Radix4InversePowers re-arranges the bit-reversed inverse powers wInv for the
// radix-4 inverse kernels: for each pair of layers (h, h/2) and each block i,
// the triple (wInv[h+2i], wInv[h+2i+1], wInv[h/2+i]), then a trailing radix-2
// root when log2(N) is odd.
func Radix4InversePowers(wInv []uint64) (r4 []uint64) {

	n := len(wInv)

	r4 = make([]uint64, 0, n)

	h := n >> 1
	for ; h >= 2; h >>= 2 {
		for i := 0; i < h>>1; i++ {
			r4 = append(r4, wInv[h+2*i], wInv[h+2*i+1], wInv[h>>1+i])
		}
	}

	if h == 1 {
		r4 = append(r4, wInv[1])
	}

	return
}
