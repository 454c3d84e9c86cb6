package ring

import (
	"fmt"
	"math/bits"

	"github.com/tuneinsight/nttbench/utils"
)

const (
	// MinimumRingDegree is the smallest transform length accepted by NewNTTTable.
	MinimumRingDegree = 2

	// MaxModulusBits is the maximum bit-size of a modulus. Lazy butterflies
	// keep values in [0, 4q-1], which must fit on 64 bits.
	MaxModulusBits = 62
)

// NTTTable stores the roots of unity of the nega-cyclic NTT of
// Z_q[X]/(X^N+1), in standard (non-Montgomery) form.
type NTTTable struct {
	N       int
	Modulus uint64

	// NthRoot = 2N
	NthRoot uint64

	// Primitive NthRoot-th root of unity mod Modulus (psi)
	PrimitiveRoot uint64

	// RootsForward[i] = psi^bitrev(i)
	RootsForward []uint64

	// RootsBackward[i] = psi^-bitrev(i)
	RootsBackward []uint64

	// N^-1 mod Modulus
	NInv uint64
}

// NewNTTTable generates the NTT constants for the given degree and modulus.
// N must be a power of two and Modulus an NTT-friendly prime (Modulus = 1 mod 2N)
// of at most MaxModulusBits bits.
func NewNTTTable(N int, Modulus uint64) (t *NTTTable, err error) {

	if N < MinimumRingDegree || !utils.IsPowerOfTwo(N) {
		return nil, fmt.Errorf("invalid ring degree: must be a power of 2 greater or equal to %d but is %d", MinimumRingDegree, N)
	}

	if bits.Len64(Modulus) > MaxModulusBits {
		return nil, fmt.Errorf("invalid modulus: %d exceeds %d bits", Modulus, MaxModulusBits)
	}

	if !IsPrime(Modulus) {
		return nil, fmt.Errorf("invalid modulus: %d is not prime", Modulus)
	}

	NthRoot := uint64(N) << 1

	if Modulus&(NthRoot-1) != 1 {
		return nil, fmt.Errorf("invalid modulus: %d != 1 mod %d", Modulus, NthRoot)
	}

	t = &NTTTable{
		N:       N,
		Modulus: Modulus,
		NthRoot: NthRoot,
	}

	if t.PrimitiveRoot, err = PrimitiveNthRoot(Modulus, NthRoot); err != nil {
		return nil, err
	}

	brc := GenBRedConstant(Modulus)

	logN := uint64(utils.Log2(N))

	PsiInv := ModInverse(t.PrimitiveRoot, Modulus)

	t.NInv = ModInverse(uint64(N), Modulus)

	t.RootsForward = make([]uint64, N)
	t.RootsBackward = make([]uint64, N)

	t.RootsForward[0] = 1
	t.RootsBackward[0] = 1

	// Computes RootsForward[bitrev(j)] = RootsForward[bitrev(j-1)] * Psi
	// and RootsBackward[bitrev(j)] = RootsBackward[bitrev(j-1)] * PsiInv
	for j := uint64(1); j < uint64(N); j++ {

		indexReversePrev := utils.BitReverse64(j-1, logN)
		indexReverseNext := utils.BitReverse64(j, logN)

		t.RootsForward[indexReverseNext] = BRed(t.RootsForward[indexReversePrev], t.PrimitiveRoot, Modulus, brc)
		t.RootsBackward[indexReverseNext] = BRed(t.RootsBackward[indexReversePrev], PsiInv, Modulus, brc)
	}

	return
}

// LogN returns log2(N).
func (t *NTTTable) LogN() int {
	return utils.Log2(t.N)
}

// PrimitiveNthRoot returns the primitive NthRoot-th root of unity mod q
// derived from the smallest quadratic non-residue of q.
// NthRoot must be a power of two dividing q-1.
func PrimitiveNthRoot(q, NthRoot uint64) (uint64, error) {

	if NthRoot < 2 || NthRoot&(NthRoot-1) != 0 || (q-1)%NthRoot != 0 {
		return 0, fmt.Errorf("invalid NthRoot: %d must be a power of two dividing %d-1", NthRoot, q)
	}

	exp := (q - 1) / NthRoot

	// psi^(NthRoot/2) = g^((q-1)/2) = -1 iff g is a non-residue,
	// in which case psi has order exactly NthRoot.
	for g := uint64(2); g < q; g++ {
		psi := ModExp(g, exp, q)
		if ModExp(psi, NthRoot>>1, q) == q-1 {
			return psi, nil
		}
	}

	return 0, fmt.Errorf("no primitive %d-th root of unity mod %d", NthRoot, q)
}
