// Package ntt implements interchangeable kernels of the nega-cyclic
// Number-Theoretic Transform over Z_q[X]/(X^N+1).
//
// All kernels operate in place on a slice of N coefficients and share the
// same calling convention: the transform length, the modulus and a table of
// twiddle factors together with their Shoup constants, laid out as expected by
// the kernel family (see Table). Forward kernels take their input in natural
// order and write the output in bit-reversed order; inverse kernels take their
// input in bit-reversed order.
//
// Non-lazy kernels return values in [0, q-1], lazy kernels return values in
// [0, 4q-1]. Inputs must be in [0, q-1] for the forward kernels and in
// [0, 2q-1] for the inverse kernels.
package ntt

import (
	"github.com/tuneinsight/nttbench/ring"
)

// fwdButterfly computes X, Y = U + V*W, U - V*W mod q, with inputs and outputs in [0, 4q-1].
func fwdButterfly(U, V, W, WCon, q, twoQ uint64) (X, Y uint64) {
	if U >= twoQ {
		U -= twoQ
	}
	T := ring.MulShoupLazy(V, W, WCon, q)
	return U + T, U + twoQ - T
}

// invButterfly computes X, Y = U + V, (U - V)*W mod q, with inputs and outputs in [0, 2q-1].
func invButterfly(U, V, W, WCon, q, twoQ uint64) (X, Y uint64) {
	X = U + V
	if X >= twoQ {
		X -= twoQ
	}
	Y = ring.MulShoupLazy(U+twoQ-V, W, WCon, q)
	return
}

// radix4Butterfly applies two consecutive layers of forward butterflies on
// (x0, x1, x2, x3) = (a[j], a[j+t/2], a[j+t], a[j+3t/2]).
func radix4Butterfly(x0, x1, x2, x3, W1, C1, W2, C2, W3, C3, q, twoQ uint64) (uint64, uint64, uint64, uint64) {
	x0, x2 = fwdButterfly(x0, x2, W1, C1, q, twoQ)
	x1, x3 = fwdButterfly(x1, x3, W1, C1, q, twoQ)
	x0, x1 = fwdButterfly(x0, x1, W2, C2, q, twoQ)
	x2, x3 = fwdButterfly(x2, x3, W3, C3, q, twoQ)
	return x0, x1, x2, x3
}

// reduce4q maps a in [0, 4q-1] to [0, q-1].
func reduce4q(a []uint64, q uint64) {
	twoQ := q << 1
	for i, x := range a {
		a[i] = ring.CRed(ring.CRed(x, twoQ), q)
	}
}

// scale evaluates a = a * nInv mod q with the output in [0, q-1].
func scale(a []uint64, q uint64, nInv MulOperand) {
	for i := range a {
		a[i] = ring.MulShoup(a[i], nInv.Op, nInv.Con, q)
	}
}
