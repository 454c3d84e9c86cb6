package ntt

import (
	"math/bits"
	"unsafe"

	"github.com/tuneinsight/nttbench/utils"
)

// VEFWordSize is the bit-size of the Shoup constants consumed by the
// vector-facility kernels. Their inputs stay below 4q, which requires q < 2^54.
const VEFWordSize = 56

// VEFMaxModulusBits is the maximum bit-size of a modulus for the vector-facility kernels.
const VEFMaxModulusBits = VEFWordSize - 2

func mulShoupLazy56(y, W, WCon, q uint64) uint64 {
	hi, lo := bits.Mul64(WCon, y)
	return W*y - (hi<<8|lo>>56)*q
}

func fwdButterfly56(U, V, W, WCon, q, twoQ uint64) (X, Y uint64) {
	if U >= twoQ {
		U -= twoQ
	}
	T := mulShoupLazy56(V, W, WCon, q)
	return U + T, U + twoQ - T
}

func invButterfly56(U, V, W, WCon, q, twoQ uint64) (X, Y uint64) {
	X = U + V
	if X >= twoQ {
		X -= twoQ
	}
	return X, mulShoupLazy56(U+twoQ-V, W, WCon, q)
}

// radix4Butterfly56x2 applies a radix-4 butterfly on two adjacent lanes.
func radix4Butterfly56x2(x0, x1, x2, x3 *[2]uint64, W1, C1, W2, C2, W3, C3, q, twoQ uint64) {
	for l := 0; l < 2; l++ {
		x0[l], x2[l] = fwdButterfly56(x0[l], x2[l], W1, C1, q, twoQ)
		x1[l], x3[l] = fwdButterfly56(x1[l], x3[l], W1, C1, q, twoQ)
		x0[l], x1[l] = fwdButterfly56(x0[l], x1[l], W2, C2, q, twoQ)
		x2[l], x3[l] = fwdButterfly56(x2[l], x3[l], W3, C3, q, twoQ)
	}
}

// radix4Butterfly56 applies a radix-4 butterfly on a single lane.
func radix4Butterfly56(x0, x1, x2, x3 *uint64, W1, C1, W2, C2, W3, C3, q, twoQ uint64) {
	*x0, *x2 = fwdButterfly56(*x0, *x2, W1, C1, q, twoQ)
	*x1, *x3 = fwdButterfly56(*x1, *x3, W1, C1, q, twoQ)
	*x0, *x1 = fwdButterfly56(*x0, *x1, W2, C2, q, twoQ)
	*x2, *x3 = fwdButterfly56(*x2, *x3, W3, C3, q, twoQ)
}

// forwardRadix4VEFLazy evaluates the radix-4 forward NTT of every polynomial
// of polys, two lanes of 64 bits at a time (one vector register).
func forwardRadix4VEFLazy(polys [][]uint64, n int, q uint64, w, wCon []uint64) {

	twoQ := q << 1

	var idx int

	m, t := 1, n>>1

	if utils.Log2(n)&1 == 1 {

		W, WCon := w[0], wCon[0]

		for _, a := range polys {
			for j := 0; j < t; j += 2 {
				x := (*[2]uint64)(unsafe.Pointer(&a[j]))
				y := (*[2]uint64)(unsafe.Pointer(&a[j+t]))
				x[0], y[0] = fwdButterfly56(x[0], y[0], W, WCon, q, twoQ)
				x[1], y[1] = fwdButterfly56(x[1], y[1], W, WCon, q, twoQ)
			}
		}

		idx, m, t = 1, 2, t>>1
	}

	for ; m < n; m, t = m<<2, t>>2 {

		t2 := t >> 1

		for i, k := 0, 0; i < m; i, k = i+1, k+2*t {

			W1, W2, W3 := w[idx], w[idx+1], w[idx+2]
			C1, C2, C3 := wCon[idx], wCon[idx+1], wCon[idx+2]
			idx += 3

			for _, a := range polys {

				if t2 >= 2 {
					for j := k; j < k+t2; j += 2 {
						radix4Butterfly56x2(
							(*[2]uint64)(unsafe.Pointer(&a[j])),
							(*[2]uint64)(unsafe.Pointer(&a[j+t2])),
							(*[2]uint64)(unsafe.Pointer(&a[j+t])),
							(*[2]uint64)(unsafe.Pointer(&a[j+t+t2])),
							W1, C1, W2, C2, W3, C3, q, twoQ)
					}
				} else {
					radix4Butterfly56(&a[k], &a[k+1], &a[k+2], &a[k+3], W1, C1, W2, C2, W3, C3, q, twoQ)
				}
			}
		}
	}
}

// ForwardRadix4VEF evaluates the forward NTT of a in place with the radix-4
// vector-facility kernel. w must be laid out by Radix4ForwardPowers and wCon
// hold the VEFWordSize-bit Shoup constants.
// Returns values in the range [0, q-1].
func ForwardRadix4VEF(a []uint64, n int, q uint64, w, wCon []uint64) {
	forwardRadix4VEFLazy([][]uint64{a}, n, q, w, wCon)
	reduce4q(a[:n], q)
}

// ForwardRadix4VEFLazy is identical to ForwardRadix4VEF but skips the final reduction.
// Returns values in the range [0, 4q-1].
func ForwardRadix4VEFLazy(a []uint64, n int, q uint64, w, wCon []uint64) {
	forwardRadix4VEFLazy([][]uint64{a}, n, q, w, wCon)
}

// ForwardRadix4VEFDouble evaluates the forward NTT of a and b in place with
// the radix-4 vector-facility kernel, sharing the twiddle loads.
// Returns values in the range [0, q-1].
func ForwardRadix4VEFDouble(a, b []uint64, n int, q uint64, w, wCon []uint64) {
	forwardRadix4VEFLazy([][]uint64{a, b}, n, q, w, wCon)
	reduce4q(a[:n], q)
	reduce4q(b[:n], q)
}

// InverseRadix4VEF evaluates the inverse NTT of a in place with the radix-4
// vector-facility kernel. w must be laid out by Radix4InversePowers, wCon and
// nInv.Con are VEFWordSize-bit Shoup constants.
// Returns values in the range [0, q-1].
func InverseRadix4VEF(a []uint64, n int, q uint64, nInv MulOperand, w, wCon []uint64) {

	twoQ := q << 1

	var idx int

	h, t := n>>1, 1

	for ; h >= 2; h, t = h>>2, t<<2 {

		for i, k := 0, 0; i < h>>1; i, k = i+1, k+4*t {

			Wa, Wb, Wc := w[idx], w[idx+1], w[idx+2]
			Ca, Cb, Cc := wCon[idx], wCon[idx+1], wCon[idx+2]
			idx += 3

			for j := k; j < k+t; j++ {
				X0, X1 := invButterfly56(a[j], a[j+t], Wa, Ca, q, twoQ)
				X2, X3 := invButterfly56(a[j+2*t], a[j+3*t], Wb, Cb, q, twoQ)
				a[j], a[j+2*t] = invButterfly56(X0, X2, Wc, Cc, q, twoQ)
				a[j+t], a[j+3*t] = invButterfly56(X1, X3, Wc, Cc, q, twoQ)
			}
		}
	}

	if h == 1 {
		W, WCon := w[idx], wCon[idx]
		for j := 0; j < t; j += 2 {
			x := (*[2]uint64)(unsafe.Pointer(&a[j]))
			y := (*[2]uint64)(unsafe.Pointer(&a[j+t]))
			x[0], y[0] = invButterfly56(x[0], y[0], W, WCon, q, twoQ)
			x[1], y[1] = invButterfly56(x[1], y[1], W, WCon, q, twoQ)
		}
	}

	for i := range a[:n] {
		r := mulShoupLazy56(a[i], nInv.Op, nInv.Con, q)
		if r >= q {
			r -= q
		}
		a[i] = r
	}
}
