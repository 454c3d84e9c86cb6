package ntt

import (
	"github.com/tuneinsight/nttbench/ring"
)

// ForwardSEAL evaluates the forward NTT of a in place following the loop
// structure of Microsoft SEAL: the roots are walked sequentially, wide layers
// are unrolled by four and the final reduction is fused in the last layer.
// Uses the same table as ForwardRef.
// Returns values in the range [0, q-1].
func ForwardSEAL(a []uint64, n int, q uint64, w, wCon []uint64) {
	forwardSEAL(a, n, q, w, wCon, false)
}

// ForwardSEALLazy is identical to ForwardSEAL but skips the final reduction.
// Returns values in the range [0, 4q-1].
func ForwardSEALLazy(a []uint64, n int, q uint64, w, wCon []uint64) {
	forwardSEAL(a, n, q, w, wCon, true)
}

func forwardSEAL(a []uint64, n int, q uint64, w, wCon []uint64, lazy bool) {

	twoQ := q << 1

	var rootIndex int
	var W, WCon uint64

	gap := n >> 1
	m := 1

	for ; m < n>>1; m <<= 1 {

		offset := 0

		if gap < 4 {

			for i := 0; i < m; i++ {

				rootIndex++
				W, WCon = w[rootIndex], wCon[rootIndex]

				x := a[offset : offset+gap]
				y := a[offset+gap : offset+2*gap]

				for j := 0; j < gap; j++ {
					x[j], y[j] = fwdButterfly(x[j], y[j], W, WCon, q, twoQ)
				}

				offset += gap << 1
			}

		} else {

			for i := 0; i < m; i++ {

				rootIndex++
				W, WCon = w[rootIndex], wCon[rootIndex]

				x := a[offset : offset+gap]
				y := a[offset+gap : offset+2*gap]

				for j := 0; j < gap; j += 4 {
					x[j], y[j] = fwdButterfly(x[j], y[j], W, WCon, q, twoQ)
					x[j+1], y[j+1] = fwdButterfly(x[j+1], y[j+1], W, WCon, q, twoQ)
					x[j+2], y[j+2] = fwdButterfly(x[j+2], y[j+2], W, WCon, q, twoQ)
					x[j+3], y[j+3] = fwdButterfly(x[j+3], y[j+3], W, WCon, q, twoQ)
				}

				offset += gap << 1
			}
		}

		gap >>= 1
	}

	// Last layer: gap = 1
	var X, Y uint64
	for i, k := 0, 0; i < m; i, k = i+1, k+2 {

		rootIndex++
		X, Y = fwdButterfly(a[k], a[k+1], w[rootIndex], wCon[rootIndex], q, twoQ)

		if !lazy {
			if X >= twoQ {
				X -= twoQ
			}
			if X >= q {
				X -= q
			}
			if Y >= twoQ {
				Y -= twoQ
			}
			if Y >= q {
				Y -= q
			}
		}

		a[k], a[k+1] = X, Y
	}
}

// InverseSEAL evaluates the inverse NTT of a in place following the loop
// structure of Microsoft SEAL, with the multiplication by N^-1 fused in the
// last layer. Uses the same table as InverseRef.
// Returns values in the range [0, q-1].
func InverseSEAL(a []uint64, n int, q uint64, nInv MulOperand, w, wCon []uint64) {

	twoQ := q << 1

	var W, WCon uint64

	gap := 1
	m := n >> 1

	for ; m > 1; m >>= 1 {

		offset := 0
		rootIndex := m

		if gap < 4 {

			for i := 0; i < m; i++ {

				W, WCon = w[rootIndex], wCon[rootIndex]
				rootIndex++

				x := a[offset : offset+gap]
				y := a[offset+gap : offset+2*gap]

				for j := 0; j < gap; j++ {
					x[j], y[j] = invButterfly(x[j], y[j], W, WCon, q, twoQ)
				}

				offset += gap << 1
			}

		} else {

			for i := 0; i < m; i++ {

				W, WCon = w[rootIndex], wCon[rootIndex]
				rootIndex++

				x := a[offset : offset+gap]
				y := a[offset+gap : offset+2*gap]

				for j := 0; j < gap; j += 4 {
					x[j], y[j] = invButterfly(x[j], y[j], W, WCon, q, twoQ)
					x[j+1], y[j+1] = invButterfly(x[j+1], y[j+1], W, WCon, q, twoQ)
					x[j+2], y[j+2] = invButterfly(x[j+2], y[j+2], W, WCon, q, twoQ)
					x[j+3], y[j+3] = invButterfly(x[j+3], y[j+3], W, WCon, q, twoQ)
				}

				offset += gap << 1
			}
		}

		gap <<= 1
	}

	// Last layer: X = (U + V) * N^-1 and Y = (U - V) * W * N^-1
	W = ring.MulShoup(w[1], nInv.Op, nInv.Con, q)
	WCon = ring.ShoupConstant(W, q, WordSize)

	x := a[:gap]
	y := a[gap : 2*gap]

	var U, V uint64
	for j := range x {
		U, V = x[j], y[j]
		x[j] = ring.MulShoup(U+V, nInv.Op, nInv.Con, q)
		y[j] = ring.MulShoup(U+twoQ-V, W, WCon, q)
	}
}
