package ntt

import (
	"github.com/tuneinsight/nttbench/utils"
)

// ForwardRadix4 evaluates the forward NTT of a in place, merging the layers
// two by two into radix-4 butterflies. w and wCon must be laid out by
// Radix4ForwardPowers.
// Returns values in the range [0, q-1].
func ForwardRadix4(a []uint64, n int, q uint64, w, wCon []uint64) {
	ForwardRadix4Lazy(a, n, q, w, wCon)
	reduce4q(a[:n], q)
}

// ForwardRadix4Lazy is identical to ForwardRadix4 but skips the final reduction.
// Returns values in the range [0, 4q-1].
func ForwardRadix4Lazy(a []uint64, n int, q uint64, w, wCon []uint64) {

	twoQ := q << 1

	var idx int

	m, t := 1, n>>1

	// Odd number of layers: a single radix-2 layer first
	if utils.Log2(n)&1 == 1 {

		W, WCon := w[0], wCon[0]

		x := a[:t]
		y := a[t : 2*t]

		for j := range x {
			x[j], y[j] = fwdButterfly(x[j], y[j], W, WCon, q, twoQ)
		}

		idx, m, t = 1, 2, t>>1
	}

	for ; m < n; m, t = m<<2, t>>2 {

		t2 := t >> 1

		for i, k := 0, 0; i < m; i, k = i+1, k+2*t {

			W1, W2, W3 := w[idx], w[idx+1], w[idx+2]
			C1, C2, C3 := wCon[idx], wCon[idx+1], wCon[idx+2]
			idx += 3

			x0 := a[k : k+t2]
			x1 := a[k+t2 : k+t]
			x2 := a[k+t : k+t+t2]
			x3 := a[k+t+t2 : k+2*t]

			for j := range x0 {
				x0[j], x1[j], x2[j], x3[j] = radix4Butterfly(x0[j], x1[j], x2[j], x3[j], W1, C1, W2, C2, W3, C3, q, twoQ)
			}
		}
	}
}

// InverseRadix4 evaluates the inverse NTT of a in place, merging the layers
// two by two into radix-4 butterflies, followed by the multiplication by N^-1.
// w and wCon must be laid out by Radix4InversePowers.
// Returns values in the range [0, q-1].
func InverseRadix4(a []uint64, n int, q uint64, nInv MulOperand, w, wCon []uint64) {

	twoQ := q << 1

	var idx int

	h, t := n>>1, 1

	for ; h >= 2; h, t = h>>2, t<<2 {

		for i, k := 0, 0; i < h>>1; i, k = i+1, k+4*t {

			Wa, Wb, Wc := w[idx], w[idx+1], w[idx+2]
			Ca, Cb, Cc := wCon[idx], wCon[idx+1], wCon[idx+2]
			idx += 3

			x0 := a[k : k+t]
			x1 := a[k+t : k+2*t]
			x2 := a[k+2*t : k+3*t]
			x3 := a[k+3*t : k+4*t]

			var X0, X1, X2, X3 uint64
			for j := range x0 {
				X0, X1 = invButterfly(x0[j], x1[j], Wa, Ca, q, twoQ)
				X2, X3 = invButterfly(x2[j], x3[j], Wb, Cb, q, twoQ)
				x0[j], x2[j] = invButterfly(X0, X2, Wc, Cc, q, twoQ)
				x1[j], x3[j] = invButterfly(X1, X3, Wc, Cc, q, twoQ)
			}
		}
	}

	// Odd number of layers: a single radix-2 layer last
	if h == 1 {

		W, WCon := w[idx], wCon[idx]

		x := a[:t]
		y := a[t : 2*t]

		for j := range x {
			x[j], y[j] = invButterfly(x[j], y[j], W, WCon, q, twoQ)
		}
	}

	scale(a[:n], q, nInv)
}
