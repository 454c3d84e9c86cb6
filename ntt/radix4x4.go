package ntt

import (
	"unsafe"

	"github.com/tuneinsight/nttbench/utils"
)

// ForwardRadix4x4 evaluates the forward NTT of a in place with radix-4
// butterflies, processing four radix-4 butterflies (16 coefficients) per
// iteration, with dedicated code for the two narrowest pairs of layers.
// w and wCon must be laid out by Radix4ForwardPowers.
// Returns values in the range [0, q-1].
func ForwardRadix4x4(a []uint64, n int, q uint64, w, wCon []uint64) {

	twoQ := q << 1

	var idx int

	m, t := 1, n>>1

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

		switch {
		case t2 >= 4:

			for i, k := 0, 0; i < m; i, k = i+1, k+2*t {

				W1, W2, W3 := w[idx], w[idx+1], w[idx+2]
				C1, C2, C3 := wCon[idx], wCon[idx+1], wCon[idx+2]
				idx += 3

				for j := k; j < k+t2; j += 4 {

					x0 := (*[4]uint64)(unsafe.Pointer(&a[j]))
					x1 := (*[4]uint64)(unsafe.Pointer(&a[j+t2]))
					x2 := (*[4]uint64)(unsafe.Pointer(&a[j+t]))
					x3 := (*[4]uint64)(unsafe.Pointer(&a[j+t+t2]))

					x0[0], x1[0], x2[0], x3[0] = radix4Butterfly(x0[0], x1[0], x2[0], x3[0], W1, C1, W2, C2, W3, C3, q, twoQ)
					x0[1], x1[1], x2[1], x3[1] = radix4Butterfly(x0[1], x1[1], x2[1], x3[1], W1, C1, W2, C2, W3, C3, q, twoQ)
					x0[2], x1[2], x2[2], x3[2] = radix4Butterfly(x0[2], x1[2], x2[2], x3[2], W1, C1, W2, C2, W3, C3, q, twoQ)
					x0[3], x1[3], x2[3], x3[3] = radix4Butterfly(x0[3], x1[3], x2[3], x3[3], W1, C1, W2, C2, W3, C3, q, twoQ)
				}
			}

		case t2 == 2:

			for i, k := 0, 0; i < m; i, k = i+1, k+8 {

				W1, W2, W3 := w[idx], w[idx+1], w[idx+2]
				C1, C2, C3 := wCon[idx], wCon[idx+1], wCon[idx+2]
				idx += 3

				x := (*[8]uint64)(unsafe.Pointer(&a[k]))

				x[0], x[2], x[4], x[6] = radix4Butterfly(x[0], x[2], x[4], x[6], W1, C1, W2, C2, W3, C3, q, twoQ)
				x[1], x[3], x[5], x[7] = radix4Butterfly(x[1], x[3], x[5], x[7], W1, C1, W2, C2, W3, C3, q, twoQ)
			}

		default:

			for i, k := 0, 0; i < m; i, k = i+1, k+4 {

				W1, W2, W3 := w[idx], w[idx+1], w[idx+2]
				C1, C2, C3 := wCon[idx], wCon[idx+1], wCon[idx+2]
				idx += 3

				x := (*[4]uint64)(unsafe.Pointer(&a[k]))

				x[0], x[1], x[2], x[3] = radix4Butterfly(x[0], x[1], x[2], x[3], W1, C1, W2, C2, W3, C3, q, twoQ)
			}
		}
	}

	reduce4q(a[:n], q)
}
