package ntt

// ForwardRef evaluates the forward NTT of a in place with the radix-2
// Cooley-Tukey butterflies of Harvey. w and wCon are the bit-reversed powers
// of psi and their 64-bit Shoup constants.
// Returns values in the range [0, q-1].
func ForwardRef(a []uint64, n int, q uint64, w, wCon []uint64) {
	ForwardRefLazy(a, n, q, w, wCon)
	reduce4q(a[:n], q)
}

// ForwardRefLazy is identical to ForwardRef but skips the final reduction.
// Returns values in the range [0, 4q-1].
func ForwardRefLazy(a []uint64, n int, q uint64, w, wCon []uint64) {

	twoQ := q << 1

	for m, t := 1, n>>1; m < n; m, t = m<<1, t>>1 {

		for i, k := 0, 0; i < m; i, k = i+1, k+2*t {

			W, WCon := w[m+i], wCon[m+i]

			x := a[k : k+t]
			y := a[k+t : k+2*t]

			for j := range x {
				x[j], y[j] = fwdButterfly(x[j], y[j], W, WCon, q, twoQ)
			}
		}
	}
}

// ForwardRefDouble evaluates the forward NTT of a and b in place, sharing the
// twiddle loads of each block between the two polynomials.
// Returns values in the range [0, q-1].
func ForwardRefDouble(a, b []uint64, n int, q uint64, w, wCon []uint64) {

	twoQ := q << 1

	for m, t := 1, n>>1; m < n; m, t = m<<1, t>>1 {

		for i, k := 0, 0; i < m; i, k = i+1, k+2*t {

			W, WCon := w[m+i], wCon[m+i]

			xa, ya := a[k:k+t], a[k+t:k+2*t]
			xb, yb := b[k:k+t], b[k+t:k+2*t]

			for j := range xa {
				xa[j], ya[j] = fwdButterfly(xa[j], ya[j], W, WCon, q, twoQ)
				xb[j], yb[j] = fwdButterfly(xb[j], yb[j], W, WCon, q, twoQ)
			}
		}
	}

	reduce4q(a[:n], q)
	reduce4q(b[:n], q)
}

// InverseRef evaluates the inverse NTT of a in place with the radix-2
// Gentleman-Sande butterflies of Harvey, followed by the multiplication by N^-1.
// w and wCon are the bit-reversed powers of psi^-1 and their 64-bit Shoup constants.
// Returns values in the range [0, q-1].
func InverseRef(a []uint64, n int, q uint64, nInv MulOperand, w, wCon []uint64) {

	twoQ := q << 1

	for h, t := n>>1, 1; h > 0; h, t = h>>1, t<<1 {

		for i, k := 0, 0; i < h; i, k = i+1, k+2*t {

			W, WCon := w[h+i], wCon[h+i]

			x := a[k : k+t]
			y := a[k+t : k+2*t]

			for j := range x {
				x[j], y[j] = invButterfly(x[j], y[j], W, WCon, q, twoQ)
			}
		}
	}

	scale(a[:n], q, nInv)
}
