package ntt

import (
	"math/bits"
	"unsafe"

	"github.com/tuneinsight/nttbench/utils"
)

// IFMAWordSize is the bit-size of the Shoup constants consumed by the
// AVX512-IFMA kernels. Their inputs stay below 4q, which requires q < 2^50.
const IFMAWordSize = 52

// IFMAMaxModulusBits is the maximum bit-size of a modulus for the AVX512-IFMA kernels.
const IFMAMaxModulusBits = IFMAWordSize - 2

// ifmaLanes is the number of 64-bit lanes of a 512-bit register.
const ifmaLanes = 8

func mulShoupLazy52(y, W, WCon, q uint64) uint64 {
	hi, lo := bits.Mul64(WCon, y)
	return W*y - (hi<<12|lo>>52)*q
}

func fwdButterfly52(U, V, W, WCon, q, twoQ uint64) (X, Y uint64) {
	if U >= twoQ {
		U -= twoQ
	}
	T := mulShoupLazy52(V, W, WCon, q)
	return U + T, U + twoQ - T
}

func fwdButterfly52x8(x, y *[8]uint64, W, WCon, q, twoQ uint64) {
	x[0], y[0] = fwdButterfly52(x[0], y[0], W, WCon, q, twoQ)
	x[1], y[1] = fwdButterfly52(x[1], y[1], W, WCon, q, twoQ)
	x[2], y[2] = fwdButterfly52(x[2], y[2], W, WCon, q, twoQ)
	x[3], y[3] = fwdButterfly52(x[3], y[3], W, WCon, q, twoQ)
	x[4], y[4] = fwdButterfly52(x[4], y[4], W, WCon, q, twoQ)
	x[5], y[5] = fwdButterfly52(x[5], y[5], W, WCon, q, twoQ)
	x[6], y[6] = fwdButterfly52(x[6], y[6], W, WCon, q, twoQ)
	x[7], y[7] = fwdButterfly52(x[7], y[7], W, WCon, q, twoQ)
}

func radix4Butterfly52(x0, x1, x2, x3 *uint64, W1, C1, W2, C2, W3, C3, q, twoQ uint64) {
	*x0, *x2 = fwdButterfly52(*x0, *x2, W1, C1, q, twoQ)
	*x1, *x3 = fwdButterfly52(*x1, *x3, W1, C1, q, twoQ)
	*x0, *x1 = fwdButterfly52(*x0, *x1, W2, C2, q, twoQ)
	*x2, *x3 = fwdButterfly52(*x2, *x3, W3, C3, q, twoQ)
}

func radix4Butterfly52x8(x0, x1, x2, x3 *[8]uint64, W1, C1, W2, C2, W3, C3, q, twoQ uint64) {
	fwdButterfly52x8(x0, x2, W1, C1, q, twoQ)
	fwdButterfly52x8(x1, x3, W1, C1, q, twoQ)
	fwdButterfly52x8(x0, x1, W2, C2, q, twoQ)
	fwdButterfly52x8(x2, x3, W3, C3, q, twoQ)
}

func lanes8(a []uint64, i int) *[8]uint64 {
	return (*[8]uint64)(unsafe.Pointer(&a[i]))
}

// radix2Layer52 applies the forward layer (m, t) with the twiddles w[off+i],
// i in [0, m).
func radix2Layer52(a []uint64, m, t, off int, q uint64, w, wCon []uint64) {

	twoQ := q << 1

	for i, k := 0, 0; i < m; i, k = i+1, k+2*t {

		W, WCon := w[off+i], wCon[off+i]

		if t >= ifmaLanes {
			for j := k; j < k+t; j += ifmaLanes {
				fwdButterfly52x8(lanes8(a, j), lanes8(a, j+t), W, WCon, q, twoQ)
			}
		} else {
			for j := k; j < k+t; j++ {
				a[j], a[j+t] = fwdButterfly52(a[j], a[j+t], W, WCon, q, twoQ)
			}
		}
	}
}

// ForwardRadix2HEXL evaluates the forward NTT of a in place with the radix-2
// AVX512-IFMA kernel. w must be the bit-reversed powers and wCon their
// IFMAWordSize-bit Shoup constants.
// Returns values in the range [0, q-1].
func ForwardRadix2HEXL(a []uint64, n int, q uint64, w, wCon []uint64) {
	for m, t := 1, n>>1; m < n; m, t = m<<1, t>>1 {
		radix2Layer52(a, m, t, m, q, w, wCon)
	}
	reduce4q(a[:n], q)
}

// ForwardRadix4IFMA evaluates the forward NTT of a in place with the radix-4
// AVX512-IFMA kernel. w must be laid out by Radix4ForwardPowers and wCon hold
// the IFMAWordSize-bit Shoup constants.
// Returns values in the range [0, q-1].
func ForwardRadix4IFMA(a []uint64, n int, q uint64, w, wCon []uint64) {

	twoQ := q << 1

	var idx int

	m, t := 1, n>>1

	if utils.Log2(n)&1 == 1 {
		radix2Layer52(a, 1, t, 0, q, w, wCon)
		idx, m, t = 1, 2, t>>1
	}

	for ; m < n; m, t = m<<2, t>>2 {

		t2 := t >> 1

		for i, k := 0, 0; i < m; i, k = i+1, k+2*t {

			W1, W2, W3 := w[idx], w[idx+1], w[idx+2]
			C1, C2, C3 := wCon[idx], wCon[idx+1], wCon[idx+2]
			idx += 3

			if t2 >= ifmaLanes {
				for j := k; j < k+t2; j += ifmaLanes {
					radix4Butterfly52x8(lanes8(a, j), lanes8(a, j+t2), lanes8(a, j+t), lanes8(a, j+t+t2), W1, C1, W2, C2, W3, C3, q, twoQ)
				}
			} else {
				for j := k; j < k+t2; j++ {
					radix4Butterfly52(&a[j], &a[j+t2], &a[j+t], &a[j+t+t2], W1, C1, W2, C2, W3, C3, q, twoQ)
				}
			}
		}
	}

	reduce4q(a[:n], q)
}

// Radix4UnorderedForwardPowers re-arranges the bit-reversed powers w for
// ForwardRadix4IFMAUnordered. It matches Radix4ForwardPowers on the layers
// where a block spans at least a full register, and stores one triple per
// radix-4 butterfly on the narrower layers so that a register of butterflies
// loads its twiddles contiguously.
func Radix4UnorderedForwardPowers(w []uint64) (r4 []uint64) {

	n := len(w)

	r4 = make([]uint64, 0, n)

	m, t := 1, n>>1
	if utils.Log2(n)&1 == 1 {
		r4 = append(r4, w[1])
		m, t = 2, t>>1
	}

	for ; m < n; m, t = m<<2, t>>2 {
		if t2 := t >> 1; t2 >= ifmaLanes {
			for i := 0; i < m; i++ {
				r4 = append(r4, w[m+i], w[2*m+2*i], w[2*m+2*i+1])
			}
		} else {
			for L := 0; L < n>>2; L++ {
				i := L / t2
				r4 = append(r4, w[m+i], w[2*m+2*i], w[2*m+2*i+1])
			}
		}
	}

	return
}

// ForwardRadix4IFMAUnordered evaluates the forward NTT of a in place with the
// radix-4 AVX512-IFMA kernel that processes the narrow layers one register of
// butterflies at a time. w must be laid out by Radix4UnorderedForwardPowers.
// Returns values in the range [0, q-1].
func ForwardRadix4IFMAUnordered(a []uint64, n int, q uint64, w, wCon []uint64) {

	twoQ := q << 1

	var idx int

	m, t := 1, n>>1

	if utils.Log2(n)&1 == 1 {
		radix2Layer52(a, 1, t, 0, q, w, wCon)
		idx, m, t = 1, 2, t>>1
	}

	lanes := utils.Min(ifmaLanes, n>>2)

	for ; m < n; m, t = m<<2, t>>2 {

		t2 := t >> 1

		if t2 >= ifmaLanes {

			for i, k := 0, 0; i < m; i, k = i+1, k+2*t {

				W1, W2, W3 := w[idx], w[idx+1], w[idx+2]
				C1, C2, C3 := wCon[idx], wCon[idx+1], wCon[idx+2]
				idx += 3

				for j := k; j < k+t2; j += ifmaLanes {
					radix4Butterfly52x8(lanes8(a, j), lanes8(a, j+t2), lanes8(a, j+t), lanes8(a, j+t+t2), W1, C1, W2, C2, W3, C3, q, twoQ)
				}
			}

			continue
		}

		for L := 0; L < n>>2; L += lanes {
			for l := L; l < L+lanes; l++ {
				i, j := l/t2, l%t2
				k := 2*i*t + j
				radix4Butterfly52(&a[k], &a[k+t2], &a[k+t], &a[k+t+t2], w[idx], wCon[idx], w[idx+1], wCon[idx+1], w[idx+2], wCon[idx+2], q, twoQ)
				idx += 3
			}
		}
	}

	reduce4q(a[:n], q)
}

// R4R2ForwardPowers re-arranges the bit-reversed powers w for ForwardR4R2IFMA:
// radix-4 triples while a half block spans at least a full register, then the
// radix-2 roots w[m+i] of the remaining layers.
func R4R2ForwardPowers(w []uint64) (r []uint64) {

	n := len(w)

	r = make([]uint64, 0, n)

	m, t := 1, n>>1

	for ; t >= 2*ifmaLanes && m < n; m, t = m<<2, t>>2 {
		for i := 0; i < m; i++ {
			r = append(r, w[m+i], w[2*m+2*i], w[2*m+2*i+1])
		}
	}

	for ; m < n; m <<= 1 {
		r = append(r, w[m:2*m]...)
	}

	return
}

// ForwardR4R2IFMA evaluates the forward NTT of a in place with radix-4
// AVX512-IFMA butterflies on the wide layers and radix-2 butterflies on the
// narrow ones. w must be laid out by R4R2ForwardPowers.
// Returns values in the range [0, q-1].
func ForwardR4R2IFMA(a []uint64, n int, q uint64, w, wCon []uint64) {

	twoQ := q << 1

	var idx int

	m, t := 1, n>>1

	for ; t >= 2*ifmaLanes && m < n; m, t = m<<2, t>>2 {

		t2 := t >> 1

		for i, k := 0, 0; i < m; i, k = i+1, k+2*t {

			W1, W2, W3 := w[idx], w[idx+1], w[idx+2]
			C1, C2, C3 := wCon[idx], wCon[idx+1], wCon[idx+2]
			idx += 3

			for j := k; j < k+t2; j += ifmaLanes {
				radix4Butterfly52x8(lanes8(a, j), lanes8(a, j+t2), lanes8(a, j+t), lanes8(a, j+t+t2), W1, C1, W2, C2, W3, C3, q, twoQ)
			}
		}
	}

	for ; m < n; m, t = m<<1, t>>1 {
		radix2Layer52(a, m, t, idx, q, w, wCon)
		idx += m
	}

	reduce4q(a[:n], q)
}

// r16LeafSize is the number of coefficients transformed by a leaf of ForwardR2R16IFMA.
const r16LeafSize = 16

// R2R16ForwardPowers re-arranges the bit-reversed powers w for
// ForwardR2R16IFMA: the radix-2 roots w[1:N/16] of the outer layers, then for
// each leaf b the 15 roots of its last four layers.
func R2R16ForwardPowers(w []uint64) (r []uint64) {

	n := len(w)

	r = make([]uint64, 0, n)

	r = append(r, w[1:n/r16LeafSize]...)

	for b := 0; b < n/r16LeafSize; b++ {
		for m, s := n/r16LeafSize, 1; s < r16LeafSize; m, s = m<<1, s<<1 {
			r = append(r, w[m+s*b:m+s*(b+1)]...)
		}
	}

	return
}

// r16Leaf applies the last four forward layers on a block of 16 coefficients.
// w holds the 15 roots of the block.
func r16Leaf(x *[16]uint64, q, twoQ uint64, w, wCon []uint64) {
	var idx int
	for s, t := 1, r16LeafSize>>1; t > 0; s, t = s<<1, t>>1 {
		for i, k := 0, 0; i < s; i, k = i+1, k+2*t {
			W, WCon := w[idx], wCon[idx]
			idx++
			for j := k; j < k+t; j++ {
				x[j], x[j+t] = fwdButterfly52(x[j], x[j+t], W, WCon, q, twoQ)
			}
		}
	}
}

// ForwardR2R16IFMA evaluates the forward NTT of a in place with radix-2
// AVX512-IFMA layers down to blocks of 16 coefficients, each of which is then
// transformed in registers. w must be laid out by R2R16ForwardPowers.
// Returns values in the range [0, q-1].
func ForwardR2R16IFMA(a []uint64, n int, q uint64, w, wCon []uint64) {

	twoQ := q << 1

	blocks := n / r16LeafSize

	var idx int
	for m, t := 1, n>>1; m < blocks; m, t = m<<1, t>>1 {
		radix2Layer52(a, m, t, idx, q, w, wCon)
		idx += m
	}

	for b := 0; b < blocks; b++ {
		r16Leaf((*[16]uint64)(unsafe.Pointer(&a[b*r16LeafSize])), q, twoQ, w[idx:idx+r16LeafSize-1], wCon[idx:idx+r16LeafSize-1])
		idx += r16LeafSize - 1
	}

	reduce4q(a[:n], q)
}
