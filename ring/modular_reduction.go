package ring

import (
	"math/big"
	"math/bits"
)

//==========================
//=== BARRETT REDUCTION  ===
//==========================

// GenBRedConstant computes the constant for the BRed algorithm.
// Returns ((2^128)/q)/(2^64) and (2^128)/q mod 2^64.
func GenBRedConstant(q uint64) [2]uint64 {
	bigR := new(big.Int).Lsh(big.NewInt(1), 128)
	bigR.Quo(bigR, new(big.Int).SetUint64(q))

	mhi := new(big.Int).Rsh(bigR, 64).Uint64()
	mlo := bigR.Uint64()

	return [2]uint64{mhi, mlo}
}

// BRedAdd reduces a 64 bit integer by q.
// Assumes that x <= 64bits.
func BRedAdd(x, q uint64, u [2]uint64) (r uint64) {
	s0, _ := bits.Mul64(x, u[0])
	r = x - s0*q
	if r >= q {
		r -= q
	}
	return
}

// BRed operates a 64x64 bit multiplication with
// a barrett reduction.
// Assumes that x and y are in [0, q-1].
func BRed(x, y, q uint64, u [2]uint64) (r uint64) {

	var lhi, mhi, mlo, s0, s1, carry uint64

	ahi, alo := bits.Mul64(x, y)

	// (alo*ulo)>>64

	lhi, _ = bits.Mul64(alo, u[1])

	// ((ahi*ulo + alo*uhi) + (alo*ulo))>>64

	mhi, mlo = bits.Mul64(alo, u[0])

	s0, carry = bits.Add64(mlo, lhi, 0)

	s1 = mhi + carry

	mhi, mlo = bits.Mul64(ahi, u[1])

	_, carry = bits.Add64(mlo, s0, 0)

	lhi = mhi + carry

	// (ahi*uhi) + (((ahi*ulo + alo*uhi) + (alo*ulo))>>64)

	s0 = ahi*u[0] + s1 + lhi

	r = alo - s0*q

	if r >= q {
		r -= q
	}

	return
}

//===============================
//==== CONDITIONAL REDUCTION ====
//===============================

// CRed reduce returns a mod q, where,
// a is required to be in the range [0, 2q-1].
func CRed(a, q uint64) uint64 {
	if a >= q {
		return a - q
	}
	return a
}

//========================
//=== SHOUP REDUCTION  ===
//========================

// ShoupConstant returns floor(w * 2^wordSize / q), the precomputed
// constant enabling the division-free evaluation of w*y mod q.
// Assumes w in [0, q-1] and wordSize in [1, 64].
func ShoupConstant(w, q uint64, wordSize uint) (wCon uint64) {
	wCon, _ = bits.Div64(w>>(64-wordSize), w<<wordSize, q)
	return
}

// MulShoupLazy returns w*y mod q in the range [0, 2q-1], where wCon
// is the 64-bit Shoup constant of w.
func MulShoupLazy(y, w, wCon, q uint64) uint64 {
	hi, _ := bits.Mul64(wCon, y)
	return w*y - hi*q
}

// MulShoup returns w*y mod q, where wCon is the 64-bit Shoup constant of w.
func MulShoup(y, w, wCon, q uint64) (r uint64) {
	hi, _ := bits.Mul64(wCon, y)
	r = w*y - hi*q
	if r >= q {
		r -= q
	}
	return
}
