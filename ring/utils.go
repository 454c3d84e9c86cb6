package ring

// ModExp performs the modular exponentiation x^e mod p,
// x and p are required to be at most 64 bits to avoid an overflow.
func ModExp(x, e, p uint64) (result uint64) {
	brc := GenBRedConstant(p)
	x = BRedAdd(x, p, brc)
	result = 1
	for i := e; i > 0; i >>= 1 {
		if i&1 == 1 {
			result = BRed(result, x, p, brc)
		}
		x = BRed(x, x, p, brc)
	}
	return result
}

// ModInverse returns x^-1 mod p, for p prime and x non-zero mod p.
func ModInverse(x, p uint64) uint64 {
	return ModExp(x, p-2, p)
}
