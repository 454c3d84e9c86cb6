package ring

import (
	"encoding/binary"
	"math/bits"

	"github.com/tuneinsight/nttbench/utils/sampling"
)

const randomBufferSize = 1024

// UniformSampler wraps a sampling.PRNG and represents the state of a sampler
// of coefficients uniformly distributed in [0, Modulus-1].
type UniformSampler struct {
	prng         sampling.PRNG
	modulus      uint64
	mask         uint64
	randomBuffer []byte
	ptr          int
}

// NewUniformSampler creates a new instance of UniformSampler from a PRNG and a modulus.
func NewUniformSampler(prng sampling.PRNG, modulus uint64) (u *UniformSampler) {
	u = new(UniformSampler)
	u.prng = prng
	u.modulus = modulus
	u.mask = (1 << uint64(bits.Len64(modulus-1))) - 1
	u.randomBuffer = make([]byte, randomBufferSize)
	return
}

// Read fills coeffs with values uniformly distributed in [0, Modulus-1].
func (u *UniformSampler) Read(coeffs []uint64) {

	var randomUint uint64

	q := u.modulus
	mask := u.mask
	buffer := u.randomBuffer
	byteArrayLength := len(buffer)

	ptr := u.ptr
	if ptr == 0 || ptr == byteArrayLength {
		if _, err := u.prng.Read(buffer); err != nil {
			// Sanity check, this error should not happen.
			panic(err)
		}
		ptr = 0 // for the case where ptr == byteArrayLength
	}

	for i := range coeffs {

		// Samples an integer between [0, q-1]
		for {

			// Refills the buff if it runs empty
			if ptr == byteArrayLength {
				if _, err := u.prng.Read(buffer); err != nil {
					// Sanity check, this error should not happen.
					panic(err)
				}
				ptr = 0
			}

			// Reads bytes from the buff
			randomUint = binary.BigEndian.Uint64(buffer[ptr:ptr+8]) & mask
			ptr += 8

			// If the integer is between [0, q-1], breaks the loop
			if randomUint < q {
				break
			}
		}

		coeffs[i] = randomUint
	}

	u.ptr = ptr
}

// ReadNew returns a new slice of n coefficients uniformly distributed in [0, Modulus-1].
func (u *UniformSampler) ReadNew(n int) (coeffs []uint64) {
	coeffs = make([]uint64, n)
	u.Read(coeffs)
	return
}
