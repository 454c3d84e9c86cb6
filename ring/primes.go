package ring

import (
	"fmt"
	"math/big"
)

// IsPrime applies the Baillie-PSW, which is 100% accurate for numbers below 2^64.
func IsPrime(x uint64) bool {
	return new(big.Int).SetUint64(x).ProbablyPrime(0)
}

// GenerateNTTPrimes generates n NthRoot NTT friendly primes given logQ = size of the primes.
// It will return all the appropriate primes, up to the number of n, with the
// best available deviation from the base power of 2 for the given n.
func GenerateNTTPrimes(logQ, NthRoot, n int) (primes []uint64, err error) {

	if logQ < 1 || logQ > MaxModulusBits-1 {
		return nil, fmt.Errorf("invalid logQ: must be between 1 and %d but is %d", MaxModulusBits-1, logQ)
	}

	if logQ == MaxModulusBits-1 {
		return GenerateNTTPrimesP(logQ, NthRoot, n)
	}

	return GenerateNTTPrimesQ(logQ, NthRoot, n)
}

// GenerateNTTPrimesQ generates "levels" different NthRoot NTT-friendly
// primes starting from 2**LogQ and alternating between upward and downward.
func GenerateNTTPrimesQ(logQ, NthRoot, levels int) (primes []uint64, err error) {

	var nextPrime, previousPrime, Qpow2 uint64
	var checkfornextprime, checkforpreviousprime bool

	primes = []uint64{}

	Qpow2 = uint64(1 << logQ)

	nextPrime = Qpow2 + 1
	previousPrime = Qpow2 + 1

	checkfornextprime = true
	checkforpreviousprime = true

	for {

		if !(checkfornextprime || checkforpreviousprime) {
			return nil, fmt.Errorf("cannot generate enough primes for logQ=%d and NthRoot=%d", logQ, NthRoot)
		}

		if checkfornextprime {

			if nextPrime > (uint64(1)<<MaxModulusBits)-uint64(NthRoot) {

				checkfornextprime = false

			} else {

				nextPrime += uint64(NthRoot)

				if IsPrime(nextPrime) {

					primes = append(primes, nextPrime)

					if len(primes) == levels {
						return
					}
				}
			}
		}

		if checkforpreviousprime {

			if previousPrime < uint64(NthRoot) {

				checkforpreviousprime = false

			} else {

				previousPrime -= uint64(NthRoot)

				if IsPrime(previousPrime) {

					primes = append(primes, previousPrime)

					if len(primes) == levels {
						return
					}
				}
			}

		}
	}
}

// GenerateNTTPrimesP generates n different NthRoot NTT-friendly primes
// strictly below 2^logP, the largest first.
func GenerateNTTPrimesP(logP, NthRoot, n int) (primes []uint64, err error) {

	var x, Ppow2 uint64

	primes = []uint64{}

	Ppow2 = uint64(1 << logP)

	x = Ppow2 + 1

	for {

		// We start by subtracting 2N to ensure that the prime bit-length is smaller than LogP

		if x > uint64(NthRoot) {

			x -= uint64(NthRoot)

			if IsPrime(x) {

				primes = append(primes, x)

				if len(primes) == n {
					return primes, nil
				}
			}

		} else {
			return nil, fmt.Errorf("cannot generate enough primes for logP=%d and NthRoot=%d", logP, NthRoot)
		}
	}
}
