package ntt

import (
	"fmt"
	"testing"

	"github.com/tuneinsight/nttbench/ring"
	"github.com/tuneinsight/nttbench/utils/sampling"
)

func BenchmarkNTT(b *testing.B) {
	for _, logN := range []int{10, 12, 14} {
		benchForward(logN, b)
		benchInverse(logN, b)
	}
}

func genBenchContext(logN int, b *testing.B) (n int, q uint64, fwd, inv, fwdR4, invR4 Table, nInv MulOperand, p []uint64) {

	n = 1 << logN

	primes, err := ring.GenerateNTTPrimes(50, 2*n, 1)
	if err != nil {
		b.Fatal(err)
	}
	q = primes[0]

	table, err := ring.NewNTTTable(n, q)
	if err != nil {
		b.Fatal(err)
	}

	fwd, inv = NewRadix2Tables(table, WordSize)
	fwdR4 = NewTable(Radix4ForwardPowers(fwd.Powers), q, WordSize)
	invR4 = NewTable(Radix4InversePowers(inv.Powers), q, WordSize)
	nInv = NewMulOperand(table.NInv, q, WordSize)

	prng, err := sampling.NewKeyedPRNG(sampling.RandBytes(sampling.KeySize))
	if err != nil {
		b.Fatal(err)
	}

	p = ring.NewUniformSampler(prng, q).ReadNew(n)

	return
}

func benchForward(logN int, b *testing.B) {

	n, q, fwd, _, fwdR4, _, _, p := genBenchContext(logN, b)

	b.Run(fmt.Sprintf("Forward/Ref/N=%d", n), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			ForwardRef(p, n, q, fwd.Powers, fwd.Constants)
		}
	})

	b.Run(fmt.Sprintf("Forward/SEAL/N=%d", n), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			ForwardSEAL(p, n, q, fwd.Powers, fwd.Constants)
		}
	})

	b.Run(fmt.Sprintf("Forward/Radix4/N=%d", n), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			ForwardRadix4(p, n, q, fwdR4.Powers, fwdR4.Constants)
		}
	})

	b.Run(fmt.Sprintf("Forward/Radix4x4/N=%d", n), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			ForwardRadix4x4(p, n, q, fwdR4.Powers, fwdR4.Constants)
		}
	})
}

func benchInverse(logN int, b *testing.B) {

	n, q, _, inv, _, invR4, nInv, p := genBenchContext(logN, b)

	b.Run(fmt.Sprintf("Inverse/Ref/N=%d", n), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			InverseRef(p, n, q, nInv, inv.Powers, inv.Constants)
		}
	})

	b.Run(fmt.Sprintf("Inverse/SEAL/N=%d", n), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			InverseSEAL(p, n, q, nInv, inv.Powers, inv.Constants)
		}
	})

	b.Run(fmt.Sprintf("Inverse/Radix4/N=%d", n), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			InverseRadix4(p, n, q, nInv, invR4.Powers, invR4.Constants)
		}
	})
}
