package ntt

import (
	"fmt"
	"math/bits"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/nttbench/ring"
	"github.com/tuneinsight/nttbench/utils"
	"github.com/tuneinsight/nttbench/utils/sampling"
)

var testLogN = []int{4, 5, 10, 11}
var testLogQ = []int{30, 50, 61}

func testString(opname string, logN int, q uint64) string {
	return fmt.Sprintf("%s/N=%d/logQ=%d", opname, 1<<logN, bits.Len64(q))
}

type testContext struct {
	logN  int
	n     int
	q     uint64
	table *ring.NTTTable
	fwd   Table
	inv   Table
	fwdR4 Table
	invR4 Table
	nInv  MulOperand
	input []uint64
}

func genTestContext(t *testing.T, logN, logQ int, wordSize uint) *testContext {

	n := 1 << logN

	primes, err := ring.GenerateNTTPrimes(logQ, 2*n, 1)
	require.NoError(t, err)
	q := primes[0]

	table, err := ring.NewNTTTable(n, q)
	require.NoError(t, err)

	tc := &testContext{logN: logN, n: n, q: q, table: table}

	tc.fwd, tc.inv = NewRadix2Tables(table, wordSize)
	tc.fwdR4 = NewTable(Radix4ForwardPowers(tc.fwd.Powers), q, wordSize)
	tc.invR4 = NewTable(Radix4InversePowers(tc.inv.Powers), q, wordSize)
	tc.nInv = NewMulOperand(table.NInv, q, wordSize)

	prng, err := sampling.NewKeyedPRNG([]byte("ntt"), uint64(logN), q)
	require.NoError(t, err)
	tc.input = ring.NewUniformSampler(prng, q).ReadNew(n)

	return tc
}

// copyInput returns a fresh copy of the input polynomial.
func (tc *testContext) copyInput() []uint64 {
	return append([]uint64{}, tc.input...)
}

// reference returns the fully reduced forward NTT of the input.
func (tc *testContext) reference() []uint64 {
	a := tc.copyInput()
	ForwardRef(a, tc.n, tc.q, tc.fwd.Powers, tc.fwd.Constants)
	return a
}

func mulMod(x, y, q uint64) uint64 {
	hi, lo := bits.Mul64(x, y)
	return bits.Rem64(hi, lo, q)
}

func addMod(x, y, q uint64) uint64 {
	z := x + y
	if z >= q {
		z -= q
	}
	return z
}

func subMod(x, y, q uint64) uint64 {
	return addMod(x, q-y, q)
}

func requireReduced(t *testing.T, a []uint64, bound uint64) {
	for i, x := range a {
		require.Less(t, x, bound, "index %d", i)
	}
}

func requireCongruent(t *testing.T, want, have []uint64, q uint64) {
	require.Equal(t, len(want), len(have))
	for i := range want {
		require.Equal(t, want[i], have[i]%q, "index %d", i)
	}
}

func TestNTT(t *testing.T) {
	for _, logN := range []int{4, 5, 6} {
		testForwardEvaluation(t, genTestContext(t, logN, 30, WordSize))
	}
	for _, logN := range testLogN {
		for _, logQ := range testLogQ {
			tc := genTestContext(t, logN, logQ, WordSize)
			testForward(t, tc)
			testForwardLazy(t, tc)
			testForwardDouble(t, tc)
			testInverse(t, tc)
			testConvolution(t, tc)
		}
	}
	testLayouts(t)
}

// testForwardEvaluation checks that the forward transform evaluates the
// polynomial at psi^(2*bitrev(i)+1) at position i.
func testForwardEvaluation(t *testing.T, tc *testContext) {
	t.Run(testString("Forward/Evaluation", tc.logN, tc.q), func(t *testing.T) {

		q := tc.q
		psi := tc.table.PrimitiveRoot

		want := make([]uint64, tc.n)
		for i := range want {
			x := ring.ModExp(psi, uint64(2*i+1), q)
			var acc, xi uint64 = 0, 1
			for _, c := range tc.input {
				acc = addMod(acc, mulMod(c, xi, q), q)
				xi = mulMod(xi, x, q)
			}
			want[i] = acc
		}

		// outputs are in bit-reversed order
		utils.BitReverseInPlaceSlice(want, tc.n)

		require.Equal(t, want, tc.reference())
	})
}

func testForward(t *testing.T, tc *testContext) {

	n, q := tc.n, tc.q

	variants := []struct {
		name string
		f    func(a []uint64)
	}{
		{"SEAL", func(a []uint64) { ForwardSEAL(a, n, q, tc.fwd.Powers, tc.fwd.Constants) }},
		{"Radix4", func(a []uint64) { ForwardRadix4(a, n, q, tc.fwdR4.Powers, tc.fwdR4.Constants) }},
		{"Radix4x4", func(a []uint64) { ForwardRadix4x4(a, n, q, tc.fwdR4.Powers, tc.fwdR4.Constants) }},
	}

	want := tc.reference()
	requireReduced(t, want, q)

	for _, v := range variants {
		t.Run(testString("Forward/"+v.name, tc.logN, q), func(t *testing.T) {
			a := tc.copyInput()
			v.f(a)
			require.Equal(t, want, a)
		})
	}
}

func testForwardLazy(t *testing.T, tc *testContext) {

	n, q := tc.n, tc.q

	variants := []struct {
		name string
		f    func(a []uint64)
	}{
		{"Ref", func(a []uint64) { ForwardRefLazy(a, n, q, tc.fwd.Powers, tc.fwd.Constants) }},
		{"SEAL", func(a []uint64) { ForwardSEALLazy(a, n, q, tc.fwd.Powers, tc.fwd.Constants) }},
		{"Radix4", func(a []uint64) { ForwardRadix4Lazy(a, n, q, tc.fwdR4.Powers, tc.fwdR4.Constants) }},
	}

	want := tc.reference()

	for _, v := range variants {
		t.Run(testString("ForwardLazy/"+v.name, tc.logN, q), func(t *testing.T) {
			a := tc.copyInput()
			v.f(a)
			requireReduced(t, a, 4*q)
			requireCongruent(t, want, a, q)
		})
	}
}

func testForwardDouble(t *testing.T, tc *testContext) {
	t.Run(testString("Forward/Double", tc.logN, tc.q), func(t *testing.T) {

		a := tc.copyInput()
		b := make([]uint64, tc.n)
		for i := range b {
			b[i] = tc.input[tc.n-1-i]
		}

		wantB := append([]uint64{}, b...)
		ForwardRef(wantB, tc.n, tc.q, tc.fwd.Powers, tc.fwd.Constants)

		ForwardRefDouble(a, b, tc.n, tc.q, tc.fwd.Powers, tc.fwd.Constants)

		require.Equal(t, tc.reference(), a)
		require.Equal(t, wantB, b)
	})
}

func testInverse(t *testing.T, tc *testContext) {

	n, q := tc.n, tc.q

	variants := []struct {
		name string
		f    func(a []uint64)
	}{
		{"Ref", func(a []uint64) { InverseRef(a, n, q, tc.nInv, tc.inv.Powers, tc.inv.Constants) }},
		{"SEAL", func(a []uint64) { InverseSEAL(a, n, q, tc.nInv, tc.inv.Powers, tc.inv.Constants) }},
		{"Radix4", func(a []uint64) { InverseRadix4(a, n, q, tc.nInv, tc.invR4.Powers, tc.invR4.Constants) }},
	}

	for _, v := range variants {
		t.Run(testString("Inverse/"+v.name, tc.logN, q), func(t *testing.T) {

			a := tc.reference()
			v.f(a)
			require.Equal(t, tc.input, a)

			// Inputs in [0, 2q-1] are accepted
			a = tc.reference()
			for i := 0; i < n; i += 3 {
				a[i] += q
			}
			v.f(a)
			require.Equal(t, tc.input, a)
		})
	}
}

// testConvolution checks that the point-wise product in the NTT domain is the
// nega-cyclic convolution in the coefficient domain.
func testConvolution(t *testing.T, tc *testContext) {
	t.Run(testString("Convolution", tc.logN, tc.q), func(t *testing.T) {

		n, q := tc.n, tc.q

		a := tc.copyInput()
		b := make([]uint64, n)
		for i := range b {
			b[i] = uint64(i+1) % q
		}

		want := make([]uint64, n)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				p := mulMod(a[i], b[j], q)
				if k := i + j; k < n {
					want[k] = addMod(want[k], p, q)
				} else {
					want[k-n] = subMod(want[k-n], p, q)
				}
			}
		}

		ForwardRadix4(a, n, q, tc.fwdR4.Powers, tc.fwdR4.Constants)
		ForwardSEAL(b, n, q, tc.fwd.Powers, tc.fwd.Constants)

		for i := range a {
			a[i] = mulMod(a[i], b[i], q)
		}

		InverseRadix4(a, n, q, tc.nInv, tc.invR4.Powers, tc.invR4.Constants)

		require.Equal(t, want, a)
	})
}

// identityPowers returns the placeholder powers w[i] = i, which make the
// expected layouts readable.
func identityPowers(n int) (w []uint64) {
	w = make([]uint64, n)
	for i := range w {
		w[i] = uint64(i)
	}
	return
}

func testLayouts(t *testing.T) {

	t.Run("Layout/Radix4Forward/N=16", func(t *testing.T) {
		want := []uint64{
			1, 2, 3,
			4, 8, 9,
			5, 10, 11,
			6, 12, 13,
			7, 14, 15,
		}
		if diff := cmp.Diff(want, Radix4ForwardPowers(identityPowers(16))); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("Layout/Radix4Forward/N=32", func(t *testing.T) {
		want := []uint64{
			1,
			2, 4, 5,
			3, 6, 7,
			8, 16, 17,
			9, 18, 19,
			10, 20, 21,
			11, 22, 23,
			12, 24, 25,
			13, 26, 27,
			14, 28, 29,
			15, 30, 31,
		}
		if diff := cmp.Diff(want, Radix4ForwardPowers(identityPowers(32))); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("Layout/Radix4Inverse/N=16", func(t *testing.T) {
		want := []uint64{
			8, 9, 4,
			10, 11, 5,
			12, 13, 6,
			14, 15, 7,
			2, 3, 1,
		}
		if diff := cmp.Diff(want, Radix4InversePowers(identityPowers(16))); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("Layout/Radix4Inverse/N=32", func(t *testing.T) {
		r4 := Radix4InversePowers(identityPowers(32))
		require.Len(t, r4, 31)
		require.Equal(t, []uint64{16, 17, 8}, r4[:3])
		require.Equal(t, []uint64{4, 5, 2, 6, 7, 3}, r4[24:30])
		require.Equal(t, uint64(1), r4[30])
	})

	for _, logN := range []int{4, 5, 10} {
		n := 1 << logN
		t.Run(fmt.Sprintf("Layout/Radix4/Len/N=%d", n), func(t *testing.T) {
			require.Equal(t, n-1, len(Radix4ForwardPowers(identityPowers(n))))
			require.Equal(t, n-1, len(Radix4InversePowers(identityPowers(n))))
		})
	}

	t.Run("Layout/Table", func(t *testing.T) {
		q := uint64(97)
		tab := NewTable([]uint64{0, 1, 96}, q, WordSize)
		require.Equal(t, 3, tab.Len())
		for i, w := range tab.Powers {
			require.Equal(t, ring.ShoupConstant(w, q, WordSize), tab.Constants[i])
		}
		op := NewMulOperand(5, q, WordSize)
		require.Equal(t, uint64(5), op.Op)
		require.Equal(t, uint64(35), ring.MulShoup(7, op.Op, op.Con, q))
	})
}
