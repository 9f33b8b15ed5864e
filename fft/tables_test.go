package fft

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestBitrevInvolution verifies that the bit-reversal permutation is an
// involution fixing 0, for every power-of-two length.
func TestBitrevInvolution(t *testing.T) {
	t.Parallel()
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("rho[rho[j]] == j and rho[0] == 0", prop.ForAll(
		func(exp int) bool {
			m := 1 << exp
			rho := bitrev(m)
			if rho[0] != 0 {
				return false
			}
			for j := range rho {
				if rho[rho[j]] != j {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 12),
	))

	properties.TestingRun(t)
}

func TestBitrevKnownValues(t *testing.T) {
	t.Parallel()
	tests := []struct {
		m    int
		want []int
	}{
		{m: 1, want: []int{0}},
		{m: 2, want: []int{0, 1}},
		{m: 4, want: []int{0, 2, 1, 3}},
		{m: 8, want: []int{0, 4, 2, 6, 1, 5, 3, 7}},
	}
	for _, tt := range tests {
		rho := bitrev(tt.m)
		for j, want := range tt.want {
			if rho[j] != want {
				t.Errorf("bitrev(%d)[%d] = %d, want %d", tt.m, j, rho[j], want)
			}
		}
	}
}

func TestUfftWeights(t *testing.T) {
	t.Parallel()
	const m = 16
	ws := ufftWeights(m)
	if len(ws) != m/2 {
		t.Fatalf("weight table length %d, want %d", len(ws), m/2)
	}
	for j, w := range ws {
		want := cmplx.Exp(complex(0, -2*math.Pi*float64(j)/m))
		if cmplx.Abs(w-want) > 1e-12 {
			t.Errorf("ws[%d] = %v, want %v", j, w, want)
		}
		if d := cmplx.Abs(w) - 1; math.Abs(d) > 1e-12 {
			t.Errorf("ws[%d] is not unit magnitude", j)
		}
	}
	if len(ufftWeights(1)) != 0 {
		t.Error("ufftWeights(1) should be empty")
	}
}

func TestCycleSchedule(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		k1, np, p  int
		wantCycles []int
	}{
		{name: "single round", k1: 2, np: 4, p: 2, wantCycles: []int{2}},
		{name: "no rounds when p is 1", k1: 8, np: 8, p: 1, wantCycles: nil},
		{name: "trivial world", k1: 1, np: 1, p: 1, wantCycles: []int{1}},
		{name: "two rounds", k1: 2, np: 4, p: 8, wantCycles: []int{2, 8}},
		// np == 1 must not loop forever: exactly one round.
		{name: "one element per rank", k1: 4, np: 1, p: 4, wantCycles: []int{4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := cycleSchedule(tt.k1, tt.np, tt.p)
			if len(got) != len(tt.wantCycles) {
				t.Fatalf("cycles = %v, want %v", got, tt.wantCycles)
			}
			for i := range got {
				if got[i] != tt.wantCycles[i] {
					t.Fatalf("cycles = %v, want %v", got, tt.wantCycles)
				}
			}
		})
	}
}

func TestTwiddlesShape(t *testing.T) {
	t.Parallel()
	np := 4
	rho := bitrev(np)
	cycles := []int{2, 8}
	tw := twiddles(cycles, rho, np, 3)
	if len(tw) != len(cycles)*np {
		t.Fatalf("twiddle table length %d, want %d", len(tw), len(cycles)*np)
	}
	for j, w := range tw {
		if d := cmplx.Abs(w) - 1; math.Abs(d) > 1e-12 {
			t.Errorf("tw[%d] is not unit magnitude", j)
		}
	}
	// Rank 0 has alpha = 0 on every round: all twiddles are exactly 1.
	for j, w := range twiddles(cycles, rho, np, 0) {
		if cmplx.Abs(w-1) > 1e-12 {
			t.Errorf("rank-0 twiddle tw[%d] = %v, want 1", j, w)
		}
	}
}

// TestUfftMatchesNaiveDFT checks the local unordered kernel against a direct
// DFT after undoing the bit-reversal of the output order.
func TestUfftMatchesNaiveDFT(t *testing.T) {
	t.Parallel()
	const m = 8
	x := make([]complex128, m)
	for j := range x {
		x[j] = complex(float64(j), float64(m-j))
	}
	want := naiveDFT(x)

	got := append([]complex128(nil), x...)
	permute(got, bitrev(m))
	ufft(got, ufftWeights(m), Forward)

	for k := 0; k < m; k++ {
		if cmplx.Abs(got[k]-want[k]) > 1e-9 {
			t.Errorf("bin %d: got %v, want %v", k, got[k], want[k])
		}
	}
}

func TestPermuteInvolution(t *testing.T) {
	t.Parallel()
	const m = 16
	x := make([]complex128, m)
	for j := range x {
		x[j] = complex(float64(j), 0)
	}
	rho := bitrev(m)
	permute(x, rho)
	permute(x, rho)
	for j := range x {
		if x[j] != complex(float64(j), 0) {
			t.Fatalf("permute applied twice is not the identity at %d", j)
		}
	}
}

func TestTwiddleConjugate(t *testing.T) {
	t.Parallel()
	xs := []complex128{1, 2i, -3, 4}
	ws := ufftWeights(8) // four unit-magnitude values
	fwd := append([]complex128(nil), xs...)
	twiddle(fwd, ws, Forward)
	twiddle(fwd, ws, Inverse)
	for j := range fwd {
		if cmplx.Abs(fwd[j]-xs[j]) > 1e-12 {
			t.Errorf("forward+inverse twiddle did not cancel at %d", j)
		}
	}
}
