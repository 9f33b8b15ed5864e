package fft

import (
	"math"
	"math/cmplx"
)

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// bitrev builds the bit-reversal permutation of length m, m a power of two:
// rho[j] is j with its log2(m) bits read in reverse order. The permutation is
// an involution and fixes 0. m == 1 yields the identity.
func bitrev(m int) []int {
	rho := make([]int, m)
	if m == 1 {
		return rho
	}
	for j := range rho {
		val, remaining := 0, j
		for k := 1; k < m; k <<= 1 {
			val = val<<1 | remaining&1
			remaining >>= 1
		}
		rho[j] = val
	}
	return rho
}

// ufftWeights builds the weight table for an unordered FFT of length m:
// ws[j] = exp(-2*pi*i*j/m) for 0 <= j < m/2. Note the table holds only half
// the circle.
func ufftWeights(m int) []complex128 {
	ws := make([]complex128, m/2)
	theta := -2 * math.Pi / float64(m)
	for j := range ws {
		ws[j] = cmplx.Rect(1, float64(j)*theta)
	}
	return ws
}

// cycleSchedule lists the group-cyclic cycle values of the redistribution
// rounds: k1, k1*np, k1*np^2, ... while the cycle stays within p. When
// np == 1 the multiplication would never advance, so the schedule is exactly
// one round; with p == 1 and n > 1 there are no rounds at all (k1 = n > p).
func cycleSchedule(k1, np, p int) []int {
	var cycles []int
	for c := k1; c <= p; c *= np {
		cycles = append(cycles, c)
		if np == 1 {
			break
		}
	}
	return cycles
}

// twiddles concatenates one block of np twiddle factors per redistribution
// round. For the round with cycle c, rank s contributes the phase
// alpha = (s mod c)/c, and the block holds exp(i*rho[j]*theta) with
// theta = -2*pi*alpha/np, in j order.
func twiddles(cycles []int, rho []int, np, s int) []complex128 {
	tw := make([]complex128, 0, len(cycles)*np)
	for _, c := range cycles {
		alpha := float64(s%c) / float64(c)
		theta := -2 * math.Pi * alpha / float64(np)
		for _, r := range rho {
			tw = append(tw, cmplx.Rect(1, float64(r)*theta))
		}
	}
	return tw
}
