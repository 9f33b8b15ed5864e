package fft

import "math/cmplx"

// The local kernels below operate on subslices of a rank's buffer. Slices
// carry their own bounds, so callers hand out exactly the window a kernel may
// touch and the butterfly loops stay free of explicit bounds arithmetic.

// ufft computes the unordered discrete Fourier transform of xs in place.
// len(xs) must be a power of two and ws the matching weight table of length
// len(xs)/2. For Forward the unordered dft F*R*x is computed; for Inverse the
// conjugate transform conj(F)*R*x, where F is the Fourier matrix and R the
// bit-reversal matrix. Combined with a prior bit-reversal permutation of the
// input this yields the transform in natural order.
func ufft(xs []complex128, ws []complex128, dir Direction) {
	n := len(xs)
	for k := 2; k <= n; k *= 2 {
		nk := n / k
		for r := 0; r < nk; r++ {
			rk := r * k
			for j := 0; j < k/2; j++ {
				w := ws[j*nk]
				if dir == Inverse {
					w = cmplx.Conj(w)
				}
				j0 := rk + j
				j2 := j0 + k/2
				tau := w * xs[j2]
				xs[j2] = xs[j0] - tau
				xs[j0] += tau
			}
		}
	}
}

// permute applies sigma to xs in place using only the index pairs with
// j < sigma[j]. This is *not* valid for general permutations, only for
// involutions such as the bit-reversal permutations built by bitrev.
func permute(xs []complex128, sigma []int) {
	for j, sj := range sigma {
		if j < sj {
			xs[j], xs[sj] = xs[sj], xs[j]
		}
	}
}

// twiddle multiplies xs componentwise by ws, or by conj(ws) for the inverse
// transform. len(ws) must be at least len(xs).
func twiddle(xs []complex128, ws []complex128, dir Direction) {
	for j := range xs {
		w := ws[j]
		if dir == Inverse {
			w = cmplx.Conj(w)
		}
		xs[j] *= w
	}
}
