package fft

import (
	"github.com/agbru/bspnum/bsp"
	apperrors "github.com/agbru/bspnum/internal/errors"
)

// redistribute moves the distributed vector from group-cyclic distribution
// with cycle c0 to cycle c1, where c0 divides c1, both are powers of two and
// c1 <= p. When reversed is true the processor numbering is assumed to be bit
// reversed on input; this holds exactly on the first round of a transform,
// because the preceding local butterfly stage leaves the data rank-permuted.
//
// Every rank ends the round with the same collective Sync: the round counts
// as one superstep on every rank regardless of how many packets it sends.
func (e *Engine) redistribute(xs *bsp.Coarray[complex128], c0, c1 int, reversed bool) error {
	np := e.np
	ratio := c1 / c0
	size := np / ratio
	if size < 1 {
		size = 1
	}
	npackets := np / size

	rank := e.s
	if reversed {
		rank = e.rhoP[e.s]
	}
	j0 := rank % c0
	j2 := rank / c0

	local := xs.Local()
	tmp := make([]complex128, size)
	for j := 0; j < npackets; j++ {
		// Gather one packet at stride ratio. Put copies the packet, so tmp
		// is safely reused across iterations.
		for r := 0; r < size; r++ {
			tmp[r] = local[j+r*ratio]
		}
		jglob := j2*c0*np + j*c0 + j0
		destproc := (jglob/(c1*np))*c1 + jglob%c1
		destindex := (jglob % (c1 * np)) / c1
		if err := xs.Put(destproc, destindex, tmp); err != nil {
			return apperrors.TransformError{Cause: err}
		}
	}
	return xs.World().Sync()
}
