package bsp

import (
	apperrors "github.com/agbru/bspnum/internal/errors"
)

// Coarray is a distributed array: every rank owns one contiguous local slice
// of the same length, and any rank may write into a remote slice with Put.
// Writes become visible at the destination only after the Sync that ends the
// superstep in which they were issued.
type Coarray[T any] struct {
	world *World
	// parts[i] is rank i's local slice. Only parts[world.rank] may be read
	// directly; remote slices are reachable through Put alone.
	parts [][]T
}

// NewCoarray collectively allocates a coarray with a local slice of the given
// size on every rank. The allocation is itself a collective operation costing
// two supersteps; every rank must call it at the same point in the program
// with the same element type.
//
// Returns:
//   - *Coarray[T]: This rank's handle on the distributed array.
//   - error: A ConfigError on invalid size or mismatched collective calls,
//     or the context error if the world was canceled.
func NewCoarray[T any](w *World, size int) (*Coarray[T], error) {
	if size < 0 {
		return nil, apperrors.NewConfigError("bsp: coarray size %d is negative", size)
	}
	local := make([]T, size)
	w.group.slots[w.rank] = local
	if err := w.Sync(); err != nil {
		return nil, err
	}

	parts := make([][]T, w.Procs())
	for i := range parts {
		part, ok := w.group.slots[i].([]T)
		if !ok {
			// Some rank registered a different type in the same collective
			// slot; the program's superstep schedules have diverged.
			return nil, apperrors.NewConfigError(
				"bsp: mismatched collective coarray allocation on rank %d", i)
		}
		parts[i] = part
	}
	// Second sync: no rank may clobber the slots for a later collective
	// before everyone has read them.
	if err := w.Sync(); err != nil {
		return nil, err
	}
	return &Coarray[T]{world: w, parts: parts}, nil
}

// World returns the world this coarray was allocated on.
func (c *Coarray[T]) World() *World { return c.world }

// Len returns the length of the local slice (identical on every rank).
func (c *Coarray[T]) Len() int { return len(c.parts[c.world.rank]) }

// Local returns this rank's slice. The caller may read and write it freely
// during a compute phase; remote ranks only observe it through their own
// reads after a Sync.
func (c *Coarray[T]) Local() []T { return c.parts[c.world.rank] }

// Put queues a bulk one-sided write of values into rank dest's local slice at
// [offset, offset+len(values)). The values are copied immediately, so the
// caller may reuse its buffer; the write lands at the destination during the
// next Sync.
//
// Destination ranges written by different ranks within one superstep must be
// disjoint; overlapping puts have unspecified results.
func (c *Coarray[T]) Put(dest, offset int, values []T) error {
	if dest < 0 || dest >= c.world.Procs() {
		return apperrors.NewConfigError("bsp: put to invalid rank %d of %d", dest, c.world.Procs())
	}
	if offset < 0 || offset+len(values) > len(c.parts[dest]) {
		return apperrors.NewConfigError(
			"bsp: put of %d elements at offset %d overflows local size %d",
			len(values), offset, len(c.parts[dest]))
	}
	if len(values) == 0 {
		return nil
	}
	buf := make([]T, len(values))
	copy(buf, values)
	dst := c.parts[dest][offset : offset+len(values)]
	c.world.enqueue(func() { copy(dst, buf) }, len(values))
	return nil
}
