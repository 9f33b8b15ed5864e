package bsp

import (
	"context"

	"github.com/agbru/bspnum/internal/logging"
)

// group is the state shared by the ranks of one spawned world: the collective
// barrier, the registration slots used by collective allocations, and the
// metrics switch.
type group struct {
	procs   int
	barrier *barrier
	slots   []any
	metrics bool
}

// World is one rank's handle on a spawned processor group. A World is owned
// by exactly one goroutine; none of its methods may be called from another
// goroutine.
type World struct {
	rank  int
	group *group
	ctx   context.Context
	log   logging.Logger

	// pending holds this rank's queued one-sided writes. They are applied
	// between the two phases of the next Sync; destination ranges written by
	// different ranks in the same superstep must not alias.
	pending []func()
}

// Rank returns this processor's number, 0 <= rank < Procs().
func (w *World) Rank() int { return w.rank }

// Procs returns the number of ranks in this world.
func (w *World) Procs() int { return w.group.procs }

// Context returns the context shared by the world. It is canceled as soon as
// any rank fails.
func (w *World) Context() context.Context { return w.ctx }

// Log writes an informational message tagged with this rank.
func (w *World) Log(msg string, fields ...logging.Field) {
	w.log.Info(msg, fields...)
}

// Logger returns this rank's structured logger.
func (w *World) Logger() logging.Logger { return w.log }

// Sync ends the current superstep. It blocks until every rank has called
// Sync, delivers all writes queued during the superstep, and blocks again
// until every delivery has completed. On return, every put issued by any rank
// during the superstep is visible in its destination buffer.
//
// If the world has been canceled (some rank returned an error), Sync drops
// the queued writes and returns the context error so the caller can unwind.
func (w *World) Sync() error {
	// Phase 1: every rank has finished reading its own buffer.
	if err := w.group.barrier.await(w.ctx); err != nil {
		w.pending = nil
		return err
	}
	// Deliver this rank's queued writes. Destinations are disjoint across
	// ranks by contract, so no locking is needed here.
	for _, apply := range w.pending {
		apply()
	}
	w.pending = w.pending[:0]
	// Phase 2: every write is in place before any rank resumes computing.
	if err := w.group.barrier.await(w.ctx); err != nil {
		return err
	}
	if w.group.metrics {
		superstepsTotal.Inc()
	}
	return nil
}

// enqueue registers a delivery closure for the next Sync.
func (w *World) enqueue(apply func(), elems int) {
	w.pending = append(w.pending, apply)
	if w.group.metrics {
		putElementsTotal.Add(float64(elems))
	}
}
