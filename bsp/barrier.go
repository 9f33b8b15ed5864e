package bsp

import (
	"context"
	"sync"
)

// barrier is a reusable collective barrier for a fixed number of ranks.
// The generation trick (swapping the release channel under the mutex) makes
// back-to-back barriers on the same instance safe: late waiters still hold
// the channel of their own generation.
type barrier struct {
	mu      sync.Mutex
	procs   int
	arrived int
	release chan struct{}
}

func newBarrier(procs int) *barrier {
	return &barrier{procs: procs, release: make(chan struct{})}
}

// await blocks until every rank of the group has called await for the current
// generation, or until ctx is canceled. The mutex hand-off plus the channel
// close establish a happens-before edge from every rank's pre-barrier writes
// to every rank's post-barrier reads.
func (b *barrier) await(ctx context.Context) error {
	b.mu.Lock()
	b.arrived++
	if b.arrived == b.procs {
		b.arrived = 0
		close(b.release)
		b.release = make(chan struct{})
		b.mu.Unlock()
		return nil
	}
	ch := b.release
	b.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
