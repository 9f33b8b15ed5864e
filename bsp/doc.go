// Package bsp provides an in-process Bulk-Synchronous-Parallel runtime: a
// world of cooperating ranks executing alternating phases of fully parallel
// local computation and bulk communication, separated by collective barriers.
//
// Each rank runs as its own goroutine. Communication is one-sided: a rank
// queues bulk writes into the buffers of named destination ranks, and the
// writes become visible only after the barrier that ends the superstep. All
// ranks must issue the same number of Sync calls; a rank that diverges would
// deadlock the others, which is why any error is propagated out of the rank
// function and converted into a group-wide cancellation instead of a local
// abort.
//
// The package mirrors the shape of a distributed BSP library, but it is not a
// general message-passing layer: it provides exactly world spawning, rank and
// size queries, coarray allocation, bulk puts, barriers, and structured
// logging.
package bsp
