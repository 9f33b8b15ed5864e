// Package parallel provides utilities for concurrent operations.
package parallel

import "sync"

// ErrorCollector collects the first error from parallel or repeated
// operations. It is thread-safe and can be used by multiple goroutines
// simultaneously.
//
// Its main use in this library is the barrier-bounded plan-construction loop
// of the FFT engine: a rank whose plan construction fails must still issue
// every remaining barrier call of the loop (skipping one would deadlock the
// other ranks), so the error is parked in a collector and returned only once
// the loop has run to completion.
//
// Usage:
//
//	var ec parallel.ErrorCollector
//	for i := 0; i < procs; i++ {
//	    if i == rank {
//	        ec.SetError(buildPlan())
//	    }
//	    ec.SetError(world.Sync())
//	}
//	if err := ec.Err(); err != nil {
//	    return err
//	}
type ErrorCollector struct {
	once sync.Once
	err  error
}

// SetError records an error if one hasn't been recorded yet.
// Nil errors are ignored. This method is thread-safe.
func (c *ErrorCollector) SetError(err error) {
	if err != nil {
		c.once.Do(func() {
			c.err = err
		})
	}
}

// Err returns the first recorded error, or nil if no error was recorded.
// This method is thread-safe but should typically be called after all
// operations have completed.
func (c *ErrorCollector) Err() error {
	return c.err
}

// Reset resets the collector for reuse.
// WARNING: This is NOT thread-safe and should only be called when
// no goroutines are using the collector.
func (c *ErrorCollector) Reset() {
	c.once = sync.Once{}
	c.err = nil
}
