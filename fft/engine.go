// Package fft implements a distributed Fast Fourier Transform over a BSP
// world: every rank holds n/p contiguous complex values of a length-n vector
// under a cyclic distribution, and forward/inverse transforms run as a fixed
// schedule of local butterfly phases and group-cyclic redistribution rounds,
// one collective synchronization per round.
//
// The cyclic distribution places global element j*p + s at local index j of
// rank s. The transform's output is returned under the same distribution.
package fft

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"

	"github.com/agbru/bspnum/bsp"
	apperrors "github.com/agbru/bspnum/internal/errors"
	"github.com/agbru/bspnum/internal/logging"
)

// Direction selects between the forward transform and the inverse transform.
type Direction int

const (
	// Forward computes y[k] = sum_j exp(-2*pi*i*k*j/n) * x[j].
	Forward Direction = iota
	// Inverse computes y[k] = (1/n) * sum_j exp(+2*pi*i*k*j/n) * x[j].
	Inverse
)

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	if d == Inverse {
		return "inverse"
	}
	return "forward"
}

var (
	transformsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bspnum_fft_transforms_total",
			Help: "The total number of distributed transforms performed per rank",
		},
		[]string{"direction", "status"},
	)
	transformDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bspnum_fft_transform_duration_seconds",
			Help:    "Wall time of distributed transforms per rank",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
		},
		[]string{"direction"},
	)
)

// Engine computes distributed FFTs of one fixed global length n over the
// world it was constructed on. All weight and permutation tables are built at
// construction (or Reinitialize) and are private to the rank; they are reused
// across any number of Transform calls. The local data buffer is supplied by
// the caller per call and is never owned by the engine.
//
// An Engine is used by exactly one rank goroutine; ranks never share engine
// state.
type Engine struct {
	world *bsp.World
	log   logging.Logger

	n  int // global transform length, power of two
	p  int // processor count, power of two, p <= n
	s  int // this rank
	np int // local length n/p
	k1 int // radix of the first local butterfly stage

	w0     []complex128 // unordered-FFT weights of length k1/2
	w      []complex128 // unordered-FFT weights of length np/2
	tw     []complex128 // concatenated twiddles, one block of np per round
	rhoNP  []int        // bit-reversal permutation of length np
	rhoP   []int        // bit-reversal permutation of length p
	cycles []int        // cycle values of the redistribution rounds

	// Accelerated-kernel state, set by BindPlans. bound pins the buffer the
	// plans were constructed for.
	planConsec Plan
	planFull   Plan
	bound      []complex128
}

// New constructs an engine for global length n on the calling rank's world.
// n and the world size must both be powers of two with procs <= n; violating
// that is a configuration error that every rank detects identically.
func New(world *bsp.World, n int) (*Engine, error) {
	e := &Engine{
		world: world,
		log:   world.Logger(),
		p:     world.Procs(),
		s:     world.Rank(),
	}
	if err := e.init(n); err != nil {
		return nil, err
	}
	return e, nil
}

// Reinitialize rebuilds every table for a new global length. Any plans bound
// by BindPlans are discarded; the accelerated kernel must be rebound.
func (e *Engine) Reinitialize(n int) error {
	return e.init(n)
}

// N returns the global transform length.
func (e *Engine) N() int { return e.n }

// LocalLen returns the per-rank buffer length n/p expected by Transform.
func (e *Engine) LocalLen() int { return e.np }

// Rounds returns the number of redistribution rounds of one transform. Every
// rank performs exactly this many collective synchronizations per Transform.
func (e *Engine) Rounds() int { return len(e.cycles) }

func (e *Engine) init(n int) error {
	if !isPowerOfTwo(n) {
		return apperrors.NewConfigError("fft: length %d is not a power of two", n)
	}
	if !isPowerOfTwo(e.p) {
		return apperrors.NewConfigError("fft: processor count %d is not a power of two", e.p)
	}
	if e.p > n {
		return apperrors.NewConfigError("fft: %d processors exceed transform length %d", e.p, n)
	}

	e.n = n
	e.np = n / e.p

	// k1 is n/c for the smallest power c of np with c >= p: the largest
	// butterfly length the first superstep can run without redistribution.
	// With one element per rank (np == 1) the search would never advance, so
	// that case is pinned to k1 = n explicitly.
	if e.np == 1 {
		e.k1 = n
	} else {
		c := 1
		for c < e.p {
			c *= e.np
		}
		e.k1 = n / c
	}

	e.rhoNP = bitrev(e.np)
	e.rhoP = bitrev(e.p)
	e.w0 = ufftWeights(e.k1)
	e.w = ufftWeights(e.np)
	e.cycles = cycleSchedule(e.k1, e.np, e.p)
	e.tw = twiddles(e.cycles, e.rhoNP, e.np, e.s)

	// Tables changed; previously bound plans refer to stale geometry.
	e.planConsec, e.planFull, e.bound = nil, nil, nil

	e.log.Debug("fft tables initialized",
		logging.Int("n", e.n),
		logging.Int("procs", e.p),
		logging.Int("k1", e.k1),
		logging.Int("rounds", len(e.cycles)))
	return nil
}

// Forward computes the forward transform of xs in place.
func (e *Engine) Forward(xs *bsp.Coarray[complex128]) error {
	return e.Transform(Forward, xs)
}

// Inverse computes the inverse transform of xs in place, including the 1/n
// scaling.
func (e *Engine) Inverse(xs *bsp.Coarray[complex128]) error {
	return e.Transform(Inverse, xs)
}

// Transform computes the transform of the distributed vector xs in place.
// xs must be the cyclically distributed local share: rank s holds global
// element j*p + s at local index j, and the output comes back under the same
// distribution.
//
// Every rank must call Transform with the same direction at the same point of
// its superstep schedule; the number of synchronizations is Rounds() on every
// rank. A returned error is fatal to the whole world.
func (e *Engine) Transform(dir Direction, xs *bsp.Coarray[complex128]) (err error) {
	_, span := otel.Tracer("bspnum/fft").Start(e.world.Context(), "fft.Transform")
	defer span.End()
	start := time.Now()
	defer func() {
		status := "success"
		if err != nil {
			status = "error"
		}
		transformsTotal.WithLabelValues(dir.String(), status).Inc()
		transformDuration.WithLabelValues(dir.String()).Observe(time.Since(start).Seconds())
	}()

	if xs.World() != e.world {
		return apperrors.NewConfigError("fft: coarray belongs to a different world")
	}
	if xs.Len() != e.np {
		return apperrors.NewConfigError(
			"fft: local buffer holds %d elements, want %d", xs.Len(), e.np)
	}
	local := xs.Local()
	if e.bound != nil && &local[0] != &e.bound[0] {
		return apperrors.NewBindingError(
			"fft: plans were bound to a different buffer; call BindPlans again")
	}

	// Superstep 0: local butterflies of length k1 on bit-reversed data.
	permute(local, e.rhoNP)
	if e.planConsec != nil {
		if err := e.planConsec.Execute(dir); err != nil {
			return apperrors.TransformError{Cause: err}
		}
	} else {
		for r := 0; r < e.np/e.k1; r++ {
			ufft(local[r*e.k1:(r+1)*e.k1], e.w0, dir)
		}
	}

	// One redistribution round per cycle value: exchange, twiddle, butterfly.
	// Only the first round addresses ranks through the bit-reversal rhoP.
	c0 := 1
	reversed := true
	twOffset := 0
	for _, c := range e.cycles {
		if err := e.redistribute(xs, c0, c, reversed); err != nil {
			return err
		}
		reversed = false
		c0 = c

		twiddle(local, e.tw[twOffset:twOffset+e.np], dir)
		twOffset += e.np

		if e.planFull != nil {
			if err := e.planFull.Execute(dir); err != nil {
				return apperrors.TransformError{Cause: err}
			}
		} else {
			ufft(local, e.w, dir)
		}
	}

	if dir == Inverse {
		ninv := 1 / float64(e.n)
		for j := range local {
			local[j] *= complex(ninv, 0)
		}
	}
	return nil
}
