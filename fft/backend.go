package fft

import (
	"sync"

	"github.com/agbru/bspnum/bsp"
	apperrors "github.com/agbru/bspnum/internal/errors"
	"github.com/agbru/bspnum/internal/parallel"
)

// Kernel is a pluggable local-transform backend. A kernel turns a buffer
// descriptor into an opaque plan that performs the local unordered FFT in
// place; the engine drives the distributed schedule and delegates the
// butterfly work to the plans.
//
// Plan construction is NOT thread-safe. The engine serializes construction
// across the ranks of a world (see Engine.BindPlans); kernels shared beyond
// one world must be serialized by the caller.
type Kernel interface {
	// Name identifies the kernel in the registry.
	Name() string

	// NewPlan prepares an in-place unordered FFT over count contiguous
	// sub-vectors of length m at the start of buf. The plan captures buf; it
	// is only valid for that exact buffer.
	NewPlan(buf []complex128, m, count int) (Plan, error)
}

// Plan is an opaque executable local transform produced by a Kernel.
type Plan interface {
	// Execute runs the planned unordered transforms in place.
	Execute(dir Direction) error
}

var (
	kernelMu sync.RWMutex
	kernels  = make(map[string]Kernel)
)

// RegisterKernel makes a kernel available under its name, replacing any
// kernel previously registered under the same name.
func RegisterKernel(k Kernel) {
	kernelMu.Lock()
	kernels[k.Name()] = k
	kernelMu.Unlock()
}

// LookupKernel returns the kernel registered under name.
func LookupKernel(name string) (Kernel, bool) {
	kernelMu.RLock()
	k, ok := kernels[name]
	kernelMu.RUnlock()
	return k, ok
}

func init() {
	RegisterKernel(builtinKernel{})
}

// builtinKernel wraps the native unordered-FFT butterflies behind the Kernel
// interface, so the planned code path is exercised even without an
// accelerated backend.
type builtinKernel struct{}

func (builtinKernel) Name() string { return "builtin" }

func (builtinKernel) NewPlan(buf []complex128, m, count int) (Plan, error) {
	if !isPowerOfTwo(m) {
		return nil, apperrors.NewConfigError("fft: plan length %d is not a power of two", m)
	}
	if count < 0 || m*count > len(buf) {
		return nil, apperrors.NewConfigError(
			"fft: %d transforms of length %d overflow a buffer of %d", count, m, len(buf))
	}
	return &builtinPlan{buf: buf[:m*count], m: m, ws: ufftWeights(m)}, nil
}

type builtinPlan struct {
	buf []complex128
	m   int
	ws  []complex128
}

func (p *builtinPlan) Execute(dir Direction) error {
	for off := 0; off < len(p.buf); off += p.m {
		ufft(p.buf[off:off+p.m], p.ws, dir)
	}
	return nil
}

// BindPlans constructs this rank's two local plans (np/k1 transforms of
// length k1 for the first superstep, one transform of length np for the
// redistribution rounds) on the given buffer and binds them to the engine.
// Subsequent Transform calls on the same buffer use the kernel's plans
// instead of the native butterflies; calling Transform with any other buffer
// is a binding error.
//
// Plan construction runs one rank at a time inside a barrier-bounded loop,
// because kernels do not guarantee concurrent construction safety. The loop
// costs p supersteps on every rank. A rank whose construction fails keeps
// issuing the remaining barriers, since skipping one would deadlock the
// world, and reports the error only after the loop.
func (e *Engine) BindPlans(k Kernel, xs *bsp.Coarray[complex128]) error {
	if xs.World() != e.world {
		return apperrors.NewConfigError("fft: coarray belongs to a different world")
	}
	if xs.Len() != e.np {
		return apperrors.NewConfigError(
			"fft: local buffer holds %d elements, want %d", xs.Len(), e.np)
	}
	local := xs.Local()

	var planConsec, planFull Plan
	var ec parallel.ErrorCollector
	for i := 0; i < e.p; i++ {
		if i == e.s && ec.Err() == nil {
			var err error
			planConsec, err = k.NewPlan(local, e.k1, e.np/e.k1)
			if err == nil {
				planFull, err = k.NewPlan(local, e.np, 1)
			}
			ec.SetError(apperrors.WrapError(err, "fft: kernel %q", k.Name()))
		}
		ec.SetError(e.world.Sync())
	}
	if err := ec.Err(); err != nil {
		e.planConsec, e.planFull, e.bound = nil, nil, nil
		return err
	}

	e.planConsec = planConsec
	e.planFull = planFull
	e.bound = local
	return nil
}
