package fft

import (
	"errors"
	"math/cmplx"
	"testing"

	"github.com/agbru/bspnum/bsp"
	apperrors "github.com/agbru/bspnum/internal/errors"
)

func TestKernelRegistry(t *testing.T) {
	t.Parallel()
	k, ok := LookupKernel("builtin")
	if !ok {
		t.Fatal("builtin kernel not registered")
	}
	if k.Name() != "builtin" {
		t.Errorf("kernel name = %q, want builtin", k.Name())
	}
	if _, ok := LookupKernel("no-such-kernel"); ok {
		t.Error("lookup of unknown kernel succeeded")
	}
}

// TestBoundTransformMatchesNative runs the same input through the native
// butterflies and through plans bound from the builtin kernel; the results
// must agree exactly on every rank.
func TestBoundTransformMatchesNative(t *testing.T) {
	t.Parallel()
	const n = 32
	const p = 4
	spawn(t, p, func(w *bsp.World) error {
		native, err := New(w, n)
		if err != nil {
			return err
		}
		planned, err := New(w, n)
		if err != nil {
			return err
		}
		xsNative, err := bsp.NewCoarray[complex128](w, native.LocalLen())
		if err != nil {
			return err
		}
		xsPlanned, err := bsp.NewCoarray[complex128](w, planned.LocalLen())
		if err != nil {
			return err
		}
		fill := func(jglob int) complex128 { return complex(float64(jglob), -float64(jglob)) }
		fillCyclic(w, xsNative.Local(), fill)
		fillCyclic(w, xsPlanned.Local(), fill)

		kernel, _ := LookupKernel("builtin")
		if err := planned.BindPlans(kernel, xsPlanned); err != nil {
			return err
		}

		if err := native.Forward(xsNative); err != nil {
			return err
		}
		if err := planned.Forward(xsPlanned); err != nil {
			return err
		}
		for j := range xsNative.Local() {
			a, b := xsNative.Local()[j], xsPlanned.Local()[j]
			if cmplx.Abs(a-b) > 1e-12 {
				t.Errorf("rank %d local %d: native %v, planned %v", w.Rank(), j, a, b)
			}
		}
		return nil
	})
}

// TestBindingMismatch verifies the fatal path when a transform is invoked on
// a buffer other than the one the plans were bound to.
func TestBindingMismatch(t *testing.T) {
	t.Parallel()
	const n = 16
	const p = 2
	err := spawnErr(t, p, func(w *bsp.World) error {
		eng, err := New(w, n)
		if err != nil {
			return err
		}
		bound, err := bsp.NewCoarray[complex128](w, eng.LocalLen())
		if err != nil {
			return err
		}
		other, err := bsp.NewCoarray[complex128](w, eng.LocalLen())
		if err != nil {
			return err
		}
		kernel, _ := LookupKernel("builtin")
		if err := eng.BindPlans(kernel, bound); err != nil {
			return err
		}
		return eng.Forward(other)
	})
	var bindErr apperrors.BindingError
	if !errors.As(err, &bindErr) {
		t.Errorf("got %v, want BindingError", err)
	}
}

// TestReinitializeDropsPlans: a rebound geometry must not reuse stale plans.
func TestReinitializeDropsPlans(t *testing.T) {
	t.Parallel()
	spawn(t, 2, func(w *bsp.World) error {
		eng, err := New(w, 16)
		if err != nil {
			return err
		}
		xs, err := bsp.NewCoarray[complex128](w, eng.LocalLen())
		if err != nil {
			return err
		}
		kernel, _ := LookupKernel("builtin")
		if err := eng.BindPlans(kernel, xs); err != nil {
			return err
		}
		if err := eng.Reinitialize(8); err != nil {
			return err
		}
		// The old plans are gone; a fresh correctly sized buffer must work
		// through the native path without a binding error.
		ys, err := bsp.NewCoarray[complex128](w, eng.LocalLen())
		if err != nil {
			return err
		}
		fillCyclic(w, ys.Local(), func(jglob int) complex128 { return complex(1, 0) })
		return eng.Forward(ys)
	})
}

// TestDegenerateBindPlans covers plan binding when the first superstep has no
// local butterfly work at all (np == 1, zero transforms of length k1).
func TestDegenerateBindPlans(t *testing.T) {
	t.Parallel()
	const n = 4
	spawn(t, n, func(w *bsp.World) error {
		eng, err := New(w, n)
		if err != nil {
			return err
		}
		xs, err := bsp.NewCoarray[complex128](w, 1)
		if err != nil {
			return err
		}
		kernel, _ := LookupKernel("builtin")
		if err := eng.BindPlans(kernel, xs); err != nil {
			return err
		}
		xs.Local()[0] = complex(1, float64(w.Rank()))
		if err := eng.Forward(xs); err != nil {
			return err
		}
		return eng.Inverse(xs)
	})
}
