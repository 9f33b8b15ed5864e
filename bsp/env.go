package bsp

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/bspnum/internal/config"
	apperrors "github.com/agbru/bspnum/internal/errors"
	"github.com/agbru/bspnum/internal/logging"
)

// Env is the entry point of the runtime. It owns the runtime configuration
// and the logger shared by every world it spawns.
type Env struct {
	cfg config.Config
	log logging.Logger
}

// Option configures an Env.
type Option func(*Env)

// WithProcs overrides the default number of ranks used by SpawnDefault.
func WithProcs(procs int) Option {
	return func(e *Env) { e.cfg.Procs = procs }
}

// WithLogger replaces the environment logger.
func WithLogger(log logging.Logger) Option {
	return func(e *Env) { e.log = log }
}

// WithMetrics toggles superstep-level Prometheus instrumentation.
func WithMetrics(enabled bool) Option {
	return func(e *Env) { e.cfg.Metrics = enabled }
}

// NewEnv creates an environment from the built-in defaults, the BSPNUM_*
// environment variables, and the given options, in that order of precedence
// (options win).
//
// Returns:
//   - *Env: The configured environment.
//   - error: A ValidationError if the resulting configuration is invalid.
func NewEnv(opts ...Option) (*Env, error) {
	e := &Env{cfg: config.FromEnv()}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	if e.log == nil {
		level, err := zerolog.ParseLevel(e.cfg.LogLevel)
		if err != nil {
			level = zerolog.InfoLevel
		}
		e.log = logging.NewZerologAdapter(
			zerolog.New(os.Stderr).Level(level).With().
				Str("component", "bsp").Timestamp().Logger(),
		)
	}
	return e, nil
}

// AvailableProcessors reports the default rank count of this environment.
func (e *Env) AvailableProcessors() int {
	return e.cfg.Procs
}

// Spawn runs f once per rank, each on its own goroutine, and blocks until
// every rank has returned. The ranks share one barrier and one registration
// table; they must all follow the same superstep schedule.
//
// Error semantics follow the BSP all-or-nothing model: the first non-nil
// error cancels the shared context, every rank parked at a barrier unblocks
// with a context error, and Spawn returns the first error. There is no
// single-rank recovery path.
func (e *Env) Spawn(ctx context.Context, procs int, f func(w *World) error) error {
	if procs < 1 {
		return apperrors.NewConfigError("bsp: cannot spawn %d processors", procs)
	}
	grp := &group{
		procs:   procs,
		barrier: newBarrier(procs),
		slots:   make([]any, procs),
		metrics: e.cfg.Metrics,
	}

	g, ctx := errgroup.WithContext(ctx)
	for s := 0; s < procs; s++ {
		w := &World{
			rank:  s,
			group: grp,
			ctx:   ctx,
			log:   e.log.With(logging.Int("rank", s)),
		}
		g.Go(func() error {
			if grp.metrics {
				activeRanks.Inc()
				defer activeRanks.Dec()
			}
			if err := f(w); err != nil {
				if !apperrors.IsContextError(err) {
					w.log.Error("rank failed", err)
				}
				return apperrors.WrapError(err, "bsp: rank %d", w.rank)
			}
			return nil
		})
	}

	err := g.Wait()
	if e.cfg.Metrics {
		status := "success"
		if err != nil {
			status = "error"
		}
		spawnsTotal.WithLabelValues(status).Inc()
	}
	return err
}

// SpawnDefault is Spawn with the environment's configured rank count.
func (e *Env) SpawnDefault(ctx context.Context, f func(w *World) error) error {
	return e.Spawn(ctx, e.cfg.Procs, f)
}
