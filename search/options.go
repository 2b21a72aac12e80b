package search

import (
	"context"
	"fmt"
	"math/rand"
)

// Option configures GNNS search behavior via functional arguments. An invalid
// Option is recorded internally and surfaced as ErrOptionViolation when
// Search is invoked.
type Option func(*Options)

// Options holds every tunable parameter for a GNNS search.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// Restarts is the number of independent random starting points to
	// hill-climb from (GNNS's standard way of escaping local optima).
	Restarts int

	// Expansion is the restart-seed acceptance ratio: a candidate restart
	// seed with similarity s to the query is rejected in favor of a fresh
	// seed whenever s < globalBest/Expansion, so restarts are not wasted
	// climbing from a seed far worse than the best result found so far.
	Expansion float64

	// Speedup bounds the similarity-evaluation budget to floor(n / Speedup).
	// Must be > 1 when set explicitly; the zero value disables the budget.
	Speedup float64

	// LongJumps is the number of uniformly random unvisited items scanned as
	// extra candidates at every hill-climbing step, alongside the current
	// item's graph neighbors — GNNS's way of escaping plateaus a pure
	// neighbor-following climb cannot.
	LongJumps int

	// Rng drives restart-seed selection and long jumps. Defaults to a fixed
	// seed for reproducibility if never set.
	Rng *rand.Rand

	// OnRestart is called whenever a restart begins, with its seed's ID and
	// similarity to the query.
	OnRestart func(seedID string, seedSim float64)

	err error
}

// DefaultOptions returns Options with sane defaults: 4 restarts, expansion
// ratio 8, no similarity budget, 2 long-jump candidates per step.
func DefaultOptions() Options {
	return Options{
		Ctx:       context.Background(),
		Restarts:  4,
		Expansion: 8,
		Speedup:   0,
		LongJumps: 2,
		Rng:       rand.New(rand.NewSource(1)),
		OnRestart: func(string, float64) {},
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithRestarts sets the number of hill-climbing restarts. n < 1 is an
// option violation.
func WithRestarts(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: WithRestarts(%d): must be >= 1", ErrOptionViolation, n)
			return
		}
		o.Restarts = n
	}
}

// WithExpansion sets the restart-seed acceptance ratio (globalBest/Expansion
// is the minimum similarity a fresh restart seed must clear). Must be > 0.
func WithExpansion(e float64) Option {
	return func(o *Options) {
		if e <= 0 {
			o.err = fmt.Errorf("%w: WithExpansion(%v): must be > 0", ErrOptionViolation, e)
			return
		}
		o.Expansion = e
	}
}

// WithSpeedup sets the similarity-budget divisor (max_sims = floor(n/speedup)).
// speedup <= 1 is an option violation: it would impose no real budget (or an
// inverted one), so the option fails at configuration time rather than
// silently behaving as "disabled".
func WithSpeedup(speedup float64) Option {
	return func(o *Options) {
		if speedup <= 1 {
			o.err = fmt.Errorf("%w: WithSpeedup(%v): must be > 1", ErrOptionViolation, speedup)
			return
		}
		o.Speedup = speedup
	}
}

// WithLongJumps sets how many random unvisited items are scanned as extra
// candidates at each hill-climbing step. n < 0 is an option violation; 0
// disables long jumps.
func WithLongJumps(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: WithLongJumps(%d): must be >= 0", ErrOptionViolation, n)
			return
		}
		o.LongJumps = n
	}
}

// WithSeed seeds the search's RNG for reproducible restarts and long jumps.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Rng = rand.New(rand.NewSource(seed))
	}
}

// WithOnRestart registers a callback invoked at the start of each accepted
// restart, with the restart seed's ID and its similarity to the query.
func WithOnRestart(fn func(seedID string, seedSim float64)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnRestart = fn
		}
	}
}
