// Package builder assembles approximate k-nearest-neighbor graphs.
//
// A Builder[T] is any function matching BuildFunc[T]; this package supplies
// three: Brute (exact, parallel), NNDescent (Dong et al.'s approximate local
// join), and an LSH partitioning wrapper around either. All three are
// configured the same way: a chain of Option[T] applied over config[T],
// resolved once at the start of Build and never mutated again.
//
// Option constructors never panic. An invalid value (WithK(0), WithRho(1.5),
// ...) is recorded on the config and surfaced as ErrOptionViolation
// the first time Build is invoked, matching the rest of this module's
// fail-fast-but-never-panic error policy.
package builder

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/annlib/core"
)

// Option configures a builder's config[T] before construction begins.
type Option[T any] func(cfg *config[T])

// config holds every parameter a builder may consult. Not every builder uses
// every field; unused fields simply keep their defaults.
type config[T any] struct {
	k          int
	sim        core.Similarity[T]
	callback   core.Callback
	rng        *rand.Rand
	threads    int
	blockSize  int

	// NN-Descent
	rho            float64
	delta          float64
	maxIterations  int

	// LSH
	nStages    int
	nPartitions int
	shingleSize int
	hashFamily  HashFamily[T]
	inner       BuildFunc[T]

	err error
}

// newConfig returns a config initialized with defaults, then applies opts in
// order. Later options override earlier ones.
func newConfig[T any](opts ...Option[T]) *config[T] {
	cfg := &config[T]{
		k:             0,
		threads:       1,
		blockSize:     1000,
		rho:           1.0,
		delta:         0.001,
		maxIterations: 20,
		nStages:       1,
		nPartitions:   1,
		shingleSize:   3,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// resolve validates the accumulated config, returning the first recorded
// option error or a direct validation failure.
func (cfg *config[T]) resolve() error {
	if cfg.err != nil {
		return cfg.err
	}
	if cfg.k < 1 {
		return fmt.Errorf("%w: k must be >= 1, got %d", ErrOptionViolation, cfg.k)
	}
	if cfg.sim == nil {
		return fmt.Errorf("%w: similarity function is required", ErrOptionViolation)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(1))
	}

	return nil
}

// WithK sets the neighbor-list capacity. Required; k < 1 surfaces
// ErrOptionViolation from Build.
func WithK[T any](k int) Option[T] {
	return func(cfg *config[T]) {
		if k < 1 {
			cfg.err = fmt.Errorf("%w: WithK(%d): must be >= 1", ErrOptionViolation, k)
			return
		}
		cfg.k = k
	}
}

// WithSimilarity sets the similarity function. Required; nil surfaces
// ErrOptionViolation from Build.
func WithSimilarity[T any](sim core.Similarity[T]) Option[T] {
	return func(cfg *config[T]) {
		if sim == nil {
			cfg.err = fmt.Errorf("%w: WithSimilarity: function is nil", ErrOptionViolation)
			return
		}
		cfg.sim = sim
	}
}

// WithCallback registers a progress callback. nil is a no-op.
func WithCallback[T any](cb core.Callback) Option[T] {
	return func(cfg *config[T]) {
		if cb != nil {
			cfg.callback = cb
		}
	}
}

// WithSeed seeds the builder's RNG for reproducible randomness (the random
// starting graph and sampling in NN-Descent). LSH's bucket assignment comes
// from its hash family and does not use this RNG.
func WithSeed[T any](seed int64) Option[T] {
	return func(cfg *config[T]) {
		cfg.rng = rand.New(rand.NewSource(seed))
	}
}

// WithThreadCount sets the number of worker goroutines for parallel builders.
// Values < 1 are clamped to 1.
func WithThreadCount[T any](n int) Option[T] {
	return func(cfg *config[T]) {
		if n < 1 {
			n = 1
		}
		cfg.threads = n
	}
}

// WithBlockSize sets the brute-force builder's block edge length (default 1000).
func WithBlockSize[T any](n int) Option[T] {
	return func(cfg *config[T]) {
		if n < 1 {
			cfg.err = fmt.Errorf("%w: WithBlockSize(%d): must be >= 1", ErrOptionViolation, n)
			return
		}
		cfg.blockSize = n
	}
}

// WithRho sets NN-Descent's subsampling rate in (0, 1].
func WithRho[T any](rho float64) Option[T] {
	return func(cfg *config[T]) {
		if rho <= 0 || rho > 1 {
			cfg.err = fmt.Errorf("%w: WithRho(%v): must be in (0, 1]", ErrOptionViolation, rho)
			return
		}
		cfg.rho = rho
	}
}

// WithDelta sets NN-Descent's early-termination threshold: the local join
// stops once the round's update count c satisfies c <= delta * n * k.
func WithDelta[T any](delta float64) Option[T] {
	return func(cfg *config[T]) {
		if delta <= 0 || delta >= 1 {
			cfg.err = fmt.Errorf("%w: WithDelta(%v): must be in (0, 1)", ErrOptionViolation, delta)
			return
		}
		cfg.delta = delta
	}
}

// WithMaxIterations caps NN-Descent's local-join rounds regardless of delta.
func WithMaxIterations[T any](n int) Option[T] {
	return func(cfg *config[T]) {
		if n < 1 {
			cfg.err = fmt.Errorf("%w: WithMaxIterations(%d): must be >= 1", ErrOptionViolation, n)
			return
		}
		cfg.maxIterations = n
	}
}

// WithNStages sets the number of independent LSH hash repetitions (stages).
func WithNStages[T any](n int) Option[T] {
	return func(cfg *config[T]) {
		if n < 1 {
			cfg.err = fmt.Errorf("%w: WithNStages(%d): must be >= 1", ErrOptionViolation, n)
			return
		}
		cfg.nStages = n
	}
}

// WithNPartitions sets the number of buckets each stage hashes into.
func WithNPartitions[T any](n int) Option[T] {
	return func(cfg *config[T]) {
		if n < 1 {
			cfg.err = fmt.Errorf("%w: WithNPartitions(%d): must be >= 1", ErrOptionViolation, n)
			return
		}
		cfg.nPartitions = n
	}
}

// WithShingleSize records a k-gram width on the config. No builder in this
// package reads it: shingling for MinHash is configured on the hash family
// itself (see hashfam.StringShingler).
func WithShingleSize[T any](n int) Option[T] {
	return func(cfg *config[T]) {
		if n < 1 {
			cfg.err = fmt.Errorf("%w: WithShingleSize(%d): must be >= 1", ErrOptionViolation, n)
			return
		}
		cfg.shingleSize = n
	}
}

// WithHashFamily sets the LSH builder's hash family (e.g. MinHash, SuperBit).
func WithHashFamily[T any](hf HashFamily[T]) Option[T] {
	return func(cfg *config[T]) {
		if hf == nil {
			cfg.err = fmt.Errorf("%w: WithHashFamily: function is nil", ErrOptionViolation)
			return
		}
		cfg.hashFamily = hf
	}
}

// WithInnerBuilder sets the BuildFunc the LSH builder delegates to within each
// non-empty bucket. Defaults to Brute if unset.
func WithInnerBuilder[T any](inner BuildFunc[T]) Option[T] {
	return func(cfg *config[T]) {
		if inner == nil {
			cfg.err = fmt.Errorf("%w: WithInnerBuilder: function is nil", ErrOptionViolation)
			return
		}
		cfg.inner = inner
	}
}
