package distmat

import (
	"errors"
	"runtime"

	"github.com/katalvlaran/dtwcluster/dtw"
)

// Sentinel errors. Shape and configuration problems are detected before
// any worker starts; per-pair failures surface either as the first
// wrapped error (fail-fast) or as PairError markers (tolerant mode).
var (
	// ErrEmptyCollection indicates a collection with no sequences.
	ErrEmptyCollection = errors.New("distmat: collection must be non-empty")

	// ErrLengthMismatch indicates Pairwise was called with collections of
	// different sizes.
	ErrLengthMismatch = errors.New("distmat: pairwise requires collections of equal size")

	// ErrAllPairsFailed indicates tolerant mode could not compute a single
	// pair, so no usable aggregate exists.
	ErrAllPairsFailed = errors.New("distmat: every pair failed in tolerant mode")
)

// Collection is an ordered list of sequences. Order affects indexing
// only; it never changes any computed distance.
type Collection []dtw.Sequence

// DistanceFunc measures two sequences. Implementations must be safe for
// concurrent use: the worker pool shares one DistanceFunc across
// goroutines.
type DistanceFunc func(x, y dtw.Sequence) (float64, error)

// DTWDistance adapts kernel options into a DistanceFunc. The returned
// function is stateless (no shared scratch), hence safe for concurrent
// use; o.Buffer and o.Backtrack are cleared.
func DTWDistance(o dtw.Options) DistanceFunc {
	o.Buffer = nil
	o.Backtrack = false
	return func(x, y dtw.Sequence) (float64, error) {
		return dtw.Dist(x, y, o)
	}
}

// PairError marks one failed pair in tolerant mode. The corresponding
// matrix cell holds NaN and is excluded from any aggregate.
type PairError struct {
	Row, Col int
	Err      error
}

// Options configures matrix construction.
//
// Fields:
//   - Distance  — injected distance; nil selects the DTW kernel driven by
//     the DTW field, with a private scratch buffer per worker.
//   - DTW       — kernel configuration used when Distance is nil.
//   - Workers   — worker-pool size; values < 1 select GOMAXPROCS.
//   - Symmetric — in self-distance mode (b == nil) compute only the upper
//     triangle, mirror it, and set the diagonal to zero. Disable for
//     asymmetric injected distances.
//   - Tolerant  — record failed pairs as PairError markers (cell = NaN)
//     instead of aborting the whole batch on the first failure.
type Options struct {
	Distance  DistanceFunc
	DTW       dtw.Options
	Workers   int
	Symmetric bool
	Tolerant  bool
}

// DefaultOptions returns the canonical configuration: kernel distance
// with default kernel options, GOMAXPROCS workers, symmetric
// self-distance mode, fail-fast error policy.
func DefaultOptions() Options {
	return Options{
		DTW:       dtw.DefaultOptions(),
		Workers:   runtime.GOMAXPROCS(0),
		Symmetric: true,
	}
}
