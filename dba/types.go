package dba

import (
	"errors"
	"runtime"

	"github.com/katalvlaran/dtwcluster/dtw"
)

// Sentinel errors. Configuration is validated before any alignment runs.
var (
	// ErrEmptyCollection indicates there are no members to average.
	ErrEmptyCollection = errors.New("dba: collection must be non-empty")

	// ErrInvalidIterBudget indicates MaxIter < 1.
	ErrInvalidIterBudget = errors.New("dba: MaxIter must be at least 1")

	// ErrInvalidDelta indicates a negative convergence delta.
	ErrInvalidDelta = errors.New("dba: convergence delta must be >= 0")

	// ErrNoAlignment indicates the window constraint admits no warping
	// path between a member and the centroid, so the member cannot
	// contribute to the average.
	ErrNoAlignment = errors.New("dba: window admits no alignment")
)

// Strategy selects how multivariate series are averaged.
type Strategy int

const (
	// PerVariable refines each variable independently through the
	// univariate algorithm, with its own alignment and backtracking, and
	// recombines the refined columns.
	PerVariable Strategy = iota

	// WholeSeries computes one alignment per member jointly over all
	// variables (vector-valued local cost) and averages every variable
	// through that single warping path.
	WholeSeries
)

// Options configures one centroid refinement.
//
// Fields:
//   - Initial  — starting centroid; nil selects a collection member
//     uniformly at random under Seed.
//   - Seed     — RNG seed for the random initial choice. 0 means unset:
//     a time-based source is used and the choice is nondeterministic.
//     Any other value is fully reproducible.
//   - MaxIter  — refinement budget (default 20). Exhausting it is a soft
//     outcome: Result.Converged stays false.
//   - Delta    — convergence threshold (default 1e-3): stop once every
//     element moved less than Delta since the previous iteration.
//   - Window   — Sakoe–Chiba radius for the inner alignments
//     (default dtw.NoWindow).
//   - Norm     — local cost for the inner alignments (default dtw.NormL1).
//   - Step     — step pattern for the inner alignments (default
//     dtw.Symmetric2).
//   - Strategy — PerVariable (default) or WholeSeries.
//   - Workers  — pool size for per-member alignment work; values < 1
//     select GOMAXPROCS.
type Options struct {
	Initial  dtw.Sequence
	Seed     int64
	MaxIter  int
	Delta    float64
	Window   int
	Norm     dtw.Norm
	Step     dtw.StepPattern
	Strategy Strategy
	Workers  int
}

// DefaultOptions returns the canonical configuration.
func DefaultOptions() Options {
	return Options{
		MaxIter: 20,
		Delta:   1e-3,
		Window:  dtw.NoWindow,
		Norm:    dtw.NormL1,
		Step:    dtw.Symmetric2,
		Workers: runtime.GOMAXPROCS(0),
	}
}

// Result is the refinement outcome. Non-convergence is soft: the
// best-known centroid is returned with Converged=false.
type Result struct {
	// Centroid is the refined reference sequence (always a fresh copy).
	Centroid dtw.Sequence

	// Iterations is the number of refinement passes performed.
	Iterations int

	// Converged reports whether every element moved less than Delta in
	// the final pass.
	Converged bool
}
