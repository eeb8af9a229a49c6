package cluster

import (
	"errors"
	"runtime"

	"github.com/katalvlaran/dtwcluster/distmat"
	"github.com/katalvlaran/dtwcluster/dtw"
)

// Sentinel errors. Configuration and shapes are validated before the
// first assignment pass.
var (
	// ErrEmptyCollection indicates there is nothing to cluster.
	ErrEmptyCollection = errors.New("cluster: collection must be non-empty")

	// ErrInvalidK indicates k < 1 or k > |collection|.
	ErrInvalidK = errors.New("cluster: k must be in [1, len(collection)]")

	// ErrBadInitial indicates supplied initial centroids of the wrong
	// count or variable width.
	ErrBadInitial = errors.New("cluster: initial centroids must be k sequences of matching width")

	// ErrInvalidIterBudget indicates MaxIter < 1.
	ErrInvalidIterBudget = errors.New("cluster: MaxIter must be at least 1")

	// ErrInvalidDelta indicates a negative convergence delta.
	ErrInvalidDelta = errors.New("cluster: convergence delta must be >= 0")

	// ErrEmptyCluster is returned under FailOnEmpty when an assignment
	// pass leaves a cluster without members.
	ErrEmptyCluster = errors.New("cluster: cluster received no members")
)

// UpdateFunc recomputes one cluster's centroid from its currently
// assigned members. current is the centroid being replaced; strategies
// may use it as a refinement seed (DBA) or ignore it (medoid).
type UpdateFunc func(members distmat.Collection, current dtw.Sequence) (dtw.Sequence, error)

// EmptyPolicy decides what happens when an assignment pass produces a
// cluster with zero members. The behavior is always explicit, never
// silent: reseeds are counted on Result.Reseeded.
type EmptyPolicy int

const (
	// ReseedFarthest moves the empty cluster's centroid onto the
	// collection member farthest from that centroid (lowest index on
	// ties) and continues.
	ReseedFarthest EmptyPolicy = iota

	// FailOnEmpty aborts with ErrEmptyCluster.
	FailOnEmpty
)

// Convergence selects the loop's stopping test.
type Convergence int

const (
	// StableAssignment stops once an assignment pass reproduces the
	// previous one exactly.
	StableAssignment Convergence = iota

	// CentroidDelta stops once every centroid element moved less than
	// Options.Delta during the update pass. A centroid that changed
	// length (e.g. a medoid swap) never counts as settled.
	CentroidDelta
)

// Options bundles the loop's capability references and its budget — the
// distance, the centroid update, and the knobs — constructed once and
// passed through the whole run.
//
// Fields:
//   - Distance    — injected distance; nil selects the DTW kernel with
//     the DTW field's configuration.
//   - DTW         — kernel configuration used when Distance is nil.
//   - Update      — centroid-update strategy; nil selects DBAUpdate with
//     dba defaults.
//   - Initial     — optional k starting centroids; nil selects k distinct
//     members at random under Seed.
//   - Seed        — RNG seed for the initial selection. 0 means unset
//     (time-based, nondeterministic); any other value is reproducible.
//   - MaxIter     — iteration budget (default 100). Exhaustion is a soft
//     terminal state: the last assignment and centroids are returned
//     with Converged=false.
//   - Delta       — threshold for CentroidDelta (default 1e-3).
//   - EmptyPolicy — ReseedFarthest (default) or FailOnEmpty.
//   - Convergence — StableAssignment (default) or CentroidDelta.
//   - Workers     — worker-pool size for distance batches; values < 1
//     select GOMAXPROCS.
type Options struct {
	Distance    distmat.DistanceFunc
	DTW         dtw.Options
	Update      UpdateFunc
	Initial     []dtw.Sequence
	Seed        int64
	MaxIter     int
	Delta       float64
	EmptyPolicy EmptyPolicy
	Convergence Convergence
	Workers     int
}

// DefaultOptions returns the canonical configuration.
func DefaultOptions() Options {
	return Options{
		DTW:     dtw.DefaultOptions(),
		MaxIter: 100,
		Delta:   1e-3,
		Workers: runtime.GOMAXPROCS(0),
	}
}

// Result is the terminal state of one clustering run.
type Result struct {
	// Assignment maps each collection index to its cluster id in [0, k).
	Assignment []int

	// Centroids holds the k final reference sequences (fresh copies).
	Centroids []dtw.Sequence

	// Iterations is the number of completed assign/update cycles.
	Iterations int

	// Converged distinguishes a settled run from an iteration-limited one.
	Converged bool

	// Reseeded counts empty-cluster reseeds performed under
	// ReseedFarthest.
	Reseeded int
}
