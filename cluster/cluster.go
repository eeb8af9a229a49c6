package cluster

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/dtwcluster/distmat"
	"github.com/katalvlaran/dtwcluster/dtw"
)

// Run executes the alternating-optimization loop over c with k
// clusters: assign every sequence to its nearest centroid, recompute
// each centroid from its members via the update strategy, repeat until
// the convergence test passes or the iteration budget runs out.
//
// The loop is strictly sequential across phases: updating starts only
// after the whole assignment batch finished, and vice versa. Within a
// phase the distance batch runs on the distmat worker pool. The input
// collection is never mutated; centroids are always fresh copies.
//
// Budget exhaustion is a soft terminal state: the last assignment and
// centroids come back with Converged=false and no error.
//
// Errors: ErrEmptyCollection, ErrInvalidK, ErrBadInitial,
// ErrInvalidIterBudget, ErrInvalidDelta, ErrEmptyCluster (under
// FailOnEmpty), plus propagated distance and update failures.
func Run(c distmat.Collection, k int, opts Options) (Result, error) {
	centroids, err := initialize(c, k, opts)
	if err != nil {
		return Result{}, err
	}

	dOpts := distmat.Options{
		Distance: opts.Distance,
		DTW:      opts.DTW,
		Workers:  opts.Workers,
	}
	update := opts.Update
	if update == nil {
		update = defaultUpdate()
	}

	res := Result{Centroids: centroids}
	var prev []int
	for iter := 1; iter <= opts.MaxIter; iter++ {
		res.Iterations = iter

		// Assigning: one distance batch, then per-row argmin with
		// lowest-centroid-index tie-break.
		dists, _, derr := distmat.Cross(c, distmat.Collection(res.Centroids), dOpts)
		if derr != nil {
			return Result{}, fmt.Errorf("cluster: assignment: %w", derr)
		}
		res.Assignment = nearest(dists, len(c), k)

		if opts.Convergence == StableAssignment && prev != nil && equalInts(prev, res.Assignment) {
			res.Converged = true
			return res, nil
		}
		prev = append(prev[:0], res.Assignment...)

		// Updating: strictly after the assignment batch completed.
		reseeded, shift, uerr := updateCentroids(c, res.Centroids, res.Assignment, dists, update, opts.EmptyPolicy)
		if uerr != nil {
			return Result{}, uerr
		}
		res.Reseeded += reseeded

		if opts.Convergence == CentroidDelta && reseeded == 0 && shift < opts.Delta {
			res.Converged = true
			return res, nil
		}
	}
	return res, nil
}

// initialize validates the run and produces the k starting centroids,
// cloned so the caller's data stays untouched.
func initialize(c distmat.Collection, k int, opts Options) ([]dtw.Sequence, error) {
	if len(c) == 0 {
		return nil, ErrEmptyCollection
	}
	if k < 1 || k > len(c) {
		return nil, ErrInvalidK
	}
	if opts.MaxIter < 1 {
		return nil, ErrInvalidIterBudget
	}
	if opts.Delta < 0 {
		return nil, ErrInvalidDelta
	}

	width, err := c[0].Width()
	if err != nil {
		return nil, err
	}
	for _, s := range c {
		w, werr := s.Width()
		if werr != nil {
			return nil, werr
		}
		if w != width {
			return nil, dtw.ErrDimensionMismatch
		}
	}

	if opts.Initial != nil {
		if len(opts.Initial) != k {
			return nil, ErrBadInitial
		}
		out := make([]dtw.Sequence, k)
		for i, s := range opts.Initial {
			w, werr := s.Width()
			if werr != nil || w != width {
				return nil, ErrBadInitial
			}
			out[i] = s.Clone()
		}
		return out, nil
	}

	out := make([]dtw.Sequence, 0, k)
	for _, idx := range pickDistinct(len(c), k, opts.Seed) {
		out = append(out, c[idx].Clone())
	}
	return out, nil
}

// nearest maps every collection row of the distance matrix to the
// closest centroid, ties broken by the lowest centroid index.
func nearest(dists *mat.Dense, n, k int) []int {
	assignment := make([]int, n)
	for i := 0; i < n; i++ {
		best := dists.At(i, 0)
		for j := 1; j < k; j++ {
			if d := dists.At(i, j); d < best {
				best = d
				assignment[i] = j
			}
		}
	}
	return assignment
}

// updateCentroids recomputes every centroid in place. Empty clusters
// follow the policy: reseed onto the member farthest from the empty
// centroid, or fail. It reports the reseed count and the largest
// centroid element shift (for CentroidDelta).
func updateCentroids(
	c distmat.Collection,
	centroids []dtw.Sequence,
	assignment []int,
	dists *mat.Dense,
	update UpdateFunc,
	policy EmptyPolicy,
) (reseeded int, shift float64, err error) {
	members := make([]distmat.Collection, len(centroids))
	for i, cl := range assignment {
		members[cl] = append(members[cl], c[i])
	}

	for j := range centroids {
		if len(members[j]) == 0 {
			if policy == FailOnEmpty {
				return 0, 0, fmt.Errorf("cluster: cluster %d: %w", j, ErrEmptyCluster)
			}
			centroids[j] = c[farthestFrom(dists, len(c), j)].Clone()
			reseeded++
			continue
		}
		next, uerr := update(members[j], centroids[j])
		if uerr != nil {
			return 0, 0, fmt.Errorf("cluster: update cluster %d: %w", j, uerr)
		}
		if s := centroidShift(centroids[j], next); s > shift {
			shift = s
		}
		centroids[j] = next
	}
	return reseeded, shift, nil
}

// farthestFrom picks the collection index with the largest distance to
// centroid j, lowest index on ties.
func farthestFrom(dists *mat.Dense, n, j int) int {
	best, bestDist := 0, math.Inf(-1)
	for i := 0; i < n; i++ {
		if d := dists.At(i, j); d > bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// centroidShift is the largest elementwise move between two centroid
// versions; a length or width change never counts as settled.
func centroidShift(prev, next dtw.Sequence) float64 {
	if len(prev) != len(next) {
		return math.Inf(1)
	}
	shift := 0.0
	for t := range prev {
		if len(prev[t]) != len(next[t]) {
			return math.Inf(1)
		}
		for v := range prev[t] {
			if d := math.Abs(next[t][v] - prev[t][v]); d > shift {
				shift = d
			}
		}
	}
	return shift
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
