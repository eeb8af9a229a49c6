// Package dba implements DTW Barycenter Averaging: iterative refinement
// of a reference sequence toward the centroid (barycenter) of a
// collection under Dynamic Time Warping.
//
// 🚀 How it works:
//
//	Each pass aligns every collection member against the current
//	centroid with backtracking.  For each centroid index t, the
//	observations matched to t across all members form a multiset; the
//	refined value at t is that multiset's exact per-dimension mean.
//	Passes repeat until every element moves less than Delta, or until
//	the iteration budget runs out (a soft outcome, flagged on Result).
//
// ✨ Key features:
//   - multivariate averaging with two strategies: per-variable
//     (independent univariate refinements, recombined by column) or
//     whole-series (one joint alignment drives all variables)
//   - order-invariant aggregation for a fixed initial centroid
//   - explicit seed for the random initial-member choice
//   - per-member alignments on a worker pool with private scratch
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/dtwcluster/dba"
//
//	opts := dba.DefaultOptions()
//	opts.Seed = 42
//
//	res, err := dba.Refine(series, opts)
//	// res.Centroid, res.Iterations, res.Converged
//
// Complexity: O(MaxIter·K·N·L) for K members of length N and a
// centroid of length L.
package dba
