// Package cluster runs the generic alternating-optimization loop for
// time-series clustering: assign every sequence to its nearest
// centroid, recompute the centroids via a pluggable update strategy,
// repeat until convergence or budget exhaustion.
//
// 🚀 States:
//
//	Initializing → Assigning → Updating → (loop) → Converged | MaxIterReached
//
// ✨ Key features:
//   - pluggable distance (distmat.DistanceFunc) and centroid update
//     (UpdateFunc) — DBA barycenters and PAM-style medoids built in
//   - deterministic assignment: nearest centroid, lowest index on ties
//   - explicit empty-cluster policy: reseed onto the farthest member, or
//     fail with ErrEmptyCluster — never silent
//   - two convergence tests: stable assignment or centroid delta
//   - explicit seed for the random initial-centroid subset
//   - read-only input; centroids are always fresh copies
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/dtwcluster/cluster"
//
//	opts := cluster.DefaultOptions()
//	opts.Seed = 42
//	opts.Update = cluster.DBAUpdate(dba.DefaultOptions())
//
//	res, err := cluster.Run(series, 3, opts)
//	// res.Assignment, res.Centroids, res.Iterations, res.Converged
//
// The loop itself is strictly sequential across phases; concurrency
// lives inside the distance batches (see distmat).
package cluster
