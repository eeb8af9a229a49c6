// Package dtwcluster is an in-memory toolkit for clustering collections
// of time series under elastic (Dynamic Time Warping) distances.
//
// 🚀 What is dtwcluster?
//
//	A deterministic, concurrency-aware library that brings together:
//		• DTW kernel: banded alignment cost + optional warping path (dtw/)
//		• Distance matrices: pairwise & cross matrices over collections,
//		  computed by a worker pool with index-stable output (distmat/)
//		• Barycenter averaging: DBA centroid refinement driven by the
//		  kernel's backtracking (dba/)
//		• Clustering loop: generic assign/update alternation with
//		  pluggable distance and centroid-update strategies (cluster/)
//
// ✨ Why choose dtwcluster?
//
//   - Explicit seeds everywhere – same seed, same result, any platform
//   - Strict sentinel errors – validate first, compute after
//   - Read-only inputs – collections are never mutated, centroids are copies
//   - Pluggable strategies – inject any distance or centroid update
//
// Everything is organized under four subpackages, in dependency order:
//
//	dtw/     — Sequence type, alignment kernel, scratch buffers
//	distmat/ — pairwise and cross distance matrices (gonum mat.Dense)
//	dba/     — DTW Barycenter Averaging centroid refinement
//	cluster/ — k-centroid alternating-optimization loop
//
// Quick sketch:
//
//	series ──▶ distmat.Cross ──▶ assign nearest centroid
//	                 │                     │
//	                 ▼                     ▼
//	            dtw.Align ◀── dba.Refine (update centroids)
//
//	go get github.com/katalvlaran/dtwcluster
package dtwcluster
