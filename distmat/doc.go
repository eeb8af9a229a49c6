// Package distmat builds pairwise and cross distance matrices over
// collections of time series, partitioning the work across a fixed pool
// of concurrent workers.
//
// ✨ Key features:
//   - Cross: full |A|×|B| matrix as a gonum *mat.Dense, or self-distance
//     mode (B == nil) exploiting symmetry (upper triangle + mirror)
//   - Pairwise: element-wise vector requiring |A| == |B|
//   - injected DistanceFunc or the built-in DTW kernel with a private
//     scratch buffer per worker
//   - index-stable output: results merge by position, never by worker
//     completion order, so any worker count yields identical matrices
//   - fail-fast by default; optional tolerant mode records failed pairs
//     as NaN cells with PairError markers
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/dtwcluster/distmat"
//
//	opts := distmat.DefaultOptions()
//	opts.Workers = 8
//
//	m, fails, err := distmat.Cross(series, nil, opts) // self-distance matrix
//
// A batch call blocks until every worker chunk finishes; there is no
// streaming of partial results and no mid-batch cancellation.
package distmat
