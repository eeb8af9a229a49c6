// Package dtw computes Dynamic Time Warping (DTW) alignments between
// possibly multivariate time series, with optional warping path and
// reusable scratch buffers.
//
// 🚀 What is DTW?
//
//	DTW finds the best match between two sequences by warping the time
//	axis to minimize cumulative local cost.  It's widely used in:
//	  • Time-series clustering & classification
//	  • Speech recognition & audio alignment
//	  • Gesture / motion matching
//	  • Anomaly detection over sensor streams
//
// ✨ Key features:
//   - multivariate sequences: each observation is a fixed-width vector
//   - L1 or L2 local cost between observation vectors (Norm)
//   - symmetric1 / symmetric2 step patterns; symmetric2 admits length
//     normalization by len(x)+len(y)
//   - Sakoe–Chiba band (Window), scaled to the diagonal when lengths differ
//   - deterministic backtracking (diagonal > vertical > horizontal)
//   - caller-owned Buffer for allocation-free repeated alignments
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/dtwcluster/dtw"
//
//	opts := dtw.DefaultOptions()
//	opts.Window = 10        // Sakoe–Chiba band ±10
//	opts.Backtrack = true   // also return the warp path
//
//	res, err := dtw.Align(x, y, opts)
//
// Performance:
//
//   - Time:   O(N·M)
//   - Memory: O(N·M), amortized to zero allocations with a reused Buffer
//
// See examples in example_test.go.
package dtw
