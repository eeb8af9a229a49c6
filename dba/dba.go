package dba

import (
	"fmt"
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/dtwcluster/distmat"
	"github.com/katalvlaran/dtwcluster/dtw"
)

// Refine iteratively adjusts a reference sequence toward the DTW
// barycenter of the collection (DBA). Each pass aligns every member
// against the current centroid with backtracking, gathers the multiset
// of observations matched to each centroid index, and replaces the
// value there with the exact per-dimension arithmetic mean.
//
// For a fixed initial centroid the result does not depend on the order
// of the collection: contributions are aggregated by member index, not
// by worker completion order. Randomness enters only through the
// seeded initial-member choice when Options.Initial is nil.
//
// Errors: ErrEmptyCollection, ErrInvalidIterBudget, ErrInvalidDelta,
// dtw.ErrDimensionMismatch (member or initial centroid width clash),
// ErrNoAlignment, plus any kernel sentinel, all before or instead of a
// partial result.
//
// Complexity: O(MaxIter · |c| · N · L) time for members of length N and
// a centroid of length L (per variable under PerVariable).
func Refine(c distmat.Collection, opts Options) (Result, error) {
	width, err := validate(c, opts)
	if err != nil {
		return Result{}, err
	}

	initial := opts.Initial
	if initial == nil {
		initial = c[pickIndex(len(c), opts.Seed)]
	}
	initial = initial.Clone()

	if opts.Strategy == PerVariable && width > 1 {
		return refinePerVariable(c, initial, width, opts)
	}
	return refineLoop(c, initial, opts)
}

// validate rejects bad configuration and mixed shapes before any
// alignment work starts, returning the common variable count.
func validate(c distmat.Collection, opts Options) (int, error) {
	if len(c) == 0 {
		return 0, ErrEmptyCollection
	}
	if opts.MaxIter < 1 {
		return 0, ErrInvalidIterBudget
	}
	if opts.Delta < 0 {
		return 0, ErrInvalidDelta
	}
	if opts.Window < dtw.NoWindow {
		return 0, dtw.ErrInvalidWindow
	}

	width, err := c[0].Width()
	if err != nil {
		return 0, err
	}
	for _, s := range c {
		w, werr := s.Width()
		if werr != nil {
			return 0, werr
		}
		if w != width {
			return 0, dtw.ErrDimensionMismatch
		}
	}
	if opts.Initial != nil {
		w, werr := opts.Initial.Width()
		if werr != nil {
			return 0, werr
		}
		if w != width {
			return 0, dtw.ErrDimensionMismatch
		}
	}
	return width, nil
}

// refinePerVariable runs an independent univariate refinement per
// variable and recombines the refined columns. Converged only when
// every variable converged; Iterations is the largest per-variable
// count.
func refinePerVariable(c distmat.Collection, initial dtw.Sequence, width int, opts Options) (Result, error) {
	out := Result{
		Centroid:  make(dtw.Sequence, len(initial)),
		Converged: true,
	}
	for t := range out.Centroid {
		out.Centroid[t] = make([]float64, width)
	}

	column := make(distmat.Collection, len(c))
	for v := 0; v < width; v++ {
		for i, s := range c {
			column[i] = s.Variable(v)
		}
		res, err := refineLoop(column, initial.Variable(v), opts)
		if err != nil {
			return Result{}, fmt.Errorf("dba: variable %d: %w", v, err)
		}
		for t := range res.Centroid {
			out.Centroid[t][v] = res.Centroid[t][0]
		}
		if res.Iterations > out.Iterations {
			out.Iterations = res.Iterations
		}
		out.Converged = out.Converged && res.Converged
	}
	return out, nil
}

// refineLoop is the shared iteration driver: refine, measure the
// largest elementwise move, stop on Delta or on budget exhaustion.
func refineLoop(c distmat.Collection, centroid dtw.Sequence, opts Options) (Result, error) {
	for iter := 1; iter <= opts.MaxIter; iter++ {
		next, err := refineOnce(c, centroid, opts)
		if err != nil {
			return Result{}, err
		}
		delta := maxAbsShift(centroid, next)
		centroid = next
		if delta < opts.Delta {
			return Result{Centroid: centroid, Iterations: iter, Converged: true}, nil
		}
	}
	return Result{Centroid: centroid, Iterations: opts.MaxIter, Converged: false}, nil
}

// refineOnce performs a single DBA pass: per-member alignments run on a
// worker pool (private scratch each), then contributions aggregate
// sequentially in member-index order so the sum is schedule-independent.
func refineOnce(c distmat.Collection, centroid dtw.Sequence, opts Options) (dtw.Sequence, error) {
	paths, err := alignAll(c, centroid, opts)
	if err != nil {
		return nil, err
	}

	width := len(centroid[0])
	sums := make(dtw.Sequence, len(centroid))
	counts := make([]float64, len(centroid))
	for t := range sums {
		sums[t] = make([]float64, width)
	}

	for i, path := range paths {
		for _, p := range path {
			floats.Add(sums[p.J], c[i][p.I])
			counts[p.J]++
		}
	}
	// Every warping path visits every centroid index, so counts[t] >= |c|.
	for t := range sums {
		floats.Scale(1/counts[t], sums[t])
	}
	return sums, nil
}

// alignAll backtracks every member against the centroid, in parallel,
// and returns the paths indexed by member position.
func alignAll(c distmat.Collection, centroid dtw.Sequence, opts Options) ([][]dtw.Coord, error) {
	paths := make([][]dtw.Coord, len(c))

	workers := opts.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(c) {
		workers = len(c)
	}

	longest := 0
	for _, s := range c {
		if len(s) > longest {
			longest = len(s)
		}
	}

	var (
		jobs     = make(chan int, workers)
		wg       sync.WaitGroup
		aborted  atomic.Bool
		once     sync.Once
		firstErr error
	)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			o := dtw.Options{
				Window:      opts.Window,
				Norm:        opts.Norm,
				StepPattern: opts.Step,
				Backtrack:   true,
				Buffer:      dtw.NewBuffer(longest, len(centroid)),
			}
			for i := range jobs {
				if aborted.Load() {
					continue
				}
				res, err := dtw.Align(c[i], centroid, o)
				if err == nil && math.IsInf(res.Distance, 1) {
					err = ErrNoAlignment
				}
				if err != nil {
					once.Do(func() {
						firstErr = fmt.Errorf("dba: member %d: %w", i, err)
					})
					aborted.Store(true)
					continue
				}
				paths[i] = res.Path
			}
		}()
	}
	for i := range c {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return paths, nil
}

// maxAbsShift returns the largest elementwise absolute change between
// two equally shaped sequences.
func maxAbsShift(prev, next dtw.Sequence) float64 {
	shift := 0.0
	for t := range prev {
		for v := range prev[t] {
			if d := math.Abs(next[t][v] - prev[t][v]); d > shift {
				shift = d
			}
		}
	}
	return shift
}
