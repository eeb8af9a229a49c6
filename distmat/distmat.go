package distmat

import (
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/dtwcluster/dtw"
)

// Cross computes the |a|×|b| distance matrix. Passing b == nil selects
// self-distance mode over a; with Options.Symmetric only the upper
// triangle is evaluated, mirrored into the lower one, and the diagonal
// is fixed at zero.
//
// Work is partitioned by row across a fixed worker pool. Inputs are
// shared read-only; every worker owns its private kernel scratch; each
// result cell is written exactly once by exactly one worker, so the
// output is identical for any worker count and any scheduling.
//
// Fail-fast is the default: the first per-pair failure aborts the batch
// and is returned wrapped with its (row, col). In tolerant mode failed
// cells hold NaN and are listed as PairError markers sorted by index;
// if no pair succeeded the aggregate itself is ErrAllPairsFailed.
//
// Complexity: O(|a|·|b|·N·M) time for sequences of lengths N, M.
func Cross(a, b Collection, opts Options) (*mat.Dense, []PairError, error) {
	self := b == nil
	if self {
		b = a
	}
	if err := validateShapes(a, b); err != nil {
		return nil, nil, err
	}

	rows, cols := len(a), len(b)
	sym := self && opts.Symmetric
	out := mat.NewDense(rows, cols, nil)

	run := newRunner(opts, maxLen(a), maxLen(b))
	run.forEach(rows, func(i int, dist DistanceFunc) bool {
		jlo := 0
		if sym {
			out.Set(i, i, 0)
			jlo = i + 1
		}
		for j := jlo; j < cols; j++ {
			d, ok := run.eval(i, j, a[i], b[j], dist)
			if !ok {
				return false
			}
			out.Set(i, j, d)
			if sym {
				out.Set(j, i, d)
			}
		}
		return true
	})

	pairs := rows * cols
	if sym {
		pairs = rows * (rows - 1) / 2
	}
	fails, err := run.finish(pairs)
	if err != nil {
		return nil, nil, err
	}
	return out, fails, nil
}

// Pairwise computes element-wise distances: result[i] = distance(a[i],
// b[i]). Both collections must have the same size. Concurrency and
// error policy match Cross.
func Pairwise(a, b Collection, opts Options) ([]float64, []PairError, error) {
	if len(a) != len(b) {
		return nil, nil, ErrLengthMismatch
	}
	if err := validateShapes(a, b); err != nil {
		return nil, nil, err
	}

	out := make([]float64, len(a))

	run := newRunner(opts, maxLen(a), maxLen(b))
	run.forEach(len(a), func(i int, dist DistanceFunc) bool {
		d, ok := run.eval(i, i, a[i], b[i], dist)
		if !ok {
			return false
		}
		out[i] = d
		return true
	})

	fails, err := run.finish(len(a))
	if err != nil {
		return nil, nil, err
	}
	return out, fails, nil
}

// validateShapes rejects empty collections and mixed variable counts
// before any worker is scheduled.
func validateShapes(a, b Collection) error {
	if len(a) == 0 || len(b) == 0 {
		return ErrEmptyCollection
	}
	w, err := a[0].Width()
	if err != nil {
		return err
	}
	for _, s := range a {
		if sw, serr := s.Width(); serr != nil {
			return serr
		} else if sw != w {
			return dtw.ErrDimensionMismatch
		}
	}
	for _, s := range b {
		if sw, serr := s.Width(); serr != nil {
			return serr
		} else if sw != w {
			return dtw.ErrDimensionMismatch
		}
	}
	return nil
}

func maxLen(c Collection) int {
	n := 0
	for _, s := range c {
		if len(s) > n {
			n = len(s)
		}
	}
	return n
}

// runner owns the pool scaffolding shared by Cross and Pairwise:
// a fixed set of workers draining an index channel, first-error capture
// with abort, and the tolerant-mode marker set.
type runner struct {
	opts       Options
	maxA, maxB int

	aborted  atomic.Bool
	once     sync.Once
	firstErr error

	mu    sync.Mutex
	fails []PairError
}

func newRunner(opts Options, maxA, maxB int) *runner {
	return &runner{opts: opts, maxA: maxA, maxB: maxB}
}

// distance returns this worker's DistanceFunc: the injected one, or a
// kernel closure over a private scratch buffer.
func (r *runner) distance() DistanceFunc {
	if r.opts.Distance != nil {
		return r.opts.Distance
	}
	o := r.opts.DTW
	o.Buffer = dtw.NewBuffer(r.maxA, r.maxB)
	o.Backtrack = false
	return func(x, y dtw.Sequence) (float64, error) {
		return dtw.Dist(x, y, o)
	}
}

// forEach feeds unit indices [0, units) to the pool and blocks until
// every worker has drained. unit returns false to abort the batch.
func (r *runner) forEach(units int, unit func(i int, dist DistanceFunc) bool) {
	workers := r.opts.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > units {
		workers = units
	}

	jobs := make(chan int, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			dist := r.distance()
			for i := range jobs {
				if r.aborted.Load() {
					continue // drain remaining jobs after abort
				}
				if !unit(i, dist) {
					r.aborted.Store(true)
				}
			}
		}()
	}
	for i := 0; i < units; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}

// eval runs one pair through dist and applies the error policy.
// It returns ok=false when the enclosing batch must abort.
func (r *runner) eval(row, col int, x, y dtw.Sequence, dist DistanceFunc) (float64, bool) {
	d, err := dist(x, y)
	if err == nil {
		return d, true
	}
	if r.opts.Tolerant {
		r.mu.Lock()
		r.fails = append(r.fails, PairError{Row: row, Col: col, Err: err})
		r.mu.Unlock()
		return math.NaN(), true
	}
	r.once.Do(func() {
		r.firstErr = fmt.Errorf("distmat: pair (%d,%d): %w", row, col, err)
	})
	return 0, false
}

// finish reports the batch outcome: the fail-fast error, the sorted
// tolerant markers, or ErrAllPairsFailed when nothing succeeded.
func (r *runner) finish(pairs int) ([]PairError, error) {
	if r.firstErr != nil {
		return nil, r.firstErr
	}
	if len(r.fails) == 0 {
		return nil, nil
	}
	sort.Slice(r.fails, func(i, j int) bool {
		if r.fails[i].Row != r.fails[j].Row {
			return r.fails[i].Row < r.fails[j].Row
		}
		return r.fails[i].Col < r.fails[j].Col
	})
	if len(r.fails) >= pairs {
		return nil, ErrAllPairsFailed
	}
	return r.fails, nil
}
