package dtw

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Direction codes recorded per cell when backtracking is requested.
const (
	dirNone uint8 = iota
	dirDiag       // predecessor (i-1, j-1)
	dirVert       // predecessor (i-1, j)
	dirHoriz      // predecessor (i, j-1)
)

// Align computes the Dynamic Time Warping alignment between x and y.
//
// The recurrence fills a (len(x)+1)×(len(y)+1) grid with cell (0,0)=0,
// boundary cells at +Inf and every in-band cell set to the local cost
// (weighted per Options.StepPattern) plus the cheapest admissible
// predecessor. Ties are broken diagonal > vertical > horizontal, so the
// recovered path is deterministic.
//
// A window constraint may leave no admissible path between the corners;
// Align then reports Distance=+Inf with a nil Path and no error.
//
// Errors: ErrEmptySequence, ErrRaggedSequence, ErrDimensionMismatch,
// ErrInvalidWindow, ErrInvalidNorm, ErrInvalidStepPattern,
// ErrBufferTooSmall. All validation happens before any grid work.
//
// Complexity: O(len(x)·len(y)) time and memory.
func Align(x, y Sequence, opts Options) (Result, error) {
	n, m, err := validateOperands(x, y, opts)
	if err != nil {
		return Result{}, err
	}

	stride := m + 1
	cells := (n + 1) * stride
	cost, dir, err := opts.Buffer.grids(cells, opts.Backtrack)
	if err != nil {
		return Result{}, err
	}

	inf := math.Inf(1)
	for i := range cost {
		cost[i] = inf
	}
	cost[0] = 0
	if dir != nil {
		for i := range dir {
			dir[i] = dirNone
		}
	}

	diagWeight := 2.0
	if opts.StepPattern == Symmetric1 {
		diagWeight = 1.0
	}
	norm := float64(1)
	if opts.Norm == NormL2 {
		norm = 2
	}

	for i := 1; i <= n; i++ {
		row := i * stride
		prow := row - stride
		for j := 1; j <= m; j++ {
			if !inBand(i, j, n, m, opts.Window) {
				continue
			}
			c := floats.Distance(x[i-1], y[j-1], norm)

			best := cost[prow+j-1] + diagWeight*c
			d := dirDiag
			if v := cost[prow+j] + c; v < best {
				best, d = v, dirVert
			}
			if h := cost[row+j-1] + c; h < best {
				best, d = h, dirHoriz
			}
			cost[row+j] = best
			if dir != nil {
				dir[row+j] = d
			}
		}
	}

	res := Result{Distance: cost[n*stride+m]}
	if opts.Backtrack && !math.IsInf(res.Distance, 1) {
		res.Path = backtrack(dir, n, m, stride)
	}
	if opts.Normalize && opts.StepPattern == Symmetric2 && !math.IsInf(res.Distance, 1) {
		res.Distance /= float64(n + m)
		res.Normalized = true
	}
	return res, nil
}

// Dist is the distance-only form of Align; it never backtracks and
// ignores any Backtrack flag in opts.
func Dist(x, y Sequence, opts Options) (float64, error) {
	opts.Backtrack = false
	res, err := Align(x, y, opts)
	if err != nil {
		return 0, err
	}
	return res.Distance, nil
}

// validateOperands checks shapes and configuration, returning the two
// lengths. No computation starts until this passes.
func validateOperands(x, y Sequence, opts Options) (n, m int, err error) {
	wx, err := x.Width()
	if err != nil {
		return 0, 0, err
	}
	wy, err := y.Width()
	if err != nil {
		return 0, 0, err
	}
	if wx != wy {
		return 0, 0, ErrDimensionMismatch
	}
	if opts.Window < NoWindow {
		return 0, 0, ErrInvalidWindow
	}
	if opts.Norm != NormL1 && opts.Norm != NormL2 {
		return 0, 0, ErrInvalidNorm
	}
	if opts.StepPattern != Symmetric1 && opts.StepPattern != Symmetric2 {
		return 0, 0, ErrInvalidStepPattern
	}
	return len(x), len(y), nil
}

// inBand reports whether grid cell (i, j) lies inside the Sakoe–Chiba
// band of radius r around the scaled diagonal i ≈ j·n/m. With n == m
// this reduces to |i-j| ≤ r.
func inBand(i, j, n, m, r int) bool {
	if r == NoWindow {
		return true
	}
	d := int64(i)*int64(m) - int64(j)*int64(n)
	if d < 0 {
		d = -d
	}
	return d <= int64(r)*int64(m)
}

// backtrack walks the direction grid from (n, m) to (0, 0) and returns
// the forward-ordered warping path in sequence coordinates.
func backtrack(dir []uint8, n, m, stride int) []Coord {
	path := make([]Coord, 0, n+m)
	i, j := n, m
	for i > 0 || j > 0 {
		path = append(path, Coord{I: i - 1, J: j - 1})
		switch dir[i*stride+j] {
		case dirVert:
			i--
		case dirHoriz:
			j--
		default:
			i--
			j--
		}
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}
