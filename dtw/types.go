package dtw

import "errors"

// Sentinel errors returned by the kernel. Callers match with errors.Is;
// no function in this package panics on user-triggered conditions.
var (
	// ErrEmptySequence indicates one or both inputs have no observations.
	ErrEmptySequence = errors.New("dtw: input sequences must be non-empty")

	// ErrRaggedSequence indicates a sequence whose observation vectors do
	// not all share the same width.
	ErrRaggedSequence = errors.New("dtw: sequence has observations of unequal width")

	// ErrDimensionMismatch indicates the two operands carry a different
	// number of variables per observation.
	ErrDimensionMismatch = errors.New("dtw: operands have different variable counts")

	// ErrInvalidWindow indicates Window < NoWindow (i.e. below -1).
	ErrInvalidWindow = errors.New("dtw: window radius must be >= 0, or NoWindow")

	// ErrInvalidNorm indicates an unknown Norm value.
	ErrInvalidNorm = errors.New("dtw: unknown norm")

	// ErrInvalidStepPattern indicates an unknown StepPattern value.
	ErrInvalidStepPattern = errors.New("dtw: unknown step pattern")

	// ErrBufferTooSmall indicates a caller-supplied Buffer cannot hold the
	// (len(x)+1)×(len(y)+1) working grid.
	ErrBufferTooSmall = errors.New("dtw: supplied buffer too small for operands")
)

// Sequence is an observation-major time series: Sequence[t] is the
// vector of variable values at time t. Univariate series have width 1.
type Sequence [][]float64

// UnivariateSequence wraps a plain value slice as a width-1 Sequence.
// The returned Sequence aliases v; it does not copy.
func UnivariateSequence(v []float64) Sequence {
	s := make(Sequence, len(v))
	for t := range v {
		s[t] = v[t : t+1 : t+1]
	}
	return s
}

// Width returns the number of variables per observation, or an error if
// the sequence is empty or ragged.
func (s Sequence) Width() (int, error) {
	if len(s) == 0 {
		return 0, ErrEmptySequence
	}
	w := len(s[0])
	for t := 1; t < len(s); t++ {
		if len(s[t]) != w {
			return 0, ErrRaggedSequence
		}
	}
	return w, nil
}

// Clone returns a deep copy of s.
func (s Sequence) Clone() Sequence {
	out := make(Sequence, len(s))
	for t := range s {
		out[t] = append([]float64(nil), s[t]...)
	}
	return out
}

// Variable extracts variable v as a width-1 Sequence (copied).
func (s Sequence) Variable(v int) Sequence {
	out := make(Sequence, len(s))
	for t := range s {
		out[t] = []float64{s[t][v]}
	}
	return out
}

// Norm selects the local (per-step) cost between two observation vectors.
type Norm int

const (
	// NormL1 sums absolute per-variable differences (Manhattan).
	NormL1 Norm = iota

	// NormL2 takes the Euclidean distance between observation vectors.
	NormL2
)

// StepPattern selects the transition weights of the recurrence.
type StepPattern int

const (
	// Symmetric2 weights the diagonal transition by 2× the local cost and
	// the horizontal/vertical transitions by 1×. Only this pattern admits
	// length normalization (divide by len(x)+len(y)).
	Symmetric2 StepPattern = iota

	// Symmetric1 weights every transition by 1× the local cost.
	Symmetric1
)

// NoWindow disables the Sakoe–Chiba band constraint.
const NoWindow = -1

// Coord is one step of a warping path: x index I matched to y index J.
type Coord struct {
	I, J int
}

// Options configures a single alignment.
//
// Fields:
//   - Window      — Sakoe–Chiba radius r ≥ 0, or NoWindow (default) for an
//     unconstrained alignment. When len(x) != len(y) the band follows the
//     scaled diagonal i ≈ j·len(x)/len(y).
//   - Norm        — local cost: NormL1 (default) or NormL2.
//   - StepPattern — Symmetric2 (default) or Symmetric1.
//   - Normalize   — divide the final distance by len(x)+len(y). Only
//     meaningful under Symmetric2; under Symmetric1 it is a no-op and
//     Result.Normalized stays false.
//   - Backtrack   — also recover the optimal warping path.
//   - Buffer      — optional reusable scratch storage. The caller owns it
//     and must not share it between concurrent calls.
type Options struct {
	Window      int
	Norm        Norm
	StepPattern StepPattern
	Normalize   bool
	Backtrack   bool
	Buffer      *Buffer
}

// DefaultOptions returns the canonical configuration: unconstrained
// window, L1 local cost, symmetric2 steps, no normalization, no path.
func DefaultOptions() Options {
	return Options{
		Window:      NoWindow,
		Norm:        NormL1,
		StepPattern: Symmetric2,
	}
}

// Result holds the outcome of one alignment.
type Result struct {
	// Distance is the accumulated alignment cost, ≥ 0. It is +Inf when a
	// window constraint leaves no admissible path.
	Distance float64

	// Path is the optimal warping path from {0,0} to {len(x)-1,len(y)-1},
	// present only when Options.Backtrack was set and Distance is finite.
	Path []Coord

	// Normalized reports whether Distance was divided by len(x)+len(y).
	Normalized bool
}

// Buffer is reusable scratch storage for the kernel's cost and direction
// grids. A Buffer sized for sequences of lengths n and m serves any pair
// of operands whose (len(x)+1)·(len(y)+1) grid fits.
//
// A Buffer carries no state between calls; it exists only to avoid
// re-allocation. Exclusive access per call is the caller's contract.
type Buffer struct {
	cost []float64
	dir  []uint8
}

// NewBuffer allocates scratch storage for aligning sequences of lengths
// up to n and m (in either order).
func NewBuffer(n, m int) *Buffer {
	cells := (n + 1) * (m + 1)
	return &Buffer{
		cost: make([]float64, cells),
		dir:  make([]uint8, cells),
	}
}

// grids hands out cost and direction views of exactly cells elements,
// allocating when b is nil and failing when a caller-supplied buffer is
// undersized.
func (b *Buffer) grids(cells int, needDir bool) ([]float64, []uint8, error) {
	if b == nil {
		cost := make([]float64, cells)
		var dir []uint8
		if needDir {
			dir = make([]uint8, cells)
		}
		return cost, dir, nil
	}
	if len(b.cost) < cells || (needDir && len(b.dir) < cells) {
		return nil, nil, ErrBufferTooSmall
	}
	if needDir {
		return b.cost[:cells], b.dir[:cells], nil
	}
	return b.cost[:cells], nil, nil
}
