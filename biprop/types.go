package biprop

import (
	"errors"

	"github.com/katalvlaran/apportion/core"
	"github.com/katalvlaran/apportion/matrix"
	"github.com/katalvlaran/apportion/rational"
)

// Sentinel errors returned by Apportion and Verify.
var (
	// ErrInvalidInput indicates a malformed input: no rows, an empty or ragged
	// row, a target vector of the wrong length, or a negative target.
	ErrInvalidInput = errors.New("biprop: invalid input")

	// ErrInconsistentMargins indicates that row and column targets do not sum
	// to the same total.
	ErrInconsistentMargins = errors.New("biprop: row and column targets sum to different totals")

	// ErrDegenerateInput indicates that the zero pattern of the weights makes
	// the targets unreachable.
	ErrDegenerateInput = errors.New("biprop: degenerate input")

	// ErrNonConvergence indicates that the iteration budget was exhausted.
	ErrNonConvergence = errors.New("biprop: no convergence within the iteration budget")

	// ErrVerification indicates that a result does not satisfy the
	// biproportional invariants for its input.
	ErrVerification = errors.New("biprop: verification failed")

	// ErrBadOption is the panic message of option constructors given a
	// negative value.
	ErrBadOption = errors.New("biprop: option value must be non-negative")
)

// Input is a biproportional problem. Weights is R×C with R, C ≥ 1; the
// targets are non-negative and must share the same total.
type Input struct {
	Weights       [][]core.Weight
	RowTargets    []int
	ColumnTargets []int
}

// Rows returns the number of rows of Weights.
func (in Input) Rows() int { return len(in.Weights) }

// Columns returns the number of columns of the first row, or 0.
func (in Input) Columns() int {
	if len(in.Weights) == 0 {
		return 0
	}

	return len(in.Weights[0])
}

// Result is a converged apportionment with the divisors that certify it.
// It is read-only once returned.
type Result struct {
	RowDivisors    []rational.Rat
	ColumnDivisors []rational.Rat
	Apportionment  *matrix.Dense
	TieStates      [][]core.TieState

	// NumberOfUpdates counts divisor rescaling passes, including the
	// rescalings made while searching for transfer paths.
	NumberOfUpdates int

	// NumberOfTransfers counts single seats moved along alternating paths.
	NumberOfTransfers int

	votes [][]int64
}

// Quotient returns votes / (RowDivisors[i] · ColumnDivisors[j]) for cell (i, j).
// Panics if (i, j) is out of range.
func (r Result) Quotient(i, j int) rational.Rat {
	v := r.votes[i][j]
	if v == 0 {
		return rational.Zero
	}

	return rational.FromInt(v).Quo(r.RowDivisors[i].Mul(r.ColumnDivisors[j]))
}

// HasTies reports whether any cell is tied.
func (r Result) HasTies() bool {
	for _, row := range r.TieStates {
		for _, s := range row {
			if s == core.Tied {
				return true
			}
		}
	}

	return false
}

// Cell addresses one matrix entry.
type Cell struct {
	Row, Col int
}

// TiedCells lists tied cells in row-major order.
func (r Result) TiedCells() []Cell {
	var out []Cell
	for i, row := range r.TieStates {
		for j, s := range row {
			if s == core.Tied {
				out = append(out, Cell{Row: i, Col: j})
			}
		}
	}

	return out
}

// RowSums returns the seats per row.
func (r Result) RowSums() []int { return r.Apportionment.RowSums() }

// ColumnSums returns the seats per column.
func (r Result) ColumnSums() []int { return r.Apportionment.ColSums() }

// Options configures Apportion.
//
// MaxIterations        – cap on NumberOfUpdates + NumberOfTransfers. Negative
//
//	means automatic: MaxAlternatingPasses + 1 + (S+1)·(R+C+2) for S seats.
//
// MaxAlternatingPasses – passes of alternating scaling before tie-and-transfer.
// NormalizeTies        – break ties that are artifacts of the search path.
type Options struct {
	MaxIterations        int
	MaxAlternatingPasses int
	NormalizeTies        bool
}

// Option is a functional option for Apportion.
type Option func(*Options)

// WithMaxIterations caps updates plus transfers at n. Zero is allowed and
// only accepts inputs solved by the seed. Panics on n < 0.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic(ErrBadOption.Error())
		}
		o.MaxIterations = n
	}
}

// WithMaxAlternatingPasses bounds the alternating scaling phase.
// Panics on n < 0.
func WithMaxAlternatingPasses(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic(ErrBadOption.Error())
		}
		o.MaxAlternatingPasses = n
	}
}

// WithoutTieNormalization reports every cell on a rounding boundary at the
// divisors where the search stopped.
func WithoutTieNormalization() Option {
	return func(o *Options) {
		o.NormalizeTies = false
	}
}

// DefaultOptions returns the defaults:
//   - MaxIterations:        -1 (automatic).
//   - MaxAlternatingPasses: 16.
//   - NormalizeTies:        true.
func DefaultOptions() Options {
	return Options{
		MaxIterations:        -1,
		MaxAlternatingPasses: 16,
		NormalizeTies:        true,
	}
}
