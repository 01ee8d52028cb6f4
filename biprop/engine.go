package biprop

import (
	"fmt"

	"github.com/katalvlaran/apportion/core"
	"github.com/katalvlaran/apportion/divisor"
	"github.com/katalvlaran/apportion/matrix"
	"github.com/katalvlaran/apportion/rational"
)

// engine holds the mutable state of one run. Nothing in it outlives Apportion.
type engine struct {
	opts       Options
	rows, cols int

	votes     [][]int64
	w         [][]rational.Rat
	rowTarget []int
	colTarget []int

	x, y []rational.Rat // row and column divisors
	a    [][]int        // current seats

	updates   int
	transfers int
	budget    int
}

// Apportion computes a biproportional apportionment of in.
//
// On success the row sums equal RowTargets, the column sums equal
// ColumnTargets, and every core.Unique cell equals the standard rounding of
// its quotient. Tied cells hold one of the two values their quotient allows.
//
// The run is synchronous, deterministic and touches no shared state; any
// number of calls may run concurrently.
//
// Errors: ErrInvalidInput, ErrInconsistentMargins, ErrDegenerateInput,
// ErrNonConvergence.
func Apportion(in Input, opts ...Option) (Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	rows, cols, err := validate(in)
	if err != nil {
		return Result{}, err
	}

	e := newEngine(in, rows, cols, cfg)
	if err = e.seed(); err != nil {
		return Result{}, err
	}
	if err = e.solve(); err != nil {
		return Result{}, err
	}
	if cfg.NormalizeTies {
		e.normalizeTies()
	}

	return e.result()
}

func newEngine(in Input, rows, cols int, cfg Options) *engine {
	e := &engine{
		opts:      cfg,
		rows:      rows,
		cols:      cols,
		votes:     make([][]int64, rows),
		w:         make([][]rational.Rat, rows),
		rowTarget: append([]int(nil), in.RowTargets...),
		colTarget: append([]int(nil), in.ColumnTargets...),
		x:         make([]rational.Rat, rows),
		y:         make([]rational.Rat, cols),
		a:         make([][]int, rows),
	}
	for i, row := range in.Weights {
		e.votes[i] = make([]int64, cols)
		e.w[i] = make([]rational.Rat, cols)
		e.a[i] = make([]int, cols)
		for j, wt := range row {
			e.votes[i][j] = wt.VoteCount()
			e.w[i][j] = wt.Rat()
		}
	}

	e.budget = cfg.MaxIterations
	if e.budget < 0 {
		seats := 0
		for _, t := range e.rowTarget {
			seats += t
		}
		e.budget = cfg.MaxAlternatingPasses + 1 + (seats+1)*(rows+cols+2)
	}

	return e
}

// seed sets every column divisor to 1 and fits each row on its own.
func (e *engine) seed() error {
	for j := range e.y {
		e.y[j] = rational.One
	}

	return e.rowPass()
}

// solve runs alternating scaling and then tie-and-transfer until both
// margins match. Row sums are exact on entry.
func (e *engine) solve() error {
	prev := e.colMismatch()
	if prev == 0 {
		return nil
	}

	rowsExact := true
	for pass := 0; pass < e.opts.MaxAlternatingPasses; pass++ {
		if err := e.spend(); err != nil {
			return err
		}
		var d int
		if e.colMismatch() >= e.rowMismatch() {
			if err := e.colPass(); err != nil {
				return err
			}
			d, rowsExact = e.rowMismatch(), false
		} else {
			if err := e.rowPass(); err != nil {
				return err
			}
			d, rowsExact = e.colMismatch(), true
		}
		e.updates++
		if d == 0 {
			return nil
		}
		if d >= prev {
			break
		}
		prev = d
	}

	if !rowsExact {
		if err := e.spend(); err != nil {
			return err
		}
		if err := e.rowPass(); err != nil {
			return err
		}
		e.updates++
		if e.colMismatch() == 0 {
			return nil
		}
	}

	return e.tieAndTransfer()
}

// spend fails once updates plus transfers reach the budget.
func (e *engine) spend() error {
	if e.updates+e.transfers >= e.budget {
		return fmt.Errorf("%w: %d updates and %d transfers, budget %d",
			ErrNonConvergence, e.updates, e.transfers, e.budget)
	}

	return nil
}

// rowPass refits every row against the current column divisors.
func (e *engine) rowPass() error {
	colSum := e.colSums()
	for i := 0; i < e.rows; i++ {
		values := make([]rational.Rat, e.cols)
		for j := range values {
			values[j] = e.w[i][j].Quo(e.y[j])
			colSum[j] -= e.a[i][j]
		}
		res, err := divisor.ApportionRational(values, e.rowTarget[i])
		if err != nil {
			return fmt.Errorf("%w: row %d: %w", ErrDegenerateInput, i, err)
		}
		e.x[i] = res.ElectionKey
		copy(e.a[i], res.Apportionment)
		grant(res,
			func(j int) int { return e.colTarget[j] - colSum[j] - e.a[i][j] },
			func(j int) { e.a[i][j]++ })
		for j := range colSum {
			colSum[j] += e.a[i][j]
		}
	}

	return nil
}

// colPass refits every column against the current row divisors.
func (e *engine) colPass() error {
	rowSum := e.rowSums()
	for j := 0; j < e.cols; j++ {
		values := make([]rational.Rat, e.rows)
		for i := range values {
			values[i] = e.w[i][j].Quo(e.x[i])
			rowSum[i] -= e.a[i][j]
		}
		res, err := divisor.ApportionRational(values, e.colTarget[j])
		if err != nil {
			return fmt.Errorf("%w: column %d: %w", ErrDegenerateInput, j, err)
		}
		e.y[j] = res.ElectionKey
		for i, seats := range res.Apportionment {
			e.a[i][j] = seats
		}
		grant(res,
			func(i int) int { return e.rowTarget[i] - rowSum[i] - e.a[i][j] },
			func(i int) { e.a[i][j]++ })
		for i := range rowSum {
			rowSum[i] += e.a[i][j]
		}
	}

	return nil
}

// grant hands the seats a divisor run left open to its tied items: largest
// deficit first, lowest index among equals, at most one seat per item.
func grant(res divisor.Result, deficit func(k int) int, give func(k int)) {
	open := res.TiedItems()
	for n := res.CountOfMissingNumberOfMandates; n > 0 && len(open) > 0; n-- {
		best := 0
		for p := 1; p < len(open); p++ {
			if deficit(open[p]) > deficit(open[best]) {
				best = p
			}
		}
		give(open[best])
		open = append(open[:best], open[best+1:]...)
	}
}

// quotient returns votes / (x[i]·y[j]) at the current divisors.
func (e *engine) quotient(i, j int) rational.Rat {
	if e.votes[i][j] == 0 {
		return rational.Zero
	}

	return e.w[i][j].Quo(e.x[i].Mul(e.y[j]))
}

// boundary reports whether cell (i, j) sits on a rounding boundary from
// which it could lose a seat (quotient a-1/2) or gain one (quotient a+1/2).
func (e *engine) boundary(i, j int) (lose, gain bool) {
	q := e.quotient(i, j)
	if e.votes[i][j] == 0 || !q.IsHalf() {
		return false, false
	}
	a := rational.FromInt(int64(e.a[i][j]))
	lose = e.a[i][j] > 0 && q.Equal(a.Sub(rational.Half))
	gain = q.Equal(a.Add(rational.Half))

	return lose, gain
}

func (e *engine) rowSums() []int {
	out := make([]int, e.rows)
	for i, row := range e.a {
		for _, v := range row {
			out[i] += v
		}
	}

	return out
}

func (e *engine) colSums() []int {
	out := make([]int, e.cols)
	for _, row := range e.a {
		for j, v := range row {
			out[j] += v
		}
	}

	return out
}

func (e *engine) rowMismatch() int { return mismatch(e.rowSums(), e.rowTarget) }

func (e *engine) colMismatch() int { return mismatch(e.colSums(), e.colTarget) }

// mismatch is the L1 distance between sums and targets.
func mismatch(sums, targets []int) int {
	d := 0
	for k := range sums {
		if sums[k] > targets[k] {
			d += sums[k] - targets[k]
		} else {
			d += targets[k] - sums[k]
		}
	}

	return d
}

func allZero(row []core.Weight) bool {
	for _, w := range row {
		if !w.IsZero() {
			return false
		}
	}

	return true
}

// result freezes the engine state. Tie states come from the final quotients.
func (e *engine) result() (Result, error) {
	dense, err := matrix.FromRows(e.a)
	if err != nil {
		return Result{}, fmt.Errorf("biprop: internal state: %w", err)
	}
	ties := make([][]core.TieState, e.rows)
	for i := range ties {
		ties[i] = make([]core.TieState, e.cols)
		for j := range ties[i] {
			ties[i][j] = core.ClassifyTie(e.quotient(i, j))
		}
	}

	return Result{
		RowDivisors:       e.x,
		ColumnDivisors:    e.y,
		Apportionment:     dense,
		TieStates:         ties,
		NumberOfUpdates:   e.updates,
		NumberOfTransfers: e.transfers,
		votes:             e.votes,
	}, nil
}
