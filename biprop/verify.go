package biprop

import (
	"fmt"

	"github.com/katalvlaran/apportion/core"
	"github.com/katalvlaran/apportion/rational"
)

// Verify checks that res is a biproportional apportionment of in: shapes
// agree, divisors are positive, margins match, each cell is the standard
// rounding of its quotient, and exactly the cells whose quotient ends in 1/2
// are tied (holding either neighbouring integer).
//
// It recomputes every quotient from in, so it also accepts results that were
// decoded from a report. Errors wrap ErrVerification, or the validation
// errors of Apportion when in itself is malformed.
func Verify(in Input, res Result) error {
	rows, cols, err := validate(in)
	if err != nil {
		return err
	}
	if res.Apportionment == nil {
		return fmt.Errorf("%w: no apportionment", ErrVerification)
	}
	if r, c := res.Apportionment.Shape(); r != rows || c != cols {
		return fmt.Errorf("%w: apportionment is %dx%d, input is %dx%d", ErrVerification, r, c, rows, cols)
	}
	if len(res.RowDivisors) != rows || len(res.ColumnDivisors) != cols {
		return fmt.Errorf("%w: %d row and %d column divisors for a %dx%d input",
			ErrVerification, len(res.RowDivisors), len(res.ColumnDivisors), rows, cols)
	}
	if len(res.TieStates) != rows {
		return fmt.Errorf("%w: %d tie-state rows, want %d", ErrVerification, len(res.TieStates), rows)
	}
	if err = positive("row", res.RowDivisors); err != nil {
		return err
	}
	if err = positive("column", res.ColumnDivisors); err != nil {
		return err
	}
	if err = sameSums("row", res.RowSums(), in.RowTargets); err != nil {
		return err
	}
	if err = sameSums("column", res.ColumnSums(), in.ColumnTargets); err != nil {
		return err
	}

	for i := 0; i < rows; i++ {
		if len(res.TieStates[i]) != cols {
			return fmt.Errorf("%w: tie-state row %d has %d entries, want %d", ErrVerification, i, len(res.TieStates[i]), cols)
		}
		for j := 0; j < cols; j++ {
			if err = verifyCell(in, res, i, j); err != nil {
				return err
			}
		}
	}

	return nil
}

func verifyCell(in Input, res Result, i, j int) error {
	a, err := res.Apportionment.At(i, j)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrVerification, err)
	}
	q := rational.Zero
	if !in.Weights[i][j].IsZero() {
		q = in.Weights[i][j].Rat().Quo(res.RowDivisors[i].Mul(res.ColumnDivisors[j]))
	}
	n, half := q.StandardRoundInt()
	state := res.TieStates[i][j]

	switch {
	case half && state != core.Tied:
		return fmt.Errorf("%w: cell (%d,%d) quotient %s is on a boundary but marked %s", ErrVerification, i, j, q, state)
	case !half && state != core.Unique:
		return fmt.Errorf("%w: cell (%d,%d) quotient %s is marked %s", ErrVerification, i, j, q, state)
	case half && a != n && a != n-1:
		return fmt.Errorf("%w: cell (%d,%d) has %d seats, quotient %s allows %d or %d", ErrVerification, i, j, a, q, n-1, n)
	case !half && a != n:
		return fmt.Errorf("%w: cell (%d,%d) has %d seats, quotient %s rounds to %d", ErrVerification, i, j, a, q, n)
	}

	return nil
}

func positive(kind string, divisors []rational.Rat) error {
	for k, d := range divisors {
		if d.Sign() <= 0 {
			return fmt.Errorf("%w: %s divisor %d is %s", ErrVerification, kind, k, d)
		}
	}

	return nil
}

func sameSums(kind string, sums, targets []int) error {
	for k := range targets {
		if sums[k] != targets[k] {
			return fmt.Errorf("%w: %s %d sums to %d, target %d", ErrVerification, kind, k, sums[k], targets[k])
		}
	}

	return nil
}
