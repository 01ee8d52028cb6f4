package biprop

import (
	"fmt"

	"github.com/katalvlaran/apportion/matrix"
)

// validate checks shape, targets and margins, in that order, and returns the
// dimensions on success.
func validate(in Input) (rows, cols int, err error) {
	rows, cols, err = matrix.ValidateRectangular(in.Weights)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: weights: %w", ErrInvalidInput, err)
	}
	if err = matrix.ValidateVecLen(in.RowTargets, rows); err != nil {
		return 0, 0, fmt.Errorf("%w: row targets: %w", ErrInvalidInput, err)
	}
	if err = matrix.ValidateVecLen(in.ColumnTargets, cols); err != nil {
		return 0, 0, fmt.Errorf("%w: column targets: %w", ErrInvalidInput, err)
	}

	rowTotal, err := targetTotal("row", in.RowTargets)
	if err != nil {
		return 0, 0, err
	}
	colTotal, err := targetTotal("column", in.ColumnTargets)
	if err != nil {
		return 0, 0, err
	}
	if rowTotal != colTotal {
		return 0, 0, fmt.Errorf("%w: rows %d, columns %d", ErrInconsistentMargins, rowTotal, colTotal)
	}

	for i, row := range in.Weights {
		if in.RowTargets[i] > 0 && allZero(row) {
			return 0, 0, fmt.Errorf("%w: row %d has no votes but %d seats", ErrDegenerateInput, i, in.RowTargets[i])
		}
	}
	for j := 0; j < cols; j++ {
		if in.ColumnTargets[j] == 0 {
			continue
		}
		empty := true
		for i := 0; i < rows && empty; i++ {
			empty = in.Weights[i][j].IsZero()
		}
		if empty {
			return 0, 0, fmt.Errorf("%w: column %d has no votes but %d seats", ErrDegenerateInput, j, in.ColumnTargets[j])
		}
	}

	return rows, cols, nil
}

func targetTotal(kind string, targets []int) (int, error) {
	total := 0
	for k, t := range targets {
		if t < 0 {
			return 0, fmt.Errorf("%w: %s target %d is negative (%d)", ErrInvalidInput, kind, k, t)
		}
		total += t
	}

	return total, nil
}
