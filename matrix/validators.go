// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide a single, canonical source of truth for shape checks.
//   - Keep the engines minimal by delegating rectangular/length checks here.
//   - Return sentinel errors wrapped with a validator tag so call sites can match them.
//
// Determinism & Performance:
//   - All checks are pure, deterministic and allocate nothing.

package matrix

import "fmt"

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateRectangular ensures rows is non-empty and every row has the same
// positive length. It returns (rows, cols) on success.
//
// Returns ErrBadShape on empty input, an empty first row, or a ragged row.
// Complexity: O(r).
func ValidateRectangular[T any](rows [][]T) (int, int, error) {
	if len(rows) == 0 {
		return 0, 0, validatorErrorf("ValidateRectangular", fmt.Errorf("%w: no rows", ErrBadShape))
	}
	c := len(rows[0])
	if c == 0 {
		return 0, 0, validatorErrorf("ValidateRectangular", fmt.Errorf("%w: row 0 is empty", ErrBadShape))
	}
	for i := 1; i < len(rows); i++ {
		if len(rows[i]) != c {
			return 0, 0, validatorErrorf("ValidateRectangular",
				fmt.Errorf("%w: row %d has %d columns, want %d", ErrBadShape, i, len(rows[i]), c))
		}
	}

	return len(rows), c, nil
}

// ValidateVecLen checks len(x) == n.
// Returns ErrDimensionMismatch otherwise. Complexity: O(1).
func ValidateVecLen[T any](x []T, n int) error {
	if len(x) != n {
		return validatorErrorf("ValidateVecLen",
			fmt.Errorf("%w: length %d, want %d", ErrDimensionMismatch, len(x), n))
	}

	return nil
}

// ValidateSameShape checks that a and b are non-nil with identical shapes.
// Returns ErrNilMatrix or ErrDimensionMismatch. Complexity: O(1).
func ValidateSameShape(a, b *Dense) error {
	if a == nil || b == nil {
		return validatorErrorf("ValidateSameShape", ErrNilMatrix)
	}
	if a.r != b.r || a.c != b.c {
		return validatorErrorf("ValidateSameShape", ErrDimensionMismatch)
	}

	return nil
}
