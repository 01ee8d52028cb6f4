// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All functions return these sentinels (optionally wrapped with context via
// %w); tests check them with errors.Is. No function panics on user input.

package matrix

import "errors"

var (
	// ErrBadShape is returned when a requested or supplied shape is invalid
	// (rows<=0, cols<=0, or ragged rows).
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. a target vector whose length differs from the matching dimension.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNegativeValue indicates that a negative seat count was written.
	ErrNegativeValue = errors.New("matrix: negative value")

	// ErrNilMatrix indicates that a nil *Dense was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")
)
