// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep determinism (fixed loop orders, no map iteration).
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone/Equal/sums: O(r*c).

package matrix

import (
	"fmt"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt      = "At"
	ctxSet     = "Set"
	ctxAdd     = "Add"
	ctxFromRow = "FromRows"
)

// ---------- Formatting literals ----------

const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Format: "Dense.<method>(row,col): %w". The sentinel stays matchable via errors.Is.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major grid of non-negative seat counts.
//   - r,c hold dimensions (rows, cols), both > 0.
//   - data is a flat buffer of length r*c (offset = i*c + j).
type Dense struct {
	r, c int
	data []int
}

var _ fmt.Stringer = (*Dense)(nil)

// NewDense creates an r×c zero grid.
// Returns ErrBadShape when rows<=0 or cols<=0.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("NewDense(%d,%d): %w", rows, cols, ErrBadShape)
	}

	return &Dense{r: rows, c: cols, data: make([]int, rows*cols)}, nil
}

// FromRows copies a rectangular [][]int into a new Dense.
// Returns ErrBadShape for empty/ragged input and ErrNegativeValue for entries < 0.
func FromRows(rows [][]int) (*Dense, error) {
	r, c, err := ValidateRectangular(rows)
	if err != nil {
		return nil, err
	}
	m := &Dense{r: r, c: c, data: make([]int, r*c)}
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if rows[i][j] < 0 {
				return nil, denseErrorf(ctxFromRow, i, j, ErrNegativeValue)
			}
			m.data[i*c+j] = rows[i][j]
		}
	}

	return m, nil
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.c }

// Shape returns (rows, cols).
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// indexOf validates (row,col) and returns the flat offset.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil
}

// At returns the seat count at (row,col) or ErrOutOfRange.
func (m *Dense) At(row, col int) (int, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set writes v at (row,col). Returns ErrOutOfRange or ErrNegativeValue.
func (m *Dense) Set(row, col int, v int) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if v < 0 {
		return denseErrorf(ctxSet, row, col, ErrNegativeValue)
	}
	m.data[off] = v

	return nil
}

// Add adds delta to (row,col). The result must stay non-negative.
func (m *Dense) Add(row, col int, delta int) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxAdd, row, col, err)
	}
	if m.data[off]+delta < 0 {
		return denseErrorf(ctxAdd, row, col, ErrNegativeValue)
	}
	m.data[off] += delta

	return nil
}

// RowSums returns Σ_j m[i][j] for every row i.
func (m *Dense) RowSums() []int {
	out := make([]int, m.r)
	var i, j int
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			out[i] += m.data[i*m.c+j]
		}
	}

	return out
}

// ColSums returns Σ_i m[i][j] for every column j.
func (m *Dense) ColSums() []int {
	out := make([]int, m.c)
	var i, j int
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			out[j] += m.data[i*m.c+j]
		}
	}

	return out
}

// Total returns the sum of all entries.
func (m *Dense) Total() int {
	var s int
	for _, v := range m.data {
		s += v
	}

	return s
}

// Clone returns a deep copy.
func (m *Dense) Clone() *Dense {
	cp := make([]int, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp}
}

// Equal reports whether m and o have the same shape and entries.
func (m *Dense) Equal(o *Dense) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.r != o.r || m.c != o.c {
		return false
	}
	for k := range m.data {
		if m.data[k] != o.data[k] {
			return false
		}
	}

	return true
}

// Data returns a [][]int copy, convenient for JSON output and table tests.
func (m *Dense) Data() [][]int {
	out := make([][]int, m.r)
	var i int
	for i = 0; i < m.r; i++ {
		row := make([]int, m.c)
		copy(row, m.data[i*m.c:(i+1)*m.c])
		out[i] = row
	}

	return out
}

// String renders one bracketed row per line, e.g. "[1, 0]\n[0, 1]\n".
func (m *Dense) String() string {
	var sb strings.Builder
	var i, j int
	for i = 0; i < m.r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j = 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(_fmtSep)
			}
			fmt.Fprintf(&sb, "%d", m.data[i*m.c+j])
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}
