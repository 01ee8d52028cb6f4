// SPDX-License-Identifier: MIT

// Package matrix provides Dense, the row-major integer grid that carries seat
// apportionments, together with the shape validators shared by the engines.
//
// The matrix package provides:
//
//   - Dense: an r×c grid of non-negative seat counts with safe accessors
//     (At/Set return errors instead of panicking), row/column sums and totals.
//   - Validators: a single source of truth for rectangular-shape and
//     vector-length checks used by divisor and biprop before any computation.
//
// Determinism: loops run in fixed row-major order; no map iteration anywhere.
package matrix
