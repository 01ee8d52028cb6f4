// Package biprop computes biproportional seat apportionments: integer matrices
// whose row and column sums hit prescribed targets while every cell is the
// standard rounding of votes / (row divisor · column divisor).
//
// Overview:
//
//   - Rows are usually districts and columns parties (or the reverse); the
//     engine treats both dimensions symmetrically.
//   - Every cell obeys A[i][j] = round(W[i][j] / (x[i]·y[j])) with round-half-up,
//     except cells whose quotient ends in exactly 1/2: those are reported as
//     core.Tied and either seat count is consistent with the divisors.
//   - Arithmetic is exact throughout (package rational). No floats are used to
//     decide seats.
//
// Algorithm:
//
//  1. Seed. Column divisors start at 1 and each row is apportioned on its own
//     with the Sainte-Laguë method (package divisor).
//  2. Alternating scaling. Columns, then rows, then columns... are refitted by
//     one divisor run per line until the total margin mismatch stops falling.
//     This gets most inputs to a solution in one or two passes.
//  3. Tie-and-transfer. Starting from exact row sums, over-represented columns
//     are labeled and alternating paths through cells on a rounding boundary
//     are searched. A path reaching an under-represented column moves one
//     seat along it. Without such a path the labeled divisors are rescaled by
//     the smallest exact factor that creates a new boundary cell. Every step
//     lowers the mismatch or grows the labeled set, so the phase terminates.
//  4. Tie normalization. The final divisors are perturbed by a tiny exact
//     factor so that only cells on alternating cycles of boundary cells (where
//     a different, equally valid apportionment exists) stay tied.
//
// Options:
//
//   - WithMaxIterations: cap on updates plus transfers (default derived from
//     the input size).
//   - WithMaxAlternatingPasses: length of phase 2; 0 goes straight to
//     tie-and-transfer.
//   - WithoutTieNormalization: skip phase 4 and report every boundary cell.
//
// Errors (sentinel, match with errors.Is):
//
//   - ErrInvalidInput        malformed shape or negative targets.
//   - ErrInconsistentMargins row and column targets sum differently.
//   - ErrDegenerateInput     a zero-weight row or column with a positive target,
//     or margins no zero pattern of the weights can reach.
//   - ErrNonConvergence      the iteration budget ran out.
//   - ErrVerification        Verify found a broken invariant.
package biprop
