// Package rational provides Rat, an immutable exact fraction used by every
// computation in the apportionment engines.
//
// Why exact?
//
//	Seat apportionment has to be reproducible bit for bit: two runs on the
//	same tally must produce the same divisors, the same seats and the same
//	tie flags on every platform. IEEE floating point cannot promise that once
//	quotients are rounded, so nothing in the computation path converts to
//	float64. Float64 and FloatString exist for presentation only.
//
// Key features:
//   - Value semantics: operations return new values and never mutate operands.
//   - The zero value is 0 and is ready to use.
//   - StandardRound rounds half up and reports the half boundary separately,
//     so callers can classify a tie instead of silently resolving it.
//   - IsHalf is O(1): a reduced fraction ends in exactly 1/2 iff its
//     denominator is 2.
//   - Rat implements encoding.TextMarshaler, so JSON reports carry "p/q".
//
// Usage:
//
//	q := rational.New(100, 1).Quo(rational.New(200, 3)) // 3/2
//	n, half := q.StandardRound()                         // 2, true
//
// Complexity: arithmetic is that of math/big; all values are normalised to
// lowest terms after every operation.
package rational
