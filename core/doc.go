// Package core defines the value types shared by the apportionment engines:
// Weight, the atomic vote-count input, and TieState, the per-item rounding
// classification returned alongside every apportionment.
//
// Both types are immutable values. Nothing in core holds state across runs.
//
// Errors:
//
//	ErrNegativeVoteCount - a Weight was built from a negative vote count.
package core
