package core

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/apportion/rational"
)

// Sentinel errors for core value types.
var (
	// ErrNegativeVoteCount indicates that a Weight was built with votes < 0.
	ErrNegativeVoteCount = errors.New("core: vote count must be non-negative")

	// ErrUnknownTieState indicates text that names no TieState.
	ErrUnknownTieState = errors.New("core: unknown tie state")
)

// Weight is an immutable named non-negative vote count: the atomic input
// placed at one position of a weight vector or matrix.
type Weight struct {
	name      string
	voteCount int64
}

// NewWeight returns a Weight or ErrNegativeVoteCount when votes < 0.
func NewWeight(name string, votes int64) (Weight, error) {
	if votes < 0 {
		return Weight{}, fmt.Errorf("%w: %q has %d", ErrNegativeVoteCount, name, votes)
	}

	return Weight{name: name, voteCount: votes}, nil
}

// MustWeight is NewWeight that panics on error. Intended for literals in
// tests and examples.
func MustWeight(name string, votes int64) Weight {
	w, err := NewWeight(name, votes)
	if err != nil {
		panic(err.Error())
	}

	return w
}

// Weights builds unnamed weights from raw vote counts.
// The first negative count aborts with ErrNegativeVoteCount.
func Weights(votes ...int64) ([]Weight, error) {
	out := make([]Weight, len(votes))
	for i, v := range votes {
		w, err := NewWeight("", v)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		out[i] = w
	}

	return out, nil
}

// Name returns the label of the weight (may be empty).
func (w Weight) Name() string { return w.name }

// VoteCount returns the non-negative vote count.
func (w Weight) VoteCount() int64 { return w.voteCount }

// IsZero reports whether the weight carries no votes.
func (w Weight) IsZero() bool { return w.voteCount == 0 }

// Rat returns the vote count as an exact fraction.
func (w Weight) Rat() rational.Rat { return rational.FromInt(w.voteCount) }

// String renders "name=votes", or just the count for unnamed weights.
func (w Weight) String() string {
	if w.name == "" {
		return fmt.Sprintf("%d", w.voteCount)
	}

	return fmt.Sprintf("%s=%d", w.name, w.voteCount)
}

// TieState classifies how the standard rounding decided one item.
//
// The set is deliberately an open enumeration: new granularities (for
// example row-only or column-only ties) can be added without breaking
// callers that switch on Unique/Tied.
type TieState uint8

const (
	// Unique means the rounding is forced: the quotient's fractional part
	// is not exactly one half.
	Unique TieState = iota

	// Tied means the quotient's fractional part is exactly one half and a
	// legally meaningful alternative seat count exists; a lot decision is
	// required downstream.
	Tied
)

// String returns "unique" or "tied".
func (s TieState) String() string {
	switch s {
	case Unique:
		return "unique"
	case Tied:
		return "tied"
	default:
		return fmt.Sprintf("TieState(%d)", uint8(s))
	}
}

// MarshalText renders the String form, so reports carry readable states.
func (s TieState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText accepts the String form.
func (s *TieState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "unique":
		*s = Unique
	case "tied":
		*s = Tied
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTieState, text)
	}

	return nil
}

// ClassifyTie maps a quotient to Tied when its fractional part is exactly
// one half, otherwise Unique.
func ClassifyTie(q rational.Rat) TieState {
	if q.IsHalf() {
		return Tied
	}

	return Unique
}
