package divisor

import (
	"errors"

	"github.com/katalvlaran/apportion/core"
	"github.com/katalvlaran/apportion/rational"
)

// ErrInvalidInput indicates a negative target, a negative value, or a
// positive target that no item can absorb.
var ErrInvalidInput = errors.New("divisor: invalid input")

// Result is the outcome of a single-dimension apportionment.
// All slices are indexed like the input.
type Result struct {
	// Quotients holds value / ElectionKey per item.
	Quotients []rational.Rat

	// Apportionment holds the seats per item. Tied items carry the lower value.
	Apportionment []int

	// TieStates marks items whose quotient sits exactly on a rounding boundary.
	TieStates []core.TieState

	// CountOfMissingNumberOfMandates is targetSeats minus the seats assigned.
	// It is positive only when ties are present.
	CountOfMissingNumberOfMandates int

	// ElectionKey is the common divisor applied to every value.
	ElectionKey rational.Rat
}

// HasTies reports whether any item is tied.
func (r Result) HasTies() bool {
	for _, s := range r.TieStates {
		if s == core.Tied {
			return true
		}
	}

	return false
}

// TiedItems returns the indices of tied items in ascending order.
func (r Result) TiedItems() []int {
	var out []int
	for k, s := range r.TieStates {
		if s == core.Tied {
			out = append(out, k)
		}
	}

	return out
}

// Seats returns the number of seats assigned, ties excluded.
func (r Result) Seats() int {
	total := 0
	for _, a := range r.Apportionment {
		total += a
	}

	return total
}
