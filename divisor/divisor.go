package divisor

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/apportion/core"
	"github.com/katalvlaran/apportion/rational"
)

// Apportion distributes targetSeats among weights with the Sainte-Laguë method.
//
// The result is deterministic and independent of item order apart from the
// indexing of the returned slices.
//
// Errors: ErrInvalidInput (see package documentation).
func Apportion(weights []core.Weight, targetSeats int) (Result, error) {
	values := make([]rational.Rat, len(weights))
	for k, w := range weights {
		values[k] = w.Rat()
	}

	return ApportionRational(values, targetSeats)
}

// ApportionRational is Apportion over exact non-negative values. The matrix
// engine calls it with votes already divided by the divisors of the other
// dimension.
func ApportionRational(values []rational.Rat, targetSeats int) (Result, error) {
	if targetSeats < 0 {
		return Result{}, fmt.Errorf("%w: target seats %d is negative", ErrInvalidInput, targetSeats)
	}
	positive := 0
	for k, v := range values {
		switch v.Sign() {
		case -1:
			return Result{}, fmt.Errorf("%w: value %d is negative (%s)", ErrInvalidInput, k, v)
		case 1:
			positive++
		}
	}
	if targetSeats > 0 && positive == 0 {
		return Result{}, fmt.Errorf("%w: %d seats over %d items with zero weight", ErrInvalidInput, targetSeats, len(values))
	}

	key := electionKey(values, targetSeats)

	return settle(values, key, targetSeats), nil
}

// electionKey returns the divisor for targetSeats seats. It is the midpoint
// between the targetSeats-th and the next signpost, or the shared signpost
// itself when both coincide.
func electionKey(values []rational.Rat, targetSeats int) rational.Rat {
	h := make(signpostHeap, 0, len(values))
	for k, v := range values {
		if v.Sign() > 0 {
			h = append(h, signpost{item: k, step: 0, value: signpostAt(v, 0)})
		}
	}
	if len(h) == 0 {
		// nothing to divide; any positive key works
		return rational.One
	}
	heap.Init(&h)

	if targetSeats == 0 {
		return h[0].value.Mul(rational.FromInt(2))
	}

	var last signpost
	for s := 0; s < targetSeats; s++ {
		last = heap.Pop(&h).(signpost)
		heap.Push(&h, signpost{
			item:  last.item,
			step:  last.step + 1,
			value: signpostAt(values[last.item], last.step+1),
		})
	}
	a, b := last.value, h[0].value
	if a.Equal(b) {
		return a
	}

	return a.Add(b).Mul(rational.Half)
}

// settle divides every value by key and rounds, flagging boundary cases.
func settle(values []rational.Rat, key rational.Rat, targetSeats int) Result {
	res := Result{
		Quotients:     make([]rational.Rat, len(values)),
		Apportionment: make([]int, len(values)),
		TieStates:     make([]core.TieState, len(values)),
		ElectionKey:   key,
	}
	assigned := 0
	for k, v := range values {
		q := v.Quo(key)
		res.Quotients[k] = q
		res.TieStates[k] = core.ClassifyTie(q)
		if res.TieStates[k] == core.Tied {
			res.Apportionment[k] = q.FloorInt()
		} else {
			res.Apportionment[k], _ = q.StandardRoundInt()
		}
		assigned += res.Apportionment[k]
	}
	res.CountOfMissingNumberOfMandates = targetSeats - assigned

	return res
}
