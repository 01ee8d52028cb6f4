package divisor

import "github.com/katalvlaran/apportion/rational"

// signpost is the value at which item gains its (step+1)-th seat:
// v / (step + 1/2).
type signpost struct {
	item  int
	step  int64
	value rational.Rat
}

// signpostHeap is a max-heap ordered by value, then by ascending item index.
// The index order only fixes pop order among equal signposts; it never
// changes the outcome.
type signpostHeap []signpost

func (h signpostHeap) Len() int { return len(h) }

func (h signpostHeap) Less(i, j int) bool {
	c := h[i].value.Cmp(h[j].value)
	if c != 0 {
		return c > 0
	}

	return h[i].item < h[j].item
}

func (h signpostHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *signpostHeap) Push(x interface{}) { *h = append(*h, x.(signpost)) }

func (h *signpostHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]

	return item
}

// signpostAt returns v / (step + 1/2) = 2v / (2*step + 1).
func signpostAt(v rational.Rat, step int64) rational.Rat {
	return v.Mul(rational.New(2, 2*step+1))
}
