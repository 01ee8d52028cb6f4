package biprop

import (
	"fmt"

	"github.com/katalvlaran/apportion/rational"
)

// queueItem is a labeled row or column waiting to be scanned.
type queueItem struct {
	row bool
	idx int
}

// labeling is the outcome of one alternating-path search.
type labeling struct {
	rowLabeled []bool
	colLabeled []bool
	rowVia     []int // column a row was reached from
	colVia     []int // row a column was reached from; -1 for a root
	target     int   // under-represented column reached, or -1
}

// tieAndTransfer moves seats along alternating paths until the column sums
// match. Row sums stay exact and every cell stays consistent with its
// quotient throughout.
func (e *engine) tieAndTransfer() error {
	for {
		colSum := e.colSums()
		if mismatch(colSum, e.colTarget) == 0 {
			return nil
		}
		if err := e.spend(); err != nil {
			return err
		}

		lab := e.label(colSum)
		if lab.target >= 0 {
			e.transfer(lab)
			e.transfers++
			continue
		}

		delta, ok := e.frontierFactor(lab)
		if !ok {
			return fmt.Errorf("%w: no alternating path leaves over-represented columns %v",
				ErrDegenerateInput, labeledIndices(lab.colLabeled))
		}
		e.rescale(lab, delta)
		e.updates++
	}
}

// label runs a breadth-first search from every over-represented column.
// A column reaches a row through a cell that may lose a seat; a row reaches
// a column through a cell that may gain one. The search stops at the first
// under-represented column.
func (e *engine) label(colSum []int) labeling {
	lab := labeling{
		rowLabeled: make([]bool, e.rows),
		colLabeled: make([]bool, e.cols),
		rowVia:     make([]int, e.rows),
		colVia:     make([]int, e.cols),
		target:     -1,
	}
	queue := make([]queueItem, 0, e.rows+e.cols)
	for j := 0; j < e.cols; j++ {
		lab.colVia[j] = -1
		if colSum[j] > e.colTarget[j] {
			lab.colLabeled[j] = true
			queue = append(queue, queueItem{idx: j})
		}
	}

	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]
		if !it.row {
			j := it.idx
			for i := 0; i < e.rows; i++ {
				if lab.rowLabeled[i] {
					continue
				}
				if lose, _ := e.boundary(i, j); lose {
					lab.rowLabeled[i] = true
					lab.rowVia[i] = j
					queue = append(queue, queueItem{row: true, idx: i})
				}
			}
			continue
		}

		i := it.idx
		for j := 0; j < e.cols; j++ {
			if lab.colLabeled[j] {
				continue
			}
			if _, gain := e.boundary(i, j); gain {
				lab.colLabeled[j] = true
				lab.colVia[j] = i
				if colSum[j] < e.colTarget[j] {
					lab.target = j
					return lab
				}
				queue = append(queue, queueItem{idx: j})
			}
		}
	}

	return lab
}

// transfer moves one seat along the path ending at lab.target: every row on
// the path gains in its incoming column and loses in its outgoing one.
func (e *engine) transfer(lab labeling) {
	j := lab.target
	for lab.colVia[j] >= 0 {
		i := lab.colVia[j]
		e.a[i][j]++
		j = lab.rowVia[i]
		e.a[i][j]--
	}
}

// frontierFactor returns the smallest δ > 1 at which scaling labeled column
// divisors by δ and labeled row divisors by 1/δ puts a frontier cell on a
// boundary. ok is false when no frontier cell can ever reach one.
func (e *engine) frontierFactor(lab labeling) (delta rational.Rat, ok bool) {
	for i := 0; i < e.rows; i++ {
		for j := 0; j < e.cols; j++ {
			if e.votes[i][j] == 0 {
				continue
			}
			var d rational.Rat
			a := rational.FromInt(int64(e.a[i][j]))
			switch {
			case lab.colLabeled[j] && !lab.rowLabeled[i] && e.a[i][j] > 0:
				// quotient shrinks towards a-1/2
				d = e.quotient(i, j).Quo(a.Sub(rational.Half))
			case lab.rowLabeled[i] && !lab.colLabeled[j]:
				// quotient grows towards a+1/2
				d = a.Add(rational.Half).Quo(e.quotient(i, j))
			default:
				continue
			}
			if !ok || d.Less(delta) {
				delta, ok = d, true
			}
		}
	}

	return delta, ok
}

// rescale multiplies labeled column divisors by delta and divides labeled row
// divisors by it. Cells in a labeled row and labeled column keep their quotient.
func (e *engine) rescale(lab labeling, delta rational.Rat) {
	for j, on := range lab.colLabeled {
		if on {
			e.y[j] = e.y[j].Mul(delta)
		}
	}
	for i, on := range lab.rowLabeled {
		if on {
			e.x[i] = e.x[i].Quo(delta)
		}
	}
}

func labeledIndices(labeled []bool) []int {
	var out []int
	for k, on := range labeled {
		if on {
			out = append(out, k)
		}
	}

	return out
}
