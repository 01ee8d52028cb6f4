package biprop

import "github.com/katalvlaran/apportion/rational"

// normalizeTies perturbs the converged divisors so that only genuine ties
// remain on a rounding boundary.
//
// Boundary cells form a directed graph over rows and columns: a cell that may
// gain a seat is an arc row → column, a cell that may lose one is an arc
// column → row. A cell is a genuine tie iff its arc lies on a cycle, i.e.
// both ends share a strongly connected component; moving one seat around
// such a cycle yields another valid apportionment. Every other boundary cell
// is resolved by scaling each component with f^p, where p orders the
// condensation topologically and f is chosen close enough to 1 that no cell
// leaves its rounding interval. Seats never change.
func (e *engine) normalizeTies() {
	n := e.rows + e.cols
	adj := make([][]int, n)
	for i := 0; i < e.rows; i++ {
		for j := 0; j < e.cols; j++ {
			lose, gain := e.boundary(i, j)
			switch {
			case gain:
				adj[i] = append(adj[i], e.rows+j)
			case lose:
				adj[e.rows+j] = append(adj[e.rows+j], i)
			}
		}
	}

	comp, count := stronglyConnected(adj)
	breakable := false
	for u := range adj {
		for _, v := range adj[u] {
			if comp[u] != comp[v] {
				breakable = true
			}
		}
	}
	if !breakable {
		return
	}

	step := rational.One
	if rho, ok := e.slack(comp); ok {
		step = rational.Min(rho.Sub(rational.One), rational.One)
	}
	f := rational.One.Add(step.Quo(rational.FromInt(int64(2 * count))))

	pow := make([]rational.Rat, count)
	pow[0] = rational.One
	for p := 1; p < count; p++ {
		pow[p] = pow[p-1].Mul(f)
	}
	// an arc u → v between components has comp[u] > comp[v]; the quotient
	// scales by f^(comp[col] - comp[row]), so arcs move off the boundary in
	// the direction that keeps the current seat
	for i := 0; i < e.rows; i++ {
		e.x[i] = e.x[i].Mul(pow[comp[i]])
	}
	for j := 0; j < e.cols; j++ {
		e.y[j] = e.y[j].Quo(pow[comp[e.rows+j]])
	}
}

// slack returns the smallest factor by which any cell that must keep its
// seat could be scaled before reaching the far end of its rounding interval.
// ok is false when no cell constrains the perturbation.
func (e *engine) slack(comp []int) (rho rational.Rat, ok bool) {
	consider := func(r rational.Rat) {
		if !ok || r.Less(rho) {
			rho, ok = r, true
		}
	}
	for i := 0; i < e.rows; i++ {
		for j := 0; j < e.cols; j++ {
			if e.votes[i][j] == 0 {
				continue
			}
			q := e.quotient(i, j)
			a := rational.FromInt(int64(e.a[i][j]))
			lower, upper := a.Sub(rational.Half), a.Add(rational.Half)
			if q.IsHalf() {
				if comp[i] == comp[e.rows+j] {
					continue
				}
				if e.a[i][j] > 0 {
					consider(upper.Quo(lower))
				}
				continue
			}
			consider(upper.Quo(q))
			if e.a[i][j] > 0 {
				consider(q.Quo(lower))
			}
		}
	}

	return rho, ok
}

// stronglyConnected numbers the strongly connected components of adj with
// Tarjan's algorithm. Components come out in reverse topological order: an
// arc from component c to a different component d implies c > d.
func stronglyConnected(adj [][]int) (comp []int, count int) {
	n := len(adj)
	index := make([]int, n)
	low := make([]int, n)
	onStack := make([]bool, n)
	comp = make([]int, n)
	for v := range index {
		index[v] = -1
	}
	stack := make([]int, 0, n)
	next := 0

	var visit func(v int)
	visit = func(v int) {
		index[v], low[v] = next, next
		next++
		stack = append(stack, v)
		onStack[v] = true
		for _, w := range adj[v] {
			if index[w] < 0 {
				visit(w)
				low[v] = min(low[v], low[w])
			} else if onStack[w] {
				low[v] = min(low[v], index[w])
			}
		}
		if low[v] != index[v] {
			return
		}
		for {
			w := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[w] = false
			comp[w] = count
			if w == v {
				break
			}
		}
		count++
	}
	for v := range adj {
		if index[v] < 0 {
			visit(v)
		}
	}

	return comp, count
}
