package biprop_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/apportion/biprop"
	"github.com/katalvlaran/apportion/core"
	"github.com/katalvlaran/apportion/rational"
)

// newInput builds an Input from plain vote counts.
func newInput(t testing.TB, votes [][]int64, rows, cols []int) biprop.Input {
	t.Helper()
	w := make([][]core.Weight, len(votes))
	for i, row := range votes {
		ws, err := core.Weights(row...)
		require.NoError(t, err)
		w[i] = ws
	}

	return biprop.Input{Weights: w, RowTargets: rows, ColumnTargets: cols}
}

// mustApportion runs Apportion and checks the result with Verify.
func mustApportion(t testing.TB, in biprop.Input, opts ...biprop.Option) biprop.Result {
	t.Helper()
	res, err := biprop.Apportion(in, opts...)
	require.NoError(t, err)
	require.NoError(t, biprop.Verify(in, res))

	return res
}

func requireRats(t testing.TB, want []rational.Rat, got []rational.Rat) {
	t.Helper()
	require.Len(t, got, len(want))
	for k := range want {
		require.True(t, want[k].Equal(got[k]), "index %d: want %s, got %s", k, want[k], got[k])
	}
}

// randomInput draws an R×C problem with weights in [1, 1000] (or zero with
// probability zeroPct/100) and consistent margins.
func randomInput(t testing.TB, rng *rand.Rand, zeroPct int) biprop.Input {
	t.Helper()
	r, c := 1+rng.Intn(5), 1+rng.Intn(5)
	votes := make([][]int64, r)
	for i := range votes {
		votes[i] = make([]int64, c)
		for j := range votes[i] {
			if rng.Intn(100) < zeroPct {
				continue
			}
			votes[i][j] = 1 + rng.Int63n(1000)
		}
	}
	rows := make([]int, r)
	total := 0
	for i := range rows {
		rows[i] = rng.Intn(7)
		total += rows[i]
	}
	cols := make([]int, c)
	for s := 0; s < total; s++ {
		cols[rng.Intn(c)]++
	}

	return newInput(t, votes, rows, cols)
}
