package divisor_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/apportion/core"
	"github.com/katalvlaran/apportion/divisor"
	"github.com/katalvlaran/apportion/rational"
)

func mustWeights(t *testing.T, votes ...int64) []core.Weight {
	t.Helper()
	ws, err := core.Weights(votes...)
	require.NoError(t, err)

	return ws
}

func TestApportion_UniqueOutcome(t *testing.T) {
	res, err := divisor.Apportion(mustWeights(t, 100, 50, 30), 3)
	require.NoError(t, err)

	require.Equal(t, []int{2, 1, 0}, res.Apportionment)
	require.Equal(t, 0, res.CountOfMissingNumberOfMandates)
	require.False(t, res.HasTies())
	require.Empty(t, res.TiedItems())
	// midpoint of the 3rd (200/3) and 4th (60) signposts
	require.True(t, res.ElectionKey.Equal(rational.New(190, 3)), "key=%s", res.ElectionKey)
	require.True(t, res.Quotients[0].Equal(rational.New(30, 19)))
}

func TestApportion_TwoWayTie(t *testing.T) {
	res, err := divisor.Apportion(mustWeights(t, 10, 10), 1)
	require.NoError(t, err)

	require.Equal(t, []int{0, 0}, res.Apportionment)
	require.Equal(t, []core.TieState{core.Tied, core.Tied}, res.TieStates)
	require.Equal(t, 1, res.CountOfMissingNumberOfMandates)
	require.Equal(t, []int{0, 1}, res.TiedItems())
	require.True(t, res.ElectionKey.Equal(rational.FromInt(20)))
	require.True(t, res.Quotients[1].Equal(rational.Half))
}

func TestApportion_TieAboveZero(t *testing.T) {
	// signposts 60, 20, 20, 20: the 2nd and 3rd coincide
	res, err := divisor.Apportion(mustWeights(t, 30, 10, 10), 2)
	require.NoError(t, err)

	require.Equal(t, []int{1, 0, 0}, res.Apportionment)
	require.Equal(t, []int{0, 1, 2}, res.TiedItems())
	require.Equal(t, 1, res.CountOfMissingNumberOfMandates)
	require.True(t, res.Quotients[0].Equal(rational.New(3, 2)))
}

func TestApportion_ThreeWayTieTwoSeats(t *testing.T) {
	res, err := divisor.Apportion(mustWeights(t, 1, 1, 1), 2)
	require.NoError(t, err)

	require.Equal(t, []int{0, 0, 0}, res.Apportionment)
	require.Equal(t, 2, res.CountOfMissingNumberOfMandates)
	require.Len(t, res.TiedItems(), 3)
}

func TestApportion_ZeroWeightItem(t *testing.T) {
	res, err := divisor.Apportion(mustWeights(t, 0, 7), 2)
	require.NoError(t, err)

	require.Equal(t, []int{0, 2}, res.Apportionment)
	require.True(t, res.Quotients[0].IsZero())
	require.Equal(t, core.Unique, res.TieStates[0])
	require.True(t, res.ElectionKey.Equal(rational.New(56, 15)), "key=%s", res.ElectionKey)
}

func TestApportion_ZeroTarget(t *testing.T) {
	res, err := divisor.Apportion(mustWeights(t, 3, 5), 0)
	require.NoError(t, err)

	require.Equal(t, []int{0, 0}, res.Apportionment)
	require.False(t, res.HasTies())
	require.Equal(t, 0, res.CountOfMissingNumberOfMandates)
	require.True(t, res.ElectionKey.Equal(rational.FromInt(20)))

	res, err = divisor.Apportion(mustWeights(t, 0, 0), 0)
	require.NoError(t, err)
	require.True(t, res.ElectionKey.Equal(rational.One))

	res, err = divisor.Apportion(nil, 0)
	require.NoError(t, err)
	require.Empty(t, res.Apportionment)
}

func TestApportion_InvalidInput(t *testing.T) {
	cases := []struct {
		name   string
		values []rational.Rat
		seats  int
	}{
		{"negative target", []rational.Rat{rational.One}, -1},
		{"all zero", []rational.Rat{rational.Zero, rational.Zero}, 1},
		{"empty", nil, 2},
		{"negative value", []rational.Rat{rational.One, rational.New(-1, 2)}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := divisor.ApportionRational(tc.values, tc.seats)
			require.ErrorIs(t, err, divisor.ErrInvalidInput)
		})
	}
}

func TestApportionRational_FractionalValues(t *testing.T) {
	// 6/5 and 3/5, one seat: signposts 12/5, 6/5 -> key 9/5
	res, err := divisor.ApportionRational([]rational.Rat{rational.New(6, 5), rational.New(3, 5)}, 1)
	require.NoError(t, err)
	require.Equal(t, []int{1, 0}, res.Apportionment)
	require.True(t, res.ElectionKey.Equal(rational.New(9, 5)))
}

func TestApportion_SeatsAccountedFor(t *testing.T) {
	votes := []int64{9120, 4480, 3310, 1540, 1540, 820, 0, 45}
	ws := mustWeights(t, votes...)
	for seats := 0; seats <= 40; seats++ {
		res, err := divisor.Apportion(ws, seats)
		require.NoError(t, err)
		require.Equal(t, seats, res.Seats()+res.CountOfMissingNumberOfMandates, "seats=%d", seats)
		if res.CountOfMissingNumberOfMandates > 0 {
			require.Greater(t, len(res.TiedItems()), res.CountOfMissingNumberOfMandates)
		}
		for k, q := range res.Quotients {
			n, half := q.StandardRoundInt()
			if half {
				require.Equal(t, core.Tied, res.TieStates[k])
				require.Equal(t, n-1, res.Apportionment[k])
				continue
			}
			require.Equal(t, n, res.Apportionment[k])
		}
	}
}

func TestApportion_OrderIndependent(t *testing.T) {
	a, err := divisor.Apportion(mustWeights(t, 500, 300, 200, 100), 7)
	require.NoError(t, err)
	b, err := divisor.Apportion(mustWeights(t, 100, 200, 300, 500), 7)
	require.NoError(t, err)

	n := len(a.Apportionment)
	for k := range a.Apportionment {
		require.Equal(t, a.Apportionment[k], b.Apportionment[n-1-k])
	}
	require.True(t, a.ElectionKey.Equal(b.ElectionKey))
}

func TestApportion_Deterministic(t *testing.T) {
	ws := mustWeights(t, 10, 10, 10, 3)
	first, err := divisor.Apportion(ws, 2)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := divisor.Apportion(ws, 2)
		require.NoError(t, err)
		require.Equal(t, first.Apportionment, again.Apportionment)
		require.Equal(t, first.TieStates, again.TieStates)
		require.Equal(t, first.ElectionKey.String(), again.ElectionKey.String())
	}
}
