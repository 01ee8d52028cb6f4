package biprop_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/apportion/biprop"
	"github.com/katalvlaran/apportion/core"
	"github.com/katalvlaran/apportion/matrix"
	"github.com/katalvlaran/apportion/rational"
)

func TestApportion_SeedSolves(t *testing.T) {
	in := newInput(t, [][]int64{{100, 50}, {30, 20}}, []int{2, 1}, []int{2, 1})
	res := mustApportion(t, in)

	want, err := matrix.FromRows([][]int{{1, 1}, {1, 0}})
	require.NoError(t, err)
	require.True(t, want.Equal(res.Apportionment), "got\n%s", res.Apportionment)
	require.False(t, res.HasTies())
	require.Empty(t, res.TiedCells())
	require.Equal(t, 0, res.NumberOfUpdates)
	require.Equal(t, 0, res.NumberOfTransfers)
	requireRats(t, []rational.Rat{rational.New(250, 3), rational.FromInt(50)}, res.RowDivisors)
	requireRats(t, []rational.Rat{rational.One, rational.One}, res.ColumnDivisors)
	require.True(t, res.Quotient(0, 0).Equal(rational.New(6, 5)))
	require.Equal(t, []int{2, 1}, res.RowSums())
	require.Equal(t, []int{2, 1}, res.ColumnSums())

	// nothing left to iterate, so a zero budget suffices
	_, err = biprop.Apportion(in, biprop.WithMaxIterations(0))
	require.NoError(t, err)
}

func TestApportion_SymmetricTie(t *testing.T) {
	in := newInput(t, [][]int64{{10, 10}, {10, 10}}, []int{1, 1}, []int{1, 1})
	res := mustApportion(t, in)

	require.True(t, res.HasTies())
	require.Len(t, res.TiedCells(), 4)
	for _, row := range res.TieStates {
		require.Equal(t, []core.TieState{core.Tied, core.Tied}, row)
	}
	require.Equal(t, [][]int{{1, 0}, {0, 1}}, res.Apportionment.Data())
	requireRats(t, []rational.Rat{rational.FromInt(20), rational.FromInt(20)}, res.RowDivisors)
	require.True(t, res.Quotient(1, 0).Equal(rational.Half))
}

func TestApportion_ColumnPass(t *testing.T) {
	in := newInput(t, [][]int64{{100, 50}, {30, 20}}, []int{2, 1}, []int{1, 2})
	res := mustApportion(t, in)

	require.Equal(t, [][]int{{1, 1}, {0, 1}}, res.Apportionment.Data())
	require.Equal(t, 1, res.NumberOfUpdates)
	require.Equal(t, 0, res.NumberOfTransfers)
	require.False(t, res.HasTies())
	requireRats(t, []rational.Rat{rational.New(9, 5), rational.New(3, 5)}, res.ColumnDivisors)
}

func TestApportion_SingleRowMatchesDivisorMethod(t *testing.T) {
	in := newInput(t, [][]int64{{100, 50, 30}}, []int{3}, []int{2, 1, 0})
	res := mustApportion(t, in)
	require.Equal(t, [][]int{{2, 1, 0}}, res.Apportionment.Data())
	require.Equal(t, 0, res.NumberOfTransfers)
	require.Equal(t, 0, res.NumberOfUpdates)

	in = newInput(t, [][]int64{{100, 50, 30}}, []int{3}, []int{1, 1, 1})
	res = mustApportion(t, in)
	require.Equal(t, [][]int{{1, 1, 1}}, res.Apportionment.Data())
	require.Equal(t, 0, res.NumberOfTransfers)
}

func TestApportion_SingleColumn(t *testing.T) {
	in := newInput(t, [][]int64{{100}, {50}, {30}}, []int{2, 1, 0}, []int{3})
	res := mustApportion(t, in)
	require.Equal(t, [][]int{{2}, {1}, {0}}, res.Apportionment.Data())
	require.Equal(t, 0, res.NumberOfTransfers)
}

func TestApportion_ZeroTargetRow(t *testing.T) {
	in := newInput(t, [][]int64{{5, 5}, {3, 3}}, []int{0, 2}, []int{1, 1})
	res := mustApportion(t, in)
	require.Equal(t, [][]int{{0, 0}, {1, 1}}, res.Apportionment.Data())
}

func TestApportion_Errors(t *testing.T) {
	cases := []struct {
		name  string
		in    biprop.Input
		want  error
		other error
	}{
		{
			name: "no rows",
			in:   biprop.Input{},
			want: biprop.ErrInvalidInput,
		},
		{
			name: "ragged",
			in:   newInput(t, [][]int64{{1, 2}, {3}}, []int{1, 1}, []int{1, 1}),
			want: biprop.ErrInvalidInput,
		},
		{
			name: "row target length",
			in:   newInput(t, [][]int64{{1, 2}}, []int{1, 1}, []int{1, 1}),
			want: biprop.ErrInvalidInput,
		},
		{
			name: "negative target",
			in:   newInput(t, [][]int64{{1, 2}}, []int{-1}, []int{0, -1}),
			want: biprop.ErrInvalidInput,
		},
		{
			name:  "inconsistent margins",
			in:    newInput(t, [][]int64{{1, 2}, {3, 4}}, []int{1, 1}, []int{1, 2}),
			want:  biprop.ErrInconsistentMargins,
			other: biprop.ErrInvalidInput,
		},
		{
			name: "zero column with seats",
			in:   newInput(t, [][]int64{{5, 0}, {3, 0}}, []int{1, 1}, []int{1, 1}),
			want: biprop.ErrDegenerateInput,
		},
		{
			name: "zero row with seats",
			in:   newInput(t, [][]int64{{0, 0}, {3, 4}}, []int{1, 1}, []int{1, 1}),
			want: biprop.ErrDegenerateInput,
		},
		{
			name: "unreachable margins",
			in:   newInput(t, [][]int64{{5, 0}, {0, 4}}, []int{2, 1}, []int{1, 2}),
			want: biprop.ErrDegenerateInput,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := biprop.Apportion(tc.in)
			require.ErrorIs(t, err, tc.want)
			if tc.other != nil {
				require.NotErrorIs(t, err, tc.other)
			}
		})
	}
}

func TestApportion_ZeroBudget(t *testing.T) {
	in := newInput(t, [][]int64{{100, 50}, {30, 20}}, []int{2, 1}, []int{1, 2})
	_, err := biprop.Apportion(in, biprop.WithMaxIterations(0))
	require.ErrorIs(t, err, biprop.ErrNonConvergence)
}

func TestApportion_NegativeOptionPanics(t *testing.T) {
	in := newInput(t, [][]int64{{1}}, []int{1}, []int{1})
	require.Panics(t, func() { _, _ = biprop.Apportion(in, biprop.WithMaxIterations(-1)) })
	require.Panics(t, func() { _, _ = biprop.Apportion(in, biprop.WithMaxAlternatingPasses(-1)) })
}

func TestApportion_Deterministic(t *testing.T) {
	in := newInput(t, [][]int64{{10, 10, 7}, {10, 10, 7}, {4, 9, 12}}, []int{2, 2, 3}, []int{2, 2, 3})
	first := mustApportion(t, in)
	for k := 0; k < 5; k++ {
		again := mustApportion(t, in)
		require.True(t, first.Apportionment.Equal(again.Apportionment))
		require.Equal(t, first.TieStates, again.TieStates)
		require.Equal(t, first.NumberOfUpdates, again.NumberOfUpdates)
		require.Equal(t, first.NumberOfTransfers, again.NumberOfTransfers)
		for i := range first.RowDivisors {
			require.Equal(t, first.RowDivisors[i].String(), again.RowDivisors[i].String())
		}
	}
}

func TestVerify_RejectsTamperedResult(t *testing.T) {
	in := newInput(t, [][]int64{{100, 50}, {30, 20}}, []int{2, 1}, []int{2, 1})
	res := mustApportion(t, in)

	moved := res
	moved.Apportionment = res.Apportionment.Clone()
	require.NoError(t, moved.Apportionment.Set(0, 0, 2))
	require.NoError(t, moved.Apportionment.Set(0, 1, 0))
	require.ErrorIs(t, biprop.Verify(in, moved), biprop.ErrVerification)

	flagged := res
	flagged.TieStates = [][]core.TieState{{core.Tied, core.Unique}, {core.Unique, core.Unique}}
	require.ErrorIs(t, biprop.Verify(in, flagged), biprop.ErrVerification)

	bad := res
	bad.RowDivisors = []rational.Rat{rational.Zero, rational.One}
	require.ErrorIs(t, biprop.Verify(in, bad), biprop.ErrVerification)

	require.ErrorIs(t, biprop.Verify(in, biprop.Result{}), biprop.ErrVerification)
}
