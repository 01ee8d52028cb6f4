package core_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/apportion/core"
	"github.com/katalvlaran/apportion/rational"
)

func TestNewWeight(t *testing.T) {
	w, err := core.NewWeight("Zürich/SP", 1200)
	require.NoError(t, err)
	assert.Equal(t, "Zürich/SP", w.Name())
	assert.Equal(t, int64(1200), w.VoteCount())
	assert.False(t, w.IsZero())
	assert.True(t, w.Rat().Equal(rational.FromInt(1200)))
	assert.Equal(t, "Zürich/SP=1200", w.String())

	_, err = core.NewWeight("bad", -1)
	require.ErrorIs(t, err, core.ErrNegativeVoteCount)
}

func TestZeroWeight(t *testing.T) {
	w := core.MustWeight("", 0)
	assert.True(t, w.IsZero())
	assert.Equal(t, "0", w.String())
}

func TestMustWeightPanicsOnNegative(t *testing.T) {
	assert.Panics(t, func() { core.MustWeight("x", -5) })
}

func TestWeights(t *testing.T) {
	ws, err := core.Weights(3, 0, 7)
	require.NoError(t, err)
	require.Len(t, ws, 3)
	assert.Equal(t, int64(7), ws[2].VoteCount())

	_, err = core.Weights(1, -2)
	require.ErrorIs(t, err, core.ErrNegativeVoteCount)
	assert.Contains(t, err.Error(), "index 1")
}

func TestTieState(t *testing.T) {
	assert.Equal(t, "unique", core.Unique.String())
	assert.Equal(t, "tied", core.Tied.String())
	assert.Equal(t, "TieState(9)", core.TieState(9).String())

	raw, err := json.Marshal([]core.TieState{core.Unique, core.Tied})
	require.NoError(t, err)
	assert.JSONEq(t, `["unique","tied"]`, string(raw))

	var back []core.TieState
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, []core.TieState{core.Unique, core.Tied}, back)

	var s core.TieState
	require.ErrorIs(t, s.UnmarshalText([]byte("maybe")), core.ErrUnknownTieState)
}

func TestClassifyTie(t *testing.T) {
	assert.Equal(t, core.Tied, core.ClassifyTie(rational.New(1, 2)))
	assert.Equal(t, core.Tied, core.ClassifyTie(rational.New(7, 2)))
	assert.Equal(t, core.Unique, core.ClassifyTie(rational.New(7, 3)))
	assert.Equal(t, core.Unique, core.ClassifyTie(rational.FromInt(2)))
}
