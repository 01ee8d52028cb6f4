package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/apportion/biprop"
	"github.com/katalvlaran/apportion/core"
	"github.com/katalvlaran/apportion/divisor"
	"github.com/katalvlaran/apportion/internal/inputfile"
	"github.com/katalvlaran/apportion/internal/report"
	"github.com/katalvlaran/apportion/rational"
)

var runID = uuid.MustParse("6f1c1f9e-3a43-4d0e-9b0c-2f1f5f0a8c11")

func solve(t *testing.T, p inputfile.Problem) report.Report {
	t.Helper()
	in, err := p.Input()
	require.NoError(t, err)
	res, err := biprop.Apportion(in)
	require.NoError(t, err)

	return report.FromResult(p, res, runID)
}

func tiedProblem() inputfile.Problem {
	return inputfile.Problem{
		Title:   "even split",
		Rows:    []inputfile.Line{{Name: "North", Target: 1}, {Name: "South", Target: 1}},
		Columns: []inputfile.Line{{Name: "Red", Target: 1}, {Name: "Blue", Target: 1}},
		Votes:   [][]int64{{10, 10}, {10, 10}},
	}
}

func TestFromResult_Ties(t *testing.T) {
	r := solve(t, tiedProblem())

	assert.Equal(t, runID, r.RunID)
	assert.True(t, r.HasTies)
	assert.Equal(t, [][]int{{1, 0}, {0, 1}}, r.Apportionment)
	require.Len(t, r.TiedCells, 4)
	assert.Equal(t, "North", r.TiedCells[0].Row)
	assert.Equal(t, "Red", r.TiedCells[0].Column)
	assert.True(t, r.TiedCells[0].Quotient.Equal(rational.Half))
	assert.Equal(t, "20.000000", r.RowDivisors[0].Approx)
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	r := solve(t, tiedProblem())

	var buf bytes.Buffer
	require.NoError(t, report.WriteJSON(&buf, r))
	assert.Contains(t, buf.String(), `"exact": "20"`)
	assert.Contains(t, buf.String(), `"tied"`)

	var back report.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, r.Apportionment, back.Apportionment)
	assert.Equal(t, r.TieStates, back.TieStates)
	assert.Equal(t, r.RunID, back.RunID)
	assert.True(t, back.RowDivisors[1].Exact.Equal(rational.FromInt(20)))
}

func TestWriteText(t *testing.T) {
	r := solve(t, tiedProblem())

	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf, r))
	out := buf.String()
	for _, want := range []string{"even split", "North", "Blue", "1*", "0*", "4 tied cells", "North / Red: 1 seats, quotient 1/2", runID.String()} {
		assert.Contains(t, out, want)
	}
}

func TestWriteText_NoTies(t *testing.T) {
	p := inputfile.Problem{
		Rows:    []inputfile.Line{{Name: "North", Target: 2}, {Name: "South", Target: 1}},
		Columns: []inputfile.Line{{Name: "A", Target: 2}, {Name: "B", Target: 1}},
		Votes:   [][]int64{{100, 50}, {30, 20}},
	}
	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf, solve(t, p)))
	assert.Contains(t, buf.String(), "no ties")
	assert.NotContains(t, buf.String(), "*")
	assert.Contains(t, buf.String(), "83.333333")
}

func TestDivisorReport(t *testing.T) {
	p := inputfile.DivisorProblem{
		Title: "council",
		Seats: 1,
		Items: []inputfile.Item{{Name: "A", Votes: 10}, {Name: "B", Votes: 10}},
	}
	ws, err := p.Weights()
	require.NoError(t, err)
	res, err := divisor.Apportion(ws, p.Seats)
	require.NoError(t, err)

	r := report.FromDivisorResult(p, res, runID)
	assert.True(t, r.HasTies)
	assert.Equal(t, 1, r.Missing)
	assert.Equal(t, core.Tied, r.Items[1].Tie)

	var buf bytes.Buffer
	require.NoError(t, report.WriteDivisorText(&buf, r))
	out := buf.String()
	assert.Contains(t, out, "council")
	assert.Contains(t, out, "0*")
	assert.Contains(t, out, "election key 20.000000 (20)")
	assert.True(t, strings.Contains(out, "1 seats depend on a lot decision"))
}
