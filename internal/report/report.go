// Package report turns engine results into serializable reports and renders
// them as text tables or JSON.
package report

import (
	"encoding/json"
	"io"

	"github.com/google/uuid"

	"github.com/katalvlaran/apportion/biprop"
	"github.com/katalvlaran/apportion/core"
	"github.com/katalvlaran/apportion/divisor"
	"github.com/katalvlaran/apportion/internal/inputfile"
	"github.com/katalvlaran/apportion/rational"
)

// approxDigits is the number of decimals shown next to exact divisors.
const approxDigits = 6

// Divisor carries an exact divisor and a decimal rendering for humans.
type Divisor struct {
	Exact  rational.Rat `json:"exact"`
	Approx string       `json:"approx"`
}

func newDivisor(d rational.Rat) Divisor {
	return Divisor{Exact: d, Approx: d.FloatString(approxDigits)}
}

// TiedCell names a tied cell and its quotient.
type TiedCell struct {
	Row      string       `json:"row"`
	Column   string       `json:"column"`
	Seats    int          `json:"seats"`
	Quotient rational.Rat `json:"quotient"`
}

// Report describes a biproportional run.
type Report struct {
	RunID             uuid.UUID         `json:"run_id"`
	Title             string            `json:"title,omitempty"`
	Rows              []string          `json:"rows"`
	Columns           []string          `json:"columns"`
	RowTargets        []int             `json:"row_targets"`
	ColumnTargets     []int             `json:"column_targets"`
	Apportionment     [][]int           `json:"apportionment"`
	TieStates         [][]core.TieState `json:"tie_states"`
	RowDivisors       []Divisor         `json:"row_divisors"`
	ColumnDivisors    []Divisor         `json:"column_divisors"`
	TiedCells         []TiedCell        `json:"tied_cells,omitempty"`
	HasTies           bool              `json:"has_ties"`
	NumberOfUpdates   int               `json:"number_of_updates"`
	NumberOfTransfers int               `json:"number_of_transfers"`
}

// FromResult builds a Report. p supplies names and targets; res must have
// been computed from p.Input().
func FromResult(p inputfile.Problem, res biprop.Result, runID uuid.UUID) Report {
	r := Report{
		RunID:             runID,
		Title:             p.Title,
		Rows:              p.RowNames(),
		Columns:           p.ColumnNames(),
		RowTargets:        make([]int, len(p.Rows)),
		ColumnTargets:     make([]int, len(p.Columns)),
		Apportionment:     res.Apportionment.Data(),
		TieStates:         res.TieStates,
		RowDivisors:       make([]Divisor, len(res.RowDivisors)),
		ColumnDivisors:    make([]Divisor, len(res.ColumnDivisors)),
		HasTies:           res.HasTies(),
		NumberOfUpdates:   res.NumberOfUpdates,
		NumberOfTransfers: res.NumberOfTransfers,
	}
	for i, row := range p.Rows {
		r.RowTargets[i] = row.Target
	}
	for j, col := range p.Columns {
		r.ColumnTargets[j] = col.Target
	}
	for i, d := range res.RowDivisors {
		r.RowDivisors[i] = newDivisor(d)
	}
	for j, d := range res.ColumnDivisors {
		r.ColumnDivisors[j] = newDivisor(d)
	}
	for _, c := range res.TiedCells() {
		r.TiedCells = append(r.TiedCells, TiedCell{
			Row:      r.Rows[c.Row],
			Column:   r.Columns[c.Col],
			Seats:    r.Apportionment[c.Row][c.Col],
			Quotient: res.Quotient(c.Row, c.Col),
		})
	}

	return r
}

// DivisorItem is one line of a divisor report.
type DivisorItem struct {
	Name     string        `json:"name"`
	Votes    int64         `json:"votes"`
	Seats    int           `json:"seats"`
	Quotient rational.Rat  `json:"quotient"`
	Tie      core.TieState `json:"tie"`
}

// DivisorReport describes a single-dimension run.
type DivisorReport struct {
	RunID       uuid.UUID     `json:"run_id"`
	Title       string        `json:"title,omitempty"`
	Seats       int           `json:"seats"`
	Items       []DivisorItem `json:"items"`
	ElectionKey Divisor       `json:"election_key"`
	// Missing counts seats left open by ties.
	Missing int  `json:"missing"`
	HasTies bool `json:"has_ties"`
}

// FromDivisorResult builds a DivisorReport.
func FromDivisorResult(p inputfile.DivisorProblem, res divisor.Result, runID uuid.UUID) DivisorReport {
	r := DivisorReport{
		RunID:       runID,
		Title:       p.Title,
		Seats:       p.Seats,
		Items:       make([]DivisorItem, len(p.Items)),
		ElectionKey: newDivisor(res.ElectionKey),
		Missing:     res.CountOfMissingNumberOfMandates,
		HasTies:     res.HasTies(),
	}
	for k, it := range p.Items {
		r.Items[k] = DivisorItem{
			Name:     it.Name,
			Votes:    it.Votes,
			Seats:    res.Apportionment[k],
			Quotient: res.Quotients[k],
			Tie:      res.TieStates[k],
		}
	}

	return r
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
