package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/katalvlaran/apportion/core"
)

// tieMark flags tied cells in text output.
const tieMark = "*"

var (
	colorCyan   = lipgloss.Color("36")
	colorYellow = lipgloss.Color("220")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")

	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	styleCell   = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	styleName   = lipgloss.NewStyle().Padding(0, 1)
	styleTied   = styleCell.Foreground(colorYellow).Bold(true)
	styleMargin = styleCell.Foreground(colorDim)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleWarn   = lipgloss.NewStyle().Foreground(colorYellow)
)

// WriteText renders r as a seat table: one line per row with its seats,
// seat total, target and divisor, followed by column totals, targets and
// divisors. Tied cells carry a trailing "*".
func WriteText(w io.Writer, r Report) error {
	cols := len(r.Columns)
	headers := append([]string{""}, r.Columns...)
	headers = append(headers, "Σ", "target", "divisor")

	rows := make([][]string, 0, len(r.Rows)+3)
	colSums := make([]int, cols)
	for i, name := range r.Rows {
		line := []string{name}
		sum := 0
		for j := 0; j < cols; j++ {
			seats := r.Apportionment[i][j]
			sum += seats
			colSums[j] += seats
			cell := strconv.Itoa(seats)
			if r.TieStates[i][j] == core.Tied {
				cell += tieMark
			}
			line = append(line, cell)
		}
		line = append(line, strconv.Itoa(sum), strconv.Itoa(r.RowTargets[i]), r.RowDivisors[i].Approx)
		rows = append(rows, line)
	}

	total := 0
	sums, targets, divs := []string{"Σ"}, []string{"target"}, []string{"divisor"}
	for j := 0; j < cols; j++ {
		total += colSums[j]
		sums = append(sums, strconv.Itoa(colSums[j]))
		targets = append(targets, strconv.Itoa(r.ColumnTargets[j]))
		divs = append(divs, r.ColumnDivisors[j].Approx)
	}
	sums = append(sums, strconv.Itoa(total), "", "")
	targets = append(targets, "", "", "")
	divs = append(divs, "", "", "")
	rows = append(rows, sums, targets, divs)

	body := len(r.Rows)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleDim).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case col == 0:
				return styleName
			case row >= body || col > cols:
				return styleMargin
			case r.TieStates[row][col-1] == core.Tied:
				return styleTied
			default:
				return styleCell
			}
		})

	if r.Title != "" {
		if _, err := fmt.Fprintln(w, styleTitle.Render(r.Title)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}

	return writeFooter(w, r)
}

func writeFooter(w io.Writer, r Report) error {
	if _, err := fmt.Fprintln(w, styleDim.Render(fmt.Sprintf("run %s · %d updates · %d transfers",
		r.RunID, r.NumberOfUpdates, r.NumberOfTransfers))); err != nil {
		return err
	}
	if !r.HasTies {
		_, err := fmt.Fprintln(w, "no ties")
		return err
	}
	if _, err := fmt.Fprintln(w, styleWarn.Render(fmt.Sprintf("%d tied cells (marked %s) need a lot decision:", len(r.TiedCells), tieMark))); err != nil {
		return err
	}
	for _, c := range r.TiedCells {
		if _, err := fmt.Fprintf(w, "  %s / %s: %d seats, quotient %s\n", c.Row, c.Column, c.Seats, c.Quotient); err != nil {
			return err
		}
	}

	return nil
}

// WriteDivisorText renders a single-dimension report.
func WriteDivisorText(w io.Writer, r DivisorReport) error {
	rows := make([][]string, len(r.Items))
	for k, it := range r.Items {
		seats := strconv.Itoa(it.Seats)
		if it.Tie == core.Tied {
			seats += tieMark
		}
		rows[k] = []string{it.Name, strconv.FormatInt(it.Votes, 10), it.Quotient.FloatString(approxDigits), seats}
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleDim).
		Headers("", "votes", "quotient", "seats").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case col == 0:
				return styleName
			case r.Items[row].Tie == core.Tied && col == 3:
				return styleTied
			default:
				return styleCell
			}
		})

	if r.Title != "" {
		if _, err := fmt.Fprintln(w, styleTitle.Render(r.Title)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "election key %s (%s)\n", r.ElectionKey.Approx, r.ElectionKey.Exact); err != nil {
		return err
	}
	if r.HasTies {
		_, err := fmt.Fprintln(w, styleWarn.Render(fmt.Sprintf("%d seats depend on a lot decision among items marked %s", r.Missing, tieMark)))
		return err
	}

	return nil
}
