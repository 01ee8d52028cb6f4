// Package inputfile decodes apportionment problems from JSON, YAML or TOML.
//
// A biproportional problem names its rows and columns with their seat
// targets and gives the vote matrix:
//
//	title: Canton council 2026
//	rows:
//	  - {name: North, target: 2}
//	  - {name: South, target: 1}
//	columns:
//	  - {name: Greens, target: 2}
//	  - {name: Liberals, target: 1}
//	votes:
//	  - [100, 50]
//	  - [30, 20]
//
// A divisor problem lists items and the number of seats.
package inputfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/apportion/biprop"
	"github.com/katalvlaran/apportion/core"
)

var (
	// ErrUnknownFormat indicates a file extension or format name that is not
	// json, yaml/yml or toml.
	ErrUnknownFormat = errors.New("inputfile: unknown format")

	// ErrInvalidProblem indicates a problem that cannot be decoded or does
	// not describe a well-formed input.
	ErrInvalidProblem = errors.New("inputfile: invalid problem")
)

// Format is a serialization format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat maps a name ("json", "yaml", "yml", "toml") to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Line is a named row or column with its seat target.
type Line struct {
	Name   string `json:"name" yaml:"name" toml:"name"`
	Target int    `json:"target" yaml:"target" toml:"target"`
}

// Problem is a biproportional problem as stored on disk.
type Problem struct {
	Title   string    `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Rows    []Line    `json:"rows" yaml:"rows" toml:"rows"`
	Columns []Line    `json:"columns" yaml:"columns" toml:"columns"`
	Votes   [][]int64 `json:"votes" yaml:"votes" toml:"votes"`
}

// Item is one entry of a divisor problem.
type Item struct {
	Name  string `json:"name" yaml:"name" toml:"name"`
	Votes int64  `json:"votes" yaml:"votes" toml:"votes"`
}

// DivisorProblem is a single-dimension problem as stored on disk.
type DivisorProblem struct {
	Title string `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Seats int    `json:"seats" yaml:"seats" toml:"seats"`
	Items []Item `json:"items" yaml:"items" toml:"items"`
}

// Decode reads a Problem in format f. Unknown fields are rejected.
func Decode(r io.Reader, f Format) (Problem, error) {
	var p Problem
	if err := decode(r, f, &p); err != nil {
		return Problem{}, err
	}

	return p, nil
}

// DecodeDivisor reads a DivisorProblem in format f.
func DecodeDivisor(r io.Reader, f Format) (DivisorProblem, error) {
	var p DivisorProblem
	if err := decode(r, f, &p); err != nil {
		return DivisorProblem{}, err
	}

	return p, nil
}

// Load reads a Problem from path, choosing the format by extension.
func Load(path string) (Problem, error) {
	var p Problem
	if err := load(path, &p); err != nil {
		return Problem{}, err
	}

	return p, nil
}

// LoadDivisor reads a DivisorProblem from path.
func LoadDivisor(path string) (DivisorProblem, error) {
	var p DivisorProblem
	if err := load(path, &p); err != nil {
		return DivisorProblem{}, err
	}

	return p, nil
}

func load(path string, v any) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open problem: %w", err)
	}
	defer file.Close()

	if err = decode(file, f, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return nil
}

func decode(r io.Reader, f Format, v any) error {
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidProblem, err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidProblem, err)
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(v)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidProblem, err)
		}
		if extra := md.Undecoded(); len(extra) > 0 {
			return fmt.Errorf("%w: unknown keys %v", ErrInvalidProblem, extra)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}

	return nil
}

// Input converts p to an engine input. Each weight is named "row/column".
// Shape errors and negative votes wrap ErrInvalidProblem; margin checks are
// left to the engine.
func (p Problem) Input() (biprop.Input, error) {
	if len(p.Votes) != len(p.Rows) {
		return biprop.Input{}, fmt.Errorf("%w: %d vote rows for %d rows", ErrInvalidProblem, len(p.Votes), len(p.Rows))
	}
	in := biprop.Input{
		Weights:       make([][]core.Weight, len(p.Rows)),
		RowTargets:    make([]int, len(p.Rows)),
		ColumnTargets: make([]int, len(p.Columns)),
	}
	for j, c := range p.Columns {
		in.ColumnTargets[j] = c.Target
	}
	for i, row := range p.Rows {
		in.RowTargets[i] = row.Target
		if len(p.Votes[i]) != len(p.Columns) {
			return biprop.Input{}, fmt.Errorf("%w: row %q has %d vote counts for %d columns",
				ErrInvalidProblem, row.Name, len(p.Votes[i]), len(p.Columns))
		}
		in.Weights[i] = make([]core.Weight, len(p.Columns))
		for j, votes := range p.Votes[i] {
			w, err := core.NewWeight(row.Name+"/"+p.Columns[j].Name, votes)
			if err != nil {
				return biprop.Input{}, fmt.Errorf("%w: row %q, column %q: %w", ErrInvalidProblem, row.Name, p.Columns[j].Name, err)
			}
			in.Weights[i][j] = w
		}
	}

	return in, nil
}

// RowNames returns the row names in order.
func (p Problem) RowNames() []string { return names(p.Rows) }

// ColumnNames returns the column names in order.
func (p Problem) ColumnNames() []string { return names(p.Columns) }

func names(lines []Line) []string {
	out := make([]string, len(lines))
	for k, l := range lines {
		out[k] = l.Name
	}

	return out
}

// Weights converts the items to engine weights.
func (p DivisorProblem) Weights() ([]core.Weight, error) {
	out := make([]core.Weight, len(p.Items))
	for k, it := range p.Items {
		w, err := core.NewWeight(it.Name, it.Votes)
		if err != nil {
			return nil, fmt.Errorf("%w: item %q: %w", ErrInvalidProblem, it.Name, err)
		}
		out[k] = w
	}

	return out, nil
}
