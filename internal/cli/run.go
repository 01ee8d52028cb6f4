package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/apportion/biprop"
	"github.com/katalvlaran/apportion/divisor"
	"github.com/katalvlaran/apportion/internal/inputfile"
	"github.com/katalvlaran/apportion/internal/report"
)

func (c *CLI) runCommand() *cobra.Command {
	var (
		format        string
		maxIterations int
	)
	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Biproportional apportionment of a problem file (json, yaml or toml)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.engineOptions(cmd, maxIterations)
			if err != nil {
				return err
			}
			r, err := c.solveFile(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}

			return c.writeReports(cmd.OutOrStdout(), c.outputFormat(format), r)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: text or json (default from config)")
	cmd.Flags().IntVar(&maxIterations, "max-iterations", 0, "cap on updates plus transfers (default: automatic)")

	return cmd
}

func (c *CLI) divisorCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "divisor FILE",
		Short: "Single-dimension Sainte-Laguë apportionment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			p, err := inputfile.LoadDivisor(args[0])
			if err != nil {
				return err
			}
			weights, err := p.Weights()
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			prog := newProgress(logger)
			res, err := divisor.Apportion(weights, p.Seats)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			prog.done("Apportioned", "file", args[0], "seats", p.Seats)
			if res.HasTies() {
				logger.Warn("Result contains ties; a lot decision is required",
					"file", args[0], "items", len(res.TiedItems()), "open", res.CountOfMissingNumberOfMandates)
			}

			r := report.FromDivisorResult(p, res, uuid.New())
			w := cmd.OutOrStdout()
			if c.outputFormat(format) == "json" {
				return report.WriteJSON(w, r)
			}

			return report.WriteDivisorText(w, r)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: text or json (default from config)")

	return cmd
}

// engineOptions combines config and the --max-iterations flag.
func (c *CLI) engineOptions(cmd *cobra.Command, maxIterations int) ([]biprop.Option, error) {
	opts := c.cfg.Engine.Options()
	if cmd.Flags().Changed("max-iterations") {
		if maxIterations < 0 {
			return nil, fmt.Errorf("--max-iterations must be non-negative, got %d", maxIterations)
		}
		opts = append(opts, biprop.WithMaxIterations(maxIterations))
	}

	return opts, nil
}

func (c *CLI) outputFormat(flag string) string {
	if flag != "" {
		return flag
	}

	return c.cfg.Output.Format
}

// solveFile loads, solves and verifies one problem file.
func (c *CLI) solveFile(ctx context.Context, path string, opts []biprop.Option) (report.Report, error) {
	logger := loggerFromContext(ctx)

	p, err := inputfile.Load(path)
	if err != nil {
		return report.Report{}, err
	}
	in, err := p.Input()
	if err != nil {
		return report.Report{}, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("Loaded problem", "file", path, "rows", in.Rows(), "columns", in.Columns())

	prog := newProgress(logger)
	res, err := biprop.Apportion(in, opts...)
	if err != nil {
		return report.Report{}, fmt.Errorf("%s: %w", path, err)
	}
	if err = biprop.Verify(in, res); err != nil {
		return report.Report{}, fmt.Errorf("%s: %w", path, err)
	}
	runID := uuid.New()
	prog.done("Apportioned", "file", path, "run", runID,
		"updates", res.NumberOfUpdates, "transfers", res.NumberOfTransfers)
	if res.HasTies() {
		logger.Warn("Result contains ties; a lot decision is required",
			"file", path, "run", runID, "cells", len(res.TiedCells()))
	}

	return report.FromResult(p, res, runID), nil
}

// writeReports writes one or more reports in the given format. JSON output
// of several reports is a single array.
func (c *CLI) writeReports(w io.Writer, format string, reports ...report.Report) error {
	switch format {
	case "json":
		if len(reports) == 1 {
			return report.WriteJSON(w, reports[0])
		}
		return report.WriteJSON(w, reports)
	case "text":
		for k, r := range reports {
			if k > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if err := report.WriteText(w, r); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want text or json)", format)
	}
}
