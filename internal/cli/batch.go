package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/apportion/internal/report"
)

func (c *CLI) batchCommand() *cobra.Command {
	var (
		format        string
		parallel      int
		maxIterations int
	)
	cmd := &cobra.Command{
		Use:   "batch FILE...",
		Short: "Solve several problem files concurrently",
		Long: `batch solves every problem file independently, up to --parallel at a time,
and writes the reports in argument order. The first failure cancels the rest.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.engineOptions(cmd, maxIterations)
			if err != nil {
				return err
			}
			if parallel == 0 {
				parallel = c.cfg.Batch.Parallel
			}
			if parallel < 1 {
				return fmt.Errorf("--parallel must be at least 1, got %d", parallel)
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(parallel)
			reports := make([]report.Report, len(args))
			for k, path := range args {
				k, path := k, path
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					r, err := c.solveFile(ctx, path, opts)
					if err != nil {
						return err
					}
					reports[k] = r
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Info("Batch complete", "problems", len(args))

			format = c.outputFormat(format)
			if format == "json" {
				return report.WriteJSON(cmd.OutOrStdout(), reports)
			}

			return c.writeReports(cmd.OutOrStdout(), format, reports...)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: text or json (default from config)")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", 0, "problems solved at once (default from config)")
	cmd.Flags().IntVar(&maxIterations, "max-iterations", 0, "cap on updates plus transfers (default: automatic)")

	return cmd
}
