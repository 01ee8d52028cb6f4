package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/apportion/internal/server"
)

// shutdownTimeout bounds graceful shutdown after an interrupt.
const shutdownTimeout = 5 * time.Second

func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the apportionment HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			if addr == "" {
				addr = c.cfg.Server.Addr
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           server.New(*c.cfg, logger).Handler(),
				ReadTimeout:       c.cfg.Server.ReadTimeout(),
				ReadHeaderTimeout: c.cfg.Server.ReadTimeout(),
			}
			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()
			logger.Info("Listening", "addr", addr)

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				logger.Info("Shutting down")
				if err := srv.Shutdown(shutdownCtx); err != nil {
					return err
				}
				return ctx.Err()
			}
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")

	return cmd
}
