package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/deskhub/deskhub/internal/api"
	"github.com/deskhub/deskhub/internal/app"
	"github.com/deskhub/deskhub/internal/domain"
)

// newServeCommand creates the serve command.
func newServeCommand(c *app.Container) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the deskhub HTTP API server.

The server exposes token login, task CRUD, per-task audit logs and
client lookup. Users and their API passwords come from the
[users.<id>] config sections.

Examples:
  deskhub serve
  deskhub serve --addr :9000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			taskStore, err := c.RequireStore()
			if err != nil {
				return err
			}

			listenAddr := addr
			if listenAddr == "" {
				listenAddr = c.AppConfig.Server.Addr
			}

			var logger domain.Logger
			if c.Logger != nil {
				logger = c.Logger
			}

			server := &http.Server{
				Addr:              listenAddr,
				Handler:           api.New(taskStore, c.AppConfig, c.Clock, logger),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Listening on %s\n", listenAddr)
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: [server] addr from config)")

	return cmd
}
