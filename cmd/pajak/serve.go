package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rgehrsitz/pajak/internal/api"
	"github.com/rgehrsitz/pajak/internal/metrics"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator as an HTTP JSON API",
		Long: `Serve the calculator over HTTP until interrupted.

Endpoints:
  GET  /api/ter/{category}
  POST /api/pph21/monthly
  POST /api/pph21/annual
  POST /api/pph21/compare
  GET  /metrics
  GET  /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			rules, err := loadRules(cmd)
			if err != nil {
				return err
			}

			m := metrics.Default()
			handler := api.NewHandler(newCalculator(rules), m, slog.Default())
			server := api.NewServer(addr, api.NewRouter(handler, m.Handler()))

			errCh := make(chan error, 1)
			go func() {
				defer close(errCh)
				slog.Info("server starting", "addr", addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			case <-cmd.Context().Done():
			}

			slog.Info("shutting down server")
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("server forced to shutdown: %w", err)
			}
			slog.Info("server stopped")
			return nil
		},
	}
	cmd.Flags().String("addr", ":8080", "Listen address")
	cmd.Flags().String("regulatory-config", "", "Path to regulatory config file (default: regulatory.yaml if it exists)")
	return cmd
}
