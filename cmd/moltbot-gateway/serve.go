package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/upb/moltbot-gateway/app"
	"github.com/upb/moltbot-gateway/config"
	"github.com/upb/moltbot-gateway/routes"
	"go.uber.org/zap"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, logger, err := opts.load(cmd)
			if err != nil {
				return err
			}
			return serve(ctx, cfg, logger)
		},
	}
}

// serve wires the dependencies and listens on the configured address. The
// logger is synced on every return path.
func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	defer logger.Sync() //nolint:errcheck

	deps, err := app.NewDependencies(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize dependencies", zap.Error(err))
		return err
	}

	ln, err := net.Listen("tcp", cfg.Server.Address())
	if err != nil {
		logger.Error("failed to listen", zap.String("addr", cfg.Server.Address()), zap.Error(err))
		return fmt.Errorf("listening on %s: %w", cfg.Server.Address(), err)
	}
	return runServer(ctx, deps, ln)
}

// runServer serves on ln until ctx is done, then shuts down gracefully.
func runServer(ctx context.Context, deps *app.Dependencies, ln net.Listener) error {
	cfg := deps.Config
	srv := &http.Server{
		Handler:      routes.SetupRoutes(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		deps.Logger.Info("gateway listening",
			zap.String("addr", ln.Addr().String()),
			zap.String("environment", cfg.Environment),
			zap.String("provider", deps.Provider.String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	deps.Logger.Info("shutting down gateway")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return deps.Close(shutdownCtx)
}
