package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devfoliohq/devfolio/internal/adapter/driven/accounts"
	"github.com/devfoliohq/devfolio/internal/adapter/driving/web"
	"github.com/devfoliohq/devfolio/internal/config"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Load configuration.
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	// 3. Open the account store so the API can accept credential updates.
	store, err := accounts.New(cfg.AccountsFile, cfg.AccountEnv())
	if err != nil {
		return err
	}

	// 4. Build the router and bind the first free port in the preview range.
	e := web.NewRouter(cfg.OutputDir, store)
	listener, err := web.Listen(cfg.ListenHost)
	if err != nil {
		return err
	}
	e.Listener = listener

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(""); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	slog.Info("preview server started",
		"addr", listener.Addr().String(),
		"output_dir", cfg.OutputDir,
	)

	// 5. Block until a shutdown signal or a server failure.
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	slog.Info("shutting down preview server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
