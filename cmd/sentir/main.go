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

	"github.com/crimson-sun/sentir/internal/config"
	"github.com/crimson-sun/sentir/internal/engine"
	"github.com/crimson-sun/sentir/internal/engine/provider"
	"github.com/crimson-sun/sentir/internal/logging"
	"github.com/crimson-sun/sentir/internal/registry"
	"github.com/crimson-sun/sentir/internal/server"
	"github.com/crimson-sun/sentir/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	logging.Init(cfg.Log.Format, logging.ParseLevel(cfg.Log.Level))

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	reg := registry.New(acquireFunc(cfg.Provider))
	defer reg.Close()

	svc := service.New(engine.New(reg, cfg.Server.Workers))
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.New(svc).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Server.Preload {
		if _, err := reg.Get(ctx); err != nil {
			slog.Error("model preload failed", "error", err)
			os.Exit(1)
		}
		slog.Info("model preloaded", "backend", cfg.Provider.Backend)
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("sentir listening",
			"addr", cfg.Server.Addr,
			"backend", cfg.Provider.Backend,
			"version", config.Version)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		slog.Info("received shutdown signal")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}
}

// acquireFunc builds the lazy model acquisition for the configured backend.
func acquireFunc(cfg config.ProviderConfig) registry.AcquireFunc {
	if cfg.Backend == "hf" {
		return func(ctx context.Context) (provider.Provider, error) {
			return provider.NewHuggingFace(cfg.HFEndpoint, cfg.HFToken), nil
		}
	}
	return func(ctx context.Context) (provider.Provider, error) {
		return provider.NewONNX(cfg.ModelPath, cfg.VocabPath)
	}
}
