package main

import (
	"context"
	"errors"
	"log"
	"moviecatalog/httpserver"
	"moviecatalog/movie"
	"moviecatalog/pkg/config"
	"moviecatalog/pkg/logger"
	"moviecatalog/pkg/sentry"
	"moviecatalog/storage"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	sentrygo "github.com/getsentry/sentry-go"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	lg, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("cannot build logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		lg.Fatalw("cannot init sentry", "error", err)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		lg.Fatalw("cannot open movie store", "driver", cfg.StoreDriver, "error", err)
	}
	lg.Infow("movie store connected", "driver", backend.Driver)

	server := httpserver.Default(cfg)
	server.Logger = lg
	server.MovieService = movie.NewUsecase(backend.Movies)
	server.StoreHealth = backend.Movies

	errCh := make(chan error, 1)
	go func() {
		lg.Infow("server started", "addr", server.Addr)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		lg.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			lg.Errorw("server stopped with error", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeoutDuration())
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		lg.Errorw("server shutdown failed", "error", err)
	}
	if err := backend.Close(shutdownCtx); err != nil {
		lg.Errorw("movie store close failed", "error", err)
	}
	lg.Info("server stopped")
}
