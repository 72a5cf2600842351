package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ledger/internal/config"
	"ledger/internal/db"
	"ledger/internal/handlers"
	"ledger/internal/jobs"
	"ledger/internal/logger"
	"ledger/internal/middleware"
	"ledger/internal/services"
	"ledger/internal/store"
	"ledger/internal/websocket"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ledger: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.IsDevelopment())
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, closeBackend, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeBackend()

	users := store.NewUserRegistry()
	persister := store.NewPersister(backend, users, log, 0)
	persister.Load(ctx)

	sessions := store.NewSessionRegistry(users)
	hub := websocket.NewHub()
	ledger := services.NewLedgerService(users, persister, hub, log)
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	handler := handlers.New(cfg, users, sessions, ledger, persister, hub, limiter, log)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return jobs.RunFlush(gctx, cfg.FlushInterval, persister, log)
	})
	g.Go(func() error {
		return limiter.Run(gctx)
	})
	g.Go(func() error {
		log.Info("ledger listening", zap.String("addr", server.Addr), zap.String("backend", backend.Name()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	err = g.Wait()
	persister.Save(context.Background())
	log.Info("final snapshot written", zap.Int("users", users.Len()))
	return err
}

// openBackend returns the configured snapshot backend and a func that
// releases whatever it holds.
func openBackend(ctx context.Context, cfg config.Config, log *zap.Logger) (store.SnapshotBackend, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(ctx, database); err != nil {
			_ = database.Close()
			return nil, nil, err
		}
		log.Info("postgres snapshot backend ready")
		return store.NewPostgresSnapshot(database, store.DefaultSnapshotKey), func() { _ = database.Close() }, nil
	default:
		file := store.NewFileSnapshot(cfg.DataFile)
		log.Info("file snapshot backend ready", zap.String("path", file.Path()))
		return file, func() {}, nil
	}
}
