package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"ledger/internal/config"
	"ledger/internal/db"
	"ledger/internal/logger"

	"go.uber.org/zap"
)

func main() {
	down := flag.Bool("down", false, "roll back the most recent migration")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "migrate: load config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.IsDevelopment())
	if err != nil {
		fmt.Fprintf(os.Stderr, "migrate: init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("connect failed", zap.Error(err))
	}
	defer database.Close()

	if *down {
		err = db.Rollback(ctx, database)
	} else {
		err = db.Migrate(ctx, database)
	}
	if err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	log.Info("migrations applied", zap.Bool("down", *down))
}
