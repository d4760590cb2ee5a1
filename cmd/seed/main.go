package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"techquiz-server/internal/di"
	"techquiz-server/internal/seed/config"
	"techquiz-server/internal/shared/logger"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Default().Warnf("Could not load .env file: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Default().Fatalf("Failed to load configuration: %v", err)
	}

	container := di.NewContainer(cfg, nil)
	appLogger := container.Logger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, container); err != nil {
		appLogger.Errorf("Seeding failed: %v", err)
		if closeErr := container.Close(); closeErr != nil {
			appLogger.Errorf("Failed to close container: %v", closeErr)
		}
		os.Exit(1)
	}

	if err := container.Close(); err != nil {
		appLogger.Errorf("Failed to close container: %v", err)
	}
}

func run(ctx context.Context, container *di.Container) error {
	initCtx, cancel := context.WithTimeout(ctx, container.Config.Mongo.ConnectTimeout)
	defer cancel()

	if err := container.Initialize(initCtx); err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	report, err := container.GetSeedModule().GetRunner().Run(ctx)
	if err != nil {
		return err
	}

	container.Logger.WithFields(map[string]interface{}{
		"run_id":     report.RunID,
		"database":   report.Database,
		"collection": report.Collection,
		"dropped":    report.Dropped,
		"inserted":   report.Inserted,
		"duration":   report.Duration().String(),
	}).Info("Database seeded")
	return nil
}
