package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"techquiz-server/internal/di"
	adminhttp "techquiz-server/internal/seed/adapter/http"
	"techquiz-server/internal/seed/config"
	"techquiz-server/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
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

	err = run(cfg, container)
	if closeErr := container.Close(); closeErr != nil {
		appLogger.Errorf("Failed to close container: %v", closeErr)
	}
	if err != nil {
		appLogger.Errorf("Admin server failed: %v", err)
		os.Exit(1)
	}
}

// run serves the admin API until a shutdown signal or a listener failure.
// The caller closes the container.
func run(cfg *config.Config, container *di.Container) error {
	appLogger := container.Logger

	initCtx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
	defer cancel()

	if err := container.Initialize(initCtx); err != nil {
		return fmt.Errorf("failed to initialize seed module: %w", err)
	}
	if err := container.InitializeAdmin(); err != nil {
		return fmt.Errorf("failed to initialize admin API: %w", err)
	}
	appLogger.Info("Seed module initialized successfully")

	if subject := cfg.Admin.BootstrapSubject; subject != "" {
		token, err := container.TokenService.GenerateToken(context.Background(), subject)
		if err != nil {
			return fmt.Errorf("failed to issue bootstrap token: %w", err)
		}
		appLogger.WithFields(map[string]interface{}{"subject": subject}).Infof("Bootstrap admin token: %s", token)
	}

	app := fiber.New(fiber.Config{
		AppName:      "TechQuiz Seed Admin",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: adminhttp.ErrorHandler(appLogger),
	})
	app.Use(recover.New())

	container.GetSeedModule().RegisterRoutes(app, container.TokenService, container)

	serverAddr := cfg.Admin.Addr()
	appLogger.Infof("Starting admin server on %s", serverAddr)

	serverShutdown := make(chan error, 1)
	go func() {
		serverShutdown <- app.Listen(serverAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverShutdown:
		return err
	case sig := <-quit:
		appLogger.Infof("Received shutdown signal: %v", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			appLogger.Errorf("Server forced to shutdown: %v", err)
		}
		appLogger.Info("Admin server stopped")
	}
	return nil
}
