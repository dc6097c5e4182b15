package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"agrofeira/internal/config"
	"agrofeira/internal/database"
	"agrofeira/internal/metrics"
	"agrofeira/internal/server"
	"agrofeira/pkg/logger"
	"agrofeira/pkg/token"

	"github.com/gofiber/fiber/v2"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("starting application")
	if cfg.UsesInsecureSecret() {
		log.Warn().Msg("JWT_SECRET is not set, using the development secret; never do this outside development")
	}

	app, closeDB, err := buildApp(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build application")
	}
	defer func() {
		if err := closeDB(); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}()

	// --- Start HTTP Server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("port", cfg.HTTP.Port).Msg("server listening")
		if err := app.Listen(cfg.HTTP.Port); err != nil {
			log.Error().Err(err).Msg("server stopped")
			quit <- syscall.SIGTERM
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Info().Msg("shutting down server")

	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("error during fiber shutdown")
	}
	log.Info().Msg("server gracefully stopped")
}

// buildApp opens and migrates the database and assembles the HTTP app. The
// returned func closes the database connection.
func buildApp(cfg *config.Config, log *logger.Logger) (*fiber.App, func() error, error) {
	db, err := database.Open(cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		sqlDB.Close()
		return nil, nil, err
	}

	app := server.New(server.Deps{
		AppName:    cfg.App.Name,
		DB:         db,
		Tokens:     token.NewManager(cfg.JWT.Secret, cfg.JWT.TTL),
		BcryptCost: cfg.Auth.BcryptCost,
		Log:        log,
		Metrics:    metrics.New("agrofeira"),
		RequestLog: true,
	})
	return app, sqlDB.Close, nil
}
