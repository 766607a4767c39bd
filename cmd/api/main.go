package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/creditsim-api/internal/config"
	"github.com/noah-isme/creditsim-api/internal/database"
	"github.com/noah-isme/creditsim-api/internal/handler"
	"github.com/noah-isme/creditsim-api/internal/middleware"
	"github.com/noah-isme/creditsim-api/internal/repository"
	"github.com/noah-isme/creditsim-api/internal/router"
	"github.com/noah-isme/creditsim-api/internal/scoring"
	"github.com/noah-isme/creditsim-api/internal/service"
	"github.com/noah-isme/creditsim-api/web"
)

func main() {
	startedAt := time.Now().UTC()
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && level != zerolog.NoLevel {
		logger = logger.Level(level)
	}

	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(context.Background(), cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, simulation cache disabled")
		} else {
			defer redisClient.Close()
		}
	}

	var publisher service.SimulationPublisher
	if cfg.NATSURL != "" {
		conn, err := database.ConnectNATS(cfg.NATSURL, cfg.AppName)
		if err != nil {
			logger.Warn().Err(err).Msg("nats unavailable, simulation events will only be logged")
		} else {
			defer conn.Drain()
			publisher = service.NewNATSSimulationPublisher(conn, cfg.NATSSubject)
		}
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	applicants, err := scoring.NewValidator(validate)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to register validation rules")
	}
	engine := scoring.NewEngine(applicants)

	simulationRepo := repository.NewSimulationRepository(db)
	simulationService := service.NewSimulationService(simulationRepo, applicants, engine, validate, redisClient, cfg.CacheTTL, publisher, logger)
	simulationHandler := handler.NewSimulationHandler(simulationService, logger)

	ui, err := web.FileSystem()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load web client")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{
		Logger:       &logger,
		AccessLog:    cfg.AppEnv == "development",
		AllowOrigins: cfg.AllowOrigins,
	})
	router.Register(app, cfg, router.Dependencies{
		SimulationHandler: simulationHandler,
		RateLimit:         middleware.RateLimit(middleware.SimulationPolicy(cfg.RateLimitMax, cfg.RateLimitWindow)),
		UI:                ui,
		StartedAt:         startedAt,
	})

	go func() {
		logger.Info().Str("address", cfg.HTTPAddress()).Str("database", cfg.DatabaseDriver).Msg("starting credit risk simulator")
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	waitForShutdown(app, logger)

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func waitForShutdown(app *fiber.App, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
