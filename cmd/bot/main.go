package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kyudan/motemovil/internal/pkg/config"
	"github.com/kyudan/motemovil/internal/pkg/database"
	"github.com/kyudan/motemovil/internal/pkg/health"
	"github.com/kyudan/motemovil/internal/pkg/logger"
	"github.com/kyudan/motemovil/internal/pkg/server"
	"github.com/kyudan/motemovil/services/bot"
	"github.com/kyudan/motemovil/services/bot/gateway"
	"github.com/kyudan/motemovil/services/bot/handler"
	"github.com/kyudan/motemovil/services/bot/repository"
	"github.com/kyudan/motemovil/services/bot/usecase"
)

func main() {
	appName := "motemovil-bot"
	configPath := config.GetEnv("CONFIG_PATH", "config/bot.env")
	configs := config.InitConfig(configPath)

	zapLogger, err := logger.NewZapLogger(configs.Logger)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
		logger.Bool("debug", configs.App.Debug),
	)

	if configs.Telegram.Token == "" {
		zapLogger.Fatal("BOT_TOKEN is required")
	}

	shutdowns := server.NewShutdownManager(zapLogger)

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	shutdowns.Register(func(context.Context) error { return postgresClient.Close() })

	// Session store: Redis when configured, in-process memory otherwise
	var sessions bot.SessionStore
	if configs.Redis.Host != "" {
		redisClient, err := database.NewRedisClient(configs.Redis)
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
		}
		shutdowns.Register(func(context.Context) error { return redisClient.Close() })
		sessions = repository.NewRedisSessionStore(redisClient, 0)
		zapLogger.Info("Using Redis session store")
	} else {
		sessions = repository.NewMemorySessionStore()
		zapLogger.Info("Using in-memory session store")
	}

	// Initialize repositories
	tripRepo := repository.NewTripRepo(postgresClient.GetDB())
	profileRepo := repository.NewProfileRepo(postgresClient.GetDB())

	// Initialize gateways
	telegramGW := gateway.NewTelegramGateway(configs.Telegram, zapLogger)
	mistralGW := gateway.NewMistralGateway(configs.Extraction, zapLogger)
	if len(configs.Extraction.APIKeys) == 0 {
		zapLogger.Warn("No extraction credentials configured, running in manual mode")
	}

	var eventsGW bot.EventsGateway
	if configs.NSQ.Enabled {
		nsqGW, err := gateway.NewNSQGateway(configs.NSQ.Address, zapLogger)
		if err != nil {
			zapLogger.Fatal("Failed to connect to NSQ", logger.Err(err))
		}
		shutdowns.Register(func(context.Context) error {
			nsqGW.Stop()
			return nil
		})
		eventsGW = nsqGW
	} else {
		eventsGW = gateway.NewNoopEventsGateway()
	}

	// Initialize usecase and dispatcher
	botUC := usecase.NewBotUC(tripRepo, profileRepo, sessions, telegramGW, mistralGW, eventsGW, configs, zapLogger)
	dispatcher := handler.NewTelegramHandler(telegramGW, botUC, zapLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Stale updates accumulated while the bot was down are dropped so a
	// restart does not replay half of an old conversation.
	if err := telegramGW.DropPendingUpdates(ctx); err != nil {
		zapLogger.Warn("Failed to drop pending updates", logger.Err(err))
	}

	// Liveness endpoint, served independently of the polling loop
	e := echo.New()
	e.HideBanner = true
	health.RegisterHealthEndpoints(e, appName)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port)
	srv.Start()
	zapLogger.Info("Health server started", logger.Int("port", configs.Server.Port))

	runErr := make(chan error, 1)
	go func() {
		runErr <- dispatcher.Run(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-quit:
		zapLogger.Info("Shutdown signal received", logger.String("signal", sig.String()))
	case err := <-runErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			zapLogger.Error("Dispatcher stopped unexpectedly", logger.Err(err))
		}
	}

	cancel()

	shutdownTimeout := time.Duration(configs.Server.ShutdownTimeout) * time.Second
	if err := srv.Shutdown(shutdownTimeout); err != nil {
		zapLogger.Error("Health server shutdown failed", logger.Err(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := shutdowns.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Component shutdown failed", logger.Err(err))
	}

	zapLogger.Info("Shutdown complete")
}
