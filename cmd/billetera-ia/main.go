package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"billetera-ia/internal/api"
	"billetera-ia/internal/api/handlers"
	"billetera-ia/internal/events"
	"billetera-ia/internal/llm"
	"billetera-ia/internal/repository"
	"billetera-ia/internal/service"
	"billetera-ia/pkg/auth"
	"billetera-ia/pkg/config"
	"billetera-ia/pkg/logger"
	"billetera-ia/pkg/postgres"

	"go.uber.org/zap"
)

// @title Billetera IA API
// @version 1.0
// @description Personal finance backend with AI suggested movements and tags

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting billetera-ia service")

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.Migrate {
		if err := postgres.Migrate(ctx, db, appLogger); err != nil {
			appLogger.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	userRepo := repository.NewUserRepository(db, appLogger)
	tagRepo := repository.NewTagRepository(db, appLogger)
	movementRepo := repository.NewMovementRepository(db, appLogger)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	providers, closers, err := llm.BuildProviders(ctx, cfg, logger.Named("llm"))
	if err != nil {
		appLogger.Fatal("Failed to initialize LLM providers", zap.Error(err))
	}
	defer func() {
		for _, c := range closers {
			if err := c.Close(); err != nil {
				appLogger.Warn("Failed to close LLM provider", zap.Error(err))
			}
		}
	}()

	completer := llm.NewFallbackClient(providers, cfg.LLM.Timeout, logger.Named("fallback"))
	appLogger.Info("LLM candidates", zap.Strings("models", completer.Models()))

	var publisher events.Publisher = events.Nop{}
	if cfg.NATS.URL != "" {
		natsPublisher, err := events.NewNATSPublisher(cfg.NATS.URL, cfg.NATS.Token, cfg.NATS.SubjectPrefix, logger.Named("events"))
		if err != nil {
			appLogger.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		publisher = natsPublisher
	}
	defer publisher.Close()

	authService := service.NewAuthService(userRepo, jwtManager, appLogger)
	tagService := service.NewTagService(tagRepo, publisher, appLogger)
	movementService := service.NewMovementService(movementRepo, tagRepo, publisher, appLogger)
	suggestionService := service.NewSuggestionService(tagRepo, completer, publisher, logger.Named("suggestions"))

	app := api.SetupRouter(api.Handlers{
		Auth:       handlers.NewAuthHandler(authService, appLogger),
		Movement:   handlers.NewMovementHandler(movementService, appLogger),
		Tag:        handlers.NewTagHandler(tagService, appLogger),
		Suggestion: handlers.NewSuggestionHandler(suggestionService, appLogger),
	}, jwtManager, cfg, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
