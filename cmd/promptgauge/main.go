package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/promptgauge/promptgauge/pkg/app/risk"
	"github.com/promptgauge/promptgauge/pkg/config"
	handlers "github.com/promptgauge/promptgauge/pkg/handlers/http"
	"github.com/promptgauge/promptgauge/pkg/infra/cache"
	"github.com/promptgauge/promptgauge/pkg/infra/classifier"
	"github.com/promptgauge/promptgauge/pkg/infra/database"
	"github.com/promptgauge/promptgauge/pkg/infra/httpx"
	infraLogger "github.com/promptgauge/promptgauge/pkg/infra/logger"
	"github.com/promptgauge/promptgauge/pkg/infra/repository"
	"github.com/promptgauge/promptgauge/pkg/server"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger := infraLogger.NewLogger()

	if err := config.Load("./config"); err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	db, err := database.NewDB(logger, &database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close()

	cacheClient, err := cache.NewClient(cache.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, logger)
	if err != nil {
		logger.Fatalf("failed to initialize cache: %v", err)
	}

	// repository
	eventRepository := repository.NewModerationEventRepository(db.DB)

	// risk engine
	assessor := risk.NewAssessor(eventRepository, risk.Config{
		SimilarityThreshold: cfg.Risk.SimilarityThreshold,
		ModerationSurcharge: cfg.Risk.ModerationSurcharge,
	}, logger)

	var blender risk.Blender
	if cfg.Classifier.Enabled {
		client := httpx.NewBreakerClient(
			"grok-classifier",
			httpx.NewClient(cfg.Classifier.Timeout),
			time.Minute,
			cfg.Classifier.BreakerFailures,
		)
		grok := classifier.NewGrokClassifier(classifier.Config{
			BaseURL:  cfg.Classifier.BaseURL,
			APIKey:   cfg.Classifier.APIKey,
			Model:    cfg.Classifier.Model,
			CacheTTL: cfg.Classifier.CacheTTL,
		}, client, cacheClient, logger)
		blender = risk.NewBlender(assessor, grok, logger)
	}

	// handlers
	handlerTransport := handlers.HandlerTransport{
		CreateEventHandler:  handlers.NewCreateEventHandler(logger, eventRepository, cfg.History.MaxEvents),
		ListEventsHandler:   handlers.NewListEventsHandler(logger, eventRepository),
		DeleteEventsHandler: handlers.NewDeleteEventsHandler(logger, eventRepository),
		AssessRiskHandler:   handlers.NewAssessRiskHandler(logger, assessor, blender),
		GetVersionHandler:   handlers.NewGetVersionHandler(logger),
	}

	apiServer := server.NewApiServer(server.ApiServerDI{
		HandlerTransport: handlerTransport,
		Config:           cfg,
		Logger:           logger,
	})

	go func() {
		if err := apiServer.Run(); err != nil {
			logger.WithError(err).Fatal("api server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	if err := apiServer.Shutdown(); err != nil {
		logger.WithError(err).Error("failed to shut down api server")
	}
}
