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

	"go.uber.org/zap"

	"github.com/Harishez/data-voyage-visualizer/docs"
	"github.com/Harishez/data-voyage-visualizer/internal/config"
	"github.com/Harishez/data-voyage-visualizer/internal/handler"
	"github.com/Harishez/data-voyage-visualizer/internal/logger"
	"github.com/Harishez/data-voyage-visualizer/internal/pipeline"
	"github.com/Harishez/data-voyage-visualizer/internal/queue/sqs"
	"github.com/Harishez/data-voyage-visualizer/internal/repository/clickhouse"
	"github.com/Harishez/data-voyage-visualizer/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title Data Voyage Explorer API
// @version 1.0
// @description API for ingesting raw events and exploring them with filters, groups and aggregates
// @host localhost:8080
// @BasePath /
// @schemes http https
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log, err := logger.New(cfg.Service.Environment, cfg.Service.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func(log *zap.Logger) {
		_ = log.Sync()
	}(log)

	log.Info("Starting API service",
		zap.String("environment", cfg.Service.Environment),
		zap.String("port", cfg.Service.APIPort),
		zap.String("explorer_source", cfg.Explorer.Source))

	docs.SwaggerInfo.Host = cfg.Service.Host

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sqsClient, err := sqs.NewClient(ctx, cfg.SQS, log)
	if err != nil {
		log.Fatal("Failed to create SQS client", zap.Error(err))
	}

	var source service.BatchSource
	switch cfg.Explorer.Source {
	case config.SourceSample:
		source = service.NewSampleSource(cfg.Explorer.SampleSize, cfg.Explorer.SampleSeed)
		log.Info("Explorer reading generated sample",
			zap.Int("size", cfg.Explorer.SampleSize),
			zap.Int64("seed", cfg.Explorer.SampleSeed))
	default:
		clickhouseClient, err := clickhouse.NewClient(ctx, &cfg.ClickHouse, log)
		if err != nil {
			log.Fatal("Failed to create ClickHouse client", zap.Error(err))
		}
		defer func(clickhouseClient *clickhouse.Client) {
			if err := clickhouseClient.Close(); err != nil {
				log.Error("Failed to close ClickHouse client", zap.Error(err))
			}
		}(clickhouseClient)
		source = clickhouse.NewRepository(clickhouseClient, log)
	}

	eventService := service.NewEventService(sqsClient, log)
	decoder := pipeline.NewDecoder(pipeline.NewJSONPropertyParser(), log)
	explorerService := service.NewExplorerService(source, decoder, cfg.Explorer, log)

	h := handler.NewHandler(eventService, explorerService, log)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Service.APIPort),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("API server starting", zap.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start API server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down API server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shut down API server", zap.Error(err))
	}
}
