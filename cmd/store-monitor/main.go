package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prabhmeharbedi/prabhmehar-loopai/internal/config"
	"github.com/prabhmeharbedi/prabhmehar-loopai/internal/database"
	"github.com/prabhmeharbedi/prabhmehar-loopai/internal/httpapi"
	"github.com/prabhmeharbedi/prabhmehar-loopai/internal/jobs"
	"github.com/prabhmeharbedi/prabhmehar-loopai/internal/logger"
	"github.com/prabhmeharbedi/prabhmehar-loopai/internal/notify"
	"github.com/prabhmeharbedi/prabhmehar-loopai/internal/report"
	"github.com/prabhmeharbedi/prabhmehar-loopai/internal/repository"
	"github.com/prabhmeharbedi/prabhmehar-loopai/internal/uptime"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "store-monitor")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting store-monitor service")

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()

	observations := repository.NewPostgresObservationRepository(db)
	businessHours := repository.NewPostgresBusinessHoursRepository(db)
	timezones := repository.NewPostgresTimezoneRepository(db)
	jobRepo := repository.NewPostgresReportJobRepository(db)

	calculator := uptime.NewCalculator(
		observations,
		uptime.NewScheduleResolver(businessHours),
		uptime.NewTimezoneResolver(timezones, cfg.Report.DefaultTimezone),
		log,
	)
	generator := report.NewGenerator(observations, calculator, cfg.Report.Workers, log)
	artifacts := report.NewFileArtifactStore(cfg.Report.Dir)

	var notifier notify.Notifier
	if cfg.Report.WebhookURL != "" {
		notifier = notify.NewWebhookNotifier(cfg.Report.WebhookURL, log)
	}

	controller := jobs.NewController(
		jobRepo,
		generator,
		artifacts,
		jobs.NewRedisKVStore(redisClient),
		notifier,
		log,
	)

	router := httpapi.NewRouter(log)
	router.RegisterReportRoutes(httpapi.NewReportHandler(controller, artifacts, log))

	srv := httpapi.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("HTTP server error", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping HTTP server", zap.Error(err))
	}

	log.Info("Service stopped")
}
