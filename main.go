package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"storefront/internal/app"
	"storefront/internal/config"
	"storefront/internal/services"
	"storefront/pkg/database"
	"storefront/pkg/logger"
	"storefront/pkg/rabbitmq"
	"storefront/pkg/redis"
)

const (
	startupTimeout  = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{ServiceName: "storefront"}).Error(context.Background(), "config.load_failed", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		ServiceName: cfg.App.ServiceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
	})
	ctx := context.Background()

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Error(ctx, "database.open_failed", err)
		os.Exit(1)
	}
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db, app.Models()...); err != nil {
			log.Error(ctx, "database.migrate_failed", err)
			os.Exit(1)
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	deps := app.Dependencies{Config: cfg, DB: db, Logger: log, Registry: registry}

	// Order events are optional; without a broker orders are still accepted.
	consumerCtx, stopConsumer := context.WithCancel(ctx)
	defer stopConsumer()
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQ.URL != "" {
		mqClient, err = rabbitmq.NewClient(cfg.RabbitMQ.URL, log)
		if err != nil {
			log.Warn(ctx, "rabbitmq.unavailable", err)
		} else {
			deps.Publisher = mqClient
			go func() {
				if err := mqClient.ConsumeOrderEvents(consumerCtx, services.LogOrderEvents(log)); err != nil {
					log.Error(consumerCtx, "rabbitmq.consumer_stopped", err)
				}
			}()
		}
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		pingCtx, cancel := context.WithTimeout(ctx, startupTimeout)
		redisClient, err = redis.New(pingCtx, cfg.Redis.URL)
		cancel()
		if err != nil {
			log.Warn(ctx, "redis.unavailable", err)
		} else {
			deps.Limiter = redisClient
		}
	}

	server := app.NewApp(deps)

	go func() {
		log.Info(log.WithField(ctx, "port", cfg.App.Port), "server.starting")
		if err := server.Listen(cfg.App.Port); err != nil {
			log.Error(ctx, "server.listen_failed", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info(ctx, "server.shutting_down")

	stopConsumer()
	shutdownErr := server.ShutdownWithTimeout(shutdownTimeout)
	if mqClient != nil {
		shutdownErr = multierr.Append(shutdownErr, mqClient.Close())
	}
	if redisClient != nil {
		shutdownErr = multierr.Append(shutdownErr, redisClient.Close())
	}
	shutdownErr = multierr.Append(shutdownErr, database.Close(db))

	if shutdownErr != nil {
		log.Error(ctx, "server.shutdown_failed", shutdownErr)
		os.Exit(1)
	}
	log.Info(ctx, "server.stopped")
}
