package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"jobsweep/internal/cache"
	redisCache "jobsweep/internal/cache/redis"
	"jobsweep/internal/config"
	"jobsweep/internal/database"
	"jobsweep/internal/events"
	"jobsweep/internal/processor"
	"jobsweep/internal/store"
	"jobsweep/internal/telemetry"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return zap.NewProduction()
}

func newNATSConnection(cfg *config.Config) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Timeout(cfg.NATSConnTimeout),
		nats.Name("processing-service"),
		nats.RetryOnFailedConnect(true),
	}
	return nats.Connect(cfg.NATSURL, opts...)
}

func newDatabase(cfg *config.Config, logger *zap.Logger) (*database.Database, error) {
	return database.New(context.Background(), database.OptionsFromConfig(cfg), logger)
}

func newCache(cfg *config.Config) cache.Cache {
	return redisCache.New(cache.Options{
		DefaultTTL:    cfg.CacheTTL,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	})
}

func newTracer() trace.Tracer {
	return telemetry.GetTracer("jobsweep/processing")
}

func main() {
	_ = godotenv.Load()

	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			newLogger,
			newNATSConnection,
			newDatabase,
			newCache,
			store.NewJobsRepository,
			processor.NewRecordProcessor,
			events.NewHandler,
			newTracer,
		),
		fx.Invoke(
			func(handler *events.Handler, lc fx.Lifecycle) error {
				return handler.RegisterSubscriptions(lc)
			},
		),
	)

	startCtx := context.Background()
	if err := app.Start(startCtx); err != nil {
		log.Fatal(err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	stopCtx := context.Background()
	if err := app.Stop(stopCtx); err != nil {
		log.Fatal(err)
	}
}
