package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"jobsweep/internal/api"
	"jobsweep/internal/config"
	"jobsweep/internal/database"
	"jobsweep/internal/store"
	"jobsweep/internal/telemetry"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return zap.NewProduction()
}

func newDatabase(cfg *config.Config, logger *zap.Logger) (*database.Database, error) {
	return database.New(context.Background(), database.OptionsFromConfig(cfg), logger)
}

func newHandler(repo *store.JobsRepository, logger *zap.Logger) *api.Handler {
	return api.NewHandler(repo, logger)
}

func newServer(cfg *config.Config, handler *api.Handler, logger *zap.Logger) *api.Server {
	return api.NewServer(cfg.HTTPAddr, handler, logger)
}

func main() {
	_ = godotenv.Load()

	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			newLogger,
			newDatabase,
			store.NewJobsRepository,
			newHandler,
			newServer,
		),
		fx.Invoke(
			func(cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) {
				if cfg.TracingEndpoint == "" {
					return
				}
				shutdown, err := telemetry.InitTracer(context.Background(), "jobsweep-api", cfg.TracingEndpoint)
				if err != nil {
					logger.Warn("tracing disabled", zap.Error(err))
					return
				}
				lc.Append(fx.Hook{
					OnStop: func(ctx context.Context) error {
						shutdown()
						return nil
					},
				})
			},
			func(server *api.Server, logger *zap.Logger, lc fx.Lifecycle) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						go func() {
							if err := server.Start(); err != nil {
								logger.Error("http server stopped", zap.Error(err))
							}
						}()
						return nil
					},
					OnStop: func(ctx context.Context) error {
						return server.Shutdown(ctx)
					},
				})
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
