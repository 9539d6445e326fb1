package main

import (
	"context"
	"log"

	"jobsweep/internal/config"
	"jobsweep/internal/database"
	"jobsweep/internal/database/schema"
	"jobsweep/internal/database/schema/migrations"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx := context.Background()

	db, err := database.New(ctx, database.OptionsFromConfig(cfg), logger)
	if err != nil {
		logger.Fatal("Failed to connect to ClickHouse", zap.Error(err))
	}
	defer db.Close()

	migrator := schema.NewMigrator(db.Conn(), logger)
	if err := migrator.ApplyPending(ctx, migrations.All); err != nil {
		logger.Fatal("Migration failed", zap.Error(err))
	}

	logger.Info("All migrations completed successfully")
}
