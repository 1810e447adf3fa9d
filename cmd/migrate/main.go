package main

import (
	"context"
	"log"

	"github.com/ClickHouse/clickhouse-go/v2"
	"go.uber.org/zap"

	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/config"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/storage/schema"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/storage/schema/migrations"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{cfg.ClickHouseDSN},
		Auth: clickhouse.Auth{
			Database: cfg.ClickHouseDatabase,
			Username: cfg.ClickHouseUsername,
			Password: cfg.ClickHousePassword,
		},
	})
	if err != nil {
		logger.Fatal("Failed to connect to ClickHouse", zap.Error(err))
	}
	defer conn.Close()

	migrator := schema.NewMigrator(conn, logger)
	if err := migrator.Apply(context.Background(), migrations.All); err != nil {
		logger.Fatal("Migration run failed", zap.Error(err))
	}

	logger.Info("All migrations completed successfully")
}
