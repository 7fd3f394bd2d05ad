package cmd

import (
	"context"
	"fmt"
	"log"

	"sheet-sync/core/config"
	"sheet-sync/core/database"
	"sheet-sync/core/kvcache"
	"sheet-sync/core/logger"
	"sheet-sync/core/storage"
	"sheet-sync/feature/migration"
	"sheet-sync/feature/migration/platform"
	"sheet-sync/feature/sheet/store"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// bootstrap loads configuration and builds the logger. Configuration
// problems are fatal: the run aborts before touching any row.
func bootstrap() (*config.Config, *zap.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	return cfg, logg
}

// buildFeature wires the sheet store, the snapshot cache, and the
// platform client into the migration feature.
func buildFeature(cfg *config.Config, logg *zap.Logger) (*migration.Feature, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sheetStore := store.NewGormStore(db, cfg.Sheet.Key)
	if err := sheetStore.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate sheet store: %w", err)
	}
	if columns, err := database.GetTableColumns(db, store.Cell{}.TableName()); err != nil {
		logg.Warn("Could not inspect sheet store table", zap.Error(err))
	} else {
		logg.Debug("Sheet store table ready", zap.Int("columns", len(columns)))
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	if err := ensureBucket(client, cfg.Storage); err != nil {
		return nil, err
	}
	cache := kvcache.NewObjectCache(client, cfg.Storage.Bucket, "kv")

	platClient := platform.NewHTTPClient(cfg.Platform)

	return migration.NewFeature(sheetStore, cache, platClient,
		&cfg.Sheet, &cfg.Platform, logg), nil
}

// ensureBucket creates the snapshot bucket on first run.
func ensureBucket(client storage.Client, cfg storage.Config) error {
	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if exists {
		return nil
	}
	if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
	}
	return nil
}
