package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/cadencefin/cadence/internal/config"
	"github.com/cadencefin/cadence/internal/service"
	"github.com/cadencefin/cadence/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := config.DatabasePath(viper.GetString("database.path"))

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}
