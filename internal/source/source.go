// Package source resolves the configured data source into a loaded dataset.
package source

import (
	"context"
	"fmt"

	"hoteldash/internal/config"
	"hoteldash/internal/engine"
	"hoteldash/internal/storage"
)

// Load reads the whole dataset from the file or database named by cfg.
func Load(ctx context.Context, cfg *config.Config) (*engine.Dataset, error) {
	switch cfg.DataSource {
	case engine.FormatCSV, engine.FormatJSON:
		return engine.Load(cfg.DataSource, cfg.DataPath)
	case "sqlite", "postgres":
		src, err := storage.Open(ctx, cfg.DataSource, DSN(cfg))
		if err != nil {
			return nil, err
		}
		defer src.Close()

		records, err := src.Bookings(ctx)
		if err != nil {
			return nil, err
		}
		return engine.NewDataset(cfg.DataSource, records), nil
	default:
		return nil, fmt.Errorf("%w: %q", engine.ErrUnknownFormat, cfg.DataSource)
	}
}

// DSN is the connection string for the SQL sources.
func DSN(cfg *config.Config) string {
	if cfg.DataSource == "postgres" {
		return cfg.PostgresDSN
	}
	return cfg.SQLiteDBPath
}
