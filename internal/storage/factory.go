package storage

import (
	"context"
	"fmt"
)

// Open returns the SQL source named by kind ("sqlite" or "postgres").
// For sqlite dsn is a file path.
func Open(ctx context.Context, kind, dsn string) (Source, error) {
	switch kind {
	case "sqlite":
		src, err := NewSQLiteSource(dsn)
		if err != nil {
			return nil, err
		}
		return src, nil
	case "postgres":
		src, err := NewPostgresSource(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return nil, fmt.Errorf("unsupported SQL source %q", kind)
	}
}
