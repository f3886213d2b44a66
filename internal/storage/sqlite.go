package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

type SQLiteSource struct {
	sqlSource
}

// NewSQLiteSource opens (creating if needed) the database file and migrates it.
func NewSQLiteSource(dbPath string) (*SQLiteSource, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteSource{sqlSource{
		db:   db,
		name: "sqlite",
		insertStmt: `INSERT INTO bookings
			(hotel, arrival_year, arrival_month, arrival_day, adults, children, babies, country)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	}}, nil
}
