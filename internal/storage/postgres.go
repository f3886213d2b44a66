package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
)

type PostgresSource struct {
	sqlSource
}

// NewPostgresSource connects, sizes the pool and makes sure the table exists.
func NewPostgresSource(ctx context.Context, dsn string) (*PostgresSource, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	src := &PostgresSource{sqlSource{
		db:   db,
		name: "postgres",
		insertStmt: `INSERT INTO bookings
			(hotel, arrival_year, arrival_month, arrival_day, adults, children, babies, country)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
	}}
	if err := src.CreateTable(ctx); err != nil {
		db.Close()
		return nil, err
	}

	slog.InfoContext(ctx, "Connected to PostgreSQL")
	return src, nil
}

// CreateTable creates the bookings table and its index if missing.
func (s *PostgresSource) CreateTable(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS bookings (
		id            BIGSERIAL PRIMARY KEY,
		hotel         TEXT    NOT NULL DEFAULT '',
		arrival_year  INTEGER NOT NULL,
		arrival_month TEXT    NOT NULL,
		arrival_day   INTEGER NOT NULL,
		adults        INTEGER NOT NULL DEFAULT 0,
		children      INTEGER NOT NULL DEFAULT 0,
		babies        INTEGER NOT NULL DEFAULT 0,
		country       TEXT    NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_bookings_arrival ON bookings (arrival_year, arrival_month, arrival_day);
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}
