package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"hoteldash/internal/models"
)

const selectBookings = `
	SELECT hotel, arrival_year, arrival_month, arrival_day, adults, children, babies, country
	FROM bookings
	ORDER BY id`

// sqlSource holds what SQLite and Postgres share; only the insert
// statement differs in placeholder syntax.
type sqlSource struct {
	db         *sql.DB
	name       string
	insertStmt string
}

func (s *sqlSource) Bookings(ctx context.Context) ([]models.Booking, error) {
	rows, err := s.db.QueryContext(ctx, selectBookings)
	if err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]models.Booking, 0)
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.Hotel, &b.ArrivalYear, &b.ArrivalMonth, &b.ArrivalDay,
			&b.Adults, &b.Children, &b.Babies, &b.Country); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}

	slog.DebugContext(ctx, "Bookings read", "source", s.name, "rows", len(bookings))
	return bookings, nil
}

func (s *sqlSource) Import(ctx context.Context, bookings []models.Booking) (n int, err error) {
	if len(bookings) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, s.insertStmt)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range bookings {
		if _, err = stmt.ExecContext(ctx, b.Hotel, b.ArrivalYear, b.ArrivalMonth, b.ArrivalDay,
			b.Adults, b.Children, b.Babies, b.Country); err != nil {
			return 0, fmt.Errorf("insert booking %d: %w", n, err)
		}
		n++
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}

	slog.InfoContext(ctx, "Bookings imported", "source", s.name, "rows", n)
	return n, nil
}

func (s *sqlSource) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
