package storage

import (
	"context"

	"hoteldash/internal/models"
)

// Source is a SQL-backed booking dataset.
type Source interface {
	// Bookings returns every stored booking in insertion order.
	Bookings(ctx context.Context) ([]models.Booking, error)
	// Import appends bookings in one transaction and returns how many were written.
	Import(ctx context.Context, bookings []models.Booking) (int, error)
	Close() error
}
