package storage

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"hoteldash/internal/models"
)

func sampleBookings() []models.Booking {
	return []models.Booking{
		{Hotel: "Resort Hotel", ArrivalYear: 2015, ArrivalMonth: "July", ArrivalDay: 10, Adults: 2, Children: 1, Country: "USA"},
		{Hotel: "City Hotel", ArrivalYear: 2015, ArrivalMonth: "July", ArrivalDay: 10, Adults: 1, Country: "UK"},
		{Hotel: "City Hotel", ArrivalYear: 2016, ArrivalMonth: "March", ArrivalDay: 2, Adults: 2, Babies: 1, Country: "PRT"},
	}
}

func TestSQLiteSourceRoundTrip(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "nested", "bookings.db")

	src, err := NewSQLiteSource(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteSource: %v", err)
	}
	defer src.Close()

	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("Expected database file: %v", err)
	}

	empty, err := src.Bookings(ctx)
	if err != nil {
		t.Fatalf("Bookings on empty db: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Expected no bookings, got %d", len(empty))
	}

	n, err := src.Import(ctx, sampleBookings())
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n != 3 {
		t.Errorf("Expected 3 imported, got %d", n)
	}

	got, err := src.Bookings(ctx)
	if err != nil {
		t.Fatalf("Bookings: %v", err)
	}
	if !reflect.DeepEqual(got, sampleBookings()) {
		t.Errorf("Expected insertion order preserved:\n got %+v\nwant %+v", got, sampleBookings())
	}
}

func TestSQLiteSourceReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "bookings.db")

	src, err := Open(ctx, "sqlite", dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := src.Import(ctx, sampleBookings()); err != nil {
		t.Fatalf("Import: %v", err)
	}
	src.Close()

	// Migrations must be a no-op the second time
	src, err = Open(ctx, "sqlite", dbPath)
	if err != nil {
		t.Fatalf("Reopen: %v", err)
	}
	defer src.Close()

	got, err := src.Bookings(ctx)
	if err != nil {
		t.Fatalf("Bookings: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Expected 3 bookings after reopen, got %d", len(got))
	}
}

func TestImportNothing(t *testing.T) {
	src, err := NewSQLiteSource(filepath.Join(t.TempDir(), "bookings.db"))
	if err != nil {
		t.Fatalf("NewSQLiteSource: %v", err)
	}
	defer src.Close()

	n, err := src.Import(context.Background(), nil)
	if err != nil || n != 0 {
		t.Errorf("Expected 0, nil; got %d, %v", n, err)
	}
}

func TestOpenUnknownKind(t *testing.T) {
	if _, err := Open(context.Background(), "mongo", "x"); err == nil {
		t.Error("Expected error for unknown kind")
	}
}

func TestPostgresSource(t *testing.T) {
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}
	ctx := context.Background()

	src, err := NewPostgresSource(ctx, dsn)
	if err != nil {
		t.Fatalf("NewPostgresSource: %v", err)
	}
	defer src.Close()

	before, err := src.Bookings(ctx)
	if err != nil {
		t.Fatalf("Bookings: %v", err)
	}
	if _, err := src.Import(ctx, sampleBookings()); err != nil {
		t.Fatalf("Import: %v", err)
	}
	after, err := src.Bookings(ctx)
	if err != nil {
		t.Fatalf("Bookings: %v", err)
	}
	if len(after) != len(before)+3 {
		t.Errorf("Expected %d bookings, got %d", len(before)+3, len(after))
	}
}
