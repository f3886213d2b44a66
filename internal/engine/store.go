package engine

import (
	"hoteldash/internal/models"
	"time"
)

// Dataset holds the loaded bookings in file order plus load bookkeeping.
type Dataset struct {
	Records []models.Booking

	// Dictionaries of distinct values, in first-seen order.
	// Records share these strings instead of allocating one per row.
	CountryDict []string
	HotelDict   []string

	// Rows dropped by the loader (short rows, non-numeric year/day).
	Rejected int

	Source   string
	LoadTime time.Duration
}

// NewDataset wraps already-decoded records and builds the dictionaries.
func NewDataset(source string, records []models.Booking) *Dataset {
	ds := &Dataset{Records: records, Source: source}
	countries := make(map[string]struct{})
	hotels := make(map[string]struct{})
	for _, b := range records {
		if _, ok := countries[b.Country]; !ok {
			countries[b.Country] = struct{}{}
			ds.CountryDict = append(ds.CountryDict, b.Country)
		}
		if _, ok := hotels[b.Hotel]; !ok {
			hotels[b.Hotel] = struct{}{}
			ds.HotelDict = append(ds.HotelDict, b.Hotel)
		}
	}
	return ds
}

// Len is the number of usable records.
func (ds *Dataset) Len() int {
	return len(ds.Records)
}
