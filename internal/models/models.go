package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownMonth is returned when a booking's month is not a full English month name.
var ErrUnknownMonth = errors.New("unknown month name")

// MonthNames is the ordered list arrival months are resolved against.
var MonthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthIndex returns the zero-based position of name in MonthNames, or -1.
func MonthIndex(name string) int {
	for i, m := range MonthNames {
		if m == name {
			return i
		}
	}
	return -1
}

// Booking is one hotel reservation as shipped in the dataset.
type Booking struct {
	Hotel        string `json:"hotel"`
	ArrivalYear  int    `json:"arrival_date_year"`
	ArrivalMonth string `json:"arrival_date_month"`
	ArrivalDay   int    `json:"arrival_date_day_of_month"`
	Adults       int    `json:"adults"`
	Children     int    `json:"children"`
	Babies       int    `json:"babies"`
	Country      string `json:"country"`
}

// Visitors is adults + children + babies.
func (b Booking) Visitors() int {
	return b.Adults + b.Children + b.Babies
}

// DateKey groups bookings sharing the same arrival fields, e.g. "2015-July-10".
func (b Booking) DateKey() string {
	return fmt.Sprintf("%d-%s-%d", b.ArrivalYear, b.ArrivalMonth, b.ArrivalDay)
}

// ArrivalDate builds the effective arrival date at midnight in loc.
// Days past the end of the month roll over into the next one.
func (b Booking) ArrivalDate(loc *time.Location) (time.Time, error) {
	idx := MonthIndex(b.ArrivalMonth)
	if idx < 0 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownMonth, b.ArrivalMonth)
	}
	return time.Date(b.ArrivalYear, time.Month(idx+1), b.ArrivalDay, 0, 0, 0, 0, loc), nil
}

// DateRange is the user's selection. A nil bound means "not picked yet".
type DateRange struct {
	From *time.Time `json:"from"`
	To   *time.Time `json:"to"`
}

// NewDateRange returns a fully specified range.
func NewDateRange(from, to time.Time) DateRange {
	return DateRange{From: &from, To: &to}
}

// Complete reports whether both bounds are set.
func (r DateRange) Complete() bool {
	return r.From != nil && r.To != nil
}

// Contains reports whether t lies within [From, To]. Incomplete ranges contain nothing.
func (r DateRange) Contains(t time.Time) bool {
	if !r.Complete() {
		return false
	}
	return !t.Before(*r.From) && !t.After(*r.To)
}

// Key is a stable cache key for the range.
func (r DateRange) Key() string {
	bound := func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.Format(time.RFC3339Nano)
	}
	return bound(r.From) + "|" + bound(r.To)
}

// DashboardData bundles the four view-models computed from one range.
type DashboardData struct {
	TimeSeries     []TimeSeriesPoint `json:"time_series"`
	CountryRanking []CountryVisitors `json:"country_ranking"`
	AdultStats     VisitorStats      `json:"adult_stats"`
	ChildrenStats  VisitorStats      `json:"children_stats"`

	// Skipped counts bookings excluded because their month did not resolve.
	Skipped int `json:"skipped"`
}

// EmptyDashboard is the zero form returned for incomplete ranges.
func EmptyDashboard() *DashboardData {
	return &DashboardData{
		TimeSeries:     []TimeSeriesPoint{},
		CountryRanking: []CountryVisitors{},
		AdultStats:     VisitorStats{Trend: []TrendPoint{}},
		ChildrenStats:  VisitorStats{Trend: []TrendPoint{}},
	}
}

type TimeSeriesPoint struct {
	Date     string `json:"date"`
	Visitors int    `json:"visitors"`
}

type CountryVisitors struct {
	Country  string `json:"country"`
	Visitors int    `json:"visitors"`
}

type TrendPoint struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

type VisitorStats struct {
	Total int          `json:"total"`
	Trend []TrendPoint `json:"trend"`
}
