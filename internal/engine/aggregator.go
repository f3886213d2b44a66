package engine

import (
	"hoteldash/internal/models"
	"sort"
	"time"

	"github.com/samber/lo"
)

// TopCountries caps the country ranking.
const TopCountries = 10

// dayStats is one date-key group: all three sums are filled in a single pass.
type dayStats struct {
	Key      string
	Date     time.Time
	Visitors int
	Adults   int
	Children int
}

type countryStats struct {
	Country  string
	Visitors int
}

// Aggregate filters records to rng (inclusive, compared by instant) and builds
// the four dashboard view-models. It never mutates records and holds no state.
// An incomplete range yields the empty dashboard without looking at records.
func Aggregate(records []models.Booking, rng models.DateRange) *models.DashboardData {
	data := models.EmptyDashboard()
	if !rng.Complete() {
		return data
	}
	loc := rng.From.Location()

	// 1. Filter + group (insertion order kept for stable tie-breaks)
	days := make([]*dayStats, 0)
	dayIdx := make(map[string]int)
	countries := make([]countryStats, 0)
	ctryIdx := make(map[string]int)

	for i := range records {
		b := &records[i]
		arrival, err := b.ArrivalDate(loc)
		if err != nil {
			data.Skipped++
			continue
		}
		if !rng.Contains(arrival) {
			continue
		}
		visitors := b.Visitors()

		// A. Date key
		key := b.DateKey()
		idx, ok := dayIdx[key]
		if !ok {
			idx = len(days)
			dayIdx[key] = idx
			days = append(days, &dayStats{Key: key, Date: arrival})
		}
		d := days[idx]
		d.Visitors += visitors
		d.Adults += b.Adults
		d.Children += b.Children

		// B. Country
		cid, ok := ctryIdx[b.Country]
		if !ok {
			cid = len(countries)
			ctryIdx[b.Country] = cid
			countries = append(countries, countryStats{Country: b.Country})
		}
		countries[cid].Visitors += visitors

		// C. Totals
		data.AdultStats.Total += b.Adults
		data.ChildrenStats.Total += b.Children
	}

	// 2. Time series, ascending by the arrival date captured above
	sort.SliceStable(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })

	data.TimeSeries = lo.Map(days, func(d *dayStats, _ int) models.TimeSeriesPoint {
		return models.TimeSeriesPoint{Date: d.Key, Visitors: d.Visitors}
	})
	data.AdultStats.Trend = lo.Map(days, func(d *dayStats, _ int) models.TrendPoint {
		return models.TrendPoint{Date: d.Key, Value: d.Adults}
	})
	data.ChildrenStats.Trend = lo.Map(days, func(d *dayStats, _ int) models.TrendPoint {
		return models.TrendPoint{Date: d.Key, Value: d.Children}
	})

	// 3. Country ranking, ties keep first appearance
	sort.SliceStable(countries, func(i, j int) bool { return countries[i].Visitors > countries[j].Visitors })
	if len(countries) > TopCountries {
		countries = countries[:TopCountries]
	}
	data.CountryRanking = lo.Map(countries, func(c countryStats, _ int) models.CountryVisitors {
		return models.CountryVisitors{Country: c.Country, Visitors: c.Visitors}
	})

	return data
}

// Aggregate runs the engine over the loaded dataset.
func (ds *Dataset) Aggregate(rng models.DateRange) *models.DashboardData {
	return Aggregate(ds.Records, rng)
}
