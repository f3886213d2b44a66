package widgets

import (
	"sync"

	"hoteldash/internal/dashboard"
	"hoteldash/internal/models"

	"github.com/samber/lo"
)

// Series is one ApexCharts data series.
type Series struct {
	Name string `json:"name"`
	Data []int  `json:"data"`
}

// Chart is what a widget hands to the browser: enough for an ApexCharts config.
type Chart struct {
	Title      string   `json:"title"`
	Type       string   `json:"type"`
	Height     int      `json:"height"`
	Categories []string `json:"categories"`
	XAxisType  string   `json:"xaxis_type,omitempty"`
	YAxisTitle string   `json:"yaxis_title,omitempty"`
	Sparkline  bool     `json:"sparkline,omitempty"`
	Total      *int     `json:"total,omitempty"`
	Series     []Series `json:"series"`
}

// panel keeps the last rendered chart.
type panel struct {
	mu    sync.RWMutex
	chart Chart
}

func (p *panel) set(c Chart) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.chart = c
}

// Chart returns the last rendered chart.
func (p *panel) Chart() Chart {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.chart
}

// TimeSeriesChart is the "Visitors per Day" area chart.
type TimeSeriesChart struct {
	panel
}

func NewTimeSeriesChart() *TimeSeriesChart {
	w := &TimeSeriesChart{}
	w.RenderTimeSeries(nil)
	return w
}

func (w *TimeSeriesChart) RenderTimeSeries(points []models.TimeSeriesPoint) {
	w.set(Chart{
		Title:      "Visitors per Day",
		Type:       "area",
		Height:     350,
		XAxisType:  "datetime",
		YAxisTitle: "Total Visitors",
		Categories: lo.Map(points, func(p models.TimeSeriesPoint, _ int) string { return p.Date }),
		Series: []Series{{
			Name: "Visitors",
			Data: lo.Map(points, func(p models.TimeSeriesPoint, _ int) int { return p.Visitors }),
		}},
	})
}

// CountryBarChart is the "Visitors by Country" bar chart.
type CountryBarChart struct {
	panel
}

func NewCountryBarChart() *CountryBarChart {
	w := &CountryBarChart{}
	w.RenderCountries(nil)
	return w
}

func (w *CountryBarChart) RenderCountries(ranking []models.CountryVisitors) {
	w.set(Chart{
		Title:      "Visitors by Country",
		Type:       "bar",
		Height:     300,
		Categories: lo.Map(ranking, func(c models.CountryVisitors, _ int) string { return c.Country }),
		Series: []Series{{
			Name: "Visitors",
			Data: lo.Map(ranking, func(c models.CountryVisitors, _ int) int { return c.Visitors }),
		}},
	})
}

// VisitorStats is a big number over a sparkline.
type VisitorStats struct {
	panel
	title string
}

func NewVisitorStats(title string) *VisitorStats {
	w := &VisitorStats{title: title}
	w.RenderStats(models.VisitorStats{})
	return w
}

func (w *VisitorStats) RenderStats(stats models.VisitorStats) {
	total := stats.Total
	w.set(Chart{
		Title:      w.title,
		Type:       "line",
		Height:     100,
		Sparkline:  true,
		Total:      &total,
		Categories: lo.Map(stats.Trend, func(p models.TrendPoint, _ int) string { return p.Date }),
		Series: []Series{{
			Name: w.title,
			Data: lo.Map(stats.Trend, func(p models.TrendPoint, _ int) int { return p.Value }),
		}},
	})
}

// Set is the four dashboard widgets.
type Set struct {
	TimeSeries *TimeSeriesChart
	Countries  *CountryBarChart
	Adults     *VisitorStats
	Children   *VisitorStats
}

func NewSet() *Set {
	return &Set{
		TimeSeries: NewTimeSeriesChart(),
		Countries:  NewCountryBarChart(),
		Adults:     NewVisitorStats("Adult Visitors"),
		Children:   NewVisitorStats("Children Visitors"),
	}
}

// Bind returns the set in the shape the controller pushes to.
func (s *Set) Bind() dashboard.Widgets {
	return dashboard.Widgets{
		TimeSeries: s.TimeSeries,
		Countries:  s.Countries,
		Adults:     s.Adults,
		Children:   s.Children,
	}
}
