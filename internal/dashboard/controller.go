package dashboard

import (
	"errors"
	"sync"
	"time"

	"hoteldash/internal/engine"
	"hoteldash/internal/log"
	"hoteldash/internal/models"
)

// ErrNotReady is returned until the dataset has been handed to the controller.
var ErrNotReady = errors.New("dataset not loaded yet")

type SeriesWidget interface {
	RenderTimeSeries(points []models.TimeSeriesPoint)
}

type RankingWidget interface {
	RenderCountries(ranking []models.CountryVisitors)
}

type StatsWidget interface {
	RenderStats(stats models.VisitorStats)
}

// Widgets receive one view-model each after every recomputation. Nil widgets are skipped.
type Widgets struct {
	TimeSeries SeriesWidget
	Countries  RankingWidget
	Adults     StatsWidget
	Children   StatsWidget
}

// Controller owns the selected range and the view-models computed from it.
// All four view-models are replaced together under one lock.
type Controller struct {
	mu      sync.RWMutex
	records []models.Booking
	loaded  bool
	rng     models.DateRange
	view    *models.DashboardData

	widgets Widgets
	cache   *rangeCache
	log     *log.Logger
}

func New(initial models.DateRange, widgets Widgets, cacheSize int, logger *log.Logger) *Controller {
	if cacheSize < 1 {
		cacheSize = 1
	}
	return &Controller{
		rng:     copyRange(initial),
		view:    models.EmptyDashboard(),
		widgets: widgets,
		cache:   newRangeCache(cacheSize),
		log:     logger.WithComponent(log.ComponentDashboard),
	}
}

// SetRecords installs the dataset and recomputes with the held range.
func (c *Controller) SetRecords(records []models.Booking) *models.DashboardData {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = records
	c.loaded = true
	c.cache.Clear()
	c.log.Info("Dataset installed", log.FieldRecords, len(records))
	return c.recompute()
}

// OnRangeChange replaces the held range and pushes fresh view-models to the widgets.
// A range with a missing bound is accepted and yields empty view-models.
func (c *Controller) OnRangeChange(rng models.DateRange) *models.DashboardData {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rng = copyRange(rng)
	if !c.loaded {
		return c.view
	}
	return c.recompute()
}

// CurrentViewModels returns the view-models of the latest recomputation.
func (c *Controller) CurrentViewModels() (*models.DashboardData, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.loaded {
		return nil, ErrNotReady
	}
	return c.view, nil
}

// Range returns the held range.
func (c *Controller) Range() models.DateRange {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return copyRange(c.rng)
}

// Ready reports whether a dataset has been installed.
func (c *Controller) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Preview computes view-models for rng without touching the held range or the widgets.
func (c *Controller) Preview(rng models.DateRange) (*models.DashboardData, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.loaded {
		return nil, ErrNotReady
	}
	if data, ok := c.cache.Get(rng); ok {
		return data, nil
	}

	data := engine.Aggregate(c.records, rng)
	c.cache.Set(rng, data)
	c.log.Debug("Preview computed",
		log.FieldOperation, log.OpPreview,
		log.FieldDays, len(data.TimeSeries),
		log.FieldSkipped, data.Skipped)
	return data, nil
}

// recompute must be called with mu held for writing.
func (c *Controller) recompute() *models.DashboardData {
	start := time.Now()
	data := engine.Aggregate(c.records, c.rng)
	c.view = data

	if w := c.widgets.TimeSeries; w != nil {
		w.RenderTimeSeries(data.TimeSeries)
	}
	if w := c.widgets.Countries; w != nil {
		w.RenderCountries(data.CountryRanking)
	}
	if w := c.widgets.Adults; w != nil {
		w.RenderStats(data.AdultStats)
	}
	if w := c.widgets.Children; w != nil {
		w.RenderStats(data.ChildrenStats)
	}

	attrs := []any{
		log.FieldOperation, log.OpAggregate,
		log.FieldRangeFrom, boundString(c.rng.From),
		log.FieldRangeTo, boundString(c.rng.To),
		log.FieldDays, len(data.TimeSeries),
		log.FieldDuration, time.Since(start).Milliseconds(),
	}
	if data.Skipped > 0 {
		c.log.Warn("Bookings with unknown month skipped", append(attrs, log.FieldSkipped, data.Skipped)...)
	} else {
		c.log.Debug("View-models recomputed", attrs...)
	}
	return data
}

func copyRange(r models.DateRange) models.DateRange {
	var out models.DateRange
	if r.From != nil {
		from := *r.From
		out.From = &from
	}
	if r.To != nil {
		to := *r.To
		out.To = &to
	}
	return out
}

func boundString(t *time.Time) string {
	if t == nil {
		return "none"
	}
	return t.Format(time.DateOnly)
}
