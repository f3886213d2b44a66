package dashboard

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"hoteldash/internal/log"
	"hoteldash/internal/models"
)

// recorder is a fake widget set that keeps everything it was asked to render.
type recorder struct {
	mu       sync.Mutex
	series   [][]models.TimeSeriesPoint
	ranking  [][]models.CountryVisitors
	stats    []models.VisitorStats
	children []models.VisitorStats
}

func (r *recorder) RenderTimeSeries(p []models.TimeSeriesPoint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.series = append(r.series, p)
}

func (r *recorder) RenderCountries(c []models.CountryVisitors) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ranking = append(r.ranking, c)
}

func (r *recorder) RenderStats(s models.VisitorStats) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats = append(r.stats, s)
}

type childWidget struct{ r *recorder }

func (c childWidget) RenderStats(s models.VisitorStats) {
	c.r.mu.Lock()
	defer c.r.mu.Unlock()
	c.r.children = append(c.r.children, s)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleRecords() []models.Booking {
	return []models.Booking{
		{ArrivalYear: 2015, ArrivalMonth: "July", ArrivalDay: 10, Adults: 2, Children: 1, Country: "USA"},
		{ArrivalYear: 2015, ArrivalMonth: "July", ArrivalDay: 10, Adults: 1, Country: "UK"},
		{ArrivalYear: 2016, ArrivalMonth: "January", ArrivalDay: 3, Adults: 2, Children: 2, Country: "PRT"},
	}
}

func newController(r *recorder) *Controller {
	widgets := Widgets{TimeSeries: r, Countries: r, Adults: r, Children: childWidget{r}}
	return New(models.NewDateRange(day(2015, time.July, 1), day(2015, time.August, 31)), widgets, 4, log.Discard())
}

func TestControllerNotReady(t *testing.T) {
	c := newController(&recorder{})

	if c.Ready() {
		t.Error("Expected controller not ready")
	}
	if _, err := c.CurrentViewModels(); !errors.Is(err, ErrNotReady) {
		t.Errorf("Expected ErrNotReady, got %v", err)
	}
	if _, err := c.Preview(c.Range()); !errors.Is(err, ErrNotReady) {
		t.Errorf("Expected ErrNotReady from Preview, got %v", err)
	}
}

func TestControllerSetRecordsRenders(t *testing.T) {
	r := &recorder{}
	c := newController(r)

	c.SetRecords(sampleRecords())

	data, err := c.CurrentViewModels()
	if err != nil {
		t.Fatalf("CurrentViewModels: %v", err)
	}
	if data.AdultStats.Total != 3 || len(data.TimeSeries) != 1 {
		t.Errorf("Unexpected view-models for default range: %+v", data)
	}

	if len(r.series) != 1 || len(r.ranking) != 1 || len(r.stats) != 1 || len(r.children) != 1 {
		t.Fatalf("Expected one render per widget, got %d/%d/%d/%d", len(r.series), len(r.ranking), len(r.stats), len(r.children))
	}
	if !reflect.DeepEqual(r.series[0], data.TimeSeries) {
		t.Errorf("Series widget got %+v, want %+v", r.series[0], data.TimeSeries)
	}
	if r.stats[0].Total != 3 || r.children[0].Total != 1 {
		t.Errorf("Stats widgets got adults %d, children %d", r.stats[0].Total, r.children[0].Total)
	}
}

func TestControllerOnRangeChange(t *testing.T) {
	r := &recorder{}
	c := newController(r)
	c.SetRecords(sampleRecords())

	data := c.OnRangeChange(models.NewDateRange(day(2016, time.January, 1), day(2016, time.December, 31)))

	if data.AdultStats.Total != 2 || data.ChildrenStats.Total != 2 {
		t.Errorf("Unexpected totals for 2016: %+v / %+v", data.AdultStats, data.ChildrenStats)
	}
	current, _ := c.CurrentViewModels()
	if current != data {
		t.Error("CurrentViewModels should return the latest result")
	}
	if got := c.Range(); !got.From.Equal(day(2016, time.January, 1)) {
		t.Errorf("Range not updated: %v", got.From)
	}
	if len(r.series) != 2 || r.series[1][0].Date != "2016-January-3" {
		t.Errorf("Widgets not refreshed: %+v", r.series)
	}
}

func TestControllerPartialRange(t *testing.T) {
	c := newController(&recorder{})
	c.SetRecords(sampleRecords())

	from := day(2015, time.July, 1)
	data := c.OnRangeChange(models.DateRange{From: &from})

	if len(data.TimeSeries) != 0 || len(data.CountryRanking) != 0 || data.AdultStats.Total != 0 || data.ChildrenStats.Total != 0 {
		t.Errorf("Expected empty view-models, got %+v", data)
	}
	if c.Range().To != nil {
		t.Error("Expected held range to keep the missing bound")
	}
}

func TestControllerRangeIsCopied(t *testing.T) {
	c := newController(&recorder{})
	c.SetRecords(sampleRecords())

	from, to := day(2015, time.July, 1), day(2015, time.July, 31)
	c.OnRangeChange(models.DateRange{From: &from, To: &to})
	to = day(2015, time.July, 2)

	if got := c.Range(); !got.To.Equal(day(2015, time.July, 31)) {
		t.Errorf("Caller mutation leaked into held range: %v", got.To)
	}
}

func TestControllerRangeBeforeLoad(t *testing.T) {
	r := &recorder{}
	c := newController(r)

	c.OnRangeChange(models.NewDateRange(day(2016, time.January, 1), day(2016, time.January, 31)))
	if len(r.series) != 0 {
		t.Error("Widgets should not render before the dataset is loaded")
	}

	data := c.SetRecords(sampleRecords())
	if data.AdultStats.Total != 2 {
		t.Errorf("Expected range chosen before load to apply, got %+v", data.AdultStats)
	}
}

func TestControllerPreview(t *testing.T) {
	r := &recorder{}
	c := newController(r)
	c.SetRecords(sampleRecords())
	held := c.Range()

	rng := models.NewDateRange(day(2016, time.January, 1), day(2016, time.January, 31))
	first, err := c.Preview(rng)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	second, _ := c.Preview(models.NewDateRange(day(2016, time.January, 1), day(2016, time.January, 31)))

	if first != second {
		t.Error("Expected second preview served from cache")
	}
	if first.AdultStats.Total != 2 {
		t.Errorf("Unexpected preview totals: %+v", first.AdultStats)
	}
	if got := c.Range(); !got.From.Equal(*held.From) {
		t.Error("Preview must not change the held range")
	}
	if len(r.series) != 1 {
		t.Errorf("Preview must not render widgets, got %d renders", len(r.series))
	}

	// New dataset invalidates cached previews
	c.SetRecords(nil)
	if c.cache.Len() != 0 {
		t.Errorf("Expected cache cleared, has %d entries", c.cache.Len())
	}
	empty, _ := c.Preview(rng)
	if empty.AdultStats.Total != 0 {
		t.Errorf("Expected empty preview after clearing records, got %+v", empty.AdultStats)
	}
}

func TestControllerConcurrentAccess(t *testing.T) {
	c := newController(&recorder{})
	c.SetRecords(sampleRecords())

	ranges := []models.DateRange{
		models.NewDateRange(day(2015, time.July, 1), day(2015, time.July, 31)),
		models.NewDateRange(day(2016, time.January, 1), day(2016, time.January, 31)),
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			c.OnRangeChange(ranges[i%2])
		}(i)
		go func() {
			defer wg.Done()
			data, err := c.CurrentViewModels()
			if err != nil {
				t.Errorf("CurrentViewModels: %v", err)
				return
			}
			// Every snapshot comes from a single range
			if data.AdultStats.Total != 3 && data.AdultStats.Total != 2 {
				t.Errorf("Inconsistent snapshot: %+v", data.AdultStats)
			}
			if len(data.TimeSeries) != len(data.AdultStats.Trend) {
				t.Errorf("Misaligned snapshot")
			}
		}()
	}
	wg.Wait()
}
