package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"hoteldash/internal/config"
	"hoteldash/internal/dashboard"
	"hoteldash/internal/models"
	"hoteldash/internal/widgets"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	ctrl    *dashboard.Controller
	widgets *widgets.Set
	loc     *time.Location
}

func NewHandler(ctrl *dashboard.Controller, set *widgets.Set, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{ctrl: ctrl, widgets: set, loc: loc}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/health", h.GetHealth)
	api.GET("/range", h.GetRange)
	api.PUT("/range", h.PutRange)
	api.GET("/dashboard", h.GetDashboard)

	charts := api.Group("/charts")
	charts.GET("/timeseries", h.chart(func() widgets.Chart { return h.widgets.TimeSeries.Chart() }))
	charts.GET("/countries", h.chart(func() widgets.Chart { return h.widgets.Countries.Chart() }))
	charts.GET("/adults", h.chart(func() widgets.Chart { return h.widgets.Adults.Chart() }))
	charts.GET("/children", h.chart(func() widgets.Chart { return h.widgets.Children.Chart() }))
}

// RangeBody is a date range on the wire; null or missing bounds are allowed.
type RangeBody struct {
	From *string `json:"from"`
	To   *string `json:"to"`
}

// --- HELPERS ---

func (h *Handler) parseBound(name string, s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := config.ParseDay(*s, h.loc)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid %s date %q: want YYYY-MM-DD", name, *s))
	}
	return &t, nil
}

func (h *Handler) parseRange(body RangeBody) (models.DateRange, error) {
	from, err := h.parseBound("from", body.From)
	if err != nil {
		return models.DateRange{}, err
	}
	to, err := h.parseBound("to", body.To)
	if err != nil {
		return models.DateRange{}, err
	}
	return models.DateRange{From: from, To: to}, nil
}

func formatRange(r models.DateRange) RangeBody {
	var body RangeBody
	if r.From != nil {
		s := config.FormatDay(*r.From)
		body.From = &s
	}
	if r.To != nil {
		s := config.FormatDay(*r.To)
		body.To = &s
	}
	return body
}

func notReady(err error) error {
	if errors.Is(err, dashboard.ErrNotReady) {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "dataset is still loading")
	}
	return err
}

// --- HANDLERS ---

func (h *Handler) GetHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "ok",
		"ready":  h.ctrl.Ready(),
	})
}

func (h *Handler) GetRange(c echo.Context) error {
	return c.JSON(http.StatusOK, formatRange(h.ctrl.Range()))
}

// PutRange replaces the held range and returns the recomputed view-models.
func (h *Handler) PutRange(c echo.Context) error {
	var body RangeBody
	if err := c.Bind(&body); err != nil {
		return err
	}
	rng, err := h.parseRange(body)
	if err != nil {
		return err
	}

	data := h.ctrl.OnRangeChange(rng)
	if !h.ctrl.Ready() {
		return notReady(dashboard.ErrNotReady)
	}
	return c.JSON(http.StatusOK, data)
}

// GetDashboard returns the current view-models, or a preview when from/to are given.
func (h *Handler) GetDashboard(c echo.Context) error {
	qs := c.QueryParams()
	if !qs.Has("from") && !qs.Has("to") {
		data, err := h.ctrl.CurrentViewModels()
		if err != nil {
			return notReady(err)
		}
		return c.JSON(http.StatusOK, data)
	}

	from, to := qs.Get("from"), qs.Get("to")
	rng, err := h.parseRange(RangeBody{From: &from, To: &to})
	if err != nil {
		return err
	}
	data, err := h.ctrl.Preview(rng)
	if err != nil {
		return notReady(err)
	}
	return c.JSON(http.StatusOK, data)
}

func (h *Handler) chart(get func() widgets.Chart) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !h.ctrl.Ready() {
			return notReady(dashboard.ErrNotReady)
		}
		return c.JSON(http.StatusOK, get())
	}
}
