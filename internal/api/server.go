package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"hoteldash/internal/log"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 10 * time.Second

// NewServer builds the echo instance with middleware and routes.
func NewServer(h *Handler, logger *log.Logger) *echo.Echo {
	httpLog := logger.WithComponent(log.ComponentHTTP)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = JSONSerializer{}

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				log.FieldMethod, v.Method,
				log.FieldPath, v.URI,
				log.FieldStatusCode, v.Status,
				log.FieldDuration, v.Latency.Milliseconds(),
				log.FieldRequestID, v.RequestID,
			}
			if v.Error != nil {
				httpLog.Warn("Request failed", append(attrs, log.FieldError, v.Error.Error())...)
				return nil
			}
			httpLog.Info("Request", attrs...)
			return nil
		},
	}))

	h.RegisterRoutes(e)
	return e
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func Start(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	}
}
