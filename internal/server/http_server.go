package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	api "github.com/halcyonworks/mission-control/api/echo"
	"github.com/halcyonworks/mission-control/config"
	"github.com/halcyonworks/mission-control/internal/ratelimit"
	"github.com/halcyonworks/mission-control/log"
)

// NewHTTPServer creates and configures the echo HTTP server.
func NewHTTPServer(cfg *config.ServerConfig, appLogger log.Logger, a *api.API) *http.Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.IsDevelopment()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(otelecho.Middleware(cfg.OtelServiceName))

	// Request logging through the shared logger interface.
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			fields := map[string]interface{}{
				"method":     c.Request().Method,
				"path":       c.Request().URL.Path,
				"status":     c.Response().Status,
				"latency":    time.Since(start).String(),
				"ip":         ratelimit.ClientIP(c.Request()),
				"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
			}
			if err != nil {
				appLogger.Error(c.Request().Context(), "HTTP Request", err, fields)
			} else {
				appLogger.Info(c.Request().Context(), "HTTP Request", fields)
			}
			return err
		}
	})

	a.RegisterRoutes(e)

	return &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      e,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}
