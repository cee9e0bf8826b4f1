package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/parcelwatch/tracking-system/internal/api/handler"
	"github.com/parcelwatch/tracking-system/internal/core/ports"
	"github.com/parcelwatch/tracking-system/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(tracker ports.TrackerService, rdb *redis.Client) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger.Get())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// --- Tracking routes ---
	trackingHandler := handler.NewTrackingHandler(tracker)

	v1 := e.Group("/v1")
	v1.GET("/track/:tracking_number", trackingHandler.Track)
	v1.GET("/carriers/detect", trackingHandler.Detect)
	v1.POST("/addresses/validate", trackingHandler.ValidateAddress)

	// --- Health probes ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Metrics ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
