// Command server runs the tracking query HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/parcelwatch/tracking-system/internal/api"
	"github.com/parcelwatch/tracking-system/internal/core/domain"
	"github.com/parcelwatch/tracking-system/internal/core/ports"
	"github.com/parcelwatch/tracking-system/internal/core/service"
	"github.com/parcelwatch/tracking-system/internal/infrastructure/carrier"
	"github.com/parcelwatch/tracking-system/internal/infrastructure/carrier/dhl"
	"github.com/parcelwatch/tracking-system/internal/infrastructure/carrier/ups"
	"github.com/parcelwatch/tracking-system/internal/infrastructure/carrier/usps"
	"github.com/parcelwatch/tracking-system/internal/infrastructure/config"
	"github.com/parcelwatch/tracking-system/internal/infrastructure/db/redis"
	csvsheet "github.com/parcelwatch/tracking-system/internal/infrastructure/sheet/csv"
	"github.com/parcelwatch/tracking-system/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis is optional: without an address the service runs uncached.
	var rdb *goredis.Client
	var cache ports.TrackingCache
	if cfg.Redis.Addr != "" {
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connect failed")
		}
		defer client.Close()
		rdb = client
		cache = redis.NewTrackingCache(client, cfg.Redis.CacheTTL)
	}

	factory := carrier.NewFactory(carrier.Config{
		UPS: ups.Config{
			ClientID:     cfg.UPS.ClientID,
			ClientSecret: cfg.UPS.ClientSecret,
			Timeout:      cfg.HTTPTimeout,
		},
		USPS: usps.Config{UserID: cfg.USPS.UserID},
		DHL:  dhl.Config{APIKey: cfg.DHL.APIKey},
	}, log)

	sheet := csvsheet.NewStore(cfg.SheetPath)

	tracker := service.NewTrackerService(factory, sheet, cache, service.TrackerOptions{
		Origin: domain.Address{
			Street:     cfg.Origin.Street,
			City:       cfg.Origin.City,
			State:      cfg.Origin.State,
			PostalCode: cfg.Origin.PostalCode,
			Country:    cfg.Origin.Country,
		},
		RowDelay: cfg.RowDelay,
	}, log)

	e := api.NewRouter(tracker, rdb)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting http server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
	}
	log.Info().Msg("server stopped")
}
