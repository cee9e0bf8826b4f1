// Command tracker performs one batch pass over the tracking sheet: every
// row is classified, fetched from its carrier, and written back in the
// standardized format.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

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

	var cache ports.TrackingCache
	if cfg.Redis.Addr != "" {
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			// Cache is an optimisation; a batch run works without it.
			log.Warn().Err(err).Msg("redis unavailable, running uncached")
		} else {
			defer client.Close()
			cache = redis.NewTrackingCache(client, cfg.Redis.CacheTTL)
		}
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

	log.Info().Str("sheet", cfg.SheetPath).Msg("starting batch pass")

	summary, err := tracker.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("batch pass failed")
	}

	if summary.Err != nil {
		log.Warn().Err(summary.Err).
			Int("rows_seen", summary.RowsSeen).
			Int("rows_updated", summary.RowsUpdated).
			Int("rows_skipped", summary.RowsSkipped).
			Msg("batch pass finished with row failures")
		os.Exit(1)
	}

	log.Info().
		Int("rows_seen", summary.RowsSeen).
		Int("rows_updated", summary.RowsUpdated).
		Int("rows_skipped", summary.RowsSkipped).
		Msg("batch pass finished")
}
