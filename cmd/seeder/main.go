// Command seeder pulls recent shipments from ShipStation and appends any
// tracking numbers not already present to the tracking sheet.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/parcelwatch/tracking-system/internal/infrastructure/config"
	csvsheet "github.com/parcelwatch/tracking-system/internal/infrastructure/sheet/csv"
	"github.com/parcelwatch/tracking-system/internal/infrastructure/shipstation"
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

	client := shipstation.NewClient(shipstation.Config{
		APIKey:  cfg.ShipStation.APIKey,
		Timeout: cfg.HTTPTimeout,
	}, log)
	if !client.Configured() {
		log.Fatal().Msg("SHIPSTATION_API_KEY is not set")
	}

	sheet := csvsheet.NewStore(cfg.SheetPath)
	seeder := shipstation.NewSeeder(client, sheet, log)

	result, err := seeder.Seed(ctx, cfg.ShipStation.SeedWindowDays)
	if err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}

	log.Info().
		Int("added", result.Added).
		Int("duplicates", result.Duplicates).
		Int("invalid", result.Invalid).
		Str("sheet", cfg.SheetPath).
		Msg("seeding finished")
}
