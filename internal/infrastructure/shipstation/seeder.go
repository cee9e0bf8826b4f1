package shipstation

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/parcelwatch/tracking-system/internal/core/detector"
	"github.com/parcelwatch/tracking-system/internal/core/ports"
)

// Seeder fills the tracking sheet with tracking numbers pulled from recent
// ShipStation shipments.
type Seeder struct {
	client *Client
	sheet  ports.SheetStore
	log    zerolog.Logger
}

// NewSeeder creates a Seeder writing to the given sheet.
func NewSeeder(client *Client, sheet ports.SheetStore, log zerolog.Logger) *Seeder {
	return &Seeder{client: client, sheet: sheet, log: log}
}

// SeedResult reports the outcome of one seeding pass.
type SeedResult struct {
	Added      int
	Duplicates int
	Invalid    int
}

// Seed lists shipments created in the last windowDays, extracts their
// tracking numbers, validates each against the carrier pattern tables, and
// appends the ones not already present in the sheet.
func (s *Seeder) Seed(ctx context.Context, windowDays int) (*SeedResult, error) {
	if windowDays <= 0 {
		windowDays = 30
	}
	since := time.Now().AddDate(0, 0, -windowDays)

	shipments, err := s.client.ListShipments(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}

	numbers := lo.Uniq(lo.FlatMap(shipments, func(sh Shipment, _ int) []string {
		return sh.TrackingNumbers()
	}))

	if err := s.sheet.EnsureHeader(ctx); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	existing, err := s.existingNumbers(ctx)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}

	result := &SeedResult{}
	for _, number := range numbers {
		normalized := detector.Normalize(number)
		if !detector.ValidateTrackingNumber(normalized) {
			s.log.Warn().Str("tracking_number", number).Msg("unrecognised tracking number format, skipping")
			result.Invalid++
			continue
		}
		if existing[normalized] {
			s.log.Debug().Str("tracking_number", normalized).Msg("already in sheet, skipping")
			result.Duplicates++
			continue
		}
		if _, err := s.sheet.AppendRow(ctx, normalized); err != nil {
			return result, fmt.Errorf("seed: append %s: %w", normalized, err)
		}
		existing[normalized] = true
		result.Added++
	}

	s.log.Info().
		Int("added", result.Added).
		Int("duplicates", result.Duplicates).
		Int("invalid", result.Invalid).
		Msg("seeding pass completed")
	return result, nil
}

func (s *Seeder) existingNumbers(ctx context.Context) (map[string]bool, error) {
	rows, err := s.sheet.Rows(ctx)
	if err != nil {
		return nil, err
	}
	existing := make(map[string]bool, len(rows))
	for _, row := range rows {
		existing[detector.Normalize(row.TrackingNumber)] = true
	}
	return existing, nil
}
