package ports

import (
	"context"

	"github.com/parcelwatch/tracking-system/internal/core/domain"
)

// TrackerService is the use-case surface consumed by the HTTP API and the
// batch CLI.
type TrackerService interface {
	// Track resolves one tracking number to a standardized record, using
	// the cache when a fresh result exists. The only error returned is
	// domain.ErrNoAdapter; carrier failures are encoded in the record.
	Track(ctx context.Context, trackingNumber string) (*domain.TrackingRecord, error)

	// ValidateAddress runs an address through the named carrier's
	// validation API (nil result when the address is too sparse).
	ValidateAddress(ctx context.Context, carrier domain.Carrier, addr domain.Address) (*domain.AddressValidation, error)

	// Run performs one sequential batch pass over the tracking sheet.
	// Individual row failures never abort the pass; they are aggregated
	// into the summary.
	Run(ctx context.Context) (*RunSummary, error)
}

// RunSummary reports the outcome of one batch pass.
type RunSummary struct {
	RowsSeen    int
	RowsUpdated int
	RowsSkipped int
	// Err aggregates per-row failures (nil when the pass was clean).
	Err error
}
