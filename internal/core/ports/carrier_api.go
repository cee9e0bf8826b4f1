package ports

import (
	"context"

	"github.com/parcelwatch/tracking-system/internal/core/domain"
)

// CarrierAPI is the uniform contract every carrier adapter implements.
//
// GetTrackingInfo is fail-soft by design: it never returns an error. Any
// transport or parse failure produces a record whose Status is a sentinel
// ("API Error", "Error", "API Not Configured") with the detail logged, so a
// single bad tracking number can never abort a batch run over a whole sheet.
type CarrierAPI interface {
	// Name returns the carrier this adapter speaks for.
	Name() domain.Carrier

	// GetTrackingInfo queries the carrier for one tracking number and
	// returns exactly one standardized record. Never nil, never an error.
	GetTrackingInfo(ctx context.Context, trackingNumber string) *domain.TrackingRecord

	// ValidateAddress checks an address against the carrier's validation
	// API. Returns (nil, nil) without any network call when none of postal
	// code, city, or state is present — a cost-saving short-circuit, not an
	// error.
	ValidateAddress(ctx context.Context, addr domain.Address) (*domain.AddressValidation, error)

	// GetEstimatedDelivery queries the carrier's time-in-transit API for a
	// shipment dated "now" with a placeholder 1-unit weight. Returns
	// (nil, nil) when either postal code is missing.
	GetEstimatedDelivery(ctx context.Context, origin, destination domain.Address) (*domain.TransitEstimate, error)
}

// AdapterFactory resolves a carrier identity (or a raw tracking number) to
// the adapter that serves it.
type AdapterFactory interface {
	// ForCarrier returns the adapter for the carrier. Unknown or empty
	// carriers fall back to UPS (the documented default policy). Detected
	// but unsupported carriers (FedEx) return domain.ErrNoAdapter; callers
	// treat that as a skip.
	ForCarrier(carrier domain.Carrier) (CarrierAPI, error)

	// ForTrackingNumber classifies the tracking number first, then resolves
	// as ForCarrier does.
	ForTrackingNumber(trackingNumber string) (CarrierAPI, error)
}
