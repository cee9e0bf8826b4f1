// Package dhl implements the DHL carrier adapter.
//
// Like USPS, the live API is not yet wired in: payloads come from a Source
// whose default implementation synthesizes shipment data in the real DHL
// wire shape (shipments[].status / .events[] / .estimatedDeliveryTimeframe),
// so the parser is exercised against the same structure a live payload has.
package dhl

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/parcelwatch/tracking-system/internal/core/domain"
)

// Config carries the DHL credentials.
type Config struct {
	APIKey string
}

// Source supplies raw DHL tracking payloads for a tracking number.
type Source interface {
	Fetch(ctx context.Context, trackingNumber string) ([]byte, error)
}

// Adapter implements the carrier contract for DHL.
type Adapter struct {
	cfg    Config
	source Source
	log    zerolog.Logger
}

// New creates a DHL adapter. A nil source defaults to the mock source.
func New(cfg Config, source Source, log zerolog.Logger) *Adapter {
	if source == nil {
		source = NewMockSource()
	}
	return &Adapter{
		cfg:    cfg,
		source: source,
		log:    log.With().Str("carrier", "dhl").Logger(),
	}
}

func (a *Adapter) Name() domain.Carrier { return domain.CarrierDHL }

// GetTrackingInfo returns the standardized record for one tracking number.
// Unconfigured adapters return an "API Not Configured" record; source and
// parse failures return sentinel-status records. Never errors.
func (a *Adapter) GetTrackingInfo(ctx context.Context, trackingNumber string) *domain.TrackingRecord {
	if a.cfg.APIKey == "" {
		a.log.Error().Str("tracking_number", trackingNumber).Msg("DHL API key not set, cannot track")
		return domain.ErrorRecord(domain.CarrierDHL, domain.StatusNotConfigured)
	}

	body, err := a.source.Fetch(ctx, trackingNumber)
	if err != nil {
		a.log.Error().Err(err).Str("tracking_number", trackingNumber).Msg("fetching tracking data")
		return domain.ErrorRecord(domain.CarrierDHL, domain.StatusError)
	}

	parsed, err := parseTrackingResponse(body)
	if err != nil {
		a.log.Error().Err(err).Str("tracking_number", trackingNumber).Msg("parsing tracking response")
		return &domain.TrackingRecord{RawPayload: body, Carrier: domain.CarrierDHL}
	}

	return &domain.TrackingRecord{
		RawPayload:       body,
		Status:           parsed.Status,
		LastUpdate:       parsed.LastUpdate,
		Location:         parsed.Location,
		Address:          parsed.Address,
		DeliveryEstimate: parsed.DeliveryEstimate,
		Carrier:          domain.CarrierDHL,
	}
}

// ValidateAddress is a placeholder until DHL API credentials are available.
func (a *Adapter) ValidateAddress(_ context.Context, _ domain.Address) (*domain.AddressValidation, error) {
	a.log.Warn().Msg("DHL address validation not yet implemented")
	return nil, nil
}

// GetEstimatedDelivery is a placeholder until DHL API credentials are available.
func (a *Adapter) GetEstimatedDelivery(_ context.Context, _, _ domain.Address) (*domain.TransitEstimate, error) {
	a.log.Warn().Msg("DHL estimated delivery not yet implemented")
	return nil, nil
}
