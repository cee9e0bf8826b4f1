// Package usps implements the USPS carrier adapter.
//
// There is no live USPS wire protocol yet: the adapter reads payloads from a
// Source, and the default Source synthesizes plausible tracking data. The
// external contract is identical to a live backend, so wiring in the real
// API later changes only the Source, never the callers.
package usps

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/parcelwatch/tracking-system/internal/core/domain"
)

// Config carries the USPS credentials.
type Config struct {
	UserID string
}

// Source supplies raw USPS tracking payloads for a tracking number.
type Source interface {
	Fetch(ctx context.Context, trackingNumber string) ([]byte, error)
}

// Adapter implements the carrier contract for USPS.
type Adapter struct {
	cfg    Config
	source Source
	log    zerolog.Logger
}

// New creates a USPS adapter. A nil source defaults to the mock source.
func New(cfg Config, source Source, log zerolog.Logger) *Adapter {
	if source == nil {
		source = NewMockSource()
	}
	return &Adapter{
		cfg:    cfg,
		source: source,
		log:    log.With().Str("carrier", "usps").Logger(),
	}
}

func (a *Adapter) Name() domain.Carrier { return domain.CarrierUSPS }

// trackingPayload is the USPS tracking shape this adapter parses.
type trackingPayload struct {
	TrackingNumber       string   `json:"tracking_number"`
	Status               string   `json:"status"`
	StatusCategory       string   `json:"status_category"`
	StatusSummary        string   `json:"status_summary"`
	ExpectedDeliveryDate string   `json:"expected_delivery_date"`
	Summary              string   `json:"summary"`
	Events               []string `json:"events"`
	City                 string   `json:"city"`
	State                string   `json:"state"`
	Country              string   `json:"country"`
	LastUpdate           string   `json:"last_update"`
}

// GetTrackingInfo returns the standardized record for one tracking number.
// Unconfigured adapters return an "API Not Configured" record; source and
// parse failures return sentinel-status records. Never errors.
func (a *Adapter) GetTrackingInfo(ctx context.Context, trackingNumber string) *domain.TrackingRecord {
	if a.cfg.UserID == "" {
		a.log.Error().Str("tracking_number", trackingNumber).Msg("USPS user id not set, cannot track")
		return domain.ErrorRecord(domain.CarrierUSPS, domain.StatusNotConfigured)
	}

	body, err := a.source.Fetch(ctx, trackingNumber)
	if err != nil {
		a.log.Error().Err(err).Str("tracking_number", trackingNumber).Msg("fetching tracking data")
		return domain.ErrorRecord(domain.CarrierUSPS, domain.StatusError)
	}

	var payload trackingPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		a.log.Error().Err(err).Str("tracking_number", trackingNumber).Msg("parsing tracking payload")
		return &domain.TrackingRecord{RawPayload: body, Carrier: domain.CarrierUSPS}
	}

	status := payload.Status
	if status == "" {
		status = domain.StatusUnknown
	}
	lastUpdate := payload.LastUpdate
	if lastUpdate == "" {
		lastUpdate = domain.StatusUnknown
	}

	return &domain.TrackingRecord{
		RawPayload:       body,
		Status:           status,
		LastUpdate:       lastUpdate,
		Location:         domain.LocationString(payload.City, payload.State),
		Address:          domain.Address{City: payload.City, State: payload.State, Country: payload.Country},
		DeliveryEstimate: payload.ExpectedDeliveryDate,
		Carrier:          domain.CarrierUSPS,
	}
}

// ValidateAddress is a placeholder until USPS API credentials are available.
func (a *Adapter) ValidateAddress(_ context.Context, _ domain.Address) (*domain.AddressValidation, error) {
	a.log.Warn().Msg("USPS address validation not yet implemented")
	return nil, nil
}

// GetEstimatedDelivery is a placeholder until USPS API credentials are available.
func (a *Adapter) GetEstimatedDelivery(_ context.Context, _, _ domain.Address) (*domain.TransitEstimate, error) {
	a.log.Warn().Msg("USPS estimated delivery not yet implemented")
	return nil, nil
}
