// Package carrier wires the concrete per-carrier adapters behind the
// AdapterFactory port.
package carrier

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/parcelwatch/tracking-system/internal/core/detector"
	"github.com/parcelwatch/tracking-system/internal/core/domain"
	"github.com/parcelwatch/tracking-system/internal/core/ports"
	"github.com/parcelwatch/tracking-system/internal/infrastructure/carrier/dhl"
	"github.com/parcelwatch/tracking-system/internal/infrastructure/carrier/ups"
	"github.com/parcelwatch/tracking-system/internal/infrastructure/carrier/usps"
)

// Factory resolves carrier identities to adapter instances. Adapters are
// constructed once and reused, so the UPS token cache survives across calls
// within one batch run.
type Factory struct {
	adapters map[domain.Carrier]ports.CarrierAPI
	log      zerolog.Logger
}

// Config aggregates all per-carrier credentials.
type Config struct {
	UPS  ups.Config
	USPS usps.Config
	DHL  dhl.Config
}

// NewFactory builds the factory with one adapter per supported carrier. The
// USPS and DHL mock sources are used until their live APIs are wired in.
func NewFactory(cfg Config, log zerolog.Logger) *Factory {
	return &Factory{
		adapters: map[domain.Carrier]ports.CarrierAPI{
			domain.CarrierUPS:  ups.New(cfg.UPS, log),
			domain.CarrierUSPS: usps.New(cfg.USPS, nil, log),
			domain.CarrierDHL:  dhl.New(cfg.DHL, nil, log),
		},
		log: log,
	}
}

// ForCarrier returns the adapter for a carrier. Unknown or empty identities
// fall back to UPS — a documented default policy, logged on every hit.
// Identities with no implementation (FedEx) return domain.ErrNoAdapter;
// callers treat that as a skip, not a crash.
func (f *Factory) ForCarrier(carrier domain.Carrier) (ports.CarrierAPI, error) {
	if carrier == "" || carrier == domain.CarrierUnknown {
		f.log.Warn().Msg("unknown carrier, defaulting to UPS")
		carrier = domain.CarrierUPS
	}
	adapter, ok := f.adapters[carrier]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoAdapter, carrier)
	}
	return adapter, nil
}

// ForTrackingNumber classifies the tracking number and resolves its adapter.
func (f *Factory) ForTrackingNumber(trackingNumber string) (ports.CarrierAPI, error) {
	return f.ForCarrier(detector.DetectCarrier(trackingNumber))
}
