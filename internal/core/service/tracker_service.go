package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/parcelwatch/tracking-system/internal/core/detector"
	"github.com/parcelwatch/tracking-system/internal/core/domain"
	"github.com/parcelwatch/tracking-system/internal/core/ports"
	"github.com/parcelwatch/tracking-system/internal/metrics"
)

const defaultRowDelay = time.Second

// TrackerOptions tunes the batch behaviour.
type TrackerOptions struct {
	// Origin is the shipper's address, used for time-in-transit queries.
	Origin domain.Address
	// RowDelay is the pause between sheet rows, respecting third-party
	// rate limits. Defaults to one second.
	RowDelay time.Duration
}

type trackerService struct {
	factory  ports.AdapterFactory
	sheet    ports.SheetStore
	cache    ports.TrackingCache // nil disables caching
	origin   domain.Address
	rowDelay time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

// NewTrackerService returns a TrackerService. sheet may be nil when only the
// single-lookup path is needed (the HTTP API); cache may be nil to disable
// result caching.
func NewTrackerService(
	factory ports.AdapterFactory,
	sheet ports.SheetStore,
	cache ports.TrackingCache,
	opts TrackerOptions,
	log zerolog.Logger,
) ports.TrackerService {
	delay := opts.RowDelay
	if delay <= 0 {
		delay = defaultRowDelay
	}
	return &trackerService{
		factory:  factory,
		sheet:    sheet,
		cache:    cache,
		origin:   opts.Origin,
		rowDelay: delay,
		now:      time.Now,
		log:      log,
	}
}

// Track resolves one tracking number to a standardized record.
func (s *trackerService) Track(ctx context.Context, trackingNumber string) (*domain.TrackingRecord, error) {
	normalized := detector.Normalize(trackingNumber)

	if cached := s.cacheGet(ctx, normalized); cached != nil {
		return cached, nil
	}

	adapter, err := s.factory.ForTrackingNumber(normalized)
	if err != nil {
		return nil, err
	}

	start := s.now()
	record := adapter.GetTrackingInfo(ctx, normalized)
	metrics.CarrierCallDuration.WithLabelValues(adapter.Name().String(), "tracking").Observe(s.now().Sub(start).Seconds())
	metrics.CarrierCallsTotal.WithLabelValues(adapter.Name().String(), "tracking", callOutcome(record.Status)).Inc()

	s.cacheSet(ctx, normalized, record)
	return record, nil
}

// ValidateAddress runs an address through the named carrier's validation API.
func (s *trackerService) ValidateAddress(ctx context.Context, carrier domain.Carrier, addr domain.Address) (*domain.AddressValidation, error) {
	adapter, err := s.factory.ForCarrier(carrier)
	if err != nil {
		return nil, err
	}
	result, err := adapter.ValidateAddress(ctx, addr)
	outcome := "ok"
	switch {
	case err != nil:
		outcome = "error"
	case result == nil:
		outcome = "skipped"
	}
	metrics.CarrierCallsTotal.WithLabelValues(adapter.Name().String(), "address_validation", outcome).Inc()
	return result, err
}

// Run performs one sequential pass over the tracking sheet: one adapter call
// chain per row (tracking → address validation → transit estimate), with a
// fixed delay between rows. A failing row is logged, counted, and never
// stops the pass.
func (s *trackerService) Run(ctx context.Context) (*ports.RunSummary, error) {
	start := s.now()
	defer func() {
		metrics.BatchRunDuration.Observe(s.now().Sub(start).Seconds())
	}()

	if err := s.sheet.EnsureHeader(ctx); err != nil {
		return nil, fmt.Errorf("batch run: %w", err)
	}
	rows, err := s.sheet.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("batch run: %w", err)
	}

	summary := &ports.RunSummary{}
	var runErr *multierror.Error

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.RowsSeen++

		trackingNumber := strings.TrimSpace(row.TrackingNumber)
		if trackingNumber == "" {
			s.log.Debug().Int("row", row.Index).Msg("empty tracking number, skipping")
			summary.RowsSkipped++
			metrics.BatchRowsTotal.WithLabelValues("skipped").Inc()
			continue
		}

		if err := s.processRow(ctx, row.Index, trackingNumber); err != nil {
			s.log.Error().Err(err).Int("row", row.Index).Str("tracking_number", trackingNumber).Msg("row processing failed")
			runErr = multierror.Append(runErr, fmt.Errorf("row %d (%s): %w", row.Index, trackingNumber, err))
			metrics.BatchRowsTotal.WithLabelValues("error").Inc()
		} else {
			summary.RowsUpdated++
			metrics.BatchRowsTotal.WithLabelValues("updated").Inc()
		}

		// Pace carrier calls between rows; skip the pause after the last one.
		if i < len(rows)-1 {
			select {
			case <-ctx.Done():
				return summary, ctx.Err()
			case <-time.After(s.rowDelay):
			}
		}
	}

	summary.Err = runErr.ErrorOrNil()
	s.log.Info().
		Int("rows_seen", summary.RowsSeen).
		Int("rows_updated", summary.RowsUpdated).
		Int("rows_skipped", summary.RowsSkipped).
		Msg("batch pass completed")
	return summary, nil
}

// processRow runs the full adapter call chain for one sheet row.
func (s *trackerService) processRow(ctx context.Context, rowIndex int, trackingNumber string) error {
	carrier := detector.DetectCarrier(trackingNumber)

	adapter, err := s.factory.ForCarrier(carrier)
	if err != nil {
		// No adapter for a detected carrier: record the carrier, skip the rest.
		s.log.Warn().Str("carrier", carrier.String()).Msg("no adapter available, recording carrier only")
		return s.sheet.UpdateRow(ctx, ports.SheetUpdate{Index: rowIndex, Carrier: carrier.String()})
	}

	record, err := s.Track(ctx, trackingNumber)
	if err != nil {
		return err
	}

	update := ports.SheetUpdate{
		Index:             rowIndex,
		Carrier:           record.Carrier.String(),
		Status:            record.Status,
		Location:          record.Location,
		EstimatedDelivery: record.DeliveryEstimate,
	}
	if record.LastUpdate != "" {
		update.LastUpdate = fmt.Sprintf("%s (updated %s)", record.LastUpdate, s.now().Format("2006-01-02 15:04:05"))
	}

	if record.Address.HasValidationFields() {
		validation, err := adapter.ValidateAddress(ctx, record.Address)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("tracking_number", trackingNumber).Msg("address validation failed")
			update.ValidatedAddress = "Address validation failed"
		case validation != nil && validation.Valid:
			update.ValidatedAddress = fmt.Sprintf("Address validated by %s", record.Carrier)
		case validation != nil:
			update.ValidatedAddress = "Address validation failed"
		}

		// Only ask for a transit estimate when tracking itself offered none.
		if record.DeliveryEstimate == "" && s.origin.PostalCode != "" && record.Address.PostalCode != "" {
			estimate, err := adapter.GetEstimatedDelivery(ctx, s.origin, record.Address)
			outcome := "ok"
			switch {
			case err != nil:
				s.log.Warn().Err(err).Str("tracking_number", trackingNumber).Msg("time-in-transit query failed")
				outcome = "error"
			case estimate == nil:
				outcome = "skipped"
			default:
				update.EstimatedDelivery = transitSummary(record.Carrier, estimate)
			}
			metrics.CarrierCallsTotal.WithLabelValues(adapter.Name().String(), "time_in_transit", outcome).Inc()
		}
	}

	return s.sheet.UpdateRow(ctx, update)
}

// transitSummary picks the first service's delivery date, falling back to a
// carrier attribution when the response carried no usable date.
func transitSummary(carrier domain.Carrier, estimate *domain.TransitEstimate) string {
	for _, svc := range estimate.Services {
		if svc.DeliveryDate != "" {
			return svc.DeliveryDate
		}
	}
	return fmt.Sprintf("Estimated by %s", carrier)
}

func (s *trackerService) cacheGet(ctx context.Context, trackingNumber string) *domain.TrackingRecord {
	if s.cache == nil {
		return nil
	}
	record, err := s.cache.Get(ctx, trackingNumber)
	if err != nil {
		s.log.Warn().Err(err).Str("tracking_number", trackingNumber).Msg("cache lookup failed")
		return nil
	}
	if record == nil {
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
		return nil
	}
	metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
	return record
}

// cacheSet stores successful lookups only; sentinel-status records would pin
// a transient failure for the whole TTL.
func (s *trackerService) cacheSet(ctx context.Context, trackingNumber string, record *domain.TrackingRecord) {
	if s.cache == nil || isSentinelStatus(record.Status) {
		return
	}
	if err := s.cache.Set(ctx, trackingNumber, record); err != nil {
		s.log.Warn().Err(err).Str("tracking_number", trackingNumber).Msg("cache store failed")
	}
}

func isSentinelStatus(status string) bool {
	switch status {
	case domain.StatusAPIError, domain.StatusError, domain.StatusNotConfigured:
		return true
	}
	return false
}

func callOutcome(status string) string {
	switch status {
	case domain.StatusAPIError, domain.StatusError:
		return "error"
	case domain.StatusNotConfigured:
		return "not_configured"
	}
	return "ok"
}
