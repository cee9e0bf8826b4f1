package ports

import (
	"context"

	"github.com/parcelwatch/tracking-system/internal/core/domain"
)

// TrackingCache stores the most recent standardized record per tracking
// number so repeated lookups within the TTL skip the carrier round trip.
// Implementations return (nil, nil) on a miss.
type TrackingCache interface {
	Get(ctx context.Context, trackingNumber string) (*domain.TrackingRecord, error)
	Set(ctx context.Context, trackingNumber string, record *domain.TrackingRecord) error
}
