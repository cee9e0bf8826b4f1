package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/parcelwatch/tracking-system/internal/core/domain"
)

const defaultCacheTTL = 15 * time.Minute

// TrackingCache stores the most recent standardized record per tracking
// number, so repeated lookups within the TTL skip the carrier round trip.
// Key format: track:<tracking_number>
type TrackingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTrackingCache creates a TrackingCache wrapping the given Redis client.
// A non-positive TTL falls back to the default.
func NewTrackingCache(client *redis.Client, ttl time.Duration) *TrackingCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &TrackingCache{client: client, ttl: ttl}
}

// Get returns the cached record, or (nil, nil) on a miss.
func (c *TrackingCache) Get(ctx context.Context, trackingNumber string) (*domain.TrackingRecord, error) {
	data, err := c.client.Get(ctx, c.key(trackingNumber)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	var record domain.TrackingRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &record, nil
}

// Set stores a record, expiring after the cache TTL.
func (c *TrackingCache) Set(ctx context.Context, trackingNumber string, record *domain.TrackingRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, c.key(trackingNumber), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *TrackingCache) key(trackingNumber string) string {
	return "track:" + trackingNumber
}
