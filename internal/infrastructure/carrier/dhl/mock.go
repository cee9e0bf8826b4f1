package dhl

import (
	"context"
	"math/rand"
	"time"

	"github.com/goccy/go-json"
)

// Seven-stage DHL status progression, earliest to latest.
var mockStatuses = []string{
	"Shipment picked up",
	"Processed at DHL Location",
	"Departed Facility",
	"In Transit",
	"Arrived at Delivery Facility",
	"With Delivery Courier",
	"Delivered",
}

var mockCities = []string{"Berlin", "Frankfurt", "London", "Paris", "Madrid", "Rome", "Amsterdam"}
var mockCountries = []string{"Germany", "Germany", "United Kingdom", "France", "Spain", "Italy", "Netherlands"}
var mockCountryCodes = []string{"DE", "DE", "GB", "FR", "ES", "IT", "NL"}

// MockSource synthesizes DHL shipment payloads in the real wire shape until
// the live tracking API is wired in.
type MockSource struct {
	rng *rand.Rand
	now func() time.Time
}

// NewMockSource returns a time-seeded mock source.
func NewMockSource() *MockSource {
	return &MockSource{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
}

const isoLayout = "2006-01-02T15:04:05"

// Fetch builds a shipments[] payload with a random 1-5 day delivery horizon,
// a status chosen from the progression accordingly, and a random European
// destination.
func (m *MockSource) Fetch(_ context.Context, trackingNumber string) ([]byte, error) {
	now := m.now()
	deliveryDays := m.rng.Intn(5) + 1
	deliveryDate := now.AddDate(0, 0, deliveryDays)

	var status string
	switch {
	case deliveryDays <= 0:
		status = "Delivered"
	case deliveryDays == 1:
		status = "With Delivery Courier"
	default:
		idx := 6 - deliveryDays
		if idx > 5 {
			idx = 5
		}
		status = mockStatuses[idx]
	}

	statusCode := "transit"
	if status == "Delivered" {
		statusCode = "delivered"
	}

	lastUpdate := now.Format(isoLayout)
	expectedDelivery := deliveryDate.Format(isoLayout)

	i := m.rng.Intn(len(mockCities))
	city, country, countryCode := mockCities[i], mockCountries[i], mockCountryCodes[i]

	payload := map[string]any{
		"shipments": []map[string]any{{
			"id":      trackingNumber,
			"service": "express",
			"origin": map[string]any{
				"address": map[string]any{
					"city":        "Leipzig",
					"country":     "Germany",
					"countryCode": "DE",
				},
			},
			"destination": map[string]any{
				"address": map[string]any{
					"city":        city,
					"country":     country,
					"countryCode": countryCode,
				},
			},
			"status": map[string]any{
				"timestamp":   lastUpdate,
				"statusCode":  statusCode,
				"status":      status,
				"description": status,
			},
			"estimatedDeliveryTimeframe": map[string]any{
				"estimatedFrom":    expectedDelivery,
				"estimatedThrough": expectedDelivery,
			},
			"events": []map[string]any{{
				"timestamp":   lastUpdate,
				"statusCode":  statusCode,
				"status":      status,
				"description": status,
				"location": map[string]any{
					"city":        city,
					"country":     country,
					"countryCode": countryCode,
				},
			}},
		}},
	}
	return json.Marshal(payload)
}
