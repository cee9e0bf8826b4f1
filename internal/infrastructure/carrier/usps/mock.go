package usps

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/goccy/go-json"
)

// Six-stage USPS status progression, earliest to latest.
var mockStatuses = []string{
	"Accepted at USPS Origin Facility",
	"Departed USPS Regional Facility",
	"Arrived at USPS Regional Facility",
	"In Transit to Next Facility",
	"Out for Delivery",
	"Delivered, In/At Mailbox",
}

var mockCities = []string{"New York", "Chicago", "Los Angeles", "Houston", "Miami", "Denver", "Seattle"}
var mockStates = []string{"NY", "IL", "CA", "TX", "FL", "CO", "WA"}

// MockSource synthesizes USPS tracking payloads until the live TrackV2 API
// is wired in. Randomness lives here, never in the adapter's parsing logic.
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

// Fetch builds a payload with a random 1-5 day delivery horizon, a status
// chosen from the progression accordingly, and a random city/state pair.
func (m *MockSource) Fetch(_ context.Context, trackingNumber string) ([]byte, error) {
	now := m.now()
	deliveryDays := m.rng.Intn(5) + 1
	deliveryDate := now.AddDate(0, 0, deliveryDays)

	var status string
	switch {
	case deliveryDays <= 0:
		status = mockStatuses[len(mockStatuses)-1]
	case deliveryDays == 1:
		status = "Out for Delivery"
	default:
		idx := 5 - deliveryDays
		if idx > 3 {
			idx = 3
		}
		status = mockStatuses[idx]
	}

	lastUpdate := now.Format("January 2, 2006 at 3:04 PM")
	expectedDelivery := deliveryDate.Format("January 2, 2006")

	i := m.rng.Intn(len(mockCities))
	city, state := mockCities[i], mockStates[i]

	statusCategory := "In Transit"
	if deliveryDays <= 0 {
		statusCategory = "Delivered"
	}

	summary := fmt.Sprintf("%s at %s in %s, %s", status, lastUpdate, city, state)
	return json.Marshal(trackingPayload{
		TrackingNumber:       trackingNumber,
		Status:               status,
		StatusCategory:       statusCategory,
		StatusSummary:        status,
		ExpectedDeliveryDate: expectedDelivery,
		Summary:              summary,
		Events:               []string{summary},
		City:                 city,
		State:                state,
		Country:              "US",
		LastUpdate:           lastUpdate,
	})
}
