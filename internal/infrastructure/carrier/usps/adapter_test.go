package usps

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/parcelwatch/tracking-system/internal/core/domain"
)

type stubSource struct {
	body []byte
	err  error
}

func (s *stubSource) Fetch(_ context.Context, _ string) ([]byte, error) {
	return s.body, s.err
}

func TestAdapter_GetTrackingInfo(t *testing.T) {
	src := &stubSource{body: []byte(`{
		"tracking_number": "9400123456789123456789",
		"status": "In Transit to Next Facility",
		"status_category": "In Transit",
		"expected_delivery_date": "April 22, 2025",
		"city": "Chicago",
		"state": "IL",
		"country": "US",
		"last_update": "April 18, 2025 at 9:51 AM"
	}`)}
	adapter := New(Config{UserID: "user"}, src, zerolog.Nop())

	record := adapter.GetTrackingInfo(context.Background(), "9400123456789123456789")
	if record.Status != "In Transit to Next Facility" {
		t.Fatalf("unexpected status: %q", record.Status)
	}
	if record.Location != "Chicago, IL" {
		t.Fatalf("unexpected location: %q", record.Location)
	}
	if record.DeliveryEstimate != "April 22, 2025" {
		t.Fatalf("unexpected delivery estimate: %q", record.DeliveryEstimate)
	}
	if record.Carrier != domain.CarrierUSPS {
		t.Fatalf("unexpected carrier: %s", record.Carrier)
	}
}

func TestAdapter_GetTrackingInfo_NotConfigured(t *testing.T) {
	adapter := New(Config{}, &stubSource{}, zerolog.Nop())

	record := adapter.GetTrackingInfo(context.Background(), "9400123456789123456789")
	if record.Status != domain.StatusNotConfigured {
		t.Fatalf("expected %q, got %q", domain.StatusNotConfigured, record.Status)
	}
	if record.LastUpdate != "" || record.Location != "" {
		t.Fatalf("expected empty fields, got %+v", record)
	}
}

func TestAdapter_GetTrackingInfo_SourceError(t *testing.T) {
	adapter := New(Config{UserID: "user"}, &stubSource{err: errors.New("boom")}, zerolog.Nop())

	record := adapter.GetTrackingInfo(context.Background(), "9400123456789123456789")
	if record.Status != domain.StatusError {
		t.Fatalf("expected %q, got %q", domain.StatusError, record.Status)
	}
}

func TestAdapter_GetTrackingInfo_MalformedPayload(t *testing.T) {
	adapter := New(Config{UserID: "user"}, &stubSource{body: []byte("not json")}, zerolog.Nop())

	record := adapter.GetTrackingInfo(context.Background(), "9400123456789123456789")
	if record.Status != "" {
		t.Fatalf("expected empty status, got %q", record.Status)
	}
	if string(record.RawPayload) != "not json" {
		t.Fatalf("expected raw payload to be retained")
	}
}

func TestAdapter_GetTrackingInfo_EmptyFieldsDefaultToUnknown(t *testing.T) {
	adapter := New(Config{UserID: "user"}, &stubSource{body: []byte(`{}`)}, zerolog.Nop())

	record := adapter.GetTrackingInfo(context.Background(), "9400123456789123456789")
	if record.Status != domain.StatusUnknown {
		t.Fatalf("expected Unknown status, got %q", record.Status)
	}
	if record.LastUpdate != domain.StatusUnknown {
		t.Fatalf("expected Unknown last update, got %q", record.LastUpdate)
	}
	if record.Location != domain.StatusUnknown {
		t.Fatalf("expected Unknown location, got %q", record.Location)
	}
}

func TestAdapter_Placeholders(t *testing.T) {
	adapter := New(Config{UserID: "user"}, &stubSource{}, zerolog.Nop())

	if v, err := adapter.ValidateAddress(context.Background(), domain.Address{PostalCode: "60601"}); v != nil || err != nil {
		t.Fatalf("ValidateAddress = (%+v, %v), want (nil, nil)", v, err)
	}
	if e, err := adapter.GetEstimatedDelivery(context.Background(), domain.Address{}, domain.Address{}); e != nil || err != nil {
		t.Fatalf("GetEstimatedDelivery = (%+v, %v), want (nil, nil)", e, err)
	}
}

func TestMockSource_Fetch(t *testing.T) {
	fixed := time.Date(2025, time.April, 18, 9, 51, 0, 0, time.UTC)
	src := &MockSource{
		rng: rand.New(rand.NewSource(1)),
		now: func() time.Time { return fixed },
	}
	adapter := New(Config{UserID: "user"}, src, zerolog.Nop())

	record := adapter.GetTrackingInfo(context.Background(), "9400123456789123456789")
	if record.Status == "" || record.Status == domain.StatusUnknown {
		t.Fatalf("expected a synthesized status, got %q", record.Status)
	}
	if record.LastUpdate != "April 18, 2025 at 9:51 AM" {
		t.Fatalf("unexpected last update: %q", record.LastUpdate)
	}
	if record.DeliveryEstimate == "" {
		t.Fatal("expected a delivery estimate")
	}
	if record.Location == domain.StatusUnknown {
		t.Fatal("expected a synthesized location")
	}
}

func TestMockSource_StatusMatchesHorizon(t *testing.T) {
	// The synthesized status must always come from the known progression.
	src := NewMockSource()
	known := make(map[string]bool, len(mockStatuses))
	for _, s := range mockStatuses {
		known[s] = true
	}
	for i := 0; i < 20; i++ {
		body, err := src.Fetch(context.Background(), "9400123456789123456789")
		if err != nil {
			t.Fatalf("Fetch returned error: %v", err)
		}
		adapter := New(Config{UserID: "user"}, &stubSource{body: body}, zerolog.Nop())
		record := adapter.GetTrackingInfo(context.Background(), "9400123456789123456789")
		if !known[record.Status] {
			t.Fatalf("status %q not in the known progression", record.Status)
		}
	}
}
