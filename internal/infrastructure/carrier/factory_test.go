package carrier

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/parcelwatch/tracking-system/internal/core/domain"
)

func TestFactory_ForCarrier(t *testing.T) {
	factory := NewFactory(Config{}, zerolog.Nop())

	for _, carrier := range []domain.Carrier{domain.CarrierUPS, domain.CarrierUSPS, domain.CarrierDHL} {
		adapter, err := factory.ForCarrier(carrier)
		if err != nil {
			t.Fatalf("ForCarrier(%s) returned error: %v", carrier, err)
		}
		if adapter.Name() != carrier {
			t.Fatalf("ForCarrier(%s) resolved %s", carrier, adapter.Name())
		}
	}
}

func TestFactory_ForCarrier_UnknownDefaultsToUPS(t *testing.T) {
	factory := NewFactory(Config{}, zerolog.Nop())

	for _, carrier := range []domain.Carrier{domain.CarrierUnknown, ""} {
		adapter, err := factory.ForCarrier(carrier)
		if err != nil {
			t.Fatalf("ForCarrier(%q) returned error: %v", carrier, err)
		}
		if adapter.Name() != domain.CarrierUPS {
			t.Fatalf("expected UPS fallback, got %s", adapter.Name())
		}
	}
}

func TestFactory_ForCarrier_NoAdapter(t *testing.T) {
	factory := NewFactory(Config{}, zerolog.Nop())

	if _, err := factory.ForCarrier(domain.CarrierFedEx); !errors.Is(err, domain.ErrNoAdapter) {
		t.Fatalf("expected ErrNoAdapter, got %v", err)
	}
}

func TestFactory_ForTrackingNumber(t *testing.T) {
	factory := NewFactory(Config{}, zerolog.Nop())

	tests := []struct {
		trackingNumber string
		want           domain.Carrier
	}{
		{"1Z999AA1X123456789", domain.CarrierUPS},
		{"9400123456789123456789", domain.CarrierUSPS},
		{"1234567890", domain.CarrierDHL},
		{"INVALID123", domain.CarrierUPS}, // unknown falls back to UPS
	}
	for _, tt := range tests {
		adapter, err := factory.ForTrackingNumber(tt.trackingNumber)
		if err != nil {
			t.Fatalf("ForTrackingNumber(%q) returned error: %v", tt.trackingNumber, err)
		}
		if adapter.Name() != tt.want {
			t.Fatalf("ForTrackingNumber(%q) resolved %s, want %s", tt.trackingNumber, adapter.Name(), tt.want)
		}
	}
}

func TestFactory_AdaptersAreReused(t *testing.T) {
	factory := NewFactory(Config{}, zerolog.Nop())

	first, _ := factory.ForCarrier(domain.CarrierUPS)
	second, _ := factory.ForCarrier(domain.CarrierUPS)
	if first != second {
		t.Fatal("expected the same adapter instance across resolutions")
	}
}
