package ups

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/parcelwatch/tracking-system/internal/core/domain"
)

func newTestAdapter(t *testing.T, handler http.Handler) (*Adapter, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		OAuthURL:     srv.URL + "/security/v1/oauth/token",
		TrackURL:     srv.URL + "/api/track/v1/details/",
		AddressURL:   srv.URL + "/api/addressvalidation/v1/1",
		TransitURL:   srv.URL + "/api/shipments/v1/transittimes",
	}, zerolog.Nop()), srv
}

func oauthOK(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"access_token": "tok-123", "expires_in": "14399"}`))
}

func TestAdapter_GetTrackingInfo(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/security/v1/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "test-client" || pass != "test-secret" {
			t.Errorf("unexpected basic auth: %q %q", user, pass)
		}
		oauthOK(w)
	})
	mux.HandleFunc("/api/track/v1/details/", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("unexpected authorization header: %q", got)
		}
		if r.Header.Get("transId") == "" {
			t.Error("missing transId header")
		}
		if got := r.URL.Query().Get("locale"); got != "en_US" {
			t.Errorf("unexpected locale: %q", got)
		}
		_, _ = w.Write([]byte(fullTrackingPayload))
	})

	adapter, _ := newTestAdapter(t, mux)
	record := adapter.GetTrackingInfo(context.Background(), "1Z999AA1X123456789")

	if record.Status != "In Transit" {
		t.Fatalf("unexpected status: %q", record.Status)
	}
	if record.Carrier != domain.CarrierUPS {
		t.Fatalf("unexpected carrier: %s", record.Carrier)
	}
	if record.Location != "Louisville, KY, US" {
		t.Fatalf("unexpected location: %q", record.Location)
	}
	if len(record.RawPayload) == 0 {
		t.Fatal("expected raw payload to be retained")
	}
}

func TestAdapter_GetTrackingInfo_TokenCached(t *testing.T) {
	var tokenCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/security/v1/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls.Add(1)
		oauthOK(w)
	})
	mux.HandleFunc("/api/track/v1/details/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(fullTrackingPayload))
	})

	adapter, _ := newTestAdapter(t, mux)
	adapter.GetTrackingInfo(context.Background(), "1Z999AA1X123456789")
	adapter.GetTrackingInfo(context.Background(), "1Z999AA1X123456789")

	if got := tokenCalls.Load(); got != 1 {
		t.Fatalf("expected one token request, got %d", got)
	}
}

func TestAdapter_GetTrackingInfo_APIError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/security/v1/oauth/token", func(w http.ResponseWriter, r *http.Request) { oauthOK(w) })
	mux.HandleFunc("/api/track/v1/details/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"response": {"errors": [{"code": "500"}]}}`))
	})

	adapter, _ := newTestAdapter(t, mux)
	record := adapter.GetTrackingInfo(context.Background(), "1Z999AA1X123456789")

	if record.Status != domain.StatusAPIError {
		t.Fatalf("expected %q status, got %q", domain.StatusAPIError, record.Status)
	}
}

func TestAdapter_GetTrackingInfo_MalformedBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/security/v1/oauth/token", func(w http.ResponseWriter, r *http.Request) { oauthOK(w) })
	mux.HandleFunc("/api/track/v1/details/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"trackResponse": {"shipment": []}}`))
	})

	adapter, _ := newTestAdapter(t, mux)
	record := adapter.GetTrackingInfo(context.Background(), "1Z999AA1X123456789")

	// Empty shipment data degrades to an all-empty record, never a panic.
	if record.Status != "" {
		t.Fatalf("expected empty status, got %q", record.Status)
	}
	if record.Carrier != domain.CarrierUPS {
		t.Fatalf("unexpected carrier: %s", record.Carrier)
	}
}

func TestAdapter_GetTrackingInfo_NotConfigured(t *testing.T) {
	adapter := New(Config{}, zerolog.Nop())
	record := adapter.GetTrackingInfo(context.Background(), "1Z999AA1X123456789")

	if record.Status != domain.StatusAPIError {
		t.Fatalf("expected %q status, got %q", domain.StatusAPIError, record.Status)
	}
}

func TestAdapter_ValidateAddress(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/security/v1/oauth/token", func(w http.ResponseWriter, r *http.Request) { oauthOK(w) })
	mux.HandleFunc("/api/addressvalidation/v1/1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"XAVResponse": {"ValidAddressIndicator": {}}}`))
	})

	adapter, _ := newTestAdapter(t, mux)
	result, err := adapter.ValidateAddress(context.Background(), domain.Address{
		Street: "123 Main St", City: "Louisville", State: "KY", PostalCode: "40202",
	})
	if err != nil {
		t.Fatalf("ValidateAddress returned error: %v", err)
	}
	if result == nil || !result.Valid {
		t.Fatalf("expected valid result, got %+v", result)
	}
}

func TestAdapter_ValidateAddress_SparseAddress(t *testing.T) {
	adapter := New(Config{ClientID: "id", ClientSecret: "secret"}, zerolog.Nop())

	// Street alone is not enough; no token or network call happens.
	result, err := adapter.ValidateAddress(context.Background(), domain.Address{Street: "123 Main St"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if result != nil {
		t.Fatalf("expected nil result, got %+v", result)
	}
}

func TestAdapter_GetEstimatedDelivery_MissingPostalCodes(t *testing.T) {
	adapter := New(Config{ClientID: "id", ClientSecret: "secret"}, zerolog.Nop())

	result, err := adapter.GetEstimatedDelivery(context.Background(),
		domain.Address{City: "Austin"}, domain.Address{City: "Louisville"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if result != nil {
		t.Fatalf("expected nil result, got %+v", result)
	}
}

func TestAdapter_GetEstimatedDelivery(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/security/v1/oauth/token", func(w http.ResponseWriter, r *http.Request) { oauthOK(w) })
	mux.HandleFunc("/api/shipments/v1/transittimes", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"emsResponse": {"services": [{"serviceLevel": {"code": "GND", "description": "UPS Ground"}, "deliveryDate": "2025-04-22", "businessTransitDays": 3}]}}`))
	})

	adapter, _ := newTestAdapter(t, mux)
	estimate, err := adapter.GetEstimatedDelivery(context.Background(),
		domain.Address{PostalCode: "78701"}, domain.Address{PostalCode: "40202"})
	if err != nil {
		t.Fatalf("GetEstimatedDelivery returned error: %v", err)
	}
	if len(estimate.Services) != 1 || estimate.Services[0].Code != "GND" {
		t.Fatalf("unexpected estimate: %+v", estimate)
	}
}

func TestMaskCredential(t *testing.T) {
	if got := maskCredential("abcdefgh"); got != "abcd****" {
		t.Fatalf("maskCredential = %q", got)
	}
	if got := maskCredential("ab"); got != "****" {
		t.Fatalf("maskCredential short = %q", got)
	}
}
