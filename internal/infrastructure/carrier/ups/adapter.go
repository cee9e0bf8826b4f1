// Package ups implements the UPS carrier adapter: OAuth client-credentials
// authentication, tracking, address validation (XAV), and time-in-transit.
package ups

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/parcelwatch/tracking-system/internal/core/domain"
)

const (
	defaultOAuthURL   = "https://onlinetools.ups.com/security/v1/oauth/token"
	defaultTrackURL   = "https://onlinetools.ups.com/api/track/v1/details/"
	defaultAddressURL = "https://onlinetools.ups.com/api/addressvalidation/v1/1"
	defaultTransitURL = "https://onlinetools.ups.com/api/shipments/v1/transittimes"

	defaultTimeout = 10 * time.Second
)

// Config carries the UPS credentials and endpoint overrides. Empty URLs fall
// back to the production endpoints.
type Config struct {
	ClientID     string
	ClientSecret string

	OAuthURL   string
	TrackURL   string
	AddressURL string
	TransitURL string

	// Timeout bounds every outbound call. Defaults to 10s.
	Timeout time.Duration
}

// Adapter talks to the UPS APIs. The OAuth token is cached on the instance
// for its lifetime and never re-checked for expiry; batch runs are short
// enough that the token outlives them.
type Adapter struct {
	cfg    Config
	client *http.Client
	log    zerolog.Logger

	mu          sync.Mutex
	accessToken string
}

// New creates a UPS adapter from config.
func New(cfg Config, log zerolog.Logger) *Adapter {
	if cfg.OAuthURL == "" {
		cfg.OAuthURL = defaultOAuthURL
	}
	if cfg.TrackURL == "" {
		cfg.TrackURL = defaultTrackURL
	}
	if cfg.AddressURL == "" {
		cfg.AddressURL = defaultAddressURL
	}
	if cfg.TransitURL == "" {
		cfg.TransitURL = defaultTransitURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Adapter{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log.With().Str("carrier", "ups").Logger(),
	}
}

func (a *Adapter) Name() domain.Carrier { return domain.CarrierUPS }

// token returns the cached OAuth token, fetching one on first use.
func (a *Adapter) token(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.accessToken != "" {
		return a.accessToken, nil
	}

	if a.cfg.ClientID == "" || a.cfg.ClientSecret == "" {
		return "", domain.ErrNotConfigured
	}
	a.log.Info().Str("client_id", maskCredential(a.cfg.ClientID)).Msg("requesting OAuth token")

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.OAuthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(a.cfg.ClientID, a.cfg.ClientSecret)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("oauth request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("oauth read: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("oauth token: status %d: %s", resp.StatusCode, body)
	}

	var token oauthResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return "", fmt.Errorf("oauth decode: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("oauth token: access_token missing from response")
	}

	a.accessToken = token.AccessToken
	a.log.Info().Str("expires_in", token.ExpiresIn).Msg("obtained OAuth token")
	return a.accessToken, nil
}

// GetTrackingInfo queries UPS tracking for one number. Fail-soft: every
// failure path returns a sentinel-status record with the detail logged.
func (a *Adapter) GetTrackingInfo(ctx context.Context, trackingNumber string) *domain.TrackingRecord {
	token, err := a.token(ctx)
	if err != nil {
		a.log.Error().Err(err).Str("tracking_number", trackingNumber).Msg("no access token, cannot track")
		return domain.ErrorRecord(domain.CarrierUPS, domain.StatusAPIError)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.TrackURL+url.PathEscape(trackingNumber), nil)
	if err != nil {
		a.log.Error().Err(err).Str("tracking_number", trackingNumber).Msg("building tracking request")
		return domain.ErrorRecord(domain.CarrierUPS, domain.StatusError)
	}

	q := req.URL.Query()
	q.Set("locale", "en_US")
	q.Set("returnSignature", "false")
	q.Set("returnMilestones", "false")
	q.Set("returnPOD", "false")
	req.URL.RawQuery = q.Encode()

	transID := "track_" + uuid.NewString()
	a.setHeaders(req, token, transID, "tracking")

	resp, err := a.client.Do(req)
	if err != nil {
		a.log.Error().Err(err).Str("tracking_number", trackingNumber).Msg("tracking request failed")
		return domain.ErrorRecord(domain.CarrierUPS, domain.StatusAPIError)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		a.log.Error().Err(err).Str("tracking_number", trackingNumber).Msg("reading tracking response")
		return domain.ErrorRecord(domain.CarrierUPS, domain.StatusError)
	}
	if resp.StatusCode != http.StatusOK {
		a.log.Error().Int("status_code", resp.StatusCode).Str("tracking_number", trackingNumber).
			Str("body", string(body)).Msg("tracking request rejected")
		return domain.ErrorRecord(domain.CarrierUPS, domain.StatusAPIError)
	}

	parsed, err := parseTrackingResponse(body)
	if err != nil {
		// Parse failures degrade to an all-empty record; callers read absent
		// fields as "unknown", never as a crash signal.
		a.log.Error().Err(err).Str("tracking_number", trackingNumber).Msg("parsing tracking response")
		return &domain.TrackingRecord{RawPayload: body, Carrier: domain.CarrierUPS}
	}

	if parsed.DeliveryEstimate == "" {
		a.log.Debug().Str("tracking_number", trackingNumber).Msg("no delivery estimate in tracking data")
	}

	return &domain.TrackingRecord{
		RawPayload:       body,
		Status:           parsed.Status,
		LastUpdate:       parsed.LastUpdate,
		Location:         parsed.Location,
		Address:          parsed.Address,
		DeliveryEstimate: parsed.DeliveryEstimate,
		Carrier:          domain.CarrierUPS,
	}
}

// ValidateAddress checks an address against the UPS XAV API. Addresses with
// none of postal code, city, or state short-circuit to (nil, nil) without a
// network call.
func (a *Adapter) ValidateAddress(ctx context.Context, addr domain.Address) (*domain.AddressValidation, error) {
	if !addr.HasValidationFields() {
		a.log.Warn().Msg("not enough address information for validation")
		return nil, nil
	}

	token, err := a.token(ctx)
	if err != nil {
		return nil, fmt.Errorf("ups address validation: %w", err)
	}

	country := addr.Country
	if country == "" {
		country = "US"
	}
	payload := xavRequest{XAVRequest: xavRequestBody{
		AddressKeyFormat: addressKeyFormat{
			AddressLine:        addr.Street,
			PoliticalDivision2: addr.City,
			PoliticalDivision1: addr.State,
			PostcodePrimaryLow: addr.PostalCode,
			CountryCode:        country,
		},
		MaximumCandidateListSize: "10",
	}}

	body, err := a.postJSON(ctx, a.cfg.AddressURL, token, "address_"+uuid.NewString(), "addressValidation", payload)
	if err != nil {
		return nil, fmt.Errorf("ups address validation: %w", err)
	}
	return parseValidationResponse(body)
}

// GetEstimatedDelivery queries the UPS time-in-transit API. Both postal codes
// are required; the shipment is dated today with a nominal 1.0 LBS weight
// since real package attributes are not tracked at this layer.
func (a *Adapter) GetEstimatedDelivery(ctx context.Context, origin, destination domain.Address) (*domain.TransitEstimate, error) {
	if origin.PostalCode == "" || destination.PostalCode == "" {
		a.log.Warn().Msg("missing postal code for time-in-transit calculation")
		return nil, nil
	}

	token, err := a.token(ctx)
	if err != nil {
		return nil, fmt.Errorf("ups time in transit: %w", err)
	}

	payload := transitRequest{
		OriginCountryCode:            countryOrUS(origin.Country),
		OriginStateProvince:          origin.State,
		OriginCityName:               origin.City,
		OriginPostalCode:             origin.PostalCode,
		DestinationCountryCode:       countryOrUS(destination.Country),
		DestinationStateProvince:     destination.State,
		DestinationCityName:          destination.City,
		DestinationPostalCode:        destination.PostalCode,
		Weight:                       "1.0",
		WeightUnitOfMeasure:          "LBS",
		ShipmentContentsValue:        "1.0",
		ShipmentContentsCurrencyCode: "USD",
		BillType:                     "03",
		ShipDate:                     time.Now().Format("2006-01-02"),
		NumberOfPackages:             "1",
	}

	body, err := a.postJSON(ctx, a.cfg.TransitURL, token, "time_"+uuid.NewString(), "tracking", payload)
	if err != nil {
		return nil, fmt.Errorf("ups time in transit: %w", err)
	}
	return parseTransitResponse(body)
}

// postJSON issues an authenticated POST and returns the response body, or an
// error for any non-200 outcome.
func (a *Adapter) postJSON(ctx context.Context, endpoint, token, transID, src string, payload any) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	a.setHeaders(req, token, transID, src)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, body)
	}
	return body, nil
}

func (a *Adapter) setHeaders(req *http.Request, token, transID, src string) {
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("transId", transID)
	req.Header.Set("transactionSrc", src)
}

func countryOrUS(country string) string {
	if country == "" {
		return "US"
	}
	return country
}

// maskCredential keeps the first four characters of a secret for log
// correlation and hides the rest.
func maskCredential(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:4] + strings.Repeat("*", len(s)-4)
}
