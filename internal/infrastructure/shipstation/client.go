// Package shipstation reads shipments from the ShipStation v2 API. It
// exists only to seed the tracking sheet: the list endpoint is paged,
// cancelled and voided shipments are dropped, and tracking numbers are
// pulled from the packages[] array with shipment-level fallbacks.
package shipstation

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

const (
	defaultBaseURL  = "https://api.shipstation.com/v2"
	defaultPageSize = 100
	maxPages        = 5

	defaultTimeout = 10 * time.Second
)

// Config carries the ShipStation credentials and endpoint override.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client is a minimal ShipStation v2 API client.
type Client struct {
	cfg    Config
	client *http.Client
	log    zerolog.Logger
}

// NewClient creates a ShipStation client from config.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log.With().Str("source", "shipstation").Logger(),
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool { return c.cfg.APIKey != "" }

// Shipment is the subset of a ShipStation v2 shipment this system reads.
type Shipment struct {
	ShipmentID     string    `json:"shipment_id"`
	ShipmentStatus string    `json:"shipment_status"`
	CarrierID      string    `json:"carrier_id"`
	ServiceCode    string    `json:"service_code"`
	Voided         bool      `json:"voided"`
	Packages       []Package `json:"packages"`
	ShipTo         ShipTo    `json:"ship_to"`
}

// Package is one parcel within a shipment.
type Package struct {
	ShipmentPackageID string `json:"shipment_package_id"`
	TrackingNumber    string `json:"tracking_number"`
}

// ShipTo is the recipient address block of a shipment.
type ShipTo struct {
	Name         string `json:"name"`
	AddressLine1 string `json:"address_line1"`
	CityLocality string `json:"city_locality"`
	StateProv    string `json:"state_province"`
	PostalCode   string `json:"postal_code"`
	CountryCode  string `json:"country_code"`
}

type listResponse struct {
	Shipments []Shipment `json:"shipments"`
	Pages     int        `json:"pages"`
}

// ListShipments pages through shipments created since the cutoff, dropping
// cancelled and voided ones. Paging stops at maxPages or the final page,
// whichever comes first.
func (c *Client) ListShipments(ctx context.Context, since time.Time) ([]Shipment, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("shipstation: API key not set")
	}

	var all []Shipment
	for page := 1; page <= maxPages; page++ {
		c.log.Info().Int("page", page).Msg("fetching shipments")

		resp, err := c.listPage(ctx, since, page)
		if err != nil {
			return nil, err
		}
		if len(resp.Shipments) == 0 {
			break
		}
		for _, s := range resp.Shipments {
			if s.ShipmentStatus == "cancelled" || s.Voided {
				continue
			}
			all = append(all, s)
		}
		if page >= resp.Pages {
			break
		}
	}
	return all, nil
}

func (c *Client) listPage(ctx context.Context, since time.Time, page int) (*listResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/shipments", nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	q.Set("created_at_start", since.Format("2006-01-02"))
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(defaultPageSize))
	req.URL.RawQuery = q.Encode()

	req.Header.Set("API-Key", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("shipstation: list shipments: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("shipstation: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("shipstation: list shipments: status %d: %s", resp.StatusCode, body)
	}

	var parsed listResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("shipstation: decode response: %w", err)
	}
	return &parsed, nil
}

// TrackingNumbers extracts the tracking numbers from a shipment's packages.
// Packages without one are skipped; there is nothing to track yet for a
// label that has not been assigned a number.
func (s Shipment) TrackingNumbers() []string {
	var numbers []string
	for _, pkg := range s.Packages {
		if pkg.TrackingNumber != "" {
			numbers = append(numbers, pkg.TrackingNumber)
		}
	}
	return numbers
}
