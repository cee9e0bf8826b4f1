package dhl

import (
	"errors"
	"time"

	"github.com/goccy/go-json"

	"github.com/parcelwatch/tracking-system/internal/core/domain"
)

var errNoShipments = errors.New("tracking response has no shipments")

// Wire types for the DHL shipment payload. Only extracted fields declared.

type trackingResponse struct {
	Shipments []wireShipment `json:"shipments"`
}

type wireShipment struct {
	ID     string `json:"id"`
	Status struct {
		Timestamp   string `json:"timestamp"`
		StatusCode  string `json:"statusCode"`
		Status      string `json:"status"`
		Description string `json:"description"`
	} `json:"status"`
	Events                     []wireEvent `json:"events"`
	EstimatedDeliveryTimeframe struct {
		EstimatedFrom    string `json:"estimatedFrom"`
		EstimatedThrough string `json:"estimatedThrough"`
	} `json:"estimatedDeliveryTimeframe"`
}

type wireEvent struct {
	Timestamp   string `json:"timestamp"`
	Description string `json:"description"`
	Location    struct {
		City        string `json:"city"`
		Country     string `json:"country"`
		CountryCode string `json:"countryCode"`
	} `json:"location"`
}

type parsedTracking struct {
	Status           string
	LastUpdate       string
	Location         string
	Address          domain.Address
	DeliveryEstimate string
}

// parseTrackingResponse normalizes a DHL payload: status.description, the
// most recent event's location, and estimatedDeliveryTimeframe.
func parseTrackingResponse(body []byte) (parsedTracking, error) {
	var resp trackingResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return parsedTracking{}, err
	}
	if len(resp.Shipments) == 0 {
		return parsedTracking{}, errNoShipments
	}
	shipment := resp.Shipments[0]

	var out parsedTracking
	out.Status = shipment.Status.Description
	if out.Status == "" {
		out.Status = domain.StatusUnknown
	}
	out.LastUpdate = formatISODate(shipment.Status.Timestamp)

	out.Location = domain.StatusUnknown
	if len(shipment.Events) > 0 {
		loc := shipment.Events[0].Location // events are newest first
		out.Location = domain.LocationString(loc.City, loc.Country)
		out.Address = domain.Address{City: loc.City, Country: loc.Country}
	}

	if through := shipment.EstimatedDeliveryTimeframe.EstimatedThrough; through != "" {
		out.DeliveryEstimate = formatISODate(through)
	}
	return out, nil
}

// isoLayouts are tried in order when parsing DHL timestamps; the API emits
// both zoned and naive ISO-8601 forms.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// formatISODate converts an ISO-8601 timestamp to "Month Day, Year at
// H:MM AM/PM". Missing or malformed input degrades to "Unknown".
func formatISODate(dateStr string) string {
	if dateStr == "" {
		return domain.StatusUnknown
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t.Format("January 2, 2006 at 3:04 PM")
		}
	}
	return domain.StatusUnknown
}
