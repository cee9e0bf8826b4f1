package domain

import "strings"

// Address is a postal address used both as validation input and as the
// normalized output of a tracking parse. Passed by value; never owned.
type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// HasValidationFields reports whether enough of the address is present to be
// worth a paid validation call: any of postal code, city, or state.
func (a Address) HasValidationFields() bool {
	return a.PostalCode != "" || a.City != "" || a.State != ""
}

// TrackingRecord is the carrier-agnostic representation of one tracking query.
// Every field except Carrier is optional: an empty value means "not extracted",
// never an error. Sentinel statuses (StatusAPIError etc.) encode failures.
type TrackingRecord struct {
	// RawPayload is the unmodified carrier response body, kept for diagnostics.
	RawPayload []byte `json:"raw_payload,omitempty"`
	// Status is the human-readable package status, or a sentinel status.
	Status string `json:"status,omitempty"`
	// LastUpdate is a human-readable timestamp of the latest activity.
	LastUpdate string `json:"last_update,omitempty"`
	// Location is the "City, State, Country" form of the latest activity.
	Location string `json:"location,omitempty"`
	// Address is the destination address extracted from the payload.
	Address Address `json:"address,omitempty"`
	// DeliveryEstimate is a human-readable delivery date or window, if any.
	DeliveryEstimate string `json:"delivery_estimate,omitempty"`
	// Carrier names the adapter that produced this record. Always set.
	Carrier Carrier `json:"carrier"`
}

// ErrorRecord builds a record carrying only a sentinel status, used by
// adapters to honour the fail-soft contract.
func ErrorRecord(carrier Carrier, status string) *TrackingRecord {
	return &TrackingRecord{Status: status, Carrier: carrier}
}

// AddressValidation is the normalized result of a carrier address check.
type AddressValidation struct {
	Carrier Carrier `json:"carrier"`
	// Valid reports whether the carrier recognised the address.
	Valid bool `json:"valid"`
	// Candidates lists corrected/alternative addresses the carrier proposed.
	Candidates []Address `json:"candidates,omitempty"`
	// RawPayload is the unmodified carrier response body.
	RawPayload []byte `json:"raw_payload,omitempty"`
}

// TransitEstimate is the normalized result of a carrier time-in-transit query.
type TransitEstimate struct {
	Carrier Carrier `json:"carrier"`
	// Services lists the offered service levels with their delivery estimates.
	Services []TransitService `json:"services,omitempty"`
	// RawPayload is the unmodified carrier response body.
	RawPayload []byte `json:"raw_payload,omitempty"`
}

// TransitService is one service level in a transit-time response.
type TransitService struct {
	Code         string `json:"code,omitempty"`
	Description  string `json:"description,omitempty"`
	DeliveryDate string `json:"delivery_date,omitempty"`
	DeliveryTime string `json:"delivery_time,omitempty"`
	BusinessDays int    `json:"business_days,omitempty"`
}

// LocationString joins the non-empty parts in "city, state, country" order,
// or returns StatusUnknown when all parts are empty.
func LocationString(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return StatusUnknown
	}
	return strings.Join(kept, ", ")
}
