package domain

import "errors"

// Carrier identifies a shipping company by its tracking-number vocabulary.
type Carrier string

const (
	CarrierUPS  Carrier = "UPS"
	CarrierUSPS Carrier = "USPS"
	CarrierDHL  Carrier = "DHL"
	// CarrierFedEx appears in classification vocabulary only; no adapter exists.
	CarrierFedEx   Carrier = "FEDEX"
	CarrierUnknown Carrier = "UNKNOWN"
)

// Sentinel statuses written into a TrackingRecord when a carrier query cannot
// produce real data. They surface verbatim in the tracking sheet.
const (
	StatusAPIError      = "API Error"
	StatusError         = "Error"
	StatusNotConfigured = "API Not Configured"
	StatusUnknown       = "Unknown"
)

var ErrNoAdapter = errors.New("no adapter available for carrier")
var ErrNotConfigured = errors.New("carrier API not configured")

// Supported reports whether an adapter implementation exists for the carrier.
// FedEx is detectable but not supported; Unknown is handled by the factory's
// default policy instead.
func (c Carrier) Supported() bool {
	switch c {
	case CarrierUPS, CarrierUSPS, CarrierDHL:
		return true
	}
	return false
}

func (c Carrier) String() string {
	return string(c)
}
