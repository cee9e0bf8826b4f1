// Package detector classifies raw tracking-number strings into carriers and
// applies carrier-specific display formatting.
//
// Classification is a pure function over a static pattern table. The table is
// ordered: UPS patterns are tried before USPS, and USPS before DHL. The order
// is part of the contract — several numeric formats (9–12 digit strings)
// satisfy more than one carrier's rules, and the first full match wins.
package detector

import (
	"regexp"
	"strings"

	"github.com/parcelwatch/tracking-system/internal/core/domain"
)

// carrierPatterns couples a carrier with its anchored tracking-number rules.
type carrierPatterns struct {
	carrier  domain.Carrier
	patterns []*regexp.Regexp
}

// patternTable is evaluated top to bottom, first full match wins.
var patternTable = []carrierPatterns{
	{
		carrier: domain.CarrierUPS,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`^1Z[0-9A-Z]{16}$`), // standard (1Z + 16 chars)
			regexp.MustCompile(`^T\d{10}$`),        // Mail Innovations
			regexp.MustCompile(`^\d{9}$`),          // alternative (9 digits)
			regexp.MustCompile(`^\d{12}$`),         // Freight
			regexp.MustCompile(`^(H|V|R|U)\d{9}$`), // alternative with prefix
		},
	},
	{
		carrier: domain.CarrierUSPS,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`^9[0-9]{15,21}$`),        // Intelligent Mail (20-22 digits starting with 9)
			regexp.MustCompile(`^[A-Z]{2}[0-9]{9}US$`),   // International (2 letters + 9 digits + US)
			regexp.MustCompile(`^E[A-Z][0-9]{9}US$`),     // International Special Services
			regexp.MustCompile(`^[0-9]{20}$`),            // Intelligent Mail package barcode
			regexp.MustCompile(`^([A-Z]{2})?[0-9]{13}$`), // tracking for certain packages
		},
	},
	{
		carrier: domain.CarrierDHL,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`^[0-9]{10,11}$`),                 // Express (10-11 digits)
			regexp.MustCompile(`^JD[0-9]{18}$`),                  // eCommerce with JD prefix
			regexp.MustCompile(`^[0-9]{4} ?[0-9]{4} ?[0-9]{2}$`), // Express (#### #### ##)
		},
	},
}

var dhlTenDigits = regexp.MustCompile(`^[0-9]{10}$`)

// Normalize trims surrounding whitespace, uppercases, and removes internal
// spaces. Classification and formatting both operate on this form.
func Normalize(raw string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(raw)), " ", "")
}

// DetectCarrier maps a raw tracking-number string to a carrier. Empty input
// and strings matching no pattern both return CarrierUnknown; neither is an
// error.
func DetectCarrier(raw string) domain.Carrier {
	normalized := Normalize(raw)
	if normalized == "" {
		return domain.CarrierUnknown
	}
	for _, entry := range patternTable {
		for _, p := range entry.patterns {
			if p.MatchString(normalized) {
				return entry.carrier
			}
		}
	}
	return domain.CarrierUnknown
}

// FormatTrackingNumber normalizes a tracking number and applies the carrier's
// display rule. When carrier is empty or Unknown it is detected first. Only
// DHL 10-digit numbers have a display form (#### #### ##, space separated);
// everything else returns the normalized string unchanged.
func FormatTrackingNumber(raw string, carrier domain.Carrier) string {
	normalized := Normalize(raw)
	if normalized == "" {
		return normalized
	}
	if carrier == "" || carrier == domain.CarrierUnknown {
		carrier = DetectCarrier(normalized)
	}
	if carrier == domain.CarrierDHL && dhlTenDigits.MatchString(normalized) {
		return normalized[:4] + " " + normalized[4:8] + " " + normalized[8:]
	}
	return normalized
}

// ValidateTrackingNumber reports whether the string matches any known
// carrier pattern.
func ValidateTrackingNumber(raw string) bool {
	return DetectCarrier(raw) != domain.CarrierUnknown
}
