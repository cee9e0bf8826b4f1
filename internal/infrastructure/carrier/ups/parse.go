package ups

import (
	"errors"
	"strings"

	"github.com/goccy/go-json"

	"github.com/parcelwatch/tracking-system/internal/core/domain"
)

var errEmptyTracking = errors.New("tracking response has no shipment data")

// parsedTracking holds the normalized fields extracted from one UPS tracking
// payload. Every field may be empty; empty means "not extracted".
type parsedTracking struct {
	Status           string
	LastUpdate       string
	Location         string
	Address          domain.Address
	DeliveryEstimate string
}

// parseTrackingResponse normalizes the UPS tracking payload
// (trackResponse.shipment[].package[].activity[]) into flat fields.
func parseTrackingResponse(body []byte) (parsedTracking, error) {
	var resp trackResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return parsedTracking{}, err
	}
	if len(resp.TrackResponse.Shipment) == 0 {
		return parsedTracking{}, errEmptyTracking
	}
	shipment := resp.TrackResponse.Shipment[0]
	if len(shipment.Package) == 0 {
		return parsedTracking{}, errEmptyTracking
	}
	pkg := shipment.Package[0]

	var out parsedTracking

	var activity wireActivity
	if len(pkg.Activity) > 0 {
		activity = pkg.Activity[0]
	}
	out.Status = activity.Status.Description
	if out.Status == "" {
		out.Status = domain.StatusUnknown
	}

	out.LastUpdate = lastUpdateString(activity.Date, activity.Time)

	addr := activity.Location.Address
	out.Location = domain.LocationString(addr.City, addr.StateProvince, addr.Country)

	out.Address = domain.Address{
		Street:     shipment.ShipTo.Address.AddressLine.first(),
		City:       addr.City,
		State:      addr.StateProvince,
		PostalCode: addr.PostalCode,
		Country:    addr.Country,
	}

	out.DeliveryEstimate = deliveryEstimate(pkg, out.Status)
	return out, nil
}

// lastUpdateString renders the activity date/time as a human-readable pair.
func lastUpdateString(date, timeStr string) string {
	formattedDate := formatDate(date)
	formattedTime := formatTime(timeStr)
	switch {
	case formattedDate != "" && formattedTime != "":
		return formattedDate + " at " + formattedTime
	case formattedDate != "":
		return formattedDate
	default:
		return domain.StatusUnknown
	}
}

// deliveryEstimate applies the extraction policy in strict order, first
// non-empty result winning:
//
//  1. deliveryDate list: first entry's date, formatted.
//  2. deliveryTime object: EDW → "start - end", CMT → "By end".
//  3. "SCHEDULED DELIVERY" status text: embedded MM/DD/YY(YY) date.
//
// An empty result is expected, not an error.
func deliveryEstimate(pkg wirePackage, status string) string {
	for _, dd := range pkg.DeliveryDate {
		if dd.Date != "" {
			return formatDate(dd.Date)
		}
	}

	if dt := pkg.DeliveryTime; dt != nil {
		switch {
		case dt.Type == "EDW" && dt.StartTime != "" && dt.EndTime != "":
			return formatTime(dt.StartTime) + " - " + formatTime(dt.EndTime)
		case dt.Type == "CMT" && dt.EndTime != "":
			return "By " + formatTime(dt.EndTime)
		}
	}

	if strings.Contains(strings.ToUpper(status), "SCHEDULED DELIVERY") {
		return formatStatusDate(status)
	}

	return ""
}

// parseValidationResponse normalizes an XAVResponse payload.
func parseValidationResponse(body []byte) (*domain.AddressValidation, error) {
	var resp xavResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	result := &domain.AddressValidation{
		Carrier:    domain.CarrierUPS,
		Valid:      resp.XAVResponse.ValidAddressIndicator != nil,
		RawPayload: body,
	}
	for _, c := range resp.XAVResponse.Candidate {
		akf := c.AddressKeyFormat
		result.Candidates = append(result.Candidates, domain.Address{
			Street:     akf.AddressLine.first(),
			City:       akf.PoliticalDivision2,
			State:      akf.PoliticalDivision1,
			PostalCode: akf.PostcodePrimaryLow,
			Country:    akf.CountryCode,
		})
	}
	if len(result.Candidates) > 0 {
		result.Valid = true
	}
	return result, nil
}

// parseTransitResponse normalizes a time-in-transit services[] payload.
func parseTransitResponse(body []byte) (*domain.TransitEstimate, error) {
	var resp transitResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	estimate := &domain.TransitEstimate{
		Carrier:    domain.CarrierUPS,
		RawPayload: body,
	}
	for _, svc := range resp.serviceList() {
		estimate.Services = append(estimate.Services, domain.TransitService{
			Code:         svc.ServiceLevel.Code,
			Description:  svc.ServiceLevel.Description,
			DeliveryDate: svc.DeliveryDate,
			DeliveryTime: svc.DeliveryTime,
			BusinessDays: svc.BusinessTransitDays,
		})
	}
	return estimate, nil
}
