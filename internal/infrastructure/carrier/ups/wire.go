package ups

import "github.com/goccy/go-json"

// Wire types for the UPS JSON payloads this adapter parses. Only the fields
// the normalizer extracts are declared; everything else is ignored.

type oauthResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

type trackResponse struct {
	TrackResponse struct {
		Shipment []wireShipment `json:"shipment"`
	} `json:"trackResponse"`
}

type wireShipment struct {
	Package []wirePackage `json:"package"`
	ShipTo  struct {
		Address struct {
			AddressLine addressLines `json:"addressLine"`
		} `json:"address"`
	} `json:"shipTo"`
}

type wirePackage struct {
	Activity     []wireActivity     `json:"activity"`
	DeliveryDate []wireDeliveryDate `json:"deliveryDate"`
	DeliveryTime *wireDeliveryTime  `json:"deliveryTime"`
}

type wireActivity struct {
	Status struct {
		Description string `json:"description"`
	} `json:"status"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location struct {
		Address wireAddress `json:"address"`
	} `json:"location"`
}

type wireAddress struct {
	City          string `json:"city"`
	StateProvince string `json:"stateProvince"`
	PostalCode    string `json:"postalCode"`
	Country       string `json:"country"`
}

type wireDeliveryDate struct {
	Type string `json:"type"`
	Date string `json:"date"`
}

type wireDeliveryTime struct {
	Type      string `json:"type"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// addressLines tolerates UPS sending addressLine as either a single string
// or an array of strings.
type addressLines []string

func (a *addressLines) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*a = many
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*a = []string{one}
	return nil
}

func (a addressLines) first() string {
	if len(a) == 0 {
		return ""
	}
	return a[0]
}

// Address validation (XAV) request/response shapes.

type addressKeyFormat struct {
	AddressLine        string `json:"AddressLine"`
	PoliticalDivision2 string `json:"PoliticalDivision2"`
	PoliticalDivision1 string `json:"PoliticalDivision1"`
	PostcodePrimaryLow string `json:"PostcodePrimaryLow"`
	CountryCode        string `json:"CountryCode"`
}

type xavRequest struct {
	XAVRequest xavRequestBody `json:"XAVRequest"`
}

type xavRequestBody struct {
	AddressKeyFormat         addressKeyFormat `json:"AddressKeyFormat"`
	RegionalRequestIndicator string           `json:"RegionalRequestIndicator"`
	MaximumCandidateListSize string           `json:"MaximumCandidateListSize"`
}

type xavResponse struct {
	XAVResponse struct {
		ValidAddressIndicator *struct{} `json:"ValidAddressIndicator"`
		Candidate             []struct {
			AddressKeyFormat struct {
				AddressLine        addressLines `json:"AddressLine"`
				PoliticalDivision2 string       `json:"PoliticalDivision2"`
				PoliticalDivision1 string       `json:"PoliticalDivision1"`
				PostcodePrimaryLow string       `json:"PostcodePrimaryLow"`
				CountryCode        string       `json:"CountryCode"`
			} `json:"AddressKeyFormat"`
		} `json:"Candidate"`
	} `json:"XAVResponse"`
}

// Time-in-transit request/response shapes.

type transitRequest struct {
	OriginCountryCode            string `json:"originCountryCode"`
	OriginStateProvince          string `json:"originStateProvince"`
	OriginCityName               string `json:"originCityName"`
	OriginTownName               string `json:"originTownName"`
	OriginPostalCode             string `json:"originPostalCode"`
	DestinationCountryCode       string `json:"destinationCountryCode"`
	DestinationStateProvince     string `json:"destinationStateProvince"`
	DestinationCityName          string `json:"destinationCityName"`
	DestinationTownName          string `json:"destinationTownName"`
	DestinationPostalCode        string `json:"destinationPostalCode"`
	Weight                       string `json:"weight"`
	WeightUnitOfMeasure          string `json:"weightUnitOfMeasure"`
	ShipmentContentsValue        string `json:"shipmentContentsValue"`
	ShipmentContentsCurrencyCode string `json:"shipmentContentsCurrencyCode"`
	BillType                     string `json:"billType"`
	ShipDate                     string `json:"shipDate"`
	ShipTime                     string `json:"shipTime"`
	ResidentialIndicator         string `json:"residentialIndicator"`
	NumberOfPackages             string `json:"numberOfPackages"`
}

type transitService struct {
	ServiceLevel struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"serviceLevel"`
	DeliveryDate        string `json:"deliveryDate"`
	DeliveryTime        string `json:"deliveryTime"`
	BusinessTransitDays int    `json:"businessTransitDays"`
}

type transitResponse struct {
	Services    []transitService `json:"services"`
	EMSResponse struct {
		Services []transitService `json:"services"`
	} `json:"emsResponse"`
}

// serviceList returns whichever services[] list the response carried.
func (r transitResponse) serviceList() []transitService {
	if len(r.Services) > 0 {
		return r.Services
	}
	return r.EMSResponse.Services
}
