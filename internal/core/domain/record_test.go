package domain

import "testing"

func TestLocationString(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{"all parts", []string{"Louisville", "KY", "US"}, "Louisville, KY, US"},
		{"missing middle", []string{"Louisville", "", "US"}, "Louisville, US"},
		{"single part", []string{"", "KY", ""}, "KY"},
		{"all empty", []string{"", "", ""}, "Unknown"},
		{"no parts", nil, "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LocationString(tt.parts...); got != tt.want {
				t.Fatalf("LocationString(%v) = %q, want %q", tt.parts, got, tt.want)
			}
		})
	}
}

func TestAddress_HasValidationFields(t *testing.T) {
	tests := []struct {
		name string
		addr Address
		want bool
	}{
		{"postal code only", Address{PostalCode: "40202"}, true},
		{"city only", Address{City: "Louisville"}, true},
		{"state only", Address{State: "KY"}, true},
		{"street only", Address{Street: "123 Main St"}, false},
		{"empty", Address{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.addr.HasValidationFields(); got != tt.want {
				t.Fatalf("HasValidationFields() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCarrier_Supported(t *testing.T) {
	for _, c := range []Carrier{CarrierUPS, CarrierUSPS, CarrierDHL} {
		if !c.Supported() {
			t.Fatalf("expected %s to be supported", c)
		}
	}
	for _, c := range []Carrier{CarrierFedEx, CarrierUnknown, Carrier("")} {
		if c.Supported() {
			t.Fatalf("expected %s to be unsupported", c)
		}
	}
}

func TestErrorRecord(t *testing.T) {
	record := ErrorRecord(CarrierUPS, StatusAPIError)
	if record.Carrier != CarrierUPS || record.Status != StatusAPIError {
		t.Fatalf("unexpected record: %+v", record)
	}
	if record.LastUpdate != "" || record.Location != "" || record.DeliveryEstimate != "" {
		t.Fatalf("expected all other fields empty: %+v", record)
	}
}
