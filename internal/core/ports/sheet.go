package ports

import "context"

// Sheet column order. The tracking sheet is the system's only persistence;
// consumers (reports, the dashboard spreadsheet) rely on this fixed layout.
var SheetHeader = []string{
	"Tracking Number",
	"Carrier",
	"Status",
	"Last Update",
	"Current Location",
	"Validated Address",
	"Estimated Delivery",
}

// SheetRow is one data row read from the tracking sheet. Index is 1-based
// and counts the header row, matching spreadsheet row numbering.
type SheetRow struct {
	Index          int
	TrackingNumber string
}

// SheetUpdate carries the cells to write back for one row. Empty fields are
// left untouched so partial results never erase earlier data.
type SheetUpdate struct {
	Index             int
	Carrier           string
	Status            string
	LastUpdate        string
	Location          string
	ValidatedAddress  string
	EstimatedDelivery string
}

// SheetStore abstracts the tracking spreadsheet.
type SheetStore interface {
	// EnsureHeader writes the canonical header row if it is missing.
	EnsureHeader(ctx context.Context) error

	// Rows returns every data row, skipping the header.
	Rows(ctx context.Context) ([]SheetRow, error)

	// UpdateRow writes the non-empty fields of the update into the row.
	UpdateRow(ctx context.Context, update SheetUpdate) error

	// AppendRow adds a new row containing just a tracking number (used by
	// the seeder). Returns the new row index.
	AppendRow(ctx context.Context, trackingNumber string) (int, error)
}
