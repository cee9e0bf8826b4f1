package csv

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/parcelwatch/tracking-system/internal/core/ports"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "tracking_sheet.csv"))
}

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open sheet: %v", err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	return records
}

func TestEnsureHeader_CreatesFile(t *testing.T) {
	store := newTestStore(t)

	if err := store.EnsureHeader(context.Background()); err != nil {
		t.Fatalf("EnsureHeader returned error: %v", err)
	}
	records := readAll(t, store.path)
	if len(records) != 1 || !slices.Equal(records[0], ports.SheetHeader) {
		t.Fatalf("unexpected records: %v", records)
	}
}

func TestEnsureHeader_Idempotent(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 3; i++ {
		if err := store.EnsureHeader(context.Background()); err != nil {
			t.Fatalf("EnsureHeader returned error: %v", err)
		}
	}
	if records := readAll(t, store.path); len(records) != 1 {
		t.Fatalf("expected a single header row, got %d rows", len(records))
	}
}

func TestEnsureHeader_PrependsToHeaderlessFile(t *testing.T) {
	store := newTestStore(t)
	if err := os.WriteFile(store.path, []byte("1Z999AA1X123456789\n1234567890\n"), 0o644); err != nil {
		t.Fatalf("seed sheet: %v", err)
	}

	if err := store.EnsureHeader(context.Background()); err != nil {
		t.Fatalf("EnsureHeader returned error: %v", err)
	}
	records := readAll(t, store.path)
	if len(records) != 3 {
		t.Fatalf("expected three rows, got %d", len(records))
	}
	if !slices.Equal(records[0], ports.SheetHeader) {
		t.Fatalf("expected header first, got %v", records[0])
	}
	if records[1][0] != "1Z999AA1X123456789" {
		t.Fatalf("data rows reordered: %v", records[1])
	}
}

func TestRows(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	if err := store.EnsureHeader(ctx); err != nil {
		t.Fatalf("EnsureHeader returned error: %v", err)
	}
	if _, err := store.AppendRow(ctx, "1Z999AA1X123456789"); err != nil {
		t.Fatalf("AppendRow returned error: %v", err)
	}
	if _, err := store.AppendRow(ctx, "1234567890"); err != nil {
		t.Fatalf("AppendRow returned error: %v", err)
	}

	rows, err := store.Rows(ctx)
	if err != nil {
		t.Fatalf("Rows returned error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected two rows, got %d", len(rows))
	}
	// Index counts the header row, spreadsheet style.
	if rows[0].Index != 2 || rows[0].TrackingNumber != "1Z999AA1X123456789" {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Index != 3 || rows[1].TrackingNumber != "1234567890" {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}
}

func TestRows_MissingFile(t *testing.T) {
	store := newTestStore(t)

	rows, err := store.Rows(context.Background())
	if err != nil {
		t.Fatalf("Rows returned error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}

func TestUpdateRow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	if err := store.EnsureHeader(ctx); err != nil {
		t.Fatalf("EnsureHeader returned error: %v", err)
	}
	idx, err := store.AppendRow(ctx, "1Z999AA1X123456789")
	if err != nil {
		t.Fatalf("AppendRow returned error: %v", err)
	}

	err = store.UpdateRow(ctx, ports.SheetUpdate{
		Index:             idx,
		Carrier:           "UPS",
		Status:            "In Transit",
		Location:          "Louisville, KY, US",
		EstimatedDelivery: "April 20, 2025",
	})
	if err != nil {
		t.Fatalf("UpdateRow returned error: %v", err)
	}

	records := readAll(t, store.path)
	row := records[idx-1]
	if row[colTracking] != "1Z999AA1X123456789" {
		t.Fatalf("tracking number clobbered: %v", row)
	}
	if row[colCarrier] != "UPS" || row[colStatus] != "In Transit" || row[colETA] != "April 20, 2025" {
		t.Fatalf("unexpected row after update: %v", row)
	}
}

func TestUpdateRow_EmptyFieldsLeaveCellsUntouched(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	if err := store.EnsureHeader(ctx); err != nil {
		t.Fatalf("EnsureHeader returned error: %v", err)
	}
	idx, err := store.AppendRow(ctx, "1Z999AA1X123456789")
	if err != nil {
		t.Fatalf("AppendRow returned error: %v", err)
	}

	if err := store.UpdateRow(ctx, ports.SheetUpdate{Index: idx, Status: "In Transit", Location: "Louisville, KY"}); err != nil {
		t.Fatalf("UpdateRow returned error: %v", err)
	}
	// A later partial update must not erase the earlier location.
	if err := store.UpdateRow(ctx, ports.SheetUpdate{Index: idx, Status: "Delivered"}); err != nil {
		t.Fatalf("UpdateRow returned error: %v", err)
	}

	row := readAll(t, store.path)[idx-1]
	if row[colStatus] != "Delivered" {
		t.Fatalf("expected updated status, got %q", row[colStatus])
	}
	if row[colLocation] != "Louisville, KY" {
		t.Fatalf("expected location preserved, got %q", row[colLocation])
	}
}

func TestUpdateRow_OutOfRange(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	if err := store.EnsureHeader(ctx); err != nil {
		t.Fatalf("EnsureHeader returned error: %v", err)
	}

	if err := store.UpdateRow(ctx, ports.SheetUpdate{Index: 5, Status: "In Transit"}); err == nil {
		t.Fatal("expected out-of-range error")
	}
	// The header row is never a valid update target.
	if err := store.UpdateRow(ctx, ports.SheetUpdate{Index: 1, Status: "In Transit"}); err == nil {
		t.Fatal("expected header row to be rejected")
	}
}

func TestUpdateRow_PadsRaggedRows(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	// Hand-written sheet with a bare tracking number row.
	seed := "Tracking Number,Carrier,Status,Last Update,Current Location,Validated Address,Estimated Delivery\n1234567890\n"
	if err := os.WriteFile(store.path, []byte(seed), 0o644); err != nil {
		t.Fatalf("seed sheet: %v", err)
	}

	if err := store.UpdateRow(ctx, ports.SheetUpdate{Index: 2, Carrier: "DHL", Status: "In Transit"}); err != nil {
		t.Fatalf("UpdateRow returned error: %v", err)
	}

	row := readAll(t, store.path)[1]
	if len(row) != columnCount {
		t.Fatalf("expected %d cells, got %d", columnCount, len(row))
	}
	if row[colTracking] != "1234567890" || row[colCarrier] != "DHL" {
		t.Fatalf("unexpected row: %v", row)
	}
}

func TestAppendRow_ReturnsSpreadsheetIndex(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	if err := store.EnsureHeader(ctx); err != nil {
		t.Fatalf("EnsureHeader returned error: %v", err)
	}

	first, err := store.AppendRow(ctx, "1Z999AA1X123456789")
	if err != nil {
		t.Fatalf("AppendRow returned error: %v", err)
	}
	second, err := store.AppendRow(ctx, "1234567890")
	if err != nil {
		t.Fatalf("AppendRow returned error: %v", err)
	}
	if first != 2 || second != 3 {
		t.Fatalf("unexpected indexes: %d, %d", first, second)
	}
}
