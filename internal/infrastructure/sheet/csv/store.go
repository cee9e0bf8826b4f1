// Package csv implements the SheetStore port over a local CSV file. The CSV
// file plays the role of the tracking spreadsheet: a fixed seven-column
// layout with a header row, rewritten in place on every update.
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/parcelwatch/tracking-system/internal/core/ports"
)

// Column indexes within a sheet row.
const (
	colTracking = iota
	colCarrier
	colStatus
	colLastUpdate
	colLocation
	colAddress
	colETA
	columnCount
)

// Store is a file-backed SheetStore. Safe for concurrent use.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore opens (or prepares to create) the sheet at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// EnsureHeader writes the canonical header row when the file is missing,
// empty, or starts with something that is not the header.
func (s *Store) EnsureHeader(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read()
	if err != nil {
		return err
	}
	if len(records) > 0 && slices.Equal(records[0], ports.SheetHeader) {
		return nil
	}
	records = append([][]string{slices.Clone(ports.SheetHeader)}, records...)
	return s.write(records)
}

// Rows returns every data row. Index is 1-based and counts the header, so
// the first data row has index 2, matching spreadsheet numbering.
func (s *Store) Rows(_ context.Context) ([]ports.SheetRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read()
	if err != nil {
		return nil, err
	}
	var rows []ports.SheetRow
	for i, rec := range records {
		if i == 0 {
			continue // header
		}
		var tracking string
		if len(rec) > colTracking {
			tracking = rec[colTracking]
		}
		rows = append(rows, ports.SheetRow{Index: i + 1, TrackingNumber: tracking})
	}
	return rows, nil
}

// UpdateRow writes the non-empty fields of the update into the row,
// leaving other cells untouched.
func (s *Store) UpdateRow(_ context.Context, update ports.SheetUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read()
	if err != nil {
		return err
	}
	idx := update.Index - 1
	if idx < 1 || idx >= len(records) {
		return fmt.Errorf("sheet: row %d out of range", update.Index)
	}

	row := pad(records[idx])
	setCell(row, colCarrier, update.Carrier)
	setCell(row, colStatus, update.Status)
	setCell(row, colLastUpdate, update.LastUpdate)
	setCell(row, colLocation, update.Location)
	setCell(row, colAddress, update.ValidatedAddress)
	setCell(row, colETA, update.EstimatedDelivery)
	records[idx] = row

	return s.write(records)
}

// AppendRow adds a row containing just a tracking number and returns its
// 1-based index.
func (s *Store) AppendRow(_ context.Context, trackingNumber string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read()
	if err != nil {
		return 0, err
	}
	row := make([]string, columnCount)
	row[colTracking] = trackingNumber
	records = append(records, row)
	if err := s.write(records); err != nil {
		return 0, err
	}
	return len(records), nil
}

func (s *Store) read() ([][]string, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sheet: open %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows written by hand
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("sheet: read %s: %w", s.path, err)
	}
	return records, nil
}

func (s *Store) write(records [][]string) error {
	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("sheet: create %s: %w", tmp, err)
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return fmt.Errorf("sheet: write %s: %w", tmp, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func pad(row []string) []string {
	for len(row) < columnCount {
		row = append(row, "")
	}
	return row
}

func setCell(row []string, col int, value string) {
	if value != "" {
		row[col] = value
	}
}
