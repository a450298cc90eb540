// Package auditlog records derivation runs. Every statement command
// appends one row, so the books directory carries a trail of what was
// derived, under which scope, and whether the balance check held.
package auditlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Entry is one derivation run in the audit log.
type Entry struct {
	Timestamp   time.Time
	Statement   string
	Scope       string
	Details     string
	Discrepancy string // empty when the statement has no balance check
}

// Header is the CSV header for derivations.csv.
const Header = "timestamp,statement,scope,details,discrepancy"

const (
	numFields      = 5
	logDir         = "logs"
	logFile        = "logs/derivations.csv"
	colTimestamp   = 0
	colStatement   = 1
	colScope       = 2
	colDetails     = 3
	colDiscrepancy = 4
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colStatement] = e.Statement
	row[colScope] = e.Scope
	row[colDetails] = e.Details
	row[colDiscrepancy] = e.Discrepancy
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	return Entry{
		Timestamp:   ts,
		Statement:   record[colStatement],
		Scope:       record[colScope],
		Details:     record[colDetails],
		Discrepancy: record[colDiscrepancy],
	}, nil
}

// Append writes entries to <booksDir>/logs/derivations.csv, creating the
// file and header if needed.
func Append(booksDir string, entries []Entry) error {
	dir := filepath.Join(booksDir, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(booksDir, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <booksDir>/logs/derivations.csv, or nil
// if the file does not exist.
func Read(booksDir string) ([]Entry, error) {
	path := filepath.Join(booksDir, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading audit log CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
