package importlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jos-ren/Sors-Finance-sub002/internal/model"
)

// Entry is one row in the import log, recording one statement file import.
type Entry struct {
	Timestamp  time.Time
	File       string
	Bank       model.BankType
	Confidence model.Confidence
	BatchID    string
	Imported   int
	Duplicates int
	Conflicts  int
	Errors     int
}

// Header is the CSV header for import-log.csv.
const Header = "timestamp,file,bank,confidence,batch_id,imported,duplicates,conflicts,errors"

const (
	numFields     = 9
	logDir        = "logs"
	logFile       = "logs/import-log.csv"
	colTimestamp  = 0
	colFile       = 1
	colBank       = 2
	colConfidence = 3
	colBatchID    = 4
	colImported   = 5
	colDuplicates = 6
	colConflicts  = 7
	colErrors     = 8
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colFile] = e.File
	row[colBank] = string(e.Bank)
	row[colConfidence] = string(e.Confidence)
	row[colBatchID] = e.BatchID
	row[colImported] = strconv.Itoa(e.Imported)
	row[colDuplicates] = strconv.Itoa(e.Duplicates)
	row[colConflicts] = strconv.Itoa(e.Conflicts)
	row[colErrors] = strconv.Itoa(e.Errors)
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

	imported, err := strconv.Atoi(record[colImported])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing imported %q: %w", record[colImported], err)
	}

	duplicates, err := strconv.Atoi(record[colDuplicates])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing duplicates %q: %w", record[colDuplicates], err)
	}

	conflicts, err := strconv.Atoi(record[colConflicts])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing conflicts %q: %w", record[colConflicts], err)
	}

	errors, err := strconv.Atoi(record[colErrors])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing errors %q: %w", record[colErrors], err)
	}

	return Entry{
		Timestamp:  ts,
		File:       record[colFile],
		Bank:       model.BankType(record[colBank]),
		Confidence: model.Confidence(record[colConfidence]),
		BatchID:    record[colBatchID],
		Imported:   imported,
		Duplicates: duplicates,
		Conflicts:  conflicts,
		Errors:     errors,
	}, nil
}

// Append writes entries to <root>/logs/import-log.csv, creating the file and header if needed.
func Append(root string, entries []Entry) error {
	dir := filepath.Join(root, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(root, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening import log: %w", err)
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

// Read returns all entries from <root>/logs/import-log.csv.
// Returns an empty slice if the file does not exist.
func Read(root string) ([]Entry, error) {
	path := filepath.Join(root, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading import log CSV: %w", err)
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
