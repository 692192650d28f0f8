package cells

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// FromCSV decodes comma-separated bytes into rows of cells. Rows may be
// ragged; quoting is lazy because bank exports are sloppy about it.
func FromCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	return rows, nil
}

// FromXLSX decodes a spreadsheet workbook and returns the first sheet's rows.
// Trailing empty cells are absent from each row, so callers index
// defensively.
func FromXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheet found")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// Load decodes file contents into rows of cells, dispatching on the file
// extension.
func Load(name string, data []byte) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FromCSV(data)
	case ".xlsx":
		return FromXLSX(data)
	}
	return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(name))
}

// LoadReader reads r to EOF and decodes as Load does.
func LoadReader(name string, r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return Load(name, data)
}

// Cell returns row[i], or "" when the row is too short. Spreadsheet rows
// drop trailing empties and CSV rows may be ragged.
func Cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
