package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jos-ren/Sors-Finance-sub002/internal/model"
)

// Parser converts one bank's statement rows into canonical transactions.
// Rows arrive already decoded from their container (CSV or workbook); a
// malformed row becomes an error string in the result, never a Go error.
type Parser interface {
	Parse(rows [][]string) model.ParseResult
	Bank() model.BankType
}

// Registry holds the parser for each bank format.
type Registry struct {
	parsers map[model.BankType]Parser
}

// FileInfo describes a statement file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[model.BankType]Parser)}
}

// Register adds a parser. Panics on duplicate bank.
func (r *Registry) Register(p Parser) {
	if _, ok := r.parsers[p.Bank()]; ok {
		panic("duplicate parser for bank: " + string(p.Bank()))
	}
	r.parsers[p.Bank()] = p
}

// Get returns the parser for bank, or nil.
func (r *Registry) Get(bank model.BankType) Parser {
	return r.parsers[bank]
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&CIBCParser{})
	r.Register(&AmexParser{})
	return r
}

// processedDir is the subdirectory imported files are moved to.
const processedDir = "processed"

// Scan returns statement files in the import directory.
func Scan(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".csv" && ext != ".xlsx" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from the import directory to its processed/
// subdirectory.
func MarkProcessed(dir, fileName string) error {
	src := filepath.Join(dir, fileName)
	dstDir := filepath.Join(dir, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
