package detect

import (
	"fmt"
	"strings"

	"github.com/jos-ren/Sors-Finance-sub002/internal/cells"
	"github.com/jos-ren/Sors-Finance-sub002/internal/model"
	"github.com/jos-ren/Sors-Finance-sub002/internal/normalize"
)

// fingerprint describes the structural shape of one bank's export: where
// data starts and what a data row must look like.
type fingerprint struct {
	bank      model.BankType
	dataStart int // first data row index
	minRows   int // fewer rows than this cannot be the format
	rowMatch  func(row []string) bool
}

// fingerprints are evaluated in this order and the first hit wins. The
// shapes overlap, so evaluation order is load-bearing: cibc before amex.
var fingerprints = []fingerprint{
	{bank: model.BankCIBC, dataStart: 0, minRows: 1, rowMatch: cibcRow},
	{bank: model.BankAmex, dataStart: amexDataStart, minRows: amexDataStart + 1, rowMatch: amexRow},
}

// amexDataStart skips the statement preamble and the header row.
const amexDataStart = 12

// Detect matches rows against every known bank layout in priority order and
// returns the first with any confidence. Detection is content-based; the
// filename is never consulted.
func Detect(rows [][]string) model.DetectionResult {
	for _, fp := range fingerprints {
		result := evaluate(fp, rows)
		if result.Confidence.Detected() {
			return result
		}
	}
	reason := "no rows matched any known bank layout"
	if len(rows) == 0 {
		reason = "empty file"
	}
	return model.DetectionResult{Bank: model.BankUnknown, Confidence: model.ConfidenceNone, Reason: reason}
}

// DetectAll scores every known layout, in priority order, for display.
func DetectAll(rows [][]string) []model.DetectionResult {
	results := make([]model.DetectionResult, 0, len(fingerprints))
	for _, fp := range fingerprints {
		results = append(results, evaluate(fp, rows))
	}
	return results
}

func evaluate(fp fingerprint, rows [][]string) model.DetectionResult {
	if len(rows) < fp.minRows {
		return model.DetectionResult{
			Bank:       fp.bank,
			Confidence: model.ConfidenceNone,
			Reason:     fmt.Sprintf("file has %d rows, %s data starts at row %d", len(rows), fp.bank, fp.dataStart+1),
		}
	}

	evaluable, matching := 0, 0
	for _, row := range rows[fp.dataStart:] {
		if blankRow(row) {
			continue
		}
		evaluable++
		if fp.rowMatch(row) {
			matching++
		}
	}
	if evaluable == 0 {
		return model.DetectionResult{
			Bank:       fp.bank,
			Confidence: model.ConfidenceNone,
			Reason:     fmt.Sprintf("no data rows to evaluate for %s", fp.bank),
		}
	}

	ratio := float64(matching) / float64(evaluable)
	return model.DetectionResult{
		Bank:       fp.bank,
		Confidence: model.ConfidenceFromRatio(ratio),
		Reason:     fmt.Sprintf("%d/%d data rows match %s layout", matching, evaluable, fp.bank),
	}
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// cibcRow: no header, 4 or 5 columns, a CIBC-style date up front, and bare
// numeric amounts (no currency symbol) in the out/in columns.
func cibcRow(row []string) bool {
	if len(row) < 4 || len(row) > 5 {
		return false
	}
	if !normalize.IsCIBCDate(cells.Cell(row, 0)) {
		return false
	}
	out := strings.TrimSpace(cells.Cell(row, 2))
	in := strings.TrimSpace(cells.Cell(row, 3))
	if out == "" && in == "" {
		return false
	}
	for _, amt := range []string{out, in} {
		if amt != "" && !normalize.IsPlainNumber(amt) {
			return false
		}
	}
	return true
}

// amexRow: "D Mon. YYYY" date up front and an amount either in the charge
// column or, for payment rows where that column is empty, one column over.
func amexRow(row []string) bool {
	if len(row) < 4 {
		return false
	}
	if !normalize.IsAmexDate(cells.Cell(row, 0)) {
		return false
	}
	amt := strings.TrimSpace(cells.Cell(row, 3))
	if amt != "" {
		return amountLike(amt)
	}
	return amountLike(strings.TrimSpace(cells.Cell(row, 4)))
}

func amountLike(s string) bool {
	return normalize.IsDollarAmount(s) || normalize.IsPlainNumber(s)
}
