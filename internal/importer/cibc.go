package importer

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jos-ren/Sors-Finance-sub002/internal/model"
	"github.com/jos-ren/Sors-Finance-sub002/internal/normalize"
)

// CIBCParser parses CIBC debit CSV exports. The files carry no header row:
// data starts at the first line.
type CIBCParser struct{}

const (
	cibcColDate   = 0
	cibcColDesc   = 1
	cibcColOut    = 2
	cibcColIn     = 3
	cibcMinFields = 4
)

// Bank returns the format this parser handles.
func (p *CIBCParser) Bank() model.BankType { return model.BankCIBC }

// Parse converts CIBC rows into transactions, one error string per bad row.
func (p *CIBCParser) Parse(rows [][]string) model.ParseResult {
	var result model.ParseResult
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "empty file")
		return result
	}

	for i, row := range rows {
		if blankRow(row) {
			continue
		}
		txn, err := parseCIBCRow(row)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		result.Transactions = append(result.Transactions, txn)
	}

	if len(result.Transactions) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "no valid transactions found")
	}
	return result
}

func parseCIBCRow(row []string) (model.Transaction, error) {
	if len(row) < cibcMinFields {
		return model.Transaction{}, fmt.Errorf("expected at least %d columns, got %d", cibcMinFields, len(row))
	}

	date, err := normalize.CIBCDate(row[cibcColDate])
	if err != nil {
		return model.Transaction{}, err
	}

	desc := strings.TrimSpace(row[cibcColDesc])
	if desc == "" {
		return model.Transaction{}, fmt.Errorf("missing description")
	}

	out, err := cibcAmount(row[cibcColOut], "amount out")
	if err != nil {
		return model.Transaction{}, err
	}
	in, err := cibcAmount(row[cibcColIn], "amount in")
	if err != nil {
		return model.Transaction{}, err
	}
	if out.IsZero() && in.IsZero() {
		return model.Transaction{}, fmt.Errorf("missing amount")
	}

	return model.Transaction{
		ID:          uuid.NewString(),
		Date:        date,
		Description: desc,
		MatchField:  desc,
		AmountOut:   out,
		AmountIn:    in,
		NetAmount:   in.Sub(out),
		Source:      model.BankCIBC,
	}, nil
}

// cibcAmount parses one of the out/in columns. An empty cell means zero; a
// negative value means the row landed in the wrong column and is rejected.
func cibcAmount(s, col string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	d, err := normalize.Amount(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %v", col, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s: negative value %q", col, s)
	}
	return d, nil
}
