package importer

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jos-ren/Sors-Finance-sub002/internal/cells"
	"github.com/jos-ren/Sors-Finance-sub002/internal/model"
	"github.com/jos-ren/Sors-Finance-sub002/internal/normalize"
)

// AmexParser parses AMEX credit card workbook exports. The sheet opens with
// eleven rows of account preamble, then a header row, then data.
//
// Sign convention differs from the debit side: a positive raw amount is a
// charge (money out), negative is a payment or refund (money in), and
// NetAmount keeps the raw statement sign instead of the usual in-minus-out.
type AmexParser struct{}

const (
	amexHeaderRow  = 11
	amexDataStart  = amexHeaderRow + 1
	amexColDate    = 0
	amexColDesc    = 2
	amexColAmount  = 3
	amexColPayment = 4
	amexColAddInfo = 10
)

// Bank returns the format this parser handles.
func (p *AmexParser) Bank() model.BankType { return model.BankAmex }

// Parse converts AMEX rows into transactions, one error string per bad row.
func (p *AmexParser) Parse(rows [][]string) model.ParseResult {
	var result model.ParseResult
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "empty file")
		return result
	}
	if len(rows) <= amexDataStart {
		result.Errors = append(result.Errors,
			fmt.Sprintf("file has %d rows, data starts at row %d", len(rows), amexDataStart+1))
		return result
	}

	for i, row := range rows[amexDataStart:] {
		if blankRow(row) {
			continue
		}
		txn, err := parseAmexRow(row)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", amexDataStart+i+1, err))
			continue
		}
		result.Transactions = append(result.Transactions, txn)
	}

	if len(result.Transactions) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "no valid transactions found")
	}
	return result
}

func parseAmexRow(row []string) (model.Transaction, error) {
	date, err := normalize.AmexDate(cells.Cell(row, amexColDate))
	if err != nil {
		return model.Transaction{}, err
	}

	desc := strings.TrimSpace(cells.Cell(row, amexColDesc))
	if desc == "" {
		return model.Transaction{}, fmt.Errorf("missing description")
	}

	// Payment and credit rows leave the amount column empty and carry the
	// value one column over.
	raw := strings.TrimSpace(cells.Cell(row, amexColAmount))
	if raw == "" {
		raw = strings.TrimSpace(cells.Cell(row, amexColPayment))
	}
	if raw == "" {
		return model.Transaction{}, fmt.Errorf("missing amount")
	}
	amount, err := normalize.Amount(raw)
	if err != nil {
		return model.Transaction{}, err
	}

	var out, in decimal.Decimal
	if amount.IsNegative() {
		in = amount.Neg()
	} else {
		out = amount
	}

	// The extra detail column names the merchant more reliably than the
	// description when it is present.
	matchField := strings.TrimSpace(cells.Cell(row, amexColAddInfo))
	if matchField == "" {
		matchField = desc
	}

	return model.Transaction{
		ID:          uuid.NewString(),
		Date:        date,
		Description: desc,
		MatchField:  matchField,
		AmountOut:   out,
		AmountIn:    in,
		NetAmount:   out.Sub(in), // equals the raw statement amount
		Source:      model.BankAmex,
	}, nil
}
