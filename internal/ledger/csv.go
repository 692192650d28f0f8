package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jos-ren/Sors-Finance-sub002/internal/model"
)

// Header is the CSV header for transactions.csv.
const Header = "id,batch_id,date,source,description,match_field,amount_out,amount_in,net_amount,category_id,is_conflict,conflicting_categories"

const (
	numFields      = 12
	dateFormat     = "2006-01-02"
	colID          = 0
	colBatchID     = 1
	colDate        = 2
	colSource      = 3
	colDesc        = 4
	colMatchField  = 5
	colAmountOut   = 6
	colAmountIn    = 7
	colNetAmount   = 8
	colCategoryID  = 9
	colIsConflict  = 10
	colConflicting = 11
)

// ReadTransactions reads all transactions from a transactions.csv reader.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// WriteTransactions writes transactions to a writer (including header).
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// AppendTransactions appends transactions to an existing writer (no header).
func AppendTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row ([]string).
func MarshalTransaction(txn model.Transaction) []string {
	row := make([]string, numFields)
	row[colID] = txn.ID
	row[colBatchID] = txn.BatchID
	row[colDate] = txn.Date.Format(dateFormat)
	row[colSource] = string(txn.Source)
	row[colDesc] = txn.Description
	row[colMatchField] = txn.MatchField

	if !txn.AmountOut.IsZero() {
		row[colAmountOut] = txn.AmountOut.StringFixed(2)
	}
	if !txn.AmountIn.IsZero() {
		row[colAmountIn] = txn.AmountIn.StringFixed(2)
	}
	if !txn.NetAmount.IsZero() {
		row[colNetAmount] = txn.NetAmount.StringFixed(2)
	}

	row[colCategoryID] = txn.CategoryID
	if txn.IsConflict {
		row[colIsConflict] = "true"
	}
	row[colConflicting] = strings.Join(txn.ConflictingCategories, ";")

	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	day, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}
	// Stored dates re-anchor at local noon, same as freshly parsed ones.
	date := time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, time.Local)

	var out, in, net decimal.Decimal

	if record[colAmountOut] != "" {
		out, err = decimal.NewFromString(record[colAmountOut])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing amount_out %q: %w", record[colAmountOut], err)
		}
	}

	if record[colAmountIn] != "" {
		in, err = decimal.NewFromString(record[colAmountIn])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing amount_in %q: %w", record[colAmountIn], err)
		}
	}

	if record[colNetAmount] != "" {
		net, err = decimal.NewFromString(record[colNetAmount])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing net_amount %q: %w", record[colNetAmount], err)
		}
	}

	var conflicting []string
	for _, part := range strings.Split(record[colConflicting], ";") {
		if part != "" {
			conflicting = append(conflicting, part)
		}
	}

	return model.Transaction{
		ID:                    record[colID],
		BatchID:               record[colBatchID],
		Date:                  date,
		Source:                model.BankType(record[colSource]),
		Description:           record[colDesc],
		MatchField:            record[colMatchField],
		AmountOut:             out,
		AmountIn:              in,
		NetAmount:             net,
		CategoryID:            record[colCategoryID],
		IsConflict:            record[colIsConflict] == "true",
		ConflictingCategories: conflicting,
	}, nil
}
