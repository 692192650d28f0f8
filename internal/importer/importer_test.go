package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jos-ren/Sors-Finance-sub002/internal/cells"
	"github.com/jos-ren/Sors-Finance-sub002/internal/model"
)

func TestCIBCParser_Parse(t *testing.T) {
	data, err := os.ReadFile("testdata/cibc_debit.csv")
	require.NoError(t, err)
	rows, err := cells.FromCSV(data)
	require.NoError(t, err)

	p := &CIBCParser{}
	result := p.Parse(rows)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Transactions, 8)

	// First: coffee purchase, money out.
	first := result.Transactions[0]
	assert.Equal(t, "TIM HORTONS #123", first.Description)
	assert.Equal(t, "TIM HORTONS #123", first.MatchField)
	assert.Equal(t, "4.50", first.AmountOut.StringFixed(2))
	assert.True(t, first.AmountIn.IsZero())
	assert.Equal(t, "-4.50", first.NetAmount.StringFixed(2))
	assert.Equal(t, model.BankCIBC, first.Source)
	assert.Equal(t, 2024, first.Date.Year())
	assert.Equal(t, 1, int(first.Date.Month()))
	assert.Equal(t, 15, first.Date.Day())

	// Third: payroll deposit with ISO date, money in.
	payroll := result.Transactions[2]
	assert.Equal(t, "PAYROLL DEPOSIT ACME LTD", payroll.Description)
	assert.True(t, payroll.AmountOut.IsZero())
	assert.Equal(t, "2450.00", payroll.AmountIn.StringFixed(2))
	assert.Equal(t, "2450.00", payroll.NetAmount.StringFixed(2))

	// Fourth: five-column row with card number, still parses.
	assert.Equal(t, "LOBLAWS #1052", result.Transactions[3].Description)
}

func TestCIBCParser_AssignsUniqueIDs(t *testing.T) {
	rows := [][]string{
		{"01/15/2024", "COFFEE", "4.50", ""},
		{"01/15/2024", "COFFEE", "4.50", ""},
	}
	result := (&CIBCParser{}).Parse(rows)
	require.Len(t, result.Transactions, 2)
	assert.NotEmpty(t, result.Transactions[0].ID)
	assert.NotEqual(t, result.Transactions[0].ID, result.Transactions[1].ID)
}

func TestCIBCParser_RowIsolation(t *testing.T) {
	rows := [][]string{
		{"01/15/2024", "GOOD ONE", "1.00", ""},
		{"01/16/2024", "GOOD TWO", "2.00", ""},
		{"NOTADATE", "BAD ROW", "3.00", ""},
		{"01/18/2024", "GOOD THREE", "4.00", ""},
	}
	result := (&CIBCParser{}).Parse(rows)
	assert.Len(t, result.Transactions, 3)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "row 3")
	assert.Contains(t, result.Errors[0], "unrecognized date")
}

func TestCIBCParser_EmptyFile(t *testing.T) {
	result := (&CIBCParser{}).Parse(nil)
	assert.Empty(t, result.Transactions)
	assert.Equal(t, []string{"empty file"}, result.Errors)
}

func TestCIBCParser_NoValidTransactions(t *testing.T) {
	result := (&CIBCParser{}).Parse([][]string{{"", "", "", ""}, {}})
	assert.Empty(t, result.Transactions)
	assert.Equal(t, []string{"no valid transactions found"}, result.Errors)
}

func TestCIBCParser_BadAmount(t *testing.T) {
	rows := [][]string{{"01/15/2024", "COFFEE", "NOTANUMBER", ""}}
	result := (&CIBCParser{}).Parse(rows)
	assert.Empty(t, result.Transactions)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "amount out")
}

func TestCIBCParser_NegativeAmount(t *testing.T) {
	rows := [][]string{{"01/15/2024", "COFFEE", "-4.50", ""}}
	result := (&CIBCParser{}).Parse(rows)
	assert.Empty(t, result.Transactions)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "negative value")
}

func TestCIBCParser_MissingAmount(t *testing.T) {
	rows := [][]string{{"01/15/2024", "COFFEE", "", ""}}
	result := (&CIBCParser{}).Parse(rows)
	assert.Empty(t, result.Transactions)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "missing amount")
}

func TestCIBCParser_BothAmounts(t *testing.T) {
	rows := [][]string{{"01/15/2024", "REVERSAL", "10.00", "15.00"}}
	result := (&CIBCParser{}).Parse(rows)
	require.Len(t, result.Transactions, 1)
	txn := result.Transactions[0]
	assert.Equal(t, "10.00", txn.AmountOut.StringFixed(2))
	assert.Equal(t, "15.00", txn.AmountIn.StringFixed(2))
	assert.Equal(t, "5.00", txn.NetAmount.StringFixed(2))
}

func amexFile(data ...[]string) [][]string {
	rows := make([][]string, 0, amexDataStart+len(data))
	for i := 0; i < amexHeaderRow; i++ {
		rows = append(rows, []string{"Transaction Details"})
	}
	rows = append(rows, []string{
		"Date", "Date Processed", "Description", "Amount", "",
		"Merchant", "Merchant Address", "Town/City", "Province", "Postal Code",
		"Additional Information",
	})
	return append(rows, data...)
}

func amexCharge(date, desc, amount, addInfo string) []string {
	return []string{date, date, desc, amount, "", "MERCHANT", "", "", "", "", addInfo}
}

func amexPayment(date, desc, amount string) []string {
	return []string{date, date, desc, "", amount}
}

func TestAmexParser_Parse(t *testing.T) {
	file := amexFile(
		amexCharge("15 Jan. 2024", "STARBUCKS COFFEE TORONTO", "$6.45", "STARBUCKS #4821"),
		amexCharge("16 Jan. 2024", "AMAZON.CA MARKETPLACE", "$32.10", ""),
		amexPayment("20 Jan. 2024", "PAYMENT RECEIVED - THANK YOU", "-250.00"),
	)
	result := (&AmexParser{}).Parse(file)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Transactions, 3)

	// Charge: positive raw amount is money out, net keeps the raw sign.
	charge := result.Transactions[0]
	assert.Equal(t, "STARBUCKS COFFEE TORONTO", charge.Description)
	assert.Equal(t, "STARBUCKS #4821", charge.MatchField)
	assert.Equal(t, "6.45", charge.AmountOut.StringFixed(2))
	assert.True(t, charge.AmountIn.IsZero())
	assert.Equal(t, "6.45", charge.NetAmount.StringFixed(2))
	assert.Equal(t, model.BankAmex, charge.Source)
	assert.Equal(t, 15, charge.Date.Day())

	// No extra detail column: match field falls back to the description.
	assert.Equal(t, "AMAZON.CA MARKETPLACE", result.Transactions[1].MatchField)

	// Payment: amount column empty, value one column over, money in.
	payment := result.Transactions[2]
	assert.True(t, payment.AmountOut.IsZero())
	assert.Equal(t, "250.00", payment.AmountIn.StringFixed(2))
	assert.Equal(t, "-250.00", payment.NetAmount.StringFixed(2))
}

func TestAmexParser_PaymentRow(t *testing.T) {
	file := amexFile(amexPayment("20 Jan. 2024", "PAYMENT RECEIVED", "-50.00"))
	result := (&AmexParser{}).Parse(file)
	require.Len(t, result.Transactions, 1)
	txn := result.Transactions[0]
	assert.Equal(t, "50.00", txn.AmountIn.StringFixed(2))
	assert.True(t, txn.AmountOut.IsZero())
	assert.Equal(t, "-50.00", txn.NetAmount.StringFixed(2))
}

func TestAmexParser_NegativeChargeColumn(t *testing.T) {
	// Refunds land in the regular amount column with a negative sign.
	file := amexFile(amexCharge("18 Jan. 2024", "AMAZON.CA REFUND", "-$32.10", ""))
	result := (&AmexParser{}).Parse(file)
	require.Len(t, result.Transactions, 1)
	txn := result.Transactions[0]
	assert.Equal(t, "32.10", txn.AmountIn.StringFixed(2))
	assert.True(t, txn.AmountOut.IsZero())
	assert.Equal(t, "-32.10", txn.NetAmount.StringFixed(2))
}

func TestAmexParser_RowIsolation(t *testing.T) {
	file := amexFile(
		amexCharge("15 Jan. 2024", "GOOD ONE", "$1.00", ""),
		amexCharge("01/16/2024", "WRONG DATE GRAMMAR", "$2.00", ""),
		amexCharge("17 Jan. 2024", "GOOD TWO", "$3.00", ""),
	)
	result := (&AmexParser{}).Parse(file)
	assert.Len(t, result.Transactions, 2)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "row 14")
	assert.Contains(t, result.Errors[0], "unrecognized date")
}

func TestAmexParser_ShortFile(t *testing.T) {
	rows := [][]string{{"Transaction Details"}, {"Prepared for"}}
	result := (&AmexParser{}).Parse(rows)
	assert.Empty(t, result.Transactions)
	assert.Equal(t, []string{"file has 2 rows, data starts at row 13"}, result.Errors)
}

func TestAmexParser_EmptyFile(t *testing.T) {
	result := (&AmexParser{}).Parse(nil)
	assert.Equal(t, []string{"empty file"}, result.Errors)
}

func TestAmexParser_MissingAmount(t *testing.T) {
	file := amexFile([]string{"15 Jan. 2024", "", "NO AMOUNT AT ALL"})
	result := (&AmexParser{}).Parse(file)
	assert.Empty(t, result.Transactions)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "missing amount")
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(&CIBCParser{})
	p := r.Get(model.BankCIBC)
	require.NotNil(t, p)
	assert.Equal(t, model.BankCIBC, p.Bank())
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get(model.BankAmex))
	assert.Nil(t, r.Get(model.BankUnknown))
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&CIBCParser{})
	assert.Panics(t, func() { r.Register(&CIBCParser{}) })
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get(model.BankCIBC))
	assert.NotNil(t, r.Get(model.BankAmex))
}

func TestScan_FindsStatements(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bank.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "card.xlsx"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "bank.csv", files[0].Name)
	assert.Equal(t, "card.xlsx", files[1].Name)
}

func TestScan_IgnoresProcessedDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "processed"), 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "processed", "old.csv"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, "new.csv", files[0].Name)
}

func TestScan_MissingDir(t *testing.T) {
	files, err := Scan(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bank.csv"), []byte("data"), 0o644))

	err := MarkProcessed(dir, "bank.csv")
	require.NoError(t, err)

	// Source gone.
	_, err = os.Stat(filepath.Join(dir, "bank.csv"))
	assert.True(t, os.IsNotExist(err))

	// Destination exists.
	_, err = os.Stat(filepath.Join(dir, "processed", "bank.csv"))
	assert.NoError(t, err)
}
