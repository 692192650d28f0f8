package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the canonical record every statement row normalizes into,
// regardless of which bank exported it.
type Transaction struct {
	ID          string    // uuid, assigned at parse time
	Date        time.Time // normalized to local noon
	Description string
	// MatchField is what keyword matching runs against. Usually the
	// description; AMEX rows prefer the additional-information cell when the
	// statement provides one.
	MatchField string
	AmountOut  decimal.Decimal // money leaving the account, >= 0
	AmountIn   decimal.Decimal // money entering the account, >= 0
	// NetAmount is signed. CIBC: AmountIn - AmountOut. AMEX statements carry
	// the opposite raw sign (positive = charge), and NetAmount preserves it:
	// AmountOut - AmountIn. Downstream code must not "correct" this.
	NetAmount decimal.Decimal
	Source    BankType
	BatchID   string // import batch, assigned by the ledger on append

	CategoryID string // empty = unassigned
	IsConflict bool   // matched two or more categories; kept after manual resolution
	// ConflictingCategories holds the matched category IDs in category order.
	// Populated only when IsConflict is set.
	ConflictingCategories []string
}

// SignatureDateFormat is the date layer of a duplicate signature.
const SignatureDateFormat = "2006-01-02"

// Signature builds the duplicate-detection key. Two rows with the same date,
// description and amounts collide even across files; that approximation is
// intentional.
func (t Transaction) Signature() string {
	return fmt.Sprintf("%s|%s|%s|%s",
		t.Date.Format(SignatureDateFormat),
		t.Description,
		t.AmountOut.StringFixed(2),
		t.AmountIn.StringFixed(2))
}

// LiveConflict reports whether the row still needs a human decision. A
// resolved conflict keeps IsConflict as provenance but carries a category.
func (t Transaction) LiveConflict() bool {
	return t.IsConflict && t.CategoryID == ""
}
