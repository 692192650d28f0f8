package categorize

import (
	"fmt"
	"strings"

	"github.com/jos-ren/Sors-Finance-sub002/internal/model"
)

// Mode selects which persisted transactions a recategorization pass visits.
type Mode string

const (
	// ModeUncategorized visits only rows without a real category. It never
	// touches a row that already holds one.
	ModeUncategorized Mode = "uncategorized"
	// ModeAll visits everything except rows in the system Excluded category.
	ModeAll Mode = "all"
)

// ParseMode validates a mode flag value.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(s)) {
	case ModeUncategorized:
		return ModeUncategorized, nil
	case ModeAll:
		return ModeAll, nil
	}
	return "", fmt.Errorf("unknown mode %q (want uncategorized or all)", s)
}

// Store is the persistence seam the workflow runs against. Each
// UpdateCategory call must be atomic per row; the workflow does no locking
// of its own.
type Store interface {
	Transactions() ([]model.Transaction, error)
	UpdateCategory(txnID, categoryID string) error
}

// Result reports what a recategorization pass did.
type Result struct {
	Processed int // rows in scope
	Updated   int // rows written with a new category
	Conflicts int // rows matching several categories, left unwritten
}

// Recategorize re-runs keyword matching over stored transactions after the
// category keywords change. Exactly-one-match rows are written; zero-match
// rows are left alone; multi-match rows only bump the conflict counter,
// since ambiguity is never auto-resolved.
func Recategorize(store Store, cats []model.Category, mode Mode) (Result, error) {
	txns, err := store.Transactions()
	if err != nil {
		return Result{}, fmt.Errorf("reading transactions: %w", err)
	}

	uncategorizedID := systemID(cats, model.SystemUncategorized)
	excludedID := systemID(cats, model.SystemExcluded)
	matchable := MatchableCategories(cats)

	var result Result
	for _, txn := range txns {
		if !inScope(txn, mode, uncategorizedID, excludedID) {
			continue
		}
		result.Processed++

		matched := Matches(txn.MatchField, matchable)
		switch len(matched) {
		case 0:
		case 1:
			if matched[0] == txn.CategoryID {
				continue
			}
			if err := store.UpdateCategory(txn.ID, matched[0]); err != nil {
				return result, fmt.Errorf("updating transaction %s: %w", txn.ID, err)
			}
			result.Updated++
		default:
			result.Conflicts++
		}
	}
	return result, nil
}

func inScope(txn model.Transaction, mode Mode, uncategorizedID, excludedID string) bool {
	switch mode {
	case ModeUncategorized:
		return txn.CategoryID == "" || txn.CategoryID == uncategorizedID
	case ModeAll:
		return excludedID == "" || txn.CategoryID != excludedID
	}
	return false
}

func systemID(cats []model.Category, name string) string {
	for _, c := range cats {
		if c.IsSystem && c.Name == name {
			return c.ID
		}
	}
	return ""
}
