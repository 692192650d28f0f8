package categorize

import (
	"fmt"
	"strings"

	"github.com/jos-ren/Sors-Finance-sub002/internal/model"
)

// Categorize assigns at most one category to each transaction by keyword
// matching and returns updated copies. It is a pure function of each
// transaction's MatchField and the category keywords: prior assignment
// state is recomputed from scratch, so running it twice changes nothing.
//
// Zero matches leave the transaction unassigned. Exactly one match assigns
// it. Two or more set the conflict flag and record every matched category,
// in category order, for a human to pick from.
func Categorize(txns []model.Transaction, cats []model.Category) []model.Transaction {
	out := make([]model.Transaction, len(txns))
	for i, txn := range txns {
		out[i] = categorizeOne(txn, cats)
	}
	return out
}

func categorizeOne(txn model.Transaction, cats []model.Category) model.Transaction {
	txn.CategoryID = ""
	txn.IsConflict = false
	txn.ConflictingCategories = nil

	matched := Matches(txn.MatchField, cats)
	switch len(matched) {
	case 0:
	case 1:
		txn.CategoryID = matched[0]
	default:
		txn.IsConflict = true
		txn.ConflictingCategories = matched
	}
	return txn
}

// Matches returns the ID of every category holding at least one keyword
// contained in matchField, preserving category order. Matching is
// case-insensitive substring containment, not word-boundary: keyword "GAS"
// matches "GASTROPUB".
func Matches(matchField string, cats []model.Category) []string {
	field := strings.ToLower(matchField)
	var ids []string
	for _, cat := range cats {
		for _, kw := range cat.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			if strings.Contains(field, kw) {
				ids = append(ids, cat.ID)
				break
			}
		}
	}
	return ids
}

// MatchableCategories filters to the categories keyword matching may use:
// every user category, plus the system ones flagged matchable (Income).
func MatchableCategories(cats []model.Category) []model.Category {
	out := make([]model.Category, 0, len(cats))
	for _, c := range cats {
		if c.MatchEligible() {
			out = append(out, c)
		}
	}
	return out
}

// ResolveConflict records a human's category choice for one transaction and
// returns updated copies. The conflict flag stays set as provenance; only
// LiveConflict becomes false once a category is assigned.
func ResolveConflict(txns []model.Transaction, cats []model.Category, txnID, categoryID string) ([]model.Transaction, error) {
	if !categoryExists(cats, categoryID) {
		return nil, fmt.Errorf("category %q not found", categoryID)
	}

	out := make([]model.Transaction, len(txns))
	found := false
	for i, txn := range txns {
		if txn.ID == txnID {
			txn.CategoryID = categoryID
			found = true
		}
		out[i] = txn
	}
	if !found {
		return nil, fmt.Errorf("transaction %q not found", txnID)
	}
	return out, nil
}

func categoryExists(cats []model.Category, id string) bool {
	for _, c := range cats {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Summary is derived from transaction state, never stored. A resolved
// conflict counts as categorized; rows sitting in Uncategorized count as
// unassigned.
type Summary struct {
	Total       int
	Categorized int
	Conflicts   int
	Unassigned  int
	Duplicates  int
}

// Summarize tallies categorization state. duplicates is supplied by the
// import path, which filters them before they ever become transactions.
func Summarize(txns []model.Transaction, duplicates int, uncategorizedID string) Summary {
	s := Summary{Total: len(txns), Duplicates: duplicates}
	for _, txn := range txns {
		switch {
		case txn.LiveConflict():
			s.Conflicts++
		case txn.CategoryID == "" || txn.CategoryID == uncategorizedID:
			s.Unassigned++
		default:
			s.Categorized++
		}
	}
	return s
}
