package dedup

import "github.com/jos-ren/Sors-Finance-sub002/internal/model"

// Set holds the signatures of already-stored transactions. Built once per
// import from the full existing set, then checked per incoming row.
type Set map[string]struct{}

// NewSet collects signatures from existing transactions in one pass.
func NewSet(txns []model.Transaction) Set {
	s := make(Set, len(txns))
	for _, txn := range txns {
		s[txn.Signature()] = struct{}{}
	}
	return s
}

// FromSignatures builds a set from precomputed signature strings.
func FromSignatures(sigs []string) Set {
	s := make(Set, len(sigs))
	for _, sig := range sigs {
		s[sig] = struct{}{}
	}
	return s
}

// Contains reports whether an equivalent transaction is already present.
func (s Set) Contains(txn model.Transaction) bool {
	_, ok := s[txn.Signature()]
	return ok
}

// Add records a transaction's signature.
func (s Set) Add(txn model.Transaction) {
	s[txn.Signature()] = struct{}{}
}

// Filter splits incoming rows into fresh ones and re-imports of rows already
// in the set. Rows inside one batch are never checked against each other:
// two identical purchases on the same day in one statement are both real.
// The signature is a safety net, not a guarantee.
func Filter(incoming []model.Transaction, existing Set) (fresh, duplicates []model.Transaction) {
	for _, txn := range incoming {
		if existing.Contains(txn) {
			duplicates = append(duplicates, txn)
			continue
		}
		fresh = append(fresh, txn)
	}
	return fresh, duplicates
}
