package model

// Names of the protected system categories every workspace carries.
const (
	SystemUncategorized = "Uncategorized"
	SystemExcluded      = "Excluded"
	SystemIncome        = "Income"
)

// Category is a user-defined (or system) spending bucket with the keywords
// that route transactions into it.
type Category struct {
	ID   string // uuid
	Name string // unique within a set
	// Keywords are matched as case-insensitive substrings of a transaction's
	// MatchField, in order. Duplicates are legal and harmless.
	Keywords []string
	// IsSystem marks the built-in categories (Uncategorized, Excluded,
	// Income) that the engine depends on structurally.
	IsSystem bool
	// Matchable opts a system category into keyword matching. Income ships
	// with it set; Uncategorized and Excluded do not. Ignored for non-system
	// categories, which always match.
	Matchable bool
	Order     int // display and iteration order, low to high
}

// MatchEligible reports whether the category participates in keyword
// matching.
func (c Category) MatchEligible() bool {
	return !c.IsSystem || c.Matchable
}
