package model

// ParseResult is what a statement parser returns: every row that normalized
// cleanly plus one diagnostic per row that did not. A malformed row never
// aborts the file.
type ParseResult struct {
	Transactions []Transaction
	Errors       []string // one per bad row, in row order
}
