package model

// BankType identifies the institution whose export format a file follows.
type BankType string

const (
	BankCIBC    BankType = "cibc"
	BankAmex    BankType = "amex"
	BankUnknown BankType = "unknown"
)

// Confidence grades how well a file's contents match a bank fingerprint.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
	ConfidenceNone   Confidence = "none"
)

// ConfidenceFromRatio maps the fraction of fingerprint-matching rows to a
// confidence grade. A file with no evaluable rows must be graded none by the
// caller before computing a ratio.
func ConfidenceFromRatio(ratio float64) Confidence {
	switch {
	case ratio >= 0.8:
		return ConfidenceHigh
	case ratio >= 0.5:
		return ConfidenceMedium
	case ratio >= 0.2:
		return ConfidenceLow
	default:
		return ConfidenceNone
	}
}

// Detected reports whether the grade is strong enough to act on.
func (c Confidence) Detected() bool {
	return c == ConfidenceHigh || c == ConfidenceMedium || c == ConfidenceLow
}

// DetectionResult is the outcome of matching one file against one bank
// fingerprint (or, for the overall result, against all of them in priority
// order).
type DetectionResult struct {
	Bank       BankType
	Confidence Confidence
	Reason     string
}
