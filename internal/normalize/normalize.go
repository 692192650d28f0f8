package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	cibcSlashFormat = "01/02/2006"
	cibcISOFormat   = "2006-01-02"
	amexFormat      = "2 Jan. 2006"
)

var (
	cibcSlashPattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	cibcISOPattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	amexPattern      = regexp.MustCompile(`^\d{1,2} [A-Z][a-z]{2}\. \d{4}$`)
	plainNumber      = regexp.MustCompile(`^-?\d{1,3}(,\d{3})*(\.\d+)?$|^-?\d+(\.\d+)?$`)
	dollarAmount     = regexp.MustCompile(`^-?\$\s?-?[\d,]+(\.\d+)?$`)
)

// CIBCDate parses the two date forms CIBC exports use, MM/DD/YYYY and
// YYYY-MM-DD. Anything else is an error.
func CIBCDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	switch {
	case cibcSlashPattern.MatchString(s):
		return parseNoon(cibcSlashFormat, s)
	case cibcISOPattern.MatchString(s):
		return parseNoon(cibcISOFormat, s)
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// AmexDate parses the single form AMEX exports use, e.g. "15 Jan. 2024".
func AmexDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if !amexPattern.MatchString(s) {
		return time.Time{}, fmt.Errorf("unrecognized date %q", s)
	}
	return parseNoon(amexFormat, s)
}

// parseNoon anchors dates at local noon so timezone math never rolls a
// transaction into the neighboring day.
func parseNoon(layout, s string) (time.Time, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q", s)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.Local), nil
}

// Amount parses a statement amount literal: optional sign, optional dollar
// sign, thousands commas, NBSP/space padding. The empty string is an error;
// callers decide whether an empty cell means zero.
func Amount(s string) (decimal.Decimal, error) {
	cleaned := cleanAmount(s)
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unrecognized amount %q", s)
	}
	return d, nil
}

func cleanAmount(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '$', ',', ' ', ' ':
			return -1
		}
		return r
	}, s)
}

// IsCIBCDate reports whether s matches either CIBC date grammar. Used by
// format detection; cheaper than a full parse.
func IsCIBCDate(s string) bool {
	s = strings.TrimSpace(s)
	return cibcSlashPattern.MatchString(s) || cibcISOPattern.MatchString(s)
}

// IsAmexDate reports whether s matches the AMEX date grammar.
func IsAmexDate(s string) bool {
	return amexPattern.MatchString(strings.TrimSpace(s))
}

// IsPlainNumber reports whether s looks like a bare numeric amount with no
// currency symbol, the way CIBC writes amounts.
func IsPlainNumber(s string) bool {
	return plainNumber.MatchString(strings.TrimSpace(s))
}

// IsDollarAmount reports whether s carries a dollar sign the way AMEX writes
// amounts ("$12.34", "-$50.00").
func IsDollarAmount(s string) bool {
	return dollarAmount.MatchString(strings.TrimSpace(s))
}
