package id

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatBatchID returns an import batch ID like "2024-01-003".
func FormatBatchID(year, month, seq int) string {
	return fmt.Sprintf("%04d-%02d-%03d", year, month, seq)
}

// ParseBatchID parses "2024-01-003" into year, month, seq.
func ParseBatchID(id string) (year, month, seq int, err error) {
	parts := strings.SplitN(id, "-", 3)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid batch ID format: %q", id)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid year in batch ID %q: %w", id, err)
	}

	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid month in batch ID %q: %w", id, err)
	}

	seq, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid sequence in batch ID %q: %w", id, err)
	}

	return year, month, seq, nil
}

// NextBatchID returns the first unused batch ID for now's year-month, given
// every batch ID already in use.
func NextBatchID(now time.Time, existing []string) string {
	year, month := now.Year(), int(now.Month())

	maxSeq := 0
	for _, e := range existing {
		y, m, seq, err := ParseBatchID(e)
		if err != nil || y != year || m != month {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return FormatBatchID(year, month, maxSeq+1)
}
