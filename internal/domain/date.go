package domain

import (
	"strings"
	"time"
)

// DateLayout is the ledger's native date format (DD-MM-YYYY).
const DateLayout = "02-01-2006"

// Epoch is the instant assigned to missing or unparseable dates.
var Epoch = time.Unix(0, 0).UTC()

// fallbackLayouts is the accepted grammar for dates not written as DD-MM-YYYY,
// tried in order. RFC1123 covers dates serialized by the upstream HTTP layer.
var fallbackLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC1123,
	time.RFC1123Z,
	"02/01/2006",
}

// ParseDate parses a ledger date. DD-MM-YYYY (day and month may have one
// digit) is tried first, then fallbackLayouts. ok is false when nothing matched.
func ParseDate(s string) (t time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Epoch, false
	}
	if t, err := time.Parse("2-1-2006", s); err == nil {
		return t, true
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return Epoch, false
}

// DateOrEpoch parses a ledger date, degrading to Epoch instead of failing.
func DateOrEpoch(s string) time.Time {
	t, _ := ParseDate(s)
	return t
}

// FormatDate renders an instant in the ledger's native format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
