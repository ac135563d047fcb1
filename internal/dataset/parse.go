package dataset

import (
	"strconv"
	"strings"
	"time"
)

var timeLayouts = []string{
	time.RFC3339, "2006-01-02", "2006/01/02", "02/01/2006", "01/02/2006",
	"2006-01-02 15:04", "2006-01-02 15:04:05", "1/2/2006 15:04", "1/2/2006 15:04:05",
}

// parseTimeMaybe probes common layouts plus any extras from configuration.
func parseTimeMaybe(s string, extra []string) (time.Time, bool) {
	for _, l := range timeLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	for _, l := range extra {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseNumeric parses a numeric-looking string, tolerating currency prefixes,
// percent signs, and either comma or dot as the decimal separator.
func parseNumeric(s string) (float64, bool) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimPrefix(raw, "$")
	raw = strings.ReplaceAll(raw, "%", "")
	raw = strings.ReplaceAll(raw, "\u00a0", " ") // non-breaking space
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	// Decide decimal separator: when both appear, the rightmost one wins.
	dec := '.'
	var thou rune
	cpos := strings.LastIndex(raw, ",")
	dpos := strings.LastIndex(raw, ".")
	switch {
	case cpos >= 0 && dpos >= 0:
		if cpos > dpos {
			dec, thou = ',', '.'
		} else {
			dec, thou = '.', ','
		}
	case cpos >= 0:
		// A lone comma between digit groups of three is a thousands separator.
		if len(raw)-cpos == 4 && strings.Count(raw, ",") >= 1 && !strings.ContainsRune(raw[cpos+1:], '.') && commaLooksLikeThousands(raw) {
			thou = ','
		} else {
			dec = ','
		}
	}
	if thou != 0 {
		raw = strings.ReplaceAll(raw, string(thou), "")
	}
	raw = strings.ReplaceAll(raw, " ", "")
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// commaLooksLikeThousands reports whether every comma in s is followed by
// exactly three digits, as in 1,234,567.
func commaLooksLikeThousands(s string) bool {
	parts := strings.Split(s, ",")
	for i := 1; i < len(parts); i++ {
		p := parts[i]
		if len(p) != 3 {
			return false
		}
		for _, r := range p {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}
