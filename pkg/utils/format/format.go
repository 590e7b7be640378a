package format

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

// Clock converts whole seconds to "M:SS" or "H:MM:SS" display format.
func Clock(seconds int) string {
	if seconds < 0 {
		return "0:00"
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	sec := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}

// Count formats a counter with K/M suffixes for display (e.g. 1500 → "1.5K").
func Count(n uint64) string {
	if n >= 1000000 {
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	} else if n >= 1000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	}
	return fmt.Sprintf("%d", n)
}

// Ratio formats a viral ratio as a percentage with thousands separators
// (e.g. 12345.62 → "12,345.6%").
func Ratio(r float64) string {
	return humanize.CommafWithDigits(r, 1) + "%"
}

// Truncate returns s truncated to max runes with "..." suffix.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 3 {
		return strings.Repeat(".", max)
	}
	r := []rune(s)
	return string(r[:max-3]) + "..."
}
