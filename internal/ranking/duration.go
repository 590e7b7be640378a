package ranking

import (
	"math"
	"regexp"
	"strconv"

	"thirdcoast.systems/trendscout/pkg/utils/format"
)

// ShortMaxSeconds is the longest duration still counted as short-form.
const ShortMaxSeconds = 60

// MaxSeconds caps parsed durations; larger tokens saturate here.
const MaxSeconds = math.MaxInt32

var durationPattern = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// Duration is a parsed ISO-8601 video duration token.
type Duration struct {
	Seconds int
	// Valid is false when the token did not contain a PT duration at all.
	Valid bool
}

// ParseDuration parses tokens such as "PT1H2M3S", "PT5M" or "PT45S". Any of
// the hour, minute and second groups may be absent. Malformed input yields a
// zero, invalid Duration rather than an error.
func ParseDuration(token string) Duration {
	m := durationPattern.FindStringSubmatch(token)
	if m == nil {
		return Duration{}
	}
	total := groupSeconds(m[1], 3600) + groupSeconds(m[2], 60) + groupSeconds(m[3], 1)
	if total > MaxSeconds {
		total = MaxSeconds
	}
	return Duration{
		Seconds: int(total),
		Valid:   true,
	}
}

// Clock renders the duration as "H:MM:SS" or "M:SS".
func (d Duration) Clock() string {
	return format.Clock(d.Seconds)
}

// IsShort reports whether the duration counts as short-form content.
func (d Duration) IsShort() bool {
	return d.Valid && d.Seconds <= ShortMaxSeconds
}

// FormatDuration is a shorthand for ParseDuration(token).Clock().
func FormatDuration(token string) string {
	return ParseDuration(token).Clock()
}

// IsShort is a shorthand for ParseDuration(token).IsShort().
func IsShort(token string) bool {
	return ParseDuration(token).IsShort()
}

// groupSeconds converts one digit group to seconds, saturating at
// MaxSeconds. The pattern only admits digits, so a parse error means the
// value is out of range.
func groupSeconds(digits string, unit int64) int64 {
	if digits == "" {
		return 0
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n > MaxSeconds/unit {
		return MaxSeconds
	}
	return n * unit
}
