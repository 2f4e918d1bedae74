package analytics

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Upstream sheet exports carry day-first dates (India/UK locale), with
// or without a time component, alongside ISO dates from older exports.
// Each pattern captures fixed positions so DD/MM is never read as MM/DD.
var (
	dayFirstTimePattern = regexp.MustCompile(`(\d{2})/(\d{2})/(\d{4})\s+(\d{2}):(\d{2}):(\d{2})`)
	dayFirstPattern     = regexp.MustCompile(`(\d{2})/(\d{2})/(\d{4})`)
	isoPattern          = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)
)

// Layouts tried when none of the explicit patterns match.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
}

// ParseDate converts a raw payment-date string to a time. It accepts,
// in priority order, "DD/MM/YYYY HH:mm:ss", "DD/MM/YYYY" and
// "YYYY-MM-DD", then falls back to a set of generic layouts. The second
// return value is false for empty or unparseable input; callers must
// skip such records rather than propagate a bogus date.
func ParseDate(input string) (time.Time, bool) {
	if input == "" {
		return time.Time{}, false
	}

	if m := dayFirstTimePattern.FindStringSubmatch(input); m != nil {
		return makeDate(m[3], m[2], m[1], m[4], m[5], m[6]), true
	}
	if m := dayFirstPattern.FindStringSubmatch(input); m != nil {
		return makeDate(m[3], m[2], m[1], "0", "0", "0"), true
	}
	if m := isoPattern.FindStringSubmatch(input); m != nil {
		return makeDate(m[1], m[2], m[3], "0", "0", "0"), true
	}

	trimmed := strings.TrimSpace(input)
	for _, layout := range fallbackLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func makeDate(year, month, day, hour, min, sec string) time.Time {
	y, _ := strconv.Atoi(year)
	mo, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	h, _ := strconv.Atoi(hour)
	mi, _ := strconv.Atoi(min)
	s, _ := strconv.Atoi(sec)
	return time.Date(y, time.Month(mo), d, h, mi, s, 0, time.Local)
}
