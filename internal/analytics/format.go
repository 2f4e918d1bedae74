package analytics

import (
	"math"
	"strconv"
	"strings"
)

// Indian numbering thresholds. Displayed figures abbreviate at one
// thousand (K), one lakh (L) and one crore (Cr); these cutoffs are a
// domain convention and must not drift.
const (
	crore    = 10_000_000
	lakh     = 100_000
	thousand = 1_000
)

// FormatCurrency renders an amount for display with the ₹ symbol,
// K/L/Cr magnitude abbreviation and en-IN digit grouping below one
// thousand. Callers needing the raw value must not re-parse the result.
func FormatCurrency(amount float64) string {
	return "₹" + FormatNumber(amount)
}

// FormatNumber is FormatCurrency without the currency symbol.
func FormatNumber(value float64) string {
	switch {
	case value >= crore:
		return abbreviate(value/crore) + "Cr"
	case value >= lakh:
		return abbreviate(value/lakh) + "L"
	case value >= thousand:
		return abbreviate(value/thousand) + "K"
	}
	return groupIndian(math.Round(value))
}

// abbreviate keeps at most two decimals and drops trailing zeros, so
// 1.25 lakh renders as "1.25L" and 2 crore as "2Cr".
func abbreviate(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// groupIndian applies en-IN digit grouping: the last three digits form
// one group, every group before it has two digits (12,34,567).
func groupIndian(v float64) string {
	neg := v < 0
	s := strconv.FormatFloat(math.Abs(v), 'f', 0, 64)

	if len(s) > 3 {
		var groups []string
		head := s[:len(s)-3]
		groups = append(groups, s[len(s)-3:])
		for len(head) > 2 {
			groups = append(groups, head[len(head)-2:])
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append(groups, head)
		}
		for i, j := 0, len(groups)-1; i < j; i, j = i+1, j-1 {
			groups[i], groups[j] = groups[j], groups[i]
		}
		s = strings.Join(groups, ",")
	}

	if neg {
		return "-" + s
	}
	return s
}
