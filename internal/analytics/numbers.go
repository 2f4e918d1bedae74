package analytics

import (
	"strconv"
	"strings"
)

// ParseAmount converts a numeric wire field to a float64, recovering a
// leading numeric prefix when trailing garbage follows the number.
// Invalid or missing input degrades to 0; this function never fails.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}

	end := 0
	seenDot := false
	for i, r := range s {
		if r == '-' || r == '+' {
			if i != 0 {
				break
			}
		} else if r == '.' {
			if seenDot {
				break
			}
			seenDot = true
		} else if r < '0' || r > '9' {
			break
		}
		end = i + 1
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return v
}

// estimatedVAT is the monthly-rollup tax policy: the explicit VAT wins
// when it parses to a non-zero amount, otherwise tax is estimated at a
// flat 15% of the sale. An explicit "0" VAT is indistinguishable from a
// blank one here; that conflation matches the upstream dashboard and is
// kept until the product owner rules on it.
func estimatedVAT(sale float64, rawVAT string) float64 {
	if v := ParseAmount(rawVAT); v != 0 {
		return v
	}
	return sale * 0.15
}

// directVAT is the group-totals tax policy: the parsed VAT as-is, with
// missing or unparseable values contributing 0 and no estimate applied.
// The asymmetry with estimatedVAT is deliberate; swapping one for the
// other is the designated one-line fix if the policies are ever unified.
func directVAT(rawVAT string) float64 {
	return ParseAmount(rawVAT)
}
