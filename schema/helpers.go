package schema

import (
	"fmt"
	"math"
	"strings"
)

// Rank orders decisions so that a larger value is a better outcome.
// Unknown decisions rank below NoGo.
func (d Decision) Rank() int {
	switch d {
	case GoDecision:
		return 2
	case ReviewDecision:
		return 1
	case NoGoDecision:
		return 0
	default:
		return -1
	}
}

// Meets reports whether d is at least as good as required.
func (d Decision) Meets(required Decision) bool {
	return d.Rank() >= required.Rank()
}

// Label is the upper-case form shown in text output.
func (d Decision) Label() string {
	switch d {
	case GoDecision:
		return "GO"
	case ReviewDecision:
		return "REVIEW"
	case NoGoDecision:
		return "NO-GO"
	default:
		return strings.ToUpper(string(d))
	}
}

// ParseDecision accepts go, review, nogo or no-go in any case.
func ParseDecision(s string) (Decision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "go":
		return GoDecision, nil
	case "review":
		return ReviewDecision, nil
	case "nogo", "no-go", "no_go":
		return NoGoDecision, nil
	}
	return "", fmt.Errorf("invalid decision '%s'. Must be go, review or nogo", s)
}

// FormatRawValue renders a raw metric with two decimals and its unit, or N/A.
func FormatRawValue(v *float64, unit string) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%s", *v, unit)
}

// FormatWeight renders a weight as a whole percentage.
func FormatWeight(w float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(w*100)))
}

// FormatScore renders a normalized score with one decimal.
func FormatScore(s float64) string {
	return fmt.Sprintf("%.1f", s)
}
