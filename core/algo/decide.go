package algo

import "github.com/huangsam/solarsite/schema"

// Classify maps a total score to a decision. Band lower bounds are inclusive.
func Classify(total float64) schema.Decision {
	switch {
	case total >= schema.GoThreshold:
		return schema.GoDecision
	case total >= schema.ReviewThreshold:
		return schema.ReviewDecision
	default:
		return schema.NoGoDecision
	}
}
