package core

import (
	"math"

	"github.com/huangsam/solarsite/core/algo"
	"github.com/huangsam/solarsite/schema"
)

// Evaluate runs one site through normalization, aggregation and classification.
// Every metric key must be present; nil values are scored as unavailable.
func Evaluate(input schema.SiteInput) (schema.Report, error) {
	if input.Ownership == nil {
		return schema.Report{}, schema.NewInvalidInput(OwnershipKey, "is required")
	}
	ownership := *input.Ownership

	rows := make([]schema.ScoredRow, 0, len(catalog))
	for _, c := range catalog {
		var raw *float64
		if c.Policy == schema.ManualOwnership {
			code := float64(ownership)
			raw = &code
		} else {
			v, ok := input.Metrics[c.Key]
			if !ok {
				return schema.Report{}, schema.NewInvalidInput(c.Key, "is missing")
			}
			if v != nil {
				if math.IsNaN(*v) {
					return schema.Report{}, schema.NewInvalidInput(c.Key, "must be a number")
				}
				value := *v
				raw = &value
			}
		}

		score := algo.Normalize(c, raw, ownership)
		rows = append(rows, schema.ScoredRow{
			Key:           c.Key,
			DisplayName:   c.DisplayName,
			Unit:          c.Unit,
			RawValue:      raw,
			Score:         score,
			Weight:        c.Weight,
			WeightedScore: score * c.Weight,
		})
	}

	total, suggestions := algo.Aggregate(catalog[:], rows)
	return AssembleReport(input.Name, rows, total, algo.Classify(total), suggestions), nil
}

// AssembleReport builds the final report, substituting the no-concerns message
// when nothing underperformed.
func AssembleReport(site string, rows []schema.ScoredRow, total float64, decision schema.Decision, suggestions []string) schema.Report {
	if len(suggestions) == 0 {
		suggestions = []string{schema.NoConcernsMessage}
	}
	return schema.Report{
		Site:        site,
		Rows:        rows,
		TotalScore:  total,
		Decision:    decision,
		Suggestions: suggestions,
	}
}
