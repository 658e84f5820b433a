package algo

import "github.com/huangsam/solarsite/schema"

// Aggregate sums the weighted scores and collects the suggestions of underperforming rows.
// rows[i] must belong to criteria[i]. Suggestions keep catalog order and each text appears once.
func Aggregate(criteria []schema.Criterion, rows []schema.ScoredRow) (float64, []string) {
	var total float64
	suggestions := []string{}
	seen := make(map[string]struct{})
	for i, row := range rows {
		total += row.WeightedScore
		if i >= len(criteria) || row.Score >= schema.SuggestionThreshold {
			continue
		}
		text := criteria[i].Suggestion
		if text == "" {
			continue
		}
		if _, dup := seen[text]; dup {
			continue
		}
		seen[text] = struct{}{}
		suggestions = append(suggestions, text)
	}
	return total, suggestions
}
