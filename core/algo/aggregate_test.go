package algo

import (
	"testing"

	"github.com/huangsam/solarsite/schema"
	"github.com/stretchr/testify/assert"
)

func row(score, weight float64) schema.ScoredRow {
	return schema.ScoredRow{Score: score, Weight: weight, WeightedScore: score * weight}
}

func TestAggregate(t *testing.T) {
	criteria := []schema.Criterion{
		{Key: "a", Suggestion: "fix a"},
		{Key: "b", Suggestion: "fix b"},
		{Key: "c", Suggestion: ""},
		{Key: "d", Suggestion: "fix a"},
		{Key: "e", Suggestion: "fix e"},
	}

	t.Run("weighted sum and filtered suggestions", func(t *testing.T) {
		rows := []schema.ScoredRow{row(4.9, 0.5), row(5.0, 0.2), row(0, 0.1), row(1, 0.1), row(3, 0.1)}
		total, suggestions := Aggregate(criteria, rows)
		assert.InDelta(t, 4.9*0.5+5.0*0.2+0+1*0.1+3*0.1, total, 1e-9)
		// b sits on the threshold, c has no text, d repeats a.
		assert.Equal(t, []string{"fix a", "fix e"}, suggestions)
	})

	t.Run("nothing below threshold", func(t *testing.T) {
		rows := []schema.ScoredRow{row(10, 0.2), row(10, 0.2), row(10, 0.2), row(10, 0.2), row(10, 0.2)}
		total, suggestions := Aggregate(criteria, rows)
		assert.InDelta(t, 10.0, total, 1e-9)
		assert.Empty(t, suggestions)
		assert.NotNil(t, suggestions)
	})

	t.Run("order invariant total", func(t *testing.T) {
		rows := []schema.ScoredRow{row(7, 0.3), row(2, 0.1), row(9, 0.25), row(4, 0.15), row(6, 0.2)}
		reversed := make([]schema.ScoredRow, len(rows))
		for i, r := range rows {
			reversed[len(rows)-1-i] = r
		}
		forward, _ := Aggregate(criteria, rows)
		backward, _ := Aggregate(criteria, reversed)
		assert.InDelta(t, forward, backward, 1e-9)
	})
}
