package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecisionRankAndMeets(t *testing.T) {
	assert.Greater(t, GoDecision.Rank(), ReviewDecision.Rank())
	assert.Greater(t, ReviewDecision.Rank(), NoGoDecision.Rank())
	assert.Equal(t, -1, Decision("Maybe").Rank())

	assert.True(t, GoDecision.Meets(GoDecision))
	assert.True(t, GoDecision.Meets(NoGoDecision))
	assert.True(t, ReviewDecision.Meets(ReviewDecision))
	assert.False(t, ReviewDecision.Meets(GoDecision))
	assert.False(t, NoGoDecision.Meets(ReviewDecision))
}

func TestDecisionLabel(t *testing.T) {
	assert.Equal(t, "GO", GoDecision.Label())
	assert.Equal(t, "REVIEW", ReviewDecision.Label())
	assert.Equal(t, "NO-GO", NoGoDecision.Label())
}

func TestParseDecision(t *testing.T) {
	tests := []struct {
		in   string
		want Decision
	}{
		{"go", GoDecision},
		{"GO", GoDecision},
		{" Review ", ReviewDecision},
		{"nogo", NoGoDecision},
		{"no-go", NoGoDecision},
		{"NoGo", NoGoDecision},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDecision(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseDecision("yes")
	assert.Error(t, err)
}

func TestFormatHelpers(t *testing.T) {
	v := 5.7
	assert.Equal(t, "5.70°", FormatRawValue(&v, "°"))
	assert.Equal(t, "N/A", FormatRawValue(nil, " km"))

	g := 5.25
	assert.Equal(t, "5.25 kWh/m²/day", FormatRawValue(&g, " kWh/m²/day"))

	assert.Equal(t, "20%", FormatWeight(0.20))
	assert.Equal(t, "7%", FormatWeight(0.07))
	assert.Equal(t, "2%", FormatWeight(0.02))

	assert.Equal(t, "5.5", FormatScore(5.5))
	assert.Equal(t, "10.0", FormatScore(10))
}
