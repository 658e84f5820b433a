package algo

import (
	"math"
	"testing"

	"github.com/huangsam/solarsite/schema"
	"github.com/stretchr/testify/assert"
)

var (
	slopeCriterion = schema.Criterion{
		Key: "slope", Policy: schema.LinearThreshold, Best: 5.7, Worst: 15, Weight: 0.20,
	}
	ghiCriterion = schema.Criterion{
		Key: "ghi", Policy: schema.LinearThreshold, Best: 5.5, Worst: 4.5, HigherIsBetter: true, Weight: 0.15,
	}
	floodCriterion = schema.Criterion{
		Key: "floodRisk", Policy: schema.LinearThreshold, Best: 0, Worst: 5, Weight: 0.02,
	}
	elevationCriterion = schema.Criterion{Key: "elevation", Policy: schema.ElevationRange, Weight: 0.03}
	landCoverCriterion = schema.Criterion{Key: "landCover", Policy: schema.LandCoverCategory, Weight: 0.10}
	ownershipCriterion = schema.Criterion{Key: "landOwnership", Policy: schema.ManualOwnership, Weight: 0.06}
)

func ptr(v float64) *float64 { return &v }

// TestNormalize covers endpoints, interpolation and the categorical policies.
func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		criterion schema.Criterion
		raw       *float64
		ownership int
		expected  float64
	}{
		{"slope at best", slopeCriterion, ptr(5.7), 0, 10},
		{"slope below best", slopeCriterion, ptr(0), 0, 10},
		{"slope at worst", slopeCriterion, ptr(15), 0, 1},
		{"slope beyond worst", slopeCriterion, ptr(40), 0, 1},
		{"slope midpoint", slopeCriterion, ptr(10.35), 0, 5.5},
		{"slope unavailable", slopeCriterion, nil, 0, 0},
		{"ghi at best", ghiCriterion, ptr(5.5), 0, 10},
		{"ghi above best", ghiCriterion, ptr(7.1), 0, 10},
		{"ghi at worst", ghiCriterion, ptr(4.5), 0, 1},
		{"ghi midpoint", ghiCriterion, ptr(5.0), 0, 5.5},
		{"flood zero hectares", floodCriterion, ptr(0), 0, 10},
		{"flood at worst", floodCriterion, ptr(5), 0, 1},
		{"elevation inside", elevationCriterion, ptr(800), 0, 10},
		{"elevation lower bound", elevationCriterion, ptr(50), 0, 10},
		{"elevation upper bound", elevationCriterion, ptr(1500), 0, 10},
		{"elevation too high", elevationCriterion, ptr(1600), 0, 2},
		{"elevation too low", elevationCriterion, ptr(49.9), 0, 2},
		{"elevation unavailable", elevationCriterion, nil, 0, 0},
		{"land cover cropland", landCoverCriterion, ptr(40), 0, 10},
		{"land cover grassland", landCoverCriterion, ptr(30), 0, 10},
		{"land cover bare", landCoverCriterion, ptr(60), 0, 10},
		{"land cover trees", landCoverCriterion, ptr(10), 0, 3},
		{"land cover built-up", landCoverCriterion, ptr(50), 0, 3},
		{"land cover fractional", landCoverCriterion, ptr(30.5), 0, 3},
		{"land cover unavailable", landCoverCriterion, nil, 0, 0},
		{"ownership government", ownershipCriterion, nil, 1, 10},
		{"ownership private", ownershipCriterion, nil, 2, 5},
		{"ownership unknown code", ownershipCriterion, nil, 0, 5},
		{"ownership ignores raw", ownershipCriterion, ptr(1), 2, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.criterion, tt.raw, tt.ownership)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

// TestScoreLinearMonotonic checks that scores never move against the criterion's direction.
func TestScoreLinearMonotonic(t *testing.T) {
	prevLower := math.Inf(1)
	prevHigher := math.Inf(-1)
	for v := 0.0; v <= 20; v += 0.05 {
		lower := ScoreLinear(v, 5.7, 15, false)
		assert.LessOrEqual(t, lower, prevLower, "lower-is-better must not increase at %v", v)
		prevLower = lower

		higher := ScoreLinear(v, 5.5, 4.5, true)
		assert.GreaterOrEqual(t, higher, prevHigher, "higher-is-better must not decrease at %v", v)
		prevHigher = higher
	}
}

// FuzzScoreLinear checks that any finite input stays within [1, 10].
func FuzzScoreLinear(f *testing.F) {
	f.Add(10.35, 5.7, 15.0, false)
	f.Add(5.0, 5.5, 4.5, true)
	f.Add(0.0, 0.0, 5.0, false)
	f.Add(-1e9, 100.0, 20.0, true)

	f.Fuzz(func(t *testing.T, v, best, worst float64, higherIsBetter bool) {
		for _, x := range []float64{v, best, worst} {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return
			}
		}
		if higherIsBetter && best <= worst {
			return
		}
		if !higherIsBetter && best >= worst {
			return
		}
		// Keep the span representable so interpolation does not overflow.
		if math.Abs(best-worst) > 1e300 || math.Abs(v) > 1e300 {
			return
		}
		got := ScoreLinear(v, best, worst, higherIsBetter)
		if got < schema.MinScore-1e-9 || got > schema.MaxScore+1e-9 {
			t.Errorf("ScoreLinear(%v, %v, %v, %v) = %v, out of range", v, best, worst, higherIsBetter, got)
		}
	})
}

func BenchmarkNormalize(b *testing.B) {
	v := 10.35
	for b.Loop() {
		_ = Normalize(slopeCriterion, &v, 1)
	}
}
