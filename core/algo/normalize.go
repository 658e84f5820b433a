// Package algo has the pure scoring functions behind a site evaluation.
package algo

import "github.com/huangsam/solarsite/schema"

// Fixed bounds for the categorical policies.
const (
	ElevationMin      = 50.0   // meters, inclusive
	ElevationMax      = 1500.0 // meters, inclusive
	ElevationInRange  = 10.0
	ElevationOutRange = 2.0

	LandCoverFavorable   = 10.0
	LandCoverUnfavorable = 3.0

	GovernmentOwnership = 1
	OwnershipGovernment = 10.0
	OwnershipPrivate    = 5.0
)

// favorableLandCover holds the ESA WorldCover classes that need little preparation:
// grassland (30), cropland (40) and bare or sparse vegetation (60).
var favorableLandCover = map[float64]struct{}{
	30: {},
	40: {},
	60: {},
}

// Normalize maps a raw value onto the 0-10 suitability scale of its criterion.
// A nil raw value scores 0 unless the policy is ManualOwnership, which only reads ownership.
func Normalize(c schema.Criterion, raw *float64, ownership int) float64 {
	if c.Policy == schema.ManualOwnership {
		return ScoreOwnership(ownership)
	}
	if raw == nil {
		return schema.UnavailableScore
	}
	switch c.Policy {
	case schema.LinearThreshold:
		return ScoreLinear(*raw, c.Best, c.Worst, c.HigherIsBetter)
	case schema.ElevationRange:
		return ScoreElevation(*raw)
	case schema.LandCoverCategory:
		return ScoreLandCover(*raw)
	default:
		return schema.UnavailableScore
	}
}

// ScoreLinear interpolates between worst (1) and best (10), clamping outside the thresholds.
func ScoreLinear(v, best, worst float64, higherIsBetter bool) float64 {
	if higherIsBetter {
		if v >= best {
			return schema.MaxScore
		}
		if v <= worst {
			return schema.MinScore
		}
		return schema.MinScore + 9*(v-worst)/(best-worst)
	}
	if v <= best {
		return schema.MaxScore
	}
	if v >= worst {
		return schema.MinScore
	}
	return schema.MinScore + 9*(worst-v)/(worst-best)
}

// ScoreElevation rewards elevations inside [ElevationMin, ElevationMax].
func ScoreElevation(v float64) float64 {
	if v >= ElevationMin && v <= ElevationMax {
		return ElevationInRange
	}
	return ElevationOutRange
}

// ScoreLandCover rewards the favorable land cover classes. Codes are compared exactly.
func ScoreLandCover(code float64) float64 {
	if _, ok := favorableLandCover[code]; ok {
		return LandCoverFavorable
	}
	return LandCoverUnfavorable
}

// ScoreOwnership prefers government land.
func ScoreOwnership(code int) float64 {
	if code == GovernmentOwnership {
		return OwnershipGovernment
	}
	return OwnershipPrivate
}
