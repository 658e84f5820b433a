// Package schema has models and constants for all parts of solarsite.
package schema

// Criterion is one row of the decision matrix.
// Best and Worst are only meaningful for LinearThreshold, as is HigherIsBetter.
type Criterion struct {
	Key            string  `json:"key" yaml:"key"`
	DisplayName    string  `json:"name" yaml:"name"`
	Unit           string  `json:"unit" yaml:"unit"`
	Weight         float64 `json:"weight" yaml:"weight"`
	Policy         Policy  `json:"policy" yaml:"policy"`
	Best           float64 `json:"best,omitempty" yaml:"best,omitempty"`
	Worst          float64 `json:"worst,omitempty" yaml:"worst,omitempty"`
	HigherIsBetter bool    `json:"higher_is_better,omitempty" yaml:"higher_is_better,omitempty"`
	Suggestion     string  `json:"suggestion" yaml:"suggestion"`
}

// SiteInput holds the raw metrics for one candidate site.
// A key mapped to nil is unavailable, a key absent from Metrics is malformed input.
type SiteInput struct {
	Name      string              // Optional display name
	Metrics   map[string]*float64 // Metric key to raw value
	Ownership *int                // Manual land-ownership code (1 = government)
}

// ScoredRow is the normalized result for a single criterion.
type ScoredRow struct {
	Key           string   `json:"key" yaml:"key"`
	DisplayName   string   `json:"name" yaml:"name"`
	Unit          string   `json:"unit" yaml:"unit"`
	RawValue      *float64 `json:"raw_value" yaml:"raw_value"`
	Score         float64  `json:"score" yaml:"score"`
	Weight        float64  `json:"weight" yaml:"weight"`
	WeightedScore float64  `json:"weighted_score" yaml:"weighted_score"`
}

// Report is the full evaluation of one site.
type Report struct {
	Site        string      `json:"site,omitempty" yaml:"site,omitempty"`
	Rows        []ScoredRow `json:"rows" yaml:"rows"`
	TotalScore  float64     `json:"total_score" yaml:"total_score"`
	Decision    Decision    `json:"decision" yaml:"decision"`
	Suggestions []string    `json:"suggestions" yaml:"suggestions"`
}

// SiteResult ties a report to the document it came from.
type SiteResult struct {
	Path   string `json:"path" yaml:"path"`
	Report Report `json:"report" yaml:"report"`
}
