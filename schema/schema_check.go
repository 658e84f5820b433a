package schema

// CheckResult is the outcome of gating one site against a required decision.
type CheckResult struct {
	Path        string   `json:"path" yaml:"path"`
	Site        string   `json:"site,omitempty" yaml:"site,omitempty"`
	TotalScore  float64  `json:"total_score" yaml:"total_score"`
	Decision    Decision `json:"decision" yaml:"decision"`
	Required    Decision `json:"required" yaml:"required"`
	Passed      bool     `json:"passed" yaml:"passed"`
	Suggestions []string `json:"suggestions" yaml:"suggestions"`
}
