package schema

import "time"

// AnalysisRunRecord represents a row from the solarsite_analysis_runs table.
type AnalysisRunRecord struct {
	AnalysisID       int64
	StartTime        time.Time
	EndTime          *time.Time
	RunDurationMs    *int32
	TotalSitesScored int32
	ConfigParams     *string
}

// SiteReportRecord represents a row from the solarsite_site_reports table.
type SiteReportRecord struct {
	AnalysisID      int64
	SitePath        string
	SiteName        *string
	AnalysisTime    time.Time
	TotalScore      float64
	Decision        string
	SuggestionCount int32
}

// CriterionScoreRecord represents a row from the solarsite_criterion_scores table.
type CriterionScoreRecord struct {
	AnalysisID    int64
	SitePath      string
	CriterionKey  string
	RawValue      *float64 // nil when the metric was unavailable
	Score         float64
	Weight        float64
	WeightedScore float64
}
