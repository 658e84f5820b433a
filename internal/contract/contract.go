// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/solarsite/schema"
)

// StoreManager defines the interface for managing persistence stores.
// This allows the storage layer to be mocked for testing.
type StoreManager interface {
	GetAnalysisStore() AnalysisStore
}

// AnalysisStore defines the interface for tracking scoring runs and storing reports.
type AnalysisStore interface {
	// BeginAnalysis creates a new analysis run and returns its unique ID
	BeginAnalysis(startTime time.Time, configParams map[string]any) (int64, error)

	// EndAnalysis updates the analysis run with completion data
	EndAnalysis(analysisID int64, endTime time.Time, totalSites int) error

	// RecordSiteReport stores the report summary and one row per criterion
	RecordSiteReport(analysisID int64, sitePath string, report schema.Report) error

	// GetStatus returns status information about the analysis store
	GetStatus() (schema.AnalysisStatus, error)

	// GetAllAnalysisRuns retrieves all analysis runs for export
	GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error)

	// GetAllSiteReports retrieves all report summaries for export
	GetAllSiteReports() ([]schema.SiteReportRecord, error)

	// GetAllCriterionScores retrieves all per-criterion rows for export
	GetAllCriterionScores() ([]schema.CriterionScoreRecord, error)

	// Close closes the underlying connection
	Close() error
}
