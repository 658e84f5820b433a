// Package parquet exports tracked scoring runs to Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/solarsite/schema"
	"github.com/parquet-go/parquet-go"
)

// AnalysisRun maps to the solarsite_analysis_runs table.
type AnalysisRun struct {
	AnalysisID int64     `parquet:"analysis_id,snappy"`
	StartTime  time.Time `parquet:"start_time,snappy"`

	// EndTime and RunDurationMs stay empty for runs that never finished
	EndTime       *time.Time `parquet:"end_time,optional,snappy"`
	RunDurationMs *int32     `parquet:"run_duration_ms,optional,snappy"`

	TotalSitesScored int32 `parquet:"total_sites_scored,snappy"`

	// ConfigParams contains the JSON-encoded configuration of the run
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// SiteReport maps to the solarsite_site_reports table.
type SiteReport struct {
	AnalysisID      int64     `parquet:"analysis_id,snappy"`
	SitePath        string    `parquet:"site_path,snappy"`
	SiteName        *string   `parquet:"site_name,optional,snappy"`
	AnalysisTime    time.Time `parquet:"analysis_time,snappy"`
	TotalScore      float64   `parquet:"total_score,snappy"`
	Decision        string    `parquet:"decision,dict,snappy"`
	SuggestionCount int32     `parquet:"suggestion_count,snappy"`
}

// CriterionScore maps to the solarsite_criterion_scores table.
type CriterionScore struct {
	AnalysisID   int64  `parquet:"analysis_id,snappy"`
	SitePath     string `parquet:"site_path,snappy"`
	CriterionKey string `parquet:"criterion_key,dict,snappy"`

	// RawValue is empty when the metric was unavailable
	RawValue      *float64 `parquet:"raw_value,optional,snappy"`
	Score         float64  `parquet:"score,snappy"`
	Weight        float64  `parquet:"weight,snappy"`
	WeightedScore float64  `parquet:"weighted_score,snappy"`
}

// WriteAnalysisRunsParquet writes a slice of AnalysisRun structs to a Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteSiteReportsParquet writes a slice of SiteReport structs to a Parquet file.
func WriteSiteReportsParquet(data []SiteReport, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteCriterionScoresParquet writes a slice of CriterionScore structs to a Parquet file.
func WriteCriterionScoresParquet(data []CriterionScore, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet infers the schema from the struct tags of T and writes every row.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	// Close flushes the final row group and footer
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return file.Close()
}

// ConvertAnalysisRunRecords converts store records to Parquet rows.
func ConvertAnalysisRunRecords(records []schema.AnalysisRunRecord) []AnalysisRun {
	result := make([]AnalysisRun, len(records))
	for i, r := range records {
		result[i] = AnalysisRun{
			AnalysisID:       r.AnalysisID,
			StartTime:        r.StartTime,
			EndTime:          r.EndTime,
			RunDurationMs:    r.RunDurationMs,
			TotalSitesScored: r.TotalSitesScored,
			ConfigParams:     r.ConfigParams,
		}
	}
	return result
}

// ConvertSiteReportRecords converts store records to Parquet rows.
func ConvertSiteReportRecords(records []schema.SiteReportRecord) []SiteReport {
	result := make([]SiteReport, len(records))
	for i, r := range records {
		result[i] = SiteReport{
			AnalysisID:      r.AnalysisID,
			SitePath:        r.SitePath,
			SiteName:        r.SiteName,
			AnalysisTime:    r.AnalysisTime,
			TotalScore:      r.TotalScore,
			Decision:        r.Decision,
			SuggestionCount: r.SuggestionCount,
		}
	}
	return result
}

// ConvertCriterionScoreRecords converts store records to Parquet rows.
func ConvertCriterionScoreRecords(records []schema.CriterionScoreRecord) []CriterionScore {
	result := make([]CriterionScore, len(records))
	for i, r := range records {
		result[i] = CriterionScore{
			AnalysisID:    r.AnalysisID,
			SitePath:      r.SitePath,
			CriterionKey:  r.CriterionKey,
			RawValue:      r.RawValue,
			Score:         r.Score,
			Weight:        r.Weight,
			WeightedScore: r.WeightedScore,
		}
	}
	return result
}
