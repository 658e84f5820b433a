package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/solarsite/internal/contract"
	"github.com/huangsam/solarsite/internal/parquet"
)

// ExecuteAnalysisExport writes every tracked table of the store to its own Parquet file.
func ExecuteAnalysisExport(w io.Writer, store contract.AnalysisStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("analysis tracking is disabled; set --analysis-backend")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get analysis status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no analysis data found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total analysis runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total site reports: %d\n", status.TableSizes[siteReportsTable])

	runs, err := store.GetAllAnalysisRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve analysis runs: %w", err)
	}
	reports, err := store.GetAllSiteReports()
	if err != nil {
		return fmt.Errorf("failed to retrieve site reports: %w", err)
	}
	scores, err := store.GetAllCriterionScores()
	if err != nil {
		return fmt.Errorf("failed to retrieve criterion scores: %w", err)
	}

	runsFile := outputFile + ".analysis_runs.parquet"
	if err := parquet.WriteAnalysisRunsParquet(parquet.ConvertAnalysisRunRecords(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write analysis runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d analysis runs to: %s\n", len(runs), runsFile)

	reportsFile := outputFile + ".site_reports.parquet"
	if err := parquet.WriteSiteReportsParquet(parquet.ConvertSiteReportRecords(reports), reportsFile); err != nil {
		return fmt.Errorf("failed to write site reports: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d site reports to: %s\n", len(reports), reportsFile)

	scoresFile := outputFile + ".criterion_scores.parquet"
	if err := parquet.WriteCriterionScoresParquet(parquet.ConvertCriterionScoreRecords(scores), scoresFile); err != nil {
		return fmt.Errorf("failed to write criterion scores: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d criterion scores to: %s\n", len(scores), scoresFile)

	_, _ = fmt.Fprintln(w, "\nExport complete! The Parquet files can be loaded with DuckDB, Pandas (via pyarrow) or Apache Spark.")
	return nil
}
