package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/solarsite/internal/contract"
	"github.com/huangsam/solarsite/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintReport outputs a single site report, dispatching based on the output format configured.
func PrintReport(result schema.SiteResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut, schema.YAMLOut:
		if err := writeStructured(cfg.OutputFile, cfg.Output == schema.YAMLOut, result); err != nil {
			return fmt.Errorf("error writing %s output: %w", cfg.Output, err)
		}
	case schema.CSVOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportCSV(w, result, fmtFloat)
		}, "Wrote CSV")
		if err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportTable(result, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeReportTable renders the decision matrix followed by the summary and suggestions.
func writeReportTable(result schema.SiteResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, w io.Writer) error {
	report := result.Report
	title := report.Site
	if title == "" {
		title = result.Path
	}
	if _, err := fmt.Fprintf(w, "Site: %s\n", title); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Criterion", "Raw Value", "Score", "Weight", "Weighted"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(report.Rows))
	for _, row := range report.Rows {
		score := schema.FormatScore(row.Score)
		if cfg.UseColors && row.Score < schema.SuggestionThreshold {
			score = contract.WeakColor.Sprint(score)
		}
		data = append(data, []string{
			row.DisplayName,
			schema.FormatRawValue(row.RawValue, row.Unit),
			score,
			schema.FormatWeight(row.Weight),
			fmtFloat(row.WeightedScore),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, renderDecisionBanner(report.Decision, fmtFloat(report.TotalScore), cfg)); err != nil {
		return err
	}
	if err := writeSuggestions(w, report.Suggestions, cfg.UseEmojis); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Scoring completed in %v. Tracking backend: %s\n", duration, cfg.AnalysisBackend)
	return err
}

// writeSuggestions prints the numbered improvement list.
func writeSuggestions(w io.Writer, suggestions []string, useEmojis bool) error {
	heading := "Suggestions:"
	if useEmojis {
		heading = "💡 Suggestions:"
	}
	if _, err := fmt.Fprintln(w, heading); err != nil {
		return err
	}
	for i, s := range suggestions {
		if _, err := fmt.Fprintf(w, "  %d. %s\n", i+1, s); err != nil {
			return err
		}
	}
	return nil
}

// writeReportCSV writes one line per criterion, repeating the site summary on every line.
func writeReportCSV(w io.Writer, result schema.SiteResult, fmtFloat func(float64) string) error {
	header := []string{
		"path",
		"site",
		"criterion",
		"raw_value",
		"score",
		"weight",
		"weighted_score",
		"total_score",
		"decision",
	}
	report := result.Report
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, row := range report.Rows {
			raw := ""
			if row.RawValue != nil {
				raw = fmtFloat(*row.RawValue)
			}
			rec := []string{
				result.Path,
				report.Site,
				row.Key,
				raw,
				schema.FormatScore(row.Score),
				fmt.Sprintf("%.2f", row.Weight),
				fmtFloat(row.WeightedScore),
				fmtFloat(report.TotalScore),
				string(report.Decision),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
