package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/solarsite/internal/contract"
	"github.com/huangsam/solarsite/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// batchEntry is the machine-readable shape of one ranked site.
type batchEntry struct {
	Rank  int    `json:"rank" yaml:"rank"`
	Path  string `json:"path" yaml:"path"`
	Label string `json:"label" yaml:"label"`
	schema.Report `yaml:",inline"`
}

// PrintBatchResults outputs ranked sites, dispatching based on the output format configured.
func PrintBatchResults(results []schema.SiteResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut, schema.YAMLOut:
		entries := make([]batchEntry, len(results))
		for i, r := range results {
			entries[i] = batchEntry{
				Rank:   i + 1,
				Path:   r.Path,
				Label:  contract.GetPlainLabel(r.Report.Decision),
				Report: r.Report,
			}
		}
		if err := writeStructured(cfg.OutputFile, cfg.Output == schema.YAMLOut, entries); err != nil {
			return fmt.Errorf("error writing %s output: %w", cfg.Output, err)
		}
	case schema.CSVOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBatchCSV(w, results, fmtFloat)
		}, "Wrote CSV")
		if err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBatchTable(results, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeBatchTable generates and writes the human-readable ranking.
func writeBatchTable(results []schema.SiteResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Path", "Site", "Score", "Decision", "Concerns"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	maxWidth := GetMaxTablePathWidth(cfg)
	counts := make(map[schema.Decision]int, len(schema.AllDecisions))
	var data [][]string
	for i, r := range results {
		label := contract.GetPlainLabel(r.Report.Decision)
		if cfg.UseColors {
			label = contract.GetColorLabel(r.Report.Decision)
		}
		counts[r.Report.Decision]++
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncatePath(r.Path, maxWidth),
			r.Report.Site,
			fmtFloat(r.Report.TotalScore),
			label,
			strconv.Itoa(concernCount(r.Report)),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Showing top %d sites (go: %d, review: %d, no-go: %d)\n",
		len(results), counts[schema.GoDecision], counts[schema.ReviewDecision], counts[schema.NoGoDecision]); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Scoring completed in %v with %d workers. Tracking backend: %s\n", duration, cfg.Workers, cfg.AnalysisBackend)
	return err
}

// writeBatchCSV writes one summary line per ranked site.
func writeBatchCSV(w io.Writer, results []schema.SiteResult, fmtFloat func(float64) string) error {
	header := []string{"rank", "path", "site", "total_score", "decision", "suggestion_count"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, r := range results {
			rec := []string{
				strconv.Itoa(i + 1),
				r.Path,
				r.Report.Site,
				fmtFloat(r.Report.TotalScore),
				string(r.Report.Decision),
				strconv.Itoa(concernCount(r.Report)),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// concernCount is the number of real suggestions, ignoring the no-concerns placeholder.
func concernCount(report schema.Report) int {
	if len(report.Suggestions) == 1 && report.Suggestions[0] == schema.NoConcernsMessage {
		return 0
	}
	return len(report.Suggestions)
}
