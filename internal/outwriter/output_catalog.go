package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/huangsam/solarsite/core/algo"
	"github.com/huangsam/solarsite/internal/contract"
	"github.com/huangsam/solarsite/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintCatalog outputs every criterion with its weight and scoring rule.
func PrintCatalog(criteria []schema.Criterion, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut, schema.YAMLOut:
		if err := writeStructured(cfg.OutputFile, cfg.Output == schema.YAMLOut, criteria); err != nil {
			return fmt.Errorf("error writing %s output: %w", cfg.Output, err)
		}
	case schema.CSVOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCatalogCSV(w, criteria)
		}, "Wrote CSV")
		if err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCatalogTable(w, criteria)
		}, "Wrote table")
	}
	return nil
}

func writeCatalogTable(w io.Writer, criteria []schema.Criterion) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Key", "Criterion", "Weight", "Policy", "Rule"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	data := make([][]string, 0, len(criteria))
	for _, c := range criteria {
		data = append(data, []string{
			c.Key,
			c.DisplayName,
			schema.FormatWeight(c.Weight),
			string(c.Policy),
			describeRule(c),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Total = %s\n", weightFormula(criteria)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Decision: GO >= %g, REVIEW >= %g, otherwise NO-GO. Suggestions below %g.\n",
		schema.GoThreshold, schema.ReviewThreshold, schema.SuggestionThreshold)
	return err
}

func writeCatalogCSV(w io.Writer, criteria []schema.Criterion) error {
	header := []string{"key", "name", "unit", "weight", "policy", "rule", "suggestion"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, c := range criteria {
			rec := []string{
				c.Key,
				c.DisplayName,
				strings.TrimSpace(c.Unit),
				fmt.Sprintf("%.2f", c.Weight),
				string(c.Policy),
				describeRule(c),
				c.Suggestion,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// describeRule renders the scoring rule of a criterion in one line.
func describeRule(c schema.Criterion) string {
	switch c.Policy {
	case schema.LinearThreshold:
		direction := "lower is better"
		if c.HigherIsBetter {
			direction = "higher is better"
		}
		return fmt.Sprintf("best %g%s, worst %g%s (%s)", c.Best, c.Unit, c.Worst, c.Unit, direction)
	case schema.ElevationRange:
		return fmt.Sprintf("%g if %g-%g m, else %g",
			algo.ElevationInRange, algo.ElevationMin, algo.ElevationMax, algo.ElevationOutRange)
	case schema.LandCoverCategory:
		return fmt.Sprintf("%g if class 30, 40 or 60, else %g", algo.LandCoverFavorable, algo.LandCoverUnfavorable)
	case schema.ManualOwnership:
		return fmt.Sprintf("%g if code %d, else %g", algo.OwnershipGovernment, algo.GovernmentOwnership, algo.OwnershipPrivate)
	default:
		return "-"
	}
}

// weightFormula renders the weighted sum, e.g. "0.20*slope+0.15*ghi".
func weightFormula(criteria []schema.Criterion) string {
	terms := make([]string, len(criteria))
	for i, c := range criteria {
		terms[i] = fmt.Sprintf("%.2f*%s", c.Weight, c.Key)
	}
	return strings.Join(terms, "+")
}
