package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/solarsite/internal/contract"
	"github.com/huangsam/solarsite/schema"
)

// PrintCheckResult outputs the outcome of a decision gate.
func PrintCheckResult(check schema.CheckResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut, schema.YAMLOut:
		if err := writeStructured(cfg.OutputFile, cfg.Output == schema.YAMLOut, check); err != nil {
			return fmt.Errorf("error writing %s output: %w", cfg.Output, err)
		}
	case schema.CSVOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"path", "site", "total_score", "decision", "required", "passed"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				return cw.Write([]string{
					check.Path,
					check.Site,
					fmtFloat(check.TotalScore),
					string(check.Decision),
					string(check.Required),
					strconv.FormatBool(check.Passed),
				})
			})
		}, "Wrote CSV")
		if err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCheckText(check, cfg, fmtFloat, duration, w)
		}, "Wrote check")
	}
	return nil
}

func writeCheckText(check schema.CheckResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, w io.Writer) error {
	status := "PASS"
	if !check.Passed {
		status = "FAIL"
	}
	if cfg.UseEmojis {
		if check.Passed {
			status = "✅ " + status
		} else {
			status = "❌ " + status
		}
	}

	label := contract.GetPlainLabel(check.Decision)
	if cfg.UseColors {
		label = contract.GetColorLabel(check.Decision)
	}
	if _, err := fmt.Fprintf(w, "%s: %s scored %s (%s), required %s\n",
		status, check.Path, fmtFloat(check.TotalScore), label, check.Required.Label()); err != nil {
		return err
	}
	if !check.Passed {
		if err := writeSuggestions(w, check.Suggestions, cfg.UseEmojis); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Check completed in %v\n", duration)
	return err
}
