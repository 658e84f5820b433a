// Package core has core logic for site scoring, ranking and gating.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/solarsite/core/algo"
	"github.com/huangsam/solarsite/internal/contract"
	"github.com/huangsam/solarsite/internal/outwriter"
	"github.com/huangsam/solarsite/internal/sitedoc"
	"github.com/huangsam/solarsite/schema"
)

// ErrCheckFailed is returned when a site does not reach the required decision.
var ErrCheckFailed = errors.New("site check failed")

// ExecuteScore scores a single site document and prints its report.
// It serves as the main entry point for the 'score' command.
func ExecuteScore(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	result, err := scoreSingle(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintReport(result, cfg, duration)
}

// ExecuteBatch scores every document matched by the input patterns, ranks them
// and prints the top results. Documents that fail to load are skipped with a warning.
func ExecuteBatch(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	ranked, err := GetBatchResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintBatchResults(ranked, cfg, duration)
}

// GetBatchResults expands cfg.Inputs, scores every document and returns the top
// cfg.ResultLimit sites. It fails only when nothing could be scored.
func GetBatchResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) ([]schema.SiteResult, error) {
	paths, err := sitedoc.Expand(cfg.Inputs)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, errors.New("no site documents matched")
	}

	results, failures := runAnalysisCore(ctx, cfg, mgr, fileJobs(cfg, paths))
	for _, failure := range failures {
		contract.LogWarn("Skipped site", failure)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no sites could be scored (%d failed)", len(failures))
	}
	return algo.RankSites(results, cfg.ResultLimit), nil
}

// ExecuteCheck gates a single site on cfg.RequiredDecision for CI use.
// The result is printed either way; ErrCheckFailed is returned when the gate fails.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	result, err := scoreSingle(ctx, cfg, mgr)
	if err != nil {
		return err
	}

	check := BuildCheckResult(result, cfg.RequiredDecision)
	if err := outwriter.PrintCheckResult(check, cfg, time.Since(start)); err != nil {
		return err
	}
	if !check.Passed {
		return fmt.Errorf("%w: decision %s does not meet required %s",
			ErrCheckFailed, check.Decision.Label(), check.Required.Label())
	}
	return nil
}

// ExecuteCatalog prints the criteria catalog.
// This is a static display that does not read any site.
func ExecuteCatalog(_ context.Context, cfg *contract.Config) error {
	return outwriter.PrintCatalog(Catalog(), cfg)
}

// ScoreDocument evaluates an already decoded document with tracking but no header.
// It is used by callers that do not read from the filesystem, such as the MCP server.
func ScoreDocument(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, doc sitedoc.Document) (schema.SiteResult, error) {
	job := siteJob{
		path: doc.Path,
		load: func() (sitedoc.Document, error) { return doc, nil },
	}
	results, failures := runAnalysisCore(WithSuppressHeader(ctx), cfg, mgr, []siteJob{job})
	if len(failures) > 0 {
		return schema.SiteResult{}, failures[0]
	}
	if len(results) == 0 {
		return schema.SiteResult{}, errors.New("site was not scored")
	}
	return results[0], nil
}

// BuildCheckResult compares a scored site with the required decision.
func BuildCheckResult(result schema.SiteResult, required schema.Decision) schema.CheckResult {
	if required == "" {
		required = schema.GoDecision
	}
	return schema.CheckResult{
		Path:        result.Path,
		Site:        result.Report.Site,
		TotalScore:  result.Report.TotalScore,
		Decision:    result.Report.Decision,
		Required:    required,
		Passed:      result.Report.Decision.Meets(required),
		Suggestions: result.Report.Suggestions,
	}
}

// scoreSingle runs the pipeline for exactly one input and treats any failure as fatal.
func scoreSingle(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.SiteResult, error) {
	if len(cfg.Inputs) != 1 {
		return schema.SiteResult{}, fmt.Errorf("expected exactly one site document, got %d", len(cfg.Inputs))
	}
	results, failures := runAnalysisCore(ctx, cfg, mgr, fileJobs(cfg, cfg.Inputs))
	if len(failures) > 0 {
		return schema.SiteResult{}, failures[0]
	}
	if len(results) == 0 {
		return schema.SiteResult{}, errors.New("site was not scored")
	}
	return results[0], nil
}
