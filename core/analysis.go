package core

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/huangsam/solarsite/internal/contract"
	"github.com/huangsam/solarsite/internal/sitedoc"
	"github.com/huangsam/solarsite/schema"
)

// siteJob is one unit of work for the scoring pool.
type siteJob struct {
	path string
	load func() (sitedoc.Document, error)
}

// siteOutcome is what a worker hands back for a job.
type siteOutcome struct {
	result schema.SiteResult
	err    error
}

// fileJobs builds jobs that read each document inside the worker.
func fileJobs(cfg *contract.Config, paths []string) []siteJob {
	jobs := make([]siteJob, 0, len(paths))
	for _, p := range paths {
		jobs = append(jobs, siteJob{
			path: p,
			load: func() (sitedoc.Document, error) { return sitedoc.Load(p, cfg.InputFormat) },
		})
	}
	return jobs
}

// runAnalysisCore performs the common Tracking, Scoring and Finalization steps.
// Failures are returned per site so callers can decide whether one bad document is fatal.
func runAnalysisCore(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, jobs []siteJob) ([]schema.SiteResult, []error) {
	if !shouldSuppressHeader(ctx) && cfg.Output == schema.TextOut {
		contract.LogAnalysisHeader(os.Stdout, cfg, len(jobs))
	}

	// Add store manager to context for use in worker goroutines
	ctx = contextWithStoreManager(ctx, mgr)

	// --- 0. Begin Analysis Tracking (if configured) ---
	var analysisID int64
	var analysisStore contract.AnalysisStore
	if mgr != nil {
		analysisStore = mgr.GetAnalysisStore()
	}
	if analysisStore != nil {
		configParams := map[string]any{
			"inputs":            cfg.Inputs,
			"workers":           cfg.Workers,
			"result_limit":      cfg.ResultLimit,
			"land_ownership":    cfg.Ownership,
			"required_decision": string(cfg.RequiredDecision),
		}
		var err error
		analysisID, err = analysisStore.BeginAnalysis(time.Now(), configParams)
		if err != nil {
			contract.LogWarn("Analysis tracking initialization failed", err)
		} else if analysisID > 0 {
			ctx = withAnalysisID(ctx, analysisID)
		}
	}

	// --- 1. Scoring ---
	results, failures := scoreSites(ctx, cfg, jobs)

	// --- 2. End Analysis Tracking ---
	if analysisStore != nil && analysisID > 0 {
		if err := analysisStore.EndAnalysis(analysisID, time.Now(), len(results)); err != nil {
			contract.LogWarn("Failed to finalize analysis tracking", err)
		}
	}

	return results, failures
}

// scoreSites processes all jobs in parallel using a worker pool.
// It spawns cfg.Workers goroutines and returns results sorted by path.
func scoreSites(ctx context.Context, cfg *contract.Config, jobs []siteJob) ([]schema.SiteResult, []error) {
	jobCh := make(chan siteJob, len(jobs))
	outCh := make(chan siteOutcome, len(jobs))
	var wg sync.WaitGroup

	workers := max(1, min(cfg.Workers, len(jobs)))
	for range workers {
		wg.Go(func() {
			for job := range jobCh {
				outCh <- scoreSite(ctx, cfg, job)
			}
		})
	}

feed:
	for _, job := range jobs {
		select {
		case <-ctx.Done():
			break feed
		case jobCh <- job:
		}
	}
	close(jobCh)
	wg.Wait()
	close(outCh)

	results := make([]schema.SiteResult, 0, len(jobs))
	var failures []error
	for out := range outCh {
		if out.err != nil {
			failures = append(failures, out.err)
			continue
		}
		results = append(results, out.result)
	}
	if err := ctx.Err(); err != nil {
		failures = append(failures, err)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})
	return results, failures
}

// scoreSite loads one document, applies the ownership override and evaluates it.
func scoreSite(ctx context.Context, cfg *contract.Config, job siteJob) siteOutcome {
	doc, err := job.load()
	if err != nil {
		return siteOutcome{err: fmt.Errorf("%s: %w", job.path, err)}
	}
	if cfg.Ownership > 0 {
		owner := cfg.Ownership
		doc.Input.Ownership = &owner
	}

	report, err := Evaluate(doc.Input)
	if err != nil {
		return siteOutcome{err: fmt.Errorf("%s: %w", job.path, err)}
	}

	result := schema.SiteResult{Path: job.path, Report: report}
	recordSiteReport(ctx, result)
	return siteOutcome{result: result}
}

// recordSiteReport stores a report when tracking is active for this run.
func recordSiteReport(ctx context.Context, result schema.SiteResult) {
	analysisID, ok := getAnalysisID(ctx)
	if !ok || analysisID <= 0 {
		return
	}
	mgr := storeManagerFromContext(ctx)
	if mgr == nil {
		return
	}
	store := mgr.GetAnalysisStore()
	if store == nil {
		return
	}
	if err := store.RecordSiteReport(analysisID, result.Path, result.Report); err != nil {
		contract.LogWarn("Failed to record site report", err)
	}
}
