// Package main provides a performance benchmarking tool for the solarsite CLI.
// It generates synthetic candidate lists of different sizes and measures how long
// `solarsite batch` takes to rank them, with and without SQLite history tracking,
// running each test multiple times and treating the first successful run as cold.
//
// Prerequisites:
// - solarsite binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where synthetic site documents are generated
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/solarsite/core"
	"github.com/huangsam/solarsite/internal/sitedoc"
)

// BenchmarkResult holds the result of a benchmark run (untracked average, cold run and average of warm runs).
type BenchmarkResult struct {
	Sites         int
	Workers       int
	UntrackedTime string
	ColdTime      string
	WarmTime      string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir       string
	Timeout       time.Duration
	Workers       []int
	UntrackedRuns int
	TrackedRuns   int
	SiteCounts    []int
	Seed          uint64
}

// metricRanges bounds the random raw values so every criterion sees good and bad sites.
var metricRanges = map[string][2]float64{
	"slope":             {0, 35},
	"ghi":               {2.5, 7.5},
	"temperature":       {10, 50},
	"elevation":         {0, 2500},
	"landCover":         {10, 100},
	"proximityToLines":  {0, 60},
	"proximityToRoads":  {0, 25},
	"waterAvailability": {0, 40},
	"soilStability":     {0, 200},
	"shading":           {30, 300},
	"dust":              {0, 1.2},
	"windSpeed":         {0, 130},
	"seismicRisk":       {0, 1},
	"floodRisk":         {0, 12},
}

// landCoverClasses are the classes a land cover survey actually reports.
var landCoverClasses = []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 95, 100}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:       os.Args[1],
		Timeout:       5 * time.Minute,
		Workers:       []int{1, 4, 14},
		UntrackedRuns: 3,
		TrackedRuns:   4,
		SiteCounts:    []int{100, 1000, 10000},
		Seed:          42,
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the solarsite binary exists and the work dir is usable
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("solarsite"); err != nil {
		return fmt.Errorf("solarsite binary not found in PATH")
	}
	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("work dir %s is not usable: %w", config.WorkDir, err)
	}
	return nil
}

// generateSites writes count random site documents under dir and returns the glob matching them.
func generateSites(dir string, count int, rng *rand.Rand) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	for i := range count {
		doc := make(map[string]any, len(metricRanges)+2)
		for _, key := range core.MetricKeys() {
			bounds := metricRanges[key]
			doc[key] = bounds[0] + rng.Float64()*(bounds[1]-bounds[0])
		}
		doc["landCover"] = landCoverClasses[rng.IntN(len(landCoverClasses))]
		doc[sitedoc.OwnershipKey] = 1 + rng.IntN(3)
		doc[sitedoc.NameKey] = fmt.Sprintf("Synthetic %05d", i)

		data, err := json.Marshal(doc)
		if err != nil {
			return "", err
		}
		if err := os.WriteFile(filepath.Join(dir, fmt.Sprintf("site_%05d.json", i)), data, 0o644); err != nil {
			return "", err
		}
	}
	return filepath.Join(dir, "*.json"), nil
}

// runBenchmarks executes all benchmark tests across configured candidate list sizes
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult
	rng := rand.New(rand.NewPCG(config.Seed, config.Seed))

	fmt.Printf("Starting benchmark: %d sizes, %v timeout, workers %v, untracked: %d runs, tracked: %d runs\n",
		len(config.SiteCounts), config.Timeout, config.Workers, config.UntrackedRuns, config.TrackedRuns)

	for _, count := range config.SiteCounts {
		dir := filepath.Join(config.WorkDir, fmt.Sprintf("sites_%d", count))
		pattern, err := generateSites(dir, count, rng)
		if err != nil {
			fmt.Printf("Skipping %d sites: %v\n", count, err)
			continue
		}

		for _, workers := range config.Workers {
			results = append(results, runBenchmarkSuite(config, pattern, count, workers))
		}
	}

	return results
}

// runBenchmarkSuite runs both untracked and tracked benchmarks for one size and worker count
func runBenchmarkSuite(config BenchmarkConfig, pattern string, count, workers int) BenchmarkResult {
	fmt.Printf("Ranking %d sites with %d workers\n", count, workers)

	runPhase := func(tracking []string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, pattern, workers, tracking, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	// Phase 1: no history store
	_, untrackedAvg := runPhase([]string{"--analysis-backend", "none"}, config.UntrackedRuns, "Untracked")

	// Phase 2: SQLite history store in a fresh file
	dbPath := filepath.Join(config.WorkDir, fmt.Sprintf("history_%d_%d.db", count, workers))
	_ = os.Remove(dbPath)
	coldTime, warmAvg := runPhase([]string{"--analysis-backend", "sqlite", "--analysis-db-connect", dbPath}, config.TrackedRuns, "Tracked")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  Untracked average: %s, Cold time: %s, Warm average: %s\n", untrackedAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Sites:         count,
		Workers:       workers,
		UntrackedTime: untrackedAvg,
		ColdTime:      coldTimeStr,
		WarmTime:      warmAvg,
	}
}

// runBenchmark executes solarsite batch multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, pattern string, workers int, tracking []string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{"batch", pattern, "--workers", strconv.Itoa(workers), "--limit", "10", "--color", "no"}
	args = append(args, tracking...)

	var times []float64
	for range numRuns {
		start := time.Now()

		cmd := exec.Command("solarsite", args...)
		cmd.Dir = config.WorkDir

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
			<-done
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "Scoring completed in") &&
		strings.Contains(outputStr, "workers")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("solarsite_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"sites", "workers", "untracked_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		record := []string{
			strconv.Itoa(result.Sites),
			strconv.Itoa(result.Workers),
			result.UntrackedTime,
			result.ColdTime,
			result.WarmTime,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %6d sites, %2d workers: Untracked: %s, Cold: %s, Warm: %s\n",
			result.Sites, result.Workers, result.UntrackedTime, result.ColdTime, result.WarmTime)
	}
}
