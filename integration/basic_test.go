//go:build basic

// Package integration contains end-to-end tests for the solarsite binary.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/solarsite/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreCommand(t *testing.T) {
	stdout, _, err := runSolarsite(t, "score", fixture(t, "good.json"), "--output", "json")
	require.NoError(t, err)

	var result schema.SiteResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, "North Ridge", result.Report.Site)
	assert.Len(t, result.Report.Rows, 15)
	assert.InDelta(t, 9.7, result.Report.TotalScore, 1e-9)
	assert.Equal(t, schema.GoDecision, result.Report.Decision)
}

func TestScoreCommandTextOutput(t *testing.T) {
	stdout, _, err := runSolarsite(t, "score", fixture(t, "poor.yaml"), "--color", "no")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Site: Salt Flats")
	assert.Contains(t, stdout, "Decision: NO-GO")
	assert.Contains(t, stdout, "Suggestions:")
}

func TestScoreCommandOwnership(t *testing.T) {
	_, stderr, err := runSolarsite(t, "score", fixture(t, "unowned.json"))
	require.Error(t, err)
	assert.Contains(t, stderr, "landOwnership")

	stdout, _, err := runSolarsite(t, "score", fixture(t, "unowned.json"), "--land-ownership", "1", "--output", "json")
	require.NoError(t, err)

	var result schema.SiteResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	// floodRisk is null and scores zero, public land scores full marks
	assert.InDelta(t, 9.8, result.Report.TotalScore, 1e-9)
}

func TestScoreCommandEnvOverride(t *testing.T) {
	t.Setenv("SOLARSITE_LAND_OWNERSHIP", "1")
	stdout, _, err := runSolarsite(t, "score", fixture(t, "good.json"), "--output", "json")
	require.NoError(t, err)

	var result schema.SiteResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.InDelta(t, 10.0, result.Report.TotalScore, 1e-9)
	assert.Equal(t, []string{schema.NoConcernsMessage}, result.Report.Suggestions)
}

func TestBatchCommand(t *testing.T) {
	pattern := filepath.Join(filepath.Dir(fixture(t, "good.json")), "*")
	stdout, stderr, err := runSolarsite(t, "batch", pattern, "--output", "json")
	require.NoError(t, err)

	var entries []struct {
		Rank     int             `json:"rank"`
		Path     string          `json:"path"`
		Site     string          `json:"site"`
		Decision schema.Decision `json:"decision"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "North Ridge", entries[0].Site)
	assert.Equal(t, schema.GoDecision, entries[0].Decision)
	assert.Equal(t, "Salt Flats", entries[1].Site)
	assert.Equal(t, schema.NoGoDecision, entries[1].Decision)

	// partial.json and unowned.json cannot be scored without more input
	assert.Equal(t, 2, strings.Count(stderr, "Skipped site"))
}

func TestBatchCommandCSVFile(t *testing.T) {
	pattern := filepath.Join(filepath.Dir(fixture(t, "good.json")), "*")
	outFile := filepath.Join(t.TempDir(), "ranking.csv")
	_, _, err := runSolarsite(t, "batch", pattern, "--limit", "1", "--output", "csv", "--output-file", outFile)
	require.NoError(t, err)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "rank,path,site"))
	assert.Contains(t, lines[1], "North Ridge")
}

func TestCheckCommand(t *testing.T) {
	_, _, err := runSolarsite(t, "check", fixture(t, "good.json"))
	require.NoError(t, err)

	stdout, _, err := runSolarsite(t, "check", fixture(t, "poor.yaml"), "--color", "no")
	require.Error(t, err)
	assert.Contains(t, stdout, "FAIL")

	_, _, err = runSolarsite(t, "check", fixture(t, "poor.yaml"), "--require", "nogo")
	require.NoError(t, err)

	_, stderr, err := runSolarsite(t, "check", fixture(t, "good.json"), "--require", "maybe")
	require.Error(t, err)
	assert.Contains(t, stderr, "invalid decision")
}

func TestCatalogCommand(t *testing.T) {
	stdout, _, err := runSolarsite(t, "catalog", "--output", "json")
	require.NoError(t, err)

	var criteria []schema.Criterion
	require.NoError(t, json.Unmarshal([]byte(stdout), &criteria))
	require.Len(t, criteria, 15)
	assert.Equal(t, "slope", criteria[0].Key)

	stdout, _, err = runSolarsite(t, "catalog")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Total =")
}

func TestInvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad output", []string{"--output", "xml"}, "invalid output format"},
		{"bad precision", []string{"--precision", "5"}, "precision must be 1 or 2"},
		{"bad limit", []string{"--limit", "0"}, "limit must be greater than 0"},
		{"bad backend", []string{"--analysis-backend", "oracle"}, "invalid analysis backend"},
		{"bad ownership", []string{"--land-ownership", "-1"}, "land-ownership"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"score", fixture(t, "good.json")}, tt.args...)
			_, stderr, err := runSolarsite(t, args...)
			require.Error(t, err)
			assert.Contains(t, stderr, tt.want)
		})
	}
}

func TestSQLiteTrackingLifecycle(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "history.db")
	tracking := []string{"--analysis-backend", "sqlite", "--analysis-db-connect", dbPath}

	pattern := filepath.Join(filepath.Dir(fixture(t, "good.json")), "*")
	_, _, err := runSolarsite(t, append([]string{"batch", pattern}, tracking...)...)
	require.NoError(t, err)

	stdout, _, err := runSolarsite(t, append([]string{"analysis", "status"}, tracking...)...)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Connected: true")
	assert.Contains(t, stdout, "Total Runs: 1")
	assert.Contains(t, stdout, "Total Sites Scored: 2")

	prefix := filepath.Join(dir, "export")
	_, _, err = runSolarsite(t, append([]string{"analysis", "export", "--output-file", prefix}, tracking...)...)
	require.NoError(t, err)
	for _, suffix := range []string{".analysis_runs.parquet", ".site_reports.parquet", ".criterion_scores.parquet"} {
		assert.FileExists(t, prefix+suffix)
	}

	_, _, err = runSolarsite(t, append([]string{"analysis", "clear"}, tracking...)...)
	require.NoError(t, err)
	assert.NoFileExists(t, dbPath)
}

func TestSQLiteMigrate(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "fresh.db")
	tracking := []string{"--analysis-backend", "sqlite", "--analysis-db-connect", dbPath}

	stdout, _, err := runSolarsite(t, append([]string{"analysis", "migrate"}, tracking...)...)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Successfully migrated")

	stdout, _, err = runSolarsite(t, append([]string{"analysis", "migrate", "--target-version", "0"}, tracking...)...)
	require.NoError(t, err)
	assert.Contains(t, stdout, "rolled back")
}

func TestVersionCommand(t *testing.T) {
	stdout, stderr, err := runSolarsite(t, "version")
	require.NoError(t, err)
	// cobra's cmd.Printf writes to stderr by default
	assert.Contains(t, stdout+stderr, "solarsite CLI")
}
