package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/solarsite/internal/contract"
	"github.com/huangsam/solarsite/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func ptr(v float64) *float64 { return &v }

func sampleResult(path string, total float64, decision schema.Decision, suggestions ...string) schema.SiteResult {
	if len(suggestions) == 0 {
		suggestions = []string{schema.NoConcernsMessage}
	}
	return schema.SiteResult{
		Path: path,
		Report: schema.Report{
			Site: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
			Rows: []schema.ScoredRow{
				{Key: "slope", DisplayName: "Slope", Unit: "°", RawValue: ptr(5.7), Score: 10, Weight: 0.2, WeightedScore: 2},
				{Key: "proximityToRoads", DisplayName: "Proximity to Roads", Unit: " km", Score: 0, Weight: 0.05, WeightedScore: 0},
			},
			TotalScore:  total,
			Decision:    decision,
			Suggestions: suggestions,
		},
	}
}

func testConfig(output schema.OutputMode) *contract.Config {
	return &contract.Config{
		Precision:       2,
		Workers:         2,
		Output:          output,
		Width:           120,
		AnalysisBackend: schema.NoneBackend,
	}
}

func TestGetMaxTablePathWidth(t *testing.T) {
	tests := []struct {
		width    int
		expected int
	}{
		{width: 60, expected: 15},
		{width: 100, expected: 40},
		{width: 300, expected: 70},
	}
	for _, tt := range tests {
		cfg := &contract.Config{Width: tt.width}
		assert.Equal(t, tt.expected, GetMaxTablePathWidth(cfg))
	}
}

func TestCreateFormatters(t *testing.T) {
	assert.Equal(t, "3.14", createFormatters(2)(3.14159))
	assert.Equal(t, "3.1", createFormatters(1)(3.14159))
	assert.Equal(t, "10.00", createFormatters(2)(10))
}

func TestWriteReportTable(t *testing.T) {
	result := sampleResult("sites/north.json", 7.25, schema.GoDecision)
	cfg := testConfig(schema.TextOut)

	var buf bytes.Buffer
	require.NoError(t, writeReportTable(result, cfg, createFormatters(2), time.Second, &buf))

	out := buf.String()
	assert.Contains(t, out, "Site: north")
	assert.Contains(t, out, "5.70°")
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, "20%")
	assert.Contains(t, out, "Decision: GO  (Total Score: 7.25 / 10)")
	assert.Contains(t, out, "1. "+schema.NoConcernsMessage)
	assert.Contains(t, out, "Tracking backend: none")
}

func TestWriteReportTableBoxedDecision(t *testing.T) {
	result := sampleResult("a.json", 3.1, schema.NoGoDecision, "Look for flatter terrain.")
	cfg := testConfig(schema.TextOut)
	cfg.UseColors = true
	cfg.UseEmojis = true

	var buf bytes.Buffer
	require.NoError(t, writeReportTable(result, cfg, createFormatters(2), time.Second, &buf))

	out := buf.String()
	assert.Contains(t, out, "Decision: NO-GO")
	assert.Contains(t, out, "╭")
	assert.Contains(t, out, "💡 Suggestions:")
	assert.Contains(t, out, "1. Look for flatter terrain.")
}

func TestWriteReportCSV(t *testing.T) {
	result := sampleResult("a.json", 6.5, schema.ReviewDecision)

	var buf bytes.Buffer
	require.NoError(t, writeReportCSV(&buf, result, createFormatters(2)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // header + 2 rows

	assert.Equal(t, "criterion", records[0][2])
	assert.Equal(t, []string{"a.json", "a", "slope", "5.70", "10.0", "0.20", "2.00", "6.50", "Review"}, records[1])
	assert.Equal(t, "", records[2][3], "unavailable value stays empty")
}

func TestPrintReportJSONToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.json")
	cfg := testConfig(schema.JSONOut)
	cfg.OutputFile = out

	require.NoError(t, PrintReport(sampleResult("a.json", 7, schema.GoDecision), cfg, time.Second))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "a.json", decoded["path"])
	report := decoded["report"].(map[string]any)
	assert.Equal(t, "Go", report["decision"])
	assert.Equal(t, 7.0, report["total_score"])
}

func TestPrintReportYAMLToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.yaml")
	cfg := testConfig(schema.YAMLOut)
	cfg.OutputFile = out

	require.NoError(t, PrintReport(sampleResult("a.json", 5.5, schema.ReviewDecision), cfg, time.Second))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var decoded schema.SiteResult
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, schema.ReviewDecision, decoded.Report.Decision)
	assert.Len(t, decoded.Report.Rows, 2)
	assert.Nil(t, decoded.Report.Rows[1].RawValue)
}

func TestWriteBatchTable(t *testing.T) {
	results := []schema.SiteResult{
		sampleResult("b.json", 8, schema.GoDecision),
		sampleResult("a.json", 4, schema.NoGoDecision, "one", "two"),
	}
	cfg := testConfig(schema.TextOut)

	var buf bytes.Buffer
	require.NoError(t, writeBatchTable(results, cfg, createFormatters(2), time.Second, &buf))

	out := buf.String()
	assert.Contains(t, out, "b.json")
	assert.Contains(t, out, "NO-GO")
	assert.Contains(t, out, "Showing top 2 sites (go: 1, review: 0, no-go: 1)")
	assert.Contains(t, out, "with 2 workers")
}

func TestWriteBatchCSV(t *testing.T) {
	results := []schema.SiteResult{
		sampleResult("b.json", 8, schema.GoDecision),
		sampleResult("a.json", 4, schema.NoGoDecision, "one", "two"),
	}

	var buf bytes.Buffer
	require.NoError(t, writeBatchCSV(&buf, results, createFormatters(1)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"1", "b.json", "b", "8.0", "Go", "0"}, records[1])
	assert.Equal(t, []string{"2", "a.json", "a", "4.0", "NoGo", "2"}, records[2])
}

func TestPrintBatchResultsJSON(t *testing.T) {
	out := filepath.Join(t.TempDir(), "batch.json")
	cfg := testConfig(schema.JSONOut)
	cfg.OutputFile = out

	results := []schema.SiteResult{sampleResult("b.json", 8, schema.GoDecision)}
	require.NoError(t, PrintBatchResults(results, cfg, time.Second))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, float64(1), decoded[0]["rank"])
	assert.Equal(t, "GO", decoded[0]["label"])
	assert.Equal(t, "Go", decoded[0]["decision"])
	assert.Equal(t, "b", decoded[0]["site"])
}

func TestWriteCheckText(t *testing.T) {
	cfg := testConfig(schema.TextOut)
	check := schema.CheckResult{
		Path:        "a.json",
		TotalScore:  5.5,
		Decision:    schema.ReviewDecision,
		Required:    schema.GoDecision,
		Passed:      false,
		Suggestions: []string{"Poor road access."},
	}

	var buf bytes.Buffer
	require.NoError(t, writeCheckText(check, cfg, createFormatters(2), time.Second, &buf))
	out := buf.String()
	assert.Contains(t, out, "FAIL: a.json scored 5.50 (REVIEW), required GO")
	assert.Contains(t, out, "1. Poor road access.")

	check.Passed = true
	check.Required = schema.ReviewDecision
	buf.Reset()
	require.NoError(t, writeCheckText(check, cfg, createFormatters(2), time.Second, &buf))
	assert.Contains(t, buf.String(), "PASS: a.json")
	assert.NotContains(t, buf.String(), "Suggestions")
}

func TestPrintCheckResultCSV(t *testing.T) {
	out := filepath.Join(t.TempDir(), "check.csv")
	cfg := testConfig(schema.CSVOut)
	cfg.OutputFile = out

	check := schema.CheckResult{Path: "a.json", TotalScore: 7.5, Decision: schema.GoDecision, Required: schema.GoDecision, Passed: true}
	require.NoError(t, PrintCheckResult(check, cfg, time.Second))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"a.json", "", "7.50", "Go", "Go", "true"}, records[1])
}

func TestCatalogRendering(t *testing.T) {
	criteria := []schema.Criterion{
		{Key: "slope", DisplayName: "Slope", Unit: "°", Weight: 0.2, Policy: schema.LinearThreshold, Best: 5.7, Worst: 15},
		{Key: "ghi", DisplayName: "Sunlight (GHI)", Unit: " kWh/m²/day", Weight: 0.15, Policy: schema.LinearThreshold, Best: 5.5, Worst: 4.5, HigherIsBetter: true},
		{Key: "elevation", DisplayName: "Elevation", Unit: " m", Weight: 0.03, Policy: schema.ElevationRange},
		{Key: "landCover", DisplayName: "Land Cover", Weight: 0.1, Policy: schema.LandCoverCategory},
		{Key: "landOwnership", DisplayName: "Land Ownership", Weight: 0.02, Policy: schema.ManualOwnership},
	}

	assert.Equal(t, "best 5.7°, worst 15° (lower is better)", describeRule(criteria[0]))
	assert.Equal(t, "best 5.5 kWh/m²/day, worst 4.5 kWh/m²/day (higher is better)", describeRule(criteria[1]))
	assert.Equal(t, "10 if 50-1500 m, else 2", describeRule(criteria[2]))
	assert.Equal(t, "10 if class 30, 40 or 60, else 3", describeRule(criteria[3]))
	assert.Equal(t, "10 if code 1, else 5", describeRule(criteria[4]))
	assert.Equal(t, "0.20*slope+0.15*ghi+0.03*elevation+0.10*landCover+0.02*landOwnership", weightFormula(criteria))

	var buf bytes.Buffer
	require.NoError(t, writeCatalogTable(&buf, criteria))
	assert.Contains(t, buf.String(), "Total = 0.20*slope")
	assert.Contains(t, buf.String(), "GO >= 7, REVIEW >= 5")

	buf.Reset()
	require.NoError(t, writeCatalogCSV(&buf, criteria))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 6)
	assert.Equal(t, "kWh/m²/day", records[2][2])
}

func TestConcernCount(t *testing.T) {
	assert.Equal(t, 0, concernCount(schema.Report{Suggestions: []string{schema.NoConcernsMessage}}))
	assert.Equal(t, 2, concernCount(schema.Report{Suggestions: []string{"a", "b"}}))
}
