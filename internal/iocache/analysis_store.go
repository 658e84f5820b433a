package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/solarsite/internal/contract"
	"github.com/huangsam/solarsite/schema"
)

// Table names for analysis tracking.
const (
	analysisRunsTable    = "solarsite_analysis_runs"
	siteReportsTable     = "solarsite_site_reports"
	criterionScoresTable = "solarsite_criterion_scores"
)

// analysisTables lists the tables in creation order.
var analysisTables = []string{analysisRunsTable, siteReportsTable, criterionScoresTable}

// AnalysisStoreImpl implements the AnalysisStore interface.
type AnalysisStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.AnalysisStore = &AnalysisStoreImpl{} // Compile-time check

// NewAnalysisStore creates a new AnalysisStore with the specified backend.
func NewAnalysisStore(backend schema.DatabaseBackend, connStr string) (contract.AnalysisStore, error) {
	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetAnalysisDBFilePath()
		}
		db, err = sql.Open(driverFor(backend), dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		db, err = sql.Open(driverFor(backend), connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname?parseTime=true", err)
		}

	case schema.PostgreSQLBackend:
		db, err = sql.Open(driverFor(backend), connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=... dbname=... user=... password=...", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled tracking
		return &AnalysisStoreImpl{backend: backend}, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Verify the database file is accessible."
		}
		return nil, fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}

	if err := createAnalysisTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create analysis tables: %w", err)
	}

	return &AnalysisStoreImpl{db: db, backend: backend}, nil
}

// disabled reports whether the store silently ignores writes.
func (as *AnalysisStoreImpl) disabled() bool {
	return as.backend == schema.NoneBackend || as.db == nil
}

// BeginAnalysis creates a new analysis run and returns its unique ID.
func (as *AnalysisStoreImpl) BeginAnalysis(startTime time.Time, configParams map[string]any) (int64, error) {
	if as.disabled() {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(analysisRunsTable, as.backend)
	query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES (%s)`,
		quotedTableName, placeholders(as.backend, 2))

	var analysisID int64
	switch as.backend {
	case schema.PostgreSQLBackend:
		err = as.db.QueryRow(query+" RETURNING analysis_id", startTime, string(configJSON)).Scan(&analysisID)
	default: // SQLite and MySQL
		var result sql.Result
		result, err = as.db.Exec(query, formatTime(startTime, as.backend), string(configJSON))
		if err == nil {
			analysisID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert analysis run: %w", err)
	}

	return analysisID, nil
}

// EndAnalysis updates the analysis run with completion data.
func (as *AnalysisStoreImpl) EndAnalysis(analysisID int64, endTime time.Time, totalSites int) error {
	if as.disabled() {
		return nil
	}

	quotedTableName := quoteTableName(analysisRunsTable, as.backend)
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE analysis_id = %s`, quotedTableName, placeholders(as.backend, 1))

	start := newTimeScanner(as.backend)
	if err := as.db.QueryRow(query, analysisID).Scan(start.dest()); err != nil {
		return fmt.Errorf("failed to get start_time for analysis %d: %w", analysisID, err)
	}
	startTime, err := start.value()
	if err != nil {
		return err
	}
	if startTime == nil {
		return fmt.Errorf("analysis %d has no start_time", analysisID)
	}

	durationMs := endTime.Sub(*startTime).Milliseconds()

	var updateQuery string
	if as.backend == schema.PostgreSQLBackend {
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = $1, run_duration_ms = $2, total_sites_scored = $3 WHERE analysis_id = $4`, quotedTableName)
	} else {
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = ?, run_duration_ms = ?, total_sites_scored = ? WHERE analysis_id = ?`, quotedTableName)
	}

	if _, err := as.db.Exec(updateQuery, formatTime(endTime, as.backend), durationMs, totalSites, analysisID); err != nil {
		return fmt.Errorf("failed to update analysis run: %w", err)
	}

	return nil
}

// RecordSiteReport stores the report summary and one row per criterion in a single transaction.
func (as *AnalysisStoreImpl) RecordSiteReport(analysisID int64, sitePath string, report schema.Report) error {
	if as.disabled() {
		return nil
	}

	tx, err := as.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var siteName *string
	if report.Site != "" {
		siteName = &report.Site
	}

	reportQuery := fmt.Sprintf(`
		INSERT INTO %s (analysis_id, site_path, site_name, analysis_time, total_score, decision, suggestion_count)
		VALUES (%s)
	`, quoteTableName(siteReportsTable, as.backend), placeholders(as.backend, 7))
	if _, err := tx.Exec(reportQuery,
		analysisID, sitePath, siteName, formatTime(time.Now(), as.backend),
		report.TotalScore, string(report.Decision), suggestionCount(report),
	); err != nil {
		return fmt.Errorf("failed to insert site report: %w", err)
	}

	rowQuery := fmt.Sprintf(`
		INSERT INTO %s (analysis_id, site_path, criterion_key, raw_value, score, weight, weighted_score)
		VALUES (%s)
	`, quoteTableName(criterionScoresTable, as.backend), placeholders(as.backend, 7))
	for _, row := range report.Rows {
		if _, err := tx.Exec(rowQuery,
			analysisID, sitePath, row.Key, row.RawValue, row.Score, row.Weight, row.WeightedScore,
		); err != nil {
			return fmt.Errorf("failed to insert criterion %s: %w", row.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit site report: %w", err)
	}
	return nil
}

// suggestionCount ignores the placeholder shown when there is nothing to improve.
func suggestionCount(report schema.Report) int {
	if len(report.Suggestions) == 1 && report.Suggestions[0] == schema.NoConcernsMessage {
		return 0
	}
	return len(report.Suggestions)
}

// Close closes the underlying connection.
func (as *AnalysisStoreImpl) Close() error {
	if as.db != nil {
		return as.db.Close()
	}
	return nil
}

// GetStatus returns status information about the analysis store.
func (as *AnalysisStoreImpl) GetStatus() (schema.AnalysisStatus, error) {
	status := schema.AnalysisStatus{
		Backend:    string(as.backend),
		Connected:  as.db != nil,
		TableSizes: make(map[string]int64),
	}

	if as.disabled() {
		return status, nil
	}

	runsTable := quoteTableName(analysisRunsTable, as.backend)
	if err := as.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runsTable)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		last := newTimeScanner(as.backend)
		lastRunQuery := fmt.Sprintf("SELECT analysis_id, start_time FROM %s ORDER BY analysis_id DESC LIMIT 1", runsTable)
		if err := as.db.QueryRow(lastRunQuery).Scan(&status.LastRunID, last.dest()); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		if t, err := last.value(); err != nil {
			return status, err
		} else if t != nil {
			status.LastRunTime = *t
		}

		oldest := newTimeScanner(as.backend)
		oldestRunQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY analysis_id ASC LIMIT 1", runsTable)
		if err := as.db.QueryRow(oldestRunQuery).Scan(oldest.dest()); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		if t, err := oldest.value(); err != nil {
			return status, err
		} else if t != nil {
			status.OldestRunTime = *t
		}

		sitesQuery := fmt.Sprintf("SELECT COALESCE(SUM(total_sites_scored), 0) FROM %s", runsTable)
		if err := as.db.QueryRow(sitesQuery).Scan(&status.TotalSitesScored); err != nil {
			return status, fmt.Errorf("failed to get total sites scored: %w", err)
		}
	}

	for _, table := range analysisTables {
		var count int64
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, as.backend))
		if err := as.db.QueryRow(countQuery).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllAnalysisRuns retrieves all analysis runs from the store.
func (as *AnalysisStoreImpl) GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error) {
	if as.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT analysis_id, start_time, end_time, run_duration_ms, total_sites_scored, config_params
		FROM %s ORDER BY analysis_id`, quoteTableName(analysisRunsTable, as.backend))
	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.AnalysisRunRecord
	for rows.Next() {
		var record schema.AnalysisRunRecord
		var totalSites sql.NullInt32
		start, end := newTimeScanner(as.backend), newTimeScanner(as.backend)
		if err := rows.Scan(&record.AnalysisID, start.dest(), end.dest(), &record.RunDurationMs, &totalSites, &record.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan analysis run: %w", err)
		}
		startTime, err := start.value()
		if err != nil {
			return nil, err
		}
		if startTime != nil {
			record.StartTime = *startTime
		}
		if record.EndTime, err = end.value(); err != nil {
			return nil, err
		}
		record.TotalSitesScored = totalSites.Int32
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analysis runs: %w", err)
	}

	return results, nil
}

// GetAllSiteReports retrieves all report summaries from the store.
func (as *AnalysisStoreImpl) GetAllSiteReports() ([]schema.SiteReportRecord, error) {
	if as.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT analysis_id, site_path, site_name, analysis_time, total_score, decision, suggestion_count
		FROM %s ORDER BY analysis_id, site_path`, quoteTableName(siteReportsTable, as.backend))
	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query site reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.SiteReportRecord
	for rows.Next() {
		var record schema.SiteReportRecord
		at := newTimeScanner(as.backend)
		if err := rows.Scan(&record.AnalysisID, &record.SitePath, &record.SiteName, at.dest(),
			&record.TotalScore, &record.Decision, &record.SuggestionCount); err != nil {
			return nil, fmt.Errorf("failed to scan site report: %w", err)
		}
		analysisTime, err := at.value()
		if err != nil {
			return nil, err
		}
		if analysisTime != nil {
			record.AnalysisTime = *analysisTime
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating site reports: %w", err)
	}

	return results, nil
}

// GetAllCriterionScores retrieves every per-criterion row from the store.
func (as *AnalysisStoreImpl) GetAllCriterionScores() ([]schema.CriterionScoreRecord, error) {
	if as.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT analysis_id, site_path, criterion_key, raw_value, score, weight, weighted_score
		FROM %s ORDER BY analysis_id, site_path, criterion_key`, quoteTableName(criterionScoresTable, as.backend))
	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query criterion scores: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.CriterionScoreRecord
	for rows.Next() {
		var record schema.CriterionScoreRecord
		if err := rows.Scan(&record.AnalysisID, &record.SitePath, &record.CriterionKey, &record.RawValue,
			&record.Score, &record.Weight, &record.WeightedScore); err != nil {
			return nil, fmt.Errorf("failed to scan criterion score: %w", err)
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating criterion scores: %w", err)
	}

	return results, nil
}
