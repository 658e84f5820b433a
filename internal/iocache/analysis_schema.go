package iocache

import (
	"database/sql"
	"fmt"

	"github.com/huangsam/solarsite/schema"
)

// dialect holds the column types that differ between backends.
type dialect struct {
	serialKey string // auto-incrementing primary key
	bigInt    string
	integer   string
	real      string
	text      string
	pathKey   string // text column that takes part in a primary key
	shortKey  string
	timestamp string
}

var dialects = map[schema.DatabaseBackend]dialect{
	schema.SQLiteBackend: {
		serialKey: "INTEGER PRIMARY KEY AUTOINCREMENT",
		bigInt:    "INTEGER",
		integer:   "INTEGER",
		real:      "REAL",
		text:      "TEXT",
		pathKey:   "TEXT",
		shortKey:  "TEXT",
		timestamp: "TEXT",
	},
	schema.MySQLBackend: {
		serialKey: "BIGINT AUTO_INCREMENT PRIMARY KEY",
		bigInt:    "BIGINT",
		integer:   "INT",
		real:      "DOUBLE",
		text:      "TEXT",
		pathKey:   "VARCHAR(512)",
		shortKey:  "VARCHAR(64)",
		timestamp: "DATETIME(6)",
	},
	schema.PostgreSQLBackend: {
		serialKey: "BIGSERIAL PRIMARY KEY",
		bigInt:    "BIGINT",
		integer:   "INT",
		real:      "DOUBLE PRECISION",
		text:      "TEXT",
		pathKey:   "TEXT",
		shortKey:  "TEXT",
		timestamp: "TIMESTAMPTZ",
	},
}

// createAnalysisTables creates the analysis tracking tables.
func createAnalysisTables(db *sql.DB, backend schema.DatabaseBackend) error {
	for _, table := range analysisTables {
		query, err := getCreateTableQuery(table, backend)
		if err != nil {
			return err
		}
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table, err)
		}
	}
	return nil
}

// getCreateTableQuery returns the CREATE TABLE statement for one analysis table.
func getCreateTableQuery(table string, backend schema.DatabaseBackend) (string, error) {
	d, ok := dialects[backend]
	if !ok {
		return "", fmt.Errorf("unsupported backend: %s", backend)
	}
	if err := validateTableName(table); err != nil {
		return "", err
	}
	quoted := quoteTableName(table, backend)

	switch table {
	case analysisRunsTable:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id %s,
				start_time %s NOT NULL,
				end_time %s,
				run_duration_ms %s,
				total_sites_scored %s,
				config_params %s
			)`, quoted, d.serialKey, d.timestamp, d.timestamp, d.integer, d.integer, d.text), nil

	case siteReportsTable:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id %s NOT NULL,
				site_path %s NOT NULL,
				site_name %s,
				analysis_time %s NOT NULL,
				total_score %s NOT NULL,
				decision %s NOT NULL,
				suggestion_count %s NOT NULL,
				PRIMARY KEY (analysis_id, site_path)
			)`, quoted, d.bigInt, d.pathKey, d.text, d.timestamp, d.real, d.shortKey, d.integer), nil

	case criterionScoresTable:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id %s NOT NULL,
				site_path %s NOT NULL,
				criterion_key %s NOT NULL,
				raw_value %s,
				score %s NOT NULL,
				weight %s NOT NULL,
				weighted_score %s NOT NULL,
				PRIMARY KEY (analysis_id, site_path, criterion_key)
			)`, quoted, d.bigInt, d.pathKey, d.shortKey, d.real, d.real, d.real, d.real), nil

	default:
		return "", fmt.Errorf("unknown analysis table: %s", table)
	}
}
