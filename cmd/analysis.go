package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/solarsite/internal/contract"
	"github.com/huangsam/solarsite/internal/iocache"
	"github.com/huangsam/solarsite/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// loadAnalysisBackend reads the backend settings without the full scoring validation.
func loadAnalysisBackend() (schema.DatabaseBackend, string, error) {
	if err := readConfigFile(); err != nil {
		return "", "", err
	}

	backend := schema.NoneBackend
	if backendStr := viper.GetString("analysis-backend"); backendStr != "" {
		backend = schema.DatabaseBackend(strings.ToLower(backendStr))
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", "", fmt.Errorf("invalid analysis backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}

	connStr := viper.GetString("analysis-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// analysisSetup loads minimal configuration needed for analysis operations.
// This is used by commands that need analysis access without full shared setup.
func analysisSetup() error {
	backend, connStr, err := loadAnalysisBackend()
	if err != nil {
		return err
	}

	if err := iocache.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize analysis: %w", err)
	}

	cfg.AnalysisBackend = backend
	cfg.AnalysisDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// analysisSetupWrapper wraps analysisSetup to provide PreRunE for analysis commands.
func analysisSetupWrapper(_ *cobra.Command, _ []string) error {
	return analysisSetup()
}

// analysisMigrateSetup loads minimal configuration needed for migrate operations.
// It does NOT initialize stores or create tables, so migrations run on a fresh database.
func analysisMigrateSetup() error {
	backend, connStr, err := loadAnalysisBackend()
	if err != nil {
		return err
	}

	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = iocache.GetAnalysisDBFilePath()
	}

	cfg.AnalysisBackend = backend
	cfg.AnalysisDBConnect = connStr
	return nil
}

// analysisMigrateSetupWrapper wraps analysisMigrateSetup to provide PreRunE for migrate command.
func analysisMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return analysisMigrateSetup()
}

// analysisCmd focused on analysis data management.
//
// Note: Analysis subcommands use minimal initialization (analysisSetup) instead of
// the full sharedSetup used by scoring commands. No site documents are needed.
var analysisCmd = &cobra.Command{
	Use:   "analysis",
	Short: "Manage historical scoring runs and exports",
	Long: `Manage the history of scoring runs.

When enabled with --analysis-backend, every score, batch and check run stores:
- Run metadata (timestamp, configuration, duration)
- One report summary per site (total score, decision, suggestion count)
- One row per criterion (raw value, score, weight, weighted score)

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, the default)

Subcommands:
  status  - Show tracking statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all tracking data
  migrate - Run database schema migrations

Examples:
  # Check tracking status
  solarsite analysis status --analysis-backend sqlite

  # Export for analysis in pandas/DuckDB
  solarsite analysis export --analysis-backend sqlite --output-file sites`,
}

// analysisClearCmd clears the analysis data.
var analysisClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all historical scoring data",
	Long: `Delete all stored scoring runs, site reports and criterion rows.

For SQLite the database file is removed. For MySQL and PostgreSQL the
solarsite tables are dropped and recreated on the next tracked run.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  solarsite analysis export --output-file backup
  solarsite analysis clear`,
	PreRunE: analysisSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		dbFilePath := iocache.GetAnalysisDBFilePath()
		if cfg.AnalysisBackend == schema.SQLiteBackend && cfg.AnalysisDBConnect != "" {
			dbFilePath = cfg.AnalysisDBConnect
		}
		// The open handle would keep the SQLite file busy
		iocache.CloseStores()
		if err := iocache.ClearAnalysis(cfg.AnalysisBackend, dbFilePath, cfg.AnalysisDBConnect); err != nil {
			contract.LogFatal("Failed to clear analysis data", err)
		}
		fmt.Println("Analysis data cleared successfully.")
	},
}

// analysisStatusCmd shows analysis status.
var analysisStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display tracking statistics and connection details",
	Long: `Show information about the scoring history store.

Displays:
- Backend type and connection status
- Total number of runs and scored sites
- Last and oldest run timestamps
- Row counts per table

Examples:
  solarsite analysis status --analysis-backend sqlite`,
	PreRunE: analysisSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetAnalysisStore()
		if store == nil {
			iocache.PrintAnalysisStatus(os.Stdout, schema.AnalysisStatus{Backend: string(schema.NoneBackend)})
			return
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get analysis status", err)
		}
		iocache.PrintAnalysisStatus(os.Stdout, status)
	},
}

// analysisExportCmd exports analysis data to Parquet files.
var analysisExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export historical data to Parquet for BI tools and analytics",
	Long: `Export all stored scoring data to Parquet format.

Writes three datasets next to the --output-file prefix:
- <prefix>.analysis_runs.parquet    - metadata about each run
- <prefix>.site_reports.parquet     - one summary per scored site
- <prefix>.criterion_scores.parquet - one row per site and criterion

Requires: --output-file parameter

Examples:
  solarsite analysis export --analysis-backend sqlite --output-file sites
  duckdb -c "SELECT decision, count(*) FROM read_parquet('sites.site_reports.parquet') GROUP BY 1"`,
	PreRunE: analysisSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteAnalysisExport(os.Stdout, iocache.Manager.GetAnalysisStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export analysis data", err)
		}
	},
}

// analysisMigrateCmd runs database migrations for the analysis store.
var analysisMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the scoring history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  solarsite analysis migrate --analysis-backend sqlite

  # Migrate to specific version
  solarsite analysis migrate --analysis-backend sqlite --target-version 2

  # Rollback to initial state
  solarsite analysis migrate --analysis-backend sqlite --target-version 0`,
	PreRunE: analysisMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateAnalysis(cfg.AnalysisBackend, cfg.AnalysisDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
