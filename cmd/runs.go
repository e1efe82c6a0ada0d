package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/chartkit/internal/contract"
	"github.com/huangsam/chartkit/internal/iocache"
	"github.com/huangsam/chartkit/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runBackendFromConfig reads the run backend settings, treating an empty backend as none.
func runBackendFromConfig() (schema.DatabaseBackend, string, error) {
	backend := schema.DatabaseBackend(viper.GetString("run-backend"))
	if backend == "" {
		backend = schema.NoneBackend
	}
	connStr := viper.GetString("run-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// runsSetup loads minimal configuration needed for run history operations.
func runsSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, connStr, err := runBackendFromConfig()
	if err != nil {
		return err
	}

	// No geometry cache for run commands
	var storeBackend schema.DatabaseBackend
	if backend != schema.NoneBackend {
		storeBackend = backend
	}
	if err := iocache.InitStores("", "", storeBackend, connStr); err != nil {
		return fmt.Errorf("failed to initialize run tracking: %w", err)
	}

	cfg.RunBackend = backend
	cfg.RunDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// runsSetupWrapper wraps runsSetup to provide PreRunE for run commands.
func runsSetupWrapper(_ *cobra.Command, _ []string) error {
	return runsSetup()
}

// runsMigrateSetup loads the configuration for migrations. It does NOT open the
// stores or create tables, so migrations can run on a fresh database.
func runsMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, connStr, err := runBackendFromConfig()
	if err != nil {
		return err
	}

	cfg.RunBackend = backend
	cfg.RunDBConnect = sqlitePath(backend, connStr, contract.GetRunDBFilePath())
	if backend != schema.SQLiteBackend {
		cfg.RunDBConnect = connStr
	}

	return nil
}

// runsMigrateSetupWrapper wraps runsMigrateSetup to provide PreRunE for the migrate command.
func runsMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return runsMigrateSetup()
}

// runsCmd focused on render run history.
//
// Note: Runs subcommands use minimal initialization (runsSetup) instead of
// the full sharedSetup used by chart commands. No input file is needed.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage render run history and exports",
	Long: `Manage the history of render runs.

When --run-backend is set, every render is recorded with:
- Run metadata (command, start and end time, layout settings)
- Series and point counts, and whether the cache served the geometry
- Per-series extents (x and y minimum and maximum, point count)

Subcommands:
  status  - Show run statistics and connection info
  clear   - Remove all run history
  export  - Export runs and series summaries to Parquet
  migrate - Apply schema migrations

Examples:
  # Enable tracking for one render
  chartkit render data/series.json --run-backend sqlite

  # Check run history
  CHARTKIT_RUN_BACKEND=sqlite chartkit runs status

  # Export for analysis in pandas/DuckDB
  CHARTKIT_RUN_BACKEND=sqlite chartkit runs export --output-file runs.parquet`,
}

// runsClearCmd clears the run history.
var runsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all render run history",
	Long: `Delete all stored render runs and series summaries.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  chartkit runs export --output-file backup.parquet
  chartkit runs clear`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// Release the SQLite handle before the file is removed
		iocache.CloseCaching()
		if err := iocache.ClearRuns(cfg.RunBackend, sqlitePath(cfg.RunBackend, cfg.RunDBConnect, contract.GetRunDBFilePath()), cfg.RunDBConnect); err != nil {
			contract.LogFatal("Failed to clear run history", err)
		}
		fmt.Println("Run history cleared successfully.")
	},
}

// runsStatusCmd shows run tracking status.
var runsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run tracking statistics and connection details",
	Long: `Show detailed information about render run tracking.

Displays:
- Backend type and connection status
- Total number of runs and series summaries stored
- Last and oldest run timestamps

Examples:
  # Check run tracking status
  chartkit runs status --run-backend sqlite`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetRunStore()
		if store == nil {
			contract.LogFatal("Failed to get run status", fmt.Errorf("run tracking is disabled. Set --run-backend to enable it"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get run status", err)
		}
		iocache.PrintRunStatus(os.Stdout, status)
	},
}

// runsExportCmd exports run history to Parquet files.
var runsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run history to Parquet for BI tools and analytics",
	Long: `Export all stored run data to Parquet format.

Exports two datasets next to --output-file:
- Render runs - metadata about each render
- Series summaries - per-series extents for each run

Requires: --output-file parameter

Examples:
  # Export all data
  chartkit runs export --output-file chartkit-runs.parquet

  # Use with DuckDB
  duckdb -c "SELECT * FROM read_parquet('chartkit-runs.parquet.render_runs.parquet') LIMIT 10"`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteRunExport(os.Stdout, iocache.Manager.GetRunStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export run history", err)
		}
	},
}

// runsMigrateCmd runs database migrations for the run store.
var runsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the render run store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  chartkit runs migrate --run-backend sqlite

  # Rollback to initial state
  chartkit runs migrate --run-backend sqlite --target-version 0`,
	PreRunE: runsMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateRuns(cfg.RunBackend, cfg.RunDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
