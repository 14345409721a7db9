package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/huangsam/ladder/internal/contract"
	"github.com/huangsam/ladder/internal/iocache"
	"github.com/huangsam/ladder/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyConfig reads the backend settings shared by all history subcommands.
func historyConfig() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	backend, err := contract.ParseBackend(viper.GetString("history-backend"))
	if err != nil {
		return "", "", err
	}
	connStr := viper.GetString("history-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}

	colors, err := contract.ParseBoolString(viper.GetString("color"))
	if err != nil {
		colors = false
	}
	setupLogging(viper.GetString("log-level"), colors)
	return backend, connStr, nil
}

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need the history store without full shared setup.
func historySetup() error {
	backend, connStr, err := historyConfig()
	if err != nil {
		return err
	}

	if err := iocache.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// It does NOT initialize stores or create tables, allowing migrations to run
// on a fresh database.
func historyMigrateSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := historyConfig()
	if err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historyCmd focused on selection history management.
//
// Note: History subcommands use minimal initialization (historySetup) instead of
// the full sharedSetup used by selection commands. This avoids catalogue and
// ladder validation for simple history operations.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage selection history tracking and exports",
	Long: `Manage the history of selection runs.

When enabled, Ladder tracks every selection run, storing:
- Run metadata (timestamp, configuration, duration)
- The method chosen for each input with its complexity score and derived metric

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, default)

Subcommands:
  status  - Show history tracking statistics
  export  - Export history to Parquet files
  clear   - Remove all tracking data
  migrate - Run database schema migrations

Examples:
  # Check tracking status
  ladder history status --history-backend sqlite

  # Export for analysis in pandas/DuckDB
  ladder history export --history-backend sqlite --output-file ladder-history`,
}

// historyClearCmd clears the selection history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all selection history",
	Long: `Delete all stored selection runs and per-input selections.

For SQLite the database file is removed. For MySQL and PostgreSQL the history
tables are dropped.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  ladder history export --history-backend sqlite --output-file backup
  ladder history clear --history-backend sqlite`,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		// SQLite keeps its file path in the connection string
		if err := iocache.ClearHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("Selection history cleared successfully.")
	},
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display history tracking statistics and connection details",
	Long: `Show detailed information about selection history tracking.

Displays:
- Backend type and connection status
- Total number of selection runs stored
- Last and oldest run timestamps
- Total inputs selected across all runs
- Database table sizes

Examples:
  # Check history tracking status
  ladder history status --history-backend sqlite`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetHistoryStore()
		if store == nil {
			iocache.PrintHistoryStatus(os.Stdout, schema.HistoryStatus{Backend: string(schema.NoneBackend)})
			return
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		iocache.PrintHistoryStatus(os.Stdout, status)
	},
}

// historyExportCmd exports selection history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export selection history to Parquet for BI tools and analytics",
	Long: `Export all stored selection history to Parquet format.

Exports two datasets:
- <output-file>.selection_runs.parquet - metadata about each run
- <output-file>.selections.parquet - the method chosen for each input

Requires: --output-file parameter

Examples:
  # Export all data
  ladder history export --history-backend sqlite --output-file ladder

  # Use with DuckDB for analysis
  duckdb -c "SELECT method_name, COUNT(*) FROM read_parquet('ladder.selections.parquet') GROUP BY 1"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if cfg.OutputFile == "" {
			contract.LogFatal("Failed to export history", errors.New("--output-file is required for export command"))
		}
		if err := iocache.ExecuteHistoryExport(cfg.OutputFile, os.Stdout); err != nil {
			contract.LogFatal("Failed to export history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the selection history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  ladder history migrate --history-backend sqlite

  # Migrate to specific version
  ladder history migrate --history-backend sqlite --target-version 1

  # Rollback to initial state
  ladder history migrate --history-backend sqlite --target-version 0`,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion, os.Stdout); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
