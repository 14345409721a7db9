package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/huangsam/ladder/internal/contract"
	"github.com/huangsam/ladder/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// Table names for selection history.
const (
	selectionRunsTable = "ladder_selection_runs"
	selectionsTable    = "ladder_selections"
)

// historyTables lists the history tables in creation order.
var historyTables = []string{selectionRunsTable, selectionsTable}

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// driverFor returns the database/sql driver name and DSN for a backend.
// MySQL DSNs always get parseTime so DATETIME columns scan into time.Time.
func driverFor(backend schema.DatabaseBackend, connStr string) (string, string, error) {
	switch backend {
	case schema.SQLiteBackend:
		if connStr == "" {
			connStr = contract.GetHistoryDBFilePath()
		}
		return "sqlite", connStr, nil
	case schema.MySQLBackend:
		cfg, err := mysql.ParseDSN(connStr)
		if err != nil {
			return "", "", fmt.Errorf("invalid MySQL connection string: %w. Expected user:password@tcp(host:port)/dbname", err)
		}
		cfg.ParseTime = true
		return "mysql", cfg.FormatDSN(), nil
	case schema.PostgreSQLBackend:
		return "pgx", connStr, nil
	default:
		return "", "", fmt.Errorf("unsupported backend: %s", backend)
	}
}

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &HistoryStoreImpl{backend: backend}, nil
	}

	driverName, dsn, err := driverFor(backend, connStr)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", backend, err)
	}
	if backend == schema.SQLiteBackend {
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w. Verify the database server is running and accessible", backend, err)
	}

	if err := createHistoryTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &HistoryStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
	}, nil
}

// createHistoryTables creates the history tables when missing.
func createHistoryTables(db *sql.DB, backend schema.DatabaseBackend) error {
	queries := map[string]string{
		selectionRunsTable: getCreateSelectionRunsQuery(backend),
		selectionsTable:    getCreateSelectionsQuery(backend),
	}
	for _, table := range historyTables {
		if _, err := db.Exec(queries[table]); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table, err)
		}
	}
	return nil
}

// getCreateSelectionRunsQuery returns the CREATE TABLE query for ladder_selection_runs.
func getCreateSelectionRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(selectionRunsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				total_inputs INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				total_inputs INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				total_inputs INTEGER NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateSelectionsQuery returns the CREATE TABLE query for ladder_selections.
func getCreateSelectionsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(selectionsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				input_name VARCHAR(512) NOT NULL,
				analysis_time DATETIME(6) NOT NULL,
				complexity_score DOUBLE NOT NULL,
				method_name VARCHAR(255) NOT NULL,
				method_score DOUBLE NOT NULL,
				method_category VARCHAR(255),
				derived_metric DOUBLE NOT NULL,
				label VARCHAR(50) NOT NULL,
				PRIMARY KEY (run_id, input_name)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				input_name TEXT NOT NULL,
				analysis_time TIMESTAMPTZ NOT NULL,
				complexity_score DOUBLE PRECISION NOT NULL,
				method_name TEXT NOT NULL,
				method_score DOUBLE PRECISION NOT NULL,
				method_category TEXT,
				derived_metric DOUBLE PRECISION NOT NULL,
				label TEXT NOT NULL,
				PRIMARY KEY (run_id, input_name)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				input_name TEXT NOT NULL,
				analysis_time TEXT NOT NULL,
				complexity_score REAL NOT NULL,
				method_name TEXT NOT NULL,
				method_score REAL NOT NULL,
				method_category TEXT,
				derived_metric REAL NOT NULL,
				label TEXT NOT NULL,
				PRIMARY KEY (run_id, input_name)
			);
		`, quotedTableName)
	}
}

// placeholders returns n bind parameters in the backend's style.
func placeholders(backend schema.DatabaseBackend, n int) []string {
	out := make([]string, n)
	for i := range out {
		if backend == schema.PostgreSQLBackend {
			out[i] = fmt.Sprintf("$%d", i+1)
		} else {
			out[i] = "?"
		}
	}
	return out
}

// BeginRun creates a new selection run and returns its unique ID.
func (hs *HistoryStoreImpl) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(selectionRunsTable, hs.backend)

	var runID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES ($1, $2) RETURNING run_id`, quotedTableName)
		err = hs.db.QueryRow(query, startTime, string(configJSON)).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES (?, ?)`, quotedTableName)
		var result sql.Result
		result, err = hs.db.Exec(query, formatTime(startTime, hs.backend), string(configJSON))
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert selection run: %w", err)
	}

	return runID, nil
}

// EndRun updates the selection run with completion data.
func (hs *HistoryStoreImpl) EndRun(runID int64, endTime time.Time, totalInputs int) error {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(selectionRunsTable, hs.backend)
	p := placeholders(hs.backend, 4)

	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = %s`, quotedTableName, p[0])
	startTime, err := hs.scanTime(hs.db.QueryRow(query, runID))
	if err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}

	durationMs := endTime.Sub(startTime).Milliseconds()

	updateQuery := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, total_inputs = %s WHERE run_id = %s`,
		quotedTableName, p[0], p[1], p[2], p[3])
	if _, err := hs.db.Exec(updateQuery, formatTime(endTime, hs.backend), durationMs, totalInputs, runID); err != nil {
		return fmt.Errorf("failed to update selection run: %w", err)
	}

	return nil
}

// RecordSelection stores one enriched result for a run.
// Recording the same input twice in a run keeps the latest result.
func (hs *HistoryStoreImpl) RecordSelection(runID int64, analysisTime time.Time, result schema.EnrichedResult) error {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(selectionsTable, hs.backend)
	p := placeholders(hs.backend, 9)
	columns := `run_id, input_name, analysis_time, complexity_score, method_name, method_score, method_category, derived_metric, label`
	values := fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s", p[0], p[1], p[2], p[3], p[4], p[5], p[6], p[7], p[8])

	var query string
	switch hs.backend {
	case schema.MySQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)
			ON DUPLICATE KEY UPDATE analysis_time = VALUES(analysis_time), complexity_score = VALUES(complexity_score),
			method_name = VALUES(method_name), method_score = VALUES(method_score), method_category = VALUES(method_category),
			derived_metric = VALUES(derived_metric), label = VALUES(label)`, quotedTableName, columns, values)
	default: // SQLite and PostgreSQL
		query = fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)
			ON CONFLICT (run_id, input_name) DO UPDATE SET analysis_time = excluded.analysis_time,
			complexity_score = excluded.complexity_score, method_name = excluded.method_name,
			method_score = excluded.method_score, method_category = excluded.method_category,
			derived_metric = excluded.derived_metric, label = excluded.label`, quotedTableName, columns, values)
	}

	_, err := hs.db.Exec(query,
		runID,
		result.InputName,
		formatTime(analysisTime, hs.backend),
		result.ComplexityScore,
		result.Method.Name,
		result.Method.Score,
		result.Method.Category,
		result.DerivedMetric,
		result.Label,
	)
	if err != nil {
		return fmt.Errorf("failed to insert selection: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if hs.backend == schema.NoneBackend || hs.db == nil {
		return status, nil
	}

	runsTable := quoteTableName(selectionRunsTable, hs.backend)

	row := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runsTable))
	if err := row.Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		row = hs.db.QueryRow(fmt.Sprintf("SELECT run_id FROM %s ORDER BY run_id DESC LIMIT 1", runsTable))
		if err := row.Scan(&status.LastRunID); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}

		lastRunTime, err := hs.scanTime(hs.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id DESC LIMIT 1", runsTable)))
		if err != nil {
			return status, fmt.Errorf("failed to get last run time: %w", err)
		}
		status.LastRunTime = lastRunTime

		oldestRunTime, err := hs.scanTime(hs.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", runsTable)))
		if err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		status.OldestRunTime = oldestRunTime

		row = hs.db.QueryRow(fmt.Sprintf("SELECT COALESCE(SUM(total_inputs), 0) FROM %s", runsTable))
		if err := row.Scan(&status.TotalInputs); err != nil {
			return status, fmt.Errorf("failed to get total inputs: %w", err)
		}
	}

	for _, table := range historyTables {
		var count int64
		row = hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, hs.backend)))
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllRuns retrieves every recorded run ordered by ID.
func (hs *HistoryStoreImpl) GetAllRuns() ([]schema.SelectionRunRecord, error) {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT run_id, start_time, end_time, run_duration_ms, total_inputs, config_params FROM %s ORDER BY run_id",
		quoteTableName(selectionRunsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query selection runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.SelectionRunRecord
	for rows.Next() {
		var record schema.SelectionRunRecord

		switch hs.backend {
		case schema.SQLiteBackend:
			var startTimeStr string
			var endTimeStr *string
			if err := rows.Scan(&record.RunID, &startTimeStr, &endTimeStr, &record.RunDurationMs, &record.TotalInputs, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan selection run: %w", err)
			}
			startTime, err := time.Parse(time.RFC3339Nano, startTimeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			record.StartTime = startTime
			if endTimeStr != nil {
				endTime, err := time.Parse(time.RFC3339Nano, *endTimeStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				record.EndTime = &endTime
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &record.StartTime, &record.EndTime, &record.RunDurationMs, &record.TotalInputs, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan selection run: %w", err)
			}
		}

		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating selection runs: %w", err)
	}
	return results, nil
}

// GetAllSelections retrieves every recorded selection ordered by run and input.
func (hs *HistoryStoreImpl) GetAllSelections() ([]schema.SelectionRecord, error) {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, input_name, analysis_time, complexity_score, method_name,
		method_score, COALESCE(method_category, ''), derived_metric, label
		FROM %s ORDER BY run_id, input_name`, quoteTableName(selectionsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query selections: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.SelectionRecord
	for rows.Next() {
		var record schema.SelectionRecord

		switch hs.backend {
		case schema.SQLiteBackend:
			var analysisTimeStr string
			if err := rows.Scan(&record.RunID, &record.InputName, &analysisTimeStr, &record.ComplexityScore, &record.MethodName,
				&record.MethodScore, &record.MethodCategory, &record.DerivedMetric, &record.Label); err != nil {
				return nil, fmt.Errorf("failed to scan selection: %w", err)
			}
			analysisTime, err := time.Parse(time.RFC3339Nano, analysisTimeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse analysis_time: %w", err)
			}
			record.AnalysisTime = analysisTime
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &record.InputName, &record.AnalysisTime, &record.ComplexityScore, &record.MethodName,
				&record.MethodScore, &record.MethodCategory, &record.DerivedMetric, &record.Label); err != nil {
				return nil, fmt.Errorf("failed to scan selection: %w", err)
			}
		}

		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating selections: %w", err)
	}
	return results, nil
}

// scanTime reads a single time column, which SQLite stores as RFC3339 text.
func (hs *HistoryStoreImpl) scanTime(row *sql.Row) (time.Time, error) {
	if hs.backend == schema.SQLiteBackend {
		var s string
		if err := row.Scan(&s); err != nil {
			return time.Time{}, err
		}
		return time.Parse(time.RFC3339Nano, s)
	}
	var t time.Time
	err := row.Scan(&t)
	return t, err
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.UTC().Format(time.RFC3339Nano)
	default:
		return t
	}
}
