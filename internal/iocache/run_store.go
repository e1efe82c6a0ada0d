package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/chartkit/internal/contract"
	"github.com/huangsam/chartkit/schema"
)

// Table names for render-run tracking.
const (
	renderRunsTable      = "chartkit_render_runs"
	seriesSummariesTable = "chartkit_series_summaries"
)

// RunStoreImpl implements the RunStore interface.
type RunStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.RunStore = &RunStoreImpl{} // Compile-time check

// NewRunStore creates a new RunStore with the specified backend.
func NewRunStore(backend schema.DatabaseBackend, connStr string) (contract.RunStore, error) {
	if backend == schema.NoneBackend {
		// No-op store for disabled tracking
		return &RunStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr, GetRunDBFilePath())
	if err != nil {
		return nil, err
	}

	if err := createRunTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create run tables: %w", err)
	}

	return &RunStoreImpl{db: db, backend: backend}, nil
}

// createRunTables creates the run tracking tables.
func createRunTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{renderRunsTable, getCreateRenderRunsQuery(backend)},
		{seriesSummariesTable, getCreateSeriesSummariesQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

// getCreateRenderRunsQuery returns the CREATE TABLE query for chartkit_render_runs.
func getCreateRenderRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(renderRunsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				command VARCHAR(64) NOT NULL,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms BIGINT,
				series_count INT NOT NULL DEFAULT 0,
				point_count INT NOT NULL DEFAULT 0,
				cache_hit BOOLEAN NOT NULL DEFAULT FALSE,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				command TEXT NOT NULL,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms BIGINT,
				series_count INT NOT NULL DEFAULT 0,
				point_count INT NOT NULL DEFAULT 0,
				cache_hit BOOLEAN NOT NULL DEFAULT FALSE,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				command TEXT NOT NULL,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				series_count INTEGER NOT NULL DEFAULT 0,
				point_count INTEGER NOT NULL DEFAULT 0,
				cache_hit BOOLEAN NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateSeriesSummariesQuery returns the CREATE TABLE query for chartkit_series_summaries.
func getCreateSeriesSummariesQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(seriesSummariesTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				series_id VARCHAR(255) NOT NULL,
				point_count INT NOT NULL,
				min_x DOUBLE NOT NULL,
				max_x DOUBLE NOT NULL,
				min_y DOUBLE NOT NULL,
				max_y DOUBLE NOT NULL,
				PRIMARY KEY (run_id, series_id)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				series_id TEXT NOT NULL,
				point_count INT NOT NULL,
				min_x DOUBLE PRECISION NOT NULL,
				max_x DOUBLE PRECISION NOT NULL,
				min_y DOUBLE PRECISION NOT NULL,
				max_y DOUBLE PRECISION NOT NULL,
				PRIMARY KEY (run_id, series_id)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				series_id TEXT NOT NULL,
				point_count INTEGER NOT NULL,
				min_x REAL NOT NULL,
				max_x REAL NOT NULL,
				min_y REAL NOT NULL,
				max_y REAL NOT NULL,
				PRIMARY KEY (run_id, series_id)
			);
		`, quotedTableName)
	}
}

// BeginRun creates a new render run and returns its unique ID.
func (rs *RunStoreImpl) BeginRun(command string, startTime time.Time, configParams map[string]any) (int64, error) {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(renderRunsTable, rs.backend)
	params := strings.Join(placeholders(rs.backend, 3), ", ")

	var runID int64
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (command, start_time, config_params) VALUES (%s) RETURNING run_id`, quotedTableName, params)
		err = rs.db.QueryRow(query, command, startTime, string(configJSON)).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (command, start_time, config_params) VALUES (%s)`, quotedTableName, params)
		var result sql.Result
		result, err = rs.db.Exec(query, command, formatTime(startTime, rs.backend), string(configJSON))
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert render run: %w", err)
	}
	return runID, nil
}

// EndRun updates the render run with completion data.
func (rs *RunStoreImpl) EndRun(runID int64, endTime time.Time, seriesCount, pointCount int, cacheHit bool) error {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(renderRunsTable, rs.backend)
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = %s`, quotedTableName, placeholders(rs.backend, 1)[0])
	startTime, err := rs.scanTime(rs.db.QueryRow(query, runID))
	if err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}

	durationMs := endTime.Sub(startTime).Milliseconds()

	p := placeholders(rs.backend, 6)
	updateQuery := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, series_count = %s, point_count = %s, cache_hit = %s WHERE run_id = %s`,
		quotedTableName, p[0], p[1], p[2], p[3], p[4], p[5])
	if _, err := rs.db.Exec(updateQuery, formatTime(endTime, rs.backend), durationMs, seriesCount, pointCount, cacheHit, runID); err != nil {
		return fmt.Errorf("failed to update render run: %w", err)
	}
	return nil
}

// RecordSeriesSummary stores the extent of one rendered series.
func (rs *RunStoreImpl) RecordSeriesSummary(runID int64, summary schema.SeriesSummaryRecord) error {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(seriesSummariesTable, rs.backend)
	query := fmt.Sprintf(`INSERT INTO %s (run_id, series_id, point_count, min_x, max_x, min_y, max_y) VALUES (%s)`,
		quotedTableName, strings.Join(placeholders(rs.backend, 7), ", "))
	_, err := rs.db.Exec(query, runID, summary.SeriesID, summary.PointCount,
		summary.MinX, summary.MaxX, summary.MinY, summary.MaxY)
	if err != nil {
		return fmt.Errorf("failed to insert series summary: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (rs *RunStoreImpl) Close() error {
	if rs.db != nil {
		return rs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the run store.
func (rs *RunStoreImpl) GetStatus() (schema.RunStatus, error) {
	status := schema.RunStatus{
		Backend:    string(rs.backend),
		Connected:  rs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if rs.backend == schema.NoneBackend || rs.db == nil {
		return status, nil
	}

	runsTable := quoteTableName(renderRunsTable, rs.backend)
	if err := rs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runsTable)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		row := rs.db.QueryRow(fmt.Sprintf("SELECT run_id FROM %s ORDER BY run_id DESC LIMIT 1", runsTable))
		if err := row.Scan(&status.LastRunID); err != nil {
			return status, fmt.Errorf("failed to get last run id: %w", err)
		}

		var err error
		row = rs.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id DESC LIMIT 1", runsTable))
		if status.LastRunTime, err = rs.scanTime(row); err != nil {
			return status, fmt.Errorf("failed to get last run time: %w", err)
		}
		row = rs.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", runsTable))
		if status.OldestRunTime, err = rs.scanTime(row); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}

		row = rs.db.QueryRow(fmt.Sprintf("SELECT COALESCE(SUM(series_count), 0) FROM %s", runsTable))
		if err := row.Scan(&status.TotalSeries); err != nil {
			return status, fmt.Errorf("failed to get total series: %w", err)
		}
	}

	for _, table := range []string{renderRunsTable, seriesSummariesTable} {
		var count int64
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, rs.backend))
		if err := rs.db.QueryRow(query).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllRuns retrieves all render runs from the store.
func (rs *RunStoreImpl) GetAllRuns() ([]schema.RenderRunRecord, error) {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, command, start_time, end_time, run_duration_ms, series_count, point_count, cache_hit, config_params
		FROM %s ORDER BY run_id`, quoteTableName(renderRunsTable, rs.backend))
	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query render runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RenderRunRecord
	for rows.Next() {
		var record schema.RenderRunRecord

		switch rs.backend {
		case schema.SQLiteBackend:
			var startTimeStr string
			var endTimeStr *string
			if err := rows.Scan(&record.RunID, &record.Command, &startTimeStr, &endTimeStr, &record.RunDurationMs,
				&record.SeriesCount, &record.PointCount, &record.CacheHit, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan render run: %w", err)
			}
			if record.StartTime, err = parseTime(startTimeStr); err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			if endTimeStr != nil {
				endTime, err := parseTime(*endTimeStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				record.EndTime = &endTime
			}
		default: // MySQL and PostgreSQL store native datetimes
			if err := rows.Scan(&record.RunID, &record.Command, &record.StartTime, &record.EndTime, &record.RunDurationMs,
				&record.SeriesCount, &record.PointCount, &record.CacheHit, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan render run: %w", err)
			}
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating render runs: %w", err)
	}
	return results, nil
}

// GetAllSeriesSummaries retrieves all series summaries from the store.
func (rs *RunStoreImpl) GetAllSeriesSummaries() ([]schema.SeriesSummaryRecord, error) {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, series_id, point_count, min_x, max_x, min_y, max_y
		FROM %s ORDER BY run_id, series_id`, quoteTableName(seriesSummariesTable, rs.backend))
	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query series summaries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.SeriesSummaryRecord
	for rows.Next() {
		var record schema.SeriesSummaryRecord
		if err := rows.Scan(&record.RunID, &record.SeriesID, &record.PointCount,
			&record.MinX, &record.MaxX, &record.MinY, &record.MaxY); err != nil {
			return nil, fmt.Errorf("failed to scan series summary: %w", err)
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating series summaries: %w", err)
	}
	return results, nil
}

// scanTime reads a single timestamp column, handling SQLite's text storage.
func (rs *RunStoreImpl) scanTime(row *sql.Row) (time.Time, error) {
	if rs.backend == schema.SQLiteBackend {
		var s string
		if err := row.Scan(&s); err != nil {
			return time.Time{}, err
		}
		return parseTime(s)
	}
	var t time.Time
	err := row.Scan(&t)
	return t, err
}
