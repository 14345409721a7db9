package iocache

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/huangsam/ladder/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetManager restores the global manager between tests.
func resetManager(t *testing.T) {
	t.Helper()
	initOnce = sync.Once{}
	closeOnce = sync.Once{}
	Manager = &StoreManagerImpl{}
}

func TestInitStores(t *testing.T) {
	t.Run("sqlite backend", func(t *testing.T) {
		resetManager(t)
		dbPath := filepath.Join(t.TempDir(), "history.db")

		require.NoError(t, InitStores(schema.SQLiteBackend, dbPath))
		assert.NotNil(t, Manager.GetHistoryStore())

		CloseStores()
		_, err := os.Stat(dbPath)
		assert.NoError(t, err, "database file should be created")
	})

	t.Run("idempotent setup", func(t *testing.T) {
		resetManager(t)
		dbPath := filepath.Join(t.TempDir(), "history.db")

		assert.NoError(t, InitStores(schema.SQLiteBackend, dbPath))
		assert.NoError(t, InitStores(schema.SQLiteBackend, dbPath))

		CloseStores()
		CloseStores()
	})

	t.Run("none backend", func(t *testing.T) {
		resetManager(t)

		require.NoError(t, InitStores(schema.NoneBackend, ""))
		assert.Nil(t, Manager.GetHistoryStore())
		CloseStores()
	})

	t.Run("bad mysql dsn", func(t *testing.T) {
		resetManager(t)

		err := InitStores(schema.MySQLBackend, "not a dsn")
		assert.Error(t, err)
		assert.Nil(t, Manager.GetHistoryStore())
	})
}

func TestClearHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "clear.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("x"), 0o600))

	require.NoError(t, ClearHistory(schema.SQLiteBackend, dbPath, ""))
	_, err := os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err))

	// Missing file is fine
	assert.NoError(t, ClearHistory(schema.SQLiteBackend, dbPath, ""))
	assert.Error(t, ClearHistory(schema.SQLiteBackend, "", ""))
	assert.NoError(t, ClearHistory(schema.NoneBackend, "", ""))
	assert.Error(t, ClearHistory(schema.DatabaseBackend("oracle"), "", ""))
}

func TestValidateTableName(t *testing.T) {
	assert.NoError(t, validateTableName(selectionsTable))
	assert.Error(t, validateTableName("bad; DROP TABLE x"))
	assert.Error(t, validateTableName(""))
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`t`", quoteTableName("t", schema.MySQLBackend))
	assert.Equal(t, `"t"`, quoteTableName("t", schema.PostgreSQLBackend))
	assert.Equal(t, `"t"`, quoteTableName("t", schema.SQLiteBackend))
}

func TestExportHistory(t *testing.T) {
	store, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun(time.Now(), map[string]any{"limit": 5})
	require.NoError(t, err)
	require.NoError(t, store.RecordSelection(runID, time.Now(), sampleResult("a.json", 0.9, schema.Method{Name: "high", Score: 0.95})))
	require.NoError(t, store.EndRun(runID, time.Now(), 1))

	base := filepath.Join(t.TempDir(), "export")
	var out bytes.Buffer
	require.NoError(t, ExportHistory(store, base, &out))

	for _, suffix := range []string{".selection_runs.parquet", ".selections.parquet"} {
		info, err := os.Stat(base + suffix)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
	assert.Contains(t, out.String(), "Exported 1 selection runs")
	assert.Contains(t, out.String(), "Exported 1 selection records")
}

func TestExportHistory_Errors(t *testing.T) {
	t.Run("missing output file", func(t *testing.T) {
		err := ExportHistory(&MockHistoryStore{}, "", &bytes.Buffer{})
		assert.ErrorContains(t, err, "--output-file")
	})

	t.Run("empty history", func(t *testing.T) {
		store := &MockHistoryStore{}
		store.On("GetStatus").Return(schema.HistoryStatus{Backend: "sqlite", Connected: true}, nil)

		err := ExportHistory(store, filepath.Join(t.TempDir(), "out"), &bytes.Buffer{})
		assert.ErrorContains(t, err, "no selection history")
		store.AssertExpectations(t)
	})

	t.Run("runs query fails", func(t *testing.T) {
		store := &MockHistoryStore{}
		store.On("GetStatus").Return(schema.HistoryStatus{Backend: "sqlite", TotalRuns: 1}, nil)
		store.On("GetAllRuns").Return(nil, assert.AnError)

		err := ExportHistory(store, filepath.Join(t.TempDir(), "out"), &bytes.Buffer{})
		assert.ErrorIs(t, err, assert.AnError)
		store.AssertNotCalled(t, "GetAllSelections")
	})

	t.Run("tracking disabled", func(t *testing.T) {
		resetManager(t)
		err := ExecuteHistoryExport("out", &bytes.Buffer{})
		assert.ErrorContains(t, err, "disabled")
	})
}

func TestPrintHistoryStatus(t *testing.T) {
	var out bytes.Buffer
	PrintHistoryStatus(&out, schema.HistoryStatus{
		Backend:       "sqlite",
		Connected:     true,
		TotalRuns:     2,
		LastRunID:     2,
		LastRunTime:   time.Now(),
		OldestRunTime: time.Now().Add(-time.Hour),
		TotalInputs:   7,
		TableSizes:    map[string]int64{selectionsTable: 12345, selectionRunsTable: 2},
	})

	s := out.String()
	assert.Contains(t, s, "History Backend: sqlite")
	assert.Contains(t, s, "Total Runs: 2")
	assert.Contains(t, s, "Total Inputs Selected: 7")
	assert.Contains(t, s, selectionsTable+": 12,345 rows")
	// Tables are sorted by name
	assert.Less(t, bytes.Index(out.Bytes(), []byte(selectionRunsTable)), bytes.Index(out.Bytes(), []byte(selectionsTable+":")))

	out.Reset()
	PrintHistoryStatus(&out, schema.HistoryStatus{Backend: "none"})
	assert.Contains(t, out.String(), "Connected: false")
	assert.NotContains(t, out.String(), "Total Runs")
}
