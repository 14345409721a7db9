// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/ladder/schema"
)

// StoreManager defines the interface for reaching the history store.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetHistoryStore() HistoryStore
}

// HistoryStore defines the interface for tracking selection runs and their results.
type HistoryStore interface {
	// BeginRun creates a new selection run and returns its unique ID.
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the selection run with completion data.
	EndRun(runID int64, endTime time.Time, totalInputs int) error

	// RecordSelection stores one enriched result for a run.
	RecordSelection(runID int64, analysisTime time.Time, result schema.EnrichedResult) error

	// GetStatus returns status information about the history store.
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns retrieves every recorded run ordered by ID.
	GetAllRuns() ([]schema.SelectionRunRecord, error)

	// GetAllSelections retrieves every recorded selection ordered by run and input.
	GetAllSelections() ([]schema.SelectionRecord, error)

	// Close closes the underlying connection.
	Close() error
}
