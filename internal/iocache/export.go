package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/ladder/internal/contract"
	"github.com/huangsam/ladder/internal/parquet"
)

// ExecuteHistoryExport exports the global history store to Parquet files.
func ExecuteHistoryExport(outputFile string, w io.Writer) error {
	store := Manager.GetHistoryStore()
	if store == nil {
		return errors.New("history tracking is disabled; set --history-backend to export")
	}
	return ExportHistory(store, outputFile, w)
}

// ExportHistory writes <outputFile>.selection_runs.parquet and
// <outputFile>.selections.parquet from the given store.
func ExportHistory(store contract.HistoryStore, outputFile string, w io.Writer) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no selection history found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total selection runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total selection records: %d\n", status.TableSizes[selectionsTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve selection runs: %w", err)
	}
	selections, err := store.GetAllSelections()
	if err != nil {
		return fmt.Errorf("failed to retrieve selections: %w", err)
	}

	runsFile := outputFile + ".selection_runs.parquet"
	if err := parquet.WriteSelectionRunsParquet(parquet.ConvertSelectionRunRecords(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write selection runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d selection runs to: %s\n", len(runs), runsFile)

	selectionsFile := outputFile + ".selections.parquet"
	if err := parquet.WriteSelectionsParquet(parquet.ConvertSelectionRecords(selections), selectionsFile); err != nil {
		return fmt.Errorf("failed to write selections: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d selection records to: %s\n", len(selections), selectionsFile)

	return nil
}
