// Package parquet provides data structures and functions for exporting selection
// history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/ladder/schema"
	"github.com/parquet-go/parquet-go"
)

// SelectionRun represents a single selection run with metadata.
// This struct maps to the ladder_selection_runs database table.
type SelectionRun struct {
	// RunID is the unique identifier for this selection run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	TotalInputs int32 `parquet:"total_inputs,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// Selection represents one input's selection within a run.
// This struct maps to the ladder_selections database table.
type Selection struct {
	RunID           int64     `parquet:"run_id,snappy"`
	InputName       string    `parquet:"input_name,snappy"`
	AnalysisTime    time.Time `parquet:"analysis_time,snappy"`
	ComplexityScore float64   `parquet:"complexity_score,snappy"`
	MethodName      string    `parquet:"method_name,snappy"`
	MethodScore     float64   `parquet:"method_score,snappy"`

	// MethodCategory is empty when the method has no category
	MethodCategory string `parquet:"method_category,snappy"`

	// DerivedMetric is mean(related values) scaled by the golden ratio
	DerivedMetric float64 `parquet:"derived_metric,snappy"`

	Label string `parquet:"label,snappy"`
}

// WriteSelectionRunsParquet writes a slice of SelectionRun structs to a Parquet file.
func WriteSelectionRunsParquet(data []SelectionRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteSelectionsParquet writes a slice of Selection structs to a Parquet file.
func WriteSelectionsParquet(data []Selection, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes rows to outputPath with a schema inferred from T's struct tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	// Close flushes the footer, so its error matters
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertSelectionRunRecords converts schema.SelectionRunRecord to SelectionRun for Parquet export.
func ConvertSelectionRunRecords(records []schema.SelectionRunRecord) []SelectionRun {
	result := make([]SelectionRun, len(records))
	for i, record := range records {
		result[i] = SelectionRun{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			TotalInputs:   record.TotalInputs,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertSelectionRecords converts schema.SelectionRecord to Selection for Parquet export.
func ConvertSelectionRecords(records []schema.SelectionRecord) []Selection {
	result := make([]Selection, len(records))
	for i, record := range records {
		result[i] = Selection{
			RunID:           record.RunID,
			InputName:       record.InputName,
			AnalysisTime:    record.AnalysisTime,
			ComplexityScore: record.ComplexityScore,
			MethodName:      record.MethodName,
			MethodScore:     record.MethodScore,
			MethodCategory:  record.MethodCategory,
			DerivedMetric:   record.DerivedMetric,
			Label:           record.Label,
		}
	}
	return result
}
