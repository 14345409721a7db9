package schema

import "time"

// SelectionRunRecord represents a row from the ladder_selection_runs table.
type SelectionRunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TotalInputs   int32
	ConfigParams  *string
}

// SelectionRecord represents a row from the ladder_selections table.
type SelectionRecord struct {
	RunID           int64
	InputName       string
	AnalysisTime    time.Time
	ComplexityScore float64
	MethodName      string
	MethodScore     float64
	MethodCategory  string
	DerivedMetric   float64
	Label           string
}
