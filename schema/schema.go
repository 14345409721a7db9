// Package schema has models, constants and sentinel errors for all parts of ladder.
package schema

// Method is a named strategy with a static effectiveness score.
// Once registered, a Method value is never mutated; re-registering a name
// replaces the entry as a whole.
type Method struct {
	Name     string  `json:"name"`     // Unique identifier within a registry
	Score    float64 `json:"score"`    // Claimed effectiveness in (0,1]
	Category string  `json:"category"` // Free-text classification tag
}

// Bracket binds a threshold to a registered method name.
type Bracket struct {
	Threshold float64 `json:"threshold" mapstructure:"threshold"`
	Method    string  `json:"method" mapstructure:"method"`
}

// ComplexityInput is an arbitrary key/value mapping that factor functions read from.
type ComplexityInput map[string]any

// FactorValue records the output of one named factor for explain mode.
type FactorValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// SelectionResult is the output of a single selection. It is created fresh per call
// and never mutated afterwards.
type SelectionResult struct {
	Method          Method  `json:"method"`
	ComplexityScore float64 `json:"complexity_score"`
	Threshold       float64 `json:"threshold"`  // Matched threshold (zero when Default is true)
	Default         bool    `json:"is_default"` // True when no bracket matched
}

// EnrichedResult is a SelectionResult plus derived metrics for presentation.
type EnrichedResult struct {
	SelectionResult
	DerivedMetric float64            `json:"derived_metric"`       // mean(related) * GoldenRatio
	Derived       map[string]float64 `json:"derived,omitempty"`    // Named groups, each mean(group) * GoldenRatio
	RelatedValues []float64          `json:"related_values"`       // Inputs to DerivedMetric
	Label         string             `json:"label"`                // Criticality label of the complexity score
	Breakdown     []FactorValue      `json:"breakdown,omitempty"`  // Per-factor values when explained
	InputName     string             `json:"input_name,omitempty"` // Source of the ComplexityInput
}
