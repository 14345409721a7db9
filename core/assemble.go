package core

import (
	"fmt"
	"maps"
	"slices"

	"github.com/huangsam/ladder/schema"
)

// Assembler packages a selection with derived metrics.
type Assembler struct {
	// Clamp limits every derived metric to [0,1]. GoldenRatio scaling can push
	// a mean above 1, so this is off unless the consumer wants unit-range values.
	Clamp bool
}

// NewAssembler creates an Assembler.
func NewAssembler(clamp bool) *Assembler {
	return &Assembler{Clamp: clamp}
}

// Assemble returns an EnrichedResult whose DerivedMetric is mean(related) * GoldenRatio.
func (a *Assembler) Assemble(selection schema.SelectionResult, related []float64) (schema.EnrichedResult, error) {
	return a.AssembleGroups(selection, related, nil)
}

// AssembleGroups is Assemble plus one named derived metric per group.
// Every group must be non-empty.
func (a *Assembler) AssembleGroups(selection schema.SelectionResult, related []float64, groups map[string][]float64) (schema.EnrichedResult, error) {
	derived, err := a.derive(related)
	if err != nil {
		return schema.EnrichedResult{}, fmt.Errorf("related values: %w", err)
	}

	result := schema.EnrichedResult{
		SelectionResult: selection,
		DerivedMetric:   derived,
		RelatedValues:   slices.Clone(related),
		Label:           schema.GetPlainLabel(selection.ComplexityScore),
	}

	if len(groups) > 0 {
		result.Derived = make(map[string]float64, len(groups))
		for _, name := range slices.Sorted(maps.Keys(groups)) {
			v, err := a.derive(groups[name])
			if err != nil {
				return schema.EnrichedResult{}, fmt.Errorf("group %q: %w", name, err)
			}
			result.Derived[name] = v
		}
	}

	return result, nil
}

// derive computes mean(values) * GoldenRatio, clamped when configured.
func (a *Assembler) derive(values []float64) (float64, error) {
	m, err := Mean(values)
	if err != nil {
		return 0, err
	}
	v := m * schema.GoldenRatio
	if a.Clamp {
		v = clamp01(v)
	}
	return v, nil
}

// Mean returns the arithmetic mean of values.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("values cannot be empty: %w", schema.ErrInvalidArgument)
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}
