package core

import (
	"fmt"
	"math"
	"slices"

	"github.com/huangsam/ladder/schema"
)

// Selector maps a complexity score onto a descending threshold ladder.
// Construction validates the ladder once, so Select is a total function:
// it returns a registered method for every float64 input.
type Selector struct {
	registry    *Registry
	brackets    []schema.Bracket // strictly descending by threshold
	defaultName string
}

// NewSelector validates the ladder against the registry and returns a Selector.
//
// Every bracket method and the default must be registered, thresholds must be
// unique, and bound method scores must not increase as thresholds decrease,
// with the default scoring no higher than the lowest bracket.
func NewSelector(registry *Registry, ladder []schema.Bracket, defaultName string) (*Selector, error) {
	if registry == nil {
		return nil, fmt.Errorf("registry is required: %w", schema.ErrInvalidArgument)
	}
	def, err := registry.Get(defaultName)
	if err != nil {
		return nil, fmt.Errorf("default method: %w", err)
	}

	brackets := slices.Clone(ladder)
	slices.SortStableFunc(brackets, func(a, b schema.Bracket) int {
		switch {
		case a.Threshold > b.Threshold:
			return -1
		case a.Threshold < b.Threshold:
			return 1
		default:
			return 0
		}
	})

	prevScore := 2.0 // above any valid score
	for i, b := range brackets {
		if math.IsNaN(b.Threshold) {
			return nil, fmt.Errorf("bracket for %q has NaN threshold: %w", b.Method, schema.ErrInvalidLadder)
		}
		if i > 0 && brackets[i-1].Threshold == b.Threshold {
			return nil, fmt.Errorf("duplicate threshold %v: %w", b.Threshold, schema.ErrInvalidLadder)
		}
		m, err := registry.Get(b.Method)
		if err != nil {
			return nil, fmt.Errorf("bracket %v: %w", b.Threshold, err)
		}
		if m.Score > prevScore {
			return nil, fmt.Errorf("method %q (%.3f) at threshold %v outranks a higher bracket: %w",
				m.Name, m.Score, b.Threshold, schema.ErrInvalidLadder)
		}
		prevScore = m.Score
	}
	if def.Score > prevScore {
		return nil, fmt.Errorf("default method %q (%.3f) outranks the lowest bracket: %w",
			def.Name, def.Score, schema.ErrInvalidLadder)
	}

	return &Selector{
		registry:    registry,
		brackets:    brackets,
		defaultName: defaultName,
	}, nil
}

// Select walks the ladder in descending order and returns the method bound to
// the first bracket whose threshold is <= score. Scores matching no bracket,
// including NaN, resolve to the default method.
func (s *Selector) Select(score float64) schema.SelectionResult {
	for _, b := range s.brackets {
		if score >= b.Threshold {
			if m, err := s.registry.Get(b.Method); err == nil {
				return schema.SelectionResult{Method: m, ComplexityScore: score, Threshold: b.Threshold}
			}
		}
	}
	// Registry has no removal, so the default validated in NewSelector is still present.
	m, _ := s.registry.Get(s.defaultName)
	return schema.SelectionResult{Method: m, ComplexityScore: score, Default: true}
}

// Brackets returns a copy of the validated ladder, highest threshold first.
func (s *Selector) Brackets() []schema.Bracket {
	return slices.Clone(s.brackets)
}

// DefaultName returns the catch-all method name.
func (s *Selector) DefaultName() string {
	return s.defaultName
}
