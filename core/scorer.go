package core

import (
	"fmt"
	"math"

	"github.com/huangsam/ladder/schema"
)

// Scorer reduces a heterogeneous input into a single complexity estimate.
// It holds no state and is safe to reuse across calls.
type Scorer struct{}

// NewScorer creates a new Scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score returns the arithmetic mean of factors applied to input.
func (s *Scorer) Score(input schema.ComplexityInput, factors []Factor) (float64, error) {
	score, _, err := s.ScoreWithBreakdown(input, factors)
	return score, err
}

// ScoreWithBreakdown is Score plus the individual factor values, in factor order.
func (s *Scorer) ScoreWithBreakdown(input schema.ComplexityInput, factors []Factor) (float64, []schema.FactorValue, error) {
	if len(factors) == 0 {
		return 0, nil, fmt.Errorf("at least one factor is required: %w", schema.ErrInvalidArgument)
	}

	breakdown := make([]schema.FactorValue, 0, len(factors))
	var sum float64
	for _, f := range factors {
		if f.Fn == nil {
			return 0, nil, fmt.Errorf("factor %q has no function: %w", f.Name, schema.ErrInvalidArgument)
		}
		v := f.Fn(input)
		if math.IsNaN(v) || v < 0 || v > 1 {
			return 0, nil, fmt.Errorf("factor %q returned %v: %w", f.Name, v, schema.ErrFactorOutOfRange)
		}
		breakdown = append(breakdown, schema.FactorValue{Name: f.Name, Value: v})
		sum += v
	}

	return sum / float64(len(factors)), breakdown, nil
}
