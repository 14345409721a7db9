package core

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/huangsam/ladder/internal/contract"
	"github.com/huangsam/ladder/schema"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Pipeline chains the scorer, selector and assembler for one configuration.
// It is built once per run and is safe for concurrent Evaluate calls.
type Pipeline struct {
	Registry  *Registry
	Selector  *Selector
	Scorer    *Scorer
	Assembler *Assembler
	Factors   []Factor

	related     []float64
	groups      map[string][]float64
	inputSchema *jsonschema.Schema
}

// BuildPipeline resolves the configured catalogue, ladder and factors.
func BuildPipeline(cfg *contract.Config) (*Pipeline, error) {
	registry, err := NewRegistryFrom(cfg.Methods)
	if err != nil {
		return nil, fmt.Errorf("invalid method catalogue: %w", err)
	}
	selector, err := NewSelector(registry, cfg.Ladder, cfg.DefaultMethod)
	if err != nil {
		return nil, fmt.Errorf("invalid ladder: %w", err)
	}
	factors, err := ParseFactors(cfg.Factors)
	if err != nil {
		return nil, err
	}
	if len(factors) == 0 {
		return nil, fmt.Errorf("at least one factor is required: %w", schema.ErrInvalidArgument)
	}
	var inputSchema *jsonschema.Schema
	if cfg.InputSchema != "" {
		if inputSchema, err = contract.CompileInputSchema(cfg.InputSchema); err != nil {
			return nil, err
		}
	}
	var groups map[string][]float64
	if len(cfg.Groups) > 0 {
		groups = make(map[string][]float64, len(cfg.Groups))
		for name, values := range cfg.Groups {
			groups[name] = slices.Clone(values)
		}
	}
	return &Pipeline{
		Registry:    registry,
		Selector:    selector,
		Scorer:      NewScorer(),
		Assembler:   NewAssembler(cfg.Clamp),
		Factors:     factors,
		related:     slices.Clone(cfg.Related),
		groups:      groups,
		inputSchema: inputSchema,
	}, nil
}

// Evaluate scores one input, selects a method and assembles the enriched result.
// Without configured related values, the selected method score and the
// complexity score are used.
func (p *Pipeline) Evaluate(name string, input schema.ComplexityInput) (schema.EnrichedResult, error) {
	if err := contract.ValidateInput(p.inputSchema, input); err != nil {
		return schema.EnrichedResult{}, fmt.Errorf("%s: %w", name, err)
	}
	score, breakdown, err := p.Scorer.ScoreWithBreakdown(input, p.Factors)
	if err != nil {
		return schema.EnrichedResult{}, fmt.Errorf("%s: %w", name, err)
	}
	selection := p.Selector.Select(score)

	related := p.related
	if len(related) == 0 {
		related = []float64{selection.Method.Score, score}
	}
	result, err := p.Assembler.AssembleGroups(selection, related, p.groups)
	if err != nil {
		return schema.EnrichedResult{}, fmt.Errorf("%s: %w", name, err)
	}
	result.InputName = name
	result.Breakdown = breakdown

	slog.Debug("selected method",
		"input", name,
		"score", score,
		"method", selection.Method.Name,
		"default", selection.Default,
		"derived", result.DerivedMetric)
	return result, nil
}

// GroupNames returns the configured derived group names in lexical order.
func (p *Pipeline) GroupNames() []string {
	return slices.Sorted(maps.Keys(p.groups))
}
