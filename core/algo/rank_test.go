package algo

import (
	"testing"

	"github.com/huangsam/ladder/schema"
	"github.com/stretchr/testify/assert"
)

func TestRankMethods(t *testing.T) {
	methods := []schema.Method{
		{Name: "b", Score: 0.5},
		{Name: "a", Score: 0.9},
		{Name: "c", Score: 0.5},
		{Name: "d", Score: 0.7},
	}

	ranked := RankMethods(methods, 10)
	names := make([]string, len(ranked))
	for i, m := range ranked {
		names[i] = m.Name
	}
	assert.Equal(t, []string{"a", "d", "b", "c"}, names)

	assert.Len(t, RankMethods(methods, 2), 2)
	assert.Empty(t, RankMethods(methods, 0))
	assert.Empty(t, RankMethods(nil, 5))
}

func TestRankSelections(t *testing.T) {
	results := []schema.EnrichedResult{
		{SelectionResult: schema.SelectionResult{ComplexityScore: 0.2}, InputName: "low"},
		{SelectionResult: schema.SelectionResult{ComplexityScore: 0.9}, InputName: "high"},
		{SelectionResult: schema.SelectionResult{ComplexityScore: 0.5}, InputName: "first-tie"},
		{SelectionResult: schema.SelectionResult{ComplexityScore: 0.5}, InputName: "second-tie"},
	}

	ranked := RankSelections(results, 10)
	names := make([]string, len(ranked))
	for i, r := range ranked {
		names[i] = r.InputName
	}
	assert.Equal(t, []string{"high", "first-tie", "second-tie", "low"}, names)

	top := RankSelections(results, 1)
	assert.Len(t, top, 1)
	assert.Equal(t, "high", top[0].InputName)
}
