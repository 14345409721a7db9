package schema_test

import (
	"testing"

	"github.com/huangsam/ladder/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		expected string
	}{
		{"Critical Score Upper", 1.0, "Critical"},
		{"Critical Score Lower", 0.8, "Critical"},
		{"High Score Upper", 0.79, "High"},
		{"High Score Lower", 0.6, "High"},
		{"Moderate Score Upper", 0.59, "Moderate"},
		{"Moderate Score Lower", 0.4, "Moderate"},
		{"Low Score Upper", 0.39, "Low"},
		{"Low Score Lower", 0.0, "Low"},
		{"Negative Score", -1.0, "Low"},        // Edge case
		{"Above Range Score", 1.5, "Critical"}, // Edge case
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := schema.GetPlainLabel(tt.score)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestEnrichMethods(t *testing.T) {
	methods := schema.DefaultMethods()
	enriched := schema.EnrichMethods(methods, schema.DefaultLadder(), schema.DefaultMethodName)
	require.Len(t, enriched, len(methods))

	for i, rm := range enriched {
		assert.Equal(t, i+1, rm.Rank)
		assert.Equal(t, methods[i].Name, rm.Name)
	}

	// top is bound to 0.95
	require.NotNil(t, enriched[0].Threshold)
	assert.InDelta(t, 0.95, *enriched[0].Threshold, 1e-12)
	assert.False(t, enriched[0].IsDefault)

	// low is the catch-all and has no bracket
	last := enriched[len(enriched)-1]
	assert.Equal(t, "low", last.Name)
	assert.Nil(t, last.Threshold)
	assert.True(t, last.IsDefault)
}

func TestEnrichMethods_Empty(t *testing.T) {
	enriched := schema.EnrichMethods(nil, nil, "")
	assert.Empty(t, enriched)
}
