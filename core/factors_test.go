package core

import (
	"testing"

	"github.com/huangsam/ladder/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinFactors(t *testing.T) {
	input := schema.ComplexityInput{
		"count":  50,
		"ratio":  150.0,
		"name":   "job",
		"empty":  "",
		"none":   nil,
		"nested": map[string]any{"inner": []any{1, 2}},
		"list":   []any{},
		"flag":   true,
	}

	tests := []struct {
		factor string
		want   float64
	}{
		{"keys", 8.0 / MaxKeys},
		{"depth", 3.0 / MaxDepth},
		{"numeric", (50 + 150.0) / 2 / NumericReference},
		{"fill", 5.0 / 8.0},
	}
	for _, tt := range tests {
		t.Run(tt.factor, func(t *testing.T) {
			fn := BuiltinFactors[tt.factor]
			require.NotNil(t, fn)
			assert.InDelta(t, tt.want, fn(input), 1e-12)
		})
	}
}

func TestDepthOf(t *testing.T) {
	assert.Equal(t, 0, depthOf(3))
	assert.Equal(t, 1, depthOf(map[string]any{"a": 1}))
	assert.Equal(t, 2, depthOf(map[string]any{"a": []any{1}}))
	assert.Equal(t, 3, depthOf(map[any]any{1: map[string]any{"b": []any{}}}))
}

func TestBuiltinFactorsSaturate(t *testing.T) {
	big := schema.ComplexityInput{}
	for i := range 40 {
		big[string(rune('a'+i%26))+string(rune('A'+i/26))] = 1e6
	}
	assert.Equal(t, 1.0, keysFactor(big))
	assert.Equal(t, 1.0, numericFactor(big))

	assert.Equal(t, 0.0, keysFactor(schema.ComplexityInput{}))
	assert.Equal(t, 0.0, fillFactor(schema.ComplexityInput{}))
	assert.Equal(t, 0.0, numericFactor(schema.ComplexityInput{"s": "x"}))
	assert.Equal(t, 0.0, numericFactor(schema.ComplexityInput{"neg": -20}))
}

func TestParseFactors(t *testing.T) {
	factors, err := ParseFactors([]string{"Keys", " depth ", "", "field:size/200", "field:ratio"})
	require.NoError(t, err)
	require.Len(t, factors, 4)
	assert.Equal(t, "keys", factors[0].Name)
	assert.Equal(t, "depth", factors[1].Name)
	assert.Equal(t, "field:size/200", factors[2].Name)

	input := schema.ComplexityInput{"size": 50, "ratio": 0.25}
	assert.InDelta(t, 0.25, factors[2].Fn(input), 1e-12)
	assert.InDelta(t, 0.25, factors[3].Fn(input), 1e-12)
	assert.Equal(t, 0.0, factors[2].Fn(schema.ComplexityInput{"size": "big"}))
	assert.Equal(t, 1.0, factors[2].Fn(schema.ComplexityInput{"size": 1000}))
}

func TestParseFactorsErrors(t *testing.T) {
	for _, names := range [][]string{
		{"unknown"},
		{"field:"},
		{"field:size/0"},
		{"field:size/-3"},
		{"field:size/abc"},
	} {
		_, err := ParseFactors(names)
		assert.ErrorIs(t, err, schema.ErrInvalidArgument, "%v", names)
	}
}

func TestBuiltinFactorNames(t *testing.T) {
	assert.Equal(t, []string{"depth", "fill", "keys", "numeric"}, BuiltinFactorNames())
}
