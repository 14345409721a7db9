package core

import (
	"testing"

	"github.com/huangsam/ladder/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble(t *testing.T) {
	selection := schema.SelectionResult{
		Method:          schema.Method{Name: "mid", Score: 0.85, Category: "standard"},
		ComplexityScore: 0.86,
		Threshold:       0.85,
	}

	result, err := NewAssembler(false).Assemble(selection, []float64{0.9, 0.8, 0.85})
	require.NoError(t, err)
	assert.InDelta(t, 0.85*schema.GoldenRatio, result.DerivedMetric, 1e-9)
	assert.InDelta(t, 1.37534, result.DerivedMetric, 1e-5)
	assert.Equal(t, selection, result.SelectionResult)
	assert.Equal(t, []float64{0.9, 0.8, 0.85}, result.RelatedValues)
	assert.Equal(t, schema.CriticalLabel, result.Label)
	assert.Nil(t, result.Derived)
}

func TestAssembleScalingLaw(t *testing.T) {
	a := NewAssembler(false)
	cases := [][]float64{
		{0},
		{1},
		{0.1, 0.2},
		{-1, 3, 7.5},
		{1e6, 1e-6},
	}
	for _, values := range cases {
		mean, err := Mean(values)
		require.NoError(t, err)
		result, err := a.Assemble(schema.SelectionResult{}, values)
		require.NoError(t, err)
		assert.InDelta(t, mean*schema.GoldenRatio, result.DerivedMetric, 1e-9, "%v", values)
	}
}

func TestAssembleEmpty(t *testing.T) {
	_, err := NewAssembler(false).Assemble(schema.SelectionResult{}, nil)
	assert.ErrorIs(t, err, schema.ErrInvalidArgument)

	_, err = NewAssembler(false).Assemble(schema.SelectionResult{}, []float64{})
	assert.ErrorIs(t, err, schema.ErrInvalidArgument)
}

func TestAssembleClamp(t *testing.T) {
	result, err := NewAssembler(true).Assemble(schema.SelectionResult{}, []float64{0.9, 0.8})
	require.NoError(t, err)
	assert.Equal(t, 1.0, result.DerivedMetric)

	unclamped, err := NewAssembler(false).Assemble(schema.SelectionResult{}, []float64{0.9, 0.8})
	require.NoError(t, err)
	assert.Greater(t, unclamped.DerivedMetric, 1.0)
}

func TestAssembleGroups(t *testing.T) {
	result, err := NewAssembler(false).AssembleGroups(
		schema.SelectionResult{ComplexityScore: 0.3},
		[]float64{0.5},
		map[string][]float64{"quality": {0.2, 0.4}, "cost": {1}},
	)
	require.NoError(t, err)
	assert.InDelta(t, 0.3*schema.GoldenRatio, result.Derived["quality"], 1e-9)
	assert.InDelta(t, schema.GoldenRatio, result.Derived["cost"], 1e-9)
	assert.Equal(t, schema.LowLabel, result.Label)

	_, err = NewAssembler(false).AssembleGroups(schema.SelectionResult{}, []float64{0.5}, map[string][]float64{"empty": nil})
	assert.ErrorIs(t, err, schema.ErrInvalidArgument)
}

func TestMean(t *testing.T) {
	m, err := Mean([]float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 2.5, m)

	_, err = Mean(nil)
	assert.ErrorIs(t, err, schema.ErrInvalidArgument)
}
