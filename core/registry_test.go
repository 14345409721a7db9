package core

import (
	"math"
	"testing"

	"github.com/huangsam/ladder/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterAndGet(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("mid", 0.85, "standard"))

	m, err := reg.Get("mid")
	require.NoError(t, err)
	assert.Equal(t, schema.Method{Name: "mid", Score: 0.85, Category: "standard"}, m)
	assert.True(t, reg.Has("mid"))
	assert.Equal(t, 1, reg.Len())
}

func TestRegistryGetMissing(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Get("nonexistent")
	assert.ErrorIs(t, err, schema.ErrNotFound)
	assert.False(t, reg.Has("nonexistent"))
}

func TestRegistryOverwrite(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("alpha", 0.5, "first"))
	require.NoError(t, reg.Register("alpha", 0.9, "second"))

	assert.Equal(t, 1, reg.Len())
	m, err := reg.Get("alpha")
	require.NoError(t, err)
	assert.Equal(t, 0.9, m.Score)
	assert.Equal(t, "second", m.Category)
}

func TestRegistryRegisterInvalid(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		score   float64
		wantErr error
	}{
		{"empty name", "", 0.5, schema.ErrInvalidArgument},
		{"blank name", "   ", 0.5, schema.ErrInvalidArgument},
		{"zero score", "a", 0, schema.ErrInvalidScore},
		{"negative score", "a", -0.1, schema.ErrInvalidScore},
		{"score above one", "a", 1.01, schema.ErrInvalidScore},
		{"NaN score", "a", math.NaN(), schema.ErrInvalidScore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry()
			err := reg.Register(tt.method, tt.score, "")
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, reg.Len())
		})
	}
}

func TestRegistryBoundaryScore(t *testing.T) {
	reg := NewRegistry()
	assert.NoError(t, reg.Register("perfect", 1.0, ""))
}

func TestRegistryTrimsName(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("  spaced ", 0.5, ""))
	assert.True(t, reg.Has("spaced"))
}

func TestRegistryNamesAndMethods(t *testing.T) {
	reg, err := NewRegistryFrom(schema.DefaultMethods())
	require.NoError(t, err)

	assert.Equal(t, []string{"high", "low", "mid", "top"}, reg.Names())

	methods := reg.Methods()
	require.Len(t, methods, 4)
	assert.Equal(t, "top", methods[0].Name)
	assert.Equal(t, "low", methods[3].Name)
}

func TestRegistryMethodsAreCopies(t *testing.T) {
	reg, err := NewRegistryFrom(schema.DefaultMethods())
	require.NoError(t, err)

	methods := reg.Methods()
	methods[0].Score = 0.01

	m, err := reg.Get(methods[0].Name)
	require.NoError(t, err)
	assert.NotEqual(t, 0.01, m.Score)
}

func TestNewRegistryFromInvalid(t *testing.T) {
	_, err := NewRegistryFrom([]schema.Method{{Name: "ok", Score: 0.5}, {Name: "bad", Score: 2}})
	assert.ErrorIs(t, err, schema.ErrInvalidScore)
}
