package core

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/huangsam/ladder/schema"
)

// Tunable maxima used to normalize the built-in factors.
const (
	MaxKeys          = 16.0  // top-level keys beyond this saturate
	MaxDepth         = 8.0   // nesting depth beyond this saturates
	NumericReference = 100.0 // mean numeric value that maps to 1.0
)

// fieldPrefix introduces a per-key ratio factor, e.g. "field:size/500".
const fieldPrefix = "field:"

// FactorFunc maps an input to a value in [0,1]. It must not mutate the input.
type FactorFunc func(input schema.ComplexityInput) float64

// Factor is a named FactorFunc.
type Factor struct {
	Name string
	Fn   FactorFunc
}

// BuiltinFactors holds the named factors that can be referenced from config.
var BuiltinFactors = map[string]FactorFunc{
	"keys":    keysFactor,
	"depth":   depthFactor,
	"numeric": numericFactor,
	"fill":    fillFactor,
}

// BuiltinFactorNames returns the names of all built-in factors in lexical order.
func BuiltinFactorNames() []string {
	names := make([]string, 0, len(BuiltinFactors))
	for name := range BuiltinFactors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ParseFactors resolves factor names into factors. Besides the built-ins it accepts
// "field:<key>" and "field:<key>/<reference>".
func ParseFactors(names []string) ([]Factor, error) {
	factors := make([]Factor, 0, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if fn, ok := BuiltinFactors[strings.ToLower(name)]; ok {
			factors = append(factors, Factor{Name: strings.ToLower(name), Fn: fn})
			continue
		}
		if strings.HasPrefix(name, fieldPrefix) {
			f, err := parseFieldFactor(name)
			if err != nil {
				return nil, err
			}
			factors = append(factors, f)
			continue
		}
		return nil, fmt.Errorf("unknown factor %q (expected one of %s or field:<key>[/<ref>]): %w",
			name, strings.Join(BuiltinFactorNames(), ", "), schema.ErrInvalidArgument)
	}
	return factors, nil
}

// parseFieldFactor builds a ratio factor from "field:<key>[/<ref>]".
func parseFieldFactor(name string) (Factor, error) {
	expr := strings.TrimPrefix(name, fieldPrefix)
	key, refStr, hasRef := strings.Cut(expr, "/")
	key = strings.TrimSpace(key)
	if key == "" {
		return Factor{}, fmt.Errorf("factor %q has no key: %w", name, schema.ErrInvalidArgument)
	}
	ref := 1.0
	if hasRef {
		v, err := strconv.ParseFloat(strings.TrimSpace(refStr), 64)
		if err != nil || v <= 0 || math.IsInf(v, 0) {
			return Factor{}, fmt.Errorf("factor %q needs a positive reference: %w", name, schema.ErrInvalidArgument)
		}
		ref = v
	}
	return Factor{
		Name: name,
		Fn: func(input schema.ComplexityInput) float64 {
			v, ok := toFloat(input[key])
			if !ok {
				return 0
			}
			return clamp01(v / ref)
		},
	}, nil
}

func keysFactor(input schema.ComplexityInput) float64 {
	return clamp01(float64(len(input)) / MaxKeys)
}

func depthFactor(input schema.ComplexityInput) float64 {
	return clamp01(float64(depthOf(map[string]any(input))) / MaxDepth)
}

func numericFactor(input schema.ComplexityInput) float64 {
	var sum float64
	var n int
	for _, v := range input {
		if f, ok := toFloat(v); ok {
			sum += f
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return clamp01((sum / float64(n)) / NumericReference)
}

func fillFactor(input schema.ComplexityInput) float64 {
	if len(input) == 0 {
		return 0
	}
	filled := 0
	for _, v := range input {
		if !isEmptyValue(v) {
			filled++
		}
	}
	return float64(filled) / float64(len(input))
}

// depthOf returns the nesting depth of v. Scalars have depth 0 and each
// map or slice level adds one.
func depthOf(v any) int {
	deepest := 0
	switch t := v.(type) {
	case map[string]any:
		for _, child := range t {
			deepest = max(deepest, depthOf(child))
		}
	case schema.ComplexityInput:
		for _, child := range t {
			deepest = max(deepest, depthOf(child))
		}
	case map[any]any:
		for _, child := range t {
			deepest = max(deepest, depthOf(child))
		}
	case []any:
		for _, child := range t {
			deepest = max(deepest, depthOf(child))
		}
	default:
		return 0
	}
	return deepest + 1
}

// isEmptyValue reports whether v carries no information.
func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case map[string]any:
		return len(t) == 0
	case map[any]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	default:
		return false
	}
}

// toFloat converts the numeric types produced by JSON and YAML decoders.
func toFloat(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int8:
		f = float64(t)
	case int16:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint:
		f = float64(t)
	case uint8:
		f = float64(t)
	case uint16:
		f = float64(t)
	case uint32:
		f = float64(t)
	case uint64:
		f = float64(t)
	default:
		return 0, false
	}
	if math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// clamp01 limits v to [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
