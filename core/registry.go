package core

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/huangsam/ladder/core/algo"
	"github.com/huangsam/ladder/schema"
)

// Registry holds a small catalogue of named methods with static scores.
// It is created and owned by the caller; there is no package-level instance.
type Registry struct {
	methods map[string]schema.Method
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{methods: make(map[string]schema.Method)}
}

// NewRegistryFrom creates a registry populated with the given methods in order,
// so a later duplicate name overwrites an earlier one.
func NewRegistryFrom(methods []schema.Method) (*Registry, error) {
	reg := NewRegistry()
	for _, m := range methods {
		if err := reg.Register(m.Name, m.Score, m.Category); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Register inserts or overwrites the entry for name. Last write wins.
func (r *Registry) Register(name string, score float64, category string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("method name cannot be empty: %w", schema.ErrInvalidArgument)
	}
	if math.IsNaN(score) || score <= 0 || score > 1 {
		return fmt.Errorf("method %q has score %v: %w", name, score, schema.ErrInvalidScore)
	}
	r.methods[name] = schema.Method{Name: name, Score: score, Category: category}
	return nil
}

// Get returns the method registered under name.
func (r *Registry) Get(name string) (schema.Method, error) {
	m, ok := r.methods[name]
	if !ok {
		return schema.Method{}, fmt.Errorf("%q: %w", name, schema.ErrNotFound)
	}
	return m, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.methods[name]
	return ok
}

// Len returns the number of registered methods.
func (r *Registry) Len() int {
	return len(r.methods)
}

// Names returns all registered names in lexical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.methods))
	for name := range r.methods {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Methods returns all registered methods ranked by score, highest first.
func (r *Registry) Methods() []schema.Method {
	out := make([]schema.Method, 0, len(r.methods))
	for _, m := range r.methods {
		out = append(out, m)
	}
	return algo.RankMethods(out, len(out))
}
