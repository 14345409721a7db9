package contract

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/huangsam/ladder/schema"
	"gopkg.in/yaml.v3"
)

// StdinInput is the input path that reads from standard input.
const StdinInput = "-"

// NamedInput pairs a decoded input with where it came from.
type NamedInput struct {
	Name  string
	Input schema.ComplexityInput
}

// DecodeInput parses a YAML or JSON mapping into a ComplexityInput.
// JSON is valid YAML, so one decoder handles both.
func DecodeInput(data []byte) (schema.ComplexityInput, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("input is empty: %w", schema.ErrInvalidArgument)
	}
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}
	m, ok := normalize(raw).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("input must be a mapping at the top level: %w", schema.ErrInvalidArgument)
	}
	return schema.ComplexityInput(m), nil
}

// LoadInput reads and decodes one input. StdinInput reads from r.
func LoadInput(path string, r io.Reader) (NamedInput, error) {
	var (
		data []byte
		err  error
	)
	if path == StdinInput {
		data, err = io.ReadAll(r)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return NamedInput{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	in, err := DecodeInput(data)
	if err != nil {
		return NamedInput{}, fmt.Errorf("%s: %w", path, err)
	}
	name := path
	if path == StdinInput {
		name = "stdin"
	}
	return NamedInput{Name: name, Input: in}, nil
}

// CollectInputPaths expands directories into the input files below them.
// Files given explicitly are kept as-is. Files found by walking must have one
// of DefaultInputExtensions and their path relative to the directory must not
// match excludes.
func CollectInputPaths(paths []string, excludes []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		if p == StdinInput {
			out = append(out, p)
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}
		var found []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(path))
			if !slices.Contains(DefaultInputExtensions, ext) {
				return nil
			}
			rel, relErr := filepath.Rel(p, path)
			if relErr != nil {
				rel = path
			}
			if ShouldIgnore(filepath.ToSlash(rel), excludes) {
				return nil
			}
			found = append(found, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", p, err)
		}
		slices.Sort(found)
		out = append(out, found...)
	}
	return out, nil
}

// normalize converts YAML-specific container types into plain Go values.
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, inner := range val {
			val[k] = normalize(inner)
		}
		return val
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[fmt.Sprint(k)] = normalize(inner)
		}
		return out
	case []any:
		for i, inner := range val {
			val[i] = normalize(inner)
		}
		return val
	default:
		return v
	}
}
