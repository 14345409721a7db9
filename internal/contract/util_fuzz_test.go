package contract

import (
	"strings"
	"testing"
)

// FuzzShouldIgnore fuzzes the ShouldIgnore function with random paths and exclude patterns.
func FuzzShouldIgnore(f *testing.F) {
	seeds := []struct {
		path     string
		excludes string // comma-separated
	}{
		{"inputs/one.yaml", "*.json"},
		{"fixtures/deep/two.json", "fixtures/"},
		{"request.draft.yaml", "*.draft.yaml"},
		{"config.json", ".json"},
		{"", ""},
		{"very/long/path/to/input.yml", "**/tmp/**"},
		{"[bad", "[bad"},
	}
	for _, seed := range seeds {
		f.Add(seed.path, seed.excludes)
	}

	f.Fuzz(func(_ *testing.T, path string, excludesStr string) {
		var excludes []string
		for ex := range strings.SplitSeq(excludesStr, ",") {
			if trimmed := strings.TrimSpace(ex); trimmed != "" {
				excludes = append(excludes, trimmed)
			}
		}
		_ = ShouldIgnore(path, excludes)
	})
}

// FuzzDecodeInput checks the decoder never panics and only yields mappings.
func FuzzDecodeInput(f *testing.F) {
	f.Add([]byte(`{"a": 1, "b": [1, 2]}`))
	f.Add([]byte("a: 1\nb:\n  c: true\n"))
	f.Add([]byte("- 1\n- 2\n"))
	f.Add([]byte("1: one\n"))
	f.Add([]byte(""))

	f.Fuzz(func(t *testing.T, data []byte) {
		in, err := DecodeInput(data)
		if err == nil && in == nil {
			t.Fatalf("nil input without error for %q", data)
		}
	})
}
