package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/ladder/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInput(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		in, err := DecodeInput([]byte(`{"size": 12, "tags": ["a", "b"], "nested": {"ok": true}}`))
		require.NoError(t, err)
		assert.Equal(t, 12, in["size"])
		assert.Equal(t, []any{"a", "b"}, in["tags"])
		assert.Equal(t, map[string]any{"ok": true}, in["nested"])
	})

	t.Run("yaml with non-string keys", func(t *testing.T) {
		in, err := DecodeInput([]byte("outer:\n  1: one\n  2: two\n"))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"1": "one", "2": "two"}, in["outer"])
	})

	t.Run("empty", func(t *testing.T) {
		_, err := DecodeInput([]byte("  \n"))
		assert.ErrorIs(t, err, schema.ErrInvalidArgument)
	})

	t.Run("top-level list", func(t *testing.T) {
		_, err := DecodeInput([]byte("- 1\n- 2\n"))
		assert.ErrorIs(t, err, schema.ErrInvalidArgument)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := DecodeInput([]byte("{unclosed"))
		assert.Error(t, err)
	})
}

func TestLoadInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "one.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: 1\n"), 0o600))

	in, err := LoadInput(path, nil)
	require.NoError(t, err)
	assert.Equal(t, path, in.Name)
	assert.Equal(t, 1, in.Input["a"])

	in, err = LoadInput(StdinInput, strings.NewReader(`{"b": 2}`))
	require.NoError(t, err)
	assert.Equal(t, "stdin", in.Name)
	assert.Equal(t, 2, in.Input["b"])

	_, err = LoadInput(filepath.Join(dir, "missing.json"), nil)
	assert.Error(t, err)
}

func TestCollectInputPaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.json", "a.yaml", "notes.txt", "skip/c.yml", "keep/d.YML"} {
		full := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("{}"), 0o600))
	}
	explicit := filepath.Join(dir, "notes.txt")

	paths, err := CollectInputPaths([]string{dir, explicit, StdinInput}, []string{"skip/"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.yaml"),
		filepath.Join(dir, "b.json"),
		filepath.Join(dir, "keep/d.YML"),
		explicit,
		StdinInput,
	}, paths)

	_, err = CollectInputPaths([]string{filepath.Join(dir, "nope")}, nil)
	assert.Error(t, err)
}
