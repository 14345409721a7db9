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

func TestGetColorLabel(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		label string
	}{
		{"low", 0.3, schema.LowLabel},
		{"moderate", 0.5, schema.ModerateLabel},
		{"high", 0.7, schema.HighLabel},
		{"critical", 0.9, schema.CriticalLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetColorLabel(tt.score)
			// Should contain the plain label
			assert.Contains(t, result, tt.label)
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "selections.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestShouldIgnore(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		excludes   []string
		wantIgnore bool
	}{
		{
			name:       "empty excludes",
			path:       "inputs/request.yaml",
			excludes:   []string{},
			wantIgnore: false,
		},
		{
			name:       "prefix match",
			path:       "fixtures/big/request.json",
			excludes:   []string{"fixtures/"},
			wantIgnore: true,
		},
		{
			name:       "suffix match",
			path:       "inputs/request.draft.yaml",
			excludes:   []string{".draft.yaml"},
			wantIgnore: true,
		},
		{
			name:       "glob match basename",
			path:       "inputs/nested/old.json",
			excludes:   []string{"old.*"},
			wantIgnore: true,
		},
		{
			name:       "double star collapses",
			path:       "inputs/skip.yml",
			excludes:   []string{"**.yml"},
			wantIgnore: true,
		},
		{
			name:       "substring match",
			path:       "inputs/generated/one.json",
			excludes:   []string{"generated"},
			wantIgnore: true,
		},
		{
			name:       "no match",
			path:       "inputs/core/one.json",
			excludes:   []string{"fixtures/", "tmp/", ".yml"},
			wantIgnore: false,
		},
		{
			name:       "blank patterns skipped",
			path:       "inputs/one.json",
			excludes:   []string{"  ", ""},
			wantIgnore: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShouldIgnore(tt.path, tt.excludes)
			assert.Equal(t, tt.wantIgnore, got)
		})
	}
}

func TestGetHistoryDBFilePath(t *testing.T) {
	path := GetHistoryDBFilePath()
	assert.NotEmpty(t, path)
	assert.Contains(t, path, ".ladder_history.db")

	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, homeDir), "path %s should start with home dir %s", path, homeDir)
}

func TestTruncatePath(t *testing.T) {
	assert.Equal(t, "short.json", TruncatePath("short.json", 20))
	assert.Equal(t, "...ep/file.json", TruncatePath("some/very/deep/file.json", 15))
	assert.Equal(t, "abcdef", TruncatePath("abcdef", 3), "too narrow to truncate")
	assert.Equal(t, "...ル.json", TruncatePath("データ/ファイル.json", 10), "wide runes take two cells")
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, v, s)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, v, s)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}
