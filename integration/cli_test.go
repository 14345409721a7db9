//go:build basic

// Package integration contains integration tests for ladder.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type selectionRow struct {
	Rank            int     `json:"rank"`
	InputName       string  `json:"input_name"`
	ComplexityScore float64 `json:"complexity_score"`
	MethodName      string  `json:"method_name"`
	IsDefault       bool    `json:"is_default"`
}

// TestSelectAgainstLadder runs ladder select and checks every choice against the built-in ladder.
func TestSelectAgainstLadder(t *testing.T) {
	dir := writeInputs(t, map[string]float64{
		"critical": 0.99,
		"edge":     0.95,
		"high":     0.91,
		"mid":      0.85,
		"low":      0.3,
	})

	out, err := runLadder(t, nil, "select", "--factors", "field:complexity", "--output", "json", dir)
	require.NoError(t, err)

	var rows []selectionRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 5)

	expected := map[string]string{
		"critical": "top",
		"edge":     "top",
		"high":     "high",
		"mid":      "mid",
		"low":      "low",
	}
	for i, row := range rows {
		name := strings.TrimSuffix(filepath.Base(row.InputName), ".json")
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, expected[name], row.MethodName)
			assert.Equal(t, i+1, row.Rank)
			assert.Equal(t, name == "low", row.IsDefault)
		})
	}
	assert.Equal(t, "critical", strings.TrimSuffix(filepath.Base(rows[0].InputName), ".json"))
}

// TestSelectFromStdin pipes one input into ladder select.
func TestSelectFromStdin(t *testing.T) {
	inputFile := filepath.Join(t.TempDir(), "in.yaml")
	require.NoError(t, os.WriteFile(inputFile, []byte("complexity: 0.92\n"), 0o600))

	f, err := os.Open(inputFile)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	cmd := exec.Command(getLadderBinary(), "select", "--factors", "field:complexity", "--output", "csv", "-")
	cmd.Stdin = f
	out, err := cmd.Output()
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "1,stdin,"))
	assert.Contains(t, lines[1], ",high,")
}

// TestMethodsWithConfigFile validates a custom catalogue from a config file.
func TestMethodsWithConfigFile(t *testing.T) {
	config := filepath.Join(t.TempDir(), "ladder.yaml")
	require.NoError(t, os.WriteFile(config, []byte(`
methods:
  - name: exhaustive
    score: 0.9
    category: slow
  - name: greedy
    score: 0.6
ladder:
  - threshold: 0.5
    method: exhaustive
default-method: greedy
`), 0o600))

	out, err := runLadder(t, nil, "methods", "--config", config, "--output", "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "1,exhaustive,"))
	assert.True(t, strings.HasSuffix(lines[2], ",true"))

	// A ladder that rewards simpler inputs with a better method is rejected
	require.NoError(t, os.WriteFile(config, []byte(`
methods:
  - name: a
    score: 0.5
  - name: b
    score: 0.9
ladder:
  - threshold: 0.8
    method: a
  - threshold: 0.4
    method: b
default-method: a
`), 0o600))
	_, err = runLadder(t, nil, "methods", "--config", config)
	assert.Error(t, err)
}

// TestSQLiteHistoryRoundTrip tracks a run in SQLite and exports it.
func TestSQLiteHistoryRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	env := []string{"LADDER_HISTORY_BACKEND=sqlite", "LADDER_HISTORY_DB_CONNECT=" + dbPath}
	dir := writeInputs(t, map[string]float64{"a": 0.97, "b": 0.2})

	_, err := runLadder(t, env, "history", "migrate")
	require.NoError(t, err)

	_, err = runLadder(t, env, "select", "--factors", "field:complexity", dir)
	require.NoError(t, err)

	status, err := runLadder(t, env, "history", "status")
	require.NoError(t, err)
	assert.Contains(t, status, "Total Runs: 1")
	assert.Contains(t, status, "Total Inputs Selected: 2")

	exportBase := filepath.Join(t.TempDir(), "export")
	_, err = runLadder(t, env, "history", "export", "--output-file", exportBase)
	require.NoError(t, err)
	for _, suffix := range []string{".selection_runs.parquet", ".selections.parquet"} {
		_, err := os.Stat(exportBase + suffix)
		assert.NoError(t, err)
	}

	_, err = runLadder(t, env, "history", "clear")
	require.NoError(t, err)
	_, err = os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err))
}
