// Package main provides a performance benchmarking tool for the Ladder CLI.
// It generates synthetic input sets of increasing size, times 'ladder select'
// with history tracking disabled and with SQLite, and writes a CSV summary.
//
// Prerequisites:
// - ladder binary installed and available in PATH
//
// Usage: go run benchmark/main.go [runs-per-case]
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the average run time per history backend for one input set.
type BenchmarkResult struct {
	Inputs     int
	Factors    string
	NoneTime   string
	SQLiteCold string
	SQLiteWarm string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	Timeout    time.Duration
	Runs       int
	InputSizes []int
	FactorSets []string
}

func main() {
	runs := 4
	if len(os.Args) == 2 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil || n < 2 {
			fmt.Printf("Usage: %s [runs-per-case >= 2]\n", os.Args[0])
			os.Exit(1)
		}
		runs = n
	}

	config := BenchmarkConfig{
		Timeout:    2 * time.Minute,
		Runs:       runs,
		InputSizes: []int{10, 100, 1000, 5000},
		FactorSets: []string{"keys,depth,numeric,fill", "field:complexity"},
	}

	if _, err := exec.LookPath("ladder"); err != nil {
		fmt.Println("Prerequisites check failed: ladder binary not found in PATH")
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// runBenchmarks executes every factor set against every input size.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: sizes %v, %v timeout, %d runs per case\n",
		config.InputSizes, config.Timeout, config.Runs)

	for _, size := range config.InputSizes {
		dir, err := generateInputs(size)
		if err != nil {
			fmt.Printf("Failed to generate %d inputs: %v\n", size, err)
			os.Exit(1)
		}

		for _, factors := range config.FactorSets {
			fmt.Printf("Benchmarking %d inputs with factors %s\n", size, factors)
			results = append(results, runBenchmarkSuite(config, dir, size, factors))
		}
		_ = os.RemoveAll(dir)
	}

	return results
}

// runBenchmarkSuite times one input set without history and with SQLite history.
func runBenchmarkSuite(config BenchmarkConfig, dir string, size int, factors string) BenchmarkResult {
	dbPath := filepath.Join(dir, "history.db")

	noneCold, noneWarm := runBenchmark(config, dir, factors, "none", "", config.Runs)
	cold, warm := runBenchmark(config, dir, factors, "sqlite", dbPath, config.Runs)

	// Without history there is no cold start, so every run counts
	var noneAll []float64
	if noneCold > 0 {
		noneAll = append([]float64{noneCold}, noneWarm...)
	}

	coldStr := "TIMEOUT"
	if cold > 0 {
		coldStr = fmt.Sprintf("%.3fs", cold)
	}
	result := BenchmarkResult{
		Inputs:     size,
		Factors:    factors,
		NoneTime:   average(noneAll),
		SQLiteCold: coldStr,
		SQLiteWarm: average(warm),
	}
	fmt.Printf("  None average: %s, SQLite cold: %s, SQLite warm average: %s\n",
		result.NoneTime, result.SQLiteCold, result.SQLiteWarm)
	return result
}

// runBenchmark runs ladder select numRuns times and returns the first and remaining durations.
func runBenchmark(config BenchmarkConfig, dir, factors, backend, dbPath string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{"select", "--factors", factors, "--history-backend", backend, "--limit", "10", dir}
	if dbPath != "" {
		args = append(args, "--history-db-connect", dbPath)
	}

	var times []float64
	for range numRuns {
		start := time.Now()

		cmd := exec.Command("ladder", args...)
		done := make(chan bool, 1)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && strings.Contains(string(output), "Selection completed in") {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return coldTime, warmTimes
}

// generateInputs writes n random nested JSON inputs into a fresh temp directory.
func generateInputs(n int) (string, error) {
	dir, err := os.MkdirTemp("", "ladder-bench-*")
	if err != nil {
		return "", err
	}
	for i := range n {
		input := map[string]any{
			"complexity": rand.Float64(),
			"name":       fmt.Sprintf("job-%d", i),
		}
		for k := range rand.IntN(12) {
			if rand.IntN(3) == 0 {
				input[fmt.Sprintf("nested%d", k)] = map[string]any{"value": rand.Float64(), "tags": []any{"a", "b"}}
			} else {
				input[fmt.Sprintf("field%d", k)] = rand.IntN(100)
			}
		}
		data, err := json.Marshal(input)
		if err != nil {
			return "", err
		}
		if err := os.WriteFile(filepath.Join(dir, fmt.Sprintf("input_%05d.json", i)), data, 0o600); err != nil {
			return "", err
		}
	}
	return dir, nil
}

func average(times []float64) string {
	if len(times) == 0 {
		return "TIMEOUT"
	}
	var sum float64
	for _, t := range times {
		sum += t
	}
	return fmt.Sprintf("%.3fs", sum/float64(len(times)))
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/ladder_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"inputs", "factors", "none_avg", "sqlite_cold", "sqlite_warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range results {
		if err := writer.Write([]string{strconv.Itoa(r.Inputs), r.Factors, r.NoneTime, r.SQLiteCold, r.SQLiteWarm}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, r := range results {
		fmt.Printf("  %5d inputs %-24s: None: %s, SQLite cold: %s, SQLite warm: %s\n",
			r.Inputs, r.Factors, r.NoneTime, r.SQLiteCold, r.SQLiteWarm)
	}
}
