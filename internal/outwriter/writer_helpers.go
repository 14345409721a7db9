package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/huangsam/ladder/internal/contract"
	"github.com/huangsam/ladder/schema"
)

// writeWithFile opens the configured destination, runs writer against it and
// closes it again unless it is stdout.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		_, _ = fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON encodes data with two-space indentation.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader writes a header row followed by whatever writeRows emits.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writeRows(csvWriter); err != nil {
		return err
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// createFormatter returns a float formatter honoring the configured precision.
func createFormatter(precision int) func(float64) string {
	return func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
}

// labelFor returns the label of score, colored when enabled.
func labelFor(score float64, useColors bool) string {
	if useColors {
		return contract.GetColorLabel(score)
	}
	return schema.GetPlainLabel(score)
}

// formatBreakdown renders factor values as "keys=0.50 depth=0.25".
func formatBreakdown(breakdown []schema.FactorValue, fmtFloat func(float64) string) string {
	parts := make([]string, 0, len(breakdown))
	for _, fv := range breakdown {
		parts = append(parts, fv.Name+"="+fmtFloat(fv.Value))
	}
	return strings.Join(parts, " ")
}

// formatFloats joins values with '|' for CSV cells.
func formatFloats(values []float64, fmtFloat func(float64) string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, fmtFloat(v))
	}
	return strings.Join(parts, "|")
}
