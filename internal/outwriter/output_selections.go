package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/huangsam/ladder/internal/contract"
	"github.com/huangsam/ladder/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// JSONSelection is the flattened JSON form of one ranked selection.
type JSONSelection struct {
	Rank            int                  `json:"rank"`
	InputName       string               `json:"input_name"`
	ComplexityScore float64              `json:"complexity_score"`
	Label           string               `json:"label"`
	MethodName      string               `json:"method_name"`
	MethodScore     float64              `json:"method_score"`
	MethodCategory  string               `json:"method_category"`
	Threshold       *float64             `json:"threshold,omitempty"`
	IsDefault       bool                 `json:"is_default"`
	DerivedMetric   float64              `json:"derived_metric"`
	Derived         map[string]float64   `json:"derived,omitempty"`
	RelatedValues   []float64            `json:"related_values"`
	Breakdown       []schema.FactorValue `json:"breakdown,omitempty"`
}

// WriteSelections outputs the ranked selections, dispatching based on the output format configured.
func WriteSelections(results []schema.EnrichedResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)
	groups := slices.Sorted(maps.Keys(cfg.Groups))

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSelectionJSON(w, results, cfg.Explain)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSelectionCSV(w, results, groups, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSelectionTable(w, results, groups, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
	return nil
}

// toJSONSelections flattens results for JSON consumers.
func toJSONSelections(results []schema.EnrichedResult, explain bool) []JSONSelection {
	output := make([]JSONSelection, len(results))
	for i, r := range results {
		js := JSONSelection{
			Rank:            i + 1,
			InputName:       r.InputName,
			ComplexityScore: r.ComplexityScore,
			Label:           r.Label,
			MethodName:      r.Method.Name,
			MethodScore:     r.Method.Score,
			MethodCategory:  r.Method.Category,
			IsDefault:       r.Default,
			DerivedMetric:   r.DerivedMetric,
			Derived:         r.Derived,
			RelatedValues:   r.RelatedValues,
		}
		if !r.Default {
			threshold := r.Threshold
			js.Threshold = &threshold
		}
		if explain {
			js.Breakdown = r.Breakdown
		}
		output[i] = js
	}
	return output
}

// writeSelectionJSON writes the selections in JSON format.
func writeSelectionJSON(w io.Writer, results []schema.EnrichedResult, explain bool) error {
	return writeJSON(w, toJSONSelections(results, explain))
}

// writeSelectionCSV writes the selections in CSV format, one derived column per group.
func writeSelectionCSV(w io.Writer, results []schema.EnrichedResult, groups []string, fmtFloat func(float64) string) error {
	header := []string{
		"rank",
		"input",
		"complexity_score",
		"label",
		"method_name",
		"method_score",
		"method_category",
		"threshold",
		"is_default",
		"derived_metric",
		"related_values",
	}
	for _, g := range groups {
		header = append(header, "derived_"+g)
	}
	header = append(header, "breakdown")

	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, r := range results {
			threshold := ""
			if !r.Default {
				threshold = fmtFloat(r.Threshold)
			}
			rec := []string{
				strconv.Itoa(i + 1),
				r.InputName,
				fmtFloat(r.ComplexityScore),
				r.Label,
				r.Method.Name,
				fmtFloat(r.Method.Score),
				r.Method.Category,
				threshold,
				strconv.FormatBool(r.Default),
				fmtFloat(r.DerivedMetric),
				formatFloats(r.RelatedValues, fmtFloat),
			}
			for _, g := range groups {
				rec = append(rec, fmtFloat(r.Derived[g]))
			}
			rec = append(rec, formatBreakdown(r.Breakdown, fmtFloat))
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// writeSelectionTable generates and writes the human-readable table.
func writeSelectionTable(w io.Writer, results []schema.EnrichedResult, groups []string, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	headers := []string{"Rank", "Input", "Complexity", "Label", "Method", "Score", "Derived"}
	headers = append(headers, groups...)
	if cfg.Explain {
		headers = append(headers, "Explain")
	}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := getMaxInputNameWidth(cfg)
	var data [][]string
	fallbacks := 0
	for i, r := range results {
		method := r.Method.Name
		if r.Default {
			method += "*"
			fallbacks++
		}
		row := []string{
			strconv.Itoa(i + 1),
			contract.TruncatePath(r.InputName, nameWidth),
			fmtFloat(r.ComplexityScore),
			labelFor(r.ComplexityScore, cfg.UseColors),
			method,
			fmtFloat(r.Method.Score),
			fmtFloat(r.DerivedMetric),
		}
		for _, g := range groups {
			row = append(row, fmtFloat(r.Derived[g]))
		}
		if cfg.Explain {
			row = append(row, formatBreakdown(r.Breakdown, fmtFloat))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Showing top %d selections (* = default fallback, %d total)\n", len(results), fallbacks); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Selection completed in %v. History backend: %s\n", duration, cfg.HistoryBackend); err != nil {
		return err
	}
	return nil
}
