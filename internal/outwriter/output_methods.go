package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/ladder/internal/contract"
	"github.com/huangsam/ladder/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteMethods outputs the method catalogue, dispatching based on the output format configured.
func WriteMethods(methods []schema.RankedMethod, cfg *contract.Config) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, methods)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMethodsCSV(w, methods, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMethodsTable(w, methods, cfg, fmtFloat)
		}, "Wrote table")
	}
}

// thresholdCell renders the bracket binding of a method.
func thresholdCell(m schema.RankedMethod, fmtFloat func(float64) string) string {
	switch {
	case m.Threshold != nil:
		return fmtFloat(*m.Threshold)
	case m.IsDefault:
		return "else"
	default:
		return "-"
	}
}

// writeMethodsCSV writes the catalogue in CSV format.
func writeMethodsCSV(w io.Writer, methods []schema.RankedMethod, fmtFloat func(float64) string) error {
	header := []string{"rank", "name", "score", "category", "label", "threshold", "is_default"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, m := range methods {
			rec := []string{
				strconv.Itoa(m.Rank),
				m.Name,
				fmtFloat(m.Score),
				m.Category,
				m.Label,
				thresholdCell(m, fmtFloat),
				strconv.FormatBool(m.IsDefault),
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// writeMethodsTable generates and writes the human-readable catalogue.
func writeMethodsTable(w io.Writer, methods []schema.RankedMethod, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Method", "Score", "Category", "Label", "Threshold"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, m := range methods {
		data = append(data, []string{
			strconv.Itoa(m.Rank),
			m.Name,
			fmtFloat(m.Score),
			m.Category,
			labelFor(m.Score, cfg.UseColors),
			thresholdCell(m, fmtFloat),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d methods (ladder: %s)\n", len(methods), formatLadder(cfg.Ladder, cfg.DefaultMethod))
	return err
}
