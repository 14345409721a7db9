package iocache

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/huangsam/ladder/schema"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// countPrinter groups digits in row and run counts.
var countPrinter = message.NewPrinter(language.English)

// PrintHistoryStatus prints history status information.
func PrintHistoryStatus(w io.Writer, status schema.HistoryStatus) {
	_, _ = fmt.Fprintf(w, "History Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = countPrinter.Fprintf(w, "Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		_, _ = fmt.Fprintf(w, "Last Run ID: %d\n", status.LastRunID)
		_, _ = fmt.Fprintf(w, "Last Run: %s\n", status.LastRunTime.Local().Format("2006-01-02 15:04:05"))
		_, _ = fmt.Fprintf(w, "Oldest Run: %s\n", status.OldestRunTime.Local().Format("2006-01-02 15:04:05"))
		_, _ = countPrinter.Fprintf(w, "Total Inputs Selected: %d\n", status.TotalInputs)
	}
	_, _ = fmt.Fprintln(w, "Table Sizes:")
	for _, table := range slices.Sorted(maps.Keys(status.TableSizes)) {
		_, _ = countPrinter.Fprintf(w, "  %s: %d rows\n", table, status.TableSizes[table])
	}
}
