// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/ladder/internal/contract"
	"github.com/huangsam/ladder/schema"
	"golang.org/x/term"
)

// LogSelectHeader prints a concise, 2-line header for a selection run.
// It goes to stderr so machine-readable output on stdout stays clean.
func LogSelectHeader(cfg *contract.Config, inputs int) {
	_, _ = fmt.Fprintf(os.Stderr, "🔎 Inputs: %d (factors: %s)\n", inputs, strings.Join(cfg.Factors, ", "))
	_, _ = fmt.Fprintf(os.Stderr, "🪜 Ladder: %s\n", formatLadder(cfg.Ladder, cfg.DefaultMethod))
}

// formatLadder renders brackets as "0.95→top, 0.9→high, else→low".
func formatLadder(ladder []schema.Bracket, defaultName string) string {
	parts := make([]string, 0, len(ladder)+1)
	for _, b := range ladder {
		parts = append(parts, fmt.Sprintf("%g→%s", b.Threshold, b.Method))
	}
	parts = append(parts, "else→"+defaultName)
	return strings.Join(parts, ", ")
}

// getMaxInputNameWidth calculates the maximum width for input names in table output
// based on terminal width and table configuration.
func getMaxInputNameWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth <= 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Rank + Complexity + Label + Method + Score + Derived with borders/padding
	baseWidth := 60
	if len(cfg.Groups) > 0 {
		baseWidth += 10 * len(cfg.Groups)
	}
	if cfg.Explain {
		baseWidth += 35
	}
	baseWidth += 10 // table borders and separators

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 70 {
		return 70
	}
	return available
}
