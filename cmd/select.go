package cmd

import (
	"os"

	"github.com/huangsam/ladder/core"
	"github.com/huangsam/ladder/internal/contract"
	"github.com/spf13/cobra"
)

// selectCmd scores inputs and selects a method for each.
var selectCmd = &cobra.Command{
	Use:   "select [path...]",
	Short: "Select a method for each input, ranked by complexity.",
	Long: `Score every input for complexity and walk the ladder to pick its method.

Inputs are JSON or YAML mappings. Directories are searched for .json, .yaml
and .yml files; "-" reads a single input from stdin. With no arguments the
current directory is used.

Each input is reduced to a complexity score in [0,1] by averaging the
configured factors, then mapped to the first bracket whose threshold it
reaches. Inputs below every threshold fall back to the default method.

Examples:
  # Select methods for every input in a folder
  ladder select ./inputs

  # Score with a single numeric field
  ladder select --factors field:complexity job.yaml

  # Show the per-factor breakdown
  ladder select --explain ./inputs

  # Pipe an input and get JSON back
  echo '{"complexity": 0.93}' | ladder select --factors field:complexity --output json -

  # Track runs in SQLite for later export
  ladder select --history-backend sqlite ./inputs`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if len(args) == 0 {
			args = []string{"."}
		}
		if err := core.ExecuteSelect(rootCtx, cfg, args, os.Stdin, storeManager); err != nil {
			contract.LogFatal("Cannot run selection", err)
		}
	},
}
