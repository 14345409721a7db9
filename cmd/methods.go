package cmd

import (
	"github.com/huangsam/ladder/core"
	"github.com/huangsam/ladder/internal/contract"
	"github.com/spf13/cobra"
)

// methodsCmd lists the method catalogue.
var methodsCmd = &cobra.Command{
	Use:   "methods",
	Short: "List registered methods with their ladder thresholds.",
	Long: `Validate the configured catalogue and ladder, then list every method by score.

Methods and the ladder come from the config file; without them the built-in
catalogue is used. The listing shows which threshold each method is bound to
and which method is the catch-all default.

Examples:
  # Show the built-in catalogue
  ladder methods

  # Validate a custom config
  ladder methods --config ./team.ladder.yaml`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMethods(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot list methods", err)
		}
	},
}
