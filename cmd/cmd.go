// Package cmd defines the command-line interface for ladder.
package cmd

import (
	"github.com/huangsam/ladder/internal/contract"
	"github.com/huangsam/ladder/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(methodsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("default-method", "", "Method used when no ladder bracket matches")
	rootCmd.PersistentFlags().String("history-backend", string(schema.NoneBackend), "History backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("input-schema", "", "Optional JSON Schema (JSON or YAML) every input must satisfy")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of selectCmd to Viper
	selectCmd.Flags().String("factors", "", "Comma-separated factors: keys, depth, numeric, fill or field:<key>[/<ref>]")
	selectCmd.Flags().String("related", "", "Comma-separated related values for the derived metric")
	selectCmd.Flags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	selectCmd.Flags().String("exclude", "", "Comma-separated list of path prefixes or patterns to ignore")
	selectCmd.Flags().Bool("explain", false, "Print the per-factor score breakdown")
	selectCmd.Flags().Bool("clamp", false, "Clamp derived metrics to [0,1]")
	if err := viper.BindPFlags(selectCmd.Flags()); err != nil {
		contract.LogFatal("Error binding select flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
