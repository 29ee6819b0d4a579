package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gubacsiaronmate/markergen/cmd/markergen/commands"
	"github.com/gubacsiaronmate/markergen/logger"
)

var rootCmd = &cobra.Command{
	Use:   "markergen",
	Short: "markergen - marker-driven source generator",
	Long: `markergen - marker-driven source generator for Go packages.

markergen scans Go packages for struct declarations carrying the
//markergen:repr directive and generates a Repr() method for each, writing
one deterministic artifact per declaration. Regeneration is incremental:
unchanged origin files are skipped via a content-hash dependency cache.

Available commands:
  init     - Write a default markergen.toml
  generate - Run one generation pass
  check    - Verify committed outputs are up to date
  watch    - Re-run generation on source change
  version  - Show build information

Examples:
  markergen generate ./...          # Generate for the whole module
  markergen generate ./geom         # One package only
  markergen check                   # CI freshness gate
  markergen watch ./...             # Regenerate on save`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		if err := logger.Initialize(jsonOutput); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			if err := logger.SetVerbose(); err != nil {
				return fmt.Errorf("failed to raise log level: %w", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("json", false, "JSON log output")

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.InitCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
