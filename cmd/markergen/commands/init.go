package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/gubacsiaronmate/markergen/config"
)

// InitCmd represents the init command
var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default markergen.toml",
	Long: `Write a markergen.toml populated with defaults to the current
directory. Refuses to overwrite an existing config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.WriteDefault(".")
		if err != nil {
			return err
		}
		pterm.Success.Printf("Wrote %s\n", path)
		return nil
	},
}
