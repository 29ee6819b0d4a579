package commands

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/gubacsiaronmate/markergen/config"
	"github.com/gubacsiaronmate/markergen/decl"
	"github.com/gubacsiaronmate/markergen/emit"
	"github.com/gubacsiaronmate/markergen/logger"
	"github.com/gubacsiaronmate/markergen/pass"
	"github.com/gubacsiaronmate/markergen/scan"
)

var (
	generateOutput  string
	generateSuffix  string
	generateCache   string
	generateWorkers int
)

// GenerateCmd represents the generate command
var GenerateCmd = &cobra.Command{
	Use:   "generate [packages...]",
	Short: "Run one generation pass",
	Long: `Run one generation pass over the given package patterns.

Struct declarations carrying the //markergen:repr directive get a generated
Repr() method in a sibling <Name>_repr.go file. Members opt out with the
` + "`repr:\"-\"`" + ` struct tag. Unchanged origin files are skipped via the
content-hash cache; records for deleted origins are pruned along with
their outputs.

A pass always completes: invalid markers, unrepresentable members, name
collisions, and write failures become diagnostics, not aborts.`,
	RunE: runGenerate,
}

func init() {
	GenerateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output root (default from config)")
	GenerateCmd.Flags().StringVar(&generateSuffix, "suffix", "", "Output-name suffix (default from config)")
	GenerateCmd.Flags().StringVar(&generateCache, "cache", "", "Cache file path (default from config)")
	GenerateCmd.Flags().IntVar(&generateWorkers, "workers", 0, "Parallel workers (default from config)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	patterns := args
	if len(patterns) == 0 {
		patterns = cfg.Generate.Packages
	}

	cachePath := cfg.Cache.Path
	if generateCache != "" {
		cachePath = generateCache
	}
	cache, err := emit.LoadCache(cachePath)
	if err != nil {
		return err
	}

	decls, err := scan.FromPackages(patterns...)
	if err != nil {
		return err
	}

	pc := pass.NewContext(outputRoot(cfg), cache, logger.Logger)
	if generateSuffix != "" {
		pc.Suffix = generateSuffix
	} else {
		pc.Suffix = cfg.Generate.Suffix
	}
	pc.Extension = cfg.Generate.Extension
	pc.Workers = cfg.Generate.Workers
	if generateWorkers > 0 {
		pc.Workers = generateWorkers
	}

	res, err := pass.Run(context.Background(), pc, decls)
	if err != nil {
		return err
	}

	if err := cache.Save(cachePath); err != nil {
		return err
	}

	reportResult(res)
	return nil
}

func outputRoot(cfg *config.Config) string {
	if generateOutput != "" {
		return generateOutput
	}
	return cfg.Generate.OutputRoot
}

// reportResult prints the human-readable pass summary.
func reportResult(res *pass.Result) {
	for _, path := range res.Written {
		pterm.Success.Printf("Generated %s\n", path)
	}
	for _, origin := range res.Skipped {
		pterm.Debug.Printf("Unchanged %s\n", origin)
	}
	for _, origin := range res.Pruned {
		pterm.Info.Printf("Pruned %s\n", origin)
	}
	for _, d := range res.Diagnostics {
		switch d.Severity {
		case decl.SeverityError:
			pterm.Error.Println(d.String())
		case decl.SeverityWarning:
			pterm.Warning.Println(d.String())
		default:
			pterm.Info.Println(d.String())
		}
	}
	pterm.Info.Printf("%d written, %d skipped, %d pruned, %d diagnostics\n",
		len(res.Written), len(res.Skipped), len(res.Pruned), len(res.Diagnostics))
}
