package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/gubacsiaronmate/markergen/config"
	"github.com/gubacsiaronmate/markergen/emit"
	"github.com/gubacsiaronmate/markergen/errors"
	"github.com/gubacsiaronmate/markergen/logger"
	"github.com/gubacsiaronmate/markergen/pass"
	"github.com/gubacsiaronmate/markergen/scan"
)

// CheckCmd represents the check command
var CheckCmd = &cobra.Command{
	Use:   "check [packages...]",
	Short: "Verify committed outputs are up to date",
	Long: `Verify that committed generated outputs match the current sources.

Generation runs into a temporary directory with a fresh cache, then every
artifact is byte-compared against its committed counterpart. Exits non-zero
when any artifact is stale or missing, which makes this the CI gate for
generated code.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	patterns := args
	if len(patterns) == 0 {
		patterns = cfg.Generate.Packages
	}

	decls, err := scan.FromPackages(patterns...)
	if err != nil {
		return err
	}

	tempDir, err := os.MkdirTemp("", "markergen-check-")
	if err != nil {
		return errors.Wrap(err, "failed to create temp directory")
	}
	defer os.RemoveAll(tempDir)

	// Fresh cache: check must regenerate everything to have something to
	// compare.
	pc := pass.NewContext(tempDir, emit.NewCache(), logger.Logger)
	pc.Suffix = cfg.Generate.Suffix
	pc.Extension = cfg.Generate.Extension
	pc.Workers = cfg.Generate.Workers

	res, err := pass.Run(context.Background(), pc, decls)
	if err != nil {
		return err
	}

	stale := compareOutputs(tempDir, cfg.Generate.OutputRoot, res.Written)
	if len(stale) == 0 {
		pterm.Success.Printf("Generated outputs up to date (%d artifacts)\n", len(res.Written))
		return nil
	}

	for _, path := range stale {
		pterm.Error.Printf("Stale: %s\n", path)
	}
	return errors.Newf("%d generated artifact(s) out of date; run `markergen generate`", len(stale))
}

// compareOutputs byte-compares each freshly generated artifact under
// tempDir with its counterpart under outputRoot. Returns the stale
// counterpart paths, sorted.
func compareOutputs(tempDir, outputRoot string, written []string) []string {
	var stale []string
	for _, path := range written {
		rel, err := filepath.Rel(tempDir, path)
		if err != nil {
			stale = append(stale, path)
			continue
		}
		committed := filepath.Join(outputRoot, rel)

		want, err := os.ReadFile(path)
		if err != nil {
			stale = append(stale, committed)
			continue
		}
		got, err := os.ReadFile(committed)
		if err != nil || !bytes.Equal(want, got) {
			stale = append(stale, committed)
		}
	}
	sort.Strings(stale)
	return stale
}
