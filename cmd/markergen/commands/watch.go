package commands

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/gubacsiaronmate/markergen/config"
	"github.com/gubacsiaronmate/markergen/decl"
	"github.com/gubacsiaronmate/markergen/emit"
	"github.com/gubacsiaronmate/markergen/errors"
	"github.com/gubacsiaronmate/markergen/logger"
	"github.com/gubacsiaronmate/markergen/pass"
	"github.com/gubacsiaronmate/markergen/scan"
)

// WatchCmd represents the watch command
var WatchCmd = &cobra.Command{
	Use:   "watch [packages...]",
	Short: "Re-run generation on source change",
	Long: `Watch the origin directories and re-run the generation pass when a
source file changes. Changes are debounced so an editor save burst triggers
one pass, and markergen's own generated files are ignored to prevent
reload loops. Stop with Ctrl+C.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	patterns := args
	if len(patterns) == 0 {
		patterns = cfg.Generate.Packages
	}

	cache, err := emit.LoadCache(cfg.Cache.Path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create fsnotify watcher")
	}
	defer watcher.Close()

	runPass := func() {
		decls, err := scan.FromPackages(patterns...)
		if err != nil {
			pterm.Error.Printf("Load failed: %v\n", err)
			return
		}

		for _, dir := range originDirs(decls) {
			// Re-adding a watched directory is a no-op; new directories
			// picked up between passes get watched here.
			if err := watcher.Add(dir); err != nil {
				logger.Warnw("Failed to watch directory", "dir", dir, "error", err)
			}
		}

		pc := pass.NewContext(cfg.Generate.OutputRoot, cache, logger.Logger)
		pc.Suffix = cfg.Generate.Suffix
		pc.Extension = cfg.Generate.Extension
		pc.Workers = cfg.Generate.Workers

		res, err := pass.Run(context.Background(), pc, decls)
		if err != nil {
			pterm.Error.Printf("Pass failed: %v\n", err)
			return
		}
		if err := cache.Save(cfg.Cache.Path); err != nil {
			pterm.Error.Printf("Cache save failed: %v\n", err)
		}
		reportResult(res)
	}

	runPass()
	pterm.Info.Println("Watching for changes (Ctrl+C to stop)...")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	debounce := time.Duration(cfg.Watch.DebounceMs) * time.Millisecond
	var debounceTimer *time.Timer
	ownSuffix := "_" + cfg.Generate.Suffix + "." + cfg.Generate.Extension

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			// Our own outputs would retrigger the pass forever.
			if strings.HasSuffix(event.Name, ownSuffix) {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounce, func() {
				logger.Debugw("Change detected", "file", event.Name)
				runPass()
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnw("Watcher error", "error", err)

		case <-sigCh:
			pterm.Info.Println("\nStopping watch")
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil
		}
	}
}

// originDirs returns the unique directories of the declarations' origin
// files, sorted for deterministic watch registration.
func originDirs(decls []decl.Declaration) []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, d := range decls {
		dir := filepath.Dir(d.OriginFile)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}
