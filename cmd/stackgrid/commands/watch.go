package commands

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/teranos/stackgrid/am"
	"github.com/teranos/stackgrid/errors"
	"github.com/teranos/stackgrid/logger"
	"github.com/teranos/stackgrid/sym"
)

// WatchCmd re-renders an instance whenever it changes
var WatchCmd = &cobra.Command{
	Use:   "watch <instance>",
	Short: sym.Prefixed("watch", sym.CommandDescriptions["watch"]),
	Long: sym.Watch + ` watch — Re-render whenever the instance file changes

Renders once, then watches the instance file and any am.toml in the config
cascade. Changes are debounced (watch.debounce_ms) and trigger a fresh
render into the output file. Stop with Ctrl-C.

Examples:
  stackgrid watch stacks.xml -o stacks.svg
  stackgrid watch stacks.xml -o stacks.json -f json`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	addRenderFlags(WatchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	instancePath := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Render.Output == "" {
		return errors.WithHint(errors.New("watch needs an output file"),
			"pass -o <file>; stdout would interleave renders")
	}

	log := logger.ChildLogger(logger.ComponentLogger("watch"), logger.FieldSymbol, sym.Watch)
	rerender := func(reason string) error {
		start := time.Now()
		res, err := renderInstance(cfg, instancePath, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		log.Infow("Rendered",
			logger.FieldFile, cfg.Render.Output,
			"reason", reason,
			logger.FieldCount, res.Count,
			"failures", len(res.Failures),
			logger.FieldDurationMS, time.Since(start).Milliseconds())
		printSummary(cmd.ErrOrStderr(), res, cfg.Render.Output)
		return nil
	}

	if err := rerender("initial"); err != nil {
		// Keep watching: the instance may be mid-export
		PrintError(cmd.ErrOrStderr(), err)
	}

	paths := []string{instancePath}
	configPaths := map[string]bool{}
	for _, p := range am.ConfigPaths() {
		if _, err := os.Stat(p); err == nil {
			paths = append(paths, p)
			abs, _ := filepath.Abs(p)
			configPaths[abs] = true
		}
	}

	watcher, err := am.NewFileWatcher(time.Duration(cfg.Watch.DebounceMS)*time.Millisecond, paths...)
	if err != nil {
		return err
	}
	defer watcher.Stop()

	watcher.OnChange(func(path string) error {
		if configPaths[path] {
			am.Reset()
			reloaded, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cfg = reloaded
		}
		return rerender(filepath.Base(path))
	})
	watcher.Start()

	log.Infow("Watching", logger.FieldFile, instancePath, logger.FieldCount, len(paths))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case <-sig:
	case <-cmd.Context().Done():
	}
	log.Infow("Stopped watching")
	return nil
}
