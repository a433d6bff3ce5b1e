package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bethropolis/tag-filter/internal/setup"
	"github.com/bethropolis/tag-filter/internal/summary"
	"github.com/bethropolis/tag-filter/internal/walker"
	"github.com/spf13/cobra"
)

type batchFlags struct {
	runFlags
	maxSizeKB   int64
	timeout     time.Duration
	showSkipped bool
	noIgnore    bool
}

func (a *App) batchCommand() *cobra.Command {
	var flags batchFlags
	cmd := &cobra.Command{
		Use:   "batch DIR",
		Short: "Filter every caption file under a directory",
		Long: `Walk DIR, filter the tags of every caption file matching the pattern
and print one result per file. Files are not modified.

Hidden files, .gitignore rules and --ignore patterns are honoured.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBatch(cmd.Context(), args[0], &flags)
		},
	}
	flags.register(cmd)
	cmd.Flags().String("pattern", "*.txt", "Glob selecting caption files by name")
	cmd.Flags().Bool("ignore-hidden", true, "Skip hidden files and directories")
	cmd.Flags().StringSlice("ignore", nil, "Additional gitignore-style patterns to skip")
	cmd.Flags().Int64Var(&flags.maxSizeKB, "max-size-kb", 0, "Skip files larger than this many KB (0 = no limit)")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "Abort the walk after this long (0 = no limit)")
	cmd.Flags().BoolVar(&flags.noIgnore, "no-ignore", false, "Read every matching file, ignoring hidden, .gitignore and --ignore rules")
	cmd.Flags().BoolVar(&flags.showSkipped, "show-skipped", false, "List skipped files and directories")

	a.bind(cmd, map[string]string{
		"batch.pattern":       "pattern",
		"batch.ignore_hidden": "ignore-hidden",
		"batch.ignore":        "ignore",
	}, false)
	return cmd
}

func (a *App) runBatch(ctx context.Context, dir string, flags *batchFlags) error {
	startTime := time.Now()
	infoLog := func(format string, args ...interface{}) {
		if !a.cfg.Quiet {
			a.log.Info(format, args...)
		}
	}

	absRootDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("invalid directory path '%s': %w", dir, err)
	}
	dirInfo, err := os.Stat(absRootDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("directory '%s' not found", absRootDir)
		}
		return fmt.Errorf("could not access directory '%s': %w", absRootDir, err)
	}
	if !dirInfo.IsDir() {
		return fmt.Errorf("specified path '%s' is not a directory", absRootDir)
	}

	eng, err := a.engine()
	if err != nil {
		return err
	}
	toggles, err := flags.toggles(eng.Registry)
	if err != nil {
		return err
	}
	opts := flags.options()

	if ctx == nil {
		ctx = context.Background()
	}
	if flags.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flags.timeout)
		defer cancel()
	}

	matcher, walkOptions, err := setup.ConfigureWalker(setup.WalkerConfig{
		RootDir:       absRootDir,
		Pattern:       a.cfg.Batch.Pattern,
		IgnoreHidden:  a.cfg.Batch.IgnoreHidden,
		CustomIgnore:  a.cfg.Batch.Ignore,
		NoIgnore:      flags.noIgnore,
		MaxFileSizeKB: flags.maxSizeKB,
		Context:       ctx,
		Logger:        a.log.Named("walker"),
	}, infoLog)
	if err != nil {
		return err
	}

	p := a.newPrinter(flags.showDropped)
	var stats summary.Stats

	filterFunc := func(relativePath string, content []byte, err error) error {
		if err != nil {
			a.log.Warn("Skipping file '%s' due to error: %v", relativePath, err)
			return nil
		}
		res := eng.Filter.Run(string(content), toggles, opts)
		stats.Files++
		stats.Add(res)
		return p.PrintFile(relativePath, res)
	}

	infoLog("Scanning directory: %s", absRootDir)
	skippedItems, err := walker.Walk(absRootDir, matcher, filterFunc, walkOptions...)
	if finErr := p.Finalize(); err == nil {
		err = finErr
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("timeout of %v reached: %w", flags.timeout, err)
		}
		return fmt.Errorf("error during directory walk: %w", err)
	}

	summary.DisplayResults(a.log, stats, time.Since(startTime), a.cfg.Quiet)
	if flags.showSkipped {
		summary.DisplaySkippedItems(a.log, skippedItems, a.errOut, a.cfg.Quiet)
	}
	return nil
}
