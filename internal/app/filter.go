package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/bethropolis/tag-filter/internal/category"
	"github.com/bethropolis/tag-filter/internal/filter"
	"github.com/bethropolis/tag-filter/internal/printer"
	"github.com/spf13/cobra"
)

// runFlags are the toggle and mode flags shared by filter and batch
type runFlags struct {
	off         []string
	noExclude   bool
	noOther     bool
	multi       bool
	debug       bool
	showDropped bool
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.off, "off", nil, "Categories to switch off (comma-separated)")
	cmd.Flags().BoolVar(&f.noExclude, "no-exclude", false, "Ignore the exclude list")
	cmd.Flags().BoolVar(&f.noOther, "no-other", false, "Drop tags that match no category")
	cmd.Flags().BoolVar(&f.multi, "multi", false, "Produce one output per category plus other and all")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "Trace every decision to stderr")
	cmd.Flags().BoolVar(&f.showDropped, "show-dropped", false, "Show dropped tags and why")
}

// toggles converts the flags into engine toggles. Unknown categories are an error.
func (f *runFlags) toggles(reg *category.Registry) (filter.Toggles, error) {
	t := filter.AllEnabled()
	for _, name := range f.off {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if !reg.Has(name) {
			return t, fmt.Errorf("%w: %q (known: %s)", category.ErrUnknownCategory, name, strings.Join(reg.Names(), ", "))
		}
		t = t.Set(name, false)
	}
	t.Exclude = !f.noExclude
	t.Other = !f.noOther
	return t, nil
}

func (f *runFlags) options() filter.Options {
	opts := filter.Options{Debug: f.debug}
	if f.multi {
		opts.Mode = filter.ModeMulti
	}
	return opts
}

func (a *App) newPrinter(showDropped bool) *printer.Printer {
	return printer.New().
		WithOutput(a.Output).
		WithColors(a.cfg.UseColors).
		WithFormat(a.cfg.Format).
		WithDropped(showDropped)
}

func (a *App) filterCommand() *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "filter [TAGS...]",
		Short: "Filter one tag list given as arguments or on stdin",
		Example: `  tag-filter filter "1girl, red dress, smile"
  tag-filter filter --off clothing --multi < caption.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, filter.Separator)
			if len(args) == 0 {
				data, err := io.ReadAll(a.in)
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				text = string(data)
			}
			return a.runFilter(text, &flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func (a *App) runFilter(text string, flags *runFlags) error {
	eng, err := a.engine()
	if err != nil {
		return err
	}
	toggles, err := flags.toggles(eng.Registry)
	if err != nil {
		return err
	}

	res := eng.Filter.Run(text, toggles, flags.options())
	a.log.Debug("Kept %d of %d tags", res.Kept(), len(res.Tags))
	return a.newPrinter(flags.showDropped).PrintResult(res)
}
