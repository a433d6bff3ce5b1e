// Package app wires configuration, the filter engine and the printers into
// the tag-filter command line.
package app

import (
	"io"
	"os"

	"github.com/bethropolis/tag-filter/internal/config"
	"github.com/bethropolis/tag-filter/internal/logger"
	"github.com/bethropolis/tag-filter/internal/setup"
	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// App encapsulates the main application functionality
type App struct {
	v   *viper.Viper
	cfg *config.Config
	log *logger.Logger
	fs  afero.Fs

	in     io.Reader
	Output io.Writer
	errOut io.Writer

	// global flags not covered by config keys
	cfgFile string
	verbose bool
}

// Option configures an App
type Option func(*App)

// WithInput sets where text and requests are read from
func WithInput(r io.Reader) Option {
	return func(a *App) { a.in = r }
}

// WithOutput sets where results are written
func WithOutput(w io.Writer) Option {
	return func(a *App) { a.Output = w }
}

// WithErrOutput sets where logs, traces and summaries are written
func WithErrOutput(w io.Writer) Option {
	return func(a *App) { a.errOut = w }
}

// WithFs sets the filesystem phrase files are read from
func WithFs(fsys afero.Fs) Option {
	return func(a *App) { a.fs = fsys }
}

// New creates a new App reading stdin and writing to stdout and stderr
func New(opts ...Option) *App {
	a := &App{
		v:      viper.New(),
		fs:     afero.NewOsFs(),
		in:     os.Stdin,
		Output: os.Stdout,
		errOut: os.Stderr,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Command builds the root command and its subcommands
func (a *App) Command() *cobra.Command {
	root := &cobra.Command{
		Use:   "tag-filter",
		Short: "Filter comma-separated tags by phrase categories",
		Long: `tag-filter classifies the comma-separated tags of an image caption
against phrase lists grouped into categories, and keeps or drops each
tag depending on which categories are switched on.

Phrase files live in the config directory: one <category>.txt per
category, filters.yml with phrases shared by every category and
exclude.txt with phrases that always drop a tag.`,
		Version:           config.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.loadConfig() },
	}
	root.SetIn(a.in)
	root.SetOut(a.Output)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./tag-filter.yaml or $HOME/.config/tag-filter/tag-filter.yaml)")
	flags.String("config-dir", "config", "Directory holding the phrase files")
	flags.String("log-level", "info", "Log level (debug, info, warn, error, none)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose (debug) logging")
	flags.BoolP("quiet", "q", false, "Suppress informational messages")
	flags.Bool("no-color", false, "Disable colored output")
	flags.StringP("format", "f", config.FormatText, "Output format (text, markdown, json, yaml)")
	flags.Bool("trim-quotes", false, "Strip surrounding quotes from phrases")

	a.bind(root, map[string]string{
		"config_dir":  "config-dir",
		"log_level":   "log-level",
		"quiet":       "quiet",
		"no_color":    "no-color",
		"format":      "format",
		"trim_quotes": "trim-quotes",
	}, true)

	root.AddCommand(
		a.filterCommand(),
		a.batchCommand(),
		a.invokeCommand(),
		a.phrasesCommand(),
	)
	return root
}

// bind maps config keys to flags of cmd
func (a *App) bind(cmd *cobra.Command, keys map[string]string, persistent bool) {
	flags := cmd.Flags()
	if persistent {
		flags = cmd.PersistentFlags()
	}
	for key, name := range keys {
		_ = a.v.BindPFlag(key, flags.Lookup(name))
	}
}

// loadConfig reads the configuration and sets up logging
func (a *App) loadConfig() error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	} else if cfg.Quiet {
		cfg.LogLevel = "warn"
	}
	cfg.Resolve()
	color.NoColor = !cfg.UseColors

	log := logger.New(a.errOut, cfg.UseColors)
	if err := log.SetLevel(cfg.LogLevel); err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log

	a.log.Debug("Config dir: %s", cfg.ConfigDir)
	a.log.Debug("Categories: %v", cfg.Categories)
	a.log.Debug("Output format: %s, color: %v", cfg.Format, cfg.UseColors)
	return nil
}

// engine builds the filter engine for the loaded configuration
func (a *App) engine() (*setup.Engine, error) {
	return setup.NewEngine(a.cfg, a.fs, a.log.Named("phrases"), a.errOut)
}
