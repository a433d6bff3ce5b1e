// Package setup builds the engine and batch walker from a Config
package setup

import (
	"context"
	"fmt"
	"io"

	"github.com/bethropolis/tag-filter/internal/category"
	"github.com/bethropolis/tag-filter/internal/config"
	"github.com/bethropolis/tag-filter/internal/filter"
	"github.com/bethropolis/tag-filter/internal/ignore"
	"github.com/bethropolis/tag-filter/internal/phrases"
	"github.com/bethropolis/tag-filter/internal/utils"
	"github.com/bethropolis/tag-filter/internal/walker"
	"github.com/spf13/afero"
)

// InfoLogger wraps the Info method for status updates
type InfoLogger func(format string, args ...interface{})

// Engine bundles the pieces of a configured filter engine
type Engine struct {
	Loader   *phrases.Loader
	Registry *category.Registry
	Filter   *filter.Engine
}

// NewEngine builds the loader, registry and engine described by cfg.
// fsys may be nil to read from the OS filesystem.
func NewEngine(cfg *config.Config, fsys afero.Fs, logger utils.Logger, trace io.Writer) (*Engine, error) {
	loader := phrases.NewLoader(
		phrases.WithFs(fsys),
		phrases.WithLogger(logger),
		phrases.WithTrimQuotes(cfg.TrimQuotes),
	)

	registry, err := category.NewRegistry(loader,
		cfg.Path(cfg.DefaultsFile),
		cfg.Path(cfg.ExcludeFile),
		cfg.RegistryCategories(),
	)
	if err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}

	engine := filter.New(registry,
		filter.WithLogger(logger),
		filter.WithTraceOutput(trace),
	)
	return &Engine{Loader: loader, Registry: registry, Filter: engine}, nil
}

// WalkerConfig holds all parameters needed to configure a caption walk
type WalkerConfig struct {
	RootDir       string
	Pattern       string
	IgnoreHidden  bool
	CustomIgnore  []string
	// NoIgnore turns off hidden, .gitignore and custom rules
	NoIgnore      bool
	MaxFileSizeKB int64
	Context       context.Context
	Logger        utils.Logger
}

// ConfigureWalker sets up an ignore matcher and walker options based on the config
func ConfigureWalker(cfg WalkerConfig, infoLog InfoLogger) (*ignore.Matcher, []walker.Option, error) {
	if len(cfg.CustomIgnore) > 0 {
		infoLog("Using custom ignore patterns: %v", cfg.CustomIgnore)
	}
	if cfg.NoIgnore {
		infoLog("Ignore rules disabled; every file matching the pattern is read.")
	} else if cfg.IgnoreHidden {
		infoLog("Ignoring hidden files/directories (starting with '.').")
	}

	matcher, err := ignore.NewFromConfig(ignore.Config{
		RootDir:      cfg.RootDir,
		IgnoreHidden: cfg.IgnoreHidden,
		CustomRules:  cfg.CustomIgnore,
		Logger:       cfg.Logger,
		Disabled:     cfg.NoIgnore,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing ignore rules: %w", err)
	}

	walkOptions := []walker.Option{walker.WithLogger(cfg.Logger)}

	if cfg.Pattern != "" {
		g, err := walker.CompilePattern(cfg.Pattern)
		if err != nil {
			return nil, nil, err
		}
		walkOptions = append(walkOptions, walker.WithPattern(g))
		infoLog("Selecting caption files matching %q.", cfg.Pattern)
	}

	if cfg.MaxFileSizeKB > 0 {
		walkOptions = append(walkOptions, walker.WithMaxFileSize(cfg.MaxFileSizeKB*1024))
		infoLog("Ignoring files larger than %d KB.", cfg.MaxFileSizeKB)
	}

	if cfg.Context != nil {
		walkOptions = append(walkOptions, walker.WithContext(cfg.Context))
	}

	return matcher, walkOptions, nil
}
