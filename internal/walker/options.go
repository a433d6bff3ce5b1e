package walker

import (
	"context"
	"fmt"

	"github.com/bethropolis/tag-filter/internal/utils"
	"github.com/gobwas/glob"
)

// Options configures Walk
type Options struct {
	Logger utils.Logger
	// Pattern is matched against the base name; nil selects every file
	Pattern glob.Glob
	// MaxFileSize in bytes, 0 for no limit
	MaxFileSize int64
	Context     context.Context
}

// Option is a functional option for configuring Options
type Option func(*Options)

// WithLogger sets the logger for per-entry diagnostics
func WithLogger(logger utils.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// WithPattern selects files whose base name matches g
func WithPattern(g glob.Glob) Option {
	return func(o *Options) { o.Pattern = g }
}

// WithMaxFileSize skips files larger than maxBytes
func WithMaxFileSize(maxBytes int64) Option {
	return func(o *Options) { o.MaxFileSize = maxBytes }
}

// WithContext stops the walk when ctx is done
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Context = ctx
		}
	}
}

// CompilePattern compiles a base-name glob such as "*.txt" or "*.{txt,caption}"
func CompilePattern(pattern string) (glob.Glob, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("walker: invalid pattern %q: %w", pattern, err)
	}
	return g, nil
}
