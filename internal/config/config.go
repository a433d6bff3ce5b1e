// Package config holds the tag-filter configuration and its viper bindings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bethropolis/tag-filter/internal/category"
	"github.com/bethropolis/tag-filter/internal/logger"
	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"
)

// Version is reported by --version
const Version = "1.0.0"

// Output formats
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

// Config holds all application configuration settings
type Config struct {
	// Phrase files
	ConfigDir    string           `mapstructure:"config_dir"`
	DefaultsFile string           `mapstructure:"defaults_file"`
	ExcludeFile  string           `mapstructure:"exclude_file"`
	TrimQuotes   bool             `mapstructure:"trim_quotes"`
	Categories   []CategoryConfig `mapstructure:"categories"`

	// Logging and output
	LogLevel string `mapstructure:"log_level"`
	Quiet    bool   `mapstructure:"quiet"`
	NoColor  bool   `mapstructure:"no_color"`
	Format   string `mapstructure:"format"`

	Batch BatchConfig `mapstructure:"batch"`

	// UseColors is derived by Resolve, not read from the file
	UseColors bool `mapstructure:"-"`
}

// CategoryConfig names one category and its phrase file
type CategoryConfig struct {
	Name string `mapstructure:"name"`
	File string `mapstructure:"file"`
}

// BatchConfig controls directory mode
type BatchConfig struct {
	// Pattern selects caption files by base name, e.g. "*.txt"
	Pattern      string   `mapstructure:"pattern"`
	IgnoreHidden bool     `mapstructure:"ignore_hidden"`
	Ignore       []string `mapstructure:"ignore"`
}

// Default returns the configuration used when no file or flag overrides it
func Default() *Config {
	cats := make([]CategoryConfig, 0, len(category.DefaultNames))
	for _, name := range category.DefaultNames {
		cats = append(cats, CategoryConfig{Name: name, File: name + ".txt"})
	}
	return &Config{
		ConfigDir:    "config",
		DefaultsFile: "filters.yml",
		ExcludeFile:  "exclude.txt",
		Categories:   cats,
		LogLevel:     "info",
		Format:       FormatText,
		Batch: BatchConfig{
			Pattern:      "*.txt",
			IgnoreHidden: true,
		},
	}
}

// SetDefaults registers the defaults with v
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("config_dir", d.ConfigDir)
	v.SetDefault("defaults_file", d.DefaultsFile)
	v.SetDefault("exclude_file", d.ExcludeFile)
	v.SetDefault("trim_quotes", d.TrimQuotes)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("quiet", d.Quiet)
	v.SetDefault("no_color", d.NoColor)
	v.SetDefault("format", d.Format)
	v.SetDefault("batch.pattern", d.Batch.Pattern)
	v.SetDefault("batch.ignore_hidden", d.Batch.IgnoreHidden)
	v.SetDefault("batch.ignore", d.Batch.Ignore)
}

// Load reads the config file (explicit path, or tag-filter.yaml in the
// usual places), the TAGFILTER_ environment and any bound flags.
// A missing default config file is not an error.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("tag-filter")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/tag-filter")
	}

	v.SetEnvPrefix("TAGFILTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decoding config: %w", err)
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = Default().Categories
	}
	return cfg, cfg.Validate()
}

// Validate checks settings that would otherwise fail later
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		if err := category.ValidateName(cat.Name); err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if seen[cat.Name] {
			return fmt.Errorf("config: duplicate category %q", cat.Name)
		}
		seen[cat.Name] = true
	}

	switch c.Format {
	case FormatText, FormatMarkdown, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("config: unknown output format %q", c.Format)
	}

	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Resolve derives runtime settings: colour use follows the terminal.
func (c *Config) Resolve() {
	c.UseColors = !c.NoColor && isatty.IsTerminal(os.Stderr.Fd())
}

// Path resolves a phrase file name against ConfigDir. Empty names stay empty.
func (c *Config) Path(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.ConfigDir, name)
}

// RegistryCategories returns the configured categories with resolved paths.
// A category without a file uses <name>.txt.
func (c *Config) RegistryCategories() []category.Category {
	out := make([]category.Category, 0, len(c.Categories))
	for _, cat := range c.Categories {
		file := cat.File
		if file == "" {
			file = cat.Name + ".txt"
		}
		out = append(out, category.Category{Name: cat.Name, Path: c.Path(file)})
	}
	return out
}
