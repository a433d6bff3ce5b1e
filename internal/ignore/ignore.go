// Package ignore decides which entries of a caption directory are skipped.
//
// A path is skipped by the first rule that claims it: hidden names, .git
// directories, custom gitignore-style patterns, then the .gitignore files
// found in the tree. A negated pattern re-includes a path.
package ignore

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bethropolis/tag-filter/internal/utils"
	gitignore "github.com/denormal/go-gitignore"
)

// Rule names the rule that skipped a path
type Rule string

const (
	// RuleNone means the path is kept
	RuleNone      Rule = ""
	RuleHidden    Rule = "hidden"
	RuleGitDir    Rule = ".git"
	RuleCustom    Rule = "custom pattern"
	RuleGitignore Rule = ".gitignore"
)

// Matcher holds the skip rules for one caption directory
type Matcher struct {
	root     string
	hidden   bool
	gitDir   bool
	patterns []string
	disabled bool
	logger   utils.Logger

	custom gitignore.GitIgnore
	repo   gitignore.GitIgnore
}

// Option configures a Matcher
type Option func(*Matcher)

// WithHiddenIgnore skips entries whose name starts with a dot
func WithHiddenIgnore(enabled bool) Option {
	return func(m *Matcher) { m.hidden = enabled }
}

// WithGitDirIgnore skips .git directories and their content
func WithGitDirIgnore(enabled bool) Option {
	return func(m *Matcher) { m.gitDir = enabled }
}

// WithCustomRules adds gitignore-syntax patterns relative to the root
func WithCustomRules(patterns []string) Option {
	return func(m *Matcher) { m.patterns = append(m.patterns, patterns...) }
}

// WithLogger sets the logger used for rule diagnostics
func WithLogger(logger utils.Logger) Option {
	return func(m *Matcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithDisabled turns every rule off
func WithDisabled(disabled bool) Option {
	return func(m *Matcher) { m.disabled = disabled }
}

// Config is the flat form of the options, as read from tag-filter.yaml
type Config struct {
	RootDir      string
	IgnoreHidden bool
	CustomRules  []string
	Logger       utils.Logger
	Disabled     bool
}

// NewFromConfig creates a Matcher from a Config
func NewFromConfig(cfg Config) (*Matcher, error) {
	return New(cfg.RootDir,
		WithHiddenIgnore(cfg.IgnoreHidden),
		WithGitDirIgnore(true),
		WithCustomRules(cfg.CustomRules),
		WithLogger(cfg.Logger),
		WithDisabled(cfg.Disabled),
	)
}

// New loads the .gitignore files under root and compiles the custom patterns.
// Hidden and .git rules are on unless switched off.
func New(root string, opts ...Option) (*Matcher, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("ignore: resolving root '%s': %w", root, err)
	}

	m := &Matcher{root: abs, hidden: true, gitDir: true, logger: utils.NoopLogger{}}
	for _, opt := range opts {
		opt(m)
	}
	m.logger.Debug("ignore: root=%s hidden=%v git=%v custom=%v disabled=%v",
		m.root, m.hidden, m.gitDir, m.patterns, m.disabled)
	if m.disabled {
		return m, nil
	}

	repo, err := gitignore.NewRepository(m.root)
	switch {
	case err != nil && repo != nil:
		return nil, fmt.Errorf("ignore: loading .gitignore files: %w", err)
	case err != nil:
		m.logger.Warn("ignore: no .gitignore rules loaded for '%s': %v", m.root, err)
	default:
		m.repo = repo
	}

	var lines []string
	for _, p := range m.patterns {
		if p = strings.TrimSpace(p); p != "" {
			lines = append(lines, p)
		}
	}
	if len(lines) > 0 {
		m.custom = gitignore.New(strings.NewReader(strings.Join(lines, "\n")), m.root, func(e gitignore.Error) bool {
			m.logger.Warn("ignore: bad custom pattern: %v", e)
			return true
		})
	}
	return m, nil
}
