package ignore

import (
	"path/filepath"
	"strings"

	gitignore "github.com/denormal/go-gitignore"
)

// Check returns the rule that skips relativePath, or RuleNone.
// A nil Matcher keeps everything.
func (m *Matcher) Check(relativePath string, isDir bool) Rule {
	if m == nil || m.disabled || relativePath == "" || relativePath == "." {
		return RuleNone
	}

	parts := strings.Split(filepath.ToSlash(relativePath), "/")
	if m.hidden && hasHiddenPart(parts) {
		return RuleHidden
	}
	if m.gitDir && inGitDir(parts, isDir) {
		return RuleGitDir
	}

	unixPath := strings.Join(parts, "/")
	if rule, decided := m.apply(m.custom, RuleCustom, unixPath, isDir); decided {
		return rule
	}
	if rule, decided := m.apply(m.repo, RuleGitignore, unixPath, isDir); decided {
		return rule
	}
	return RuleNone
}

// ShouldIgnore reports whether any rule skips relativePath
func (m *Matcher) ShouldIgnore(relativePath string, isDir bool) bool {
	return m.Check(relativePath, isDir) != RuleNone
}

// apply consults one rule set. decided is false when no pattern mentions the path.
func (m *Matcher) apply(rules gitignore.GitIgnore, rule Rule, unixPath string, isDir bool) (Rule, bool) {
	if rules == nil {
		return RuleNone, false
	}
	match := rules.Relative(unixPath, isDir)
	switch {
	case match == nil:
		return RuleNone, false
	case match.Include():
		m.logger.Debug("ignore: %q re-included by %v", unixPath, match)
		return RuleNone, true
	case match.Ignore():
		m.logger.Debug("ignore: %q skipped by %s %v", unixPath, rule, match)
		return rule, true
	}
	return RuleNone, false
}

func hasHiddenPart(parts []string) bool {
	for _, part := range parts {
		if len(part) > 1 && part[0] == '.' && part != ".." {
			return true
		}
	}
	return false
}

// inGitDir reports whether the path is a .git directory or lies inside one
func inGitDir(parts []string, isDir bool) bool {
	for i, part := range parts {
		if part == ".git" && (isDir || i < len(parts)-1) {
			return true
		}
	}
	return false
}
