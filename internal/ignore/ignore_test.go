package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("drafts/\n*.bak\n!keep.bak\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "drafts"), 0o755))

	m, err := New(root, WithCustomRules([]string{"skip.txt", "  "}))
	require.NoError(t, err)

	tests := []struct {
		path  string
		isDir bool
		want  Rule
	}{
		{"img001.txt", false, RuleNone},
		{"sub/img002.txt", false, RuleNone},
		{".hidden.txt", false, RuleHidden},
		{".cache/img.txt", false, RuleHidden},
		{"drafts", true, RuleGitignore},
		{"img001.bak", false, RuleGitignore},
		{"keep.bak", false, RuleNone},
		{"skip.txt", false, RuleCustom},
		{".", true, RuleNone},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Check(tt.path, tt.isDir))
			assert.Equal(t, tt.want != RuleNone, m.ShouldIgnore(tt.path, tt.isDir))
		})
	}
}

func TestCheck_HiddenAllowed(t *testing.T) {
	m, err := NewFromConfig(Config{RootDir: t.TempDir(), IgnoreHidden: false})
	require.NoError(t, err)

	assert.Equal(t, RuleNone, m.Check(".hidden.txt", false))
	assert.Equal(t, RuleGitDir, m.Check(".git/config", false), ".git stays skipped")
	assert.Equal(t, RuleGitDir, m.Check(".git", true))
}

func TestCheck_Disabled(t *testing.T) {
	m, err := NewFromConfig(Config{RootDir: t.TempDir(), IgnoreHidden: true, Disabled: true})
	require.NoError(t, err)
	assert.Equal(t, RuleNone, m.Check(".hidden", false))
	assert.Equal(t, RuleNone, m.Check(".git", true))

	var nilMatcher *Matcher
	assert.False(t, nilMatcher.ShouldIgnore("x", false))
}
