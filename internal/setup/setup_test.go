package setup

import (
	"bytes"
	"testing"

	"github.com/bethropolis/tag-filter/internal/config"
	"github.com/bethropolis/tag-filter/internal/filter"
	"github.com/bethropolis/tag-filter/internal/utils"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/cfg/character.txt", []byte("alice"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/cfg/clothing.txt", []byte("dress"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/cfg/exclude.txt", []byte("nsfw"), 0o644))

	cfg := config.Default()
	cfg.ConfigDir = "/cfg"

	eng, err := NewEngine(cfg, fsys, utils.NoopLogger{}, &bytes.Buffer{})
	require.NoError(t, err)

	res := eng.Filter.Run("alice, dress, alice, nsfw, random", filter.AllEnabled(), filter.Options{})
	assert.Equal(t, "alice, dress, random", res.AllText())
	assert.Equal(t, []string{"character", "clothing", "expression", "custom1", "custom2"}, eng.Registry.Names())
	assert.Len(t, eng.Loader.Entries(), 3)
}

func TestNewEngine_RejectsBadCategories(t *testing.T) {
	cfg := config.Default()
	cfg.Categories = append(cfg.Categories, config.CategoryConfig{Name: "exclude"})

	_, err := NewEngine(cfg, afero.NewMemMapFs(), nil, nil)
	assert.Error(t, err)
}

func TestConfigureWalker(t *testing.T) {
	var infos []string
	infoLog := func(format string, args ...interface{}) { infos = append(infos, format) }

	matcher, opts, err := ConfigureWalker(WalkerConfig{
		RootDir:       t.TempDir(),
		Pattern:       "*.txt",
		IgnoreHidden:  true,
		MaxFileSizeKB: 4,
		Logger:        utils.NoopLogger{},
	}, infoLog)
	require.NoError(t, err)
	assert.NotNil(t, matcher)
	assert.Len(t, opts, 3)
	assert.Len(t, infos, 3)

	_, _, err = ConfigureWalker(WalkerConfig{RootDir: t.TempDir(), Pattern: "[", Logger: utils.NoopLogger{}}, infoLog)
	assert.Error(t, err)
}
