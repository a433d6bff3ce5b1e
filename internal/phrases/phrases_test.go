package phrases

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bethropolis/tag-filter/internal/utils"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func writeFile(t *testing.T, fsys afero.Fs, path, content string, mtime time.Time) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0o644))
	require.NoError(t, fsys.Chtimes(path, mtime, mtime))
}

func TestParse(t *testing.T) {
	t.Run("should split on commas, full-width commas and newlines", func(t *testing.T) {
		set := Parse("Alice, Bob\n\n carol ，dave,,\r\neve\n", ParseOptions{})
		assert.Equal(t, []string{"alice", "bob", "carol", "dave", "eve"}, set.Items())
	})

	t.Run("should collapse duplicates case-insensitively", func(t *testing.T) {
		set := Parse("Smile\nSMILE, smile", ParseOptions{})
		assert.Equal(t, []string{"smile"}, set.Items())
	})

	t.Run("should keep inner spaces of multi-word phrases", func(t *testing.T) {
		set := Parse("school uniform, long  hair", ParseOptions{})
		assert.True(t, set.Contains("school uniform"))
		assert.True(t, set.Contains("long  hair"))
	})

	t.Run("should strip quotes only when asked", func(t *testing.T) {
		content := `"maid", 'nurse'`
		assert.Equal(t, []string{`"maid"`, `'nurse'`}, Parse(content, ParseOptions{}).Items())
		assert.Equal(t, []string{"maid", "nurse"}, Parse(content, ParseOptions{TrimQuotes: true}).Items())
	})

	t.Run("should ignore a leading byte order mark", func(t *testing.T) {
		set := Parse("\ufeffalice", ParseOptions{})
		assert.Equal(t, []string{"alice"}, set.Items())
	})

	t.Run("should return an empty set for blank content", func(t *testing.T) {
		assert.Equal(t, 0, Parse(" \n , \n", ParseOptions{}).Len())
	})
}

func TestSet_Union(t *testing.T) {
	a := NewSet("alice", "bob")
	b := NewSet("Bob", "carol")

	u := a.Union(b)
	assert.Equal(t, []string{"alice", "bob", "carol"}, u.Items())
	assert.Equal(t, []string{"alice", "bob"}, a.Items(), "operands are not modified")

	var empty Set
	assert.Equal(t, a.Items(), empty.Union(a).Items())
	assert.False(t, empty.Contains("alice"))
}

func TestLoader_MissingFile(t *testing.T) {
	loader := NewLoader(WithFs(afero.NewMemMapFs()))

	res := loader.Load("/config/none.txt")
	assert.Equal(t, StatusMissing, res.Status)
	assert.NoError(t, res.Err)
	assert.Equal(t, 0, res.Phrases.Len())
	assert.Empty(t, loader.Entries())
}

func TestLoader_ModTimeInvalidation(t *testing.T) {
	fsys := afero.NewMemMapFs()
	path := "/config/character.txt"
	writeFile(t, fsys, path, "alice", baseTime)
	loader := NewLoader(WithFs(fsys))

	first := loader.Load(path)
	require.Equal(t, StatusLoaded, first.Status)
	assert.Equal(t, []string{"alice"}, first.Phrases.Items())

	t.Run("should serve the cache while the mtime is unchanged", func(t *testing.T) {
		writeFile(t, fsys, path, "bob", baseTime)
		res := loader.Load(path)
		assert.Equal(t, StatusCached, res.Status)
		assert.Equal(t, []string{"alice"}, res.Phrases.Items())
	})

	t.Run("should not reload when the mtime goes backwards", func(t *testing.T) {
		writeFile(t, fsys, path, "carol", baseTime.Add(-time.Hour))
		res := loader.Load(path)
		assert.Equal(t, StatusCached, res.Status)
		assert.Equal(t, []string{"alice"}, res.Phrases.Items())
	})

	t.Run("should reload once the mtime advances", func(t *testing.T) {
		writeFile(t, fsys, path, "dave", baseTime.Add(time.Second))
		res := loader.Load(path)
		assert.Equal(t, StatusLoaded, res.Status)
		assert.Equal(t, []string{"dave"}, res.Phrases.Items())

		entries := loader.Entries()
		require.Len(t, entries, 1)
		assert.Equal(t, baseTime.Add(time.Second), entries[0].LastModified.UTC())
	})

	t.Run("should re-read after Clear", func(t *testing.T) {
		writeFile(t, fsys, path, "eve", baseTime.Add(time.Second))
		loader.Clear()
		res := loader.Load(path)
		assert.Equal(t, StatusLoaded, res.Status)
		assert.Equal(t, []string{"eve"}, res.Phrases.Items())
	})
}

type brokenOpenFs struct{ afero.Fs }

func (b brokenOpenFs) Open(name string) (afero.File, error) {
	return nil, errors.New("permission denied")
}

func TestLoader_FailuresDegradeToEmpty(t *testing.T) {
	t.Run("should report a read error and warn", func(t *testing.T) {
		mem := afero.NewMemMapFs()
		writeFile(t, mem, "/config/exclude.txt", "nsfw", baseTime)
		rec := &utils.RecordingLogger{}
		loader := NewLoader(WithFs(brokenOpenFs{mem}), WithLogger(rec))

		res := loader.Load("/config/exclude.txt")
		assert.Equal(t, StatusFailed, res.Status)
		assert.EqualError(t, res.Err, "permission denied")
		assert.Equal(t, 0, res.Phrases.Len())

		lines := rec.Lines()
		require.Len(t, lines, 1)
		assert.True(t, strings.HasPrefix(lines[0], "WARN "), lines[0])
	})

	t.Run("should reject invalid UTF-8", func(t *testing.T) {
		mem := afero.NewMemMapFs()
		writeFile(t, mem, "/config/bad.txt", "ok,\xff\xfe", baseTime)
		loader := NewLoader(WithFs(mem))

		res := loader.Load("/config/bad.txt")
		assert.Equal(t, StatusFailed, res.Status)
		assert.ErrorIs(t, res.Err, ErrInvalidEncoding)
	})

	t.Run("should treat a directory as a failure", func(t *testing.T) {
		mem := afero.NewMemMapFs()
		require.NoError(t, mem.MkdirAll("/config/dir.txt", 0o755))
		loader := NewLoader(WithFs(mem))

		assert.Equal(t, StatusFailed, loader.Load("/config/dir.txt").Status)
	})
}

func TestLoader_TrimQuotesOption(t *testing.T) {
	mem := afero.NewMemMapFs()
	writeFile(t, mem, "/c.txt", `"alice"`, baseTime)
	loader := NewLoader(WithFs(mem), WithTrimQuotes(true))

	assert.Equal(t, []string{"alice"}, loader.Phrases("/c.txt").Items())
}

func TestLoader_ConcurrentLoadsShareOneEntry(t *testing.T) {
	mem := afero.NewMemMapFs()
	writeFile(t, mem, "/c.txt", "alice, bob", baseTime)
	loader := NewLoader(WithFs(mem))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, 2, loader.Phrases("/c.txt").Len())
		}()
	}
	wg.Wait()

	assert.Len(t, loader.Entries(), 1)
}
