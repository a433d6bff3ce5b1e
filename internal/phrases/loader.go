package phrases

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/bethropolis/tag-filter/internal/utils"
	"github.com/spf13/afero"
)

// ErrInvalidEncoding is reported when a phrase file is not valid UTF-8
var ErrInvalidEncoding = errors.New("phrases: file is not valid UTF-8")

// LoadStatus describes where the phrases of a LoadResult came from
type LoadStatus int

const (
	// StatusLoaded means the file was read and parsed by this call
	StatusLoaded LoadStatus = iota
	// StatusCached means the file was unchanged and the cached set was returned
	StatusCached
	// StatusMissing means the file does not exist; the set is empty
	StatusMissing
	// StatusFailed means the file exists but could not be read; the set is empty
	StatusFailed
)

func (s LoadStatus) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusCached:
		return "cached"
	case StatusMissing:
		return "missing"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("LoadStatus(%d)", int(s))
	}
}

// LoadResult is the outcome of loading one phrase file
type LoadResult struct {
	Path    string
	Phrases Set
	Status  LoadStatus
	Err     error // set only when Status is StatusFailed
}

// CacheEntry is the cached state of one phrase file
type CacheEntry struct {
	Path         string
	LastModified time.Time
	Phrases      Set
}

// Loader reads phrase files and caches them by modification time
type Loader struct {
	fs      afero.Fs
	logger  utils.Logger
	parse   ParseOptions
	mu      sync.Mutex
	entries map[string]*CacheEntry
}

// Option configures a Loader
type Option func(*Loader)

// WithFs sets the filesystem phrase files are read from
func WithFs(fsys afero.Fs) Option {
	return func(l *Loader) {
		if fsys != nil {
			l.fs = fsys
		}
	}
}

// WithLogger sets the logger used for load and warning messages
func WithLogger(logger utils.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithTrimQuotes strips surrounding quotes from parsed phrases
func WithTrimQuotes(enabled bool) Option {
	return func(l *Loader) {
		l.parse.TrimQuotes = enabled
	}
}

// NewLoader creates a Loader reading from the OS filesystem by default
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		fs:      afero.NewOsFs(),
		logger:  utils.NoopLogger{},
		entries: make(map[string]*CacheEntry),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Phrases returns the phrase set stored in path, or an empty set if the
// file is missing or unreadable.
func (l *Loader) Phrases(path string) Set {
	return l.Load(path).Phrases
}

// Load returns the phrase set stored in path. The file is re-read only when
// its modification time is strictly later than the one recorded at the last
// successful load. Failures are logged and reported in the result, never returned.
func (l *Loader) Load(path string) LoadResult {
	path = filepath.Clean(path)

	l.mu.Lock()
	defer l.mu.Unlock()

	info, err := l.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err) {
			return LoadResult{Path: path, Status: StatusMissing}
		}
		return l.fail(path, err)
	}
	if info.IsDir() {
		return l.fail(path, fmt.Errorf("phrases: %s is a directory", path))
	}

	modTime := info.ModTime()
	if entry, ok := l.entries[path]; ok && !modTime.After(entry.LastModified) {
		return LoadResult{Path: path, Phrases: entry.Phrases, Status: StatusCached}
	}

	content, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return l.fail(path, err)
	}
	if !utf8.Valid(content) {
		return l.fail(path, ErrInvalidEncoding)
	}

	set := Parse(string(content), l.parse)
	l.entries[path] = &CacheEntry{Path: path, LastModified: modTime, Phrases: set}
	l.logger.Info("loaded %d phrases from %s", set.Len(), path)

	return LoadResult{Path: path, Phrases: set, Status: StatusLoaded}
}

func (l *Loader) fail(path string, err error) LoadResult {
	l.logger.Warn("failed to load phrase file %s: %v", path, err)
	return LoadResult{Path: path, Status: StatusFailed, Err: err}
}

// Entries returns a snapshot of the cache ordered by path
func (l *Loader) Entries() []CacheEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]CacheEntry, 0, len(l.entries))
	for _, entry := range l.entries {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Clear drops every cache entry; the next Load of each path re-reads the file.
func (l *Loader) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = make(map[string]*CacheEntry)
}
