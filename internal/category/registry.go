// Package category maps category names to their phrase files.
package category

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/bethropolis/tag-filter/internal/matcher"
	"github.com/bethropolis/tag-filter/internal/phrases"
)

// ErrUnknownCategory is returned for a category name the registry does not hold
var ErrUnknownCategory = errors.New("category: unknown category")

// Reserved names cannot be used for user categories
const (
	Exclude = "exclude"
	Other   = "other"
	All     = "all"
)

// DefaultNames are the categories used when none are configured
var DefaultNames = []string{"character", "clothing", "expression", "custom1", "custom2"}

// Category is one configured category and the file holding its phrases
type Category struct {
	Name string
	Path string
}

// DefaultCategories returns the five default categories with files named <name>.txt in dir
func DefaultCategories(dir string) []Category {
	cats := make([]Category, 0, len(DefaultNames))
	for _, name := range DefaultNames {
		cats = append(cats, Category{Name: name, Path: filepath.Join(dir, name+".txt")})
	}
	return cats
}

// Registry resolves phrase sets for an ordered list of categories.
// Every category set is the union of the shared defaults file and its own file.
type Registry struct {
	loader      *phrases.Loader
	defaultPath string
	excludePath string
	categories  []Category
	index       map[string]int
}

// NewRegistry creates a Registry. Category names must be unique and not reserved.
func NewRegistry(loader *phrases.Loader, defaultPath, excludePath string, categories []Category) (*Registry, error) {
	r := &Registry{
		loader:      loader,
		defaultPath: defaultPath,
		excludePath: excludePath,
		categories:  make([]Category, 0, len(categories)),
		index:       make(map[string]int, len(categories)),
	}
	for _, cat := range categories {
		if err := ValidateName(cat.Name); err != nil {
			return nil, err
		}
		if _, dup := r.index[cat.Name]; dup {
			return nil, fmt.Errorf("category: duplicate category %q", cat.Name)
		}
		r.index[cat.Name] = len(r.categories)
		r.categories = append(r.categories, cat)
	}
	return r, nil
}

// ValidateName checks that name can be used for a user category
func ValidateName(name string) error {
	switch name {
	case "":
		return errors.New("category: empty category name")
	case Exclude, Other, All:
		return fmt.Errorf("category: %q is a reserved name", name)
	}
	return nil
}

// Names returns the category names in configured order
func (r *Registry) Names() []string {
	names := make([]string, len(r.categories))
	for i, cat := range r.categories {
		names[i] = cat.Name
	}
	return names
}

// Categories returns the configured categories in order
func (r *Registry) Categories() []Category {
	out := make([]Category, len(r.categories))
	copy(out, r.categories)
	return out
}

// Has reports whether name is a configured category
func (r *Registry) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// FeaturesFor returns the defaults set combined with the category's own set.
// A missing category file degrades to the defaults set alone.
func (r *Registry) FeaturesFor(name string) (phrases.Set, error) {
	i, ok := r.index[name]
	if !ok {
		return phrases.Set{}, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}
	return r.defaults().Union(r.loader.Phrases(r.categories[i].Path)), nil
}

// All resolves every category's phrase set, in order
func (r *Registry) All() []matcher.Category {
	defaults := r.defaults()
	out := make([]matcher.Category, len(r.categories))
	for i, cat := range r.categories {
		out[i] = matcher.Category{
			Name:    cat.Name,
			Phrases: defaults.Union(r.loader.Phrases(cat.Path)),
		}
	}
	return out
}

// ExcludeSet returns the exclude phrases. The defaults file is not merged in.
func (r *Registry) ExcludeSet() phrases.Set {
	if r.excludePath == "" {
		return phrases.Set{}
	}
	return r.loader.Phrases(r.excludePath)
}

// Status loads every configured file and reports its result, defaults first and exclude last.
func (r *Registry) Status() []phrases.LoadResult {
	out := make([]phrases.LoadResult, 0, len(r.categories)+2)
	if r.defaultPath != "" {
		out = append(out, r.loader.Load(r.defaultPath))
	}
	for _, cat := range r.categories {
		out = append(out, r.loader.Load(cat.Path))
	}
	if r.excludePath != "" {
		out = append(out, r.loader.Load(r.excludePath))
	}
	return out
}

func (r *Registry) defaults() phrases.Set {
	if r.defaultPath == "" {
		return phrases.Set{}
	}
	return r.loader.Phrases(r.defaultPath)
}
