// Package matcher decides which phrase categories a single tag belongs to.
//
// Matching is lexical: a phrase matches a tag when it occurs in the
// lowercased tag delimited by word boundaries, with the same meaning as the
// regular expression \b<phrase>\b. Go's regexp treats \b as ASCII-only, so
// the boundary test is implemented here over Unicode letters and digits.
package matcher

import (
	"github.com/bethropolis/tag-filter/internal/phrases"
)

// Category is a named phrase set to classify against
type Category struct {
	Name    string
	Phrases phrases.Set
}

// Result holds the classification of one tag
type Result struct {
	Tag string

	// Excluded is set when an exclude phrase matched; no category matching is done then.
	Excluded   bool
	ExcludedBy string

	// Exact and Substring list category names in the order the categories were given.
	// A category appears in at most one of them.
	Exact     []string
	Substring []string

	// Evidence maps each matched category to the phrase that matched.
	Evidence map[string]string
}

// Matched returns the union of Exact and Substring, in category order
func (r Result) Matched() []string {
	out := make([]string, 0, len(r.Exact)+len(r.Substring))
	out = append(out, r.Exact...)
	out = append(out, r.Substring...)
	return out
}

// HasMatch reports whether the tag matched any category
func (r Result) HasMatch() bool {
	return len(r.Exact) > 0 || len(r.Substring) > 0
}

// IsExact reports whether the tag matched category exactly
func (r Result) IsExact(category string) bool {
	for _, name := range r.Exact {
		if name == category {
			return true
		}
	}
	return false
}

// Classify matches tag against the exclude set and then every category.
// Categories are always all tested; whether a match is honoured is decided by the caller.
func Classify(tag string, exclude phrases.Set, categories []Category) Result {
	res := Result{Tag: tag}
	folded := phrases.Fold(tag)

	for _, phrase := range exclude.Items() {
		if _, ok := Search(folded, phrase); ok {
			res.Excluded = true
			res.ExcludedBy = phrase
			return res
		}
	}

	for _, cat := range categories {
		if cat.Phrases.Contains(folded) && FullMatch(folded, folded) {
			res.Exact = append(res.Exact, cat.Name)
			res.evidence(cat.Name, folded)
			continue
		}
		for _, phrase := range cat.Phrases.Items() {
			if _, ok := Search(folded, phrase); ok {
				res.Substring = append(res.Substring, cat.Name)
				res.evidence(cat.Name, phrase)
				break
			}
		}
	}
	return res
}

func (r *Result) evidence(category, phrase string) {
	if r.Evidence == nil {
		r.Evidence = make(map[string]string)
	}
	r.Evidence[category] = phrase
}
