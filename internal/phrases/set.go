// Package phrases loads comma/newline separated phrase lists from disk.
//
// A phrase list is stored as a Set of lowercased, trimmed phrases. Files are
// cached by modification time inside a Loader, so repeated invocations only
// pay for a stat call until the file is edited.
package phrases

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Set is an immutable set of phrases. The zero value is an empty set.
type Set struct {
	items  map[string]struct{}
	sorted []string
}

// NewSet builds a Set from phrases. Entries are folded to lower case;
// empty entries are dropped and duplicates collapse.
func NewSet(items ...string) Set {
	m := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = Fold(strings.TrimSpace(item))
		if item == "" {
			continue
		}
		m[item] = struct{}{}
	}
	return fromMap(m)
}

func fromMap(m map[string]struct{}) Set {
	sorted := make([]string, 0, len(m))
	for item := range m {
		sorted = append(sorted, item)
	}
	sort.Strings(sorted)
	return Set{items: m, sorted: sorted}
}

// Len returns the number of phrases
func (s Set) Len() int { return len(s.sorted) }

// Contains reports whether phrase is in the set. phrase must already be folded.
func (s Set) Contains(phrase string) bool {
	_, ok := s.items[phrase]
	return ok
}

// Items returns the phrases in lexical order. The slice must not be modified.
func (s Set) Items() []string { return s.sorted }

// Union returns a new set holding the phrases of both sets
func (s Set) Union(other Set) Set {
	if other.Len() == 0 {
		return s
	}
	if s.Len() == 0 {
		return other
	}
	m := make(map[string]struct{}, len(s.items)+len(other.items))
	for item := range s.items {
		m[item] = struct{}{}
	}
	for item := range other.items {
		m[item] = struct{}{}
	}
	return fromMap(m)
}

// Fold lowercases s using Unicode case mapping.
// A fresh Caser is used per call; cases.Caser is not safe for concurrent use.
func Fold(s string) string {
	return cases.Lower(language.Und).String(s)
}
