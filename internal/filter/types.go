// Package filter classifies comma-separated tags into categories and decides
// which of them survive the current toggle state.
package filter

import (
	"fmt"
	"strings"

	"github.com/bethropolis/tag-filter/internal/matcher"
)

// Mode selects the output shape of a run
type Mode int

const (
	// ModeAggregate produces a single output of every kept tag
	ModeAggregate Mode = iota
	// ModeMulti produces an output per category, an other output and an aggregate
	ModeMulti
)

func (m Mode) String() string {
	switch m {
	case ModeAggregate:
		return "single"
	case ModeMulti:
		return "multi"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts "single"/"aggregate" or "multi" to a Mode
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "single", "aggregate":
		return ModeAggregate, nil
	case "multi", "multi-output":
		return ModeMulti, nil
	default:
		return ModeAggregate, fmt.Errorf("filter: unknown mode %q", s)
	}
}

// Reason explains the fate of a tag
type Reason string

const (
	ReasonKeptExact        Reason = "Kept (Exact Match)"
	ReasonKeptSubstring    Reason = "Kept (Substring Match)"
	ReasonKeptOther        Reason = "Kept (Unmatched, Other On)"
	ReasonExcluded         Reason = "Dropped (Exclude Phrase)"
	ReasonDisabledCategory Reason = "Dropped (Disabled Category)"
	ReasonUnmatched        Reason = "Dropped (Unmatched, Other Off)"
)

// Decision records how one unique input tag was classified and routed
type Decision struct {
	Tag    string
	Match  matcher.Result
	Kept   bool
	Reason Reason
	// Disabled lists the disabled categories that caused a drop
	Disabled []string
	// Routes lists the outputs the tag was appended to (category names or "other")
	Routes []string
}

// DroppedItem holds a tag that appears in no output and why
type DroppedItem struct {
	Tag    string `json:"tag" yaml:"tag"`
	Reason Reason `json:"reason" yaml:"reason"`
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// CategoryOutput is the output list of one category
type CategoryOutput struct {
	Name    string
	Enabled bool
	Tags    []string
}

// Text renders the category output
func (c CategoryOutput) Text() string { return Join(c.Tags) }

// Result is the outcome of one run
type Result struct {
	Mode      Mode
	Toggles   Toggles
	Tags      []string // unique input tags in order
	All       []string
	Decisions []Decision

	// Categories and Other are filled in ModeMulti only
	Categories []CategoryOutput
	Other      []string
}

// AllText renders the aggregate output
func (r *Result) AllText() string { return Join(r.All) }

// OtherText renders the other output
func (r *Result) OtherText() string { return Join(r.Other) }

// Category returns the output of the named category
func (r *Result) Category(name string) (CategoryOutput, bool) {
	for _, c := range r.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return CategoryOutput{}, false
}

// Dropped lists the tags that were not kept, in input order
func (r *Result) Dropped() []DroppedItem {
	var out []DroppedItem
	for _, d := range r.Decisions {
		if d.Kept {
			continue
		}
		item := DroppedItem{Tag: d.Tag, Reason: d.Reason}
		switch d.Reason {
		case ReasonExcluded:
			item.Detail = d.Match.ExcludedBy
		case ReasonDisabledCategory:
			item.Detail = strings.Join(d.Disabled, ", ")
		}
		out = append(out, item)
	}
	return out
}

// Kept reports how many unique tags survived
func (r *Result) Kept() int {
	n := 0
	for _, d := range r.Decisions {
		if d.Kept {
			n++
		}
	}
	return n
}
