package filter

import (
	"fmt"
	"strings"
)

// Toggles is the per-invocation switch state
type Toggles struct {
	// Categories maps category name to enabled. Categories absent from the map are enabled.
	Categories map[string]bool
	// Exclude enables the exclude list
	Exclude bool
	// Other keeps tags that match no category
	Other bool
}

// AllEnabled returns toggles with every category, exclude and other switched on
func AllEnabled() Toggles {
	return Toggles{Categories: map[string]bool{}, Exclude: true, Other: true}
}

// Enabled reports whether matches on the named category are honoured
func (t Toggles) Enabled(name string) bool {
	enabled, ok := t.Categories[name]
	return !ok || enabled
}

// Set switches a category on or off and returns the toggles
func (t Toggles) Set(name string, enabled bool) Toggles {
	cats := make(map[string]bool, len(t.Categories)+1)
	for k, v := range t.Categories {
		cats[k] = v
	}
	cats[name] = enabled
	t.Categories = cats
	return t
}

// Describe renders the toggle state for the given categories, e.g. "character=on clothing=off exclude=on other=on"
func (t Toggles) Describe(names []string) string {
	parts := make([]string, 0, len(names)+2)
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%s", name, onOff(t.Enabled(name))))
	}
	parts = append(parts, "exclude="+onOff(t.Exclude), "other="+onOff(t.Other))
	return strings.Join(parts, " ")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
