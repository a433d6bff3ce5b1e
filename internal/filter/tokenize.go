package filter

import "strings"

// Separator joins tags in rendered outputs
const Separator = ", "

// SplitTags splits text on runs of ASCII or full-width commas, trims each
// piece, drops empty pieces and removes duplicates keeping the first occurrence.
// Identity is case-sensitive: "Alice" and "alice" are different tags.
func SplitTags(text string) []string {
	pieces := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '，'
	})
	tags := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		if piece = strings.TrimSpace(piece); piece != "" {
			tags = append(tags, piece)
		}
	}
	return Dedupe(tags)
}

// Dedupe removes repeated entries, keeping first-occurrence order
func Dedupe(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// Join renders tags as a comma-plus-space separated string
func Join(tags []string) string {
	return strings.Join(tags, Separator)
}
