package phrases

import (
	"strings"
)

const byteOrderMark = "\ufeff"

// ParseOptions controls how file content is split into phrases
type ParseOptions struct {
	// TrimQuotes strips surrounding ' and " characters from every phrase
	TrimQuotes bool
}

// Parse splits content on runs of commas (ASCII or full-width) and newlines.
// Content is lowercased first; pieces are trimmed and empty pieces dropped.
func Parse(content string, opts ParseOptions) Set {
	content = Fold(strings.TrimPrefix(content, byteOrderMark))

	pieces := strings.FieldsFunc(content, isPhraseSeparator)
	m := make(map[string]struct{}, len(pieces))
	for _, piece := range pieces {
		piece = strings.TrimSpace(piece)
		if opts.TrimQuotes {
			piece = strings.TrimSpace(strings.Trim(piece, `"'`))
		}
		if piece == "" {
			continue
		}
		m[piece] = struct{}{}
	}
	return fromMap(m)
}

func isPhraseSeparator(r rune) bool {
	return r == ',' || r == '，' || r == '\n'
}
