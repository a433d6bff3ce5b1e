package matcher

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// isWordRune reports whether r counts as a word character for \b purposes:
// letters, digits and underscore, in any script.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// atBoundary reports whether a \b assertion holds at byte offset i of s.
func atBoundary(s string, i int) bool {
	before := false
	if i > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:i])
		before = isWordRune(r)
	}
	after := false
	if i < len(s) {
		r, _ := utf8.DecodeRuneInString(s[i:])
		after = isWordRune(r)
	}
	return before != after
}

// FullMatch reports whether `\b<phrase>\b` matches the whole of s.
func FullMatch(s, phrase string) bool {
	return phrase != "" && s == phrase && atBoundary(s, 0) && atBoundary(s, len(s))
}

// Search reports whether `\b<phrase>\b` matches anywhere in s, returning the
// byte offset of the first match.
func Search(s, phrase string) (int, bool) {
	if phrase == "" {
		return -1, false
	}
	for from := 0; from+len(phrase) <= len(s); {
		idx := strings.Index(s[from:], phrase)
		if idx < 0 {
			break
		}
		start := from + idx
		if atBoundary(s, start) && atBoundary(s, start+len(phrase)) {
			return start, true
		}
		_, size := utf8.DecodeRuneInString(s[start:])
		from = start + size
	}
	return -1, false
}
