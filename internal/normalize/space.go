package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Spaces replaces every Unicode space separator (U+00A0, U+2009, ...) with an
// ASCII space. Line breaks and tabs are left alone.
func Spaces(s string) string {
	if !strings.ContainsFunc(s, isWideSpace) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if isWideSpace(r) {
			return ' '
		}
		return r
	}, s)
}

func isWideSpace(r rune) bool {
	return r >= utf8.RuneSelf && unicode.Is(unicode.Zs, r)
}
