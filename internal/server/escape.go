package server

import (
	"strconv"
	"strings"
	"unicode"
)

// escapeEntities replaces every rune matching escape with a numeric
// character reference.
func escapeEntities(s string, escape func(rune) bool) string {
	if strings.IndexFunc(s, escape) < 0 {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if escape(r) {
			b.WriteString("&#")
			b.WriteString(strconv.Itoa(int(r)))
			b.WriteByte(';')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isMarkup(r rune) bool {
	switch r {
	case '&', '<', '>', '"', '\'':
		return true
	}
	return false
}

// escapeHTML escapes text content. Whitespace becomes &nbsp; so names keep
// their spacing.
func escapeHTML(s string) string {
	s = escapeEntities(s, isMarkup)
	if strings.IndexFunc(s, unicode.IsSpace) < 0 {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) {
			b.WriteString("&nbsp;")
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// escapeAttr escapes a double-quoted attribute value. Whitespace is kept as
// a reference so the value survives unchanged.
func escapeAttr(s string) string {
	return escapeEntities(s, func(r rune) bool {
		return isMarkup(r) || unicode.IsSpace(r)
	})
}
