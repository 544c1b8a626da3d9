package scan

import "strconv"

// IsWhitespace reports ASCII whitespace: space, tab, newline, carriage return
// and form feed.
func IsWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// IsNameChar reports characters allowed in tag and attribute names.
func IsNameChar(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}

// IsIdentChar reports characters allowed in style identifiers.
func IsIdentChar(r rune) bool {
	return IsNameChar(r) || r == '-' || r == '_'
}

// IsDigit reports ASCII decimal digits.
func IsDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// IsHexDigit reports ASCII hexadecimal digits.
func IsHexDigit(r rune) bool {
	return IsDigit(r) || r >= 'a' && r <= 'f' || r >= 'A' && r <= 'F'
}

func quoteRune(r rune) string {
	return strconv.QuoteRune(r)
}
