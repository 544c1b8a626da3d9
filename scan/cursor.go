// Package scan provides lexical primitives shared by the markup and style
// parsers: a cursor over immutable source text, character classes and typed
// parse errors.
package scan

import (
	"strings"
	"unicode/utf8"
)

// Cursor is a read position inside immutable source text. Position only moves
// forward. Cursor is not safe for concurrent use, every parse call owns its own.
type Cursor struct {
	src string
	pos int
}

// NewCursor returns cursor positioned at the start of src.
func NewCursor(src string) *Cursor {
	return &Cursor{src: src}
}

// Source returns complete text cursor is moving over.
func (c *Cursor) Source() string {
	return c.src
}

// Pos returns current byte offset.
func (c *Cursor) Pos() int {
	return c.pos
}

// EOF reports whether all input has been consumed.
func (c *Cursor) EOF() bool {
	return c.pos >= len(c.src)
}

// Peek returns next character without consuming it, utf8.RuneError at the end
// of input.
func (c *Cursor) Peek() rune {
	if c.EOF() {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(c.src[c.pos:])
	return r
}

// PeekByte returns byte n bytes ahead of the current position or 0 past the
// end of input. It is meant for ASCII lookahead: a byte inside multibyte
// character never equals an ASCII one.
func (c *Cursor) PeekByte(n int) byte {
	if c.pos+n >= len(c.src) {
		return 0
	}
	return c.src[c.pos+n]
}

// StartsWith reports whether remaining input begins with s.
func (c *Cursor) StartsWith(s string) bool {
	return strings.HasPrefix(c.src[c.pos:], s)
}

// Next consumes and returns current character.
func (c *Cursor) Next() rune {
	if c.EOF() {
		return utf8.RuneError
	}
	r, size := utf8.DecodeRuneInString(c.src[c.pos:])
	c.pos += size
	return r
}

// Rest returns unconsumed input.
func (c *Cursor) Rest() string {
	return c.src[c.pos:]
}

// Advance moves position n bytes forward, never past the end of input. Caller
// is responsible for landing on a character boundary.
func (c *Cursor) Advance(n int) {
	c.pos = min(c.pos+max(n, 0), len(c.src))
}

// ConsumeWhile consumes the maximal run of characters satisfying test. It stops
// at the end of input or at the first character test rejects and never fails.
func (c *Cursor) ConsumeWhile(test func(rune) bool) string {
	start := c.pos
	for !c.EOF() {
		r, size := utf8.DecodeRuneInString(c.src[c.pos:])
		if !test(r) {
			break
		}
		c.pos += size
	}
	return c.src[start:c.pos]
}

// ConsumeUntil consumes everything up to (not including) lit or up to the end
// of input when lit never occurs. Returns consumed text and whether lit was
// found.
func (c *Cursor) ConsumeUntil(lit string) (string, bool) {
	start := c.pos
	idx := strings.Index(c.src[c.pos:], lit)
	if idx < 0 {
		c.pos = len(c.src)
		return c.src[start:], false
	}
	c.pos += idx
	return c.src[start:c.pos], true
}

// SkipWhitespace consumes run of whitespace characters.
func (c *Cursor) SkipWhitespace() {
	c.ConsumeWhile(IsWhitespace)
}

// Expect consumes literal lit or returns UnexpectedLiteral error leaving
// position untouched.
func (c *Cursor) Expect(lit string) error {
	if !c.StartsWith(lit) {
		return c.Errorf(KindUnexpectedLiteral, "expected %q but found %s", lit, c.Describe())
	}
	c.pos += len(lit)
	return nil
}

// ConsumeQuoted consumes quoted string: opening quote (either " or '), a run
// of characters up to the same quote and the closing quote. Escapes are not
// supported. Returns text between quotes.
func (c *Cursor) ConsumeQuoted() (string, error) {
	start := c.pos
	open := c.Peek()
	if c.EOF() || (open != '"' && open != '\'') {
		return "", c.Errorf(KindMalformedAttributeValue, "expected opening quote but found %s", c.Describe())
	}
	c.Next()
	value := c.ConsumeWhile(func(r rune) bool { return r != open })
	if c.EOF() {
		return "", Errorf(KindMalformedAttributeValue, start, "unterminated quoted value, missing closing %q", open)
	}
	c.Next()
	return value, nil
}

// Errorf creates parse error of the given kind at the current position.
func (c *Cursor) Errorf(kind Kind, format string, args ...any) *Error {
	return Errorf(kind, c.pos, format, args...)
}

// Describe names what is under the cursor for error messages.
func (c *Cursor) Describe() string {
	if c.EOF() {
		return "end of input"
	}
	return quoteRune(c.Peek())
}
