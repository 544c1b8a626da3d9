package scan

import (
	"errors"
	"fmt"
	"strings"

	parse "github.com/tdewolff/parse/v2"
)

//go:generate go tool go-enum --names

// Kind classifies parse failures.
// ENUM(UnexpectedLiteral, TagMismatch, MalformedAttributeValue, EmptyRequiredName, UnexpectedSelectorCharacter, MalformedValue)
type Kind int

// Error is a fatal parse failure. Parsing never continues past the first one
// and no partial result is returned alongside it.
type Error struct {
	Kind   Kind
	Offset int // byte offset into the source
	Msg    string
}

// Errorf creates parse error of the given kind at byte offset.
func Errorf(kind Kind, offset int, format string, args ...any) *Error {
	return &Error{Kind: kind, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at byte %d: %s", e.Kind, e.Offset, e.Msg)
}

// Is allows errors.Is(err, &scan.Error{Kind: ...}) to match on kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Position converts error offset into 1-based line and column inside src and
// returns the offending source line for display.
func (e *Error) Position(src string) (line, col int, context string) {
	offset := min(max(e.Offset, 0), len(src))
	return parse.Position(strings.NewReader(src), offset)
}

// IsKind reports whether err (or anything it wraps) is a parse error of the
// given kind.
func IsKind(err error, kind Kind) bool {
	return errors.Is(err, &Error{Kind: kind})
}
