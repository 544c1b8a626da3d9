package scan

import (
	"errors"
	"fmt"
	"testing"
)

func TestCursor_ConsumeWhile(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		test    func(rune) bool
		want    string
		wantPos int
	}{
		{"names", "abc12 rest", IsNameChar, "abc12", 5},
		{"zero length", " abc", IsNameChar, "", 0},
		{"to end of input", "abc", IsNameChar, "abc", 3},
		{"empty input", "", IsNameChar, "", 0},
		{"multibyte", "жж<", func(r rune) bool { return r != '<' }, "жж", 4},
		{"identifiers", "main-col_2{", IsIdentChar, "main-col_2", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(tt.src)
			got := c.ConsumeWhile(tt.test)
			if got != tt.want {
				t.Errorf("ConsumeWhile() = %q, want %q", got, tt.want)
			}
			if c.Pos() != tt.wantPos {
				t.Errorf("Pos() = %d, want %d", c.Pos(), tt.wantPos)
			}
		})
	}
}

func TestCursor_PeekByte(t *testing.T) {
	c := NewCursor("-ж.5")
	tests := []struct {
		n    int
		want byte
	}{
		{0, '-'},
		{1, 0xd0}, // first byte of "ж"
		{3, '.'},
		{4, '5'},
		{5, 0},
	}
	for _, tt := range tests {
		if got := c.PeekByte(tt.n); got != tt.want {
			t.Errorf("PeekByte(%d) = %#x, want %#x", tt.n, got, tt.want)
		}
	}
	c.Next()
	if got := c.PeekByte(2); got != '.' {
		t.Errorf("PeekByte(2) after Next() = %q, want '.'", got)
	}
}

func TestCursor_SkipWhitespace(t *testing.T) {
	c := NewCursor(" \t\r\n\fx ")
	c.SkipWhitespace()
	if c.Peek() != 'x' {
		t.Fatalf("Peek() = %q, want 'x'", c.Peek())
	}
	c.Next()
	c.SkipWhitespace()
	if !c.EOF() {
		t.Error("expected end of input")
	}
	// never fails at the end
	c.SkipWhitespace()
}

func TestCursor_Expect(t *testing.T) {
	c := NewCursor("<!-- x")
	if err := c.Expect("<!--"); err != nil {
		t.Fatalf("Expect() error = %v", err)
	}
	if c.Pos() != 4 {
		t.Errorf("Pos() = %d, want 4", c.Pos())
	}

	err := c.Expect("-->")
	if err == nil {
		t.Fatal("expected error")
	}
	var pe *Error
	if !errors.As(err, &pe) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if pe.Kind != KindUnexpectedLiteral {
		t.Errorf("Kind = %v, want UnexpectedLiteral", pe.Kind)
	}
	if pe.Offset != 4 {
		t.Errorf("Offset = %d, want 4", pe.Offset)
	}
	if c.Pos() != 4 {
		t.Errorf("failed Expect moved cursor to %d", c.Pos())
	}
}

func TestCursor_ConsumeUntil(t *testing.T) {
	c := NewCursor("a - b --> tail")
	got, ok := c.ConsumeUntil("-->")
	if !ok || got != "a - b " {
		t.Errorf("ConsumeUntil() = %q, %v", got, ok)
	}
	if !c.StartsWith("-->") {
		t.Error("cursor should stop before literal")
	}

	c = NewCursor("no terminator")
	got, ok = c.ConsumeUntil("*/")
	if ok || got != "no terminator" || !c.EOF() {
		t.Errorf("ConsumeUntil() = %q, %v, eof %v", got, ok, c.EOF())
	}
}

func TestCursor_ConsumeQuoted(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		want    string
		wantErr bool
	}{
		{"double", `"main"`, "main", false},
		{"single", `'main'`, "main", false},
		{"other quote inside", `"it's"`, "it's", false},
		{"empty", `""`, "", false},
		{"unquoted", `main`, "", true},
		{"mismatched", `"1'`, "", true},
		{"end of input", ``, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewCursor(tt.src).ConsumeQuoted()
			if tt.wantErr {
				if !IsKind(err, KindMalformedAttributeValue) {
					t.Errorf("expected MalformedAttributeValue, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ConsumeQuoted() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ConsumeQuoted() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_Wrapping(t *testing.T) {
	err := fmt.Errorf("parsing page: %w", Errorf(KindTagMismatch, 7, "closing tag %q", "b"))

	if !IsKind(err, KindTagMismatch) {
		t.Error("IsKind() should see through wrapping")
	}
	if IsKind(err, KindUnexpectedLiteral) {
		t.Error("IsKind() matched wrong kind")
	}
	if !errors.Is(err, &Error{Kind: KindTagMismatch}) {
		t.Error("errors.Is() should match on kind")
	}
	if IsKind(errors.New("plain"), KindTagMismatch) {
		t.Error("IsKind() matched non parse error")
	}

	want := `TagMismatch at byte 7: closing tag "b"`
	if got := errors.Unwrap(err).Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestError_Position(t *testing.T) {
	src := "<a>\n  <b></c>\n</a>"
	e := Errorf(KindTagMismatch, 10, "mismatch")

	line, col, context := e.Position(src)
	if line != 2 {
		t.Errorf("line = %d, want 2", line)
	}
	if col != 7 {
		t.Errorf("col = %d, want 7", col)
	}
	if context == "" {
		t.Error("expected non-empty context")
	}
}

func TestKind_Names(t *testing.T) {
	for _, name := range KindNames() {
		k, err := ParseKind(name)
		if err != nil {
			t.Fatalf("ParseKind(%q) error = %v", name, err)
		}
		if k.String() != name {
			t.Errorf("String() = %q, want %q", k.String(), name)
		}
	}
	if _, err := ParseKind("Bogus"); !errors.Is(err, ErrInvalidKind) {
		t.Errorf("expected ErrInvalidKind, got %v", err)
	}
}
