package css

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

//go:generate go tool go-enum --names

// Unit of a length value.
// ENUM(px)
type Unit int

// Specificity ranks selectors: id count dominates class count, which
// dominates tag count.
type Specificity struct {
	ID    int
	Class int
	Tag   int
}

// Compare returns -1, 0 or 1 comparing s to o lexicographically.
func (s Specificity) Compare(o Specificity) int {
	switch {
	case s.ID != o.ID:
		return cmpInt(s.ID, o.ID)
	case s.Class != o.Class:
		return cmpInt(s.Class, o.Class)
	default:
		return cmpInt(s.Tag, o.Tag)
	}
}

func (s Specificity) String() string {
	return fmt.Sprintf("(%d,%d,%d)", s.ID, s.Class, s.Tag)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Selector is a closed set of selector forms. Only SimpleSelector exists now,
// combinators would be added as new variants.
type Selector interface {
	Specificity() Specificity
	String() string
	selector()
}

// SimpleSelector matches on at most one tag name, at most one id and any
// number of classes. Empty string means "not constrained", parser never
// produces empty names, so zero value is the universal selector.
type SimpleSelector struct {
	TagName string
	ID      string
	Class   []string // declaration order, duplicates kept
}

func (SimpleSelector) selector() {}

// Specificity is a pure function of selector fields.
func (s SimpleSelector) Specificity() Specificity {
	sp := Specificity{Class: len(s.Class)}
	if s.ID != "" {
		sp.ID = 1
	}
	if s.TagName != "" {
		sp.Tag = 1
	}
	return sp
}

// IsUniversal reports whether selector matches any element.
func (s SimpleSelector) IsUniversal() bool {
	return s.TagName == "" && s.ID == "" && len(s.Class) == 0
}

func (s SimpleSelector) String() string {
	if s.IsUniversal() {
		return "*"
	}
	var sb strings.Builder
	sb.WriteString(s.TagName)
	if s.ID != "" {
		sb.WriteByte('#')
		sb.WriteString(s.ID)
	}
	for _, c := range s.Class {
		sb.WriteByte('.')
		sb.WriteString(c)
	}
	return sb.String()
}

// Value is one of Keyword, Length or Color.
type Value interface {
	String() string
	value()
}

// Keyword is a bare identifier value (e.g. "block", "auto", "red").
type Keyword string

// Length is a number with unit.
type Length struct {
	Magnitude float32
	Unit      Unit
}

// Color is RGBA color, alpha 255 is opaque.
type Color struct {
	R, G, B, A uint8
}

func (Keyword) value() {}
func (Length) value()  {}
func (Color) value()   {}

func (k Keyword) String() string {
	return string(k)
}

func (l Length) String() string {
	return strconv.FormatFloat(float64(l.Magnitude), 'f', -1, 32) + l.Unit.String()
}

// ToPx returns length in pixels.
func (l Length) ToPx() float32 {
	switch l.Unit {
	case UnitPx:
		return l.Magnitude
	}
	return 0
}

func (c Color) String() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// Declaration is a single "name: value" pair.
type Declaration struct {
	Name  string
	Value Value
}

func (d Declaration) String() string {
	return d.Name + ": " + d.Value.String()
}

// Rule is a selector list with its declaration block. Selectors are ordered by
// descending specificity, equally specific ones keep source order.
type Rule struct {
	Selectors    []Selector
	Declarations []Declaration
}

// Declaration returns the last declaration with the given name.
func (r Rule) Declaration(name string) (Value, bool) {
	for i := len(r.Declarations) - 1; i >= 0; i-- {
		if r.Declarations[i].Name == name {
			return r.Declarations[i].Value, true
		}
	}
	return nil, false
}

// Stylesheet holds rules in source order.
type Stylesheet struct {
	Rules []Rule
}

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
// Output is accepted by the parser and parses back to an equal stylesheet.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i := range s.Rules {
		if i > 0 {
			n, err := io.WriteString(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
		n, err := writeRule(w, &s.Rules[i])
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// writeRule writes a single CSS rule to w.
func writeRule(w io.Writer, rule *Rule) (int, error) {
	sels := make([]string, 0, len(rule.Selectors))
	for _, sel := range rule.Selectors {
		sels = append(sels, sel.String())
	}

	var total int
	n, err := fmt.Fprintf(w, "%s {\n", strings.Join(sels, ", "))
	total += n
	if err != nil {
		return total, err
	}
	for _, d := range rule.Declarations {
		n, err = fmt.Fprintf(w, "  %s;\n", d)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}
