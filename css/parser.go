package css

import (
	"math"
	"slices"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/strconv"
	"go.uber.org/zap"

	"mbr/scan"
)

// Parser parses style sheets into ranked rules.
type Parser struct {
	log         *zap.Logger
	namedColors bool
}

// Option configures Parser.
type Option func(*Parser)

// WithNamedColors makes parser turn keyword values naming a known color
// ("red", "navy") into Color values.
func WithNamedColors(enable bool) Option {
	return func(p *Parser) {
		p.namedColors = enable
	}
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger, opts ...Option) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Parser{log: log.Named("css")}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses text with default settings.
func Parse(text string) (*Stylesheet, error) {
	return NewParser(nil).Parse(text)
}

// ParseSelectors parses comma separated selector list with default settings.
func ParseSelectors(text string) ([]Selector, error) {
	return NewParser(nil).ParseSelectors(text)
}

// Parse parses CSS text into a Stylesheet. First malformed construct aborts
// parsing with *scan.Error.
func (p *Parser) Parse(text string) (*Stylesheet, error) {
	p.log.Debug("Parsing CSS", zap.Int("bytes", len(text)))

	st := &state{Cursor: scan.NewCursor(text), namedColors: p.namedColors}
	sheet := &Stylesheet{}
	for {
		if err := st.skipSpace(); err != nil {
			return nil, p.failed(err)
		}
		if st.EOF() {
			break
		}
		rule, err := st.parseRule()
		if err != nil {
			return nil, p.failed(err)
		}
		sheet.Rules = append(sheet.Rules, rule)
	}

	p.log.Debug("Parsed CSS", zap.Int("rules", len(sheet.Rules)))
	return sheet, nil
}

// ParseSelectors parses selector list taking whole text, e.g. "div, #main".
// Result is ordered by descending specificity.
func (p *Parser) ParseSelectors(text string) ([]Selector, error) {
	st := &state{Cursor: scan.NewCursor(text)}
	st.SkipWhitespace()
	sels, err := st.parseSelectors(true)
	if err != nil {
		return nil, p.failed(err)
	}
	return sels, nil
}

func (p *Parser) failed(err error) error {
	p.log.Debug("Unable to parse CSS", zap.Error(err))
	return err
}

// state is a single parse invocation.
type state struct {
	*scan.Cursor
	namedColors bool
}

// skipSpace skips whitespace and comments.
func (st *state) skipSpace() error {
	for {
		st.SkipWhitespace()
		if !st.StartsWith("/*") {
			return nil
		}
		start := st.Pos()
		st.Advance(2)
		if _, ok := st.ConsumeUntil("*/"); !ok {
			return scan.Errorf(scan.KindUnexpectedLiteral, start, "unterminated comment, expected %q", "*/")
		}
		st.Advance(2)
	}
}

func (st *state) parseRule() (Rule, error) {
	sels, err := st.parseSelectors(false)
	if err != nil {
		return Rule{}, err
	}
	decls, err := st.parseDeclarations()
	if err != nil {
		return Rule{}, err
	}
	return Rule{Selectors: sels, Declarations: decls}, nil
}

// parseSelectors parses comma separated simple selectors up to "{" (left
// unconsumed) or, when untilEOF is set, up to the end of input. Result is
// stable sorted by descending specificity.
func (st *state) parseSelectors(untilEOF bool) ([]Selector, error) {
	var sels []Selector
loop:
	for {
		start := st.Pos()
		sel, err := st.parseSimpleSelector()
		if err != nil {
			return nil, err
		}
		if st.Pos() == start {
			return nil, st.Errorf(scan.KindUnexpectedSelectorCharacter, "expected selector but found %s", st.Describe())
		}
		sels = append(sels, sel)

		st.SkipWhitespace()
		switch {
		case st.EOF() && untilEOF:
			break loop
		case st.EOF():
			return nil, st.Errorf(scan.KindUnexpectedSelectorCharacter, "unexpected end of input in selector list")
		case st.Peek() == ',':
			st.Next()
			st.SkipWhitespace()
		case st.Peek() == '{' && !untilEOF:
			break loop
		default:
			return nil, st.Errorf(scan.KindUnexpectedSelectorCharacter, "unexpected character %s in selector list", st.Describe())
		}
	}

	slices.SortStableFunc(sels, func(a, b Selector) int {
		return b.Specificity().Compare(a.Specificity())
	})
	return sels, nil
}

// parseSimpleSelector consumes selector components until something that
// cannot be part of a simple selector and returns what was collected.
func (st *state) parseSimpleSelector() (SimpleSelector, error) {
	var sel SimpleSelector
	for !st.EOF() {
		switch r := st.Peek(); {
		case r == '#':
			st.Next()
			id, err := st.parseIdentifier()
			if err != nil {
				return sel, err
			}
			sel.ID = id
		case r == '.':
			st.Next()
			class, err := st.parseIdentifier()
			if err != nil {
				return sel, err
			}
			sel.Class = append(sel.Class, class)
		case r == '*':
			// universal selector
			st.Next()
		case scan.IsIdentChar(r):
			sel.TagName = st.ConsumeWhile(scan.IsIdentChar)
		default:
			return sel, nil
		}
	}
	return sel, nil
}

func (st *state) parseIdentifier() (string, error) {
	id := st.ConsumeWhile(scan.IsIdentChar)
	if id == "" {
		return "", st.Errorf(scan.KindEmptyRequiredName, "expected identifier but found %s", st.Describe())
	}
	return id, nil
}

// parseDeclarations parses "{ name: value; ... }". Declarations are separated
// by semicolons or just by whitespace, trailing semicolon is optional.
func (st *state) parseDeclarations() ([]Declaration, error) {
	if err := st.Expect("{"); err != nil {
		return nil, err
	}
	var decls []Declaration
	for {
		if err := st.skipSpace(); err != nil {
			return nil, err
		}
		if st.EOF() {
			return nil, st.Errorf(scan.KindUnexpectedLiteral, "expected %q but found end of input", "}")
		}
		if st.Peek() == '}' {
			st.Next()
			return decls, nil
		}
		decl, err := st.parseDeclaration()
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)

		if err := st.skipSpace(); err != nil {
			return nil, err
		}
		if st.Peek() == ';' {
			st.Next()
		}
	}
}

func (st *state) parseDeclaration() (Declaration, error) {
	name, err := st.parseIdentifier()
	if err != nil {
		return Declaration{}, err
	}
	if err := st.skipSpace(); err != nil {
		return Declaration{}, err
	}
	if err := st.Expect(":"); err != nil {
		return Declaration{}, err
	}
	if err := st.skipSpace(); err != nil {
		return Declaration{}, err
	}
	value, err := st.parseValue()
	if err != nil {
		return Declaration{}, err
	}
	return Declaration{Name: name, Value: value}, nil
}

// parseValue dispatches on lookahead: number starts Length, "#" starts Color,
// anything else is Keyword.
func (st *state) parseValue() (Value, error) {
	switch r := st.Peek(); {
	case st.startsNumber():
		return st.parseLength()
	case r == '#':
		return st.parseColor()
	default:
		start := st.Pos()
		kw := st.ConsumeWhile(scan.IsIdentChar)
		if kw == "" {
			return nil, scan.Errorf(scan.KindMalformedValue, start, "expected value but found %s", st.Describe())
		}
		if st.namedColors {
			if c, ok := Keyword(kw).Color(); ok {
				return c, nil
			}
		}
		return Keyword(kw), nil
	}
}

// startsNumber reports digit, or "." / sign followed by digit.
func (st *state) startsNumber() bool {
	switch r := st.Peek(); {
	case scan.IsDigit(r):
		return true
	case r == '.':
		return isDigitByte(st.PeekByte(1))
	case r == '+' || r == '-':
		return isDigitByte(st.PeekByte(1)) || st.PeekByte(1) == '.' && isDigitByte(st.PeekByte(2))
	}
	return false
}

func isDigitByte(b byte) bool {
	return '0' <= b && b <= '9'
}

// parseLength parses number optionally followed by unit. Bare numbers are
// pixels.
func (st *state) parseLength() (Value, error) {
	start := st.Pos()
	rest := []byte(st.Rest())

	num, unitLen := parse.Dimension(rest)
	f, n := strconv.ParseFloat(rest[:num])
	if num == 0 || n != num {
		return nil, scan.Errorf(scan.KindMalformedValue, start, "malformed number")
	}
	if math.IsInf(float64(float32(f)), 0) {
		return nil, scan.Errorf(scan.KindMalformedValue, start, "number %s is out of range", rest[:num])
	}
	unit := UnitPx
	if unitLen > 0 {
		name := strings.ToLower(string(rest[num : num+unitLen]))
		u, err := ParseUnit(name)
		if err != nil {
			return nil, scan.Errorf(scan.KindMalformedValue, start+num, "unsupported unit %q", name)
		}
		unit = u
	}
	st.Advance(num + unitLen)
	if scan.IsIdentChar(st.Peek()) {
		return nil, st.Errorf(scan.KindMalformedValue, "unexpected character %s after length", st.Describe())
	}
	return Length{Magnitude: float32(f), Unit: unit}, nil
}

// parseColor parses "#rgb", "#rgba", "#rrggbb" or "#rrggbbaa".
func (st *state) parseColor() (Value, error) {
	start := st.Pos()
	st.Next()
	hex := st.ConsumeWhile(scan.IsIdentChar)
	c, ok := parseHexColor(hex)
	if !ok {
		return nil, scan.Errorf(scan.KindMalformedValue, start, "malformed color %q", "#"+hex)
	}
	return c, nil
}

func parseHexColor(hex string) (Color, bool) {
	for _, r := range hex {
		if !scan.IsHexDigit(r) {
			return Color{}, false
		}
	}
	c := Color{A: 0xff}
	switch len(hex) {
	case 3, 4:
		c.R, c.G, c.B = hexDigit(hex[0])*0x11, hexDigit(hex[1])*0x11, hexDigit(hex[2])*0x11
		if len(hex) == 4 {
			c.A = hexDigit(hex[3]) * 0x11
		}
	case 6, 8:
		c.R, c.G, c.B = hexByte(hex[0:2]), hexByte(hex[2:4]), hexByte(hex[4:6])
		if len(hex) == 8 {
			c.A = hexByte(hex[6:8])
		}
	default:
		return Color{}, false
	}
	return c, true
}

func hexByte(s string) uint8 {
	return hexDigit(s[0])<<4 | hexDigit(s[1])
}

func hexDigit(b byte) uint8 {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10
	}
	return 0
}
