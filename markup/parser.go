// Package markup implements single pass recursive descent parser turning
// markup text into document tree.
//
// Dialect is small: elements always have explicit matching
// closing tags, attribute values are always quoted, no entities, no void or
// self-closing elements.
package markup

import (
	"strings"

	"go.uber.org/zap"

	"mbr/dom"
	"mbr/scan"
)

// DefaultRootTag names synthetic element wrapping fragments with other than
// exactly one top-level node.
const DefaultRootTag = "html"

// Parser parses markup into document trees. It holds configuration only,
// every Parse call gets its own cursor so Parser may be shared.
type Parser struct {
	log     *zap.Logger
	rootTag string
}

// Option configures Parser.
type Option func(*Parser)

// WithRootTag changes name of the synthetic root element.
func WithRootTag(tag string) Option {
	return func(p *Parser) {
		if tag != "" {
			p.rootTag = tag
		}
	}
}

// NewParser creates a new markup parser.
func NewParser(log *zap.Logger, opts ...Option) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Parser{log: log.Named("markup"), rootTag: DefaultRootTag}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses source with default settings.
func Parse(source string) (dom.Node, error) {
	return NewParser(nil).Parse(source)
}

// Parse parses source into a tree. When source has exactly one top-level node
// it is returned directly, otherwise all top-level nodes are wrapped into
// synthetic root element. Any malformed input aborts parsing with *scan.Error,
// partial trees are never returned.
func (p *Parser) Parse(source string) (dom.Node, error) {
	p.log.Debug("Parsing markup", zap.Int("bytes", len(source)))

	st := &state{Cursor: scan.NewCursor(source)}
	nodes, err := st.parseNodes()
	if err == nil && !st.EOF() {
		// only a closing tag can stop top-level sibling list early
		err = st.Errorf(scan.KindUnexpectedLiteral, "unexpected closing tag at top level")
	}
	if err != nil {
		p.log.Debug("Unable to parse markup", zap.Error(err))
		return nil, err
	}

	if len(nodes) == 1 {
		return nodes[0], nil
	}
	p.log.Debug("Wrapping fragment", zap.String("root", p.rootTag), zap.Int("nodes", len(nodes)))
	return dom.NewElement(p.rootTag, nil, nodes), nil
}

// state is a single parse invocation.
type state struct {
	*scan.Cursor
}

// parseNodes parses sibling nodes up to the end of input or closing tag.
// Whitespace between siblings is dropped.
func (st *state) parseNodes() ([]dom.Node, error) {
	var nodes []dom.Node
	for {
		st.SkipWhitespace()
		if st.EOF() || st.StartsWith("</") {
			return nodes, nil
		}
		n, err := st.parseNode()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
}

// parseNode dispatches on lookahead. Comment opener shares "<" prefix with
// element and must be tested first.
func (st *state) parseNode() (dom.Node, error) {
	switch {
	case st.StartsWith("<!--"):
		return st.parseComment()
	case st.StartsWith("<"):
		return st.parseElement()
	default:
		return st.parseText(), nil
	}
}

func (st *state) parseComment() (dom.Node, error) {
	if err := st.Expect("<!--"); err != nil {
		return nil, err
	}
	st.SkipWhitespace()
	// body cannot contain "-", the first one must start "-->"
	data := st.ConsumeWhile(func(r rune) bool { return r != '-' })
	st.SkipWhitespace()
	if err := st.Expect("-->"); err != nil {
		return nil, err
	}
	return dom.NewComment(strings.TrimRightFunc(data, scan.IsWhitespace)), nil
}

func (st *state) parseText() dom.Node {
	return dom.NewText(st.ConsumeWhile(func(r rune) bool { return r != '<' }))
}

func (st *state) parseElement() (dom.Node, error) {
	if err := st.Expect("<"); err != nil {
		return nil, err
	}
	tag, err := st.parseName("tag")
	if err != nil {
		return nil, err
	}
	attrs, err := st.parseAttributes()
	if err != nil {
		return nil, err
	}
	if err := st.Expect(">"); err != nil {
		return nil, err
	}

	children, err := st.parseNodes()
	if err != nil {
		return nil, err
	}

	if err := st.Expect("</"); err != nil {
		return nil, err
	}
	start := st.Pos()
	if closing := st.ConsumeWhile(scan.IsNameChar); closing != tag {
		return nil, scan.Errorf(scan.KindTagMismatch, start, "closing tag %q does not match opening tag %q", closing, tag)
	}
	if err := st.Expect(">"); err != nil {
		return nil, err
	}
	return dom.NewElement(tag, attrs, children), nil
}

// parseName parses tag or attribute name.
func (st *state) parseName(what string) (string, error) {
	name := st.ConsumeWhile(scan.IsNameChar)
	if name == "" {
		return "", st.Errorf(scan.KindEmptyRequiredName, "expected %s name", what)
	}
	return name, nil
}

func (st *state) parseAttributes() (dom.AttrMap, error) {
	attrs := dom.AttrMap{}
	for {
		st.SkipWhitespace()
		if st.EOF() {
			return nil, st.Errorf(scan.KindUnexpectedLiteral, "expected %q but found end of input", ">")
		}
		if st.Peek() == '>' {
			return attrs, nil
		}
		name, value, err := st.parseAttr()
		if err != nil {
			return nil, err
		}
		attrs[name] = value
	}
}

func (st *state) parseAttr() (string, string, error) {
	name, err := st.parseName("attribute")
	if err != nil {
		return "", "", err
	}
	st.SkipWhitespace()
	if err := st.Expect("="); err != nil {
		return "", "", err
	}
	st.SkipWhitespace()
	value, err := st.ConsumeQuoted()
	if err != nil {
		return "", "", err
	}
	return name, value, nil
}
