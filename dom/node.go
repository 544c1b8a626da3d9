// Package dom defines document tree produced by markup parser.
package dom

import "strings"

//go:generate go tool go-enum --names

// NodeKind identifies concrete node variant.
// ENUM(text, comment, element)
type NodeKind int

// AttrMap holds element attributes. Keys are unique, parser keeps the last
// value written for a repeated attribute.
type AttrMap map[string]string

// Node is one of *Text, *Comment or *Element. The set is closed, consumers
// switch on concrete type (or Kind) exhaustively.
type Node interface {
	Kind() NodeKind
	node()
}

// Text is a run of character data kept verbatim.
type Text struct {
	Data string
}

// Comment holds comment text with surrounding whitespace removed.
type Comment struct {
	Data string
}

// Element owns its attributes and children exclusively, nodes are never
// shared between parents.
type Element struct {
	TagName  string
	Attrs    AttrMap
	Children []Node
}

func (*Text) Kind() NodeKind    { return NodeKindText }
func (*Comment) Kind() NodeKind { return NodeKindComment }
func (*Element) Kind() NodeKind { return NodeKindElement }

func (*Text) node()    {}
func (*Comment) node() {}
func (*Element) node() {}

// NewText creates text node.
func NewText(data string) *Text {
	return &Text{Data: data}
}

// NewComment creates comment node.
func NewComment(data string) *Comment {
	return &Comment{Data: data}
}

// NewElement creates element node. Nothing is validated here, well-formedness
// is the parser's business.
func NewElement(tag string, attrs AttrMap, children []Node) *Element {
	if attrs == nil {
		attrs = AttrMap{}
	}
	return &Element{TagName: tag, Attrs: attrs, Children: children}
}

// ID returns value of "id" attribute.
func (e *Element) ID() (string, bool) {
	id, ok := e.Attrs["id"]
	return id, ok
}

// Classes returns whitespace separated names from "class" attribute.
func (e *Element) Classes() []string {
	if cls, ok := e.Attrs["class"]; ok {
		return strings.Fields(cls)
	}
	return nil
}

// HasClass reports whether element carries class name.
func (e *Element) HasClass(name string) bool {
	for _, c := range e.Classes() {
		if c == name {
			return true
		}
	}
	return false
}

// Walk visits n and all its descendants depth first, parents before children.
// Returning false from fn skips subtree of the node.
func Walk(n Node, fn func(n Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n Node, depth int, fn func(Node, int) bool) {
	if !fn(n, depth) {
		return
	}
	if el, ok := n.(*Element); ok {
		for _, child := range el.Children {
			walk(child, depth+1, fn)
		}
	}
}
