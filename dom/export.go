package dom

import (
	"io"
	"sort"

	"github.com/beevik/etree"
	"github.com/maruel/natural"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// WriteXML serializes tree as XML document. Text is written canonically, so
// markup characters in text and attribute values are escaped.
func WriteXML(w io.Writer, n Node) (int64, error) {
	doc := etree.NewDocument()
	doc.WriteSettings = etree.WriteSettings{
		CanonicalText:    true,
		CanonicalAttrVal: true,
	}
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	appendXML(&doc.Element, n)
	return doc.WriteTo(w)
}

func appendXML(parent *etree.Element, n Node) {
	switch v := n.(type) {
	case *Element:
		el := parent.CreateElement(v.TagName)
		for _, k := range sortedKeys(v.Attrs) {
			el.CreateAttr(k, v.Attrs[k])
		}
		for _, child := range v.Children {
			appendXML(el, child)
		}
	case *Text:
		parent.CreateText(v.Data)
	case *Comment:
		parent.CreateComment(v.Data)
	}
}

// Render writes tree as HTML. Text and attribute values are literal in the
// tree (the markup dialect has no entities), so HTML special characters in
// them are escaped: "a &amp; b" text becomes "a &amp;amp; b". Any HTML parser
// decodes output back to the same text and attribute values.
func Render(w io.Writer, n Node) error {
	return html.Render(w, toHTML(n))
}

func toHTML(n Node) *html.Node {
	switch v := n.(type) {
	case *Element:
		hn := &html.Node{
			Type:     html.ElementNode,
			Data:     v.TagName,
			DataAtom: atom.Lookup([]byte(v.TagName)),
		}
		for _, k := range sortedKeys(v.Attrs) {
			hn.Attr = append(hn.Attr, html.Attribute{Key: k, Val: v.Attrs[k]})
		}
		for _, child := range v.Children {
			hn.AppendChild(toHTML(child))
		}
		return hn
	case *Comment:
		return &html.Node{Type: html.CommentNode, Data: v.Data}
	case *Text:
		return &html.Node{Type: html.TextNode, Data: v.Data}
	}
	return &html.Node{Type: html.TextNode}
}

func sortedKeys(attrs AttrMap) []string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Sort(natural.StringSlice(keys))
	return keys
}
