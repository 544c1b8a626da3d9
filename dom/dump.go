package dom

import (
	"mbr/utils/debug"
)

// Dump returns indented human readable representation of the tree: one line
// per node, attributes in natural order under their element.
func Dump(n Node) string {
	tw := debug.NewTreeWriter()
	Walk(n, func(n Node, depth int) bool {
		switch v := n.(type) {
		case *Element:
			tw.Line(depth, "<%s>", v.TagName)
			tw.Attrs(depth+1, v.Attrs)
		case *Text:
			tw.TextBlock(depth, "text", v.Data)
		case *Comment:
			tw.TextBlock(depth, "comment", v.Data)
		}
		return true
	})
	return tw.String()
}
