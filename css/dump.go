package css

import (
	"mbr/utils/debug"
)

// Dump returns indented human readable representation of the stylesheet:
// rules in source order, selectors with their specificity, then declarations
// with value kinds.
func Dump(s *Stylesheet) string {
	tw := debug.NewTreeWriter()
	for i, r := range s.Rules {
		tw.Line(0, "rule %d", i+1)
		for _, sel := range r.Selectors {
			tw.Line(1, "selector %s %s", sel, sel.Specificity())
		}
		for _, d := range r.Declarations {
			tw.Line(1, "%s: %s (%s)", d.Name, d.Value, valueKind(d.Value))
		}
	}
	return tw.String()
}
