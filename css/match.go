package css

import (
	"slices"
	"strings"

	"golang.org/x/image/colornames"

	"mbr/dom"
)

// Matches reports whether element satisfies every component of the selector.
func (s SimpleSelector) Matches(el *dom.Element) bool {
	if s.TagName != "" && s.TagName != el.TagName {
		return false
	}
	if s.ID != "" {
		if id, ok := el.ID(); !ok || id != s.ID {
			return false
		}
	}
	for _, c := range s.Class {
		if !el.HasClass(c) {
			return false
		}
	}
	return true
}

// MatchedRule is a rule together with its most specific selector matching an
// element.
type MatchedRule struct {
	Specificity Specificity
	Selector    Selector
	Rule        *Rule
}

// MatchingRules returns rules having at least one selector matching el, most
// specific first. Rules of equal specificity keep source order. Declarations
// are not applied.
func (s *Stylesheet) MatchingRules(el *dom.Element) []MatchedRule {
	var matched []MatchedRule
	for i := range s.Rules {
		rule := &s.Rules[i]
		// selectors are pre-sorted, first match is the most specific one
		for _, sel := range rule.Selectors {
			if matches(sel, el) {
				matched = append(matched, MatchedRule{Specificity: sel.Specificity(), Selector: sel, Rule: rule})
				break
			}
		}
	}
	slices.SortStableFunc(matched, func(a, b MatchedRule) int {
		return b.Specificity.Compare(a.Specificity)
	})
	return matched
}

func matches(sel Selector, el *dom.Element) bool {
	switch v := sel.(type) {
	case SimpleSelector:
		return v.Matches(el)
	}
	return false
}

// Color resolves keyword naming a color ("red", "navy",
// "transparent"), case insensitively.
func (k Keyword) Color() (Color, bool) {
	name := strings.ToLower(string(k))
	if name == "transparent" {
		return Color{}, true
	}
	c, ok := colornames.Map[name]
	if !ok {
		return Color{}, false
	}
	return Color{R: c.R, G: c.G, B: c.B, A: c.A}, true
}
