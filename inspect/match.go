package inspect

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"mbr/common"
	"mbr/css"
	"mbr/dom"
	"mbr/load"
	"mbr/markup"
	"mbr/state"
	"mbr/utils/debug"
)

// Match parses markup inputs and lists for every element rules of the
// stylesheet having selector which matches it, most specific first.
// Declarations are not applied.
func Match(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	r, err := newRunner(ctx, cmd, common.OutputFmtTree, env.Cfg.Input.MarkupExtensions)
	if err != nil {
		return err
	}
	if !r.format.ForMatching() {
		return fmt.Errorf("output format %s is not supported for matching", r.format)
	}

	styles := cmd.String("css")
	if len(styles) == 0 {
		return errors.New("no stylesheet has been specified")
	}
	sheet, err := r.loadStylesheet(ctx, styles)
	if err != nil {
		return fmt.Errorf("unable to load stylesheet: %w", err)
	}
	return r.run(ctx, matchDocument(env.MarkupParser(), sheet, r.format, r.log))
}

// loadStylesheet combines rules of all stylesheets found under src in the
// order they were loaded.
func (r *runner) loadStylesheet(ctx context.Context, src string) (*css.Stylesheet, error) {
	src, err := filepath.Abs(src)
	if err != nil {
		return nil, err
	}

	loader := load.New(r.env.Log, load.WithExtensions(r.env.Cfg.Input.StyleExtensions...), load.WithEncoding(r.env.Encoding))
	p := r.env.StyleParser()

	sheet := &css.Stylesheet{}
	err = loader.Walk(ctx, src, func(_ context.Context, in *load.Input) error {
		r.env.Rpt.StoreData(path.Join("style", in.Name), in.Raw)

		s, err := p.Parse(in.Text)
		if err != nil {
			return r.failed(in, err)
		}
		sheet.Rules = append(sheet.Rules, s.Rules...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.log.Debug("Stylesheet loaded", zap.String("source", src), zap.Int("rules", len(sheet.Rules)))
	return sheet, nil
}

func matchDocument(p *markup.Parser, sheet *css.Stylesheet, format common.OutputFmt, log *zap.Logger) processFunc {
	return func(_ context.Context, in *load.Input) ([]byte, error) {
		doc, err := p.Parse(in.Text)
		if err != nil {
			return nil, err
		}
		matches := collectMatches(doc, sheet)
		log.Debug("Document matched", zap.String("name", in.Name), zap.Int("elements", len(matches)))

		if format == common.OutputFmtYaml {
			return matchesYAML(matches)
		}
		return []byte(matchesTree(doc, matches)), nil
	}
}

type elementMatch struct {
	el    *dom.Element
	path  []string
	rules []css.MatchedRule
}

// collectMatches returns matched elements in document order.
func collectMatches(doc dom.Node, sheet *css.Stylesheet) []elementMatch {
	var (
		out   []elementMatch
		stack []string
	)
	dom.Walk(doc, func(n dom.Node, depth int) bool {
		el, ok := n.(*dom.Element)
		if !ok {
			return true
		}
		stack = append(stack[:depth], elementLabel(el))
		out = append(out, elementMatch{
			el:    el,
			path:  append([]string(nil), stack...),
			rules: sheet.MatchingRules(el),
		})
		return true
	})
	return out
}

// elementLabel writes element the way selector matching it exactly would
// look like: tag, id and classes.
func elementLabel(el *dom.Element) string {
	sel := css.SimpleSelector{TagName: el.TagName, Class: el.Classes()}
	sel.ID, _ = el.ID()
	return sel.String()
}

func declarations(r *css.Rule) string {
	parts := make([]string, 0, len(r.Declarations))
	for _, d := range r.Declarations {
		parts = append(parts, d.String())
	}
	return strings.Join(parts, "; ")
}

func matchesTree(doc dom.Node, matches []elementMatch) string {
	byElement := make(map[*dom.Element][]css.MatchedRule, len(matches))
	for _, m := range matches {
		byElement[m.el] = m.rules
	}

	tw := debug.NewTreeWriter()
	dom.Walk(doc, func(n dom.Node, depth int) bool {
		el, ok := n.(*dom.Element)
		if !ok {
			return true
		}
		tw.Line(depth, "<%s>", elementLabel(el))
		for _, m := range byElement[el] {
			tw.Line(depth+1, "match %s %s { %s }", m.Specificity, m.Selector, declarations(m.Rule))
		}
		return true
	})
	return tw.String()
}

type yamlMatchedRule struct {
	Selector     string   `yaml:"selector"`
	Specificity  []int    `yaml:"specificity,flow"`
	Declarations []string `yaml:"declarations,omitempty"`
}

type yamlElementMatch struct {
	Element string            `yaml:"element"`
	Path    string            `yaml:"path"`
	Rules   []yamlMatchedRule `yaml:"rules"`
}

// matchesYAML lists only elements matched by at least one rule.
func matchesYAML(matches []elementMatch) ([]byte, error) {
	out := []yamlElementMatch{}
	for _, m := range matches {
		if len(m.rules) == 0 {
			continue
		}
		em := yamlElementMatch{
			Element: elementLabel(m.el),
			Path:    strings.Join(m.path, " > "),
		}
		for _, mr := range m.rules {
			rule := yamlMatchedRule{
				Selector:    mr.Selector.String(),
				Specificity: []int{mr.Specificity.ID, mr.Specificity.Class, mr.Specificity.Tag},
			}
			for _, d := range mr.Rule.Declarations {
				rule.Declarations = append(rule.Declarations, d.String())
			}
			em.Rules = append(em.Rules, rule)
		}
		out = append(out, em)
	}
	return yaml.Marshal(out)
}
