package css

import (
	yaml "gopkg.in/yaml.v3"
)

type yamlSelector struct {
	Selector    string `yaml:"selector"`
	Specificity []int  `yaml:"specificity,flow"`
}

type yamlDeclaration struct {
	Name  string `yaml:"name"`
	Kind  string `yaml:"kind"`
	Value string `yaml:"value"`
}

type yamlRule struct {
	Selectors    []yamlSelector    `yaml:"selectors"`
	Declarations []yamlDeclaration `yaml:"declarations,omitempty"`
}

// MarshalYAML implements yaml.Marshaler. Selectors are listed with their
// specificity, values with their kind.
func (r Rule) MarshalYAML() (any, error) {
	out := yamlRule{}
	for _, sel := range r.Selectors {
		sp := sel.Specificity()
		out.Selectors = append(out.Selectors, yamlSelector{
			Selector:    sel.String(),
			Specificity: []int{sp.ID, sp.Class, sp.Tag},
		})
	}
	for _, d := range r.Declarations {
		out.Declarations = append(out.Declarations, yamlDeclaration{
			Name:  d.Name,
			Kind:  valueKind(d.Value),
			Value: d.Value.String(),
		})
	}
	return out, nil
}

// MarshalYAML implements yaml.Marshaler.
func (s *Stylesheet) MarshalYAML() (any, error) {
	return struct {
		Rules []Rule `yaml:"rules"`
	}{Rules: s.Rules}, nil
}

// DumpYAML returns YAML representation of the stylesheet.
func (s *Stylesheet) DumpYAML() ([]byte, error) {
	return yaml.Marshal(s)
}

func valueKind(v Value) string {
	switch v.(type) {
	case Keyword:
		return "keyword"
	case Length:
		return "length"
	case Color:
		return "color"
	}
	return "unknown"
}
