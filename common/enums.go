// Package common keeps enums shared by configuration and commands. Config
// needs them for validation and defaults, commands for flag parsing, so they
// cannot live in either.
package common

//go:generate go tool go-enum --names

// Requested output type.
// ENUM(tree, xml, html, yaml, css)
type OutputFmt int

// ForMarkup reports formats a document tree could be written in.
func (o OutputFmt) ForMarkup() bool {
	return o == OutputFmtTree || o == OutputFmtXml || o == OutputFmtHtml
}

// ForStylesheet reports formats a stylesheet could be written in.
func (o OutputFmt) ForStylesheet() bool {
	return o == OutputFmtTree || o == OutputFmtYaml || o == OutputFmtCss
}

// ForMatching reports formats rule matches could be written in.
func (o OutputFmt) ForMatching() bool {
	return o == OutputFmtTree || o == OutputFmtYaml
}

func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtTree:
		return ".txt"
	case OutputFmtXml:
		return ".xml"
	case OutputFmtHtml:
		return ".html"
	case OutputFmtYaml:
		return ".yaml"
	case OutputFmtCss:
		return ".css"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}
