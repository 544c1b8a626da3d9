package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	validator "github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"mbr/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	DocumentConfig struct {
		// RootTag names element wrapping multiple top level nodes.
		RootTag string           `yaml:"root_tag" validate:"required,alphanum"`
		Output  common.OutputFmt `yaml:"output" validate:"gte=0"`
	}

	StylesheetConfig struct {
		ResolveNamedColors bool             `yaml:"resolve_named_colors"`
		Output             common.OutputFmt `yaml:"output" validate:"gte=0"`
	}

	InputConfig struct {
		// Encoding is IANA character set name forced on every input, empty
		// means detect.
		Encoding string `yaml:"encoding,omitempty"`
		// Extensions are file name suffixes considered when walking
		// directories and archives, matched case insensitively. Explicitly
		// named files are always taken.
		MarkupExtensions []string `yaml:"markup_extensions" validate:"dive,required,startswith=."`
		StyleExtensions  []string `yaml:"style_extensions" validate:"dive,required,startswith=."`
	}

	Config struct {
		Version    int              `yaml:"version" validate:"eq=1"`
		Document   DocumentConfig   `yaml:"document"`
		Stylesheet StylesheetConfig `yaml:"stylesheet"`
		Input      InputConfig      `yaml:"input"`
		Logging    LoggingConfig    `yaml:"logging"`
		Reporting  ReporterConfig   `yaml:"reporting"`
	}
)

// checkOutputs makes sure each section asks for the format its content could
// be written in.
func checkOutputs(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(Config)
	if !cfg.Document.Output.ForMarkup() {
		sl.ReportError(cfg.Document.Output, "output", "Output", "markup_format", cfg.Document.Output.String())
	}
	if !cfg.Stylesheet.Output.ForStylesheet() {
		sl.ReportError(cfg.Stylesheet.Output, "output", "Output", "stylesheet_format", cfg.Stylesheet.Output.String())
	}
}

// decode overlays YAML data on cfg. Unknown keys are errors, so typos in
// configuration file do not go unnoticed.
func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode configuration data: %w", err)
	}
	return nil
}

// check sanitizes and validates complete configuration.
func check(cfg *Config) error {
	if err := gencfg.Sanitize(cfg); err != nil {
		return fmt.Errorf("failed to sanitize configuration: %w", err)
	}
	if err := gencfg.Validate(cfg, gencfg.WithAdditionalChecks(checkOutputs)); err != nil {
		return fmt.Errorf("failed to validate configuration: %w", err)
	}
	return nil
}

// LoadConfiguration expands embedded template into defaults and overlays
// configuration file at path (if any) on top of them. Result is validated
// once, after the overlay.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	defaults, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg := &Config{}
	if err := decode(defaults, cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}

	what := "configuration template"
	if len(path) > 0 {
		what = "configuration file"
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := decode(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to process %s: %w", what, err)
		}
	}
	if err := check(cfg); err != nil {
		return nil, fmt.Errorf("failed to process %s: %w", what, err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
