package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rupor-github/gencfg"

	"mbr/common"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Document.RootTag != "html" {
		t.Errorf("RootTag = %q, want html", cfg.Document.RootTag)
	}
	if cfg.Document.Output != common.OutputFmtTree {
		t.Errorf("Document.Output = %v, want tree", cfg.Document.Output)
	}
	if cfg.Stylesheet.Output != common.OutputFmtCss {
		t.Errorf("Stylesheet.Output = %v, want css", cfg.Stylesheet.Output)
	}
	if cfg.Stylesheet.ResolveNamedColors {
		t.Error("named colors must be off by default")
	}
	if cfg.Input.Encoding != "" {
		t.Errorf("Input.Encoding = %q, want empty", cfg.Input.Encoding)
	}
	if len(cfg.Input.MarkupExtensions) == 0 || len(cfg.Input.StyleExtensions) == 0 {
		t.Error("expected default input extensions")
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" || cfg.Logging.FileLogger.Level != "none" {
		t.Errorf("unexpected logging defaults %+v", cfg.Logging)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	path := writeConfig(t, `version: 1
document:
  root_tag: body
  output: xml
stylesheet:
  resolve_named_colors: true
  output: yaml
input:
  encoding: windows-1251
logging:
  console:
    level: debug
reporting:
  destination: report.zip
`)

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Document.RootTag != "body" {
		t.Errorf("RootTag = %q, want body", cfg.Document.RootTag)
	}
	if cfg.Document.Output != common.OutputFmtXml {
		t.Errorf("Document.Output = %v, want xml", cfg.Document.Output)
	}
	if !cfg.Stylesheet.ResolveNamedColors {
		t.Error("Expected ResolveNamedColors to be true")
	}
	if cfg.Stylesheet.Output != common.OutputFmtYaml {
		t.Errorf("Stylesheet.Output = %v, want yaml", cfg.Stylesheet.Output)
	}
	if cfg.Input.Encoding != "windows-1251" {
		t.Errorf("Encoding = %q", cfg.Input.Encoding)
	}
	if cfg.Logging.ConsoleLogger.Level != "debug" {
		t.Errorf("console level = %q", cfg.Logging.ConsoleLogger.Level)
	}
}

func TestLoadConfiguration_MergeWithDefaults(t *testing.T) {
	path := writeConfig(t, `version: 1
stylesheet:
  output: yaml
`)

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if cfg.Stylesheet.Output != common.OutputFmtYaml {
		t.Errorf("Stylesheet.Output = %v, want yaml", cfg.Stylesheet.Output)
	}
	// untouched sections keep template values
	if cfg.Document.RootTag != "html" {
		t.Errorf("RootTag = %q, want html", cfg.Document.RootTag)
	}
}

func TestLoadConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "version: 1\ndocument:\n  root_tag: html\n  invalid indent\n"},
		{"unknown field", "version: 1\nunknown_field: value\n"},
		{"wrong version", "version: 2\n"},
		{"unknown format", "version: 1\ndocument:\n  output: pdf\n"},
		{"stylesheet format for document", "version: 1\ndocument:\n  output: css\n"},
		{"document format for stylesheet", "version: 1\nstylesheet:\n  output: html\n"},
		{"empty root tag", "version: 1\ndocument:\n  root_tag: \"\"\n"},
		{"bad extension", "version: 1\ninput:\n  style_extensions: [css]\n"},
		{"bad log level", "version: 1\nlogging:\n  console:\n    level: verbose\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfiguration(writeConfig(t, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	_, err := LoadConfiguration("/nonexistent/config.yaml")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {
		// Options are opaque, just test that we can pass them
	}

	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Prepare() returned empty data")
	}

	if _, err = loadData(data, &Config{}); err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	cfg.Document.Output = common.OutputFmtHtml

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	if !strings.Contains(string(data), "output: html") {
		t.Errorf("Dump() lost document output:\n%s", data)
	}

	cfg2, err := loadData(data, &Config{})
	if err != nil {
		t.Fatalf("Dumped config cannot be loaded: %v", err)
	}
	if cfg2.Document.Output != common.OutputFmtHtml || cfg2.Document.RootTag != cfg.Document.RootTag {
		t.Errorf("mismatch after dump/load: %+v", cfg2.Document)
	}
}

// loadData decodes and checks data as complete configuration.
func loadData(data []byte, cfg *Config) (*Config, error) {
	if err := decode(data, cfg); err != nil {
		return nil, err
	}
	if err := check(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func TestDecode(t *testing.T) {
	t.Run("partial config", func(t *testing.T) {
		cfg := &Config{}
		if err := decode([]byte(`version: 1`), cfg); err != nil {
			t.Fatalf("decode() error = %v", err)
		}
		if cfg.Version != 1 {
			t.Errorf("Version = %d, want 1", cfg.Version)
		}
	})

	t.Run("empty document keeps values", func(t *testing.T) {
		cfg := &Config{Version: 1}
		if err := decode(nil, cfg); err != nil {
			t.Fatalf("decode() error = %v", err)
		}
		if cfg.Version != 1 {
			t.Errorf("Version = %d, want 1", cfg.Version)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		if err := decode([]byte(`invalid: [yaml`), &Config{}); err == nil {
			t.Error("Expected error for invalid YAML")
		}
	})
}

func TestCheck_WrapsValidationError(t *testing.T) {
	_, err := loadData([]byte("version: 99\n"), &Config{})
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if !strings.Contains(err.Error(), "validat") {
		t.Errorf("expected error to mention validation, got: %v", err)
	}
	if errors.Unwrap(err) == nil {
		t.Errorf("expected wrapped error, got bare error: %v", err)
	}
}
