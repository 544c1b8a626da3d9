package debug

import (
	"testing"
)

func TestTreeWriter_Line(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		format string
		args   []any
		want   string
	}{
		{"no depth", 0, "html", nil, "html\n"},
		{"depth 1", 1, "body", nil, "  body\n"},
		{"depth 2", 2, "p", nil, "    p\n"},
		{"with formatting", 1, "element <%s>", []any{"div"}, "  element <div>\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_TextBlock(t *testing.T) {
	tests := []struct {
		name  string
		depth int
		label string
		value string
		want  string
	}{
		{"empty value", 0, "text", "", "text: \n"},
		{"with value", 1, "text", "Hello world", "  text: \"Hello world\"\n"},
		{"with quotes", 0, "comment", `say "hi"`, "comment: \"say \\\"hi\\\"\"\n"},
		{"with newline", 2, "text", "a\nb", "    text: \"a\\nb\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.TextBlock(tt.depth, tt.label, tt.value)
			if got := tw.String(); got != tt.want {
				t.Errorf("TextBlock() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_Attrs(t *testing.T) {
	tw := NewTreeWriter()
	tw.Attrs(1, map[string]string{
		"data10": "x",
		"class":  "test",
		"data2":  "y",
		"id":     "main",
	})

	want := "  @class = \"test\"\n" +
		"  @data2 = \"y\"\n" +
		"  @data10 = \"x\"\n" +
		"  @id = \"main\"\n"
	if got := tw.String(); got != want {
		t.Errorf("Attrs():\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestTreeWriter_Attrs_Empty(t *testing.T) {
	tw := NewTreeWriter()
	tw.Attrs(0, nil)
	if tw.String() != "" {
		t.Errorf("expected no output, got %q", tw.String())
	}
}
