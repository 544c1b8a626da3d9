package config

import "testing"

func TestCleanFileName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"page", "page"},
		{"a/b", "ab"},
		{"..hidden", "hidden"},
		{" .x", "x"},
		{"tab\there", "tabhere"},
		{"...", "_unnamed_"},
		{"", "_unnamed_"},
		{"Привет", "Привет"},
	}
	for _, tt := range tests {
		if got := CleanFileName(tt.in); got != tt.want {
			t.Errorf("CleanFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
