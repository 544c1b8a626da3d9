package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()
	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("failed to open report: %v", err)
	}
	defer r.Close()

	out := make(map[string]string)
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("failed to read %s: %v", f.Name, err)
		}
		out[f.Name] = string(data)
	}
	return out
}

func TestReport_Close(t *testing.T) {
	dir := t.TempDir()
	conf := ReporterConfig{Destination: filepath.Join(dir, "report.zip")}

	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if r.Name() != conf.Destination {
		t.Errorf("Name() = %q, want %q", r.Name(), conf.Destination)
	}

	stored := filepath.Join(dir, "final.log")
	if err := os.WriteFile(stored, []byte("log line"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	logs := filepath.Join(dir, "logs")
	if err := os.MkdirAll(logs, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(logs, "a.txt"), []byte("a"), 0644); err != nil {
		t.Fatal(err)
	}

	r.Store("final.log", stored)
	r.Store("logs", logs)
	r.Store("absent", filepath.Join(dir, "does-not-exist"))
	r.StoreData("input/page.html", []byte("<p></p>"))
	r.StoreData("input/page.html", []byte("<div></div>"))
	r.StoreData("empty", nil)

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	files := readArchive(t, conf.Destination)
	if files["final.log"] != "log line" {
		t.Errorf("final.log = %q", files["final.log"])
	}
	if files["logs/a.txt"] != "a" {
		t.Errorf("logs/a.txt = %q", files["logs/a.txt"])
	}
	if files["input/page.html"] != "<p></p>" {
		t.Errorf("input/page.html = %q", files["input/page.html"])
	}
	if files["input/page.html-2"] != "<div></div>" {
		t.Errorf("expected numbered copy of repeated entry, got files %v", files)
	}
	if data, ok := files["empty"]; !ok || data != "" {
		t.Errorf("empty entry expected, got %q", data)
	}
	if _, ok := files["absent"]; ok {
		t.Error("absent file must be skipped")
	}
	if !strings.Contains(files["MANIFEST"], "final.log") {
		t.Errorf("MANIFEST does not list entries:\n%s", files["MANIFEST"])
	}
}

func TestReport_StorePanicsOnOverwrite(t *testing.T) {
	r := &Report{items: make(map[string]item)}
	r.Store("a", "/tmp/one")
	r.Store("a", "/tmp/one")

	defer func() {
		if recover() == nil {
			t.Error("expected panic on conflicting Store")
		}
	}()
	r.Store("a", "/tmp/two")
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	r.Store("a", "b")
	r.StoreData("a", nil)
	if r.Name() != "" {
		t.Error("nil report must have empty name")
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{items: make(map[string]item)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}
