package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDetect_Defaults(t *testing.T) {
	dir := t.TempDir()

	p, err := Detect(dir)
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}
	if p.Root != dir {
		t.Errorf("Root = %q, want %q", p.Root, dir)
	}
	if p.ContentDir != dir {
		t.Errorf("ContentDir = %q, want root itself without content/", p.ContentDir)
	}
	if p.TargetLang != "ar" {
		t.Errorf("TargetLang = %q, want ar", p.TargetLang)
	}
	if diff := cmp.Diff([]string{"title", "shortTitle", "intro", "permissions"}, p.Fields); diff != "" {
		t.Errorf("Fields mismatch (-want +got):\n%s", diff)
	}
	if p.ReportFile != filepath.Join(dir, "translation_audit_report.md") {
		t.Errorf("ReportFile = %q", p.ReportFile)
	}
}

func TestDetect_ContentDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "content"), 0755); err != nil {
		t.Fatal(err)
	}

	p, err := Detect(dir)
	if err != nil {
		t.Fatal(err)
	}
	if p.ContentDir != filepath.Join(dir, "content") {
		t.Errorf("ContentDir = %q, want content/ subdirectory", p.ContentDir)
	}
}

func TestDetect_InvalidRoot(t *testing.T) {
	if _, err := Detect(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("Detect() of missing directory: want error, got nil")
	}

	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Detect(file); err == nil {
		t.Fatal("Detect() of a regular file: want error, got nil")
	}
}

func TestDetect_ConfigFileOverrides(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "docs"), 0755); err != nil {
		t.Fatal(err)
	}
	cfg := `content_dir: docs
target_lang: fr
fields:
  - title
  - summary
skip_dirs:
  - node_modules
report_file: audit/coverage.md
`
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := Detect(dir)
	if err != nil {
		t.Fatal(err)
	}
	if p.ContentDir != filepath.Join(dir, "docs") {
		t.Errorf("ContentDir = %q", p.ContentDir)
	}
	if p.TargetLang != "fr" {
		t.Errorf("TargetLang = %q, want fr", p.TargetLang)
	}
	if diff := cmp.Diff([]string{"title", "summary"}, p.Fields); diff != "" {
		t.Errorf("Fields mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"node_modules"}, p.SkipDirs); diff != "" {
		t.Errorf("SkipDirs mismatch (-want +got):\n%s", diff)
	}
	if p.ReportFile != filepath.Join(dir, "audit", "coverage.md") {
		t.Errorf("ReportFile = %q", p.ReportFile)
	}
}

func TestDetect_InvalidConfigFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("target_lang: ["), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Detect(dir); err == nil {
		t.Fatal("Detect() with invalid tarjem.yaml: want error, got nil")
	}
}
