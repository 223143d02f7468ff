package glossary

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTerms_LongestFirst(t *testing.T) {
	g := Glossary{
		"pull request":        "طلب السحب",
		"pull":                "سحب",
		"repository settings": "إعدادات المستودع",
		"repository":          "المستودع",
	}
	terms := g.Terms()
	if terms[0] != "repository settings" {
		t.Errorf("Terms()[0] = %q, want 'repository settings'", terms[0])
	}
	for i := 1; i < len(terms); i++ {
		if len(terms[i]) > len(terms[i-1]) {
			t.Errorf("Terms() not longest-first at %d: %q after %q", i, terms[i], terms[i-1])
		}
	}
}

func TestApply(t *testing.T) {
	g := Glossary{
		"repository":   "المستودع",
		"pull request": "طلب السحب",
		"pull":         "سحب",
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "simple term",
			in:   "Open the repository first.",
			want: "Open the المستودع first.",
		},
		{
			name: "case insensitive",
			in:   "Repository settings",
			want: "المستودع settings",
		},
		{
			name: "multi-word wins over component",
			in:   "Create a pull request now.",
			want: "Create a طلب السحب now.",
		},
		{
			name: "word boundaries respected",
			in:   "repositories are not matched",
			want: "repositories are not matched",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.Apply(tc.in); got != tc.want {
				t.Errorf("Apply(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	g := Glossary{"commit": "الالتزام", "branch": "الفرع"}
	got := g.Format()

	if !strings.Contains(got, "- branch: الفرع\n") || !strings.Contains(got, "- commit: الالتزام\n") {
		t.Errorf("Format() = %q", got)
	}
	// Alphabetical order for a stable prompt.
	if strings.Index(got, "branch") > strings.Index(got, "commit") {
		t.Errorf("Format() not alphabetical: %q", got)
	}
}

func TestLoad(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		g, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if g["repository"] != "المستودع" {
			t.Errorf("default term lost: %q", g["repository"])
		}
	})

	t.Run("user terms merge over defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "glossary.json")
		data := `{"Repository": "مستودع مخصص", "sandbox": "بيئة تجريبية"}`
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatal(err)
		}

		g, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if g["repository"] != "مستودع مخصص" {
			t.Errorf("user override lost: %q", g["repository"])
		}
		if g["sandbox"] != "بيئة تجريبية" {
			t.Errorf("new user term lost: %q", g["sandbox"])
		}
		if g["commit"] != "الالتزام" {
			t.Errorf("untouched default lost: %q", g["commit"])
		}
	})

	t.Run("invalid json is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Fatal("Load() with invalid JSON: want error, got nil")
		}
	})
}
