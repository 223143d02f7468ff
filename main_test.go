package main

import (
	"testing"

	"github.com/tarjemkit/tarjem/scan"
	"github.com/tarjemkit/tarjem/translate"
)

func TestSelectPairs(t *testing.T) {
	pairs := []scan.Pair{
		{Source: "docs/api.md", Target: "docs/api-ar.md", Class: scan.Matched},
		{Source: "docs/guide.md", Target: "docs/guide-ar.md", Class: scan.Missing},
		{Source: "docs/intro.md", Target: "docs/intro-ar.md", Class: scan.Suspect, Reason: "placeholder note present"},
		{Source: "ref/tokens.md", Target: "ref/tokens-ar.md", Class: scan.Missing},
	}

	t.Run("missing only by default", func(t *testing.T) {
		got, err := selectPairs(pairs, translateArgs{})
		if err != nil {
			t.Fatalf("selectPairs() error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("selectPairs() = %d pairs, want 2", len(got))
		}
		if got[0].Source != "docs/guide.md" || got[1].Source != "ref/tokens.md" {
			t.Fatalf("selectPairs() = %v", got)
		}
	})

	t.Run("suspect flag includes suspect pairs", func(t *testing.T) {
		got, err := selectPairs(pairs, translateArgs{suspect: true})
		if err != nil {
			t.Fatalf("selectPairs() error: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("selectPairs() = %d pairs, want 3", len(got))
		}
	})

	t.Run("filter narrows by source path", func(t *testing.T) {
		got, err := selectPairs(pairs, translateArgs{suspect: true, filter: "^docs/"})
		if err != nil {
			t.Fatalf("selectPairs() error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("selectPairs() = %d pairs, want 2", len(got))
		}
		for _, p := range got {
			if p.Class == scan.Matched {
				t.Fatalf("selectPairs() included matched pair %s", p.Source)
			}
		}
	})

	t.Run("limit caps selection", func(t *testing.T) {
		got, err := selectPairs(pairs, translateArgs{suspect: true, limit: 1})
		if err != nil {
			t.Fatalf("selectPairs() error: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("selectPairs() = %d pairs, want 1", len(got))
		}
	})

	t.Run("invalid filter is an error", func(t *testing.T) {
		if _, err := selectPairs(pairs, translateArgs{filter: "["}); err == nil {
			t.Fatal("selectPairs() with invalid regexp: want error, got nil")
		}
	})
}

func TestResolveBackend(t *testing.T) {
	// Isolate from the environment and any real credentials store.
	t.Setenv("TARJEM_API_KEY", "")
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	t.Run("default is placeholder", func(t *testing.T) {
		b, err := resolveBackend(translateArgs{})
		if err != nil {
			t.Fatalf("resolveBackend() error: %v", err)
		}
		if _, ok := b.(translate.Placeholder); !ok {
			t.Fatalf("resolveBackend() = %T, want translate.Placeholder", b)
		}
	})

	t.Run("enhanced without provider fails", func(t *testing.T) {
		if _, err := resolveBackend(translateArgs{backend: "enhanced"}); err == nil {
			t.Fatal("resolveBackend() without provider: want error, got nil")
		}
	})

	t.Run("unknown backend fails", func(t *testing.T) {
		if _, err := resolveBackend(translateArgs{backend: "quantum"}); err == nil {
			t.Fatal("resolveBackend() with unknown backend: want error, got nil")
		}
	})

	t.Run("provider implies enhanced", func(t *testing.T) {
		b, err := resolveBackend(translateArgs{
			provider: "openai",
			model:    "gpt-4o",
			apiKey:   "sk-test",
		})
		if err != nil {
			t.Fatalf("resolveBackend() error: %v", err)
		}
		enhanced, ok := b.(*translate.Enhanced)
		if !ok {
			t.Fatalf("resolveBackend() = %T, want *translate.Enhanced", b)
		}
		if enhanced.Provider.Model != "gpt-4o" {
			t.Fatalf("Provider.Model = %q, want gpt-4o", enhanced.Provider.Model)
		}
	})

	t.Run("cloud provider requires model and key", func(t *testing.T) {
		if _, err := resolveBackend(translateArgs{provider: "openai", apiKey: "sk-test"}); err == nil {
			t.Fatal("resolveBackend() without model: want error, got nil")
		}
		if _, err := resolveBackend(translateArgs{provider: "openai", model: "gpt-4o"}); err == nil {
			t.Fatal("resolveBackend() without key: want error, got nil")
		}
	})

	t.Run("ollama needs no key", func(t *testing.T) {
		if _, err := resolveBackend(translateArgs{provider: "ollama", model: "llama3.2"}); err != nil {
			t.Fatalf("resolveBackend(ollama) error: %v", err)
		}
	})
}
