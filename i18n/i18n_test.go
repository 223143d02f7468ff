package i18n

import "testing"

func clearLocaleEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LANGUAGE", "")
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "")
}

func TestLocaleFromEnv(t *testing.T) {
	t.Run("LANGUAGE wins and is normalized", func(t *testing.T) {
		clearLocaleEnv(t)
		t.Setenv("LANGUAGE", "ar_SA.UTF-8:en_US")
		t.Setenv("LC_ALL", "de_DE.UTF-8")

		if got := localeFromEnv(); got != "ar_SA" {
			t.Fatalf("localeFromEnv() = %q, want %q", got, "ar_SA")
		}
	})

	t.Run("C and POSIX are skipped", func(t *testing.T) {
		clearLocaleEnv(t)
		t.Setenv("LANGUAGE", "C")
		t.Setenv("LC_ALL", "POSIX")
		t.Setenv("LC_MESSAGES", "fr_FR.UTF-8")

		if got := localeFromEnv(); got != "fr_FR" {
			t.Fatalf("localeFromEnv() = %q, want %q", got, "fr_FR")
		}
	})

	t.Run("falls back to en", func(t *testing.T) {
		clearLocaleEnv(t)
		if got := localeFromEnv(); got != "en" {
			t.Fatalf("localeFromEnv() = %q, want %q", got, "en")
		}
	})
}

func TestTAndNFallbackWhenUninitialized(t *testing.T) {
	old := catalog
	catalog = nil
	t.Cleanup(func() { catalog = old })

	if got := T("Hello"); got != "Hello" {
		t.Fatalf("T fallback = %q, want %q", got, "Hello")
	}

	if got := N("file", "files", 1); got != "file" {
		t.Fatalf("N singular fallback = %q, want %q", got, "file")
	}

	if got := N("file", "files", 2); got != "files" {
		t.Fatalf("N plural fallback = %q, want %q", got, "files")
	}
}
