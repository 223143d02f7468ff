// Package i18n localizes tarjem's own CLI messages.
//
// The tool translates documentation into Arabic, so its own interface
// ships with an Arabic catalog too. Catalogs are gettext .po files
// embedded in the binary; Init loads the one matching the user's
// locale and T/N look messages up in it, falling back to the msgid
// when no catalog or entry exists.
package i18n

import (
	"embed"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
)

// Catalogs live under locales/<lang>/LC_MESSAGES/tarjem.po.
//
//go:embed all:locales
var locales embed.FS

const domain = "tarjem"

var catalog *gotext.Locale

// Init loads the message catalog for lang. An empty lang selects the
// locale from the environment (LANGUAGE, then LC_ALL, LC_MESSAGES,
// LANG, per GNU gettext). Call once before T or N.
func Init(lang string) {
	if lang == "" {
		lang = localeFromEnv()
	}
	catalog = gotext.NewLocaleFSWithPath(lang, locales, "locales")
	catalog.AddDomain(domain)
	catalog.SetDomain(domain)
}

// T returns the translation of msgid, or msgid itself when the
// catalog has no entry for it.
func T(msgid string) string {
	if catalog == nil {
		return msgid
	}
	return catalog.Get(msgid)
}

// N returns the plural form of a message appropriate for n. The
// catalog's Plural-Forms header decides which form applies; Arabic
// has six.
func N(singular, plural string, n int) string {
	if catalog == nil {
		if n == 1 {
			return singular
		}
		return plural
	}
	return catalog.GetN(singular, plural, n)
}

func localeFromEnv() string {
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		val := os.Getenv(env)
		if val == "" {
			continue
		}
		// LANGUAGE may hold a colon-separated preference list.
		if env == "LANGUAGE" {
			val, _, _ = strings.Cut(val, ":")
		}
		// "ar_SA.UTF-8" -> "ar_SA"
		val, _, _ = strings.Cut(val, ".")
		if val == "" || val == "C" || val == "POSIX" {
			continue
		}
		return val
	}
	return "en"
}
