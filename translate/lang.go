package translate

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// LangName resolves a language code to its English display name
// ("ar" → "Arabic"). Unknown codes are returned unchanged.
func LangName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return code
}
