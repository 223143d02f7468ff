// Package glossary holds the fixed English→Arabic terminology map used
// to keep technical terms consistent across translated documents. The
// built-in set can be extended from a user glossary file.
package glossary

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

// Glossary maps an English term to its fixed target-language translation.
type Glossary map[string]string

// Default returns the built-in terminology set for developer
// documentation.
func Default() Glossary {
	return Glossary{
		// Core platform terms
		"repository":    "المستودع",
		"repositories":  "المستودعات",
		"commit":        "الالتزام",
		"commits":       "الالتزامات",
		"pull request":  "طلب السحب",
		"pull requests": "طلبات السحب",
		"issue":         "القضية",
		"issues":        "القضايا",
		"branch":        "الفرع",
		"branches":      "الفروع",
		"merge":         "الدمج",
		"fork":          "النسخة المتفرعة",
		"clone":         "الاستنساخ",
		"workflow":      "سير العمل",

		// Authentication and security
		"authentication":            "المصادقة",
		"authorization":             "التخويل",
		"token":                     "الرمز المميز",
		"two-factor authentication": "المصادقة ثنائية العامل",
		"single sign-on":            "تسجيل الدخول الموحد",
		"permissions":               "الأذونات",
		"security":                  "الأمان",

		// CI/CD
		"runner":     "المشغل",
		"deployment": "النشر",
		"build":      "البناء",

		// Organizations
		"organization":  "المنظمة",
		"organizations": "المنظمات",
		"team":          "الفريق",
		"teams":         "الفرق",
		"collaborator":  "المتعاون",

		// General
		"repository settings": "إعدادات المستودع",
		"documentation":       "المستندات",
		"getting started":     "البدء",
		"overview":            "نظرة عامة",
		"guide":               "دليل",
		"tutorial":            "برنامج تعليمي",
		"reference":           "مرجع",
		"command line":        "سطر الأوامر",
		"version control":     "التحكم في الإصدارات",
		"settings":            "الإعدادات",
		"configuration":       "التكوين",
	}
}

// Terms returns the English terms sorted longest first, then
// alphabetically. Longest-first ordering makes multi-word terms win
// over their component words during substitution.
func (g Glossary) Terms() []string {
	terms := make([]string, 0, len(g))
	for t := range g {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if len(terms[i]) != len(terms[j]) {
			return len(terms[i]) > len(terms[j])
		}
		return terms[i] < terms[j]
	})
	return terms
}

// Format renders the glossary as a prompt-embeddable term list, one
// "term: translation" line per entry, sorted alphabetically.
func (g Glossary) Format() string {
	terms := make([]string, 0, len(g))
	for t := range g {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	var buf strings.Builder
	for _, t := range terms {
		buf.WriteString("- ")
		buf.WriteString(t)
		buf.WriteString(": ")
		buf.WriteString(g[t])
		buf.WriteByte('\n')
	}
	return buf.String()
}

// Apply substitutes every glossary term found in text with its
// translation, matching case-insensitively on word boundaries.
// Multi-word terms are applied before their component words.
func (g Glossary) Apply(text string) string {
	out := text
	for _, term := range g.Terms() {
		pat := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
		out = pat.ReplaceAllString(out, g[term])
	}
	return out
}

// Load reads a user glossary file (a flat JSON object of term →
// translation) and merges it over the built-in set. A missing file is
// not an error; the built-in set is returned unchanged.
func Load(path string) (Glossary, error) {
	g := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return g, nil
		}
		return nil, fmt.Errorf("reading glossary %s: %w", path, err)
	}
	var user map[string]string
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("parsing glossary %s: %w", path, err)
	}
	for k, v := range user {
		g[strings.ToLower(k)] = v
	}
	return g, nil
}
