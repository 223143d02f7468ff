// Package protect masks spans of Markdown text that must survive
// translation unchanged: fenced code blocks, inline code, templating
// directives, and URLs. Each span is replaced by a unique placeholder
// token that a translation backend passes through verbatim; Restore
// swaps the originals back in afterwards.
package protect

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Span is one protected region of the original text.
type Span struct {
	// Start and End are byte offsets in the original text.
	Start, End int
	// Original is the text of the span, including any delimiters.
	Original string
	// Placeholder is the token substituted into the masked text.
	Placeholder string
}

// Table records the spans extracted from one document, in document order.
type Table struct {
	Spans []Span
}

// UnresolvedPlaceholderError reports a placeholder token recorded in
// the span table that is no longer present in the translated text,
// meaning the backend dropped or corrupted it.
type UnresolvedPlaceholderError struct {
	Placeholder string
}

func (e *UnresolvedPlaceholderError) Error() string {
	return fmt.Sprintf("placeholder %s missing from translated text", e.Placeholder)
}

// OrphanPlaceholderError reports a placeholder token present in the
// translated text with no matching span table entry.
type OrphanPlaceholderError struct {
	Placeholder string
}

func (e *OrphanPlaceholderError) Error() string {
	return fmt.Sprintf("placeholder %s has no span table entry", e.Placeholder)
}

// placeholderFormat is the token substituted for each protected span.
// The token uses only ASCII punctuation and digits so neither a
// translation model nor a Markdown renderer reinterprets it.
const placeholderFormat = "<<<PROTECT:%d>>>"

// placeholderToken matches any placeholder token.
var placeholderToken = regexp.MustCompile(`<<<PROTECT:\d+>>>`)

// Options configures the extractor.
type Options struct {
	// DirectiveOpen and DirectiveClose delimit templating directives.
	// Defaults: "{%" and "%}". The "{{ ... }}" expression form is
	// always recognized alongside.
	DirectiveOpen  string
	DirectiveClose string
}

func (o Options) directivePattern() *regexp.Regexp {
	open, close := o.DirectiveOpen, o.DirectiveClose
	if open == "" || close == "" {
		open, close = "{%", "%}"
	}
	expr := regexp.QuoteMeta(open) + `[^` + regexp.QuoteMeta(string(close[0])) + `]*` + regexp.QuoteMeta(close) +
		`|\{\{[^}]*\}\}`
	return regexp.MustCompile(expr)
}

// Span categories, in priority order: a match from an earlier category
// wins when two categories overlap.
var (
	fencedCode = regexp.MustCompile("(?s)```.*?```|~~~.*?~~~")
	inlineCode = regexp.MustCompile("`[^`\n]+`")
	linkTarget = regexp.MustCompile(`\]\([^)\n]*\)`)
	bareURL    = regexp.MustCompile(`https?://[^\s)]+`)
)

// Protect extracts protected spans from text with the default options.
func Protect(text string) (string, *Table) {
	return Options{}.Protect(text)
}

// Protect extracts all protected spans from text, replacing each with a
// placeholder token. Tokens are numbered in document order, unique per
// call. Spans never overlap: within a category the leftmost match wins,
// and across categories the higher-priority category wins.
func (o Options) Protect(text string) (string, *Table) {
	patterns := []*regexp.Regexp{
		fencedCode,
		inlineCode,
		o.directivePattern(),
		linkTarget,
		bareURL,
	}

	var spans []Span
	for _, pat := range patterns {
		for _, loc := range pat.FindAllStringIndex(text, -1) {
			if overlaps(loc[0], loc[1], spans) {
				continue
			}
			spans = append(spans, Span{Start: loc[0], End: loc[1], Original: text[loc[0]:loc[1]]})
		}
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	for i := range spans {
		spans[i].Placeholder = fmt.Sprintf(placeholderFormat, i)
	}

	var buf strings.Builder
	prev := 0
	for _, s := range spans {
		buf.WriteString(text[prev:s.Start])
		buf.WriteString(s.Placeholder)
		prev = s.End
	}
	buf.WriteString(text[prev:])

	return buf.String(), &Table{Spans: spans}
}

// Restore replaces every placeholder token in masked with its original
// span text. Each token must appear exactly once. Returns
// UnresolvedPlaceholderError if a recorded token is absent and
// OrphanPlaceholderError for an unknown or duplicated token; both are
// recoverable — callers fall back to the untranslated original.
//
// Replacement is a single pass over masked, so a protected span whose
// original text happens to contain a literal placeholder token is
// reinserted without being mistaken for a token itself.
func Restore(masked string, table *Table) (string, error) {
	originals := make(map[string]string, len(table.Spans))
	for _, s := range table.Spans {
		originals[s.Placeholder] = s.Original
	}

	var orphan error
	seen := make(map[string]bool, len(table.Spans))
	out := placeholderToken.ReplaceAllStringFunc(masked, func(tok string) string {
		orig, ok := originals[tok]
		if !ok || seen[tok] {
			if orphan == nil {
				orphan = &OrphanPlaceholderError{Placeholder: tok}
			}
			return tok
		}
		seen[tok] = true
		return orig
	})
	if orphan != nil {
		return "", orphan
	}
	for _, s := range table.Spans {
		if !seen[s.Placeholder] {
			return "", &UnresolvedPlaceholderError{Placeholder: s.Placeholder}
		}
	}
	return out, nil
}

// Strip removes all protected spans from text entirely. Used by
// content heuristics that must ignore code, directives, and URLs when
// measuring prose.
func Strip(text string) string {
	masked, _ := Protect(text)
	return placeholderToken.ReplaceAllString(masked, "")
}

func overlaps(start, end int, spans []Span) bool {
	for _, s := range spans {
		if start < s.End && end > s.Start {
			return true
		}
	}
	return false
}
