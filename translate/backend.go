// Package translate implements the translation backends: a
// deterministic offline placeholder generator and an AI-enhanced
// backend calling HTTP text-generation providers (OpenAI-compatible,
// Google Gemini, Anthropic, Ollama, custom endpoints).
package translate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tarjemkit/tarjem/glossary"
)

// Kind says what unit of a document is being translated. The
// placeholder backend emits a needs-translation note for bodies but
// only glossary substitution for frontmatter fields.
type Kind int

const (
	// KindBody is the Markdown body of a document.
	KindBody Kind = iota
	// KindField is a single frontmatter field value.
	KindField
)

// Request carries the per-call translation parameters. All
// configuration is explicit; backends hold no mutable state between
// calls.
type Request struct {
	// TargetLang is the target language code (e.g. "ar").
	TargetLang string
	// LangName is the human-readable language name. Resolved from
	// TargetLang when empty.
	LangName string
	// Kind is the unit being translated.
	Kind Kind
	// Context is a free-form hint shown to the model (field name,
	// source file path).
	Context string
	// Glossary enforces fixed term translations. Defaults to the
	// built-in set when nil.
	Glossary glossary.Glossary
}

func (r Request) glossary() glossary.Glossary {
	if r.Glossary != nil {
		return r.Glossary
	}
	return glossary.Default()
}

func (r Request) langName() string {
	if r.LangName != "" {
		return r.LangName
	}
	return LangName(r.TargetLang)
}

// Backend turns source-language text into target-language text. The
// two implementations are interchangeable strategies: callers pick one
// and pass it down; nothing dispatches on the concrete type.
type Backend interface {
	Translate(ctx context.Context, text string, req Request) (string, error)
}

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

// BackendUnavailableError reports a transport or authentication
// failure, or a rate limit that persisted past the retry cap. Batch
// callers stop issuing further calls to the backend when they see it.
type BackendUnavailableError struct {
	Provider string
	Err      error
}

func (e *BackendUnavailableError) Error() string {
	return fmt.Sprintf("backend %s unavailable: %v", e.Provider, e.Err)
}

func (e *BackendUnavailableError) Unwrap() error { return e.Err }

// RateLimitedError reports provider throttling. Retryable with backoff.
type RateLimitedError struct {
	Provider   string
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("backend %s rate limited, retry after %s", e.Provider, e.RetryAfter)
}

// EmptyResponseError reports a provider call that succeeded at the
// transport level but returned no usable text.
type EmptyResponseError struct {
	Provider string
}

func (e *EmptyResponseError) Error() string {
	return fmt.Sprintf("backend %s returned no usable text", e.Provider)
}

// ---------------------------------------------------------------------------
// Placeholder backend
// ---------------------------------------------------------------------------

// Placeholder is the deterministic offline backend. Document bodies
// get a needs-translation note in the target language followed by the
// original text for reference; frontmatter fields get fixed glossary
// term substitution. Output is byte-identical across repeated calls.
type Placeholder struct{}

// arabicNote is the note that marks a page as awaiting full translation.
// The audit heuristic recognizes it when flagging suspect files.
const arabicNote = "> **ملاحظة**: هذه الصفحة تحتاج إلى ترجمة. المحتوى أدناه باللغة الإنجليزية."

// Translate implements Backend.
func (Placeholder) Translate(_ context.Context, text string, req Request) (string, error) {
	if req.TargetLang == "" {
		return "", fmt.Errorf("placeholder backend: target language is required")
	}
	gl := req.glossary()

	if req.Kind == KindField {
		return gl.Apply(text), nil
	}

	var buf strings.Builder
	buf.WriteString(noteFor(req.TargetLang, req.langName()))
	buf.WriteString("\n\n---\n\n")
	buf.WriteString(text)
	return buf.String(), nil
}

func noteFor(lang, langName string) string {
	if lang == "ar" {
		return arabicNote
	}
	return fmt.Sprintf("> **Note**: this page still needs a %s translation. The content below is in English.", langName)
}
