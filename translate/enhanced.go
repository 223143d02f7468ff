package translate

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// markdownCodeFence strips a code fence a model sometimes wraps its
// whole answer in despite instructions.
var markdownCodeFence = regexp.MustCompile("(?s)^```(?:markdown|md)?\\s*\n(.*)\n```\\s*$")

// Enhanced is the AI-backed translation backend. It is safe for
// concurrent use: workers sharing one Enhanced value also share its
// rate-limit pause, so a 429 received by any worker pauses all of them.
type Enhanced struct {
	// Provider is the AI provider configuration.
	Provider Provider
	// MaxRetries is the retry cap for rate limits and transient
	// failures (default 3).
	MaxRetries int
	// SystemPrompt overrides the built-in prompt templates when set.
	SystemPrompt string

	client *http.Client
	rl     *rateLimitState
}

// NewEnhanced builds an Enhanced backend for the given provider.
func NewEnhanced(prov Provider) *Enhanced {
	timeout := prov.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Enhanced{
		Provider: prov,
		client:   makeHTTPClient(prov.Proxy, timeout),
		rl:       &rateLimitState{},
	}
}

func (e *Enhanced) maxRetries() int {
	if e.MaxRetries > 0 {
		return e.MaxRetries
	}
	return 3
}

// Translate implements Backend. The text is expected to be masked by
// the protected-span extractor already; the prompt instructs the model
// to carry placeholder tokens through verbatim.
func (e *Enhanced) Translate(ctx context.Context, text string, req Request) (string, error) {
	if req.TargetLang == "" {
		return "", fmt.Errorf("enhanced backend: target language is required")
	}
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	template := e.SystemPrompt
	if template == "" {
		template = getPrompt(req.Kind)
	}
	systemPrompt := resolvePrompt(template, req.langName(), req.glossary())

	var user strings.Builder
	if req.Context != "" {
		fmt.Fprintf(&user, "Context: %s\n\n", req.Context)
	}
	user.WriteString("Text to translate:\n\n")
	user.WriteString(text)

	out, err := retryWithBackoff(ctx, e.rl, e.Provider.ID, e.maxRetries(), func(ctx context.Context) (string, error) {
		return callOnce(ctx, e.client, e.Provider, systemPrompt, user.String())
	})
	if err != nil {
		return "", err
	}

	out = strings.TrimSpace(out)
	if m := markdownCodeFence.FindStringSubmatch(out); m != nil {
		out = m[1]
	}
	if out == "" {
		return "", &EmptyResponseError{Provider: e.Provider.ID}
	}
	return out, nil
}
