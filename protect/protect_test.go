package protect

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestProtectRestore_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"plain prose", "Nothing to protect here.\n"},
		{"inline code", "Run `git status` before you commit.\n"},
		{"fenced block", "Before.\n\n```bash\nls -la\ngit log\n```\n\nAfter.\n"},
		{"tilde fence", "~~~\nraw block\n~~~\n"},
		{"directive", "See {% data variables.product.name %} for details.\n"},
		{"expression", "Hello {{ site.title }} world.\n"},
		{"link target", "Read [the guide](/en/get-started/quickstart) first.\n"},
		{"bare url", "Docs live at https://docs.example.com/api now.\n"},
		{"everything", "Intro with `code` and [a link](/path).\n\n```js\nconsole.log({{ not_a_directive }})\n```\n\n{% ifversion fpt %}Visit https://example.com{% endif %}\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			masked, table := Protect(tc.text)
			got, err := Restore(masked, table)
			if err != nil {
				t.Fatalf("Restore error: %v", err)
			}
			if got != tc.text {
				t.Errorf("round trip changed text:\n got: %q\nwant: %q", got, tc.text)
			}
		})
	}
}

func TestProtect_MasksEachCategory(t *testing.T) {
	text := "Use `npm install` then visit [setup](/setup) or https://example.com and {% data reusables.intro %}.\n"
	masked, table := Protect(text)

	for _, fragment := range []string{"npm install", "(/setup)", "https://example.com", "{% data"} {
		if strings.Contains(masked, fragment) {
			t.Errorf("masked text still contains %q:\n%s", fragment, masked)
		}
	}
	if len(table.Spans) != 4 {
		t.Fatalf("got %d spans, want 4: %+v", len(table.Spans), table.Spans)
	}
	// Tokens are numbered in document order.
	for i, s := range table.Spans {
		want := fmt.Sprintf("<<<PROTECT:%d>>>", i)
		if s.Placeholder != want {
			t.Errorf("span %d placeholder = %q, want %q", i, s.Placeholder, want)
		}
		if i > 0 && s.Start < table.Spans[i-1].End {
			t.Errorf("span %d overlaps previous", i)
		}
	}
}

func TestProtect_FencedCodeWinsOverInline(t *testing.T) {
	text := "```\ninline `code` inside a fence\n{% directive inside %}\n```\n"
	masked, table := Protect(text)

	if len(table.Spans) != 1 {
		t.Fatalf("got %d spans, want 1 (the whole fence): %+v", len(table.Spans), table.Spans)
	}
	if !strings.Contains(table.Spans[0].Original, "inline `code` inside") {
		t.Errorf("fence span should swallow the inline code: %q", table.Spans[0].Original)
	}
	if strings.Contains(masked, "directive inside") {
		t.Errorf("directive inside fence leaked into masked text: %q", masked)
	}
}

func TestProtect_LinkTargetKeepsLabelTranslatable(t *testing.T) {
	text := "Read [the quickstart guide](/en/quickstart) today."
	masked, _ := Protect(text)

	if !strings.Contains(masked, "[the quickstart guide]") {
		t.Errorf("link label must stay in the translatable text: %q", masked)
	}
	if strings.Contains(masked, "/en/quickstart") {
		t.Errorf("link target must be masked: %q", masked)
	}
}

func TestProtect_CustomDirectiveDelimiters(t *testing.T) {
	text := "Keep <% raw bits %> intact."
	masked, table := Options{DirectiveOpen: "<%", DirectiveClose: "%>"}.Protect(text)

	if strings.Contains(masked, "raw bits") {
		t.Errorf("custom directive not masked: %q", masked)
	}
	got, err := Restore(masked, table)
	if err != nil {
		t.Fatal(err)
	}
	if got != text {
		t.Errorf("round trip = %q, want %q", got, text)
	}
}

func TestRestore_UnresolvedPlaceholder(t *testing.T) {
	masked, table := Protect("Run `make` now.")
	// Simulate a backend that dropped the token.
	broken := strings.ReplaceAll(masked, table.Spans[0].Placeholder, "")

	_, err := Restore(broken, table)
	var unresolved *UnresolvedPlaceholderError
	if !errors.As(err, &unresolved) {
		t.Fatalf("Restore() error = %v, want UnresolvedPlaceholderError", err)
	}
	if unresolved.Placeholder != table.Spans[0].Placeholder {
		t.Errorf("error names %q, want %q", unresolved.Placeholder, table.Spans[0].Placeholder)
	}
}

func TestRestore_OrphanPlaceholder(t *testing.T) {
	masked, table := Protect("Run `make` now.")
	// Simulate a backend that invented an extra token.
	broken := masked + " <<<PROTECT:99>>>"

	_, err := Restore(broken, table)
	var orphan *OrphanPlaceholderError
	if !errors.As(err, &orphan) {
		t.Fatalf("Restore() error = %v, want OrphanPlaceholderError", err)
	}
	if orphan.Placeholder != "<<<PROTECT:99>>>" {
		t.Errorf("error names %q, want <<<PROTECT:99>>>", orphan.Placeholder)
	}
}

func TestRestore_LiteralTokenInsideCodeBlock(t *testing.T) {
	// A fenced block documenting the token format contains the literal
	// token text. Once restored it must not be mistaken for a token.
	text := "The extractor emits tokens:\n\n```\n<<<PROTECT:0>>>\n```\n\nDone."
	masked, table := Protect(text)

	got, err := Restore(masked, table)
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if got != text {
		t.Errorf("Restore() = %q, want %q", got, text)
	}
}

func TestRestore_DuplicatedTokenIsOrphan(t *testing.T) {
	masked, table := Protect("Run `make` now.")
	broken := masked + " " + table.Spans[0].Placeholder

	_, err := Restore(broken, table)
	var orphan *OrphanPlaceholderError
	if !errors.As(err, &orphan) {
		t.Fatalf("Restore() error = %v, want OrphanPlaceholderError", err)
	}
}

func TestStrip(t *testing.T) {
	text := "Prose before. `rm -rf` See [link](https://example.com/x) and https://example.com/y\n```\nblock\n```\nProse after."
	got := Strip(text)

	for _, fragment := range []string{"rm -rf", "example.com", "block"} {
		if strings.Contains(got, fragment) {
			t.Errorf("Strip() kept %q: %q", fragment, got)
		}
	}
	if !strings.Contains(got, "Prose before.") || !strings.Contains(got, "Prose after.") {
		t.Errorf("Strip() lost prose: %q", got)
	}
}
