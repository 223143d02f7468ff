package translate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tarjemkit/tarjem/glossary"
	"github.com/tarjemkit/tarjem/settings"
)

// ---------------------------------------------------------------------------
// System prompts
// ---------------------------------------------------------------------------

// BodySystemPrompt is the system prompt for translating Markdown
// document bodies. {{targetLang}} and {{glossary}} are replaced at
// call time. The text sent to the model has code blocks, templating
// directives, and URLs already masked as <<<PROTECT:n>>> tokens.
const BodySystemPrompt = `You are a professional translator specializing in technical documentation for software platforms. You are translating developer documentation from English to {{targetLang}}.

CONTEXT AWARENESS:
- The audience is software developers and platform users
- Tone: clear, professional technical documentation
- Use IT terminology standard in the {{targetLang}} tech community

IMPORTANT TRANSLATION PRINCIPLES:
- Translate for NATURALNESS and FLUENCY in {{targetLang}}, not word-for-word
- Adapt sentence structure to {{targetLang}} documentation conventions
- Keep brand names and proper nouns unchanged
- Do NOT translate technical terms that are standard in English unless they have an established translation

TERMINOLOGY (use these fixed translations everywhere they apply):
{{glossary}}

CRITICAL PRESERVATION RULES:
- The text contains tokens of the form <<<PROTECT:0>>>, <<<PROTECT:1>>>, ...
  Each token stands for code, a templating directive, or a URL.
  Reproduce EVERY token EXACTLY as written, in a sensible position. Never
  translate, renumber, drop, or duplicate a token.
- Preserve ALL Markdown formatting: headings, lists, tables, emphasis,
  blockquotes, paragraph breaks.
- Preserve leading/trailing whitespace and blank-line structure.

Return ONLY the translated text, no explanations and no code fences.`

// FieldSystemPrompt is the system prompt for translating a single
// frontmatter field value.
const FieldSystemPrompt = `You are a professional translator for technical documentation. Translate the given metadata value from English to {{targetLang}}.

TERMINOLOGY (use these fixed translations everywhere they apply):
{{glossary}}

Rules:
- The value is a short title, summary, or description. Keep it concise.
- Reproduce any <<<PROTECT:n>>> token exactly as written.
- Keep brand names and proper nouns unchanged.
- Return ONLY the translated value, with no surrounding quotes and no explanations.`

// ---------------------------------------------------------------------------
// Custom prompts (prompts.json)
// ---------------------------------------------------------------------------

// PromptsConfig holds system prompts loaded from prompts.json.
type PromptsConfig struct {
	Prompts map[string]string `json:"prompts"`
}

// globalPrompts holds the loaded prompts configuration.
var globalPrompts *PromptsConfig

// LoadPromptsFromFile loads system prompts from a JSON file.
// A missing file is not an error; embedded defaults are used.
func LoadPromptsFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading prompts file: %w", err)
	}

	var config PromptsConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("parsing prompts file: %w", err)
	}

	globalPrompts = &config
	return nil
}

func defaultPromptsMap() map[string]string {
	return map[string]string{
		"body":  BodySystemPrompt,
		"field": FieldSystemPrompt,
	}
}

func createDefaultPromptsFile(path string) error {
	config := PromptsConfig{Prompts: defaultPromptsMap()}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling default prompts: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating prompts directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing default prompts file: %w", err)
	}
	return nil
}

// LoadPromptsFromDefaultLocations loads prompts from the user data
// directory, creating the file with built-in defaults on first run.
// Returns the path of the loaded prompts file.
func LoadPromptsFromDefaultLocations() (string, error) {
	path, err := settings.PromptsFilePath()
	if err != nil {
		return "", fmt.Errorf("cannot determine prompts file path: %w", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := createDefaultPromptsFile(path); err != nil {
			return "", fmt.Errorf("creating default prompts file: %w", err)
		}
	}

	if err := LoadPromptsFromFile(path); err != nil {
		return "", err
	}
	return path, nil
}

// getPrompt returns the system prompt template for a unit kind,
// preferring user-customized prompts over embedded defaults.
func getPrompt(kind Kind) string {
	name := "body"
	if kind == KindField {
		name = "field"
	}
	if globalPrompts != nil {
		if prompt, ok := globalPrompts.Prompts[name]; ok && prompt != "" {
			return prompt
		}
	}
	return defaultPromptsMap()[name]
}

// resolvePrompt fills the template slots for one request.
func resolvePrompt(template, langName string, gl glossary.Glossary) string {
	out := strings.ReplaceAll(template, "{{targetLang}}", langName)
	out = strings.ReplaceAll(out, "{{glossary}}", strings.TrimRight(gl.Format(), "\n"))
	return out
}
