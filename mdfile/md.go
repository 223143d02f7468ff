// Package mdfile implements parsing and serialization of Markdown
// documentation files with YAML frontmatter.
//
// A document is split into two parts:
//
//   - Frontmatter: a YAML mapping between --- delimiter lines at the top
//     of the file. Key order and the raw text of untouched entries are
//     preserved so that Decode followed by Encode reproduces the input
//     byte for byte.
//
//   - Body: everything after the closing delimiter, kept as raw text.
//
// Only top-level scalar frontmatter values can be read or replaced.
// Sequences and nested mappings pass through opaquely.
package mdfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// TranslatableFields is the default set of frontmatter keys eligible
// for translation. Membership is closed: no key outside the set a
// caller supplies is ever mutated.
var TranslatableFields = []string{"title", "shortTitle", "intro", "permissions"}

// MalformedFrontmatterError reports a document that opens with a
// frontmatter delimiter but cannot be parsed: the closing delimiter is
// missing, or the enclosed text is not a valid YAML mapping.
type MalformedFrontmatterError struct {
	Path   string
	Reason string
}

func (e *MalformedFrontmatterError) Error() string {
	if e.Path == "" {
		return "malformed frontmatter: " + e.Reason
	}
	return fmt.Sprintf("%s: malformed frontmatter: %s", e.Path, e.Reason)
}

// frontmatterOpen matches the opening delimiter line at the start of the file.
var frontmatterOpen = regexp.MustCompile(`^---[ \t]*\r?\n`)

// frontmatterClose matches a closing delimiter line. Horizontal
// whitespace only: the blank line that conventionally follows the
// closing delimiter belongs to the body.
var frontmatterClose = regexp.MustCompile(`(?m)^---[ \t]*\r?\n|^---[ \t]*$`)

// ---------------------------------------------------------------------------
// Document model
// ---------------------------------------------------------------------------

// Document is a parsed Markdown file: a frontmatter mapping plus a body.
type Document struct {
	// Path is the file the document was read from (informational).
	Path string

	// rawFM is the frontmatter text between the delimiter lines,
	// excluding the delimiters themselves.
	rawFM string
	// node is the parsed YAML document node for rawFM.
	node *yaml.Node
	// hasFM is true if the source had a frontmatter block.
	hasFM bool
	// openDelim and closeDelim are the delimiter lines exactly as
	// they appeared, trailing whitespace and line terminator included.
	openDelim  string
	closeDelim string
	// body is everything after the closing delimiter.
	body string
	// dirty records top-level keys whose value was replaced.
	dirty map[string]bool
}

// DecodeFile reads and decodes a Markdown file.
func DecodeFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	d, err := Decode(data)
	if err != nil {
		var mfe *MalformedFrontmatterError
		if errors.As(err, &mfe) {
			mfe.Path = path
		}
		return nil, err
	}
	d.Path = path
	return d, nil
}

// Decode splits data into frontmatter and body.
func Decode(data []byte) (*Document, error) {
	text := string(data)
	d := &Document{dirty: make(map[string]bool)}

	open := frontmatterOpen.FindStringIndex(text)
	if open == nil {
		d.body = text
		return d, nil
	}

	rest := text[open[1]:]
	closeLoc := frontmatterClose.FindStringIndex(rest)
	if closeLoc == nil {
		return nil, &MalformedFrontmatterError{Reason: "closing delimiter not found"}
	}

	raw := rest[:closeLoc[0]]
	body := rest[closeLoc[1]:]

	var node yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &node); err != nil {
		return nil, &MalformedFrontmatterError{Reason: fmt.Sprintf("invalid YAML: %v", err)}
	}
	if len(node.Content) == 0 {
		return nil, &MalformedFrontmatterError{Reason: "empty frontmatter block"}
	}
	if node.Content[0].Kind != yaml.MappingNode {
		return nil, &MalformedFrontmatterError{Reason: "frontmatter is not a key-value mapping"}
	}

	d.hasFM = true
	d.rawFM = raw
	d.node = &node
	d.body = body
	d.openDelim = text[open[0]:open[1]]
	d.closeDelim = rest[closeLoc[0]:closeLoc[1]]
	return d, nil
}

// HasFrontmatter reports whether the source file had a frontmatter block.
func (d *Document) HasFrontmatter() bool { return d.hasFM }

// Body returns the document body.
func (d *Document) Body() string { return d.body }

// SetBody replaces the document body.
func (d *Document) SetBody(body string) { d.body = body }

// Fields returns the top-level scalar frontmatter keys in document order.
func (d *Document) Fields() []string {
	if !d.hasFM {
		return nil
	}
	root := d.node.Content[0]
	var keys []string
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i+1].Kind == yaml.ScalarNode {
			keys = append(keys, root.Content[i].Value)
		}
	}
	return keys
}

// Field returns the scalar value for a top-level frontmatter key.
// The second return is false if the key is absent or its value is not
// a scalar.
func (d *Document) Field(key string) (string, bool) {
	val := d.scalarNode(key)
	if val == nil {
		return "", false
	}
	return val.Value, true
}

// SetField replaces the scalar value for a top-level frontmatter key.
// Returns false if the key is absent or its value is not a scalar;
// non-scalar values are never mutated.
func (d *Document) SetField(key, value string) bool {
	val := d.scalarNode(key)
	if val == nil {
		return false
	}
	if val.Value == value {
		return true
	}
	val.Value = value
	d.dirty[key] = true
	return true
}

func (d *Document) scalarNode(key string) *yaml.Node {
	if !d.hasFM {
		return nil
	}
	root := d.node.Content[0]
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == key && root.Content[i+1].Kind == yaml.ScalarNode {
			return root.Content[i+1]
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Encoding
// ---------------------------------------------------------------------------

// Encode serializes the document back to Markdown. Untouched
// frontmatter entries are emitted from the original raw text, so a
// document with no modifications round-trips byte for byte.
func (d *Document) Encode() ([]byte, error) {
	if !d.hasFM {
		return []byte(d.body), nil
	}

	fm := d.rawFM
	if len(d.dirty) > 0 {
		rebuilt, err := d.spliceFrontmatter()
		if err != nil {
			return nil, err
		}
		fm = rebuilt
	}

	var buf bytes.Buffer
	buf.WriteString(d.openDelim)
	buf.WriteString(fm)
	if !strings.HasSuffix(fm, "\n") {
		buf.WriteByte('\n')
	}
	buf.WriteString(d.closeDelim)
	buf.WriteString(d.body)
	return buf.Bytes(), nil
}

// EncodeToFile serializes the document and writes it to path.
func (d *Document) EncodeToFile(path string) error {
	data, err := d.Encode()
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// spliceFrontmatter rebuilds the raw frontmatter text, replacing only
// the line ranges of dirty entries. Each top-level entry spans from its
// key's line to the line before the next top-level key, so multi-line
// values (block scalars, folded strings) are replaced as a whole.
func (d *Document) spliceFrontmatter() (string, error) {
	lines := strings.SplitAfter(d.rawFM, "\n")
	root := d.node.Content[0]

	type entry struct {
		key       string
		val       *yaml.Node
		startLine int // 1-based, from the YAML parser
	}
	var entries []entry
	for i := 0; i+1 < len(root.Content); i += 2 {
		entries = append(entries, entry{
			key:       root.Content[i].Value,
			val:       root.Content[i+1],
			startLine: root.Content[i].Line,
		})
	}
	if len(entries) == 0 {
		return d.rawFM, nil
	}

	var buf strings.Builder

	// Comment lines before the first key are kept verbatim.
	first := entries[0].startLine - 1
	if first < 0 || first > len(lines) {
		return "", fmt.Errorf("frontmatter entry %q out of line range", entries[0].key)
	}
	for _, line := range lines[:first] {
		buf.WriteString(line)
	}

	for i, e := range entries {
		start := e.startLine - 1
		end := len(lines)
		if i+1 < len(entries) {
			end = entries[i+1].startLine - 1
		}
		if start < 0 || start >= len(lines) || end > len(lines) {
			return "", fmt.Errorf("frontmatter entry %q out of line range", e.key)
		}

		if d.dirty[e.key] && e.val.Kind == yaml.ScalarNode {
			// Column-zero comment and blank lines trailing the entry
			// are not part of the value; they are kept verbatim after
			// the replacement.
			trail := end
			for trail > start+1 && standaloneLine(lines[trail-1]) {
				trail--
			}
			out, err := marshalEntry(e.key, e.val.Value)
			if err != nil {
				return "", err
			}
			buf.WriteString(out)
			for _, line := range lines[trail:end] {
				buf.WriteString(line)
			}
			continue
		}
		for _, line := range lines[start:end] {
			buf.WriteString(line)
		}
	}
	return buf.String(), nil
}

// standaloneLine reports a blank line or a comment starting at column
// zero. Indented lines never qualify: they may be block scalar content.
func standaloneLine(line string) bool {
	t := strings.TrimRight(line, "\r\n")
	return t == "" || strings.HasPrefix(t, "#")
}

// marshalEntry renders a single key/value pair as YAML. The yaml
// library picks an appropriate scalar style (plain, quoted, or block)
// for the replacement value.
func marshalEntry(key, value string) (string, error) {
	node := &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: key},
			{Kind: yaml.ScalarNode, Value: value},
		},
	}
	out, err := yaml.Marshal(node)
	if err != nil {
		return "", fmt.Errorf("marshaling frontmatter field %q: %w", key, err)
	}
	return string(out), nil
}
