// Package scan walks a documentation tree, pairs every English
// Markdown source with its expected translated counterpart, and
// classifies each pair: the translation is present, missing, or
// present but heuristically still in the source language.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/tarjemkit/tarjem/mdfile"
	"github.com/tarjemkit/tarjem/protect"
)

// Class is the classification of a translation pair.
type Class int

const (
	// Matched: the target exists and looks translated.
	Matched Class = iota
	// Missing: no target file exists for the source.
	Missing
	// Suspect: the target exists but its content is heuristically
	// still in the source language, a placeholder, or trivially short.
	Suspect
)

func (c Class) String() string {
	switch c {
	case Matched:
		return "matched"
	case Missing:
		return "missing"
	case Suspect:
		return "suspect"
	default:
		return "unknown"
	}
}

// Pair relates one source file to its expected translation.
type Pair struct {
	// Source is the path of the English source file.
	Source string
	// Target is the expected translated counterpart path.
	Target string
	// Class is the classification result.
	Class Class
	// Reason says why a pair is Suspect.
	Reason string
}

// Options configures a scan.
type Options struct {
	// Lang is the target language code inserted before the file
	// extension (default "ar", giving <name>-ar.md).
	Lang string
	// SkipDirs are directory names pruned from the walk.
	// Defaults to assets, images, _snippets.
	SkipDirs []string
}

func (o Options) lang() string {
	if o.Lang != "" {
		return o.Lang
	}
	return "ar"
}

func (o Options) skipDirs() map[string]bool {
	dirs := o.SkipDirs
	if dirs == nil {
		dirs = []string{"assets", "images", "_snippets"}
	}
	m := make(map[string]bool, len(dirs))
	for _, d := range dirs {
		m[d] = true
	}
	return m
}

// skipFilePatterns matches files that are never translation sources.
var skipFilePatterns = regexp.MustCompile(`\.git|\.DS_Store|\.tmp$|\.log$|node_modules|\.next|__pycache__`)

// TargetPath computes the expected translation path for a source file
// by inserting the language marker before the extension:
// guide.md → guide-ar.md. The transformation is injective, so no two
// sources ever share a target.
func TargetPath(source, lang string) string {
	ext := filepath.Ext(source)
	return strings.TrimSuffix(source, ext) + "-" + lang + ext
}

// IsTarget reports whether name carries the language suffix.
func IsTarget(name, lang string) bool {
	ext := filepath.Ext(name)
	return strings.HasSuffix(strings.TrimSuffix(name, ext), "-"+lang)
}

// Scan walks root and returns the classified pairs, sorted by source
// path. Given an unchanged tree the result is identical on every call.
func Scan(root string, opts Options) ([]Pair, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scanning %s: not a directory", root)
	}

	lang := opts.lang()
	skipDirs := opts.skipDirs()

	var sources []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".md" {
			return nil
		}
		if skipFilePatterns.MatchString(path) {
			return nil
		}
		if IsTarget(d.Name(), lang) {
			return nil
		}
		sources = append(sources, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	sort.Strings(sources)

	pairs := make([]Pair, 0, len(sources))
	for _, src := range sources {
		p := Pair{Source: src, Target: TargetPath(src, lang)}
		data, err := os.ReadFile(p.Target)
		if err != nil {
			if os.IsNotExist(err) {
				p.Class = Missing
				pairs = append(pairs, p)
				continue
			}
			return nil, fmt.Errorf("reading %s: %w", p.Target, err)
		}
		if reason := suspectReason(data); reason != "" {
			p.Class = Suspect
			p.Reason = reason
		} else {
			p.Class = Matched
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

// ---------------------------------------------------------------------------
// Suspect heuristic
// ---------------------------------------------------------------------------

// Heuristic thresholds. Prose is measured with protected spans (code,
// directives, URLs) stripped, since those are legitimately non-Arabic.
const (
	// minBodyBytes: shorter targets are placeholders or stubs.
	minBodyBytes = 120
	// suspectRatio: below this Arabic-letter share, with enough Latin
	// letters present, the body is considered untranslated.
	suspectRatio = 0.15
	// minLatinLetters gates the ratio rule against short documents.
	minLatinLetters = 150
	// cueRatio: an English-cue match flags the body at a looser ratio.
	cueRatio = 0.5
)

// englishCues matches phrases characteristic of untranslated English
// documentation prose.
var englishCues = regexp.MustCompile(
	`\bPrerequisites\b|\bOverview\b|\bSummary\b|\bSteps\b` +
		`|\bNote:|\bTip:|\bWarning:` +
		`|\bThis guide\b|\bYou can\b|\bLearn more\b|\bFor example\b`)

// placeholderNote marks a file generated by the placeholder backend:
// the Arabic note, or the English note emitted for other target
// languages.
var placeholderNote = regexp.MustCompile(`هذه الصفحة تحتاج|^> \*\*ملاحظة\*\*|still needs a .+ translation|^> \*\*Note\*\*`)

// arabicLetter and latinLetter delimit the scripts counted by the
// ratio heuristic.
func arabicLetter(r rune) bool { return r >= 0x0600 && r <= 0x06FF }
func latinLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// suspectReason classifies target file content. It returns a short
// reason string when the content looks untranslated, or "" when it
// passes.
func suspectReason(data []byte) string {
	body := string(data)
	if doc, err := mdfile.Decode(data); err == nil {
		body = doc.Body()
	}

	trimmed := strings.TrimSpace(body)
	if len(trimmed) < minBodyBytes {
		return "body too short"
	}
	if placeholderNote.MatchString(trimmed) {
		return "placeholder note present"
	}

	prose := protect.Strip(body)

	var arabic, latin int
	for _, r := range prose {
		switch {
		case arabicLetter(r):
			arabic++
		case latinLetter(r):
			latin++
		}
	}
	letters := arabic + latin
	if letters == 0 {
		return ""
	}
	ratio := float64(arabic) / float64(letters)

	if englishCues.MatchString(prose) && ratio < cueRatio {
		return "english cues in prose"
	}
	if latin > minLatinLetters && ratio < suspectRatio {
		return fmt.Sprintf("arabic ratio %.2f", ratio)
	}
	return ""
}
