// Package transform orchestrates the translation of one document: it
// runs the translatable frontmatter fields and the body through the
// protected-span extractor and a translation backend, restores the
// protected spans, and re-encodes the document. It performs no file
// I/O; callers own reading sources and writing results.
package transform

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/tarjemkit/tarjem/glossary"
	"github.com/tarjemkit/tarjem/mdfile"
	"github.com/tarjemkit/tarjem/protect"
	"github.com/tarjemkit/tarjem/translate"
)

// Options configures a transformation.
type Options struct {
	// TargetLang is the target language code (default "ar").
	TargetLang string
	// Fields is the closed set of frontmatter keys eligible for
	// translation. Defaults to mdfile.TranslatableFields.
	Fields []string
	// Glossary enforces fixed term translations. Defaults to the
	// built-in set.
	Glossary glossary.Glossary
	// Protect configures the protected-span extractor.
	Protect protect.Options
}

func (o Options) targetLang() string {
	if o.TargetLang != "" {
		return o.TargetLang
	}
	return "ar"
}

func (o Options) fields() []string {
	if o.Fields != nil {
		return o.Fields
	}
	return mdfile.TranslatableFields
}

// UnitFailure records a per-unit translation failure that did not
// prevent the document from being emitted: the unit keeps its original
// text and the reason is surfaced in the audit report.
type UnitFailure struct {
	// Unit is the frontmatter key, or "body".
	Unit string
	// Err is the underlying failure.
	Err error
}

func (f UnitFailure) String() string {
	return fmt.Sprintf("%s: %v", f.Unit, f.Err)
}

// Outcome is the result of transforming one document.
type Outcome struct {
	// Output is the encoded translated document.
	Output []byte
	// Failures lists units that fell back to their original text,
	// sorted by unit name for stable reporting.
	Failures []UnitFailure
}

// Transform translates doc in place and returns its encoded form.
//
// Each translatable field present in the frontmatter, and then the
// body, is masked, translated, and restored individually. Placeholder
// corruption and empty responses degrade that one unit to its original
// text and are recorded as failures; only backend unavailability (or
// cancellation) aborts the transform.
func Transform(ctx context.Context, doc *mdfile.Document, backend translate.Backend, opts Options) (*Outcome, error) {
	out := &Outcome{}

	req := translate.Request{
		TargetLang: opts.targetLang(),
		Glossary:   opts.Glossary,
	}

	allowed := make(map[string]bool, len(opts.fields()))
	for _, k := range opts.fields() {
		allowed[k] = true
	}

	// Fields are visited in document order; keys outside the
	// translatable set pass through untouched.
	for _, key := range doc.Fields() {
		if !allowed[key] {
			continue
		}
		val, ok := doc.Field(key)
		if !ok || val == "" {
			continue
		}

		fieldReq := req
		fieldReq.Kind = translate.KindField
		fieldReq.Context = fmt.Sprintf("frontmatter field %q of %s", key, doc.Path)

		translated, err := translateUnit(ctx, backend, val, fieldReq, opts.Protect)
		if err != nil {
			if fatal(err) {
				return nil, err
			}
			out.Failures = append(out.Failures, UnitFailure{Unit: key, Err: err})
			continue
		}
		doc.SetField(key, translated)
	}

	body := doc.Body()
	if body != "" {
		bodyReq := req
		bodyReq.Kind = translate.KindBody
		bodyReq.Context = fmt.Sprintf("documentation file %s", doc.Path)

		translated, err := translateUnit(ctx, backend, body, bodyReq, opts.Protect)
		if err != nil {
			if fatal(err) {
				return nil, err
			}
			out.Failures = append(out.Failures, UnitFailure{Unit: "body", Err: err})
		} else {
			doc.SetBody(translated)
		}
	}

	sort.Slice(out.Failures, func(i, j int) bool {
		return out.Failures[i].Unit < out.Failures[j].Unit
	})

	encoded, err := doc.Encode()
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", doc.Path, err)
	}
	out.Output = encoded
	return out, nil
}

// translateUnit runs one unit of text through protect → translate →
// restore.
func translateUnit(ctx context.Context, backend translate.Backend, text string, req translate.Request, po protect.Options) (string, error) {
	masked, table := po.Protect(text)

	translated, err := backend.Translate(ctx, masked, req)
	if err != nil {
		return "", err
	}

	restored, err := protect.Restore(translated, table)
	if err != nil {
		return "", err
	}
	return restored, nil
}

// fatal reports errors that must abort the whole transform rather than
// degrade a single unit.
func fatal(err error) bool {
	var unavailable *translate.BackendUnavailableError
	return errors.As(err, &unavailable) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
