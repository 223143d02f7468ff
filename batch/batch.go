// Package batch runs document transformations over a set of
// translation pairs with bounded concurrency. Documents are
// independent, so the batch parallelizes freely up to the worker
// limit; each document is read, transformed, and written atomically,
// and pairing is injective so no two workers ever target the same
// output path.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/renameio"
	"golang.org/x/sync/errgroup"

	"github.com/tarjemkit/tarjem/lockfile"
	"github.com/tarjemkit/tarjem/mdfile"
	"github.com/tarjemkit/tarjem/scan"
	"github.com/tarjemkit/tarjem/transform"
	"github.com/tarjemkit/tarjem/translate"
)

// Status is the outcome of one document in the batch.
type Status int

const (
	// Written: the translated document was written.
	Written Status = iota
	// WrittenPartial: written, but one or more units kept their
	// original text.
	WrittenPartial
	// Skipped: nothing was done (unchanged source, or dry run).
	Skipped
	// Failed: no file was written for this document.
	Failed
)

func (s Status) String() string {
	switch s {
	case Written:
		return "written"
	case WrittenPartial:
		return "partial"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// DocResult records the outcome for one source document.
type DocResult struct {
	Source string
	Target string
	Status Status
	// Reason explains Skipped and Failed outcomes.
	Reason string
	// UnitFailures lists the untranslated units of a partial document.
	UnitFailures []transform.UnitFailure
}

// Result is the aggregate outcome of one batch run.
type Result struct {
	Docs []DocResult
}

// Counts returns the number of written (full or partial), skipped, and
// failed documents.
func (r *Result) Counts() (written, skipped, failed int) {
	for _, d := range r.Docs {
		switch d.Status {
		case Written, WrittenPartial:
			written++
		case Skipped:
			skipped++
		case Failed:
			failed++
		}
	}
	return
}

// Incomplete returns the documents that did not receive a full
// translation — failed outright or written with unit fallbacks —
// sorted by source path.
func (r *Result) Incomplete() []DocResult {
	var out []DocResult
	for _, d := range r.Docs {
		if d.Status == Failed || d.Status == WrittenPartial {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Source < out[j].Source })
	return out
}

// Options configures a batch run.
type Options struct {
	// Workers bounds concurrent document transforms (default 3).
	Workers int
	// RequestDelay spaces out task launches to respect provider
	// rate limits.
	RequestDelay time.Duration
	// DryRun classifies and logs but writes nothing.
	DryRun bool
	// Force translates even documents the lock file marks unchanged.
	Force bool
	// Transform configures the per-document transformation.
	Transform transform.Options
	// Lock, when set, is consulted to skip suspect documents whose
	// source is unchanged since the last successful run, and updated
	// after each write.
	Lock *lockfile.LockFile

	// OnProgress is called after each document completes.
	OnProgress func(done, total int)
	// OnLog emits log messages during the run.
	OnLog func(format string, args ...any)
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return 3
}

func (o Options) log(format string, args ...any) {
	if o.OnLog != nil {
		o.OnLog(format, args...)
	}
}

// Run transforms every pair through the backend and writes the results.
//
// Per-document failures never abort the batch. Backend unavailability
// (including a rate limit that survived its retry cap) stops all
// further backend calls; documents not yet started are reported as
// failed while already-written documents stay on disk. Cancelling ctx
// lets in-flight documents finish their write but starts no new ones.
func Run(ctx context.Context, pairs []scan.Pair, backend translate.Backend, opts Options) *Result {
	total := len(pairs)
	result := &Result{Docs: make([]DocResult, 0, total)}

	var (
		mu          sync.Mutex
		done        int64
		backendDown atomic.Bool
	)
	record := func(d DocResult) {
		mu.Lock()
		result.Docs = append(result.Docs, d)
		mu.Unlock()
		n := atomic.AddInt64(&done, 1)
		if opts.OnProgress != nil {
			opts.OnProgress(int(n), total)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())

	for i, p := range pairs {
		if ctx.Err() != nil {
			record(DocResult{Source: p.Source, Target: p.Target, Status: Failed, Reason: "cancelled before start"})
			continue
		}
		if i > 0 && opts.RequestDelay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(opts.RequestDelay):
			}
		}

		pair := p
		g.Go(func() error {
			record(processOne(gctx, pair, backend, opts, &backendDown))
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(result.Docs, func(i, j int) bool { return result.Docs[i].Source < result.Docs[j].Source })
	return result
}

func processOne(ctx context.Context, p scan.Pair, backend translate.Backend, opts Options, backendDown *atomic.Bool) DocResult {
	res := DocResult{Source: p.Source, Target: p.Target}

	if backendDown.Load() {
		res.Status = Failed
		res.Reason = "backend unavailable"
		return res
	}

	data, err := os.ReadFile(p.Source)
	if err != nil {
		res.Status = Failed
		res.Reason = fmt.Sprintf("reading source: %v", err)
		return res
	}

	lang := opts.Transform.TargetLang
	if lang == "" {
		lang = "ar"
	}
	if p.Class == scan.Suspect && opts.Lock != nil && !opts.Force &&
		!opts.Lock.IsChanged(lang, p.Source, data) {
		res.Status = Skipped
		res.Reason = "source unchanged since last translation"
		return res
	}

	doc, err := mdfile.Decode(data)
	if err != nil {
		res.Status = Failed
		res.Reason = err.Error()
		return res
	}
	doc.Path = p.Source

	outcome, err := transform.Transform(ctx, doc, backend, opts.Transform)
	if err != nil {
		var unavailable *translate.BackendUnavailableError
		if errors.As(err, &unavailable) {
			backendDown.Store(true)
			opts.log("backend %s unavailable, aborting remaining calls", unavailable.Provider)
		}
		res.Status = Failed
		res.Reason = err.Error()
		return res
	}

	if opts.DryRun {
		res.Status = Skipped
		res.Reason = "dry run"
		return res
	}

	if err := renameio.WriteFile(p.Target, outcome.Output, 0644); err != nil {
		res.Status = Failed
		res.Reason = fmt.Sprintf("writing target: %v", err)
		return res
	}

	if opts.Lock != nil {
		opts.Lock.Update(lang, p.Source, data)
	}

	if len(outcome.Failures) > 0 {
		res.Status = WrittenPartial
		res.UnitFailures = outcome.Failures
		res.Reason = fmt.Sprintf("%d unit(s) kept original text", len(outcome.Failures))
	} else {
		res.Status = Written
	}
	return res
}
