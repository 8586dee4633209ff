package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dgallion1/outliner/internal/doctree"
	"github.com/dgallion1/outliner/internal/outline"
	"github.com/dgallion1/outliner/internal/output"
	"github.com/dgallion1/outliner/internal/parser"
	"github.com/dgallion1/outliner/internal/sink"
)

// WorkerConfig holds the per-document limits a worker enforces.
type WorkerConfig struct {
	DocumentTimeout time.Duration
	Parser          parser.Options
}

// Worker turns one document into one outline.
type Worker struct {
	store   sink.Store
	stats   *LatencyStats
	log     *slog.Logger
	cfg     WorkerConfig
	options func() outline.Options
}

// NewWorker creates a worker. options is consulted once per document, so
// tuning changes apply to the next document processed.
func NewWorker(store sink.Store, stats *LatencyStats, log *slog.Logger, cfg WorkerConfig, options func() outline.Options) *Worker {
	if store == nil {
		store = sink.NopStore{}
	}
	if options == nil {
		options = outline.DefaultOptions
	}
	return &Worker{store: store, stats: stats, log: log, cfg: cfg, options: options}
}

// Outcome is everything learned while outlining one document.
type Outcome struct {
	Result   outline.Result
	Analysis *outline.Analysis
	Pages    int
	Spans    int
	// ParseErr is set when the document could not be read; Result is then
	// the fallback outline.
	ParseErr error
	Duration time.Duration
}

// Outline reads r with the provider for filename and runs the outline
// pipeline. Only unsupported extensions and read failures are returned as
// errors; an unreadable document yields the fallback result.
func (w *Worker) Outline(ctx context.Context, filename string, r io.Reader) (*Outcome, error) {
	start := time.Now()
	p, err := parser.ForFile(filename, w.cfg.Parser)
	if err != nil {
		return nil, err
	}

	doc, parseErr := w.parse(ctx, p, r, filename)
	if parseErr != nil {
		doc = nil
	}
	a := outline.Analyze(filename, doc, w.options())
	out := &Outcome{
		Result:   a.Result,
		Analysis: a,
		Pages:    doc.PageCount(),
		Spans:    doc.SpanCount(),
		ParseErr: parseErr,
		Duration: time.Since(start),
	}
	if w.stats != nil {
		oc := OutcomeOK
		if parseErr != nil {
			oc = OutcomeDegraded
		}
		w.stats.Record(out.Duration, oc)
	}
	return out, nil
}

// parse runs the provider under the document timeout. A provider that
// overruns is abandoned; its goroutine finishes in the background.
func (w *Worker) parse(ctx context.Context, p parser.Parser, r io.Reader, filename string) (*doctree.Document, error) {
	if w.cfg.DocumentTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.cfg.DocumentTimeout)
		defer cancel()
	}

	type parsed struct {
		doc *doctree.Document
		err error
	}
	ch := make(chan parsed, 1)
	go func() {
		doc, err := p.Parse(ctx, r, filename)
		ch <- parsed{doc, err}
	}()

	select {
	case res := <-ch:
		return res.doc, res.err
	case <-ctx.Done():
		return nil, fmt.Errorf("parse %s: %w", filename, ctx.Err())
	}
}

// Process runs the full pipeline for a queued job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID, "filename", job.Filename)

	job.SetStatus(StatusParsing, "parsing")
	out, err := w.Outline(ctx, job.Filename, bytes.NewReader(job.FileData()))
	if err != nil {
		log.Error("unsupported document", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		w.recordFailure()
		return
	}
	if out.ParseErr != nil {
		log.Warn("document unreadable, using fallback outline", "error", out.ParseErr)
		job.AddError(fmt.Sprintf("parse: %s", out.ParseErr))
		job.MarkDegraded()
	}

	job.SetStatus(StatusOutlining, "outlining")
	job.SetAnalysis(out.Pages, out.Spans, out.Analysis)
	if err := output.Validate(out.Result); err != nil {
		log.Error("outline failed validation", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "outlining")
		w.recordFailure()
		return
	}
	log.Info("outlined document",
		"pages", out.Pages,
		"body_font_size", out.Analysis.BodyFontSize,
		"headings", len(out.Result.Outline),
		"duration_ms", out.Duration.Milliseconds(),
	)

	job.SetStatus(StatusStoring, "storing")
	rec := sink.Record{
		DocID:       job.DocID,
		Filename:    job.Filename,
		ContentHash: job.ContentHash,
		StoredAt:    time.Now().UTC(),
		Result:      out.Result,
	}
	job.SetResult(out.Result)
	if err := w.store.Put(ctx, rec); err != nil {
		log.Error("store failed", "error", err)
		job.AddError(fmt.Sprintf("store: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}

	job.SetStatus(StatusCompleted, "done")
}

func (w *Worker) recordFailure() {
	if w.stats != nil {
		w.stats.Record(0, OutcomeFailed)
	}
}

// IsUnsupported reports whether err came from an unknown file extension.
func IsUnsupported(err error) bool {
	return errors.Is(err, parser.ErrUnsupported)
}
