package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/parser"
)

// Worker processes a single document job.
type Worker struct {
	jobs     *JobStore
	stats    *ExtractStats
	log      *slog.Logger
	opts     outline.Options
	maxPages int
}

func NewWorker(jobs *JobStore, stats *ExtractStats, log *slog.Logger, opts outline.Options, maxPages int) *Worker {
	return &Worker{
		jobs:     jobs,
		stats:    stats,
		log:      log,
		opts:     opts,
		maxPages: maxPages,
	}
}

// Process parses the job's PDF and extracts its outline.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID, "filename", job.Filename)

	// Phase 0: Dedup against finished jobs with identical bytes.
	if prev := w.jobs.FindCompleted(job.ContentHash, job.ID); prev != nil {
		log.Info("duplicate document, reusing outline", "existing_job_id", prev.ID)
		res := *prev.Result()
		if job.Title != "" {
			res.Title = job.Title
		}
		job.Complete(&res, prev.ID)
		return
	}

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename, w.maxPages, log)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	doc, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	job.SetParsed(len(doc.Pages), doc.Glyphs())
	log.Info("parsed document", "pages", len(doc.Pages), "glyphs", doc.Glyphs())

	// Phase 2: Classify
	job.SetStatus(StatusClassifying, "classifying")
	start := time.Now()
	res, err := outline.Extract(ctx, doc.Pages, w.opts)
	if err != nil {
		log.Error("outline extraction failed", "error", err)
		job.AddError(fmt.Sprintf("extract: %s", err))
		job.SetStatus(StatusFailed, "classifying")
		return
	}
	elapsed := time.Since(start)
	w.stats.Record(elapsed, len(doc.Pages))

	if job.Title != "" {
		res.Title = job.Title
	}
	job.Complete(res, "")
	log.Info("outline complete",
		"headings", len(res.Outline),
		"extra_headings", len(res.ExtraHeadings),
		"duration_ms", elapsed.Milliseconds(),
	)
}
