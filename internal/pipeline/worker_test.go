package pipeline

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dgallion1/docoutline/internal/config"
	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/testutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestWorker(store *JobStore) *Worker {
	return NewWorker(store, NewExtractStats(time.Hour), discardLogger(), outline.DefaultOptions(), 0)
}

func TestWorker_Process(t *testing.T) {
	store := NewJobStore(time.Hour)
	w := newTestWorker(store)

	job := NewJob("job-1", "doc-1", "report.pdf", "", testutil.PDF(t, testutil.SampleDocument()...))
	store.Put(job)
	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected completed, got %q (errors: %v)", snap.Status, snap.Progress.Errors)
	}
	if snap.Progress.Pages != 3 || snap.Progress.Headings != 3 {
		t.Errorf("unexpected progress %+v", snap.Progress)
	}

	res := job.Result()
	if res.Title != "Market Review  Quarterly Edition" {
		t.Errorf("unexpected title %q", res.Title)
	}
	want := []outline.Entry{
		{Level: outline.H1, Text: "Introduction", Page: 1},
		{Level: outline.H3, Text: "Scope and Goals", Page: 1},
		{Level: outline.H1, Text: "Results of the Market Study", Page: 2},
	}
	if len(res.Outline) != len(want) {
		t.Fatalf("expected %d entries, got %+v", len(want), res.Outline)
	}
	for i := range want {
		if res.Outline[i] != want[i] {
			t.Errorf("entry %d: expected %+v, got %+v", i, want[i], res.Outline[i])
		}
	}
	if len(res.ExtraHeadings) != 1 || res.ExtraHeadings[0].Text != "Key Findings" {
		t.Errorf("unexpected extra headings %+v", res.ExtraHeadings)
	}

	if snap := w.stats.Snapshot(); snap.Documents != 1 || snap.Pages != 3 {
		t.Errorf("expected one recorded extraction, got %+v", snap)
	}
}

func TestWorker_TitleOverride(t *testing.T) {
	store := NewJobStore(time.Hour)
	w := newTestWorker(store)

	job := NewJob("job-1", "doc-1", "report.pdf", "Custom Title", testutil.PDF(t, testutil.SampleDocument()...))
	w.Process(context.Background(), job)
	if got := job.Result(); got == nil || got.Title != "Custom Title" {
		t.Fatalf("expected overridden title, got %+v", got)
	}
}

func TestWorker_Duplicate(t *testing.T) {
	store := NewJobStore(time.Hour)
	w := newTestWorker(store)
	data := testutil.PDF(t, testutil.SampleDocument()...)

	first := NewJob("first", "doc-1", "a.pdf", "", data)
	store.Put(first)
	w.Process(context.Background(), first)

	second := NewJob("second", "doc-2", "b.pdf", "", data)
	store.Put(second)
	w.Process(context.Background(), second)

	snap := second.Snapshot()
	if snap.Status != StatusDupSkipped || snap.DuplicateOf != "first" {
		t.Fatalf("expected duplicate of first, got %q/%q", snap.Status, snap.DuplicateOf)
	}
	if len(second.Result().Outline) != 3 {
		t.Errorf("expected copied outline, got %+v", second.Result().Outline)
	}
	if w.stats.Snapshot().Documents != 1 {
		t.Error("duplicate should not be re-extracted")
	}
}

func TestWorker_Failures(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		phase    string
	}{
		{"unsupported", "notes.txt", []byte("hello"), "parsing"},
		{"malformed", "broken.pdf", []byte("%PDF-1.4\nnot really a pdf"), "parsing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewJobStore(time.Hour)
			job := NewJob("job", "doc", tt.filename, "", tt.data)
			newTestWorker(store).Process(context.Background(), job)

			snap := job.Snapshot()
			if snap.Status != StatusFailed || snap.Phase != tt.phase {
				t.Fatalf("expected failed/%s, got %q/%q", tt.phase, snap.Status, snap.Phase)
			}
			if len(snap.Progress.Errors) == 0 {
				t.Error("expected a recorded error")
			}
			if job.Result() != nil {
				t.Error("failed job should have no result")
			}
		})
	}
}

func TestWorker_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	job := NewJob("job", "doc", "report.pdf", "", testutil.PDF(t, testutil.SampleDocument()...))
	newTestWorker(NewJobStore(time.Hour)).Process(ctx, job)

	snap := job.Snapshot()
	if snap.Status != StatusFailed || snap.Phase != "classifying" {
		t.Fatalf("expected failed/classifying, got %q/%q", snap.Status, snap.Phase)
	}
}

func testConfig() config.Config {
	cfg := config.Load()
	cfg.WorkerCount = 2
	cfg.MaxQueueSize = 4
	return cfg
}

func TestOrchestrator_SubmitAndProcess(t *testing.T) {
	o := NewOrchestrator(testConfig(), discardLogger())
	o.Start(context.Background())
	defer o.Stop()

	job := NewJob("orch-1", "doc", "report.pdf", "", testutil.PDF(t, testutil.SampleDocument()...))
	if err := o.Submit(job); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if o.GetJob("orch-1") != job {
		t.Fatal("expected job to be registered")
	}

	deadline := time.Now().Add(5 * time.Second)
	for !job.Snapshot().Status.Done() {
		if time.Now().After(deadline) {
			t.Fatalf("job did not finish, status %q", job.Snapshot().Status)
		}
		time.Sleep(10 * time.Millisecond)
	}
	if job.Snapshot().Status != StatusCompleted {
		t.Fatalf("expected completed, got %+v", job.Snapshot())
	}
	if o.Stats().Snapshot().Documents != 1 {
		t.Error("expected extraction to be recorded")
	}
}

func TestOrchestrator_QueueFull(t *testing.T) {
	cfg := testConfig()
	cfg.MaxQueueSize = 1
	o := NewOrchestrator(cfg, discardLogger())
	// Workers are not started, so the queue never drains.
	defer o.Stop()

	if err := o.Submit(NewJob("a", "d", "a.pdf", "", []byte("a"))); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	overflow := NewJob("b", "d", "b.pdf", "", []byte("b"))
	if err := o.Submit(overflow); err == nil {
		t.Fatal("expected queue full error")
	}
	if snap := overflow.Snapshot(); snap.Status != StatusFailed || snap.Phase != "queue_full" {
		t.Errorf("expected failed/queue_full, got %q/%q", snap.Status, snap.Phase)
	}
	if o.QueueDepth() != 1 {
		t.Errorf("expected queue depth 1, got %d", o.QueueDepth())
	}
}
