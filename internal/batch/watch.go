package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettle is how long a PDF must go without events before it is
// processed.
const DefaultSettle = 500 * time.Millisecond

// Watcher processes the PDFs already in a directory and then every PDF that
// is created or rewritten there until its context ends.
type Watcher struct {
	Processor *Processor
	InDir     string
	OutDir    string
	Settle    time.Duration
	Log       *slog.Logger

	// OnProcessed, if set, is called with the JSON output path after each
	// attempt on a file.
	OnProcessed func(out string, err error)
}

// Run blocks until ctx is done or the file watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	settle := w.Settle
	if settle <= 0 {
		settle = DefaultSettle
	}
	if err := os.MkdirAll(w.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()
	if err := fw.Add(w.InDir); err != nil {
		return fmt.Errorf("watch %s: %w", w.InDir, err)
	}

	// Files that land between Add and this scan are seen twice; the
	// second pass just rewrites the same JSON.
	sum, err := w.Processor.ProcessDir(ctx, w.InDir, w.OutDir)
	if err != nil {
		return err
	}
	w.Log.Info("initial pass complete", "processed", sum.Processed, "failed", sum.Failed)
	for _, out := range sum.Outputs {
		w.notify(out, nil)
	}

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(settle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !IsPDF(ev.Name) || !(ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Write)) {
				continue
			}
			pending[ev.Name] = time.Now()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.Log.Warn("watcher error", "error", err)

		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) < settle {
					continue
				}
				delete(pending, path)
				w.process(ctx, path)
			}
		}
	}
}

func (w *Watcher) process(ctx context.Context, path string) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return
	}
	out, err := w.Processor.ProcessFile(ctx, path, w.OutDir)
	if err != nil {
		w.Log.Error("failed to process file", "file", filepath.Base(path), "error", err)
		out = OutputPath(path, w.OutDir)
	}
	w.notify(out, err)
}

func (w *Watcher) notify(out string, err error) {
	if w.OnProcessed != nil {
		w.OnProcessed(out, err)
	}
}
