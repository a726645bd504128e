// Package batch writes the outline of every PDF in an input directory to a
// JSON file in an output directory, once or continuously.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/parser"
	"github.com/dgallion1/docoutline/internal/render"
)

// outputIndent is the indentation of batch JSON files.
const outputIndent = "    "

// Processor turns PDF files into outline JSON files.
type Processor struct {
	Opts     outline.Options
	MaxPages int
	Log      *slog.Logger
}

// Summary counts the outcome of a directory pass.
type Summary struct {
	Processed int
	Failed    int
	Outputs   []string
}

// IsPDF reports whether name has a .pdf extension in any letter case.
func IsPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}

// OutputPath returns the JSON path for a PDF: <outDir>/<stem>.json.
func OutputPath(pdfPath, outDir string) string {
	base := filepath.Base(pdfPath)
	return filepath.Join(outDir, strings.TrimSuffix(base, filepath.Ext(base))+".json")
}

// ProcessDir processes every PDF directly inside inDir. A file that fails is
// logged and counted; the pass continues with the next file.
func (p *Processor) ProcessDir(ctx context.Context, inDir, outDir string) (Summary, error) {
	var sum Summary

	entries, err := os.ReadDir(inDir)
	if err != nil {
		return sum, fmt.Errorf("read input dir: %w", err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return sum, fmt.Errorf("create output dir: %w", err)
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if !e.Type().IsRegular() || !IsPDF(e.Name()) {
			continue
		}
		out, err := p.ProcessFile(ctx, filepath.Join(inDir, e.Name()), outDir)
		if err != nil {
			p.Log.Error("failed to process file", "file", e.Name(), "error", err)
			sum.Failed++
			continue
		}
		sum.Processed++
		sum.Outputs = append(sum.Outputs, out)
	}
	return sum, nil
}

// ProcessFile extracts the outline of one PDF and writes it to outDir. The
// JSON file is written under a temporary name and renamed into place.
func (p *Processor) ProcessFile(ctx context.Context, path, outDir string) (string, error) {
	res, err := p.Extract(ctx, path)
	if err != nil {
		return "", err
	}

	out := OutputPath(path, outDir)
	tmp, err := os.CreateTemp(outDir, ".docoutline-*.json")
	if err != nil {
		return "", fmt.Errorf("create output: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := render.WriteJSON(tmp, res, outputIndent); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close output: %w", err)
	}
	if err := os.Rename(tmp.Name(), out); err != nil {
		return "", fmt.Errorf("rename output: %w", err)
	}
	return out, nil
}

// Extract parses the PDF at path and returns its outline.
func (p *Processor) Extract(ctx context.Context, path string) (*outline.Result, error) {
	start := time.Now()
	pdf := &parser.PDFParser{MaxPages: p.MaxPages, Log: p.Log}
	doc, err := pdf.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	res, err := outline.Extract(ctx, doc.Pages, p.Opts)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", filepath.Base(path), err)
	}
	p.Log.Info("processed file",
		"file", filepath.Base(path),
		"pages", len(doc.Pages),
		"headings", len(res.Outline),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}
