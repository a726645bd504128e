package parser

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docoutline/internal/layout"
)

// Document is the glyph-level content of a parsed file, one slice per page.
type Document struct {
	Filename string
	Pages    [][]layout.Glyph
}

// Glyphs returns the total number of glyphs across all pages.
func (d *Document) Glyphs() int {
	n := 0
	for _, p := range d.Pages {
		n += len(p)
	}
	return n
}

// Parser converts raw document bytes into per-page glyphs.
type Parser interface {
	Parse(r io.Reader, filename string) (*Document, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".pdf": true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, maxPages int, log *slog.Logger) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return &PDFParser{MaxPages: maxPages, Log: log}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}
