package parser

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dgallion1/docoutline/internal/layout"
	pdflib "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// defaultPageHeight is US Letter height in points, used when a page has no
// usable MediaBox.
const defaultPageHeight = 792.0

var (
	// ErrMalformedPDF is returned when the PDF library cannot walk a page.
	ErrMalformedPDF = errors.New("malformed pdf")

	// ErrTooManyPages is returned when a document exceeds the page limit.
	ErrTooManyPages = errors.New("too many pages")
)

// PDFParser reads character glyphs from PDF files.
type PDFParser struct {
	MaxPages int          // 0 means unlimited.
	Log      *slog.Logger // Receives preflight warnings; nil discards them.
}

func (p *PDFParser) Parse(r io.Reader, filename string) (*Document, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "docoutline-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	doc, err := p.ParseFile(tmpPath)
	if err != nil {
		return nil, err
	}
	doc.Filename = filename
	return doc, nil
}

// ParseFile reads the glyphs of every page of the PDF at path. Pages the
// library cannot locate are kept as empty pages so page indexes stay aligned.
func (p *PDFParser) ParseFile(path string) (*Document, error) {
	if p.MaxPages > 0 {
		n, err := PageCount(path)
		switch {
		case err != nil:
			if p.Log != nil {
				p.Log.Warn("pdfcpu preflight failed, continuing", "path", path, "error", err)
			}
		case n > p.MaxPages:
			return nil, fmt.Errorf("%w: %d pages, limit %d", ErrTooManyPages, n, p.MaxPages)
		}
	}

	pages, err := readPages(path)
	if err != nil {
		return nil, fmt.Errorf("extract pdf glyphs: %w", err)
	}
	if p.MaxPages > 0 && len(pages) > p.MaxPages {
		return nil, fmt.Errorf("%w: %d pages, limit %d", ErrTooManyPages, len(pages), p.MaxPages)
	}
	return &Document{Filename: path, Pages: pages}, nil
}

// PageCount returns the page count reported by pdfcpu. It is cheaper than a
// full glyph walk and is used to reject oversized uploads early; pdfcpu is
// stricter than the glyph reader, so callers treat its errors as advisory.
func PageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return api.PageCount(f, nil)
}

func readPages(path string) (pages [][]layout.Glyph, err error) {
	// The PDF library panics on broken streams.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("%w: %v", ErrMalformedPDF, r)
		}
	}()

	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	numPages := reader.NumPage()
	pages = make([][]layout.Glyph, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, nil)
			continue
		}
		pages = append(pages, pageGlyphs(page))
	}
	return pages, nil
}

// pageGlyphs converts the page's text runs into glyphs. PDF coordinates grow
// upward from the bottom edge; glyph tops are measured downward from the top
// edge, approximating the glyph's top as baseline plus font size.
func pageGlyphs(page pdflib.Page) []layout.Glyph {
	height := pageHeight(page)
	content := page.Content()

	glyphs := make([]layout.Glyph, 0, len(content.Text))
	for _, t := range content.Text {
		if t.S == "" {
			continue
		}
		glyphs = append(glyphs, layout.Glyph{
			Text: t.S,
			Top:  height - (t.Y + t.FontSize),
			X0:   t.X,
			Font: t.Font,
			Size: t.FontSize,
		})
	}
	return glyphs
}

// pageHeight reads the page's MediaBox, which may be inherited from any
// ancestor in the page tree.
func pageHeight(page pdflib.Page) float64 {
	var box pdflib.Value
	for v := page.V; !v.IsNull(); v = v.Key("Parent") {
		if r := v.Key("MediaBox"); !r.IsNull() {
			box = r
			break
		}
	}
	if box.Len() != 4 {
		return defaultPageHeight
	}
	h := box.Index(3).Float64() - box.Index(1).Float64()
	if h <= 0 {
		return defaultPageHeight
	}
	return h
}
