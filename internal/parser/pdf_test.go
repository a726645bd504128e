package parser

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/docoutline/internal/layout"
	"github.com/dgallion1/docoutline/internal/testutil"
)

func lineTexts(glyphs []layout.Glyph) []string {
	var out []string
	for _, b := range layout.GroupLines(glyphs, layout.DefaultLineTolerance) {
		out = append(out, b.Text)
	}
	return out
}

func TestPDFParser_Glyphs(t *testing.T) {
	data := testutil.PDF(t, testutil.SampleDocument()...)

	p := &PDFParser{}
	doc, err := p.Parse(bytes.NewReader(data), "report.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Filename != "report.pdf" {
		t.Errorf("expected filename %q, got %q", "report.pdf", doc.Filename)
	}
	if len(doc.Pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(doc.Pages))
	}
	if doc.Glyphs() == 0 {
		t.Fatal("expected glyphs")
	}

	first := doc.Pages[0][0]
	if first.Font != "Helvetica-Bold" {
		t.Errorf("expected font Helvetica-Bold, got %q", first.Font)
	}
	if first.Size != 24 {
		t.Errorf("expected size 24, got %v", first.Size)
	}
	if want := testutil.PageHeight - (700 + 24); first.Top != want {
		t.Errorf("expected top %v, got %v", want, first.Top)
	}

	got := lineTexts(doc.Pages[0])
	want := []string{"Market Review", "Quarterly Edition"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("page 0 lines: expected %q, got %q", want, got)
	}

	got = lineTexts(doc.Pages[2])
	if len(got) != 6 || got[0] != "Results of the" || got[3] != "Key Findings" {
		t.Errorf("unexpected page 2 lines: %q", got)
	}
}

func TestPDFParser_InheritedMediaBox(t *testing.T) {
	const height = 842.0
	data, err := testutil.BuildSizedPDF(595, height, testutil.Page{
		{Text: "Heading", Size: 20, Bold: true, Y: 800},
	})
	if err != nil {
		t.Fatal(err)
	}

	doc, err := (&PDFParser{}).Parse(bytes.NewReader(data), "a4.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Pages) != 1 || len(doc.Pages[0]) == 0 {
		t.Fatalf("expected glyphs on one page, got %v", doc.Pages)
	}
	if want := height - (800 + 20); doc.Pages[0][0].Top != want {
		t.Errorf("expected top %v from the inherited page height, got %v", want, doc.Pages[0][0].Top)
	}
}

func TestPDFParser_ParseFile(t *testing.T) {
	path, err := testutil.WritePDF(t.TempDir(), "doc.pdf", testutil.SampleDocument()...)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := (&PDFParser{}).ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Filename != path {
		t.Errorf("expected filename %q, got %q", path, doc.Filename)
	}
	if len(doc.Pages) != 3 {
		t.Errorf("expected 3 pages, got %d", len(doc.Pages))
	}
}

func TestPDFParser_MaxPages(t *testing.T) {
	data := testutil.PDF(t, testutil.SampleDocument()...)
	p := &PDFParser{MaxPages: 2}
	_, err := p.Parse(bytes.NewReader(data), "big.pdf")
	if !errors.Is(err, ErrTooManyPages) {
		t.Fatalf("expected ErrTooManyPages, got %v", err)
	}
}

func TestPDFParser_NotAPDF(t *testing.T) {
	p := &PDFParser{}
	if _, err := p.Parse(strings.NewReader("plain text, not a pdf"), "fake.pdf"); err == nil {
		t.Fatal("expected error for non-pdf input")
	}
}

func TestPDFParser_MissingFile(t *testing.T) {
	p := &PDFParser{}
	if _, err := p.ParseFile(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestPDFParser_EmptyPage(t *testing.T) {
	dir := t.TempDir()
	path, err := testutil.WritePDF(dir, "blank.pdf", testutil.Page{})
	if err != nil {
		t.Fatal(err)
	}
	doc, err := (&PDFParser{}).ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Pages) != 1 || len(doc.Pages[0]) != 0 {
		t.Errorf("expected one empty page, got %v", doc.Pages)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("source file should be left in place: %v", err)
	}
}

func TestForFile(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"report.pdf", false},
		{"REPORT.PDF", false},
		{"notes.txt", true},
		{"noext", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ForFile(tt.name, 10, nil)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			pdf, ok := p.(*PDFParser)
			if !ok || pdf.MaxPages != 10 {
				t.Errorf("expected *PDFParser with MaxPages 10, got %#v", p)
			}
			if !IsSupportedExtension(tt.name) {
				t.Errorf("IsSupportedExtension(%q) = false", tt.name)
			}
		})
	}
}
