// Package testutil builds small PDF fixtures for tests.
package testutil

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/go-pdf/fpdf"
)

// Line is one line of text placed on a fixture page.
type Line struct {
	Text string
	Size float64
	Bold bool
	Y    float64 // Baseline, in PDF points from the bottom edge.
}

// Page is the list of lines on one fixture page.
type Page []Line

// Fixture pages are US Letter, in points.
const (
	PageWidth  = 612.0
	PageHeight = 792.0
)

const leftMargin = 72.0

// BuildPDF renders pages onto Letter-sized pages using the core Helvetica
// fonts.
func BuildPDF(pages ...Page) ([]byte, error) {
	return BuildSizedPDF(PageWidth, PageHeight, pages...)
}

// BuildSizedPDF is BuildPDF with a custom page size in points. The size is
// written once on the page tree root and inherited by every page.
func BuildSizedPDF(width, height float64, pages ...Page) ([]byte, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: width, Ht: height},
	})
	for _, p := range pages {
		pdf.AddPage()
		for _, l := range p {
			style := ""
			if l.Bold {
				style = "B"
			}
			pdf.SetFont("Helvetica", style, l.Size)
			pdf.Text(leftMargin, height-l.Y, l.Text)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// PDF is BuildPDF for tests; it fails t on error.
func PDF(t testing.TB, pages ...Page) []byte {
	t.Helper()
	data, err := BuildPDF(pages...)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

// WritePDF writes a fixture PDF into dir and returns its path.
func WritePDF(dir, name string, pages ...Page) (string, error) {
	data, err := BuildPDF(pages...)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// SampleDocument is a three-page report: a cover page, a page with an H1
// and an H3, and a page whose H1 wraps over two lines.
func SampleDocument() []Page {
	return []Page{
		{
			{Text: "Market Review", Size: 24, Bold: true, Y: 700},
			{Text: "Quarterly Edition", Size: 14, Y: 660},
		},
		{
			{Text: "Introduction", Size: 18, Bold: true, Y: 700},
			{Text: "This is body text on the page", Size: 10, Y: 670},
			{Text: "This is body text on the page", Size: 10, Y: 655},
			{Text: "This is body text on the page", Size: 10, Y: 640},
			{Text: "Scope and Goals", Size: 14, Bold: true, Y: 600},
		},
		{
			{Text: "Results of the", Size: 18, Bold: true, Y: 700},
			{Text: "Market Study", Size: 18, Bold: true, Y: 678},
			{Text: "This is body text on the page", Size: 10, Y: 640},
			{Text: "Key Findings", Size: 10, Bold: true, Y: 625},
			{Text: "This is body text on the page", Size: 10, Y: 610},
			{Text: "This is body text on the page", Size: 10, Y: 595},
		},
	}
}
