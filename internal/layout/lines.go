// Package layout turns a page's raw character glyphs into line-level text
// blocks carrying the font metadata the outline classifier works from.
package layout

import (
	"math"
	"sort"
	"strings"
)

// DefaultLineTolerance is the vertical distance, in layout units, within which
// glyphs are considered to sit on the same line.
const DefaultLineTolerance = 3.0

// Glyph is a single character (or short fragment) as reported by the PDF reader.
// Top grows downward from the top edge of the page.
type Glyph struct {
	Text string
	Top  float64
	X0   float64
	Font string
	Size float64
}

// TextBlock is one visual line of text.
type TextBlock struct {
	Text    string  // Raw concatenated glyph text
	Size    float64 // First glyph's size, rounded to one decimal
	Font    string  // First glyph's font
	Top     float64
	Bold    bool
	Italic  bool
	Fonts   []string // Distinct fonts seen on the line, first-seen order
	LineTop float64
}

// SingleFont reports whether the whole line was set in one font.
func (b TextBlock) SingleFont() bool {
	return len(b.Fonts) == 1
}

// HasFont reports whether font occurs anywhere on the line.
func (b TextBlock) HasFont(font string) bool {
	for _, f := range b.Fonts {
		if f == font {
			return true
		}
	}
	return false
}

// IsBold reports whether a font name denotes a bold face.
func IsBold(font string) bool {
	return strings.Contains(font, "Bold")
}

// IsItalic reports whether a font name denotes an italic or oblique face.
func IsItalic(font string) bool {
	return strings.Contains(font, "Italic") || strings.Contains(font, "Oblique")
}

// RoundSize rounds a font size to one decimal place.
func RoundSize(size float64) float64 {
	return math.Round(size*10) / 10
}

// GroupLines clusters a page's glyphs into lines. Glyphs are ordered by
// (Top, X0); a glyph whose Top is more than tolerance away from the current
// line's Top starts a new line. Only the first glyph of a line decides the
// block's size, font and style; later glyphs contribute text and their font
// names.
func GroupLines(glyphs []Glyph, tolerance float64) []TextBlock {
	if len(glyphs) == 0 {
		return nil
	}

	sorted := make([]Glyph, len(glyphs))
	copy(sorted, glyphs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Top != sorted[j].Top {
			return sorted[i].Top < sorted[j].Top
		}
		return sorted[i].X0 < sorted[j].X0
	})

	var blocks []TextBlock
	var current *TextBlock
	var text strings.Builder

	flush := func() {
		if current == nil {
			return
		}
		current.Text = text.String()
		blocks = append(blocks, *current)
		text.Reset()
	}

	for _, g := range sorted {
		if current == nil || math.Abs(g.Top-current.LineTop) > tolerance {
			flush()
			current = &TextBlock{
				Size:    RoundSize(g.Size),
				Font:    g.Font,
				Top:     g.Top,
				Bold:    IsBold(g.Font),
				Italic:  IsItalic(g.Font),
				Fonts:   []string{g.Font},
				LineTop: g.Top,
			}
			text.WriteString(g.Text)
			continue
		}
		text.WriteString(g.Text)
		if !current.HasFont(g.Font) {
			current.Fonts = append(current.Fonts, g.Font)
		}
	}
	flush()

	return blocks
}
