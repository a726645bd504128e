package outline

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/dgallion1/docoutline/internal/layout"
)

// DefaultExceptionPage is the page index whose isolated styled lines are
// reported as page candidates.
const DefaultExceptionPage = 10

var (
	// ErrNoPages is returned for a document without pages.
	ErrNoPages = errors.New("document has no pages")

	// ErrMalformedGlyph marks glyph geometry the extractor cannot order.
	ErrMalformedGlyph = errors.New("malformed glyph")
)

// GlyphError reports a malformed glyph and where it was found.
type GlyphError struct {
	Page  int
	Index int
	Err   error
}

func (e *GlyphError) Error() string {
	return fmt.Sprintf("page %d glyph %d: %s", e.Page, e.Index, e.Err)
}

func (e *GlyphError) Unwrap() error { return e.Err }

// Options controls outline extraction.
type Options struct {
	LineTolerance float64 // Vertical tolerance for grouping glyphs into lines.
	ExceptionPage int     // Page index checked for isolated styled lines; negative disables.
	Workers       int     // Pages classified concurrently.
}

// DefaultOptions returns the standard extraction settings.
func DefaultOptions() Options {
	return Options{
		LineTolerance: layout.DefaultLineTolerance,
		ExceptionPage: DefaultExceptionPage,
		Workers:       4,
	}
}

// pageResult holds everything one page contributes, so pages can be
// classified independently and folded in page order afterwards.
type pageResult struct {
	headings   []Heading
	nonPassage []Block
	extras     []StyledBlock
	candidates []StyledBlock
}

// Extract builds the outline of a document from its pages' glyphs. The first
// page only yields the title. The remaining pages are classified
// concurrently; their headings then pass through one accumulator in page
// order, so the result matches a sequential walk of the document.
func Extract(ctx context.Context, pages [][]layout.Glyph, opts Options) (*Result, error) {
	if len(pages) == 0 {
		return nil, ErrNoPages
	}
	if opts.LineTolerance <= 0 {
		opts.LineTolerance = layout.DefaultLineTolerance
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	for i, glyphs := range pages {
		if err := validateGlyphs(i, glyphs); err != nil {
			return nil, err
		}
	}

	res := newResult()
	var titleFonts map[string]bool
	res.Title, titleFonts = ExtractTitle(layout.GroupLines(pages[0], opts.LineTolerance))

	perPage := make([]pageResult, len(pages))
	sem := make(chan struct{}, opts.Workers)
	var wg sync.WaitGroup
	for i := 1; i < len(pages); i++ {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			perPage[i] = classifyPage(i, pages[i], titleFonts, opts)
		}(i)
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var acc Accumulator
	for _, pr := range perPage[1:] {
		for _, h := range pr.headings {
			if e, ok := acc.Observe(h); ok {
				res.Outline = append(res.Outline, e)
			}
		}
		res.NonPassageBlocks = append(res.NonPassageBlocks, pr.nonPassage...)
		res.ExtraHeadings = append(res.ExtraHeadings, pr.extras...)
		res.PageCandidates = append(res.PageCandidates, pr.candidates...)
	}
	if e, ok := acc.Flush(); ok {
		res.Outline = append(res.Outline, e)
	}

	return res, nil
}

func classifyPage(page int, glyphs []layout.Glyph, titleFonts map[string]bool, opts Options) pageResult {
	blocks := layout.GroupLines(glyphs, opts.LineTolerance)
	c := Classifier{Profile: ProfilePage(blocks), TitleFonts: titleFonts}

	var pr pageResult
	for i, b := range blocks {
		var prev, next *layout.TextBlock
		if i > 0 {
			prev = &blocks[i-1]
		}
		if i+1 < len(blocks) {
			next = &blocks[i+1]
		}

		if page == opts.ExceptionPage && IsPageException(b, prev, next) {
			pr.candidates = append(pr.candidates, styled(b, page))
		}

		d := c.Classify(b, prev, next)
		switch d.Role {
		case RoleExtraHeading:
			pr.extras = append(pr.extras, styled(b, page))
		case RoleHeading:
			pr.headings = append(pr.headings, Heading{
				Level: d.Level,
				Text:  d.Text,
				Page:  page,
				Size:  b.Size,
				Font:  b.Font,
				Bold:  b.Bold,
			})
			pr.nonPassage = append(pr.nonPassage, Block{Text: d.Text, Font: b.Font, Size: b.Size, Page: page})
		case RoleNonPassage:
			pr.nonPassage = append(pr.nonPassage, Block{Text: d.Text, Font: b.Font, Size: b.Size, Page: page})
		}
	}
	return pr
}

func styled(b layout.TextBlock, page int) StyledBlock {
	return StyledBlock{
		Text:   layout.Normalize(b.Text),
		Page:   page,
		Size:   b.Size,
		Font:   b.Font,
		Bold:   b.Bold,
		Italic: b.Italic,
	}
}

func validateGlyphs(page int, glyphs []layout.Glyph) error {
	for i, g := range glyphs {
		if !finite(g.Top) || !finite(g.X0) || !finite(g.Size) {
			return &GlyphError{Page: page, Index: i, Err: ErrMalformedGlyph}
		}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
