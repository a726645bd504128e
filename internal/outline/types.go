// Package outline infers a document outline (title and H1-H4 headings) from
// line blocks, using font size rank, weight, slant and font continuity with
// neighboring lines.
package outline

// Level is an outline heading level.
type Level string

const (
	H1 Level = "H1"
	H2 Level = "H2"
	H3 Level = "H3"
	H4 Level = "H4"
)

// Depth returns 1-4 for H1-H4 and 0 for anything else.
func (l Level) Depth() int {
	switch l {
	case H1:
		return 1
	case H2:
		return 2
	case H3:
		return 3
	case H4:
		return 4
	}
	return 0
}

// Entry is one finalized outline heading.
type Entry struct {
	Level Level  `json:"level" yaml:"level"`
	Text  string `json:"text" yaml:"text"`
	Page  int    `json:"page" yaml:"page"`
}

// Block is a classified non-body line kept for downstream body-text filtering.
type Block struct {
	Text string  `json:"text" yaml:"text"`
	Font string  `json:"font" yaml:"font"`
	Size float64 `json:"size" yaml:"size"`
	Page int     `json:"page" yaml:"page"`
}

// StyledBlock is a side-channel heading candidate (extra headings and
// exception-page candidates).
type StyledBlock struct {
	Text   string  `json:"text" yaml:"text"`
	Page   int     `json:"page" yaml:"page"`
	Size   float64 `json:"size" yaml:"size"`
	Font   string  `json:"font" yaml:"font"`
	Bold   bool    `json:"bold" yaml:"bold"`
	Italic bool    `json:"italic" yaml:"italic"`
}

// Result is the full outline of one document. Page numbers are 0-based
// document page indexes; page 0 only ever contributes the title.
type Result struct {
	Title            string        `json:"title" yaml:"title"`
	Outline          []Entry       `json:"outline" yaml:"outline"`
	NonPassageBlocks []Block       `json:"non_passage_blocks" yaml:"non_passage_blocks"`
	ExtraHeadings    []StyledBlock `json:"extra_headings" yaml:"extra_headings"`
	PageCandidates   []StyledBlock `json:"page_12_candidates" yaml:"page_12_candidates"`
}

func newResult() *Result {
	return &Result{
		Outline:          []Entry{},
		NonPassageBlocks: []Block{},
		ExtraHeadings:    []StyledBlock{},
		PageCandidates:   []StyledBlock{},
	}
}
