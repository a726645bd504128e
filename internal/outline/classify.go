package outline

import (
	"unicode"
	"unicode/utf8"

	"github.com/dgallion1/docoutline/internal/layout"
)

const (
	minBlockChars       = 4
	minBlockSize        = 10.0
	bodySizeCeiling     = 11.0 // sizes at or below this are body-sized
	maxExtraHeadingWord = 10
	maxExceptionWords   = 12
)

// Role is the part a line block plays in the outline.
type Role int

const (
	RoleIgnored      Role = iota // too short, not starting with a letter, or too small
	RoleBody                     // ordinary text
	RoleExtraHeading             // small styled line isolated from its neighbors
	RoleNonPassage               // large single-font line with no heading rank
	RoleHeading                  // ranked H1-H4 line
)

func (r Role) String() string {
	switch r {
	case RoleIgnored:
		return "ignored"
	case RoleBody:
		return "body"
	case RoleExtraHeading:
		return "extra_heading"
	case RoleNonPassage:
		return "non_passage"
	case RoleHeading:
		return "heading"
	}
	return "unknown"
}

// Decision is the classification of one block.
type Decision struct {
	Role  Role
	Level Level  // set when Role is RoleHeading
	Text  string // normalized block text
}

// Classifier assigns roles to the blocks of one page.
type Classifier struct {
	Profile    FontProfile
	TitleFonts map[string]bool
}

// Classify decides the role of b given its immediate neighbors on the page.
// prev and next are nil at the page edges.
func (c Classifier) Classify(b layout.TextBlock, prev, next *layout.TextBlock) Decision {
	text := layout.Normalize(b.Text)
	d := Decision{Role: RoleIgnored, Text: text}

	if utf8.RuneCountInString(text) < minBlockChars || b.Size < minBlockSize {
		return d
	}
	if first, _ := utf8.DecodeRuneInString(text); !unicode.IsLetter(first) {
		return d
	}

	if b.Size <= bodySizeCeiling {
		d.Role = RoleBody
		if b.SingleFont() && (b.Bold || b.Italic) &&
			layout.WordCount(text) <= maxExtraHeadingWord &&
			!continues(b, prev) && !continues(b, next) {
			d.Role = RoleExtraHeading
		}
		return d
	}

	if !b.SingleFont() {
		d.Role = RoleBody
		return d
	}

	d.Role = RoleNonPassage
	if level, ok := c.Level(b.Size, b.Font, b.Bold); ok {
		d.Role = RoleHeading
		d.Level = level
	}
	return d
}

// Level maps a size to a heading level by its rank on the page: the largest
// candidate size is H1 when set in a title font and H2 otherwise, the second
// is H3, and the third is H4 for bold text only. Classify only consults it for
// sizes above the body ceiling.
func (c Classifier) Level(size float64, font string, bold bool) (Level, bool) {
	switch c.Profile.Rank(size) {
	case 0:
		if c.TitleFonts[font] {
			return H1, true
		}
		return H2, true
	case 1:
		return H3, true
	case 2:
		if bold {
			return H4, true
		}
	}
	return "", false
}

// IsPageException reports whether b stands out from both neighbors on an
// exception page: a short single-font bold or italic line whose font or
// style signature differs from each neighbor.
func IsPageException(b layout.TextBlock, prev, next *layout.TextBlock) bool {
	if !b.SingleFont() || !(b.Bold || b.Italic) {
		return false
	}
	if layout.WordCount(layout.Normalize(b.Text)) > maxExceptionWords {
		return false
	}
	return differs(b, prev) && differs(b, next)
}

// continues reports whether n looks like the same run of text as b: same
// font and either the same weight or the same slant.
func continues(b layout.TextBlock, n *layout.TextBlock) bool {
	return n != nil && n.Font == b.Font && (n.Bold == b.Bold || n.Italic == b.Italic)
}

func differs(b layout.TextBlock, n *layout.TextBlock) bool {
	return n == nil || n.Font != b.Font || (n.Bold != b.Bold && n.Italic != b.Italic)
}
