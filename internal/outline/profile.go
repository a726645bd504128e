package outline

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/docoutline/internal/layout"
)

const (
	maxCandidateSizes = 4
	minProfileChars   = 3 // blocks must be longer than this to count
)

// FontProfile ranks the font sizes that may carry headings on one page.
type FontProfile struct {
	Top      []float64 // Most frequent sizes, most frequent first
	Distinct []float64 // Top, sorted descending
}

// ProfilePage counts the sizes of blocks whose trimmed text is longer than
// three characters and keeps the four most frequent. Equal counts keep the
// order in which the sizes were first seen on the page.
func ProfilePage(blocks []layout.TextBlock) FontProfile {
	counts := make(map[float64]int)
	var order []float64
	for _, b := range blocks {
		if utf8.RuneCountInString(strings.TrimSpace(b.Text)) <= minProfileChars {
			continue
		}
		if _, seen := counts[b.Size]; !seen {
			order = append(order, b.Size)
		}
		counts[b.Size]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > maxCandidateSizes {
		order = order[:maxCandidateSizes]
	}

	return NewFontProfile(order...)
}

// NewFontProfile builds a profile from candidate sizes listed most frequent
// first.
func NewFontProfile(top ...float64) FontProfile {
	distinct := make([]float64, len(top))
	copy(distinct, top)
	sort.Sort(sort.Reverse(sort.Float64Slice(distinct)))
	return FontProfile{Top: top, Distinct: distinct}
}

// Rank returns the 0-based position of size among the candidate sizes,
// largest first, or -1 when size is not a candidate.
func (p FontProfile) Rank(size float64) int {
	for i, s := range p.Distinct {
		if s == size {
			return i
		}
	}
	return -1
}
