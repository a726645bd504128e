package layout

import "strings"

// Normalize trims s, turns line breaks into spaces and collapses every run of
// identical consecutive characters to a single one. The collapse repairs glyphs
// that OCR layers emit twice ("HHeeaaddiinngg"), at the cost of legitimate
// doubled letters ("committee" becomes "comite").
func Normalize(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "\n", " ")
	if s == "" {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	var last rune
	first := true
	for _, r := range s {
		if !first && r == last {
			continue
		}
		b.WriteRune(r)
		last = r
		first = false
	}
	return b.String()
}

// WordCount counts whitespace-separated words.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
