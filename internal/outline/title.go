package outline

import (
	"sort"
	"strings"
	"unicode"

	"github.com/dgallion1/docoutline/internal/layout"
)

const maxTitleWords = 40

// ExtractTitle builds the document title from the first page's blocks,
// largest text first, and returns it with the set of fonts that contributed
// to it.
func ExtractTitle(blocks []layout.TextBlock) (string, map[string]bool) {
	sorted := make([]layout.TextBlock, len(blocks))
	copy(sorted, blocks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Size > sorted[j].Size
	})

	fonts := make(map[string]bool)
	var title string
	for _, b := range sorted {
		text := layout.Normalize(b.Text)
		if layout.WordCount(text) > maxTitleWords {
			continue
		}
		if strings.Contains(title, text) {
			continue
		}
		if title != "" {
			title += "  "
		}
		title += text
		fonts[b.Font] = true
		if layout.WordCount(title) > maxTitleWords {
			break
		}
	}

	return strings.TrimSpace(dropRepeatedWords(title)), fonts
}

// dropRepeatedWords removes every word that occurs again later in s, so only
// the last occurrence of a repeated word survives. Words are maximal runs of
// letters, digits and underscores; the spacing around removed words is left
// in place. Legitimately repeated words are lost too.
func dropRepeatedWords(s string) string {
	type span struct{ start, end int }

	runes := []rune(s)
	var words []span
	for i := 0; i < len(runes); {
		if !isWordRune(runes[i]) {
			i++
			continue
		}
		j := i
		for j < len(runes) && isWordRune(runes[j]) {
			j++
		}
		words = append(words, span{i, j})
		i = j
	}

	last := make(map[string]int, len(words))
	for i, w := range words {
		last[string(runes[w.start:w.end])] = i
	}

	var b strings.Builder
	pos := 0
	for i, w := range words {
		if last[string(runes[w.start:w.end])] == i {
			continue
		}
		b.WriteString(string(runes[pos:w.start]))
		pos = w.end
	}
	b.WriteString(string(runes[pos:]))
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
