package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/dgallion1/docoutline/internal/outline"
)

// markdownEscaper backslash-escapes the punctuation that would otherwise
// start inline markup inside a heading.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`<`, `\<`,
	`>`, `\>`,
	`#`, `\#`,
)

// markdownOutline renders the title as a level-1 heading and each outline
// entry one level deeper than its H-level, annotated with its page.
func markdownOutline(res *outline.Result) []byte {
	var buf bytes.Buffer
	tree := doctree.FromResult(res)
	if tree.Title != "" {
		fmt.Fprintf(&buf, "# %s\n\n", markdownEscaper.Replace(tree.Title))
	}
	tree.Walk(func(n *doctree.Node, _ int) {
		hashes := strings.Repeat("#", n.Level.Depth()+1)
		fmt.Fprintf(&buf, "%s %s _(page %d)_\n\n", hashes, markdownEscaper.Replace(n.Title), n.Page)
	})
	return buf.Bytes()
}

func writeMarkdown(w io.Writer, res *outline.Result) error {
	if _, err := w.Write(markdownOutline(res)); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}
