package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/fumiama/go-docx"
)

// writeDOCX writes the title as a Title paragraph and each outline entry as a
// HeadingN paragraph followed by a tab and its page number.
func writeDOCX(w io.Writer, res *outline.Result) error {
	doc := docx.New().WithDefaultTheme()

	tree := doctree.FromResult(res)
	if tree.Title != "" {
		doc.AddParagraph().Style("Title").AddText(tree.Title).Bold()
	}
	tree.Walk(func(n *doctree.Node, _ int) {
		para := doc.AddParagraph().Style("Heading" + strconv.Itoa(n.Level.Depth()))
		para.AddText(n.Title).AddTab()
		para.AddText(strconv.Itoa(n.Page))
	})

	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}
