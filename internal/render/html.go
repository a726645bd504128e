package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func writeHTML(w io.Writer, res *outline.Result) error {
	var body bytes.Buffer
	if err := goldmark.Convert(markdownOutline(res), &body); err != nil {
		return fmt.Errorf("convert markdown: %w", err)
	}

	bodyNode := element(atom.Body)
	fragment, err := html.ParseFragment(&body, bodyNode)
	if err != nil {
		return fmt.Errorf("parse html fragment: %w", err)
	}
	for _, n := range fragment {
		bodyNode.AppendChild(n)
	}

	title := res.Title
	if title == "" {
		title = "Outline"
	}
	titleNode := element(atom.Title)
	titleNode.AppendChild(&html.Node{Type: html.TextNode, Data: title})

	meta := element(atom.Meta)
	meta.Attr = []html.Attribute{{Key: "charset", Val: "utf-8"}}

	head := element(atom.Head)
	head.AppendChild(meta)
	head.AppendChild(titleNode)

	root := element(atom.Html)
	root.AppendChild(head)
	root.AppendChild(bodyNode)

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(root)

	if err := html.Render(w, doc); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}
