package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/fumiama/go-docx"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"
)

func sampleResult() *outline.Result {
	return &outline.Result{
		Title: "Market Review  Quarterly Edition",
		Outline: []outline.Entry{
			{Level: outline.H1, Text: "Introduction", Page: 1},
			{Level: outline.H3, Text: "Scope & <Goals>", Page: 1},
			{Level: outline.H1, Text: "Results of the Market Study", Page: 2},
		},
		NonPassageBlocks: []outline.Block{
			{Text: "Introduction", Font: "Helvetica-Bold", Size: 18, Page: 1},
		},
		ExtraHeadings: []outline.StyledBlock{
			{Text: "Key Findings", Page: 2, Size: 10, Font: "Helvetica-Bold", Bold: true},
		},
		PageCandidates: []outline.StyledBlock{},
	}
}

type heading struct {
	level int
	text  string
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", JSON},
		{"json", JSON},
		{"YAML", YAML},
		{"yml", YAML},
		{"md", Markdown},
		{"markdown", Markdown},
		{"html", HTML},
		{"docx", DOCX},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil {
			t.Errorf("ParseFormat(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := ParseFormat("pdf"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestFormatMetadata(t *testing.T) {
	for _, f := range Formats {
		if f.ContentType() == "" {
			t.Errorf("%s: empty content type", f)
		}
		if !strings.HasPrefix(f.Extension(), ".") {
			t.Errorf("%s: extension %q lacks dot", f, f.Extension())
		}
	}
	if DOCX.Extension() != ".docx" || Markdown.Extension() != ".md" {
		t.Errorf("unexpected extensions: %s %s", DOCX.Extension(), Markdown.Extension())
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Format("pdf"), sampleResult()); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, JSON, sampleResult()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"page_12_candidates": []`) {
		t.Errorf("expected empty candidate list in output:\n%s", out)
	}
	if !strings.Contains(out, "Scope & <Goals>") {
		t.Errorf("expected unescaped HTML characters:\n%s", out)
	}
	if !strings.Contains(out, "\n  \"title\"") {
		t.Errorf("expected two-space indent:\n%s", out)
	}

	var got outline.Result
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid json: %v", err)
	}
	if len(got.Outline) != 3 || got.Outline[2].Page != 2 {
		t.Errorf("unexpected outline: %+v", got.Outline)
	}
}

func TestWriteJSON_Indent(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleResult(), "    "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "\n    \"title\"") {
		t.Errorf("expected four-space indent:\n%s", buf.String())
	}
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, YAML, sampleResult()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got outline.Result
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid yaml: %v", err)
	}
	if got.Title != "Market Review  Quarterly Edition" {
		t.Errorf("unexpected title %q", got.Title)
	}
	if len(got.ExtraHeadings) != 1 || !got.ExtraHeadings[0].Bold {
		t.Errorf("unexpected extra headings: %+v", got.ExtraHeadings)
	}
}

// markdownHeadings walks the goldmark AST of src and returns its headings.
func markdownHeadings(t *testing.T, src []byte) []heading {
	t.Helper()
	doc := goldmark.New().Parser().Parse(text.NewReader(src))
	var out []heading
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		var buf strings.Builder
		for c := h.FirstChild(); c != nil; c = c.NextSibling() {
			buf.WriteString(inlineText(c, src))
		}
		// Escaped punctuation may keep its backslash in the raw segment.
		out = append(out, heading{level: h.Level, text: strings.ReplaceAll(buf.String(), `\`, "")})
	}
	return out
}

func inlineText(n ast.Node, src []byte) string {
	if t, ok := n.(*ast.Text); ok {
		return string(t.Value(src))
	}
	var buf strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		buf.WriteString(inlineText(c, src))
	}
	return buf.String()
}

func TestWrite_Markdown(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Markdown, sampleResult()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := markdownHeadings(t, buf.Bytes())
	want := []heading{
		{1, "Market Review  Quarterly Edition"},
		{2, "Introduction (page 1)"},
		{4, "Scope & <Goals> (page 1)"},
		{2, "Results of the Market Study (page 2)"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d headings, got %d: %+v\n%s", len(want), len(got), got, buf.String())
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("heading %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestWrite_MarkdownNoTitle(t *testing.T) {
	res := sampleResult()
	res.Title = ""
	var buf bytes.Buffer
	if err := Write(&buf, Markdown, res); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.HasPrefix(buf.String(), "# ") {
		t.Errorf("expected no title heading:\n%s", buf.String())
	}
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func TestWrite_HTML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, HTML, sampleResult()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "<!DOCTYPE html>") {
		t.Errorf("expected doctype, got %q", buf.String()[:20])
	}

	doc, err := html.Parse(&buf)
	if err != nil {
		t.Fatalf("output is not valid html: %v", err)
	}

	var title string
	var got []heading
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if n.Data == "title" {
				title = textContent(n)
			}
			if level := headingLevel(n.Data); level > 0 {
				got = append(got, heading{level, textContent(n)})
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if title != "Market Review  Quarterly Edition" {
		t.Errorf("unexpected <title> %q", title)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 headings, got %+v", got)
	}
	if got[2] != (heading{4, "Scope & <Goals> (page 1)"}) {
		t.Errorf("unexpected nested heading %+v", got[2])
	}
}

func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	switch para.Properties.Style.Val {
	case "Heading1":
		return 1
	case "Heading2":
		return 2
	case "Heading3":
		return 3
	case "Heading4":
		return 4
	}
	return 0
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

func TestWrite_DOCX(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, DOCX, sampleResult()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc, err := docx.Parse(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("output is not a readable docx: %v", err)
	}

	var got []heading
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		if level := docxHeadingLevel(para); level > 0 {
			got = append(got, heading{level, docxParagraphText(para)})
		}
	}

	if len(got) != 3 {
		t.Fatalf("expected 3 heading paragraphs, got %+v", got)
	}
	wantLevels := []int{1, 3, 1}
	wantPrefixes := []string{"Introduction", "Scope & <Goals>", "Results of the Market Study"}
	for i := range got {
		if got[i].level != wantLevels[i] {
			t.Errorf("paragraph %d: expected Heading%d, got Heading%d", i, wantLevels[i], got[i].level)
		}
		if !strings.HasPrefix(got[i].text, wantPrefixes[i]) {
			t.Errorf("paragraph %d: expected prefix %q, got %q", i, wantPrefixes[i], got[i].text)
		}
	}
}
