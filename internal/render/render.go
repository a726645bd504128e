// Package render writes an outline Result in the output formats the CLI and
// HTTP API offer.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docoutline/internal/outline"
	"gopkg.in/yaml.v3"
)

// Format is an output format name.
type Format string

const (
	JSON     Format = "json"
	YAML     Format = "yaml"
	Markdown Format = "markdown"
	HTML     Format = "html"
	DOCX     Format = "docx"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists every supported format.
var Formats = []Format{JSON, YAML, Markdown, HTML, DOCX}

// ParseFormat resolves a format name or common alias. An empty name means JSON.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "markdown", "md":
		return Markdown, nil
	case "html", "htm":
		return HTML, nil
	case "docx":
		return DOCX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case YAML:
		return "application/yaml"
	case Markdown:
		return "text/markdown; charset=utf-8"
	case HTML:
		return "text/html; charset=utf-8"
	case DOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}
	return "application/json"
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	switch f {
	case YAML:
		return ".yaml"
	case Markdown:
		return ".md"
	case HTML:
		return ".html"
	case DOCX:
		return ".docx"
	}
	return ".json"
}

// Write renders res to w in format f.
func Write(w io.Writer, f Format, res *outline.Result) error {
	switch f {
	case JSON:
		return WriteJSON(w, res, "  ")
	case YAML:
		return writeYAML(w, res)
	case Markdown:
		return writeMarkdown(w, res)
	case HTML:
		return writeHTML(w, res)
	case DOCX:
		return writeDOCX(w, res)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

// WriteJSON encodes res with the given indent. HTML characters are written
// as-is rather than escaped.
func WriteJSON(w io.Writer, res *outline.Result, indent string) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, res *outline.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
