// Package output renders outline results for storage and display.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/outliner/internal/outline"
	"gopkg.in/yaml.v3"
)

// Format names an output encoding.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat accepts a format name or a common alias. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Extension is the file extension written by batch mode, without the dot.
func (f Format) Extension() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatMarkdown:
		return "md"
	case FormatHTML:
		return "html"
	}
	return "json"
}

// ContentType is the HTTP media type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	}
	return "application/json"
}

// Marshal encodes res in format f.
func Marshal(res outline.Result, f Format) ([]byte, error) {
	if res.Outline == nil {
		res.Outline = []outline.Entry{}
	}
	switch f {
	case FormatJSON, "":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return buf.Bytes(), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatMarkdown:
		return Markdown(res), nil
	case FormatHTML:
		return HTML(res)
	}
	return nil, fmt.Errorf("unknown output format %q", f)
}

// Write encodes res to w.
func Write(w io.Writer, res outline.Result, f Format) error {
	b, err := Marshal(res, f)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// Decode reads a result previously written as JSON or YAML.
func Decode(data []byte, f Format) (outline.Result, error) {
	var res outline.Result
	var err error
	switch f {
	case FormatJSON, "":
		err = json.Unmarshal(data, &res)
	case FormatYAML:
		err = yaml.Unmarshal(data, &res)
	default:
		return res, fmt.Errorf("format %q cannot be decoded", f)
	}
	if err != nil {
		return res, fmt.Errorf("decode %s: %w", f, err)
	}
	if res.Outline == nil {
		res.Outline = []outline.Entry{}
	}
	return res, nil
}
