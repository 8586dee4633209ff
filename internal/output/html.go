package output

import (
	"bytes"
	"fmt"
	"html"

	"github.com/dgallion1/outliner/internal/outline"
	"github.com/yuin/goldmark"
)

var md = goldmark.New()

// HTML renders the Markdown table of contents as a standalone page.
func HTML(res outline.Result) ([]byte, error) {
	var body bytes.Buffer
	if err := md.Convert(Markdown(res), &body); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "<title>%s</title>\n", html.EscapeString(res.Title))
	buf.WriteString("</head>\n<body>\n")
	buf.Write(body.Bytes())
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}
