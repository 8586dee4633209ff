package parser

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/dgallion1/outliner/internal/doctree"
)

// TextParser handles plain text files. Every non-blank line is a body-size
// span; form feeds start a new page.
type TextParser struct{}

// TextFontSize is the size assigned to every plain-text line.
const TextFontSize = 12

func (p *TextParser) Parse(ctx context.Context, r io.Reader, filename string) (*doctree.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	doc := newDocument(filename)
	page := doc.AddPage()
	for scanner.Scan() {
		line := scanner.Text()
		parts := strings.Split(line, "\f")
		for i, part := range parts {
			if i > 0 {
				page = doc.AddPage()
			}
			if t := normalize(part); t != "" {
				page.Add(doctree.Span{Text: t, FontSize: TextFontSize})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}
