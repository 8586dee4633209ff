package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dgallion1/outliner/internal/doctree"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. Run sizes come from w:sz; runs without an
// explicit size inherit Word's default for the paragraph style.
type DOCXParser struct{}

// Word 2013+ defaults, in points.
const docxNormalSize = 11

var docxStyleSizes = map[string]float64{
	"title":    28,
	"subtitle": 11,
	"heading1": 16,
	"heading2": 13,
	"heading3": 12,
	"heading4": 11,
	"heading5": 11,
	"heading6": 11,
}

func (p *DOCXParser) Parse(ctx context.Context, r io.Reader, filename string) (*doctree.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}

	d, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: parse docx: %v", ErrUnreadable, err)
	}

	doc := newDocument(filename)
	c := newRunCollector(doc.AddPage())

	for _, item := range d.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		styleSize, styleBold := docxStyleDefaults(para)
		for _, child := range para.Children {
			run, ok := child.(*docx.Run)
			if !ok {
				continue
			}
			size, bold := styleSize, styleBold
			if rp := run.RunProperties; rp != nil {
				if rp.Size != nil {
					if hp, err := strconv.Atoi(rp.Size.Val); err == nil && hp > 0 {
						size = float64(hp) / 2
					}
				}
				if rp.Bold != nil {
					bold = true
				}
			}
			for _, rc := range run.Children {
				if t, ok := rc.(*docx.Text); ok {
					c.add(t.Text, size, bold)
				}
			}
		}
		c.flush()
	}
	c.flush()
	return doc, nil
}

// docxStyleDefaults maps a paragraph style to Word's default size and weight.
func docxStyleDefaults(para *docx.Paragraph) (float64, bool) {
	if para.Properties == nil || para.Properties.Style == nil {
		return docxNormalSize, false
	}
	key := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	if size, ok := docxStyleSizes[key]; ok {
		return size, strings.HasPrefix(key, "heading")
	}
	return docxNormalSize, false
}
