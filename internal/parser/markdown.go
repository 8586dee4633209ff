package parser

import (
	"context"
	"io"

	"github.com/dgallion1/outliner/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Headings and strong
// emphasis are sized and weighted the way a browser renders them.
type MarkdownParser struct{}

const markdownCodeSize = 13

func (p *MarkdownParser) Parse(ctx context.Context, r io.Reader, filename string) (*doctree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	doc := newDocument(filename)
	c := newRunCollector(doc.AddPage())

	var inline func(n ast.Node, size float64, bold bool)
	inline = func(n ast.Node, size float64, bold bool) {
		for ch := n.FirstChild(); ch != nil; ch = ch.NextSibling() {
			switch node := ch.(type) {
			case *ast.Text:
				c.add(string(node.Value(src)), size, bold)
				if node.SoftLineBreak() || node.HardLineBreak() {
					c.add(" ", size, bold)
				}
			case *ast.String:
				c.add(string(node.Value), size, bold)
			case *ast.AutoLink:
				c.add(string(node.URL(src)), size, bold)
			case *ast.Emphasis:
				inline(node, size, bold || node.Level >= 2)
			case *ast.RawHTML:
			default:
				inline(node, size, bold)
			}
		}
	}

	var block func(n ast.Node)
	block = func(n ast.Node) {
		for ch := n.FirstChild(); ch != nil; ch = ch.NextSibling() {
			switch node := ch.(type) {
			case *ast.Heading:
				c.flush()
				inline(node, htmlHeadingSizes[headingTag(node.Level)], true)
				c.flush()
			case *ast.Paragraph, *ast.TextBlock:
				c.flush()
				inline(node, htmlBodySize, false)
				c.flush()
			case *ast.FencedCodeBlock, *ast.CodeBlock:
				c.flush()
				lines := node.Lines()
				for i := 0; i < lines.Len(); i++ {
					seg := lines.At(i)
					c.add(string(seg.Value(src)), markdownCodeSize, false)
					c.flush()
				}
			case *ast.ThematicBreak, *ast.HTMLBlock:
				c.flush()
			default:
				block(node)
			}
		}
	}

	block(root)
	c.flush()
	return doc, nil
}

func headingTag(level int) string {
	switch {
	case level <= 1:
		return "h1"
	case level >= 6:
		return "h6"
	}
	return "h" + string(rune('0'+level))
}
