package parser

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/dgallion1/outliner/internal/doctree"
	"golang.org/x/net/html"
)

// HTMLParser handles HTML files. Sizes follow browser default styles,
// overridden by inline font-size and font-weight declarations.
type HTMLParser struct{}

// Browser default sizes in CSS pixels.
const htmlBodySize = 16

var htmlHeadingSizes = map[string]float64{
	"h1": 32,
	"h2": 24,
	"h3": 18.72,
	"h4": 16,
	"h5": 13.28,
	"h6": 10.72,
}

var htmlBlockTags = map[string]bool{
	"p": true, "div": true, "li": true, "td": true, "th": true, "tr": true,
	"blockquote": true, "pre": true, "section": true, "article": true, "main": true,
	"ul": true, "ol": true, "dl": true, "dt": true, "dd": true, "table": true,
	"caption": true, "figcaption": true, "figure": true, "br": true, "hr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

var (
	fontSizeRe   = regexp.MustCompile(`(?i)font-size\s*:\s*([\d.]+)\s*(px|pt|em|rem|%)?`)
	fontWeightRe = regexp.MustCompile(`(?i)font-weight\s*:\s*([a-z0-9]+)`)
)

type htmlStyle struct {
	size float64
	bold bool
}

func (p *HTMLParser) Parse(ctx context.Context, r io.Reader, filename string) (*doctree.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: parse html: %v", ErrUnreadable, err)
	}

	doc := newDocument(filename)
	c := newRunCollector(doc.AddPage())

	var walk func(n *html.Node, st htmlStyle)
	walk = func(n *html.Node, st htmlStyle) {
		switch n.Type {
		case html.TextNode:
			c.add(n.Data, st.size, st.bold)
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "nav", "footer", "header", "head", "noscript", "template":
				return
			}
			st = applyTag(n.Data, st)
			st = applyInlineStyle(attr(n, "style"), st)
		}

		block := n.Type == html.ElementNode && htmlBlockTags[n.Data]
		if block {
			c.flush()
		}
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			walk(ch, st)
		}
		if block {
			c.flush()
		}
	}

	start := findBody(root)
	if start == nil {
		start = root
	}
	walk(start, htmlStyle{size: htmlBodySize})
	c.flush()
	return doc, nil
}

func applyTag(tag string, st htmlStyle) htmlStyle {
	if size, ok := htmlHeadingSizes[tag]; ok {
		st.size = size
		st.bold = true
		return st
	}
	switch tag {
	case "b", "strong", "th":
		st.bold = true
	case "small":
		st.size = st.size * 0.83
	}
	return st
}

// applyInlineStyle honours font-size (px, pt, em, rem, %) and font-weight.
func applyInlineStyle(style string, st htmlStyle) htmlStyle {
	if style == "" {
		return st
	}
	if m := fontSizeRe.FindStringSubmatch(style); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil && v > 0 {
			switch strings.ToLower(m[2]) {
			case "pt":
				st.size = v * 4 / 3
			case "em":
				st.size = v * st.size
			case "rem":
				st.size = v * htmlBodySize
			case "%":
				st.size = v / 100 * st.size
			default:
				st.size = v
			}
		}
	}
	if m := fontWeightRe.FindStringSubmatch(style); m != nil {
		w := strings.ToLower(m[1])
		switch w {
		case "bold", "bolder":
			st.bold = true
		case "normal", "lighter":
			st.bold = false
		default:
			if n, err := strconv.Atoi(w); err == nil {
				st.bold = n >= 600
			}
		}
	}
	return st
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
