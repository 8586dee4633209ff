package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/dgallion1/outliner/internal/doctree"
)

func parseHTML(t *testing.T, input string) []doctree.Span {
	t.Helper()
	p := &HTMLParser{}
	doc, err := p.Parse(context.Background(), strings.NewReader(input), "page.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(doc.Pages))
	}
	return doc.Pages[0].Spans
}

func TestHTMLParser_HeadingsAndParagraphs(t *testing.T) {
	input := `<html><head><title>Ignored</title><style>h1{}</style></head><body>
<h1>Main Title</h1>
<p>Intro   paragraph text.</p>
<h2>Section <em>A</em></h2>
<p>Mixed <b>bold</b> words.</p>
<script>var x = "no";</script>
</body></html>`
	spans := parseHTML(t, input)

	want := []doctree.Span{
		{Text: "Main Title", FontSize: 32, Bold: true, Page: 1},
		{Text: "Intro paragraph text.", FontSize: 16, Page: 1},
		{Text: "Section A", FontSize: 24, Bold: true, Page: 1},
		{Text: "Mixed", FontSize: 16, Page: 1},
		{Text: "bold", FontSize: 16, Bold: true, Page: 1},
		{Text: "words.", FontSize: 16, Page: 1},
	}
	if len(spans) != len(want) {
		t.Fatalf("expected %d spans, got %d: %+v", len(want), len(spans), spans)
	}
	for i, w := range want {
		if spans[i] != w {
			t.Errorf("span[%d]: expected %+v, got %+v", i, w, spans[i])
		}
	}
}

func TestHTMLParser_InlineStyles(t *testing.T) {
	input := `<body>
<div style="font-size: 18pt; font-weight: 700">Styled Heading</div>
<div style="font-size:20px"><span style="font-size:1.5em">Relative</span></div>
<h3 style="font-weight: normal">Light Heading</h3>
<p style="font-size: 2rem">Root Relative</p>
</body>`
	spans := parseHTML(t, input)
	want := []struct {
		text string
		size int
		bold bool
	}{
		{"Styled Heading", 24, true},
		{"Relative", 30, false},
		{"Light Heading", 19, false},
		{"Root Relative", 32, false},
	}
	if len(spans) != len(want) {
		t.Fatalf("expected %d spans, got %+v", len(want), spans)
	}
	for i, w := range want {
		if spans[i].Text != w.text || spans[i].FontSize != w.size || spans[i].Bold != w.bold {
			t.Errorf("span[%d]: expected %+v, got %+v", i, w, spans[i])
		}
	}
}

func TestHTMLParser_SkipsChrome(t *testing.T) {
	input := `<body><nav>Home About</nav><header>Site</header><p>Content</p><footer>Copyright</footer></body>`
	spans := parseHTML(t, input)
	if len(spans) != 1 || spans[0].Text != "Content" {
		t.Errorf("expected only content span, got %+v", spans)
	}
}

func TestApplyInlineStyle(t *testing.T) {
	base := htmlStyle{size: 16}
	tests := []struct {
		style string
		want  htmlStyle
	}{
		{"", base},
		{"color: red", base},
		{"font-size: 12px", htmlStyle{size: 12}},
		{"FONT-SIZE:150%", htmlStyle{size: 24}},
		{"font-weight: bolder", htmlStyle{size: 16, bold: true}},
		{"font-weight: 500", htmlStyle{size: 16}},
		{"font-weight: 600", htmlStyle{size: 16, bold: true}},
	}
	for _, tt := range tests {
		if got := applyInlineStyle(tt.style, base); got != tt.want {
			t.Errorf("applyInlineStyle(%q) = %+v, want %+v", tt.style, got, tt.want)
		}
	}
}
