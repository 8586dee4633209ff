package parser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dgallion1/outliner/internal/doctree"
	pdflib "github.com/ledongthuc/pdf"
)

func glyphs(font string, size, x, y float64, s string) []pdflib.Text {
	out := make([]pdflib.Text, 0, len(s))
	w := size * 0.5
	for i, r := range s {
		out = append(out, pdflib.Text{Font: font, FontSize: size, X: x + float64(i)*w, Y: y, W: w, S: string(r)})
	}
	return out
}

func TestGroupRuns_MergesGlyphsIntoSpans(t *testing.T) {
	var texts []pdflib.Text
	texts = append(texts, glyphs("Helvetica-Bold", 18.2, 72, 700, "Introduction")...)
	texts = append(texts, glyphs("Helvetica", 11.8, 72, 680, "Body text")...)

	spans := groupRuns(texts)
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d: %+v", len(spans), spans)
	}
	if spans[0].Text != "Introduction" || spans[0].FontSize != 18 || !spans[0].Bold {
		t.Errorf("unexpected heading span %+v", spans[0])
	}
	if spans[1].Text != "Body text" || spans[1].FontSize != 12 || spans[1].Bold {
		t.Errorf("unexpected body span %+v", spans[1])
	}
}

func TestGroupRuns_SplitsOnFontChange(t *testing.T) {
	var texts []pdflib.Text
	texts = append(texts, glyphs("Times-Bold", 12, 72, 500, "Note:")...)
	texts = append(texts, glyphs("Times-Roman", 12, 110, 500, "details")...)
	spans := groupRuns(texts)
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %+v", spans)
	}
	if !spans[0].Bold || spans[1].Bold {
		t.Errorf("unexpected weights %+v", spans)
	}
}

func TestGroupRuns_InsertsSpaceOnGap(t *testing.T) {
	var texts []pdflib.Text
	texts = append(texts, glyphs("Arial", 10, 72, 400, "Two")...)
	texts = append(texts, glyphs("Arial", 10, 100, 400, "words")...)
	spans := groupRuns(texts)
	if len(spans) != 1 || spans[0].Text != "Two words" {
		t.Fatalf("expected single span %q, got %+v", "Two words", spans)
	}
}

func TestGroupRuns_ReadingOrder(t *testing.T) {
	var texts []pdflib.Text
	// Content stream order differs from reading order.
	texts = append(texts, glyphs("Arial", 10, 300, 700, "Top right")...)
	texts = append(texts, glyphs("Arial", 10, 72, 100, "Bottom line")...)
	texts = append(texts, glyphs("Arial", 10, 72, 700.5, "Top left")...)
	spans := groupRuns(texts)
	var got []string
	for _, s := range spans {
		got = append(got, s.Text)
	}
	want := "Top left|Top right|Bottom line"
	if strings.Join(got, "|") != want {
		t.Errorf("expected order %q, got %q", want, strings.Join(got, "|"))
	}
}

func TestGroupRuns_SkipsBlank(t *testing.T) {
	texts := []pdflib.Text{
		{Font: "Arial", FontSize: 10, X: 0, Y: 0, S: ""},
		{Font: "Arial", FontSize: 10, X: 0, Y: 50, W: 5, S: "   "},
	}
	if spans := groupRuns(texts); len(spans) != 0 {
		t.Errorf("expected no spans, got %+v", spans)
	}
}

func TestPDFParser_GarbageIsUnreadable(t *testing.T) {
	p := &PDFParser{}
	_, err := p.Parse(context.Background(), strings.NewReader("this is not a pdf"), "junk.pdf")
	if err == nil {
		t.Fatal("expected error for non-PDF input")
	}
	if !errors.Is(err, ErrUnreadable) {
		t.Errorf("expected ErrUnreadable, got %v", err)
	}
}

func TestDecodeStext(t *testing.T) {
	data := []byte(`{"pages":[{"blocks":[
		{"type":"text","lines":[
			{"bbox":{"x":72,"y":60,"w":200,"h":20},"font":{"name":"Inter","weight":"bold","size":19.6},"text":"Overview"},
			{"bbox":{"x":72,"y":90,"w":300,"h":12},"font":{"name":"Inter","weight":"normal","size":11.2},"text":"  body   text "}
		]},
		{"type":"image","lines":[]}
	]},{"blocks":[]}]}`)
	doc, err := decodeStext(data, "/tmp/m.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Filename != "m.pdf" || len(doc.Pages) != 2 {
		t.Fatalf("unexpected document %+v", doc)
	}
	spans := doc.Pages[0].Spans
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].FontSize != 20 || !spans[0].Bold || spans[0].Page != 1 {
		t.Errorf("unexpected heading span %+v", spans[0])
	}
	if spans[1].Text != "body text" || spans[1].Bold {
		t.Errorf("unexpected body span %+v", spans[1])
	}
}

func TestDecodeStext_Invalid(t *testing.T) {
	if _, err := decodeStext([]byte("{"), "x.pdf"); !errors.Is(err, ErrUnreadable) {
		t.Errorf("expected ErrUnreadable, got %v", err)
	}
}

// onePagePDF builds a single-page PDF with a correct xref table whose page
// content is the given text-drawing stream.
func onePagePDF(content string) []byte {
	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, o := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return buf.Bytes()
}

func TestPDFParser_DecoderFailureIsUnreadable(t *testing.T) {
	orig := decodePDF
	t.Cleanup(func() { decodePDF = orig })
	decodePDF = func(path, filename string) (*doctree.Document, error) {
		return nil, fmt.Errorf("%w: pdf decoder panic: bad operand", ErrUnreadable)
	}

	p := &PDFParser{}
	data := onePagePDF("BT /F1 18 Tf 72 700 Td (Introduction) Tj ET")
	doc, err := p.Parse(context.Background(), bytes.NewReader(data), "valid.pdf")
	if doc != nil {
		t.Errorf("expected no document, got %+v", doc)
	}
	if !errors.Is(err, ErrUnreadable) {
		t.Fatalf("expected ErrUnreadable, got %v", err)
	}
	if !strings.Contains(err.Error(), "valid.pdf") {
		t.Errorf("expected filename in error, got %v", err)
	}
}
