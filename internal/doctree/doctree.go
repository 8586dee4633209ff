package doctree

// Document is the span-level view of a parsed file, as produced by a parser.
type Document struct {
	Filename string  // Base name of the source file
	Pages    []*Page // Pages in order; Page.Number is 1-based
}

// Page holds the spans of one page in best-effort reading order.
type Page struct {
	Number int
	Spans  []Span
}

// Span is a visually contiguous run of text sharing one font size and weight.
type Span struct {
	Text     string // Whitespace-normalized content
	FontSize int    // Rounded to the nearest whole unit
	Bold     bool
	Page     int // 1-based
	BBox     BBox
}

// BBox is a bounding region in page units. The origin convention is the parser's.
type BBox struct {
	X0, Y0, X1, Y1 float64
}

// PageCount returns the number of pages, zero for a nil document.
func (d *Document) PageCount() int {
	if d == nil {
		return 0
	}
	return len(d.Pages)
}

// SpanCount returns the total number of spans across all pages. Nil pages
// are skipped.
func (d *Document) SpanCount() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, p := range d.Pages {
		if p == nil {
			continue
		}
		n += len(p.Spans)
	}
	return n
}

// Spans returns every span in document order.
func (d *Document) Spans() []Span {
	if d == nil {
		return nil
	}
	out := make([]Span, 0, d.SpanCount())
	for _, p := range d.Pages {
		if p == nil {
			continue
		}
		out = append(out, p.Spans...)
	}
	return out
}

// AddPage appends a page numbered after the last one and returns it.
func (d *Document) AddPage() *Page {
	p := &Page{Number: len(d.Pages) + 1}
	d.Pages = append(d.Pages, p)
	return p
}

// Add appends a span to the page, stamping the page number.
func (p *Page) Add(s Span) {
	s.Page = p.Number
	p.Spans = append(p.Spans, s)
}
