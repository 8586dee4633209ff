package parser

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/dgallion1/outliner/internal/doctree"
	pdflib "github.com/ledongthuc/pdf"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
)

// PDFParser extracts spans from PDF text layers. It tries the Go decoder
// first, then falls back to MuPDF if enabled and available.
type PDFParser struct {
	MutoolFallback bool
}

func (p *PDFParser) Parse(ctx context.Context, r io.Reader, filename string) (*doctree.Document, error) {
	// ledongthuc/pdf requires a ReadSeeker+size and mutool a path, so we write to a temp file.
	tmp, err := os.CreateTemp("", "outliner-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}
	pageCount, countErr := pdfapi.PageCount(tmp, nil)
	tmp.Close()

	doc, err := decodePDF(tmpPath, filename)
	if err == nil {
		return doc, nil
	}
	if p.MutoolFallback {
		if doc, mErr := extractMutoolSpans(ctx, tmpPath, filename); mErr == nil {
			return doc, nil
		}
	}
	if countErr != nil {
		return nil, fmt.Errorf("%w: %s: %v (structure: %v)", ErrUnreadable, filename, err, countErr)
	}
	return nil, fmt.Errorf("%w: %s: text layer of %d pages: %v", ErrUnreadable, filename, pageCount, err)
}

// decodePDF is the primary span extractor. Tests replace it to simulate
// decoder failures on structurally valid files.
var decodePDF = extractPDFSpans

func extractPDFSpans(path, filename string) (doc *doctree.Document, err error) {
	defer func() {
		// The decoder panics on some malformed content streams.
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("%w: pdf decoder panic: %v", ErrUnreadable, r)
		}
	}()

	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer f.Close()

	doc = newDocument(filename)
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := doc.AddPage()
		pg := reader.Page(i)
		if pg.V.IsNull() {
			continue
		}
		for _, s := range groupRuns(pg.Content().Text) {
			page.Add(s)
		}
	}
	return doc, nil
}

// sameLineTolerance is the baseline drift, in points, still treated as one line.
const sameLineTolerance = 1.0

// groupRuns merges glyph runs into spans. Consecutive runs on the same
// baseline with the same font and rounded size form one span; a horizontal
// gap wider than a quarter em becomes a space. Spans come back sorted top to
// bottom, then left to right.
func groupRuns(texts []pdflib.Text) []doctree.Span {
	type run struct {
		font string
		size int
		y    float64
		x0   float64
		x1   float64
		text strings.Builder
	}

	var runs []*run
	var cur *run
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		size := roundSize(t.FontSize)
		if cur != nil && cur.font == t.Font && cur.size == size && math.Abs(cur.y-t.Y) <= sameLineTolerance {
			if gap := t.X - cur.x1; gap > t.FontSize*0.25 {
				cur.text.WriteByte(' ')
			}
			cur.text.WriteString(t.S)
			cur.x1 = math.Max(cur.x1, t.X+t.W)
			continue
		}
		cur = &run{font: t.Font, size: size, y: t.Y, x0: t.X, x1: t.X + t.W}
		cur.text.WriteString(t.S)
		runs = append(runs, cur)
	}

	spans := make([]doctree.Span, 0, len(runs))
	for _, r := range runs {
		text := normalize(r.text.String())
		if text == "" {
			continue
		}
		spans = append(spans, doctree.Span{
			Text:     text,
			FontSize: r.size,
			Bold:     boldFontName(r.font),
			BBox:     doctree.BBox{X0: r.x0, Y0: r.y, X1: r.x1, Y1: r.y + float64(r.size)},
		})
	}

	// PDF user space grows upward, so a larger Y is higher on the page.
	sort.SliceStable(spans, func(i, j int) bool {
		yi, yj := spans[i].BBox.Y0, spans[j].BBox.Y0
		if math.Abs(yi-yj) > sameLineTolerance {
			return yi > yj
		}
		return spans[i].BBox.X0 < spans[j].BBox.X0
	})
	return spans
}
