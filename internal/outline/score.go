package outline

import (
	"regexp"
	"strings"

	"github.com/dgallion1/outliner/internal/doctree"
)

var numberedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d+(\.\d+)*\.?\s`), // "2.3 Scope", "4. Results"
	regexp.MustCompile(`^[A-Z]\.\s`),        // "A. Overview"
}

// IsNumbered reports whether text opens with a section numbering prefix.
func IsNumbered(text string) bool {
	t := strings.TrimLeft(text, " \t")
	for _, re := range numberedPatterns {
		if re.MatchString(t) {
			return true
		}
	}
	return false
}

// Candidate is a fragment that passed the size gate and the lexical filter.
type Candidate struct {
	Text     string
	Page     int
	FontSize int
	Bold     bool
	Score    float64
	Index    int // encounter order within the document
}

// Score computes heading strength. The second result is false when the span
// is not larger than the body size, which no bonus can override.
func (o Options) Score(s doctree.Span, bodyFontSize int) (float64, bool) {
	if s.FontSize <= bodyFontSize {
		return 0, false
	}
	o = o.Normalized()
	score := float64(s.FontSize-bodyFontSize) * o.SizeWeight
	if s.Bold {
		score += o.BoldBonus
	}
	if IsNumbered(s.Text) {
		score += o.NumberedBonus
	}
	return score, true
}

// Candidates runs the size gate, the filter, and the scorer over every span.
func (o Options) Candidates(doc *doctree.Document, bodyFontSize int) []Candidate {
	if doc == nil {
		return nil
	}
	var out []Candidate
	idx := 0
	for _, p := range doc.Pages {
		if p == nil {
			continue
		}
		for _, s := range p.Spans {
			idx++
			text := strings.TrimSpace(s.Text)
			if text == "" {
				continue
			}
			if !o.Accept(text) {
				continue
			}
			score, ok := o.Score(s, bodyFontSize)
			if !ok {
				continue
			}
			page := s.Page
			if page < 1 {
				page = p.Number
			}
			out = append(out, Candidate{
				Text:     text,
				Page:     page,
				FontSize: s.FontSize,
				Bold:     s.Bold,
				Score:    score,
				Index:    idx - 1,
			})
		}
	}
	return out
}
