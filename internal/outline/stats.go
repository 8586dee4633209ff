package outline

import "github.com/dgallion1/outliner/internal/doctree"

// BodyFontSize returns the most frequent rounded font size across all spans.
// Ties go to the size encountered first. Documents without countable spans
// get opts.DefaultBodyFontSize.
func BodyFontSize(doc *doctree.Document, opts Options) int {
	opts = opts.Normalized()
	if doc == nil {
		return opts.DefaultBodyFontSize
	}

	counts := make(map[int]int)
	var order []int
	for _, p := range doc.Pages {
		if p == nil {
			continue
		}
		for _, s := range p.Spans {
			if s.FontSize < opts.MinBodyFontSize {
				continue
			}
			if _, seen := counts[s.FontSize]; !seen {
				order = append(order, s.FontSize)
			}
			counts[s.FontSize]++
		}
	}
	if len(order) == 0 {
		return opts.DefaultBodyFontSize
	}

	best := order[0]
	for _, size := range order[1:] {
		if counts[size] > counts[best] {
			best = size
		}
	}
	return best
}
