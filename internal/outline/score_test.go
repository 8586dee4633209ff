package outline

import (
	"testing"

	"github.com/dgallion1/outliner/internal/doctree"
)

func TestIsNumbered(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"1 Introduction", true},
		{"2.3 Scope", true},
		{"4. Results", true},
		{"10.2.1 Deep", true},
		{"A. Overview", true},
		{"  B. Indented", true},
		{"a. lowercase", false},
		{"AB. Two letters", false},
		{"2023", false},
		{"3.5mm jack", false},
		{"Chapter 1", false},
	}
	for _, tt := range tests {
		if got := IsNumbered(tt.text); got != tt.want {
			t.Errorf("IsNumbered(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestScore(t *testing.T) {
	opts := DefaultOptions()
	tests := []struct {
		name   string
		span   doctree.Span
		want   float64
		wantOK bool
	}{
		{"plain larger", doctree.Span{Text: "Heading", FontSize: 16}, 4, true},
		{"bold larger", doctree.Span{Text: "Heading", FontSize: 16, Bold: true}, 9, true},
		{"numbered bold", doctree.Span{Text: "1.2 Heading", FontSize: 16, Bold: true}, 14, true},
		{"body size bold numbered", doctree.Span{Text: "1.2 Heading", FontSize: 12, Bold: true}, 0, false},
		{"smaller", doctree.Span{Text: "Footnote", FontSize: 9}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := opts.Score(tt.span, 12)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("expected (%v, %v), got (%v, %v)", tt.want, tt.wantOK, got, ok)
			}
		})
	}
}

func TestScore_SizeWeight(t *testing.T) {
	opts := DefaultOptions()
	opts.SizeWeight = 2
	got, ok := opts.Score(doctree.Span{Text: "Heading", FontSize: 15}, 12)
	if !ok || got != 6 {
		t.Errorf("expected 6, got %v (ok=%v)", got, ok)
	}
}

func TestCandidates_SkipsEmptyAndFiltered(t *testing.T) {
	doc := docOf([]doctree.Span{
		{Text: "   ", FontSize: 20},
		{Text: "42", FontSize: 20},
		{Text: "Proper Heading", FontSize: 20},
		{Text: "Body", FontSize: 12},
	})
	cands := DefaultOptions().Candidates(doc, 12)
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %+v", cands)
	}
	c := cands[0]
	if c.Text != "Proper Heading" || c.Page != 1 || c.Index != 2 {
		t.Errorf("unexpected candidate %+v", c)
	}
}
