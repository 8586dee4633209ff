package outline

import "testing"

func TestNest(t *testing.T) {
	entries := []Entry{
		{Level: H1, Text: "One", Page: 1},
		{Level: H2, Text: "One.A", Page: 1},
		{Level: H3, Text: "One.A.i", Page: 2},
		{Level: H2, Text: "One.B", Page: 2},
		{Level: H1, Text: "Two", Page: 3},
		{Level: H3, Text: "Two.deep", Page: 3},
	}
	roots := Nest(entries)
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	one := roots[0]
	if one.Text != "One" || len(one.Children) != 2 {
		t.Fatalf("unexpected first root %+v", one)
	}
	if len(one.Children[0].Children) != 1 || one.Children[0].Children[0].Text != "One.A.i" {
		t.Errorf("expected One.A.i under One.A, got %+v", one.Children[0].Children)
	}
	two := roots[1]
	if len(two.Children) != 1 || two.Children[0].Text != "Two.deep" {
		t.Errorf("expected skipped level to nest directly, got %+v", two.Children)
	}
}

func TestNest_LeadingLowerLevel(t *testing.T) {
	roots := Nest([]Entry{{Level: H3, Text: "Orphan", Page: 1}, {Level: H1, Text: "Top", Page: 1}})
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
}
