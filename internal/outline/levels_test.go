package outline

import "testing"

func cands(scores ...float64) []Candidate {
	out := make([]Candidate, len(scores))
	for i, s := range scores {
		out[i] = Candidate{Text: "c", Score: s, Index: i}
	}
	return out
}

func TestAssignLevels(t *testing.T) {
	m := AssignLevels(cands(4, 9, 4, 17, 2, 9), 3, 0)
	want := map[float64]Level{17: H1, 9: H2, 4: H3, 2: LevelNone}
	for score, lvl := range want {
		if got := m.Of(score); got != lvl {
			t.Errorf("score %v: expected %v, got %v", score, lvl, got)
		}
	}
	if len(m) != 3 {
		t.Errorf("expected 3 mapped scores, got %d", len(m))
	}
	if m.Depth() != 3 {
		t.Errorf("expected depth 3, got %d", m.Depth())
	}
}

func TestAssignLevels_FewerScoresThanDepth(t *testing.T) {
	m := AssignLevels(cands(5, 5, 5), 5, 0)
	if len(m) != 1 || m.Of(5) != H1 {
		t.Errorf("expected single H1 mapping, got %v", m)
	}
}

func TestAssignLevels_Empty(t *testing.T) {
	if m := AssignLevels(nil, 3, 0); len(m) != 0 {
		t.Errorf("expected empty mapping, got %v", m)
	}
}

func TestAssignLevels_ClampsDepth(t *testing.T) {
	m := AssignLevels(cands(1, 2, 3, 4, 5, 6, 7), 9, 0)
	if m.Depth() != MaxDepth {
		t.Errorf("expected depth %d, got %d", MaxDepth, m.Depth())
	}
	if m.Of(3) != H5 || m.Of(2) != LevelNone {
		t.Errorf("unexpected tail mapping %v", m)
	}
}

func TestAssignLevels_MinScoreGap(t *testing.T) {
	// 10 and 9.5 merge; 6 and 5.8 merge; 2 opens H3.
	m := AssignLevels(cands(10, 9.5, 6, 5.8, 2, 1.5), 3, 1)
	want := map[float64]Level{10: H1, 9.5: H1, 6: H2, 5.8: H2, 2: H3, 1.5: H3}
	for score, lvl := range want {
		if got := m.Of(score); got != lvl {
			t.Errorf("score %v: expected %v, got %v", score, lvl, got)
		}
	}
	if m.Depth() != 3 {
		t.Errorf("expected depth 3, got %d", m.Depth())
	}
}

func TestLevelText(t *testing.T) {
	for _, l := range []Level{H1, H2, H3, H4, H5} {
		b, err := l.MarshalText()
		if err != nil {
			t.Fatalf("marshal %d: %v", l, err)
		}
		var back Level
		if err := back.UnmarshalText(b); err != nil || back != l {
			t.Errorf("round trip of %s gave %v (%v)", b, back, err)
		}
	}
	if _, err := LevelNone.MarshalText(); err == nil {
		t.Error("expected error marshaling LevelNone")
	}
	if _, err := ParseLevel("H6"); err == nil {
		t.Error("expected error for H6")
	}
	if l, err := ParseLevel("h2"); err != nil || l != H2 {
		t.Errorf("expected H2, got %v (%v)", l, err)
	}
}
