package outline

import "sort"

// scoreTitle returns the highest-scoring page-1 candidate. Ties go to the
// lowest encounter index.
func scoreTitle(cands []Candidate) (string, bool) {
	var best *Candidate
	for i := range cands {
		c := &cands[i]
		if c.Page != 1 {
			continue
		}
		if best == nil || c.Score > best.Score || (c.Score == best.Score && c.Index < best.Index) {
			best = c
		}
	}
	if best == nil {
		return "", false
	}
	return best.Text, true
}

// rankTitle applies the rank policy to an ordered outline. A leading H1 is
// popped; otherwise a leading entry on page 1 or 2 lends its text and stays.
func rankTitle(entries []Entry) (string, []Entry, bool) {
	if len(entries) == 0 {
		return "", entries, false
	}
	first := entries[0]
	if first.Level == H1 {
		return first.Text, entries[1:], true
	}
	if first.Page <= 2 {
		return first.Text, entries, true
	}
	return "", entries, false
}

// dedupe keeps the first occurrence of each heading text.
func dedupe(entries []Entry) []Entry {
	seen := make(map[string]bool, len(entries))
	out := entries[:0:0]
	for _, e := range entries {
		if seen[e.Text] {
			continue
		}
		seen[e.Text] = true
		out = append(out, e)
	}
	return out
}

func without(entries []Entry, text string) []Entry {
	out := entries[:0:0]
	for _, e := range entries {
		if e.Text != text {
			out = append(out, e)
		}
	}
	return out
}

// order sorts by page, then level rank. Ties keep encounter order.
func order(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Page != entries[j].Page {
			return entries[i].Page < entries[j].Page
		}
		return entries[i].Level.Rank() < entries[j].Level.Rank()
	})
}
