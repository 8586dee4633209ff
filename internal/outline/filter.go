package outline

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Accept reports whether a fragment may become a heading candidate.
// Rules run in order and the first match rejects.
func (o Options) Accept(text string) bool {
	o = o.Normalized()
	t := strings.TrimSpace(text)

	if utf8.RuneCountInString(t) < o.MinTextLength {
		return false
	}
	if allRunes(t, unicode.IsDigit) {
		return false
	}
	if o.denied(t) {
		return false
	}
	lower := strings.ToLower(t)
	if strings.Contains(lower, "http:") || strings.Contains(lower, "https:") {
		return false
	}
	if allRunes(t, isSeparator) {
		return false
	}
	return true
}

func (o Options) denied(t string) bool {
	if len(o.Denylist) == 0 {
		return false
	}
	key := fold(t)
	for _, d := range o.Denylist {
		if fold(d) == key {
			return true
		}
	}
	return false
}

// fold normalizes to NFKC and applies Unicode case folding. Casers carry
// state, so one is built per call.
func fold(s string) string {
	return cases.Fold().String(norm.NFKC.String(strings.TrimSpace(s)))
}

func isSeparator(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r) || unicode.IsSpace(r)
}

func allRunes(s string, pred func(rune) bool) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !pred(r) {
			return false
		}
	}
	return true
}
