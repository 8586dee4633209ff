// Package outline infers a document title and heading hierarchy from
// typographic signals alone: font size relative to the body text, weight,
// and numbering prefixes.
package outline

import (
	"path/filepath"

	"github.com/dgallion1/outliner/internal/doctree"
)

// Entry is one heading in the final outline.
type Entry struct {
	Level Level  `json:"level" yaml:"level"`
	Text  string `json:"text" yaml:"text"`
	Page  int    `json:"page" yaml:"page"`
}

// Result is the per-document output.
type Result struct {
	Title   string  `json:"title" yaml:"title"`
	Outline []Entry `json:"outline" yaml:"outline"`
}

// Analysis exposes the intermediate state behind a Result.
type Analysis struct {
	BodyFontSize int
	Candidates   []Candidate
	Levels       LevelMap
	Result       Result
}

// Fallback is the result for documents that yield nothing usable.
func Fallback(filename string) Result {
	return Result{Title: filepath.Base(filename), Outline: []Entry{}}
}

// Extract returns the outline of doc. A nil doc means the parser could not
// read the file; like an empty document, it yields Fallback(filename).
func Extract(filename string, doc *doctree.Document, opts Options) Result {
	return Analyze(filename, doc, opts).Result
}

// Analyze runs the full pipeline and keeps the intermediate state.
func Analyze(filename string, doc *doctree.Document, opts Options) *Analysis {
	opts = opts.Normalized()
	a := &Analysis{Result: Fallback(filename)}
	a.BodyFontSize = BodyFontSize(doc, opts)
	if doc.SpanCount() == 0 {
		return a
	}

	a.Candidates = opts.Candidates(doc, a.BodyFontSize)
	if len(a.Candidates) == 0 {
		return a
	}
	a.Levels = AssignLevels(a.Candidates, opts.MaxLevels, opts.MinScoreGap)

	entries := make([]Entry, 0, len(a.Candidates))
	for _, c := range a.Candidates {
		lvl := a.Levels.Of(c.Score)
		if lvl == LevelNone {
			continue
		}
		entries = append(entries, Entry{Level: lvl, Text: c.Text, Page: c.Page})
	}
	entries = dedupe(entries)

	switch opts.TitlePolicy {
	case TitleByRank:
		order(entries)
		if title, rest, ok := rankTitle(entries); ok {
			a.Result.Title = title
			entries = rest
		}
	default:
		if title, ok := scoreTitle(a.Candidates); ok {
			a.Result.Title = title
			entries = without(entries, title)
		}
		order(entries)
	}

	a.Result.Outline = append([]Entry{}, entries...)
	return a
}
