// Package sink persists outline results so they can be listed and fetched
// after the request that produced them.
package sink

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dgallion1/outliner/internal/outline"
)

// ErrNotFound is returned by Get for unknown document IDs.
var ErrNotFound = errors.New("outline not found")

// Record is a stored outline and the document it came from.
type Record struct {
	DocID       string         `json:"doc_id" yaml:"doc_id"`
	Filename    string         `json:"filename" yaml:"filename"`
	ContentHash string         `json:"content_hash,omitempty" yaml:"content_hash,omitempty"`
	StoredAt    time.Time      `json:"stored_at" yaml:"stored_at"`
	Result      outline.Result `json:"result" yaml:"result"`
}

// Store is a destination for finished outlines.
type Store interface {
	Put(ctx context.Context, rec Record) error
	Get(ctx context.Context, docID string) (*Record, error)
	List(ctx context.Context) ([]Record, error)
}

// DocID derives a stable identifier from a filename and the hex content
// hash: the lowercased stem and extension joined by '-', with anything
// outside [a-z0-9_-] replaced by '-'. A stem that is empty or carries
// non-ASCII characters gets the first 12 hash digits appended, so
// "報告.pdf" and "資料.pdf" stay distinct.
func DocID(filename, contentHash string) string {
	base := filepath.Base(filename)
	ext := filepath.Ext(base)
	rawStem := strings.TrimSuffix(base, ext)

	stem := sanitizeID(rawStem)
	if stem == "" || !isASCII(rawStem) {
		if h := shortHash(contentHash); h != "" {
			stem = joinID(stem, h)
		}
	}
	id := joinID(stem, sanitizeID(strings.TrimPrefix(ext, ".")))
	if id == "" {
		return "document"
	}
	return id
}

// ValidID reports whether id could have come from DocID.
func ValidID(id string) bool {
	return id != "" && sanitizeID(id) == id
}

func sanitizeID(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

func joinID(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + "-" + b
}

func shortHash(h string) string {
	h = sanitizeID(h)
	if len(h) > 12 {
		h = h[:12]
	}
	return h
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// NopStore discards everything.
type NopStore struct{}

func (NopStore) Put(context.Context, Record) error { return nil }

func (NopStore) Get(context.Context, string) (*Record, error) { return nil, ErrNotFound }

func (NopStore) List(context.Context) ([]Record, error) { return nil, nil }
