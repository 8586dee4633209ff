package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/dgallion1/outliner/internal/doctree"
	"golang.org/x/text/unicode/norm"
)

var (
	// ErrUnreadable marks a document that could not be opened or decoded at all.
	ErrUnreadable = errors.New("document unreadable")
	// ErrUnsupported marks a file extension no parser handles.
	ErrUnsupported = errors.New("unsupported file extension")
)

// Parser converts raw document bytes into spans.
type Parser interface {
	Parse(ctx context.Context, r io.Reader, filename string) (*doctree.Document, error)
}

// Options configures parser construction.
type Options struct {
	// MutoolFallback lets the PDF parser shell out to MuPDF when the
	// pure-Go decoder fails.
	MutoolFallback bool
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{MutoolFallback: opts.MutoolFallback}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// normalize applies NFKC (which also splits ligatures) and collapses whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(norm.NFKC.String(s)), " ")
}

func roundSize(f float64) int {
	return int(math.Round(f))
}

// boldFontName reports whether a font name carries a heavy-weight marker.
func boldFontName(name string) bool {
	n := strings.ToLower(name)
	for _, marker := range []string{"bold", "black", "heavy", "semibold", "demibold"} {
		if strings.Contains(n, marker) {
			return true
		}
	}
	return false
}

func newDocument(filename string) *doctree.Document {
	return &doctree.Document{Filename: filepath.Base(filename)}
}
