package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/dgallion1/outliner/internal/doctree"
)

// stext.json as emitted by `mutool draw -F stext.json`.
type stextJSON struct {
	Pages []stextPage `json:"pages"`
}

type stextPage struct {
	Blocks []stextBlock `json:"blocks"`
}

type stextBlock struct {
	Type  string      `json:"type"`
	Lines []stextLine `json:"lines"`
}

type stextBBox struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type stextLine struct {
	BBox stextBBox `json:"bbox"`
	Font stextFont `json:"font"`
	Text string    `json:"text"`
}

type stextFont struct {
	Name   string  `json:"name"`
	Weight string  `json:"weight"`
	Size   float64 `json:"size"`
}

var (
	mutoolOnce sync.Once
	mutoolPath string
	mutoolErr  error
)

// discoverMutool searches $MUPDF_BIN, then PATH.
func discoverMutool() (string, error) {
	mutoolOnce.Do(func() {
		candidates := []string{}
		if env := strings.TrimSpace(os.Getenv("MUPDF_BIN")); env != "" {
			candidates = append(candidates, env)
		}
		exe := "mutool"
		if runtime.GOOS == "windows" {
			exe += ".exe"
		}
		candidates = append(candidates, exe)
		for _, c := range candidates {
			if p, err := exec.LookPath(c); err == nil {
				mutoolPath = p
				return
			}
		}
		mutoolErr = errors.New("mutool not found: install mupdf-tools or set $MUPDF_BIN")
	})
	return mutoolPath, mutoolErr
}

func extractMutoolSpans(ctx context.Context, path, filename string) (*doctree.Document, error) {
	bin, err := discoverMutool()
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, bin, "draw", "-F", "stext.json", "-o", "-", path)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: mutool: %v: %s", ErrUnreadable, err, strings.TrimSpace(stderr.String()))
	}
	return decodeStext(stdout.Bytes(), filename)
}

func decodeStext(data []byte, filename string) (*doctree.Document, error) {
	var st stextJSON
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("%w: decode stext: %v", ErrUnreadable, err)
	}

	doc := newDocument(filename)
	for _, pg := range st.Pages {
		page := doc.AddPage()
		for _, b := range pg.Blocks {
			if b.Type != "" && b.Type != "text" {
				continue
			}
			for _, ln := range b.Lines {
				text := normalize(ln.Text)
				if text == "" {
					continue
				}
				page.Add(doctree.Span{
					Text:     text,
					FontSize: roundSize(ln.Font.Size),
					Bold:     strings.EqualFold(ln.Font.Weight, "bold") || boldFontName(ln.Font.Name),
					BBox: doctree.BBox{
						X0: ln.BBox.X,
						Y0: ln.BBox.Y,
						X1: ln.BBox.X + ln.BBox.W,
						Y1: ln.BBox.Y + ln.BBox.H,
					},
				})
			}
		}
	}
	return doc, nil
}
