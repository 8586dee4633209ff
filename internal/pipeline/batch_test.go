package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/outliner/internal/output"
)

func writeInputs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestBatchInputs(t *testing.T) {
	dir := writeInputs(t, map[string]string{
		"b.pdf":      "x",
		"A.PDF":      "x",
		"notes.md":   "x",
		"readme.rtf": "x",
	})
	if err := os.Mkdir(filepath.Join(dir, "sub.pdf"), 0o755); err != nil {
		t.Fatal(err)
	}

	pdfs, err := BatchInputs(dir, false)
	if err != nil {
		t.Fatalf("BatchInputs: %v", err)
	}
	if len(pdfs) != 2 || filepath.Base(pdfs[0]) != "A.PDF" || filepath.Base(pdfs[1]) != "b.pdf" {
		t.Errorf("unexpected pdf inputs %v", pdfs)
	}

	all, err := BatchInputs(dir, true)
	if err != nil {
		t.Fatalf("BatchInputs: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 supported inputs, got %v", all)
	}

	if _, err := BatchInputs(filepath.Join(dir, "missing"), false); err == nil {
		t.Error("expected error for missing dir")
	}
}

func TestRunBatch(t *testing.T) {
	in := writeInputs(t, map[string]string{
		"guide.md":   guideMarkdown,
		"broken.pdf": "not a pdf",
		"plain.txt":  "just some text\nand more text\n",
	})
	out := filepath.Join(t.TempDir(), "out")
	w, _ := newTestWorker(t, nil)

	items, err := RunBatch(context.Background(), BatchConfig{
		InputDir:   in,
		OutputDir:  out,
		Format:     output.FormatJSON,
		Workers:    2,
		AllFormats: true,
	}, w, testLogger())
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %+v", items)
	}

	byName := map[string]BatchItem{}
	for _, it := range items {
		byName[filepath.Base(it.Input)] = it
	}

	broken := byName["broken.pdf"]
	if broken.Error != "" || !broken.Degraded || broken.Title != "broken.pdf" {
		t.Errorf("expected degraded fallback for broken.pdf, got %+v", broken)
	}
	data, err := os.ReadFile(filepath.Join(out, "broken.json"))
	if err != nil {
		t.Fatalf("read broken.json: %v", err)
	}
	if !strings.Contains(string(data), `"outline": []`) {
		t.Errorf("expected empty outline in fallback output, got %s", data)
	}

	guide := byName["guide.md"]
	if guide.Title != "Guide" || guide.Headings != 2 || guide.Output != filepath.Join(out, "guide.json") {
		t.Errorf("unexpected guide item %+v", guide)
	}

	plain := byName["plain.txt"]
	if plain.Title != "plain.txt" || plain.Headings != 0 {
		t.Errorf("expected fallback for uniform text, got %+v", plain)
	}
}

func TestRunBatch_PDFOnlyAndMarkdownFormat(t *testing.T) {
	in := writeInputs(t, map[string]string{
		"guide.md":   guideMarkdown,
		"broken.pdf": "not a pdf",
	})
	out := t.TempDir()
	w, _ := newTestWorker(t, nil)

	items, err := RunBatch(context.Background(), BatchConfig{
		InputDir:  in,
		OutputDir: out,
		Format:    output.FormatMarkdown,
	}, w, testLogger())
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if len(items) != 1 || filepath.Base(items[0].Input) != "broken.pdf" {
		t.Fatalf("expected only the pdf, got %+v", items)
	}
	data, err := os.ReadFile(filepath.Join(out, "broken.md"))
	if err != nil {
		t.Fatalf("read broken.md: %v", err)
	}
	if string(data) != "# broken.pdf\n" {
		t.Errorf("unexpected markdown %q", data)
	}
}

func TestRunBatch_OutputCollision(t *testing.T) {
	in := writeInputs(t, map[string]string{
		"a.md":  guideMarkdown,
		"a.txt": "plain text body\n",
	})
	out := t.TempDir()
	w, _ := newTestWorker(t, nil)

	items, err := RunBatch(context.Background(), BatchConfig{
		InputDir:   in,
		OutputDir:  out,
		AllFormats: true,
	}, w, testLogger())
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %+v", items)
	}

	first, second := items[0], items[1]
	if filepath.Base(first.Input) != "a.md" || first.Error != "" || first.Output != filepath.Join(out, "a.json") {
		t.Errorf("expected a.md to own a.json, got %+v", first)
	}
	if filepath.Base(second.Input) != "a.txt" || second.Output != "" || !strings.Contains(second.Error, "collides with") {
		t.Errorf("expected collision error for a.txt, got %+v", second)
	}

	data, err := os.ReadFile(filepath.Join(out, "a.json"))
	if err != nil {
		t.Fatalf("read a.json: %v", err)
	}
	if !strings.Contains(string(data), `"title": "Guide"`) {
		t.Errorf("expected a.md result in a.json, got %s", data)
	}
}
