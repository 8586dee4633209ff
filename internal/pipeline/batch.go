package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dgallion1/outliner/internal/output"
	"github.com/dgallion1/outliner/internal/parser"
	"golang.org/x/sync/errgroup"
)

// BatchConfig describes one directory-to-directory run.
type BatchConfig struct {
	InputDir  string
	OutputDir string
	Format    output.Format
	Workers   int
	// AllFormats includes every supported extension, not only PDFs.
	AllFormats bool
}

// BatchItem summarizes one input file.
type BatchItem struct {
	Input    string `json:"input"`
	Output   string `json:"output,omitempty"`
	Title    string `json:"title"`
	Headings int    `json:"headings"`
	Degraded bool   `json:"degraded,omitempty"`
	Error    string `json:"error,omitempty"`
}

// BatchInputs lists the files RunBatch would process, sorted by name.
func BatchInputs(dir string, allFormats bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ok := strings.EqualFold(filepath.Ext(name), ".pdf")
		if allFormats {
			ok = parser.IsSupportedExtension(name)
		}
		if ok {
			files = append(files, filepath.Join(dir, name))
		}
	}
	sort.Strings(files)
	return files, nil
}

// RunBatch outlines every input file in parallel and writes <stem>.<ext>
// into the output directory. A failing document is reported in its
// BatchItem and never stops the rest of the batch.
func RunBatch(ctx context.Context, cfg BatchConfig, w *Worker, log *slog.Logger) ([]BatchItem, error) {
	files, err := BatchInputs(cfg.InputDir, cfg.AllFormats)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	if cfg.Format == "" {
		cfg.Format = output.FormatJSON
	}

	dests, owners := batchOutputs(files, cfg)
	items := make([]BatchItem, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Workers, 1))
	for i, path := range files {
		if owner, taken := owners[i]; taken {
			items[i] = BatchItem{Input: path, Error: fmt.Sprintf("output %s collides with %s", dests[i], owner)}
			log.Error("batch document skipped", "input", path, "error", items[i].Error)
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			items[i] = processFile(gctx, cfg, w, path, dests[i])
			if items[i].Error != "" {
				log.Error("batch document failed", "input", path, "error", items[i].Error)
			} else {
				log.Info("batch document done", "input", path, "headings", items[i].Headings, "degraded", items[i].Degraded)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return items, err
	}
	return items, nil
}

// batchOutputs maps each input to <stem>.<ext> in the output directory.
// When two inputs map to the same file (compared case-insensitively), the
// first in sorted order keeps it and the rest are returned in owners with
// the input that claimed it.
func batchOutputs(files []string, cfg BatchConfig) (dests []string, owners map[int]string) {
	dests = make([]string, len(files))
	owners = make(map[int]string)
	claimed := make(map[string]string, len(files))
	for i, path := range files {
		base := filepath.Base(path)
		dests[i] = filepath.Join(cfg.OutputDir, strings.TrimSuffix(base, filepath.Ext(base))+"."+cfg.Format.Extension())
		key := strings.ToLower(dests[i])
		if owner, ok := claimed[key]; ok {
			owners[i] = owner
			continue
		}
		claimed[key] = path
	}
	return dests, owners
}

func processFile(ctx context.Context, cfg BatchConfig, w *Worker, path, dest string) BatchItem {
	item := BatchItem{Input: path}

	f, err := os.Open(path)
	if err != nil {
		item.Error = err.Error()
		return item
	}
	defer f.Close()

	out, err := w.Outline(ctx, filepath.Base(path), f)
	if err != nil {
		item.Error = err.Error()
		return item
	}
	item.Title = out.Result.Title
	item.Headings = len(out.Result.Outline)
	item.Degraded = out.ParseErr != nil

	data, err := output.Marshal(out.Result, cfg.Format)
	if err != nil {
		item.Error = err.Error()
		return item
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		item.Error = err.Error()
		return item
	}
	item.Output = dest
	return item
}
