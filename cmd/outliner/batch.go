package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgallion1/outliner/internal/outline"
	"github.com/dgallion1/outliner/internal/output"
	"github.com/dgallion1/outliner/internal/parser"
	"github.com/dgallion1/outliner/internal/pipeline"
)

var (
	batchInput      string
	batchOutput     string
	batchFormat     string
	batchAllFormats bool
	batchSummary    bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Outline every PDF in a directory",
	Long: `Outline every PDF in the input directory and write one <name>.json per
document to the output directory. Documents are processed in parallel, one
worker per document, up to worker_count at a time. A document that cannot
be read still gets a file with its name as the title and an empty outline.

Examples:
  outliner batch                                   # /app/input -> /app/output
  outliner batch --input ./pdfs --output ./out
  outliner batch --all-formats --format markdown`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := cfg.NewLogger()

		formatName := cfg.OutputFormat
		if cmd.Flags().Changed("format") {
			formatName = batchFormat
		}
		format, err := output.ParseFormat(formatName)
		if err != nil {
			return err
		}

		w := pipeline.NewWorker(nil, nil, log, pipeline.WorkerConfig{
			DocumentTimeout: cfg.DocumentTimeout,
			Parser:          parser.Options{MutoolFallback: cfg.PDFFallbackMutool},
		}, func() outline.Options { return cfg.Outline })

		items, err := pipeline.RunBatch(cmd.Context(), pipeline.BatchConfig{
			InputDir:   batchInput,
			OutputDir:  batchOutput,
			Format:     format,
			Workers:    cfg.WorkerCount,
			AllFormats: batchAllFormats,
		}, w, log)
		if err != nil {
			return err
		}

		failed := 0
		for _, it := range items {
			if it.Error != "" {
				failed++
			}
		}
		log.Info("batch complete", "documents", len(items), "failed", failed)

		if batchSummary {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(items); err != nil {
				return err
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d documents failed", failed, len(items))
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchInput, "input", "/app/input", "directory of input documents")
	batchCmd.Flags().StringVar(&batchOutput, "output", "/app/output", "directory for outline files")
	batchCmd.Flags().StringVar(&batchFormat, "format", "json", "output format: json, yaml, markdown or html")
	batchCmd.Flags().BoolVar(&batchAllFormats, "all-formats", false, "also process .docx, .html, .md and .txt inputs")
	batchCmd.Flags().BoolVar(&batchSummary, "summary", false, "print a JSON summary of every document to stdout")
}
