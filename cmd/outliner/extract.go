package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dgallion1/outliner/internal/outline"
	"github.com/dgallion1/outliner/internal/output"
	"github.com/dgallion1/outliner/internal/parser"
	"github.com/dgallion1/outliner/internal/pipeline"
)

var (
	extractFormat  string
	extractExplain bool
)

var extractCmd = &cobra.Command{
	Use:   "extract FILE",
	Short: "Outline a single document and print the result",
	Long: `Outline a single document and print the result to stdout.

With --explain, the body font size and every heading candidate with its
score and assigned level are printed to stderr.

Examples:
  outliner extract report.pdf
  outliner extract report.pdf -o markdown
  outliner extract notes.md --explain`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := cfg.NewLogger()

		format, err := output.ParseFormat(extractFormat)
		if err != nil {
			return err
		}

		path := args[0]
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		w := pipeline.NewWorker(nil, nil, log, pipeline.WorkerConfig{
			DocumentTimeout: cfg.DocumentTimeout,
			Parser:          parser.Options{MutoolFallback: cfg.PDFFallbackMutool},
		}, func() outline.Options { return cfg.Outline })

		out, err := w.Outline(cmd.Context(), filepath.Base(path), f)
		if err != nil {
			return err
		}
		if out.ParseErr != nil {
			log.Warn("document unreadable, printing fallback outline", "file", path, "error", out.ParseErr)
		}
		if extractExplain {
			explain(cmd, out)
		}
		return output.Write(cmd.OutOrStdout(), out.Result, format)
	},
}

func explain(cmd *cobra.Command, out *pipeline.Outcome) {
	a := out.Analysis
	errOut := cmd.ErrOrStderr()
	fmt.Fprintf(errOut, "pages: %d  spans: %d  body font size: %d  candidates: %d\n",
		out.Pages, out.Spans, a.BodyFontSize, len(a.Candidates))

	tw := tabwriter.NewWriter(errOut, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PAGE\tSIZE\tBOLD\tSCORE\tLEVEL\tTEXT")
	for _, c := range a.Candidates {
		level := a.Levels.Of(c.Score).String()
		if level == "" {
			level = "-"
		}
		fmt.Fprintf(tw, "%d\t%d\t%t\t%.1f\t%s\t%s\n", c.Page, c.FontSize, c.Bold, c.Score, level, c.Text)
	}
	tw.Flush()
}

func init() {
	extractCmd.Flags().StringVarP(&extractFormat, "output", "o", "json", "output format: json, yaml, markdown or html")
	extractCmd.Flags().BoolVar(&extractExplain, "explain", false, "print scoring details to stderr")
}
