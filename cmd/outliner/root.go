package main

import (
	"github.com/spf13/cobra"

	"github.com/dgallion1/outliner/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "outliner",
	Short: "Infer a title and heading outline from PDF typography",
	Long: `Outliner reads documents and infers their title and H1-H3 heading
outline from font size, weight and numbering alone.

PDF is the primary input. DOCX, HTML, Markdown and plain text are also
accepted. Every document yields a result: unreadable files produce an
empty outline titled with the file name.`,
	Version:       version,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./outliner.yaml or ~/.outliner/outliner.yaml)",
	)

	rootCmd.AddCommand(batchCmd, extractCmd, serveCmd, versionCmd)
}

// loadConfig reads and validates configuration for a command.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}
