package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docoutline/internal/batch"
)

var (
	inputDir  string
	outputDir string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Write the outline of every PDF in a directory",
	Long: `Process every *.pdf (any letter case) directly inside the input directory
and write <stem>.json to the output directory, creating it if needed. A file
that fails is logged and skipped.

Examples:
  docoutline batch
  docoutline batch --input ./pdfs --output ./outlines`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, out := dirs(cmd)
		p := &batch.Processor{Opts: cfg.OutlineOptions(), MaxPages: cfg.MaxPages, Log: logger}

		sum, err := p.ProcessDir(cmd.Context(), in, out)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "processed %d file(s), %d failed\n", sum.Processed, sum.Failed)
		return nil
	},
}

// dirs returns the input and output directories, with flags taking
// precedence over INPUT_DIR and OUTPUT_DIR.
func dirs(cmd *cobra.Command) (string, string) {
	in, out := cfg.InputDir, cfg.OutputDir
	if cmd.Flags().Changed("input") {
		in = inputDir
	}
	if cmd.Flags().Changed("output") {
		out = outputDir
	}
	return in, out
}

func addDirFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&inputDir, "input", "input", "directory of PDFs (env INPUT_DIR)")
	cmd.Flags().StringVar(&outputDir, "output", "output", "directory for JSON outlines (env OUTPUT_DIR)")
}

func init() {
	addDirFlags(batchCmd)
	rootCmd.AddCommand(batchCmd)
}
