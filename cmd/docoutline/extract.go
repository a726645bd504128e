package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docoutline/internal/batch"
	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/render"
)

var (
	extractOutput string
	extractFormat string
	extractOutDir string
)

var extractCmd = &cobra.Command{
	Use:   "extract FILE.pdf...",
	Short: "Print or write the outline of PDF files",
	Long: `Extract the title and outline of each PDF.

Without --out the result is printed to stdout in the -o format. With --out
each result is written to DIR/<stem><ext> in the --format format.

Examples:
  docoutline extract report.pdf
  docoutline extract -o yaml report.pdf
  docoutline extract --format docx --out ./toc a.pdf b.pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		p := &batch.Processor{Opts: cfg.OutlineOptions(), MaxPages: cfg.MaxPages, Log: logger}

		name := extractOutput
		if extractOutDir != "" {
			name = extractFormat
		}
		format, err := render.ParseFormat(name)
		if err != nil {
			return err
		}
		if extractOutDir == "" && format == render.DOCX {
			return fmt.Errorf("docx output requires --out")
		}
		if extractOutDir != "" {
			if err := os.MkdirAll(extractOutDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
		}

		for _, path := range args {
			res, err := p.Extract(ctx, path)
			if err != nil {
				return err
			}

			if extractOutDir == "" {
				if err := render.Write(cmd.OutOrStdout(), format, res); err != nil {
					return err
				}
				continue
			}

			base := filepath.Base(path)
			out := filepath.Join(extractOutDir, strings.TrimSuffix(base, filepath.Ext(base))+format.Extension())
			if err := writeFile(out, format, res); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
		}
		return nil
	},
}

func writeFile(path string, format render.Format, res *outline.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := render.Write(f, format, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func init() {
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "json", "stdout format: json, yaml, markdown or html")
	extractCmd.Flags().StringVar(&extractFormat, "format", "json", "file format with --out: json, yaml, markdown, html or docx")
	extractCmd.Flags().StringVar(&extractOutDir, "out", "", "write one file per PDF into this directory")

	rootCmd.AddCommand(extractCmd)
}
