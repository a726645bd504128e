package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docoutline/internal/config"
)

var (
	cfg    config.Config
	logger *slog.Logger

	lineTolerance float64
	exceptionPage int
	pageWorkers   int
	maxPages      int
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "docoutline",
	Short: "Infer document outlines from PDF font metadata",
	Long: `docoutline reads the glyphs of a PDF and infers its title and an H1-H4
outline from font size rank, weight, slant and font continuity between
neighboring lines. It works on PDFs that carry no authored bookmarks.

Commands:
  extract  print or write the outline of one or more PDFs
  batch    write <stem>.json for every PDF in a directory
  watch    like batch, then keep processing new or rewritten PDFs
  serve    run the HTTP job service`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		cfg = config.Load()
		flags := cmd.Flags()
		if flags.Changed("line-tolerance") {
			cfg.LineTolerance = lineTolerance
		}
		if flags.Changed("exception-page") {
			cfg.ExceptionPage = exceptionPage
		}
		if flags.Changed("page-workers") {
			cfg.PageWorkers = pageWorkers
		}
		if flags.Changed("max-pages") {
			cfg.MaxPages = maxPages
		}
		return cfg.Validate()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Float64Var(&lineTolerance, "line-tolerance", 3.0, "vertical distance within which glyphs share a line (env LINE_TOLERANCE)")
	pf.IntVar(&exceptionPage, "exception-page", 10, "page index checked for isolated styled lines, negative disables (env EXCEPTION_PAGE)")
	pf.IntVar(&pageWorkers, "page-workers", 4, "pages classified concurrently (env PAGE_WORKERS)")
	pf.IntVar(&maxPages, "max-pages", 2000, "reject PDFs with more pages, 0 for no limit (env MAX_PAGES)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(versionCmd)
}
