package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docoutline/internal/batch"
)

var watchSettle time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Process a directory, then every new or rewritten PDF in it",
	Long: `Run a batch pass over the input directory, then watch it and process each
PDF that is created or rewritten once it has been quiet for the settle time.
Stops on Ctrl+C or SIGTERM.

Examples:
  docoutline watch --input ./inbox --output ./outlines`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, out := dirs(cmd)
		w := &batch.Watcher{
			Processor: &batch.Processor{Opts: cfg.OutlineOptions(), MaxPages: cfg.MaxPages, Log: logger},
			InDir:     in,
			OutDir:    out,
			Settle:    watchSettle,
			Log:       logger,
		}
		logger.Info("watching", "input", in, "output", out)
		return w.Run(cmd.Context())
	},
}

func init() {
	addDirFlags(watchCmd)
	watchCmd.Flags().DurationVar(&watchSettle, "settle", batch.DefaultSettle, "quiet time before a changed PDF is processed")
	rootCmd.AddCommand(watchCmd)
}
