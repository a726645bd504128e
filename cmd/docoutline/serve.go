package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docoutline/internal/api"
	"github.com/dgallion1/docoutline/internal/pipeline"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP job service",
	Long: `Start the HTTP API. Uploaded PDFs are queued and processed by a worker pool;
clients poll the job status and download the outline in any output format.

Requires DOCOUTLINE_API_KEY. Endpoints other than /health expect
"Authorization: Bearer <key>".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}
		if err := cfg.ValidateServer(); err != nil {
			log.Error("invalid configuration", "error", err)
			return err
		}

		// Initialize pipeline.
		orch := pipeline.NewOrchestrator(cfg, log)
		orch.Start(ctx)

		// Initialize HTTP server.
		srv := api.NewServer(orch, log, cfg)

		httpServer := &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      srv,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 120 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		// Graceful shutdown. Handlers drain before the queue closes.
		stopped := make(chan struct{})
		go func() {
			defer close(stopped)
			<-ctx.Done()
			log.Info("shutting down...")

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			httpServer.Shutdown(shutdownCtx)
			orch.Stop()
		}()

		log.Info("starting docoutline", "port", cfg.Port, "workers", cfg.WorkerCount)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			return err
		}
		<-stopped
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "8090", "port to listen on (env PORT)")
	rootCmd.AddCommand(serveCmd)
}
