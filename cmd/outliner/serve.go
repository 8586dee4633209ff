package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/dgallion1/outliner/internal/api"
	"github.com/dgallion1/outliner/internal/config"
	"github.com/dgallion1/outliner/internal/pathstore"
	"github.com/dgallion1/outliner/internal/pipeline"
	"github.com/dgallion1/outliner/internal/sink"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the outliner HTTP API",
	Long: `Start the outliner HTTP API.

Endpoints:
  GET  /health                    Liveness check
  POST /api/outline               Outline one uploaded file (multipart "file")
  POST /api/outline/batch         Queue several files (multipart "files")
  GET  /api/jobs/{id}             Job status
  GET  /api/jobs/{id}/result      Finished outline
  GET  /api/outlines              Stored outlines
  GET  /api/outlines/{doc_id}     One stored outline
  GET  /api/stats                 Latency and queue statistics

Outline tuning (outline.* keys) is reloaded when the config file changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		mgr, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cfg := mgr.Get()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		log := cfg.NewLogger()
		if cfg.APIKey == "" {
			log.Warn("api_key is empty; /api routes are unauthenticated")
		}

		store, closeStore, err := newStore(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		orch := pipeline.NewOrchestrator(cfg, store, log)
		orch.Start(ctx)

		mgr.OnChange(func(c config.Config) {
			orch.SetOptions(c.Outline)
		})
		mgr.WatchConfig(log)

		httpServer := &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      api.NewServer(orch, log, cfg),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: cfg.DocumentTimeout + 30*time.Second,
			IdleTimeout:  60 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info("starting outliner", "port", cfg.Port, "sink", cfg.Sink, "workers", cfg.WorkerCount)
			errCh <- httpServer.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			orch.Stop()
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		log.Info("shutting down...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("http shutdown", "error", err)
		}
		orch.Stop()
		return nil
	},
}

// newStore builds the configured result sink.
func newStore(cfg config.Config) (sink.Store, func(), error) {
	switch cfg.Sink {
	case config.SinkDir:
		s, err := sink.NewDirStore(cfg.OutputDir)
		return s, func() {}, err
	case config.SinkPathstore:
		client := pathstore.NewClient(cfg.PathstoreURL, cfg.PathstoreAPIKey)
		return sink.NewPathstoreStore(client), client.Close, nil
	}
	return sink.NopStore{}, func() {}, nil
}

