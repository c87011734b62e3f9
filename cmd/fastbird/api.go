package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/fast-bird/internal/api"
	"github.com/vovakirdan/fast-bird/internal/storage"
)

var flagAPIAddr string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Serve match results over HTTP",
	Long: `Start a read-only HTTP API over the results database.

Endpoints:
  GET /healthz
  GET /api/results?limit=N
  GET /api/stats
  GET /api/levels

Examples:
  fastbird api
  fastbird api --addr 127.0.0.1:9000`,
	Args: cobra.NoArgs,
	Run:  runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", ":8080", "HTTP listen address")
}

func runAPI(cmd *cobra.Command, _ []string) {
	logger := newLogger("fastbird-api")
	if !cmd.Flags().Changed("log-level") {
		logger.SetLevel(log.InfoLevel)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail(fmt.Errorf("opening results database: %w", err))
	}
	defer store.Close()

	srv := &http.Server{
		Addr:              flagAPIAddr,
		Handler:           api.NewRouter(store, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP API", "address", flagAPIAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logger.Info("shutting down...")
	case err := <-errCh:
		store.Close()
		fail(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
