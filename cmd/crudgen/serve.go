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

	"github.com/spf13/cobra"

	"github.com/tordrt/crudgen/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve preview and generation over HTTP",
	Long: `serve starts an HTTP API:

  GET  /                 health check
  POST /api/v1/preview   render artifacts without writing
  POST /api/v1/generate  render and write artifacts

generate writes to the outputRoot named in the request body. The server
listens on loopback by default; set server.allowed_roots (or
CRUDGEN_ALLOWED_ROOTS) to restrict the writable roots before binding it to
another interface.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: 127.0.0.1:8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.Server.Addr = serveAddr
	}
	logger := newLogger(cmd.ErrOrStderr(), verbose)
	if len(cfg.Server.AllowedRoots) == 0 {
		logger.Warn("generate accepts any output root; set server.allowed_roots to restrict it")
	}

	opts, err := buildOptions(cfg, logger)
	if err != nil {
		return err
	}

	srv := server.NewServer(server.Config{
		Addr:           cfg.Server.Addr,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedRoots:   cfg.Server.AllowedRoots,
		Options:        opts,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-quit:
	}

	logger.Info("shutting down server gracefully")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("server exiting")
	return nil
}
