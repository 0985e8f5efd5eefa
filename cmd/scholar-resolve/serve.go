// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-resolve/internal/httpapi"
	"github.com/pdiddy/scholar-resolve/internal/resolve"
	"github.com/pdiddy/scholar-resolve/pkg/types"
)

const (
	defaultAddr        = ":8080"
	defaultReadTimeout = 10 * time.Second
	// The write timeout must cover the slowest resolve chain: the
	// fan-out batches plus three sequential enrichment calls.
	defaultWriteTimeout = 90 * time.Second
	shutdownGrace       = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the resolution engine over HTTP",
	Long: `Serve starts an HTTP server exposing author resolution at
/api/v1/authors/search, a health check at /healthz, and Prometheus metrics
at /metrics. The server shuts down gracefully on interrupt.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	serveCmd.Flags().Duration("timeout", 0, "per-request HTTP timeout toward providers (default 20s)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = viper.GetString("server.addr")
	}
	if addr == "" {
		addr = defaultAddr
	}
	srvCfg := types.ServerConfig{
		Addr:         addr,
		ReadTimeout:  serverTimeout("server.read_timeout", defaultReadTimeout),
		WriteTimeout: serverTimeout("server.write_timeout", defaultWriteTimeout),
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg := resolveConfigFromFlags(cmd)
	resolver := resolve.New(cfg, logger)
	handler := httpapi.New(resolver, logger, nil)

	srv := &http.Server{
		Addr:         srvCfg.Addr,
		Handler:      httpapi.Router(handler),
		ReadTimeout:  srvCfg.ReadTimeout,
		WriteTimeout: srvCfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting scholar-resolve server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(ctx)
}

// serverTimeout reads a duration from config, falling back when unset.
func serverTimeout(key string, fallback time.Duration) time.Duration {
	if d := viper.GetDuration(key); d > 0 {
		return d
	}
	return fallback
}
