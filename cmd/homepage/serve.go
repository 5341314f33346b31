package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"homepage/internal/logger"
	"homepage/internal/site"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "HTTP port (overrides http_port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.HTTPPort = servePort
	}

	// Canceled on SIGINT or SIGTERM.
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	h, _, err := newHandlers(cfg)
	if err != nil {
		return err
	}
	server := site.NewServer(cfg.HTTPPort, h)
	errc := server.Start()

	logger.Info().
		Str("www_json", cfg.Sources.WWWJSONURL).
		Str("buk1t_json", cfg.Sources.Buk1tJSONURL).
		Msg("application is running")

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received, starting graceful shutdown")
	case err, ok := <-errc:
		if ok && err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown error: %w", err)
	}
	logger.Info().Msg("application shut down gracefully")
	return nil
}
