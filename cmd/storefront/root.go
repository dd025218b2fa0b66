package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"example.com/marketplace/storefront/internal/api"
	"example.com/marketplace/storefront/internal/config"
	"example.com/marketplace/storefront/internal/logger"
	"example.com/marketplace/storefront/internal/store"
	"example.com/marketplace/storefront/internal/ui"
	"example.com/marketplace/storefront/internal/view"
	"example.com/marketplace/storefront/internal/web"
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Server-rendered storefront for the marketplace API",
	Long: `storefront renders the marketplace catalog, cart, orders, and admin
statistics as HTML pages, backed entirely by the marketplace REST API.
All state is fetched from the backend; nothing is persisted locally.`,
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.Flags()
	flags.String("listen", ":3000", "address to serve the storefront on")
	flags.String("api-base", "http://localhost:8000/api", "base URL of the marketplace API")
	flags.Duration("timeout", 15*time.Second, "per-request timeout for backend calls")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("env", "dev", "deployment environment tag for logs")

	_ = viper.BindPFlags(flags)
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Service: "storefront",
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := api.New(cfg.APIBase,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithLogger(log),
	)
	ctrl := ui.New(client, store.New(), ui.WithLogger(log))

	render, err := view.NewRenderer()
	if err != nil {
		return err
	}

	log.Info("starting storefront", "api_base", cfg.APIBase, "listen", cfg.Listen)
	if err := ctrl.Start(ctx); err != nil {
		return fmt.Errorf("initial state fetch: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           web.NewServer(ctrl, render, log).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
