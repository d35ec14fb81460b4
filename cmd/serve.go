package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/sabores-de-africa/sabores/internal/catalog"
	"github.com/sabores-de-africa/sabores/internal/flow"
	"github.com/sabores-de-africa/sabores/internal/handlers"
	"github.com/sabores-de-africa/sabores/internal/images"
	"github.com/sabores-de-africa/sabores/internal/payment"
	"github.com/sabores-de-africa/sabores/internal/providers"
	"github.com/sabores-de-africa/sabores/internal/recipes"
	"github.com/spf13/cobra"
)

// cardImageDir is where prefetched card images live, under the static root
// so HandleStatic can serve them.
const cardImageDir = "static/images"

func newServeCmd() *cobra.Command {
	var (
		port           string
		catalogPath    string
		cacheDetails   bool
		prefetchImages bool
		fetchTimeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the recipe catalog web interface",
		Long: `Starts the Sabores web interface on the specified port.

Requires a generative backend for recipe detail: Gemini by default
(GEMINI_API_KEY), or Ollama / OpenAI via SABORES_PROVIDER.`,
		Example: `  # Start server on default port 8888
  sabores serve

  # Start server with a custom catalog and detail caching
  sabores serve --port 3000 --catalog ./recipes.yaml --cache-details`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := catalog.Default()
			if catalogPath != "" {
				var err error
				cat, err = catalog.Load(catalogPath)
				if err != nil {
					return err
				}
				slog.Info("Loaded custom catalog", "path", catalogPath, "recipes", cat.Len())
			}

			providerName := recipes.ResolveProvider()
			cfg := providers.FromEnv()
			source, err := recipes.NewSource(providerName, cfg)
			if err != nil {
				return err
			}
			imageSource := recipes.NewImageSource(providerName, cfg)
			slog.Info("Using generative provider", "provider", providerName, "model", cfg.DetailModel)

			session := flow.NewSession(cat, source, payment.NewSimulator(),
				flow.WithDetailCache(cacheDetails),
				flow.WithFetchTimeout(fetchTimeout),
			)

			imageDir := ""
			if prefetchImages {
				imageDir = cardImageDir
				if err := images.NewFetcher().PrefetchCardImages(cat.All(), imageDir); err != nil {
					slog.Warn("Card image prefetch failed", "err", err)
					imageDir = ""
				}
			}

			handler := handlers.New(cat, session, imageSource, imageDir)

			// Warm the hero image without blocking startup; the placeholder
			// serves until this resolves.
			go handler.WarmHeroImage(cmd.Context())

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: handler.Routes(),
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Sabores interface available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Path to a custom catalog YAML file")
	cmd.Flags().BoolVar(&cacheDetails, "cache-details", false, "Cache fetched recipe detail per recipe (stock behavior re-fetches)")
	cmd.Flags().BoolVar(&prefetchImages, "prefetch-images", false, "Download card images at startup and serve them locally")
	cmd.Flags().DurationVar(&fetchTimeout, "fetch-timeout", flow.DefaultFetchTimeout, "Timeout for a single detail fetch")

	return cmd
}
