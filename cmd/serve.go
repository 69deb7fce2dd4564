package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hmans/sanityimage/internal/assetstore"
	"github.com/hmans/sanityimage/internal/graph"
)

var (
	servePort  int
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Start the GraphQL server",
	Long: `Start an HTTP server that serves the image asset GraphQL API.

The server exposes:
  - GraphQL endpoint at /graphql (POST)
  - GraphQL Playground at /graphql (GET) for interactive queries
  - Health check at /healthz

Examples:
  # Start server on the configured port (default 22881)
  sanityimage serve

  # Start server on a custom port and pick up asset changes
  sanityimage serve --port 3000 --watch`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}
		if cmd.Flags().Changed("watch") {
			cfg.WatchMode = serveWatch
		}
		return runServer()
	},
}

func runServer() error {
	resolver, err := newResolver(cfg, rootDir, log)
	if err != nil {
		return err
	}

	schema, err := resolver.Schema()
	if err != nil {
		return fmt.Errorf("building schema: %w", err)
	}

	if cfg.WatchMode {
		if err := resolver.Assets.Watch(); err != nil {
			return fmt.Errorf("watching assets: %w", err)
		}
		defer resolver.Assets.Close()

		events, unsubscribe := resolver.Assets.Subscribe()
		defer unsubscribe()
		go logAssetEvents(events)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      graph.NewRouter(schema, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Set up signal handling with context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)

	go func() {
		log.Info().
			Str("project_id", cfg.ProjectID).
			Str("dataset", cfg.Dataset).
			Int("assets", resolver.Assets.Len()).
			Msgf("GraphQL Playground: http://localhost:%d/graphql", cfg.Server.Port)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		log.Info().Msg("server stopped")
	}

	return nil
}

func logAssetEvents(events <-chan []assetstore.Event) {
	for batch := range events {
		for _, e := range batch {
			log.Info().Str("asset", e.AssetID).Str("change", e.Type.String()).Msg("asset changed")
		}
	}
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "Reload asset documents when they change on disk")
	rootCmd.AddCommand(serveCmd)
}
