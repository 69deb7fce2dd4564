package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hmans/sanityimage/internal/assetstore"
	"github.com/hmans/sanityimage/internal/config"
	"github.com/hmans/sanityimage/internal/graph"
	"github.com/hmans/sanityimage/internal/imageext"
	"github.com/hmans/sanityimage/internal/logger"
)

var (
	cfg     *config.Config
	rootDir string
)

var log = zerolog.Nop()

var (
	configDir     string
	projectIDFlag string
	datasetFlag   string
	overlayDrafts bool
	logLevelFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "sanityimage",
	Short: "Responsive image data for Sanity image assets over GraphQL",
	Long: `sanityimage exposes Sanity image assets through a GraphQL schema that
carries the gatsbyImageData field extension. Asset documents are read from a
local directory; image urls point at the Sanity image CDN.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init writes the config instead of reading it
		if cmd.Name() == "init" {
			return nil
		}

		var err error
		rootDir, err = resolveRoot()
		if err != nil {
			return err
		}

		cfg, err = config.Load(rootDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		applyFlagOverrides(cmd, cfg)

		log = logger.Init(cfg.Log.Level)
		return nil
	},
}

func resolveRoot() (string, error) {
	if configDir == "" {
		return os.Getwd()
	}
	if info, err := os.Stat(configDir); err != nil || !info.IsDir() {
		return "", fmt.Errorf("config directory does not exist or is not a directory: %s", configDir)
	}
	return configDir, nil
}

// applyFlagOverrides lets explicitly set flags take precedence over the config file.
func applyFlagOverrides(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("project-id") {
		c.ProjectID = projectIDFlag
	}
	if flags.Changed("dataset") {
		c.Dataset = datasetFlag
	}
	if flags.Changed("overlay-drafts") {
		c.OverlayDrafts = overlayDrafts
	}
	if flags.Changed("log-level") {
		c.Log.Level = logLevelFlag
	}
}

// newResolver validates c and assembles the schema context for it,
// loading asset documents from the configured directory.
func newResolver(c *config.Config, root string, log zerolog.Logger) (*graph.Resolver, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	store := assetstore.New(c.ResolveAssetsDir(root), log)
	if err := store.Load(); err != nil {
		return nil, fmt.Errorf("loading assets: %w", err)
	}

	return &graph.Resolver{
		Config:     *c,
		Extensions: imageext.NewCache(imageext.WithLogger(log)),
		Assets:     store,
	}, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Directory containing sanity.toml (defaults to the current directory)")
	rootCmd.PersistentFlags().StringVar(&projectIDFlag, "project-id", "", "Sanity project ID (overrides config)")
	rootCmd.PersistentFlags().StringVar(&datasetFlag, "dataset", "", "Sanity dataset (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&overlayDrafts, "overlay-drafts", false, "Overlay drafts on published documents (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
