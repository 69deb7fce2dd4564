package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hmans/sanityimage/internal/assetstore"
	"github.com/hmans/sanityimage/internal/imagedata"
	"github.com/hmans/sanityimage/internal/ui"
)

var (
	assetURL        string
	assetLQIP       string
	assetBackground string
)

var assetCmd = &cobra.Command{
	Use:   "asset",
	Short: "Manage local image asset documents",
	Long: `Lists, adds and removes the image asset documents the schema serves.
Documents are YAML files in the configured assets directory.`,
}

var assetListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List asset documents",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAssetStore(func(store *assetstore.Store) error {
			listAssets(cmd.OutOrStdout(), store)
			return nil
		})
	},
}

var assetAddCmd = &cobra.Command{
	Use:   "add <asset-id>",
	Short: "Add or replace an asset document",
	Long: `Writes an asset document for the given ID. Dimensions, extension and
mime type are derived from the ID.

Examples:
  sanityimage asset add image-Tb9Ew8CXIwaY6R1kjMvI0uRR-2000x3000-jpg --background '#1f2937'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAssetStore(func(store *assetstore.Store) error {
			a, err := addAsset(store, args[0], assetURL, assetLQIP, assetBackground)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", ui.Bold.Render(store.FullPath(a.ID)))
			return nil
		})
	},
}

var assetRemoveCmd = &cobra.Command{
	Use:     "rm <asset-id>",
	Aliases: []string{"delete"},
	Short:   "Remove an asset document by ID or unique ID prefix",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAssetStore(func(store *assetstore.Store) error {
			a, err := store.Get(args[0])
			if err != nil {
				return fmt.Errorf("failed to find asset: %w", err)
			}
			if err := store.Delete(a.ID); err != nil {
				return fmt.Errorf("failed to delete asset %s: %w", a.ID, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", ui.Primary.Render(a.ID))
			return nil
		})
	},
}

// withAssetStore loads the configured asset directory and runs fn against it.
func withAssetStore(fn func(*assetstore.Store) error) error {
	store := assetstore.New(cfg.ResolveAssetsDir(rootDir), log)
	defer store.Close()

	if err := store.Load(); err != nil {
		return fmt.Errorf("loading assets: %w", err)
	}
	return fn(store)
}

// addAsset writes an asset document for id. Optional palette and lqip
// values feed the dominantColor and blurred placeholders.
func addAsset(store *assetstore.Store, id, url, lqip, background string) (*imagedata.Asset, error) {
	a := &imagedata.Asset{ID: id, URL: url}
	if lqip != "" || background != "" {
		a.Metadata = &imagedata.Metadata{LQIP: lqip}
		if background != "" {
			a.Metadata.Palette = &imagedata.Palette{Dominant: &imagedata.PaletteSwatch{Background: background}}
		}
	}

	if err := store.Put(a); err != nil {
		return nil, fmt.Errorf("failed to write asset: %w", err)
	}
	return a, nil
}

func listAssets(w io.Writer, store *assetstore.Store) {
	all := store.All()
	fmt.Fprintf(w, "%s %s\n", ui.Muted.Render(store.Root()), ui.Muted.Render(fmt.Sprintf("(%d)", len(all))))
	for _, a := range all {
		var dims string
		if a.Metadata != nil {
			dims = fmt.Sprintf("%dx%d", a.Metadata.Dimensions.Width, a.Metadata.Dimensions.Height)
		}
		fmt.Fprintf(w, "%s  %s\n", ui.TypeName.Render(a.ID), ui.Muted.Render(dims))
	}
}

func init() {
	assetAddCmd.Flags().StringVar(&assetURL, "url", "", "Source URL (defaults to the Sanity CDN)")
	assetAddCmd.Flags().StringVar(&assetLQIP, "lqip", "", "Low quality image placeholder data URI")
	assetAddCmd.Flags().StringVar(&assetBackground, "background", "", "Dominant background color")

	assetCmd.AddCommand(assetListCmd, assetAddCmd, assetRemoveCmd)
	rootCmd.AddCommand(assetCmd)
}
