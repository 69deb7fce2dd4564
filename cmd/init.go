package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hmans/sanityimage/internal/assetstore"
	"github.com/hmans/sanityimage/internal/config"
	"github.com/hmans/sanityimage/internal/ui"
)

var initForce bool

var ErrConfigExists = errors.New("config file already exists")

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a sanity.toml config file",
	Long: `Creates a sanity.toml config file and an empty assets directory in the
config directory (the current directory unless --config-dir is given).

Examples:
  sanityimage init --project-id abc123
  sanityimage init --project-id abc123 --dataset staging`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := configDir
		if dir == "" {
			var err error
			if dir, err = os.Getwd(); err != nil {
				return err
			}
		}

		c, err := initProject(dir, projectIDFlag, datasetFlag, initForce)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s for %s\n",
			ui.Bold.Render(filepath.Join(dir, config.ConfigFile)),
			ui.Primary.Render(c.ProjectID+"/"+c.Dataset))
		return nil
	},
}

// initProject writes a default config for projectID to dir and creates the
// assets directory next to it.
func initProject(dir, projectID, dataset string, force bool) (*config.Config, error) {
	c := config.DefaultWithProject(projectID, dataset)
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if !force {
		if _, err := os.Stat(filepath.Join(dir, config.ConfigFile)); err == nil {
			return nil, ErrConfigExists
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	if err := assetstore.New(c.ResolveAssetsDir(dir), log).Init(); err != nil {
		return nil, fmt.Errorf("failed to create assets directory: %w", err)
	}
	if err := c.Save(dir); err != nil {
		return nil, fmt.Errorf("failed to create config: %w", err)
	}

	return c, nil
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
