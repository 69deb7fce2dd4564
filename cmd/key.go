package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hmans/sanityimage/internal/cachekey"
	"github.com/hmans/sanityimage/internal/config"
	"github.com/hmans/sanityimage/internal/ui"
)

var keyJSON bool

var keyNamespaces = []cachekey.Namespace{
	cachekey.ImageExtensions,
	cachekey.Documents,
	cachekey.Schema,
}

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Print the cache keys derived from the current config",
	Long: `Prints the cache key derived for each namespace. Configurations that print
the same keys share cached schema extensions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		keys, err := deriveKeys(*cfg)
		if err != nil {
			return fmt.Errorf("deriving keys: %w", err)
		}

		if keyJSON {
			data, err := json.Marshal(keys)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		fmt.Fprint(cmd.OutOrStdout(), renderKeys(keys))
		return nil
	},
}

type namespacedKey struct {
	Namespace cachekey.Namespace `json:"namespace"`
	Key       string             `json:"key"`
}

func deriveKeys(c config.Config) ([]namespacedKey, error) {
	keys := make([]namespacedKey, 0, len(keyNamespaces))
	for _, ns := range keyNamespaces {
		key, err := cachekey.Derive(c, ns)
		if err != nil {
			return nil, err
		}
		keys = append(keys, namespacedKey{Namespace: ns, Key: key})
	}
	return keys, nil
}

func renderKeys(keys []namespacedKey) string {
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(ui.Muted.Render(fmt.Sprintf("%-10s", k.Namespace)))
		b.WriteString(" ")
		b.WriteString(ui.Primary.Render(k.Key))
		b.WriteString("\n")
	}
	return b.String()
}

func init() {
	keyCmd.Flags().BoolVar(&keyJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(keyCmd)
}
