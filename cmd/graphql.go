package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/hmans/sanityimage/internal/graph"
)

var (
	queryJSON       bool
	queryVariables  string
	queryOperation  string
	querySchemaOnly bool
)

var graphqlCmd = &cobra.Command{
	Use:     "graphql <query>",
	Aliases: []string{"query"},
	Short:   "Execute a GraphQL query",
	Long: `Execute a GraphQL query against the image asset schema.

The argument should be a valid GraphQL query string.

Examples:
  # List all assets
  sanityimage graphql '{ allSanityImageAsset { _id url width height } }'

  # Responsive image data for an asset
  sanityimage graphql '{ sanityImageAsset(id: "image-abc") { gatsbyImageData(layout: FIXED, width: 400) } }'

  # Image data for a bare asset reference
  sanityimage graphql '{ imageData(ref: "image-Tb9Ew8CXIwaY6R1kjMvI0uRR-2000x3000-jpg", fit: CROP) }'

  # Use variables
  sanityimage graphql -v '{"id": "image-abc"}' 'query Get($id: String!) { sanityImageAsset(id: $id) { url } }'

  # Read from stdin
  cat query.graphql | sanityimage graphql

  # Print the schema
  sanityimage graphql --schema`,
	Args: func(cmd *cobra.Command, args []string) error {
		if querySchemaOnly {
			return nil
		}
		// Allow 0 args if stdin has data, or exactly 1 arg
		if len(args) > 1 {
			return fmt.Errorf("accepts at most 1 argument (the GraphQL query)")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver, err := newResolver(cfg, rootDir, log)
		if err != nil {
			return err
		}

		schema, err := resolver.Schema()
		if err != nil {
			return fmt.Errorf("building schema: %w", err)
		}

		if querySchemaOnly {
			fmt.Fprint(cmd.OutOrStdout(), graph.SDL(schema))
			return nil
		}

		var query string
		if len(args) == 1 {
			query = args[0]
		} else {
			stdinQuery, err := readFromStdin()
			if err != nil {
				return err
			}
			if stdinQuery == "" {
				return fmt.Errorf("no query provided (pass as argument or pipe to stdin)")
			}
			query = stdinQuery
		}

		var variables map[string]any
		if queryVariables != "" {
			if err := json.Unmarshal([]byte(queryVariables), &variables); err != nil {
				return fmt.Errorf("invalid variables JSON: %w", err)
			}
		}

		result, err := graph.Execute(context.Background(), schema, query, variables, queryOperation)
		if err != nil {
			return err
		}

		if queryJSON {
			fmt.Fprintln(cmd.OutOrStdout(), string(result))
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), string(prettyJSON(result)))
		}

		return nil
	},
}

// readFromStdin reads the query from stdin if data is available.
func readFromStdin() (string, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return "", fmt.Errorf("checking stdin: %w", err)
	}

	// If stdin is a terminal (no pipe), return empty
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return "", nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}

	return strings.TrimSpace(string(data)), nil
}

// prettyJSON indents and colors JSON output.
func prettyJSON(data []byte) []byte {
	return pretty.Color(pretty.Pretty(data), nil)
}

func init() {
	graphqlCmd.Flags().BoolVar(&queryJSON, "json", false, "Output raw JSON (no formatting)")
	graphqlCmd.Flags().StringVarP(&queryVariables, "variables", "v", "", "Query variables as JSON string")
	graphqlCmd.Flags().StringVarP(&queryOperation, "operation", "o", "", "Operation name (for multi-operation documents)")
	graphqlCmd.Flags().BoolVar(&querySchemaOnly, "schema", false, "Print the GraphQL schema and exit")
	rootCmd.AddCommand(graphqlCmd)
}
