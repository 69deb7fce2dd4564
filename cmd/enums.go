package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/graphql-go/graphql"
	"github.com/spf13/cobra"

	"github.com/hmans/sanityimage/internal/imageext"
	"github.com/hmans/sanityimage/internal/ui"
)

var enumsPlain bool

var enumsCmd = &cobra.Command{
	Use:   "enums",
	Short: "List the enums and arguments of the gatsbyImageData field",
	Long: `Lists every enum the image field extension registers, with the runtime
value behind each name and the argument default marked.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Static data; no config needed
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := renderEnums(!enumsPlain)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

// enumArgument finds the field argument typed with the named enum.
func enumArgument(args graphql.FieldConfigArgument, enumName string) (string, *graphql.ArgumentConfig) {
	for name, arg := range args {
		if t, ok := arg.Type.(*graphql.Enum); ok && t.Name() == enumName {
			return name, arg
		}
	}
	return "", nil
}

// renderEnums lists each enum with its values. Argument descriptions are
// rendered as markdown when markdown is true.
func renderEnums(markdown bool) (string, error) {
	var renderer *glamour.TermRenderer
	if markdown {
		var err error
		renderer, err = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err != nil {
			return "", fmt.Errorf("failed to create renderer: %w", err)
		}
	}

	args := imageext.Arguments()
	var b strings.Builder

	for i, def := range imageext.Enums {
		if i > 0 {
			b.WriteString("\n")
		}

		argName, arg := enumArgument(args, def.Name)
		var defaultValue string
		if arg != nil {
			defaultValue, _ = arg.DefaultValue.(string)
		}

		header := ui.TypeName.Render(def.Name)
		if argName != "" {
			header += " " + ui.Muted.Render("("+imageext.FieldName+"."+argName+")")
		}
		defaultName, hasDefault := def.NameOf(defaultValue)
		hasDefault = hasDefault && arg != nil
		if hasDefault {
			header += " " + ui.Muted.Render("= "+defaultName)
		}
		b.WriteString(header)
		b.WriteString("\n")
		b.WriteString(ui.Rule(50))
		b.WriteString("\n")

		width := 0
		for _, v := range def.Values {
			width = max(width, lipgloss.Width(v.Name))
		}
		for _, v := range def.Values {
			b.WriteString("  ")
			b.WriteString(ui.RenderEnumValue(v.Name, v.Value, width, hasDefault && v.Name == defaultName))
			b.WriteString("\n")
		}

		if arg == nil || arg.Description == "" {
			continue
		}
		if renderer == nil {
			b.WriteString("\n")
			b.WriteString(arg.Description)
			b.WriteString("\n")
			continue
		}
		rendered, err := renderer.Render(descriptionMarkdown(arg.Description))
		if err != nil {
			return "", fmt.Errorf("failed to render markdown: %w", err)
		}
		b.WriteString(rendered)
	}

	return b.String(), nil
}

// descriptionMarkdown turns "NAME: text" lines into a markdown list.
func descriptionMarkdown(desc string) string {
	lines := strings.Split(desc, "\n")
	for i, line := range lines {
		if name, text, ok := strings.Cut(line, ": "); ok && name == strings.ToUpper(name) && !strings.Contains(name, " ") {
			lines[i] = "- **" + name + "**: " + text
		}
	}
	return strings.Join(lines, "\n")
}

func init() {
	enumsCmd.Flags().BoolVar(&enumsPlain, "plain", false, "Print descriptions without markdown rendering")
	rootCmd.AddCommand(enumsCmd)
}
