package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lovekit-dev/lovekit/internal/branding"
)

var (
	createTemplate string
	createOpen     bool
)

func init() {
	createCmd.Flags().StringVarP(&createTemplate, "template", "t", "", "Template to copy (default: the templateName setting)")
	createCmd.Flags().BoolVar(&createOpen, "open", false, "Open the new project in the editor")
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new project from a template",
	Long: `Create a new project folder in the workspace by copying a template.

The window title in the copied conf.lua is set to the project name.

Examples:
  ` + branding.CLIName() + ` create "Space Invaders"
  ` + branding.CLIName() + ` create jam-entry --template platformer --open`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	rec, err := manager.Create(commandContext(cmd), args[0], createTemplate)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", okStyle.Render("Created"), rec.Path)

	if createOpen {
		if err := manager.Open(commandContext(cmd), rec.Path); err != nil {
			return err
		}
	}
	return nil
}
