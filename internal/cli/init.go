package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lovekit-dev/lovekit/internal/branding"
	"github.com/lovekit-dev/lovekit/internal/config"
	"github.com/lovekit-dev/lovekit/internal/workspace"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Set up the workspace folder",
	Long: `Set up the workspace folder and seed the default template.

Without an argument the configured workspace is used, or ` + branding.DefaultWorkspace() + `
when none is configured yet. Running init again is safe: existing folders and
templates are left alone.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	raw := branding.DefaultWorkspace()
	if current, ok := settings.Get(config.KeyWorkspaceRoot); ok {
		raw = current
	}
	if len(args) == 1 {
		var err error
		if raw, err = workspaceArg(args[0]); err != nil {
			return err
		}
	}

	// Validate before persisting anything.
	if _, err := workspace.Expand(raw); err != nil {
		return err
	}
	if err := settings.Set(config.KeyWorkspaceRoot, raw); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, headingStyle.Render("Initializing workspace "+raw))
	layout, err := manager.Init(commandContext(cmd), out)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%s\n", okStyle.Render("Workspace ready."))
	fmt.Fprintf(out, "Create a project with '%s create <name>'. Projects live in %s\n", branding.CLIName(), layout.ProjectsDir)
	return nil
}

// workspaceArg keeps ~ paths as typed, so the config stays portable, and
// makes anything else absolute against the working directory.
func workspaceArg(arg string) (string, error) {
	if strings.HasPrefix(arg, "~") {
		return arg, nil
	}
	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", arg, err)
	}
	return abs, nil
}
