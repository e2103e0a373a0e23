package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(revealCmd)
	rootCmd.AddCommand(openCmd)
}

var revealCmd = &cobra.Command{
	Use:   "reveal <name|path>",
	Short: "Show a project in the file manager",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := resolveTarget(manager, args[0])
		if err != nil {
			return err
		}
		return manager.Reveal(commandContext(cmd), target)
	},
}

var openCmd = &cobra.Command{
	Use:   "open <name|path>",
	Short: "Open a project in the editor",
	Long: `Open a project folder as a workspace in the configured editor.

The editor command comes from the "editor" setting (default "code"). Set it
with 'lovekit config set editor "subl -n"'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := resolveTarget(manager, args[0])
		if err != nil {
			return err
		}
		return manager.Open(commandContext(cmd), target)
	},
}
