package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:     "delete <name|path>",
	Aliases: []string{"rm"},
	Short:   "Delete a project and all of its files",
	Long: `Delete a project folder from the workspace. This cannot be undone.

You are asked to type "delete" or the project name to confirm, unless --yes
is given. Only folders directly inside the workspace's projects folder can be
deleted.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	target, err := resolveTarget(manager, args[0])
	if err != nil {
		return err
	}
	rec, err := manager.Project(target)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !deleteYes {
		ok, err := confirmDelete(cmd.InOrStdin(), out, rec.Name, rec.Path)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Delete cancelled.")
			return nil
		}
	}

	if err := manager.Delete(commandContext(cmd), rec.Path, manager.ConfirmDelete(rec.Path)); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s %s\n", okStyle.Render("Deleted"), rec.Path)
	return nil
}

// confirmDelete asks the user to type "delete" or the project name. Any
// other answer, including end of input, declines.
func confirmDelete(in io.Reader, out io.Writer, name, path string) (bool, error) {
	fmt.Fprintf(out, "%s %s will be permanently deleted.\n", warnStyle.Render("Warning:"), path)
	fmt.Fprintf(out, "Type %q or the project name to confirm: ", "delete")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	answer := strings.TrimSpace(line)
	return answer != "" && (answer == "delete" || answer == name), nil
}
