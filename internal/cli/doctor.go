package cli

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lovekit-dev/lovekit/internal/branding"
	"github.com/lovekit-dev/lovekit/internal/config"
	"github.com/lovekit-dev/lovekit/internal/template"
	"github.com/lovekit-dev/lovekit/internal/workspace"
)

var doctorFix bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Create missing folders and seed missing templates")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the workspace",
	Long:  `Check the workspace folders, the templates and their descriptors, and the editor setting.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		layout, err := manager.Layout()
		if err != nil {
			fmt.Fprintf(out, "  [FAIL] %v\n", err)
			return fmt.Errorf("workspace is not configured: run '%s init'", branding.CLIName())
		}

		problems := workspace.Check(out, layout.Root, doctorFix)
		problems += runTemplatesCheck(cmd, out, layout)
		runEditorCheck(out)

		if problems > 0 {
			return fmt.Errorf("doctor found %d problem(s)", problems)
		}
		fmt.Fprintf(out, "\n%s\n", okStyle.Render("Everything looks good."))
		return nil
	},
}

func runTemplatesCheck(cmd *cobra.Command, out io.Writer, layout workspace.Layout) int {
	fmt.Fprintln(out, "Templates check:")
	problems := 0

	defaultDir := layout.TemplatePath(template.DefaultName)
	if _, err := os.Stat(defaultDir); err != nil {
		fmt.Fprintf(out, "  [MISS] default template %s\n", defaultDir)
		if doctorFix {
			if _, err := manager.Init(commandContext(cmd), io.Discard); err != nil {
				fmt.Fprintf(out, "  [FAIL] Could not seed default template: %v\n", err)
				problems++
			} else {
				fmt.Fprintf(out, "  [FIX ] Seeded %s\n", defaultDir)
			}
		} else {
			fmt.Fprintln(out, "  [INFO] It is seeded automatically on the next create")
		}
	}

	infos, err := manager.Templates(commandContext(cmd))
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] %v\n", err)
		return problems + 1
	}

	for _, info := range infos {
		if len(info.Issues) > 0 {
			fmt.Fprintf(out, "  [FAIL] %s: %d descriptor issue(s):\n", info.Name, len(info.Issues))
			for _, issue := range info.Issues {
				fmt.Fprintf(out, "    - %s\n", issue)
			}
			problems++
			continue
		}
		if info.Descriptor == nil {
			fmt.Fprintf(out, "  [ OK ] %s (no descriptor)\n", info.Name)
			continue
		}
		fmt.Fprintf(out, "  [ OK ] %s %s\n", info.Name, orDash(info.Descriptor.Version))

		if info.Name == template.DefaultName {
			warnIfOutdated(out, info.Descriptor, manager.BundledDescriptor(template.DefaultName))
		}
	}
	return problems
}

// warnIfOutdated flags a workspace copy of a bundled template that is older
// than the one this binary ships. Workspace templates are never overwritten.
func warnIfOutdated(out io.Writer, have, bundled *template.Descriptor) {
	if bundled == nil || have.Version == "" || bundled.Version == "" {
		return
	}
	if template.CompareVersions(have.Version, bundled.Version) < 0 {
		fmt.Fprintf(out, "  [WARN] %s is %s, this release bundles %s\n", have.Name, have.Version, bundled.Version)
	}
}

func runEditorCheck(out io.Writer) {
	fmt.Fprintln(out, "Editor check:")
	editor, _ := settings.Get(config.KeyEditor)
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		fmt.Fprintln(out, "  [INFO] No editor set, open uses the system opener")
		return
	}
	path, err := exec.LookPath(fields[0])
	if err != nil {
		fmt.Fprintf(out, "  [WARN] %s not found on PATH\n", fields[0])
		return
	}
	fmt.Fprintf(out, "  [ OK ] %s found at %s\n", fields[0], path)
}
