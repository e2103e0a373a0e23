package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lovekit-dev/lovekit/internal/template"
)

var templatesJSON bool

func init() {
	templatesCmd.Flags().BoolVar(&templatesJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(templatesCmd)
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available templates",
	Long: `List the templates in the workspace's templates folder.

A template is any folder there. An optional .lovekit-template.yaml inside it
describes the template; problems with that file are shown here and by
'lovekit doctor'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		infos, err := manager.Templates(commandContext(cmd))
		if err != nil {
			return err
		}
		if templatesJSON {
			return printTemplatesJSON(cmd.OutOrStdout(), infos)
		}
		if len(infos) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No templates yet. Run 'lovekit init' to add the default template.")
			return nil
		}
		return printTemplatesTable(cmd.OutOrStdout(), infos)
	},
}

type templateEntry struct {
	Name        string   `json:"name"`
	Path        string   `json:"path"`
	Version     string   `json:"version,omitempty"`
	LoveVersion string   `json:"love_version,omitempty"`
	Description string   `json:"description,omitempty"`
	Issues      []string `json:"issues,omitempty"`
}

func toEntry(info template.Info) templateEntry {
	e := templateEntry{Name: info.Name, Path: info.Path}
	if d := info.Descriptor; d != nil {
		e.Version = d.Version
		e.LoveVersion = d.LoveVersion
		e.Description = d.Description
	}
	for _, issue := range info.Issues {
		e.Issues = append(e.Issues, issue.String())
	}
	return e
}

func printTemplatesTable(out io.Writer, infos []template.Info) error {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tVERSION\tLÖVE\tDESCRIPTION")
	for _, info := range infos {
		e := toEntry(info)
		desc := e.Description
		if len(e.Issues) > 0 {
			desc = warnStyle.Render(fmt.Sprintf("%d descriptor issue(s)", len(e.Issues)))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Name, orDash(e.Version), orDash(e.LoveVersion), desc)
	}
	return w.Flush()
}

func printTemplatesJSON(out io.Writer, infos []template.Info) error {
	entries := make([]templateEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, toEntry(info))
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
