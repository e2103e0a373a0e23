package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/lovekit-dev/lovekit/internal/branding"
	"github.com/lovekit-dev/lovekit/internal/catalog"
	"github.com/lovekit-dev/lovekit/internal/errs"
)

var (
	listJSON  bool
	listWatch bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects, newest first",
	Long: `List the projects in the workspace, most recently modified first.

With --watch the list is printed again whenever the projects folder changes,
until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVarP(&listWatch, "watch", "w", false, "Re-list when projects change")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	if listWatch {
		return watchList(cmd)
	}
	return printList(cmd)
}

func printList(cmd *cobra.Command) error {
	records, err := manager.List(commandContext(cmd))
	if err != nil {
		return err
	}

	if listJSON {
		return printListJSON(cmd.OutOrStdout(), records)
	}
	if len(records) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No projects yet. Create one with '%s create <name>'.\n", branding.CLIName())
		return nil
	}
	return printListTable(cmd.OutOrStdout(), records, time.Now())
}

// printListTable aligns plain text first; only the finished header line and
// the trailing path column are styled, so escape codes never reach the
// column width computation.
func printListTable(out io.Writer, records []catalog.Record, now time.Time) error {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tMODIFIED\tPATH")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Name, humanize.RelTime(r.ModTime, now, "ago", "from now"), dimStyle.Render(r.Path))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	header, rows, _ := strings.Cut(buf.String(), "\n")
	if _, err := fmt.Fprintln(out, headingStyle.Render(header)); err != nil {
		return err
	}
	_, err := io.WriteString(out, rows)
	return err
}

func printListJSON(out io.Writer, records []catalog.Record) error {
	if records == nil {
		records = []catalog.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

func watchList(cmd *cobra.Command) error {
	layout, err := manager.Layout()
	if err != nil {
		return err
	}
	if _, err := os.Stat(layout.ProjectsDir); err != nil {
		return errs.New(errs.ErrNotFound, "watch", layout.ProjectsDir,
			fmt.Errorf("run '%s init' first", branding.CLIName()))
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := catalog.NewWatcher(layout.ProjectsDir, catalog.DefaultDebounce, logger)
	if err != nil {
		return err
	}
	w.Start(ctx)
	defer w.Stop()

	if err := printList(cmd); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-w.Changes():
			if !ok {
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout())
			if err := printList(cmd); err != nil {
				return err
			}
		}
	}
}
