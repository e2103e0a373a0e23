package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/lovekit-dev/lovekit/internal/branding"
	"github.com/lovekit-dev/lovekit/internal/template"
)

var (
	versionShort bool
	versionJSON  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	rootCmd.AddCommand(versionCmd)
}

// buildInfo is what version reports. The bundled template version tells
// users whether 'doctor' will flag their workspace copy as outdated.
type buildInfo struct {
	Version         string `json:"version"`
	Commit          string `json:"commit"`
	Date            string `json:"date"`
	Platform        string `json:"platform"`
	DefaultTemplate string `json:"default_template,omitempty"`
}

func currentBuildInfo() buildInfo {
	info := buildInfo{
		Version:  buildVersion,
		Commit:   buildCommit,
		Date:     buildDate,
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}
	if d := template.NewMaterializer(template.Bundled(), nil).BundledDescriptor(template.DefaultName); d != nil {
		info.DefaultTemplate = d.Version
	}
	return info
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printVersion(cmd.OutOrStdout(), currentBuildInfo())
	},
}

func printVersion(out io.Writer, info buildInfo) error {
	switch {
	case versionShort:
		_, err := fmt.Fprintln(out, info.Version)
		return err
	case versionJSON:
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling version info: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	fmt.Fprintf(out, "%s %s (commit %s, built %s, %s)\n", branding.CLIName(), info.Version, info.Commit, info.Date, info.Platform)
	if info.DefaultTemplate != "" {
		fmt.Fprintf(out, "bundled default template %s\n", info.DefaultTemplate)
	}
	return nil
}
