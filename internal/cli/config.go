package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lovekit-dev/lovekit/internal/config"
	"github.com/lovekit-dev/lovekit/internal/errs"
	"github.com/lovekit-dev/lovekit/internal/logging"
	"github.com/lovekit-dev/lovekit/internal/workspace"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: `Read and write settings stored at ~/.lovekit/config.yaml.

Keys: ` + strings.Join(config.Keys(), ", ") + `.
Environment variables such as LOVEKIT_WORKSPACEROOT override the file.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := validateSetting(key, value); err != nil {
			return err
		}
		if err := settings.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !config.IsKnown(args[0]) {
			return unknownKey(args[0])
		}
		value, _ := settings.Get(args[0])
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

// validateSetting rejects values that would only fail later, at use.
func validateSetting(key, value string) error {
	if !config.IsKnown(key) {
		return unknownKey(key)
	}
	switch {
	case strings.EqualFold(key, config.KeyWorkspaceRoot):
		_, err := workspace.Expand(value)
		return err
	case strings.EqualFold(key, config.KeyTemplateName):
		return workspace.ValidateName("config set", value)
	case strings.EqualFold(key, config.KeyLogLevel):
		if _, err := logging.ParseLevel(value); err != nil {
			return errs.New(errs.ErrConfig, "config set", "", err)
		}
	}
	return nil
}

func unknownKey(key string) error {
	return errs.New(errs.ErrConfig, "config", "",
		fmt.Errorf("unknown key %q (known: %s)", key, strings.Join(config.Keys(), ", ")))
}
