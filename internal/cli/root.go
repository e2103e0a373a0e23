package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lovekit-dev/lovekit/internal/branding"
	"github.com/lovekit-dev/lovekit/internal/config"
	"github.com/lovekit-dev/lovekit/internal/logging"
	"github.com/lovekit-dev/lovekit/internal/platform"
	"github.com/lovekit-dev/lovekit/internal/project"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var verbose bool

// Set up by setup before any command runs.
var (
	settings *config.Store
	logger   = zap.NewNop()
	manager  *project.Manager
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds LÖVE (Love2D) game projects from templates and keeps
them together in one workspace folder: ~/lovekit/projects and ~/lovekit/templates
by default.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostics to stderr")
}

// setup loads settings and wires the project manager. version needs
// neither, so a broken config file cannot hide the build info.
func setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	store, loadErr := config.Open("")
	if loadErr != nil {
		if !underConfig(cmd) {
			return loadErr
		}
		// config set must still work to repair the file.
		store = config.OpenUnread("")
	}

	level, _ := store.Get(config.KeyLogLevel)
	if verbose {
		level = "debug"
	}
	log, err := logging.New(level, cmd.ErrOrStderr())
	if err != nil {
		log, err = logging.New(logging.DefaultLevel, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		log.Warn("ignoring invalid log level, using "+logging.DefaultLevel,
			zap.String("key", config.KeyLogLevel), zap.String("value", level))
	}
	if loadErr != nil {
		log.Warn("config file is unreadable, settings fall back to defaults until it is rewritten",
			zap.String("config", store.Path()), zap.Error(loadErr))
	}

	editor, _ := store.Get(config.KeyEditor)
	launcher := platform.NewLauncher(editor)

	settings = store
	logger = log
	manager = project.NewManager(store,
		project.WithLogger(log),
		project.WithFileManager(launcher),
		project.WithWorkspaceOpener(launcher),
	)
	log.Debug("loaded settings", zap.String("config", store.Path()))
	return nil
}

// underConfig reports whether cmd is the config command or one of its
// subcommands.
func underConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c == configCmd {
			return true
		}
	}
	return false
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}

// commandContext returns the command's context, or Background when the
// command was run without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
