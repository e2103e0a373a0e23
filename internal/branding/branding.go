// Package branding provides compile-time identity values for the CLI.
//
// branding.yaml is embedded into the binary; forks rename the tool by
// editing that file only.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName          string `yaml:"cli_name"`
	DisplayName      string `yaml:"display_name"`
	Description      string `yaml:"description"`
	HomeDir          string `yaml:"home_dir"`
	EnvPrefix        string `yaml:"env_prefix"`
	GoModule         string `yaml:"go_module"`
	DefaultWorkspace string `yaml:"default_workspace"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:          "lovekit",
			DisplayName:      "LoveKit",
			Description:      "Scaffolding manager for LÖVE game projects",
			HomeDir:          ".lovekit",
			EnvPrefix:        "LOVEKIT",
			GoModule:         "github.com/lovekit-dev/lovekit",
			DefaultWorkspace: "~/lovekit",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "lovekit").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".lovekit").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "LOVEKIT").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path. Not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// DefaultWorkspace returns the workspace root suggested by `init` when no
// path is given.
func DefaultWorkspace() string { load(); return defaults.DefaultWorkspace }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("config") → "LOVEKIT_CONFIG".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
