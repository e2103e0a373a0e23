package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lovekit-dev/lovekit/internal/workspace"
)

type projectPather interface {
	ProjectPath(name string) (string, error)
}

// resolveTarget turns a <name|path> argument into a project path. Bare names
// are looked up in the workspace; anything that looks like a path is used
// as one.
func resolveTarget(p projectPather, arg string) (string, error) {
	switch {
	case strings.HasPrefix(arg, "~"):
		return workspace.Expand(arg)
	case arg == "." || arg == ".." || filepath.IsAbs(arg) || strings.ContainsAny(arg, `/\`):
		abs, err := filepath.Abs(arg)
		if err != nil {
			return "", fmt.Errorf("resolving %s: %w", arg, err)
		}
		return abs, nil
	default:
		return p.ProjectPath(arg)
	}
}
