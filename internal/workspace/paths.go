package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lovekit-dev/lovekit/internal/errs"
)

// Directory names under the workspace root.
const (
	ProjectsDir  = "projects"
	TemplatesDir = "templates"
)

// DirPerm is the permission used for directories created by lovekit.
const DirPerm os.FileMode = 0755

// userHomeDir is swapped in tests.
var userHomeDir = os.UserHomeDir

// Expand turns a configured workspace path into an absolute path. A leading
// "~" or "~/" is replaced with the current user's home directory; any other
// value is returned unchanged and must already be absolute.
func Expand(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", errs.New(errs.ErrConfig, "expand", "", errors.New("workspace path is empty"))
	}

	if raw == "~" || strings.HasPrefix(raw, "~/") || strings.HasPrefix(raw, `~\`) {
		home, err := userHomeDir()
		if err != nil || home == "" {
			if err == nil {
				err = errors.New("home directory is empty")
			}
			return "", errs.New(errs.ErrConfig, "expand", raw, fmt.Errorf("resolving home directory: %w", err))
		}
		return filepath.Join(home, raw[1:]), nil
	}

	if strings.HasPrefix(raw, "~") {
		return "", errs.New(errs.ErrConfig, "expand", raw, errors.New("~user expansion is not supported"))
	}

	if !filepath.IsAbs(raw) {
		return "", errs.New(errs.ErrConfig, "expand", raw, errors.New("workspace path must be absolute or start with ~"))
	}
	return raw, nil
}

// Layout holds the absolute paths of a workspace.
type Layout struct {
	Root         string
	ProjectsDir  string
	TemplatesDir string
}

// Resolve computes the layout for root without touching the filesystem.
func Resolve(root string) Layout {
	return Layout{
		Root:         root,
		ProjectsDir:  filepath.Join(root, ProjectsDir),
		TemplatesDir: filepath.Join(root, TemplatesDir),
	}
}

// ProjectPath returns the directory a project with the given name lives in.
func (l Layout) ProjectPath(name string) string {
	return filepath.Join(l.ProjectsDir, name)
}

// TemplatePath returns the directory of the named template.
func (l Layout) TemplatePath(name string) string {
	return filepath.Join(l.TemplatesDir, name)
}
