package workspace

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lovekit-dev/lovekit/internal/errs"
)

// Ensure creates root, root/projects and root/templates when missing.
// Existing directories are left alone, so repeated calls are harmless.
func Ensure(root string) (Layout, error) {
	return EnsureReport(io.Discard, root)
}

// EnsureReport is Ensure with a progress line per directory written to w.
func EnsureReport(w io.Writer, root string) (Layout, error) {
	if !filepath.IsAbs(root) {
		return Layout{}, errs.New(errs.ErrConfig, "ensure", root, errors.New("workspace root must be absolute"))
	}

	layout := Resolve(root)
	for _, dir := range []string{layout.Root, layout.ProjectsDir, layout.TemplatesDir} {
		if err := ensureDir(w, dir); err != nil {
			return Layout{}, err
		}
	}
	return layout, nil
}

// ensureDir creates a directory if it doesn't exist.
func ensureDir(w io.Writer, path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			fmt.Fprintf(w, "  [SKIP] %s already exists\n", path)
			return nil
		}
		return errs.New(errs.ErrFilesystem, "ensure", path, errors.New("exists but is not a directory"))
	}
	if !errors.Is(err, os.ErrNotExist) {
		return errs.New(errs.ErrFilesystem, "ensure", path, err)
	}

	if err := os.MkdirAll(path, DirPerm); err != nil {
		return errs.New(errs.ErrFilesystem, "ensure", path, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)
	return nil
}
