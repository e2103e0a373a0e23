package template

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/lovekit-dev/lovekit/internal/platform"
)

// excludedNames are files/directories never copied out of a template.
var excludedNames = map[string]bool{
	".git":         true,
	".DS_Store":    true,
	DescriptorFile: true,
}

// Modes used for files seeded from the embedded bundle, whose own modes are
// read-only.
const (
	seedDirPerm  os.FileMode = 0755
	seedFilePerm os.FileMode = 0644
)

// copyDir recursively copies src to dst, excluding entries in excludedNames.
// dst must not exist yet.
func copyDir(src, dst string, exclude bool) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	// Owner write is needed while filling the directory.
	if err := os.Mkdir(dst, srcInfo.Mode().Perm()|0700); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if exclude && excludedNames[entry.Name()] {
			continue
		}

		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath, exclude); err != nil {
				return err
			}
		} else if entry.Type().IsRegular() {
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
		// Skip symlinks and other special files during copy.
	}

	// Mkdir is subject to umask; restore the template's mode.
	return platform.Chmod(dst, srcInfo.Mode().Perm())
}

// copyFile copies a single file from src to dst, preserving permissions.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := os.WriteFile(dst, data, srcInfo.Mode().Perm()); err != nil {
		return err
	}
	return platform.Chmod(dst, srcInfo.Mode().Perm())
}

// copyFS writes the tree rooted at root in fsys to dst on disk. It is used
// to seed bundled templates, so the descriptor is kept.
func copyFS(fsys fs.FS, root, dst string) error {
	return fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel := strings.TrimPrefix(strings.TrimPrefix(path, root), "/")
		target := filepath.Join(dst, filepath.FromSlash(rel))

		if d.IsDir() {
			if err := os.MkdirAll(target, seedDirPerm); err != nil {
				return fmt.Errorf("creating %s: %w", target, err)
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("reading bundled %s: %w", path, err)
		}
		if err := os.WriteFile(target, data, seedFilePerm); err != nil {
			return fmt.Errorf("writing %s: %w", target, err)
		}
		return nil
	})
}
