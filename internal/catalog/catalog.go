package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/lovekit-dev/lovekit/internal/errs"
	"github.com/lovekit-dev/lovekit/internal/workspace"
)

// Record describes one project directory.
type Record struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	ModTime time.Time `json:"modified"`
}

// List returns the project directories directly under projectsDir, most
// recently modified first. Ties are broken by name so the order is stable
// for a given filesystem state. Files, symlinks and in-flight staging
// directories are skipped. A missing projectsDir yields an empty list.
func List(projectsDir string) ([]Record, error) {
	entries, err := os.ReadDir(projectsDir)
	if errors.Is(err, os.ErrNotExist) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, errs.New(errs.ErrFilesystem, "list", projectsDir, err)
	}

	records := make([]Record, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() || workspace.IsStaging(e.Name()) {
			continue
		}

		path := filepath.Join(projectsDir, e.Name())
		info, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			// Deleted between ReadDir and Stat.
			continue
		}
		if err != nil {
			return nil, errs.New(errs.ErrFilesystem, "list", path, fmt.Errorf("reading modification time: %w", err))
		}

		records = append(records, Record{
			Name:    e.Name(),
			Path:    path,
			ModTime: info.ModTime(),
		})
	}

	Sort(records)
	return records, nil
}

// Sort orders records newest first, then by name.
func Sort(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.ModTime.Equal(b.ModTime) {
			return a.ModTime.After(b.ModTime)
		}
		return a.Name < b.Name
	})
}

// Find returns the record named name, if present.
func Find(records []Record, name string) (Record, bool) {
	for _, r := range records {
		if r.Name == name {
			return r, true
		}
	}
	return Record{}, false
}
