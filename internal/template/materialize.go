package template

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/lovekit-dev/lovekit/internal/errs"
	"github.com/lovekit-dev/lovekit/internal/platform"
	"github.com/lovekit-dev/lovekit/internal/workspace"
)

// DefaultName is the template used when none is configured. It is the only
// template that is seeded from the bundle.
const DefaultName = "default"

//go:embed all:bundled
var bundledFS embed.FS

// Bundled returns the templates shipped with the binary, one directory per
// template.
func Bundled() fs.FS {
	sub, err := fs.Sub(bundledFS, "bundled")
	if err != nil {
		panic(err) // embedded path is fixed at compile time
	}
	return sub
}

// Materializer copies templates into new project directories.
type Materializer struct {
	bundled fs.FS
	log     *zap.Logger
}

// NewMaterializer returns a Materializer that seeds missing default
// templates from bundled. A nil bundled disables seeding; a nil log
// discards diagnostics.
func NewMaterializer(bundled fs.FS, log *zap.Logger) *Materializer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Materializer{bundled: bundled, log: log.Named("template")}
}

// Materialize creates dest from templatesDir/templateName and sets the
// window title in dest's conf.lua to projectName.
//
// dest must not exist. The copy is staged in a sibling directory and renamed
// into place only after every step succeeded, so a failure never leaves a
// partial project at dest. The template source is only read.
func (m *Materializer) Materialize(templatesDir, templateName, dest, projectName string) error {
	const op = "materialize"

	if err := workspace.ValidateName(op, templateName); err != nil {
		return err
	}

	source, err := m.resolve(templatesDir, templateName)
	if err != nil {
		return err
	}

	if err := checkAbsent(op, dest); err != nil {
		return err
	}

	staging := filepath.Join(filepath.Dir(dest), workspace.StagingPrefix+uuid.NewString())
	log := m.log.With(zap.String("template", source), zap.String("dest", dest), zap.String("staging", staging))
	log.Debug("copying template")

	if err := m.build(source, staging, projectName); err != nil {
		return errs.New(errs.ErrFilesystem, op, dest, discard(staging, err))
	}

	// Re-check right before the rename: os.Rename replaces an empty
	// directory on some platforms.
	if err := checkAbsent(op, dest); err != nil {
		if rmErr := os.RemoveAll(staging); rmErr != nil {
			log.Warn("removing staging directory", zap.Error(rmErr))
		}
		return err
	}

	if err := os.Rename(staging, dest); err != nil {
		return errs.New(errs.ErrFilesystem, op, dest, discard(staging, fmt.Errorf("moving project into place: %w", err)))
	}

	log.Debug("project materialized")
	return nil
}

// build copies source into staging and applies the title substitution.
func (m *Materializer) build(source, staging, projectName string) error {
	if err := copyDir(source, staging, true); err != nil {
		return fmt.Errorf("copying template: %w", err)
	}

	confPath := filepath.Join(staging, ConfigFile)
	content, err := os.ReadFile(confPath)
	if errors.Is(err, os.ErrNotExist) {
		m.log.Debug("template has no config file", zap.String("file", ConfigFile))
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", ConfigFile, err)
	}

	updated, ok := SubstituteTitle(content, projectName)
	if !ok {
		m.log.Debug("no window title field, leaving config untouched", zap.String("file", confPath))
		return nil
	}
	return rewrite(confPath, updated)
}

// rewrite replaces the content of an existing file, keeping its mode even
// when the template shipped it read-only.
func rewrite(path string, content []byte) error {
	return platform.WithWritable(path, func(mode os.FileMode) error {
		if err := os.WriteFile(path, content, mode); err != nil {
			return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
		}
		return nil
	})
}

// resolve returns the template directory, seeding the default template from
// the bundle when it is missing.
func (m *Materializer) resolve(templatesDir, templateName string) (string, error) {
	const op = "materialize"
	source := filepath.Join(templatesDir, templateName)

	info, err := os.Stat(source)
	if errors.Is(err, os.ErrNotExist) && templateName == DefaultName && m.bundled != nil {
		if seedErr := m.Seed(templatesDir, templateName); seedErr != nil {
			return "", seedErr
		}
		info, err = os.Stat(source)
	}

	switch {
	case errors.Is(err, os.ErrNotExist):
		return "", errs.New(errs.ErrTemplateNotFound, op, templateName, nil)
	case err != nil:
		return "", errs.New(errs.ErrFilesystem, op, source, err)
	case !info.IsDir():
		return "", errs.New(errs.ErrTemplateNotFound, op, templateName, fmt.Errorf("%s is not a directory", source))
	}
	return source, nil
}

// Seed copies the bundled template name into templatesDir/name. It is a
// no-op when the target already exists and fails with ErrTemplateNotFound
// when the bundle has no such template.
func (m *Materializer) Seed(templatesDir, name string) error {
	const op = "seed"

	if err := workspace.ValidateName(op, name); err != nil {
		return err
	}
	if m.bundled == nil {
		return errs.New(errs.ErrTemplateNotFound, op, name, errors.New("no bundled templates"))
	}
	if _, err := fs.Stat(m.bundled, name); err != nil {
		return errs.New(errs.ErrTemplateNotFound, op, name, err)
	}

	target := filepath.Join(templatesDir, name)
	if _, err := os.Stat(target); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return errs.New(errs.ErrFilesystem, op, target, err)
	}

	staging := filepath.Join(templatesDir, workspace.StagingPrefix+uuid.NewString())
	m.log.Info("seeding bundled template", zap.String("template", name), zap.String("dest", target))

	if err := copyFS(m.bundled, name, staging); err != nil {
		return errs.New(errs.ErrFilesystem, op, target, discard(staging, err))
	}
	if err := os.Rename(staging, target); err != nil {
		// A concurrent seed of the same template won the rename.
		if info, statErr := os.Stat(target); statErr == nil && info.IsDir() {
			m.log.Debug("template seeded concurrently", zap.String("template", name))
			if rmErr := discard(staging, nil); rmErr != nil {
				return errs.New(errs.ErrFilesystem, op, staging, rmErr)
			}
			return nil
		}
		return errs.New(errs.ErrFilesystem, op, target, discard(staging, err))
	}
	return nil
}

// BundledDescriptor returns the descriptor of a bundled template, or nil if
// it has none.
func (m *Materializer) BundledDescriptor(name string) *Descriptor {
	if m.bundled == nil {
		return nil
	}
	data, err := fs.ReadFile(m.bundled, name+"/"+DescriptorFile)
	if err != nil {
		return nil
	}
	var d Descriptor
	if err := unmarshalDescriptor(data, &d); err != nil {
		return nil
	}
	return &d
}

func checkAbsent(op, dest string) error {
	_, err := os.Lstat(dest)
	if err == nil {
		return errs.New(errs.ErrProjectExists, op, dest, nil)
	}
	if !errors.Is(err, os.ErrNotExist) {
		return errs.New(errs.ErrFilesystem, op, dest, err)
	}
	return nil
}

// discard removes a staging directory after a failed step and folds any
// cleanup failure into err.
func discard(staging string, err error) error {
	return multierr.Append(err, os.RemoveAll(staging))
}
