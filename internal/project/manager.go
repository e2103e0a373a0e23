package project

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/lovekit-dev/lovekit/internal/branding"
	"github.com/lovekit-dev/lovekit/internal/catalog"
	"github.com/lovekit-dev/lovekit/internal/config"
	"github.com/lovekit-dev/lovekit/internal/errs"
	"github.com/lovekit-dev/lovekit/internal/template"
	"github.com/lovekit-dev/lovekit/internal/workspace"
)

// FileManager shows a directory in the desktop file manager.
type FileManager interface {
	Reveal(ctx context.Context, path string) error
}

// WorkspaceOpener opens a directory as a workspace in an editor.
type WorkspaceOpener interface {
	Open(ctx context.Context, path string) error
}

// Manager runs project lifecycle actions against the configured workspace.
type Manager struct {
	cfg          config.Provider
	materializer *template.Materializer
	bundled      fs.FS
	files        FileManager
	opener       WorkspaceOpener
	log          *zap.Logger
	locks        *pathLocks
}

// Option configures a Manager.
type Option func(*Manager)

// WithFileManager sets the integration used by Reveal.
func WithFileManager(f FileManager) Option {
	return func(m *Manager) { m.files = f }
}

// WithWorkspaceOpener sets the integration used by Open.
func WithWorkspaceOpener(o WorkspaceOpener) Option {
	return func(m *Manager) { m.opener = o }
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithBundledTemplates replaces the templates shipped with the binary.
// Passing nil disables seeding.
func WithBundledTemplates(fsys fs.FS) Option {
	return func(m *Manager) { m.bundled = fsys }
}

// NewManager returns a Manager reading settings from cfg on every call.
func NewManager(cfg config.Provider, opts ...Option) *Manager {
	m := &Manager{
		cfg:     cfg,
		bundled: template.Bundled(),
		locks:   newPathLocks(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	m.materializer = template.NewMaterializer(m.bundled, m.log)
	return m
}

// Layout resolves the workspace layout from the current configuration. It
// does not touch the filesystem.
func (m *Manager) Layout() (workspace.Layout, error) {
	raw, ok := m.cfg.Get(config.KeyWorkspaceRoot)
	if !ok {
		return workspace.Layout{}, errs.New(errs.ErrConfig, "resolve workspace", "",
			fmt.Errorf("%s is not set, run '%s init' first", config.KeyWorkspaceRoot, branding.CLIName()))
	}
	root, err := workspace.Expand(raw)
	if err != nil {
		return workspace.Layout{}, err
	}
	return workspace.Resolve(root), nil
}

// Init creates the workspace layout and seeds the default template,
// reporting progress to w.
func (m *Manager) Init(ctx context.Context, w io.Writer) (workspace.Layout, error) {
	if err := ctx.Err(); err != nil {
		return workspace.Layout{}, err
	}
	layout, err := m.Layout()
	if err != nil {
		return workspace.Layout{}, err
	}
	if _, err := workspace.EnsureReport(w, layout.Root); err != nil {
		return workspace.Layout{}, err
	}

	target := layout.TemplatePath(template.DefaultName)
	if m.bundled == nil {
		return layout, nil
	}
	if _, err := os.Stat(target); err == nil {
		fmt.Fprintf(w, "  [SKIP] %s already exists\n", target)
		return layout, nil
	}
	if err := m.materializer.Seed(layout.TemplatesDir, template.DefaultName); err != nil {
		return workspace.Layout{}, err
	}
	fmt.Fprintf(w, "  [ OK ] Seeded %s\n", target)
	return layout, nil
}

// Create scaffolds a new project called name from templateName ("" means
// the configured template) and returns its record.
func (m *Manager) Create(ctx context.Context, name, templateName string) (catalog.Record, error) {
	const op = "create"
	if err := ctx.Err(); err != nil {
		return catalog.Record{}, err
	}
	if err := workspace.ValidateName(op, name); err != nil {
		return catalog.Record{}, err
	}
	if templateName == "" {
		templateName = m.templateName()
	}

	layout, err := m.Layout()
	if err != nil {
		return catalog.Record{}, err
	}
	if _, err := workspace.Ensure(layout.Root); err != nil {
		return catalog.Record{}, err
	}

	dest := layout.ProjectPath(name)
	unlock := m.locks.lock(dest)
	defer unlock()

	log := m.log.With(zap.String("project", name), zap.String("template", templateName))
	if err := m.materializer.Materialize(layout.TemplatesDir, templateName, dest, name); err != nil {
		log.Debug("create failed", zap.Error(err))
		return catalog.Record{}, err
	}

	info, err := os.Stat(dest)
	if err != nil {
		return catalog.Record{}, errs.New(errs.ErrFilesystem, op, dest, err)
	}
	log.Info("project created", zap.String("path", dest))
	return catalog.Record{Name: name, Path: dest, ModTime: info.ModTime()}, nil
}

// List returns the workspace's projects, newest first. It does not create
// the workspace; a missing one lists as empty.
func (m *Manager) List(ctx context.Context) ([]catalog.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	layout, err := m.Layout()
	if err != nil {
		return nil, err
	}
	return catalog.List(layout.ProjectsDir)
}

// Templates lists the templates in the workspace.
func (m *Manager) Templates(ctx context.Context) ([]template.Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	layout, err := m.Layout()
	if err != nil {
		return nil, err
	}
	infos, err := template.List(layout.TemplatesDir)
	if err != nil {
		return nil, errs.New(errs.ErrFilesystem, "list templates", layout.TemplatesDir, err)
	}
	return infos, nil
}

// BundledDescriptor returns the descriptor of a template shipped with the
// binary, or nil.
func (m *Manager) BundledDescriptor(name string) *template.Descriptor {
	return m.materializer.BundledDescriptor(name)
}

// ProjectPath returns the path a project called name has in the workspace.
func (m *Manager) ProjectPath(name string) (string, error) {
	if err := workspace.ValidateName("resolve project", name); err != nil {
		return "", err
	}
	layout, err := m.Layout()
	if err != nil {
		return "", err
	}
	return layout.ProjectPath(name), nil
}

// Project returns the record of the existing project at path.
func (m *Manager) Project(path string) (catalog.Record, error) {
	target, err := m.validateProject("inspect", path)
	if err != nil {
		return catalog.Record{}, err
	}
	info, err := os.Stat(target)
	if err != nil {
		return catalog.Record{}, errs.New(errs.ErrFilesystem, "inspect", target, err)
	}
	return catalog.Record{Name: filepath.Base(target), Path: target, ModTime: info.ModTime()}, nil
}

// ConfirmDelete records the user's explicit agreement to delete path.
func (m *Manager) ConfirmDelete(path string) Confirmation {
	return Confirmation{path: normalize(path)}
}

// Delete recursively removes the project at path. c must come from
// ConfirmDelete for the same path.
func (m *Manager) Delete(ctx context.Context, path string, c Confirmation) error {
	const op = "delete"
	if err := ctx.Err(); err != nil {
		return err
	}

	target, err := m.validateProject(op, path)
	if err != nil {
		return err
	}
	if !c.covers(target) {
		return errs.New(errs.ErrConfirmationRequired, op, target, nil)
	}

	unlock := m.locks.lock(target)
	defer unlock()

	// Another call may have removed it while we waited.
	if _, err := os.Lstat(target); errors.Is(err, os.ErrNotExist) {
		return errs.New(errs.ErrNotFound, op, target, nil)
	}
	if err := os.RemoveAll(target); err != nil {
		return errs.New(errs.ErrFilesystem, op, target, err)
	}
	m.log.Info("project deleted", zap.String("path", target))
	return nil
}

// Reveal shows the project at path in the file manager.
func (m *Manager) Reveal(ctx context.Context, path string) error {
	const op = "reveal"
	target, err := m.validateProject(op, path)
	if err != nil {
		return err
	}
	if m.files == nil {
		return errs.New(errs.ErrIntegration, op, target, errors.New("no file manager configured"))
	}
	if err := m.files.Reveal(ctx, target); err != nil {
		return errs.New(errs.ErrIntegration, op, target, err)
	}
	return nil
}

// Open opens the project at path as a workspace.
func (m *Manager) Open(ctx context.Context, path string) error {
	const op = "open"
	target, err := m.validateProject(op, path)
	if err != nil {
		return err
	}
	if m.opener == nil {
		return errs.New(errs.ErrIntegration, op, target, errors.New("no workspace opener configured"))
	}
	if err := m.opener.Open(ctx, target); err != nil {
		return errs.New(errs.ErrIntegration, op, target, err)
	}
	return nil
}

// validateProject checks that path names an existing project directory
// directly under the workspace's projects/ and returns its cleaned form.
func (m *Manager) validateProject(op, path string) (string, error) {
	if path == "" {
		return "", errs.New(errs.ErrNotFound, op, "", errors.New("no project path given"))
	}
	target := normalize(path)

	info, err := os.Lstat(target)
	if errors.Is(err, os.ErrNotExist) {
		return "", errs.New(errs.ErrNotFound, op, target, nil)
	}
	if err != nil {
		return "", errs.New(errs.ErrFilesystem, op, target, err)
	}
	if !info.IsDir() {
		return "", errs.New(errs.ErrNotADirectory, op, target, nil)
	}

	layout, err := m.Layout()
	if err != nil {
		return "", err
	}
	if filepath.Dir(target) != filepath.Clean(layout.ProjectsDir) || workspace.IsStaging(filepath.Base(target)) {
		return "", errs.New(errs.ErrOutsideWorkspace, op, target, fmt.Errorf("projects live in %s", layout.ProjectsDir))
	}
	return target, nil
}

func (m *Manager) templateName() string {
	if name, ok := m.cfg.Get(config.KeyTemplateName); ok {
		return name
	}
	return template.DefaultName
}

// normalize makes path absolute and clean. It falls back to Clean when the
// working directory is unavailable.
func normalize(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
