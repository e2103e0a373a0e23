package platform

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Runner starts an external command and waits for it to exit.
type Runner func(ctx context.Context, name string, args ...string) error

// Launcher opens directories in the desktop file manager or an editor.
type Launcher struct {
	GOOS   string
	Editor string // command line used by Open, e.g. "code" or "subl -n"
	Run    Runner
}

// NewLauncher returns a Launcher for the current OS. editor may be empty, in
// which case Open falls back to the system opener.
func NewLauncher(editor string) *Launcher {
	return &Launcher{GOOS: runtime.GOOS, Editor: editor, Run: execRun}
}

// Reveal shows path in the system file manager. On macOS and Windows the
// directory is selected inside its parent; on Linux the parent is opened.
func (l *Launcher) Reveal(ctx context.Context, path string) error {
	var err error
	switch l.GOOS {
	case "darwin":
		err = l.Run(ctx, "open", "-R", path)
	case "windows":
		err = l.Run(ctx, "explorer", "/select,"+path)
		// explorer.exe exits 1 even when it succeeds.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			err = nil
		}
	default:
		err = l.Run(ctx, "xdg-open", filepath.Dir(path))
	}
	if err != nil {
		return fmt.Errorf("revealing %s: %w", path, err)
	}
	return nil
}

// Open opens path as a workspace in the configured editor, or with the
// system opener when no editor is set.
func (l *Launcher) Open(ctx context.Context, path string) error {
	fields := strings.Fields(l.Editor)
	if len(fields) == 0 {
		return l.openWithSystem(ctx, path)
	}

	args := append(fields[1:], path)
	if err := l.Run(ctx, fields[0], args...); err != nil {
		return fmt.Errorf("opening %s with %s: %w", path, fields[0], err)
	}
	return nil
}

func (l *Launcher) openWithSystem(ctx context.Context, path string) error {
	var err error
	switch l.GOOS {
	case "darwin":
		err = l.Run(ctx, "open", path)
	case "windows":
		err = l.Run(ctx, "explorer", path)
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			err = nil
		}
	default:
		err = l.Run(ctx, "xdg-open", path)
	}
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	return nil
}

// execRun runs name with the process's standard streams so terminal
// editors keep working.
func execRun(ctx context.Context, name string, args ...string) error {
	bin, err := exec.LookPath(name)
	if err != nil {
		return fmt.Errorf("%s not found in PATH: %w", name, err)
	}
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
