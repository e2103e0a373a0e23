package workspace

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lovekit-dev/lovekit/internal/errs"
)

func TestEnsure_CreatesLayout(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ws")

	layout, err := Ensure(root)
	if err != nil {
		t.Fatalf("Ensure() error: %v", err)
	}
	for _, dir := range []string{layout.Root, layout.ProjectsDir, layout.TemplatesDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("expected directory %s", dir)
		}
	}
}

func TestEnsure_Idempotent(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ws")
	if _, err := Ensure(root); err != nil {
		t.Fatal(err)
	}
	marker := filepath.Join(root, "projects", "Keep")
	if err := os.Mkdir(marker, 0755); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if _, err := EnsureReport(&buf, root); err != nil {
		t.Fatalf("second Ensure() error: %v", err)
	}
	if strings.Contains(buf.String(), "Created") {
		t.Errorf("second run created directories:\n%s", buf.String())
	}
	if strings.Count(buf.String(), "[SKIP]") != 3 {
		t.Errorf("expected three skipped directories:\n%s", buf.String())
	}
	if _, err := os.Stat(marker); err != nil {
		t.Errorf("existing project removed: %v", err)
	}
}

func TestEnsure_FileInTheWay(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "projects"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Ensure(root)
	if !errors.Is(err, errs.ErrFilesystem) {
		t.Fatalf("error = %v, want ErrFilesystem", err)
	}
}

func TestEnsure_RelativeRoot(t *testing.T) {
	_, err := Ensure("relative")
	if !errors.Is(err, errs.ErrConfig) {
		t.Fatalf("error = %v, want ErrConfig", err)
	}
}

func TestCheck(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ws")

	var buf bytes.Buffer
	if n := Check(&buf, root, false); n != 3 {
		t.Errorf("Check() problems = %d, want 3\n%s", n, buf.String())
	}

	buf.Reset()
	if n := Check(&buf, root, true); n != 0 {
		t.Errorf("Check(fix) problems = %d, want 0\n%s", n, buf.String())
	}
	if !strings.Contains(buf.String(), "[FIX ]") {
		t.Errorf("expected fix lines:\n%s", buf.String())
	}

	buf.Reset()
	if n := Check(&buf, root, false); n != 0 {
		t.Errorf("Check() after fix problems = %d, want 0", n)
	}
}
