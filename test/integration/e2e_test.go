//go:build integration

package integration_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lovekit-dev/lovekit/internal/config"
	"github.com/lovekit-dev/lovekit/internal/errs"
)

// TestFullFlowInitCreateListDelete tests the complete flow:
// configure workspace -> init -> create -> list -> delete -> list.
func TestFullFlowInitCreateListDelete(t *testing.T) {
	env := setupTestEnv(t)
	m, store := newManager(t, env)
	ctx := context.Background()

	// Step 1: Configure the workspace and initialize it.
	if err := store.Set(config.KeyWorkspaceRoot, "~/lovekit"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	assertFileContains(t, env.ConfigPath, "~/lovekit")

	layout, err := m.Init(ctx, io.Discard)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if layout.Root != env.Workspace {
		t.Fatalf("workspace root = %s, want %s", layout.Root, env.Workspace)
	}
	assertDirExists(t, filepath.Join(env.Workspace, "projects"))
	assertFileExists(t, filepath.Join(env.Workspace, "templates", "default", "conf.lua"))

	// Step 2: Create two projects.
	first, err := m.Create(ctx, "Asteroids", "")
	if err != nil {
		t.Fatalf("Create(Asteroids): %v", err)
	}
	second, err := m.Create(ctx, "Breakout", "")
	if err != nil {
		t.Fatalf("Create(Breakout): %v", err)
	}
	assertFileContains(t, filepath.Join(first.Path, "conf.lua"), `t.window.title = "Asteroids"`)
	assertFileNotExists(t, filepath.Join(first.Path, ".lovekit-template.yaml"))

	// Step 3: Make Asteroids the newest and list.
	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(first.Path, later, later); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}
	records, err := m.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 || records[0].Name != "Asteroids" || records[1].Name != "Breakout" {
		t.Fatalf("List = %+v, want [Asteroids Breakout]", records)
	}

	// Step 4: Delete requires confirmation for the same path.
	err = m.Delete(ctx, second.Path, m.ConfirmDelete(first.Path))
	if !errors.Is(err, errs.ErrConfirmationRequired) {
		t.Fatalf("Delete with wrong confirmation: got %v", err)
	}
	assertDirExists(t, second.Path)

	if err := m.Delete(ctx, second.Path, m.ConfirmDelete(second.Path)); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	assertFileNotExists(t, second.Path)

	// Step 5: Only Asteroids remains.
	records, err = m.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 || records[0].Name != "Asteroids" {
		t.Fatalf("List after delete = %+v", records)
	}
}

// TestCustomTemplate verifies a user template with a descriptor, a bare
// title line and VCS metadata.
func TestCustomTemplate(t *testing.T) {
	env := setupTestEnv(t)
	m, store := newManager(t, env)
	ctx := context.Background()

	if err := store.Set(config.KeyWorkspaceRoot, env.Workspace); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Set(config.KeyTemplateName, "platformer"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	src := filepath.Join(env.Workspace, "templates", "platformer")
	conf := "function love.conf(t)\n    title = \"Platformer\"\nend\n"
	writeFile(t, filepath.Join(src, "conf.lua"), conf)
	writeFile(t, filepath.Join(src, "main.lua"), "function love.draw() end\n")
	writeFile(t, filepath.Join(src, "assets", "player.png"), "png")
	writeFile(t, filepath.Join(src, ".git", "HEAD"), "ref: refs/heads/main\n")
	writeFile(t, filepath.Join(src, ".lovekit-template.yaml"), "name: platformer\nversion: 0.2.0\nlove_version: \"11.4\"\n")

	infos, err := m.Templates(ctx)
	if err != nil {
		t.Fatalf("Templates: %v", err)
	}
	if len(infos) != 1 || infos[0].Descriptor == nil || infos[0].Descriptor.Version != "0.2.0" || len(infos[0].Issues) != 0 {
		t.Fatalf("Templates = %+v", infos)
	}

	rec, err := m.Create(ctx, `Jump "n" Run`, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	assertFileContains(t, filepath.Join(rec.Path, "conf.lua"), `title = "Jump \"n\" Run"`)
	assertFileExists(t, filepath.Join(rec.Path, "assets", "player.png"))
	assertFileNotExists(t, filepath.Join(rec.Path, ".git"))
	assertFileNotExists(t, filepath.Join(rec.Path, ".lovekit-template.yaml"))

	// The template itself is only read.
	assertFileContains(t, filepath.Join(src, "conf.lua"), `title = "Platformer"`)
	assertFileExists(t, filepath.Join(src, ".git", "HEAD"))
}

// TestEnvironmentOverridesConfigFile verifies LOVEKIT_WORKSPACEROOT wins
// over the file.
func TestEnvironmentOverridesConfigFile(t *testing.T) {
	env := setupTestEnv(t)
	m, store := newManager(t, env)

	if err := store.Set(config.KeyWorkspaceRoot, env.Workspace); err != nil {
		t.Fatalf("Set: %v", err)
	}
	other := filepath.Join(env.HomeDir, "elsewhere")
	t.Setenv("LOVEKIT_WORKSPACEROOT", other)

	p, err := m.ProjectPath("pong")
	if err != nil {
		t.Fatalf("ProjectPath: %v", err)
	}
	if want := filepath.Join(other, "projects", "pong"); p != want {
		t.Fatalf("ProjectPath = %s, want %s", p, want)
	}
}

// TestCreateFailsCleanlyOnExistingProject verifies an existing folder is
// never merged into.
func TestCreateFailsCleanlyOnExistingProject(t *testing.T) {
	env := setupTestEnv(t)
	m, store := newManager(t, env)
	ctx := context.Background()

	if err := store.Set(config.KeyWorkspaceRoot, env.Workspace); err != nil {
		t.Fatalf("Set: %v", err)
	}
	existing := filepath.Join(env.Workspace, "projects", "pong")
	writeFile(t, filepath.Join(existing, "notes.txt"), "mine")

	_, err := m.Create(ctx, "pong", "")
	if !errors.Is(err, errs.ErrProjectExists) {
		t.Fatalf("Create over existing: got %v", err)
	}
	assertFileNotExists(t, filepath.Join(existing, "conf.lua"))
	assertFileContains(t, filepath.Join(existing, "notes.txt"), "mine")

	entries, err := os.ReadDir(filepath.Join(env.Workspace, "projects"))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("projects dir has %d entries, want 1 (no staging leftovers)", len(entries))
	}
}
