package platform

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

type call struct {
	name string
	args []string
}

func recorder(calls *[]call, err error) Runner {
	return func(_ context.Context, name string, args ...string) error {
		*calls = append(*calls, call{name: name, args: args})
		return err
	}
}

func TestReveal(t *testing.T) {
	path := filepath.Join("/ws", "projects", "Foo")

	tests := []struct {
		goos string
		want string
	}{
		{"darwin", "open -R " + path},
		{"windows", "explorer /select," + path},
		{"linux", "xdg-open " + filepath.Dir(path)},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			var calls []call
			l := &Launcher{GOOS: tt.goos, Run: recorder(&calls, nil)}
			if err := l.Reveal(context.Background(), path); err != nil {
				t.Fatalf("Reveal() error: %v", err)
			}
			if len(calls) != 1 {
				t.Fatalf("expected 1 call, got %d", len(calls))
			}
			got := calls[0].name + " " + strings.Join(calls[0].args, " ")
			if got != tt.want {
				t.Errorf("command = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRevealError(t *testing.T) {
	var calls []call
	l := &Launcher{GOOS: "linux", Run: recorder(&calls, errors.New("boom"))}
	if err := l.Reveal(context.Background(), "/ws/projects/Foo"); err == nil {
		t.Fatal("expected error")
	}
}

func TestOpenWithEditor(t *testing.T) {
	var calls []call
	l := &Launcher{GOOS: "linux", Editor: "code -n", Run: recorder(&calls, nil)}
	if err := l.Open(context.Background(), "/ws/projects/Foo"); err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	got := calls[0].name + " " + strings.Join(calls[0].args, " ")
	if got != "code -n /ws/projects/Foo" {
		t.Errorf("command = %q", got)
	}
}

func TestOpenWithoutEditor(t *testing.T) {
	var calls []call
	l := &Launcher{GOOS: "darwin", Run: recorder(&calls, nil)}
	if err := l.Open(context.Background(), "/ws/projects/Foo"); err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if calls[0].name != "open" || calls[0].args[0] != "/ws/projects/Foo" {
		t.Errorf("unexpected call %+v", calls[0])
	}
}
