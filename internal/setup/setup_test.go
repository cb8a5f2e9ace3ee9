package setup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/timvw/replmux/internal/meta"
)

func TestInstallWritesScaffolding(t *testing.T) {
	dir := t.TempDir()

	written, err := Install(dir)
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	want := []string{
		filepath.Join(dir, ".claude", "commands", "interactive.md"),
		filepath.Join(dir, ".claude", "commands", "repl-debug.md"),
		filepath.Join(dir, ".claude", "README.md"),
	}
	if len(written) != len(want) {
		t.Fatalf("written: got %d paths, want %d", len(written), len(want))
	}
	for i, path := range want {
		if written[i] != path {
			t.Errorf("written[%d]: got %q, want %q", i, written[i], path)
		}
		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		if len(content) == 0 {
			t.Errorf("%s is empty", path)
		}
	}
}

func TestInstallIsIdempotent(t *testing.T) {
	dir := t.TempDir()

	first, err := Install(dir)
	if err != nil {
		t.Fatalf("first Install: %v", err)
	}
	before, err := os.ReadFile(first[0])
	if err != nil {
		t.Fatal(err)
	}

	second, err := Install(dir)
	if err != nil {
		t.Fatalf("second Install: %v", err)
	}
	after, err := os.ReadFile(second[0])
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("reinstall changed file content")
	}
}

func TestDocsReferenceCLICommands(t *testing.T) {
	for _, cmd := range []string{"replmux start", "replmux send", "replmux read"} {
		if !strings.Contains(interactiveCommandDoc, cmd) {
			t.Errorf("interactive doc missing %q", cmd)
		}
	}
	for _, cmd := range []string{"replmux setup", "replmux pause"} {
		if !strings.Contains(projectReadmeDoc, cmd) {
			t.Errorf("readme missing %q", cmd)
		}
	}
}

func TestDocsInstalled(t *testing.T) {
	paths := meta.StoragePaths{ConfigDir: t.TempDir()}
	if DocsInstalled(paths) {
		t.Error("DocsInstalled true before any write")
	}

	docPath := filepath.Join(paths.ConfigDir, "available-commands.md")
	if err := os.WriteFile(docPath, []byte(commandsDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	if !DocsInstalled(paths) {
		t.Error("DocsInstalled false after write")
	}
}

func TestSucceeded(t *testing.T) {
	tests := []struct {
		name  string
		steps []StepResult
		want  bool
	}{
		{"empty", nil, true},
		{"all ok", []StepResult{{OK: true}, {OK: true}}, true},
		{"one failure", []StepResult{{OK: true}, {OK: false}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Succeeded(tt.steps); got != tt.want {
				t.Errorf("Succeeded: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInstallHintNamesPlatform(t *testing.T) {
	if installHint() == "" {
		t.Error("installHint empty")
	}
	if !strings.Contains(installHint(), "tmux") {
		t.Errorf("hint should mention tmux: %q", installHint())
	}
}
