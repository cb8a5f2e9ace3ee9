// Package setup prepares the environment so that a session can be
// started: it verifies the multiplexer dependency, probes server
// permissions, and writes the command documentation. It is an idempotent
// boundary collaborator; the lifecycle controller never depends on it.
package setup

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/timvw/replmux/internal/meta"
	"github.com/timvw/replmux/internal/mux"
)

//go:embed docs/available-commands.md
var commandsDoc string

// StepResult reports one setup step for the CLI to render.
type StepResult struct {
	Name string
	OK   bool
	Note string
}

// Run executes all setup steps and returns their results. It keeps going
// after a failed step so the report is complete; overall success is the
// conjunction of the required steps.
func Run(ctx context.Context, m mux.Multiplexer, paths meta.StoragePaths) []StepResult {
	var steps []StepResult

	if mux.Installed() {
		steps = append(steps, StepResult{Name: "tmux binary", OK: true})
	} else {
		steps = append(steps, StepResult{Name: "tmux binary", OK: false, Note: installHint()})
		return steps
	}

	if mux.EnsureServer(ctx, m) {
		steps = append(steps, StepResult{Name: "tmux server", OK: true})
	} else {
		// Not fatal: macOS may still show a permission prompt on the
		// first real session.
		steps = append(steps, StepResult{
			Name: "tmux server",
			OK:   false,
			Note: "permissions may need manual approval; allow terminal access if prompted",
		})
	}

	if err := os.MkdirAll(paths.ConfigDir, 0o755); err != nil {
		steps = append(steps, StepResult{Name: "config directory", OK: false, Note: err.Error()})
		return steps
	}
	steps = append(steps, StepResult{Name: "config directory", OK: true, Note: paths.ConfigDir})

	docPath := filepath.Join(paths.ConfigDir, "available-commands.md")
	if _, err := os.Stat(docPath); os.IsNotExist(err) {
		if err := os.WriteFile(docPath, []byte(commandsDoc), 0o644); err != nil {
			steps = append(steps, StepResult{Name: "command documentation", OK: false, Note: err.Error()})
			return steps
		}
	}
	steps = append(steps, StepResult{Name: "command documentation", OK: true, Note: docPath})

	return steps
}

// Succeeded reports whether every step passed.
func Succeeded(steps []StepResult) bool {
	for _, s := range steps {
		if !s.OK {
			return false
		}
	}
	return true
}

// DocsInstalled reports whether setup has written the command
// documentation. Used by the self-test.
func DocsInstalled(paths meta.StoragePaths) bool {
	_, err := os.Stat(filepath.Join(paths.ConfigDir, "available-commands.md"))
	return err == nil
}

// installHint returns platform-specific installation guidance.
func installHint() string {
	switch runtime.GOOS {
	case "darwin":
		return "install with: brew install tmux"
	case "linux":
		return "install with: sudo apt install tmux (Debian/Ubuntu) or sudo yum install tmux (RHEL)"
	default:
		return fmt.Sprintf("install tmux for %s manually", runtime.GOOS)
	}
}
