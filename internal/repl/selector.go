// Package repl probes for the best available interactive Python
// front-end and constructs its launch command.
package repl

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/timvw/replmux/internal/mux"
)

// DefaultProbeTimeout bounds each candidate's capability check.
const DefaultProbeTimeout = 5 * time.Second

// Flavor is a selected REPL front-end and its full launch command.
type Flavor struct {
	Name    string
	Command []string
}

// Selector probes candidates in priority order: ptpython, ipython, plain
// python with rich pretty-printing, plain python. The plain interpreter
// is assumed present and never probed; selection therefore always
// succeeds and never blocks longer than the sum of per-candidate
// timeouts.
type Selector struct {
	Runner     mux.Runner
	ScratchDir string        // where the generated ptpython config lives
	Timeout    time.Duration // per-candidate; 0 means DefaultProbeTimeout
}

// NewSelector creates a selector with the default ExecRunner.
func NewSelector(scratchDir string) *Selector {
	return &Selector{Runner: mux.ExecRunner{}, ScratchDir: scratchDir}
}

// SelectBest returns the first candidate whose capability check succeeds.
func (s *Selector) SelectBest(ctx context.Context) Flavor {
	if s.probe(ctx, "ptpython", "--version") {
		if cfg, err := s.writePtpythonConfig(); err == nil {
			return Flavor{Name: "ptpython", Command: []string{"ptpython", "--config-file", cfg}}
		}
		// Config generation failed; ptpython still works without it.
		return Flavor{Name: "ptpython", Command: []string{"ptpython"}}
	}
	if s.probe(ctx, "ipython", "--version") {
		return Flavor{Name: "ipython", Command: []string{"ipython"}}
	}
	if s.probe(ctx, "python3", "-c", "import rich") {
		return Flavor{Name: "python-rich", Command: []string{"python3", "-i", "-c", richInit}}
	}
	return Plain()
}

// Plain returns the always-available fallback flavor.
func Plain() Flavor {
	return Flavor{Name: "python", Command: []string{"python3", "-i"}}
}

// probe runs a candidate's version or capability check under the
// per-candidate timeout. Any failure, including a missing binary or a
// timeout, disqualifies the candidate.
func (s *Selector) probe(ctx context.Context, name string, args ...string) bool {
	timeout := s.Timeout
	if timeout == 0 {
		timeout = DefaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, _, err := s.Runner.Run(ctx, name, args...)
	return err == nil
}

// writePtpythonConfig regenerates the fixed ptpython configuration file
// under the scratch directory and returns its path. Regeneration is
// idempotent; the content never varies.
func (s *Selector) writePtpythonConfig() (string, error) {
	dir := filepath.Join(s.ScratchDir, "ptpython")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, "config.py")
	if err := os.WriteFile(path, []byte(ptpythonConfig), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
