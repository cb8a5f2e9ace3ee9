package mux

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
)

// Runner abstracts subprocess execution for testability.
// Callers pass a context that bounds the invocation; implementations must
// honor its deadline.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)
}

// ExecRunner implements Runner using os/exec with captured streams.
type ExecRunner struct{}

// Run executes a command and returns its trimmed stdout and stderr.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err := cmd.Run()
	return strings.TrimSpace(outBuf.String()), strings.TrimSpace(errBuf.String()), err
}
