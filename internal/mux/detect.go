package mux

import (
	"context"
	"os/exec"
)

// Installed reports whether the tmux binary is available on PATH.
func Installed() bool {
	path, err := exec.LookPath("tmux")
	return err == nil && path != ""
}

// EnsureServer verifies that a tmux server is reachable, starting one if
// needed by creating and killing a throwaway session. On macOS this also
// surfaces the one-time terminal-access permission prompt early, before
// the first real session creation.
func EnsureServer(ctx context.Context, m Multiplexer) bool {
	if m.ListSessions(ctx).OK {
		return true
	}
	const probe = "replmux-server-probe"
	if !m.NewSession(ctx, probe, "/", []string{"true"}).OK {
		return false
	}
	m.KillSession(ctx, probe)
	return true
}
