package mux

import (
	"context"
	"fmt"
	"time"
)

// DefaultTimeout bounds each tmux invocation. A hung tmux server is
// reported as a plain failure rather than blocking the caller.
const DefaultTimeout = 10 * time.Second

// Tmux implements the Multiplexer interface for tmux.
type Tmux struct {
	Runner  Runner
	Timeout time.Duration // per-invocation; 0 means DefaultTimeout
}

// NewTmux creates a tmux multiplexer with the default ExecRunner.
func NewTmux() *Tmux {
	return &Tmux{Runner: ExecRunner{}}
}

// Name returns "tmux".
func (t *Tmux) Name() string {
	return "tmux"
}

// HasSession reports whether the named session is live.
// tmux exits non-zero when the session is absent; that is the normal
// "no" answer, not an error.
func (t *Tmux) HasSession(ctx context.Context, name string) Result {
	return t.run(ctx, "has-session", "-t", name)
}

// NewSession creates a detached session named name, rooted at dir,
// running command in its single pane.
func (t *Tmux) NewSession(ctx context.Context, name, dir string, command []string) Result {
	args := append([]string{"new-session", "-d", "-s", name, "-c", dir}, command...)
	return t.run(ctx, args...)
}

// SendKeys transmits text as keystrokes followed by Enter.
func (t *Tmux) SendKeys(ctx context.Context, name, text string) Result {
	return t.run(ctx, "send-keys", "-t", name, text, "Enter")
}

// CapturePane captures the last lines of scrollback.
// Uses -p (stdout) and -S -N (start N lines above the visible area).
func (t *Tmux) CapturePane(ctx context.Context, name string, lines int) Result {
	return t.run(ctx, "capture-pane", "-t", name, "-p", "-S", fmt.Sprintf("-%d", lines))
}

// KillSession destroys the named session.
func (t *Tmux) KillSession(ctx context.Context, name string) Result {
	return t.run(ctx, "kill-session", "-t", name)
}

// SetOption applies a session-scoped display option.
func (t *Tmux) SetOption(ctx context.Context, name, option, value string) Result {
	return t.run(ctx, "set-option", "-t", name, option, value)
}

// ListSessions lists all live sessions.
func (t *Tmux) ListSessions(ctx context.Context) Result {
	return t.run(ctx, "list-sessions")
}

// AttachCommand returns the command a human runs to watch the session.
func (t *Tmux) AttachCommand(name string) string {
	return fmt.Sprintf("tmux attach -t %s", name)
}

// run executes a tmux subcommand under the per-invocation timeout and
// folds the exit status into a Result. Timeouts and non-zero exits are
// indistinguishable by design; both carry whatever stderr was captured.
func (t *Tmux) run(ctx context.Context, args ...string) Result {
	timeout := t.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stdout, stderr, err := t.Runner.Run(ctx, "tmux", args...)
	if err != nil {
		if stderr == "" {
			stderr = err.Error()
		}
		return Result{OK: false, Stdout: stdout, Stderr: stderr}
	}
	return Result{OK: true, Stdout: stdout, Stderr: stderr}
}
