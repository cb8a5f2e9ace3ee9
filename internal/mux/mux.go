// Package mux provides an abstraction over terminal multiplexers (tmux).
//
// This package is pure transport. Each operation maps to exactly one
// multiplexer subcommand and reports the outcome as a Result; the adapter
// never retries, never interprets captured text, and treats a non-zero
// exit as a normal outcome for the caller to inspect.
package mux

import "context"

// Result is the outcome of a single multiplexer invocation.
// A non-zero exit and a timed-out subprocess both yield OK=false with the
// captured stderr; the two failure shapes are identical to the caller.
type Result struct {
	OK     bool
	Stdout string
	Stderr string
}

// Multiplexer abstracts the multiplexer operations needed to host a
// single named session. Implementations exist for tmux.
type Multiplexer interface {
	// Name returns the multiplexer name (e.g., "tmux").
	Name() string

	// HasSession reports whether the named session is live.
	HasSession(ctx context.Context, name string) Result

	// NewSession creates a detached session rooted at dir running command.
	NewSession(ctx context.Context, name, dir string, command []string) Result

	// SendKeys transmits text as keystrokes followed by Enter.
	SendKeys(ctx context.Context, name, text string) Result

	// CapturePane captures the last lines of scrollback, verbatim.
	CapturePane(ctx context.Context, name string, lines int) Result

	// KillSession destroys the named session.
	KillSession(ctx context.Context, name string) Result

	// SetOption applies a display option to the named session.
	SetOption(ctx context.Context, name, option, value string) Result

	// ListSessions lists all live sessions.
	ListSessions(ctx context.Context) Result

	// AttachCommand returns the command line a human runs to watch the
	// session live. Informational only; nothing is executed.
	AttachCommand(name string) string
}
