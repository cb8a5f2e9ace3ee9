package session

import (
	"errors"
	"fmt"
)

// Sentinel errors for the controller's expected failure modes. The CLI
// layer matches these with errors.Is to choose the diagnostic to print;
// none of them indicate a bug.
var (
	// ErrSessionNotFound means an operation required a live multiplexer
	// session and none exists under the configured name.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionPaused means the send path is gated by the persisted
	// paused flag. Resume the session or use a forced send.
	ErrSessionPaused = errors.New("session is paused")

	// ErrEnvNotFound means the requested interpreter environment path,
	// or the python binary inside it, does not exist. Start aborts
	// without falling back to the default interpreter.
	ErrEnvNotFound = errors.New("virtual environment not found")
)

// AdapterError reports a multiplexer invocation that exited non-zero or
// timed out, carrying the captured stderr. Never retried.
type AdapterError struct {
	Op     string
	Stderr string
}

func (e *AdapterError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("tmux %s failed", e.Op)
	}
	return fmt.Sprintf("tmux %s failed: %s", e.Op, e.Stderr)
}
