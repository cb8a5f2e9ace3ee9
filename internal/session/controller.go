// Package session implements the lifecycle state machine for one named
// REPL session: Absent (no multiplexer session), Active (session exists,
// not paused), Paused (session exists, paused flag set).
//
// The multiplexer, not the metadata file, is the source of truth for
// existence: every operation re-checks the multiplexer before trusting
// metadata, and the paused flag is re-loaded from disk before every
// pause-sensitive decision. Pausing is a coordination courtesy between
// cooperating callers — it gates this tool's send path and nothing else;
// the interpreter process itself is never suspended.
package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/timvw/replmux/internal/meta"
	"github.com/timvw/replmux/internal/mux"
	"github.com/timvw/replmux/internal/repl"
)

// DefaultName is the session name used when the caller does not choose one.
const DefaultName = "claude"

// exitCommand is sent to the interpreter during Stop.
const exitCommand = "exit()"

// forcedSettleDelay is applied after a forced send when the caller did
// not configure a delay, matching the normal send path's advisory pause.
const forcedSettleDelay = time.Second

// Controller governs one named session.
type Controller struct {
	Name     string
	Mux      mux.Multiplexer
	Store    *meta.Store
	Selector *repl.Selector // nil disables flavor probing (plain python)

	// Palette maps tmux options to values applied cosmetically after
	// session creation. Each application is best-effort.
	Palette [][2]string

	// Sleep replaces time.Sleep in tests. Nil means time.Sleep.
	Sleep func(time.Duration)
	// Now replaces time.Now in tests. Nil means time.Now.
	Now func() time.Time
}

// StartOptions configures Start.
type StartOptions struct {
	WorkingDir string // defaults to the process working directory
	VenvPath   string // optional alternate interpreter environment root
}

// StartResult reports what Start did.
type StartResult struct {
	AlreadyExists bool
	Paused        bool // only meaningful when AlreadyExists
	Flavor        string
	Record        meta.Record
}

// SendOptions configures Send.
type SendOptions struct {
	Forced bool          // bypass the pause gate (not the existence check)
	Delay  time.Duration // settle delay after the keystrokes land
	Spacer bool          // send a blank print() first for visual separation
}

// Report is the composed status of a session.
type Report struct {
	Name   string
	Record meta.Record
	Recent string // last 10 lines of scrollback
}

// Start creates the session if absent, or reports the existing one.
// Starting an already-running session is intentionally idempotent, not
// an error. On multiplexer failure nothing is persisted.
func (c *Controller) Start(ctx context.Context, opts StartOptions) (StartResult, error) {
	if c.Mux.HasSession(ctx, c.Name).OK {
		rec := c.Store.Load(c.Name)
		return StartResult{AlreadyExists: true, Paused: rec.Paused, Record: rec}, nil
	}

	workingDir := opts.WorkingDir
	if workingDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return StartResult{}, fmt.Errorf("resolve working directory: %w", err)
		}
		workingDir = wd
	}

	flavor, err := c.resolveFlavor(ctx, opts.VenvPath)
	if err != nil {
		return StartResult{}, err
	}

	if res := c.Mux.NewSession(ctx, c.Name, workingDir, flavor.Command); !res.OK {
		return StartResult{}, &AdapterError{Op: "new-session", Stderr: res.Stderr}
	}

	// Cosmetic display options. Failures are deliberately ignored: none
	// of them affect whether the session is usable.
	for _, opt := range c.Palette {
		_ = c.Mux.SetOption(ctx, c.Name, opt[0], opt[1])
	}

	rec := meta.Record{
		SessionName: c.Name,
		CreatedAt:   c.now(),
		WorkingDir:  workingDir,
		Paused:      false,
		VenvPath:    opts.VenvPath,
		Status:      "active",
	}
	if err := c.Store.Save(c.Name, rec); err != nil {
		return StartResult{}, fmt.Errorf("save session metadata: %w", err)
	}

	return StartResult{Flavor: flavor.Name, Record: rec}, nil
}

// resolveFlavor picks the interpreter launch command. A venv path takes
// priority and never falls back: a missing environment aborts the start.
func (c *Controller) resolveFlavor(ctx context.Context, venvPath string) (repl.Flavor, error) {
	if venvPath != "" {
		root := expandUser(venvPath)
		if _, err := os.Stat(root); err != nil {
			return repl.Flavor{}, fmt.Errorf("%w: %s", ErrEnvNotFound, root)
		}
		python := filepath.Join(root, "bin", "python")
		if _, err := os.Stat(python); err != nil {
			return repl.Flavor{}, fmt.Errorf("%w: no python binary in %s", ErrEnvNotFound, root)
		}
		return repl.Flavor{Name: "python (venv)", Command: []string{python, "-i"}}, nil
	}
	if c.Selector != nil {
		return c.Selector.SelectBest(ctx), nil
	}
	return repl.Plain(), nil
}

// Send transmits text to the interpreter as literal keystrokes plus
// Enter. Unless forced, the persisted paused flag gates the send.
func (c *Controller) Send(ctx context.Context, text string, opts SendOptions) error {
	if !c.Mux.HasSession(ctx, c.Name).OK {
		return ErrSessionNotFound
	}

	if !opts.Forced {
		if rec := c.Store.Load(c.Name); rec.Paused {
			return ErrSessionPaused
		}
	}

	if opts.Spacer {
		// Blank line before the command for visual separation; cosmetic.
		_ = c.Mux.SendKeys(ctx, c.Name, "print()")
	}

	if res := c.Mux.SendKeys(ctx, c.Name, text); !res.OK {
		return &AdapterError{Op: "send-keys", Stderr: res.Stderr}
	}

	delay := opts.Delay
	if opts.Forced && delay == 0 {
		delay = forcedSettleDelay
	}
	if delay > 0 {
		c.sleep(delay)
	}
	return nil
}

// Read returns the last lines of scrollback verbatim. An absent session
// yields an empty result alongside ErrSessionNotFound.
func (c *Controller) Read(ctx context.Context, lines int) (string, error) {
	if !c.Mux.HasSession(ctx, c.Name).OK {
		return "", ErrSessionNotFound
	}
	res := c.Mux.CapturePane(ctx, c.Name, lines)
	if !res.OK {
		return "", &AdapterError{Op: "capture-pane", Stderr: res.Stderr}
	}
	return res.Stdout, nil
}

// Status composes the existence check, the metadata record, and a short
// scrollback read into one report.
func (c *Controller) Status(ctx context.Context) (Report, error) {
	if !c.Mux.HasSession(ctx, c.Name).OK {
		return Report{}, ErrSessionNotFound
	}
	report := Report{Name: c.Name, Record: c.Store.Load(c.Name)}
	recent, err := c.Read(ctx, 10)
	if err != nil {
		return report, err
	}
	report.Recent = recent
	return report, nil
}

// Pause sets the persisted paused flag. Idempotent.
func (c *Controller) Pause(ctx context.Context) error {
	return c.setPaused(ctx, true)
}

// Resume clears the persisted paused flag. Idempotent.
func (c *Controller) Resume(ctx context.Context) error {
	return c.setPaused(ctx, false)
}

func (c *Controller) setPaused(ctx context.Context, paused bool) error {
	if !c.Mux.HasSession(ctx, c.Name).OK {
		return ErrSessionNotFound
	}
	rec := c.Store.Load(c.Name)
	if rec.SessionName == "" {
		// Orphan-free pause: the live session may predate its metadata.
		rec.SessionName = c.Name
		rec.Status = "active"
	}
	rec.Paused = paused
	if err := c.Store.Save(c.Name, rec); err != nil {
		return fmt.Errorf("save session metadata: %w", err)
	}
	return nil
}

// Stop tears the session down. Every internal step is best-effort so
// cleanup always completes as far as possible: the interpreter exit is
// advisory (a paused session does not block stop), the kill-session exit
// code is ignored, and the metadata file is removed unconditionally.
// Stopping an absent session is a success.
func (c *Controller) Stop(ctx context.Context) error {
	if !c.Mux.HasSession(ctx, c.Name).OK {
		_ = c.Store.Delete(c.Name)
		return nil
	}

	// Ignored on purpose, including ErrSessionPaused: kill-session below
	// is the real teardown.
	_ = c.Send(ctx, exitCommand, SendOptions{})
	c.sleep(time.Second)

	_ = c.Mux.KillSession(ctx, c.Name)
	_ = c.Store.Delete(c.Name)
	return nil
}

// AttachCommand returns the command a human runs to watch the session
// live, after confirming the session exists.
func (c *Controller) AttachCommand(ctx context.Context) (string, error) {
	if !c.Mux.HasSession(ctx, c.Name).OK {
		return "", ErrSessionNotFound
	}
	return c.Mux.AttachCommand(c.Name), nil
}

func (c *Controller) sleep(d time.Duration) {
	if c.Sleep != nil {
		c.Sleep(d)
		return
	}
	time.Sleep(d)
}

func (c *Controller) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// expandUser resolves a leading "~/" against the current home directory.
func expandUser(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
