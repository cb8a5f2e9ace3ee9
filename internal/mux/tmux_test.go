package mux

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
)

// fakeRunner records invocations and replays canned outputs per command key.
type fakeRunner struct {
	calls  [][]string // each call is [name, arg1, arg2, ...]
	stdout map[string]string
	stderr map[string]string
	errs   map[string]error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		stdout: make(map[string]string),
		stderr: make(map[string]string),
		errs:   make(map[string]error),
	}
}

// key builds a lookup key from a command and its args.
func key(name string, args ...string) string {
	return name + " " + strings.Join(args, " ")
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	k := key(name, args...)
	return f.stdout[k], f.stderr[k], f.errs[k]
}

// lastCall returns the most recent recorded call, or nil.
func (f *fakeRunner) lastCall() []string {
	if len(f.calls) == 0 {
		return nil
	}
	return f.calls[len(f.calls)-1]
}

func TestHasSession(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		wantOK bool
	}{
		{name: "live session", err: nil, wantOK: true},
		{name: "absent session", err: fmt.Errorf("exit status 1"), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeRunner()
			fake.errs[key("tmux", "has-session", "-t", "claude")] = tt.err

			tm := &Tmux{Runner: fake}
			res := tm.HasSession(context.Background(), "claude")
			if res.OK != tt.wantOK {
				t.Errorf("OK: got %v, want %v", res.OK, tt.wantOK)
			}
		})
	}
}

func TestNewSessionArgs(t *testing.T) {
	fake := newFakeRunner()
	tm := &Tmux{Runner: fake}

	res := tm.NewSession(context.Background(), "claude", "/work", []string{"python3", "-i"})
	if !res.OK {
		t.Fatalf("NewSession failed: %+v", res)
	}

	want := []string{"tmux", "new-session", "-d", "-s", "claude", "-c", "/work", "python3", "-i"}
	got := fake.lastCall()
	if len(got) != len(want) {
		t.Fatalf("args: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("arg %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSendKeysAppendsEnter(t *testing.T) {
	fake := newFakeRunner()
	tm := &Tmux{Runner: fake}

	tm.SendKeys(context.Background(), "claude", "x = 1")

	got := fake.lastCall()
	if got[len(got)-1] != "Enter" {
		t.Errorf("last arg: got %q, want Enter", got[len(got)-1])
	}
	if got[len(got)-2] != "x = 1" {
		t.Errorf("payload: got %q, want %q", got[len(got)-2], "x = 1")
	}
}

func TestCapturePaneScrollbackDepth(t *testing.T) {
	fake := newFakeRunner()
	fake.stdout[key("tmux", "capture-pane", "-t", "claude", "-p", "-S", "-20")] = ">>> x = 1\n>>> print(x)\n1"

	tm := &Tmux{Runner: fake}
	res := tm.CapturePane(context.Background(), "claude", 20)
	if !res.OK {
		t.Fatalf("CapturePane failed: %+v", res)
	}
	if !strings.Contains(res.Stdout, "print(x)") {
		t.Errorf("stdout: got %q, want captured scrollback", res.Stdout)
	}
}

func TestFailureCarriesStderr(t *testing.T) {
	fake := newFakeRunner()
	k := key("tmux", "kill-session", "-t", "claude")
	fake.errs[k] = fmt.Errorf("exit status 1")
	fake.stderr[k] = "no server running"

	tm := &Tmux{Runner: fake}
	res := tm.KillSession(context.Background(), "claude")
	if res.OK {
		t.Fatal("expected failure")
	}
	if res.Stderr != "no server running" {
		t.Errorf("stderr: got %q, want %q", res.Stderr, "no server running")
	}
}

func TestFailureWithoutStderrUsesError(t *testing.T) {
	fake := newFakeRunner()
	fake.errs[key("tmux", "has-session", "-t", "gone")] = context.DeadlineExceeded

	tm := &Tmux{Runner: fake}
	res := tm.HasSession(context.Background(), "gone")
	if res.OK {
		t.Fatal("expected failure")
	}
	// A timeout must look exactly like a non-zero exit: OK=false plus text.
	if res.Stderr == "" {
		t.Error("expected stderr to carry the failure text")
	}
}

func TestSetOption(t *testing.T) {
	fake := newFakeRunner()
	tm := &Tmux{Runner: fake}

	tm.SetOption(context.Background(), "claude", "status-style", "bg=colour24,fg=colour15")

	want := []string{"tmux", "set-option", "-t", "claude", "status-style", "bg=colour24,fg=colour15"}
	got := fake.lastCall()
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("args: got %v, want %v", got, want)
	}
}

func TestAttachCommand(t *testing.T) {
	tm := NewTmux()
	if got := tm.AttachCommand("claude"); got != "tmux attach -t claude" {
		t.Errorf("AttachCommand: got %q", got)
	}
}

func TestTimeoutDefault(t *testing.T) {
	tm := NewTmux()
	if tm.Timeout != 0 {
		t.Fatalf("fresh Tmux should defer to DefaultTimeout, got %v", tm.Timeout)
	}
	if DefaultTimeout != 10*time.Second {
		t.Errorf("DefaultTimeout: got %v, want 10s", DefaultTimeout)
	}
}
