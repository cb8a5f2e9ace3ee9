package repl

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// probeRunner succeeds only for the binaries named in ok.
type probeRunner struct {
	ok    map[string]bool
	calls []string
}

func (p *probeRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	p.calls = append(p.calls, name+" "+strings.Join(args, " "))
	if p.ok[name] {
		return "", "", nil
	}
	return "", "", errors.New("executable file not found in $PATH")
}

func TestSelectBestPriorityOrder(t *testing.T) {
	tests := []struct {
		name      string
		available map[string]bool
		want      string
	}{
		{"ptpython wins", map[string]bool{"ptpython": true, "ipython": true, "python3": true}, "ptpython"},
		{"ipython second", map[string]bool{"ipython": true, "python3": true}, "ipython"},
		{"rich third", map[string]bool{"python3": true}, "python-rich"},
		{"plain fallback", map[string]bool{}, "python"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Selector{Runner: &probeRunner{ok: tt.available}, ScratchDir: t.TempDir()}
			if got := s.SelectBest(context.Background()); got.Name != tt.want {
				t.Errorf("SelectBest: got %q, want %q", got.Name, tt.want)
			}
		})
	}
}

func TestSelectBestWritesPtpythonConfig(t *testing.T) {
	scratch := t.TempDir()
	s := &Selector{Runner: &probeRunner{ok: map[string]bool{"ptpython": true}}, ScratchDir: scratch}

	flavor := s.SelectBest(context.Background())
	if len(flavor.Command) != 3 || flavor.Command[1] != "--config-file" {
		t.Fatalf("command: got %v, want ptpython --config-file <path>", flavor.Command)
	}

	cfg := flavor.Command[2]
	if cfg != filepath.Join(scratch, "ptpython", "config.py") {
		t.Errorf("config path: got %q", cfg)
	}
	content, err := os.ReadFile(cfg)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if !strings.Contains(string(content), "def configure(repl") {
		t.Error("config missing configure entrypoint")
	}

	// Regeneration over an existing file is fine.
	second := s.SelectBest(context.Background())
	if second.Command[2] != cfg {
		t.Errorf("second selection changed config path: %q", second.Command[2])
	}
}

func TestSelectBestPtpythonConfigFailureFallsBack(t *testing.T) {
	// An unwritable scratch dir degrades to bare ptpython, not to the
	// next candidate.
	scratch := filepath.Join(t.TempDir(), "blocked")
	if err := os.WriteFile(scratch, nil, 0o644); err != nil { // file where a dir is needed
		t.Fatal(err)
	}
	s := &Selector{Runner: &probeRunner{ok: map[string]bool{"ptpython": true}}, ScratchDir: scratch}

	flavor := s.SelectBest(context.Background())
	if flavor.Name != "ptpython" {
		t.Fatalf("flavor: got %q, want ptpython", flavor.Name)
	}
	if len(flavor.Command) != 1 || flavor.Command[0] != "ptpython" {
		t.Errorf("command: got %v, want bare ptpython", flavor.Command)
	}
}

func TestRichProbeImportsRich(t *testing.T) {
	r := &probeRunner{ok: map[string]bool{"python3": true}}
	s := &Selector{Runner: r, ScratchDir: t.TempDir()}

	flavor := s.SelectBest(context.Background())
	if flavor.Name != "python-rich" {
		t.Fatalf("flavor: got %q", flavor.Name)
	}
	// The capability check is a real import, not a binary lookup.
	found := false
	for _, call := range r.calls {
		if call == "python3 -c import rich" {
			found = true
		}
	}
	if !found {
		t.Errorf("no rich import probe in calls: %v", r.calls)
	}
	// The launch command runs the init snippet interactively.
	if flavor.Command[0] != "python3" || flavor.Command[1] != "-i" {
		t.Errorf("command: got %v", flavor.Command)
	}
	if !strings.Contains(flavor.Command[3], "install()") {
		t.Errorf("init snippet missing install calls: %q", flavor.Command[3])
	}
}

func TestPlainNeverProbed(t *testing.T) {
	r := &probeRunner{ok: map[string]bool{}}
	s := &Selector{Runner: r, ScratchDir: t.TempDir()}

	if got := s.SelectBest(context.Background()); got.Name != "python" {
		t.Fatalf("flavor: got %q", got.Name)
	}
	for _, call := range r.calls {
		if strings.HasPrefix(call, "python3 -i") {
			t.Errorf("plain interpreter should not be probed: %v", r.calls)
		}
	}
}
