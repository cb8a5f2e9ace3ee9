package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearEnv blanks every variable Load consults so host settings cannot
// leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"REPLMUX_SESSION", "REPLMUX_DELAY", "REPLMUX_TIMEOUT", "REPLMUX_SPACER",
		"REPLMUX_PROVIDER", "REPLMUX_MODEL", "REPLMUX_BASE_URL", "REPLMUX_API_KEY",
		"OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_HEADERS",
		"ANTHROPIC_API_KEY", "OPENAI_API_KEY",
	} {
		t.Setenv(key, "")
	}
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Session != "claude" {
		t.Errorf("Session: got %q, want %q", cfg.Session, "claude")
	}
	if cfg.Delay != "5s" {
		t.Errorf("Delay: got %q, want %q", cfg.Delay, "5s")
	}
	if cfg.Timeout != "10s" {
		t.Errorf("Timeout: got %q, want %q", cfg.Timeout, "10s")
	}
	if cfg.Lines != 50 {
		t.Errorf("Lines: got %d, want %d", cfg.Lines, 50)
	}
	if cfg.Provider != "anthropic" {
		t.Errorf("Provider: got %q, want %q", cfg.Provider, "anthropic")
	}
	if cfg.MaxTokens != 4096 {
		t.Errorf("MaxTokens: got %d, want %d", cfg.MaxTokens, 4096)
	}
}

func TestParseDurationOrDisable(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMs  int64
		wantErr bool
	}{
		{"empty returns fallback", "", 5000, false},
		{"zero disables", "0", 0, false},
		{"off disables", "off", 0, false},
		{"disable disables", "disable", 0, false},
		{"valid duration", "30s", 30000, false},
		{"valid short duration", "500ms", 500, false},
		{"bare integer is seconds", "5", 5000, false},
		{"bare fraction is seconds", "0.5", 500, false},
		{"invalid", "not-a-duration", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDurationOrDisable(tt.input, 5*time.Second)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDurationOrDisable(%q): error = %v, wantErr = %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got.Milliseconds() != tt.wantMs {
				t.Errorf("parseDurationOrDisable(%q) = %v, want %dms", tt.input, got, tt.wantMs)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, ".replmux.yaml")
	content := `session: scratchpad
delay: "2s"
timeout: "30s"
lines: 100
spacer: true
provider: openai
model: gpt-4o-mini
api_key: test-key-123
`
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)
	os.Chdir(dir)

	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Session != "scratchpad" {
		t.Errorf("Session: got %q, want %q", cfg.Session, "scratchpad")
	}
	if cfg.DelayDuration != 2*time.Second {
		t.Errorf("DelayDuration: got %v, want 2s", cfg.DelayDuration)
	}
	if cfg.TimeoutDuration != 30*time.Second {
		t.Errorf("TimeoutDuration: got %v, want 30s", cfg.TimeoutDuration)
	}
	if cfg.Lines != 100 {
		t.Errorf("Lines: got %d, want 100", cfg.Lines)
	}
	if !cfg.Spacer {
		t.Error("Spacer: got false, want true")
	}
	if cfg.Provider != "openai" {
		t.Errorf("Provider: got %q, want %q", cfg.Provider, "openai")
	}
	if cfg.APIKey != "test-key-123" {
		t.Errorf("APIKey: got %q, want %q", cfg.APIKey, "test-key-123")
	}
	if cfg.ConfigFile != ".replmux.yaml" {
		t.Errorf("ConfigFile: got %q", cfg.ConfigFile)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, ".replmux.yaml")
	content := `session: from-file
delay: "2s"
api_key: file-key
`
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)
	os.Chdir(dir)

	clearEnv(t)
	t.Setenv("REPLMUX_SESSION", "from-env")
	t.Setenv("REPLMUX_DELAY", "7")
	t.Setenv("REPLMUX_API_KEY", "env-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Session != "from-env" {
		t.Errorf("Session: got %q, want %q (env should override file)", cfg.Session, "from-env")
	}
	if cfg.DelayDuration != 7*time.Second {
		t.Errorf("DelayDuration: got %v, want 7s (bare seconds from env)", cfg.DelayDuration)
	}
	if cfg.APIKey != "env-key" {
		t.Errorf("APIKey: got %q, want %q (env should override file)", cfg.APIKey, "env-key")
	}
}

func TestAPIKeyFallbacks(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)
	os.Chdir(dir) // no config file here

	clearEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.APIKey != "sk-ant-test" {
		t.Errorf("APIKey: got %q, want anthropic fallback", cfg.APIKey)
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := Defaults()
	cfg.DelayDuration = 5 * time.Second
	cfg.TimeoutDuration = 10 * time.Second

	if err := cfg.ApplyOverrides("work", "0", "20s"); err != nil {
		t.Fatalf("ApplyOverrides: %v", err)
	}
	if cfg.Session != "work" {
		t.Errorf("Session: got %q, want %q", cfg.Session, "work")
	}
	if cfg.DelayDuration != 0 {
		t.Errorf("DelayDuration: got %v, want 0 (disabled)", cfg.DelayDuration)
	}
	if cfg.TimeoutDuration != 20*time.Second {
		t.Errorf("TimeoutDuration: got %v, want 20s", cfg.TimeoutDuration)
	}

	// Empty strings leave values untouched.
	if err := cfg.ApplyOverrides("", "", ""); err != nil {
		t.Fatalf("ApplyOverrides with empties: %v", err)
	}
	if cfg.Session != "work" || cfg.TimeoutDuration != 20*time.Second {
		t.Error("empty overrides changed existing values")
	}

	if err := cfg.ApplyOverrides("", "garbage", ""); err == nil {
		t.Error("invalid delay override should error")
	}
}
