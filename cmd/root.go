package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/timvw/replmux/internal/config"
	"github.com/timvw/replmux/internal/meta"
	"github.com/timvw/replmux/internal/mux"
	telem "github.com/timvw/replmux/internal/otel"
	"github.com/timvw/replmux/internal/repl"
	"github.com/timvw/replmux/internal/session"
	"github.com/timvw/replmux/internal/theme"
)

// Version is injected at build time via -ldflags.
var Version = "dev"

var (
	// Global flags. Empty means "use config/env/default".
	flagSession string
	flagDelay   string
	flagTimeout string
)

var rootCmd = &cobra.Command{
	Use:   "replmux",
	Short: "Persistent shared Python sessions in tmux",
	Long: `replmux hosts one named persistent tmux session running an interactive
Python interpreter, so a driving agent and a human can both send input
to, and read output from, the same live process across many separate
invocations.

Session state lives in tmux plus a small metadata file per session name;
nothing is held open between invocations. Pause/resume gates the send
path as a coordination courtesy between cooperating callers — the
interpreter itself is never suspended.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagSession, "session", "", "session name (default \"claude\")")
	rootCmd.PersistentFlags().StringVar(&flagDelay, "delay", "", "settle delay after send, seconds or duration (default 5s; 0 disables)")
	rootCmd.PersistentFlags().StringVar(&flagTimeout, "timeout", "", "per-tmux-invocation timeout (default 10s)")
}

// loadConfig resolves configuration (defaults -> file -> env) and applies
// command-line flag overrides on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyOverrides(flagSession, flagDelay, flagTimeout); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newController wires the lifecycle controller for the configured session.
func newController(cfg *config.Config) *session.Controller {
	t := mux.NewTmux()
	t.Timeout = cfg.TimeoutDuration

	paths := meta.DefaultPaths()

	return &session.Controller{
		Name:     cfg.Session,
		Mux:      t,
		Store:    meta.NewStore(paths),
		Selector: repl.NewSelector(paths.ScratchDir),
		Palette:  theme.SessionPalette,
	}
}

// runOp is the shared harness for one-shot session operations: config,
// controller, telemetry span, operation counter, all around fn.
func runOp(cmd *cobra.Command, op string, fn func(ctx context.Context, cfg *config.Config, ctl *session.Controller) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	telem.Version = Version
	tel, err := telem.Init(ctx, telem.OTELConfig{
		Endpoint: cfg.OTELEndpoint,
		Headers:  cfg.OTELHeaders,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: otel init failed: %v\n", err)
	}
	if tel != nil {
		defer tel.Shutdown(ctx)
	}

	ctl := newController(cfg)

	if tel != nil {
		activeMetrics = tel.Metrics
		spanCtx, s := tel.Tracer.Start(ctx, op)
		started := time.Now()
		err = fn(spanCtx, cfg, ctl)
		s.End()
		tel.Metrics.RecordOperation(ctx, op, err, time.Since(started))
		return err
	}
	return fn(ctx, cfg, ctl)
}

// activeMetrics is the metric set of the current invocation, for
// commands that record more than the operation counter. Nil-safe.
var activeMetrics *telem.Metrics

// notFoundErr renders ErrSessionNotFound with recovery guidance.
func notFoundErr(name string) error {
	return fmt.Errorf("session %q not found. Start with: replmux start", name)
}
