package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/timvw/replmux/internal/config"
	"github.com/timvw/replmux/internal/meta"
	"github.com/timvw/replmux/internal/mux"
	"github.com/timvw/replmux/internal/session"
	"github.com/timvw/replmux/internal/setup"
	"github.com/timvw/replmux/internal/theme"
)

var selftestCmd = &cobra.Command{
	Use:   "test",
	Short: "Run the built-in self-test",
	Long: `Run the built-in self-test against a real tmux: dependency check, a
full session lifecycle round-trip (start, send a sentinel, read it back,
stop), and the setup artifacts. The exit code reflects pass/fail.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, "test", func(ctx context.Context, cfg *config.Config, ctl *session.Controller) error {
			fmt.Println(theme.Info.Render("Running built-in tests..."))
			fmt.Println(strings.Repeat("=", 40))

			passed, total := 0, 0

			// Test 1: tmux availability.
			total++
			if mux.Installed() {
				fmt.Println(theme.Success.Render("Test 1: tmux available"))
				passed++
			} else {
				fmt.Println(theme.Error.Render("Test 1: tmux not found"))
			}

			// Test 2: session lifecycle round-trip.
			total++
			fmt.Println(theme.Info.Render("Test 2: Session lifecycle..."))
			if lifecycleRoundTrip(ctx, ctl) {
				fmt.Println(theme.Success.Render("Test 2: Session lifecycle works"))
				passed++
			} else {
				fmt.Println(theme.Error.Render("Test 2: Session lifecycle failed"))
			}

			// Test 3: setup artifacts.
			total++
			if setup.DocsInstalled(meta.DefaultPaths()) {
				fmt.Println(theme.Success.Render("Test 3: Config files exist"))
				passed++
			} else {
				fmt.Println(theme.Error.Render("Test 3: Config files missing (run 'replmux setup')"))
			}

			fmt.Println("\n" + strings.Repeat("=", 40))
			fmt.Println(theme.Warn.Render(fmt.Sprintf("Tests passed: %d/%d", passed, total)))

			if passed != total {
				return fmt.Errorf("self-test failed")
			}
			fmt.Println(theme.Success.Render("All tests passed! System is ready."))
			return nil
		})
	},
}

// lifecycleRoundTrip starts a fresh session, sends a sentinel assignment,
// and verifies it echoes back in the scrollback. Always stops the
// session before returning.
func lifecycleRoundTrip(ctx context.Context, ctl *session.Controller) bool {
	// Clean start.
	_ = ctl.Stop(ctx)

	if _, err := ctl.Start(ctx, session.StartOptions{}); err != nil {
		return false
	}
	defer func() { _ = ctl.Stop(ctx) }()

	time.Sleep(2 * time.Second)

	const sentinel = "test_var = 'replmux_selftest_ok'"
	if err := ctl.Send(ctx, sentinel, session.SendOptions{Delay: time.Second}); err != nil {
		return false
	}

	out, err := ctl.Read(ctx, 20)
	return err == nil && strings.Contains(out, "replmux_selftest_ok")
}

func init() {
	rootCmd.AddCommand(selftestCmd)
}
