package cmd

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"
	"github.com/timvw/replmux/internal/config"
	"github.com/timvw/replmux/internal/session"
	"github.com/timvw/replmux/internal/watch"
)

var flagRefresh time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live scrollback viewer for the session",
	Long: `Open a live terminal viewer that periodically captures the session's
scrollback. Read-only apart from the pause/resume keybindings; any
number of watchers can run alongside other callers since capture never
disturbs the interpreter.

Keys: q quit, p pause, r resume, arrow keys scroll.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, "watch", func(ctx context.Context, cfg *config.Config, ctl *session.Controller) error {
			// Fail fast with the usual guidance instead of an empty viewer.
			if _, err := ctl.Read(ctx, 1); errors.Is(err, session.ErrSessionNotFound) {
				return notFoundErr(ctl.Name)
			}

			tui := &watch.TUI{Controller: ctl, Refresh: flagRefresh}
			return tui.Run(ctx)
		})
	},
}

func init() {
	watchCmd.Flags().DurationVar(&flagRefresh, "refresh", 2*time.Second, "capture refresh interval")
	rootCmd.AddCommand(watchCmd)
}
