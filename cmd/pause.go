package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/timvw/replmux/internal/config"
	"github.com/timvw/replmux/internal/session"
	"github.com/timvw/replmux/internal/theme"
)

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause the session so automated callers stop sending",
	Long: `Set the persisted paused flag so the normal send path is rejected
until 'replmux resume'. This is a coordination courtesy between
cooperating callers: the interpreter process keeps running, and a human
can take over with 'tmux attach'. Pausing twice is not an error.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, "pause", func(ctx context.Context, cfg *config.Config, ctl *session.Controller) error {
			err := ctl.Pause(ctx)
			if errors.Is(err, session.ErrSessionNotFound) {
				return notFoundErr(ctl.Name)
			}
			if err != nil {
				return err
			}
			fmt.Println(theme.Warn.Render(fmt.Sprintf("Session %q PAUSED", ctl.Name)))
			fmt.Println(theme.Warn.Render("Inspect manually with: " + ctl.Mux.AttachCommand(ctl.Name)))
			fmt.Println(theme.Warn.Render("Resume with: replmux resume"))
			return nil
		})
	},
}

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume the session so sends are accepted again",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, "resume", func(ctx context.Context, cfg *config.Config, ctl *session.Controller) error {
			err := ctl.Resume(ctx)
			if errors.Is(err, session.ErrSessionNotFound) {
				return notFoundErr(ctl.Name)
			}
			if err != nil {
				return err
			}
			fmt.Println(theme.Success.Render(fmt.Sprintf("Session %q RESUMED", ctl.Name)))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(resumeCmd)
}
