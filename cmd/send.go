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

var flagForce bool

var sendCmd = &cobra.Command{
	Use:   "send \"CODE\"",
	Short: "Send code to the interpreter session",
	Long: `Send the given text to the interpreter session as literal keystrokes
followed by Enter, then wait the settle delay so the interpreter has
probably processed the input before the next read.

A paused session rejects sends; --force bypasses the pause gate (but not
the existence check). Delivery is fire-and-forget — use 'replmux read'
to see what the interpreter did with it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, "send", func(ctx context.Context, cfg *config.Config, ctl *session.Controller) error {
			err := ctl.Send(ctx, args[0], session.SendOptions{
				Forced: flagForce,
				Delay:  cfg.DelayDuration,
				Spacer: cfg.Spacer,
			})
			switch {
			case errors.Is(err, session.ErrSessionNotFound):
				return notFoundErr(ctl.Name)
			case errors.Is(err, session.ErrSessionPaused):
				return fmt.Errorf("session is PAUSED. Use 'replmux resume' to continue or 'replmux send --force' to override")
			case err != nil:
				return err
			}

			if flagForce {
				fmt.Println(theme.Error.Render("FORCE Sent: " + args[0]))
			} else {
				fmt.Println(theme.Info.Render("Sent: " + args[0]))
			}
			return nil
		})
	},
}

func init() {
	sendCmd.Flags().BoolVar(&flagForce, "force", false, "send even if the session is paused")
	rootCmd.AddCommand(sendCmd)
}
