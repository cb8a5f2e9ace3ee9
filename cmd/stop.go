package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/timvw/replmux/internal/config"
	"github.com/timvw/replmux/internal/session"
	"github.com/timvw/replmux/internal/theme"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the session and clean up its metadata",
	Long: `Exit the interpreter, kill the tmux session, and remove the metadata
file. Every step is best-effort so cleanup always completes as far as
possible; stopping an absent session is a success.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, "stop", func(ctx context.Context, cfg *config.Config, ctl *session.Controller) error {
			if err := ctl.Stop(ctx); err != nil {
				return err
			}
			fmt.Println(theme.Success.Render(fmt.Sprintf("Stopped session %q", ctl.Name)))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)
}
