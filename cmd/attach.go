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

var attachCmd = &cobra.Command{
	Use:   "attach",
	Short: "Print the command to watch the session live",
	Long: `Print the tmux command a human runs to watch the session in real
time. Nothing is executed and no state changes; the session must exist.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, "attach", func(ctx context.Context, cfg *config.Config, ctl *session.Controller) error {
			attach, err := ctl.AttachCommand(ctx)
			if errors.Is(err, session.ErrSessionNotFound) {
				return notFoundErr(ctl.Name)
			}
			if err != nil {
				return err
			}

			fmt.Println(theme.Warn.Render(fmt.Sprintf("To monitor session %q in real-time:", ctl.Name)))
			fmt.Printf("   %s\n\n", attach)
			fmt.Println(theme.Warn.Render("In the tmux session:"))
			fmt.Println("   Ctrl+B, D  - Detach (leave session running)")
			fmt.Println("   Ctrl+C     - Interrupt current command")
			fmt.Println("   exit()     - Exit Python (will end session)")
			fmt.Println()
			fmt.Println(theme.Info.Render("Anyone attached sees the same interpreter."))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(attachCmd)
}
