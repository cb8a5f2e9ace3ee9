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

var flagVenv string

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the persistent interpreter session",
	Long: `Start the persistent interpreter session.

If the session already exists this is a no-op that reports its state —
starting twice never creates a second session. The best available Python
front-end is probed automatically (ptpython, ipython, rich-enhanced
python, plain python); --venv pins the interpreter to a virtual
environment instead, failing if the environment does not exist.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, "start", func(ctx context.Context, cfg *config.Config, ctl *session.Controller) error {
			res, err := ctl.Start(ctx, session.StartOptions{VenvPath: flagVenv})
			if err != nil {
				if errors.Is(err, session.ErrEnvNotFound) {
					return fmt.Errorf("%w (check the path passed to --venv)", err)
				}
				return err
			}

			if res.AlreadyExists {
				fmt.Printf("Session %q already exists\n", ctl.Name)
				if res.Paused {
					fmt.Println(theme.Error.Render("Session is PAUSED — use 'replmux resume' to continue"))
				}
				fmt.Printf("Monitor with: %s\n", ctl.Mux.AttachCommand(ctl.Name))
				return nil
			}

			if flagVenv != "" {
				fmt.Println(theme.Info.Render("Using virtual environment: " + flagVenv))
			} else {
				fmt.Println(theme.Info.Render("Using " + res.Flavor + " for the interactive session"))
			}
			fmt.Println(theme.Success.Render(fmt.Sprintf("Started session %q", ctl.Name)))
			fmt.Printf("Monitor with: %s\n", ctl.Mux.AttachCommand(ctl.Name))
			fmt.Printf("Send commands with: replmux send \"your_code\"\n")
			return nil
		})
	},
}

func init() {
	startCmd.Flags().StringVar(&flagVenv, "venv", "", "virtual environment root; python is resolved from its bin/ directory")
	rootCmd.AddCommand(startCmd)
}
