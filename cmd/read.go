package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/timvw/replmux/internal/config"
	"github.com/timvw/replmux/internal/session"
)

var readCmd = &cobra.Command{
	Use:   "read [LINES]",
	Short: "Read recent session output",
	Long: `Capture the last LINES lines of the session's scrollback (default 50)
and print them verbatim. The output is opaque text — no parsing, no
filtering. Capture is non-destructive; reading never disturbs the
running interpreter.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, "read", func(ctx context.Context, cfg *config.Config, ctl *session.Controller) error {
			lines := cfg.Lines
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n <= 0 {
					return fmt.Errorf("invalid line count %q", args[0])
				}
				lines = n
			}

			out, err := ctl.Read(ctx, lines)
			if errors.Is(err, session.ErrSessionNotFound) {
				return notFoundErr(ctl.Name)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(os.Stdout, out)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
}
