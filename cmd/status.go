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

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show session health, metadata, and recent output",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(cmd, "status", func(ctx context.Context, cfg *config.Config, ctl *session.Controller) error {
			report, err := ctl.Status(ctx)
			if errors.Is(err, session.ErrSessionNotFound) {
				return notFoundErr(ctl.Name)
			}
			if err != nil {
				return err
			}

			fmt.Println(theme.Warn.Render("Session: " + report.Name))
			if report.Record.Paused {
				fmt.Println(theme.Warn.Render("Status: Paused"))
			} else {
				fmt.Println(theme.Warn.Render("Status: Active"))
			}
			if !report.Record.CreatedAt.IsZero() {
				fmt.Println(theme.Warn.Render("Created: " + report.Record.CreatedAt.Format("Mon Jan 2 15:04:05 2006")))
			}
			if report.Record.WorkingDir != "" {
				fmt.Println(theme.Warn.Render("Working Dir: " + report.Record.WorkingDir))
			}
			if report.Record.VenvPath != "" {
				fmt.Println(theme.Warn.Render("Venv: " + report.Record.VenvPath))
			}

			fmt.Println("\n--- Recent Output ---")
			fmt.Println(report.Recent)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
