package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/timvw/replmux/internal/meta"
	"github.com/timvw/replmux/internal/mux"
	"github.com/timvw/replmux/internal/setup"
	"github.com/timvw/replmux/internal/theme"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "One-time environment preparation",
	Long: `Verify the tmux dependency, probe server permissions, and write the
command documentation under the config directory. Idempotent: running
setup again only re-checks. After a successful setup, 'replmux start'
can succeed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(theme.Info.Render("Setting up replmux..."))

		steps := setup.Run(cmd.Context(), mux.NewTmux(), meta.DefaultPaths())
		for _, s := range steps {
			switch {
			case s.OK && s.Note != "":
				fmt.Println(theme.Success.Render("OK: "+s.Name) + " (" + s.Note + ")")
			case s.OK:
				fmt.Println(theme.Success.Render("OK: " + s.Name))
			default:
				fmt.Println(theme.Error.Render("FAILED: " + s.Name))
				if s.Note != "" {
					fmt.Println("   " + s.Note)
				}
			}
		}

		if !setup.Succeeded(steps) {
			os.Exit(1)
		}

		fmt.Println()
		fmt.Println(theme.Success.Render("Setup complete!"))
		fmt.Println("Start a session with: replmux start")
		return nil
	},
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install agent slash-command scaffolding in the current project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(theme.Info.Render("Installing replmux commands in current project..."))

		written, err := setup.Install(".")
		for _, path := range written {
			fmt.Println(theme.Success.Render("Created " + path))
		}
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(theme.Success.Render("Installation complete!"))
		fmt.Println(theme.Warn.Render("Documentation: .claude/README.md"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(installCmd)
}
