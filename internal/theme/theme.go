// Package theme defines the CLI output styles and the cosmetic tmux
// option palette applied to new sessions.
package theme

import "github.com/charmbracelet/lipgloss"

// Styles for terminal diagnostics, matching ANSI color conventions:
// blue for commands/info, green for success, red for errors, yellow for
// warnings and status.
var (
	Info    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	Success = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	Error   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	Warn    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	Bold    = lipgloss.NewStyle().Bold(true)
	Dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// SessionPalette is the fixed set of tmux display options applied to a
// freshly created session: a blue status bar with green accents so a
// shared session is recognizable at a glance. Each entry is applied
// best-effort; older tmux versions reject some of them.
var SessionPalette = [][2]string{
	{"status-style", "bg=colour24,fg=colour15"},
	{"status-left-style", "bg=colour24,fg=colour15,bold"},
	{"status-right-style", "bg=colour24,fg=colour15"},

	{"window-status-style", "bg=colour24,fg=colour15"},
	{"window-status-current-style", "bg=colour28,fg=colour15,bold"},
	{"window-status-activity-style", "bg=colour196,fg=colour15"},
	{"window-status-bell-style", "bg=colour196,fg=colour15,bold"},

	{"pane-border-style", "fg=colour240"},
	{"pane-active-border-style", "fg=colour28"},

	{"message-style", "bg=colour28,fg=colour15,bold"},
	{"message-command-style", "bg=colour24,fg=colour15,bold"},

	{"mode-style", "bg=colour24,fg=colour15,bold"},

	{"clock-mode-colour", "colour28"},
}
