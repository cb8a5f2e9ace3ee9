// Package watch provides a live terminal viewer for one session's
// scrollback: periodic capture into a scrollable viewport, with
// pause/resume keybindings. Reading is non-destructive, so any number of
// watchers can run alongside other callers.
package watch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/timvw/replmux/internal/session"
)

// Styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	pausedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// messages
type tickMsg struct{}

type captureMsg struct {
	content string
	paused  bool
	err     error
}

// TUI runs the live session viewer.
type TUI struct {
	Controller *session.Controller
	Refresh    time.Duration // 0 means 2s
	Lines      int           // capture depth; 0 means 200
}

// Run starts the viewer and blocks until it exits.
func (t *TUI) Run(ctx context.Context) error {
	refresh := t.Refresh
	if refresh == 0 {
		refresh = 2 * time.Second
	}
	lines := t.Lines
	if lines == 0 {
		lines = 200
	}

	m := &model{
		ctx:        ctx,
		controller: t.Controller,
		refresh:    refresh,
		lines:      lines,
		viewport:   viewport.New(80, 24),
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

type model struct {
	ctx        context.Context
	controller *session.Controller
	refresh    time.Duration
	lines      int

	viewport viewport.Model
	ready    bool

	paused   bool
	lastErr  error
	captures int

	width  int
	height int
}

func (m *model) Init() tea.Cmd {
	return m.capture()
}

// capture reads the scrollback and the persisted paused flag off the
// main loop.
func (m *model) capture() tea.Cmd {
	return func() tea.Msg {
		content, err := m.controller.Read(m.ctx, m.lines)
		paused := m.controller.Store.Load(m.controller.Name).Paused
		return captureMsg{content: content, paused: paused, err: err}
	}
}

func (m *model) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// One line of header, one of footer.
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 2
		m.ready = true
		return m, nil

	case tickMsg:
		return m, m.capture()

	case captureMsg:
		m.captures++
		m.lastErr = msg.err
		m.paused = msg.paused
		if msg.err == nil {
			atBottom := m.viewport.AtBottom()
			m.viewport.SetContent(msg.content)
			if atBottom {
				m.viewport.GotoBottom()
			}
		}
		return m, m.tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "p":
			err := m.controller.Pause(m.ctx)
			if err != nil {
				m.lastErr = err
				return m, nil
			}
			m.paused = true
			return m, nil
		case "r":
			err := m.controller.Resume(m.ctx)
			if err != nil {
				m.lastErr = err
				return m, nil
			}
			m.paused = false
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	if !m.ready {
		return "loading..."
	}

	state := activeStyle.Render("ACTIVE")
	if m.paused {
		state = pausedStyle.Render("PAUSED")
	}
	header := fmt.Sprintf("%s %s  %s",
		titleStyle.Render("replmux"),
		dimStyle.Render(m.controller.Name),
		state)

	footer := dimStyle.Render("q quit · p pause · r resume · ↑/↓ scroll")
	if m.lastErr != nil {
		footer = errorStyle.Render(m.lastErr.Error())
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(footer)
	return b.String()
}
