// Package tui provides the terminal user interface for debatemebro.
package tui

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/debatemebro/internal/debate"
)

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	model   Model
}

// New creates a new TUI application
func New(ctl *debate.Controller, opts Options) *App {
	return &App{model: NewModel(ctl, opts)}
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	a.program = tea.NewProgram(
		a.model,
		tea.WithAltScreen(),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		if _, ok := <-sigChan; ok && a.program != nil {
			a.program.Send(tea.Quit())
		}
	}()

	final, err := a.program.Run()

	signal.Stop(sigChan)
	close(sigChan)

	if m, ok := final.(Model); ok {
		m.stopResearch()
	}
	return err
}

// Messages

type tickMsg time.Time

// researchDoneMsg reports the end of a simulator run.
type researchDoneMsg struct {
	sessionID string
	err       error
}

// Commands

const refreshInterval = 100 * time.Millisecond

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// runResearch plays the session's research in the background.
func runResearch(ctx context.Context, m Model, sess *debate.Session) tea.Cmd {
	sim := m.sim
	return func() tea.Msg {
		err := sim.Run(ctx, sess, sess.Plan())
		return researchDoneMsg{sessionID: sess.ID(), err: err}
	}
}
