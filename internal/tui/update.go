package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/debatemebro/internal/debate"
	"github.com/Iron-Ham/debatemebro/internal/errors"
)

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.spinner.Tick, textinput.Blink)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		m.refresh()
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case researchDoneMsg:
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) && !errors.Is(msg.err, errors.ErrSessionSuperseded) {
			m.logger.Warn("research simulation ended with error", "session_id", msg.sessionID, "error", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeypress(msg)
	}

	if m.screen == screenTopic {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	m.infoMessage = ""
	m.errorMessage = ""

	if m.screen == screenTopic {
		return m.handleTopicKey(msg)
	}
	return m.handleDebateKey(msg)
}

func (m Model) handleTopicKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m.quit()
	case tea.KeyEnter:
		return m.startDebate(m.input.Value())
	case tea.KeyDown, tea.KeyTab:
		m.cycleSuggestion(1)
		return m, nil
	case tea.KeyUp, tea.KeyShiftTab:
		m.cycleSuggestion(-1)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleDebateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch msg.Type {
	case tea.KeyLeft:
		m.stepPhase(-1)
		return m, nil
	case tea.KeyRight:
		m.stepPhase(1)
		return m, nil
	case tea.KeyTab:
		m.stepCitation(1)
		return m, nil
	case tea.KeyShiftTab:
		m.stepCitation(-1)
		return m, nil
	case tea.KeyEnter:
		m.toggleFocusedCitation()
		return m, nil
	case tea.KeyUp:
		m.scrollBy(-1)
		return m, nil
	case tea.KeyDown:
		m.scrollBy(1)
		return m, nil
	case tea.KeyPgUp:
		m.scrollBy(-m.bodyHeight())
		return m, nil
	case tea.KeyPgDown:
		m.scrollBy(m.bodyHeight())
		return m, nil
	case tea.KeyEsc:
		return m.newTopic()
	}

	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return m, nil
	}
	key := msg.Runes[0]
	switch key {
	case 'q':
		return m.quit()
	case '?':
		m.showHelp = true
	case 'h':
		m.stepPhase(-1)
	case 'l':
		m.stepPhase(1)
	case 'k':
		m.scrollBy(-1)
	case 'j':
		m.scrollBy(1)
	case 'G':
		m.follow = true
	case 'n':
		return m.newTopic()
	case 'r':
		return m.startDebate(m.snap.Topic)
	case 'p':
		m.castVote(debate.SidePro)
	case 'c':
		m.castVote(debate.SideCon)
	default:
		if key >= '1' && key <= '9' {
			m.jumpToPhase(int(key - '1'))
		}
	}
	return m, nil
}

// cycleSuggestion fills the input with the next or previous suggested topic.
func (m *Model) cycleSuggestion(dir int) {
	n := len(m.suggestions)
	if n == 0 {
		return
	}
	next := 0
	if cur := m.selectedSuggestion(); cur >= 0 {
		next = (cur + dir + n) % n
	} else if dir < 0 {
		next = n - 1
	}
	m.input.SetValue(m.suggestions[next])
	m.input.CursorEnd()
}

// startDebate supersedes any running session and starts topic.
func (m Model) startDebate(topic string) (tea.Model, tea.Cmd) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		m.errorMessage = "Enter a topic to start the debate"
		return m, nil
	}

	m.stopResearch()
	sess, err := m.ctl.Start(topic)
	if err != nil {
		m.errorMessage = err.Error()
		m.logger.Error("failed to start debate", "topic", topic, "error", err)
		return m, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.session = sess
	m.cancelResearch = cancel
	m.screen = screenDebate
	m.citationFocus = 0
	m.scroll = 0
	m.follow = true
	m.input.Blur()
	m.refresh()

	return m, runResearch(ctx, m, sess)
}

// newTopic resets the controller and returns to topic entry.
func (m Model) newTopic() (tea.Model, tea.Cmd) {
	m.stopResearch()
	m.ctl.Reset()
	m.session = nil
	m.snap = debate.Snapshot{}
	m.screen = screenTopic
	m.input.SetValue("")
	return m, m.input.Focus()
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.stopResearch()
	m.quitting = true
	return m, tea.Quit
}

func (m *Model) stopResearch() {
	if m.cancelResearch != nil {
		m.cancelResearch()
		m.cancelResearch = nil
	}
}

// stepPhase moves the viewed phase to the previous or next reachable phase
// in the phase bar.
func (m *Model) stepPhase(dir int) {
	if m.session == nil {
		return
	}
	phases := m.navPhases()
	cur := -1
	for i, p := range phases {
		if p.ID == m.snap.ViewPhase {
			cur = i
		}
	}
	if cur < 0 {
		// Viewing an evaluation pause; start from the phase it follows.
		cur = m.navIndexBefore(m.snap.ViewPhase)
		if dir < 0 {
			cur++
		}
	}
	for i := cur + dir; i >= 0 && i < len(phases); i += dir {
		if m.session.SelectPhase(phases[i].ID) {
			m.afterPhaseChange()
			return
		}
	}
}

// navIndexBefore returns the phase bar index of the last visible phase that
// precedes id in the catalog.
func (m Model) navIndexBefore(id debate.PhaseID) int {
	catalog := m.ctl.Catalog()
	at := catalog.Index(id)
	idx := -1
	for i, p := range m.navPhases() {
		if catalog.Index(p.ID) < at {
			idx = i
		}
	}
	return idx
}

func (m *Model) jumpToPhase(i int) {
	phases := m.navPhases()
	if m.session == nil || i >= len(phases) {
		return
	}
	if !m.session.SelectPhase(phases[i].ID) {
		m.infoMessage = phases[i].Label + " has not started yet"
		return
	}
	m.afterPhaseChange()
}

func (m *Model) afterPhaseChange() {
	m.citationFocus = 0
	m.scroll = 0
	m.follow = true
	m.refresh()
}

func (m *Model) stepCitation(dir int) {
	n := len(m.visibleCitations())
	if n == 0 {
		return
	}
	m.citationFocus = (m.citationFocus + dir + n) % n
}

func (m *Model) toggleFocusedCitation() {
	cites := m.visibleCitations()
	if m.session == nil || len(cites) == 0 {
		return
	}
	m.session.ToggleCitation(cites[m.citationFocus])
	m.refresh()
}

func (m *Model) castVote(side debate.Side) {
	if m.session == nil {
		return
	}
	if !m.session.Vote(side) {
		if !m.snap.ResultsShown {
			m.infoMessage = "Voting opens once the judges have scored the debate"
		}
		return
	}
	m.refresh()
}

func (m *Model) scrollBy(n int) {
	m.follow = false
	m.scroll = max(m.scroll+n, 0)
}
