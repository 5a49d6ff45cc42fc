package tui

import (
	"context"
	"slices"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/Iron-Ham/debatemebro/internal/debate"
	"github.com/Iron-Ham/debatemebro/internal/logging"
	"github.com/Iron-Ham/debatemebro/internal/research"
	"github.com/Iron-Ham/debatemebro/internal/tui/styles"
)

// screen selects which top-level view is shown.
type screen int

const (
	screenTopic screen = iota
	screenDebate
)

// Options configures the UI.
type Options struct {
	Theme        string
	ColumnWidth  int  // Zero splits the terminal evenly between sides
	ShowResearch bool // Show the query log during the research phase
	Topic        string
	Suggestions  []string // Topics offered on the topic screen
	Simulator    *research.Simulator
	Logger       *logging.Logger
}

// Model is the Bubbletea model for a staged debate.
type Model struct {
	ctl    *debate.Controller
	sim    *research.Simulator
	styles *styles.Styles
	logger *logging.Logger

	columnWidth  int
	showResearch bool

	width  int
	height int
	ready  bool

	screen      screen
	input       textinput.Model
	suggestions []string
	spinner     spinner.Model

	session        *debate.Session
	snap           debate.Snapshot
	cancelResearch context.CancelFunc

	// citationFocus indexes the citations visible in the viewed phase.
	citationFocus int

	// Body scrolling. When follow is set the newest lines stay in view.
	scroll int
	follow bool

	showHelp     bool
	errorMessage string
	infoMessage  string
	quitting     bool
}

// NewModel creates the model. A nil simulator uses the default timings.
func NewModel(ctl *debate.Controller, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter a debate topic..."
	ti.CharLimit = 200
	ti.Width = 60
	ti.SetValue(opts.Topic)
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	sim := opts.Simulator
	if sim == nil {
		sim = research.NewSimulator(research.DefaultQueryInterval, research.DefaultFinishDelay)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}

	return Model{
		ctl:          ctl,
		sim:          sim,
		styles:       styles.ForTheme(opts.Theme),
		logger:       logger,
		columnWidth:  opts.ColumnWidth,
		showResearch: opts.ShowResearch,
		screen:       screenTopic,
		input:        ti,
		suggestions:  opts.Suggestions,
		spinner:      sp,
		follow:       true,
	}
}

// Session returns the session the UI is showing, if any.
func (m Model) Session() *debate.Session {
	return m.session
}

// Snapshot returns the most recent session snapshot.
func (m Model) Snapshot() debate.Snapshot {
	return m.snap
}

// refresh re-reads session state.
func (m *Model) refresh() {
	if m.session == nil {
		return
	}
	m.snap = m.session.Snapshot()
	if n := len(m.visibleCitations()); m.citationFocus >= n {
		m.citationFocus = max(n-1, 0)
	}
}

// visibleCitations lists the citations of completed turns in the viewed
// phase, in turn order. Ids repeat across turns, so each entry is keyed by
// its turn as well.
func (m Model) visibleCitations() []debate.CitationRef {
	var out []debate.CitationRef
	for _, ct := range m.snap.TurnsFor(m.snap.ViewPhase, "") {
		for _, c := range ct.Citations {
			ref := debate.CitationRef{Turn: ct.Index, ID: c.ID}
			if !slices.Contains(out, ref) {
				out = append(out, ref)
			}
		}
	}
	return out
}

// navPhases returns the catalog phases shown in the phase bar. Internal
// evaluation phases are pauses, not destinations.
func (m Model) navPhases() []debate.Phase {
	var out []debate.Phase
	for _, p := range m.ctl.Catalog().Phases() {
		if !p.Internal {
			out = append(out, p)
		}
	}
	return out
}

// selectedSuggestion returns the index of the suggestion the input holds,
// or -1.
func (m Model) selectedSuggestion() int {
	return slices.Index(m.suggestions, m.input.Value())
}
