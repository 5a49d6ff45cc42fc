// Package styles holds the lipgloss styles and color themes of the debate UI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/debatemebro/internal/debate"
)

// Styles is the full style set derived from one palette.
type Styles struct {
	Palette *Palette

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Header   lipgloss.Style
	Text     lipgloss.Style
	Bold     lipgloss.Style
	Muted    lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style

	// Phase bar
	PhaseActive   lipgloss.Style
	PhaseComplete lipgloss.Style
	PhaseLocked   lipgloss.Style
	PhaseViewed   lipgloss.Style

	// Debate body
	Column           lipgloss.Style
	Cursor           lipgloss.Style
	CitationBadge    lipgloss.Style
	CitationExpanded lipgloss.Style
	CitationDetail   lipgloss.Style
	Banner           lipgloss.Style

	// Judging
	ScoreBar    lipgloss.Style
	Winner      lipgloss.Style
	VerdictBox  lipgloss.Style
	VerdictHead lipgloss.Style

	// Topic input
	InputBox           lipgloss.Style
	Suggestion         lipgloss.Style
	SuggestionSelected lipgloss.Style

	HelpBar lipgloss.Style
	HelpKey lipgloss.Style
}

// New builds the styles for p.
func New(p *Palette) *Styles {
	return &Styles{
		Palette: p,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(p.Border).
			PaddingBottom(0),
		Text:    lipgloss.NewStyle().Foreground(p.Text),
		Bold:    lipgloss.NewStyle().Foreground(p.Text).Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(p.Muted),
		Warning: lipgloss.NewStyle().Foreground(p.Warning),
		Error:   lipgloss.NewStyle().Foreground(p.Error).Bold(true),

		PhaseActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text).
			Background(p.Primary).
			Padding(0, 1),
		PhaseComplete: lipgloss.NewStyle().
			Foreground(p.Secondary).
			Padding(0, 1),
		PhaseLocked: lipgloss.NewStyle().
			Foreground(p.Border).
			Padding(0, 1),
		PhaseViewed: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Secondary).
			Underline(true).
			Padding(0, 1),

		Column: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		Cursor: lipgloss.NewStyle().
			Foreground(p.Pro).
			Blink(true),
		CitationBadge: lipgloss.NewStyle().
			Foreground(p.Citation),
		CitationExpanded: lipgloss.NewStyle().
			Foreground(p.Surface).
			Background(p.Citation).
			Bold(true),
		CitationDetail: lipgloss.NewStyle().
			Foreground(p.Citation).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(p.Citation).
			PaddingLeft(1),
		Banner: lipgloss.NewStyle().
			Foreground(p.Warning).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Warning).
			Padding(0, 2),

		ScoreBar: lipgloss.NewStyle().Foreground(p.Muted),
		Winner: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Winner),
		VerdictBox: lipgloss.NewStyle().
			Foreground(p.Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		VerdictHead: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Winner),

		InputBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary).
			Padding(0, 1),
		Suggestion: lipgloss.NewStyle().
			Foreground(p.Muted).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		SuggestionSelected: lipgloss.NewStyle().
			Foreground(p.Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary).
			Padding(0, 1),

		HelpBar: lipgloss.NewStyle().
			Foreground(p.Muted).
			MarginTop(1),
		HelpKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Secondary),
	}
}

// ForTheme builds the styles for a theme name. Unknown names use the
// default palette.
func ForTheme(name string) *Styles {
	return New(GetPalette(ThemeName(name)))
}

// SideColor returns the accent color for side.
func (s *Styles) SideColor(side debate.Side) lipgloss.Color {
	switch side {
	case debate.SidePro:
		return s.Palette.Pro
	case debate.SideCon:
		return s.Palette.Con
	default:
		return s.Palette.Primary
	}
}

// Side returns a bold foreground style in side's color.
func (s *Styles) Side(side debate.Side) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(s.SideColor(side))
}

// SideBorder returns the column style with side's border color.
func (s *Styles) SideBorder(side debate.Side) lipgloss.Style {
	return s.Column.BorderForeground(s.SideColor(side))
}
