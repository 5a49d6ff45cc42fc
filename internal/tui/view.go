package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/debatemebro/internal/citation"
	"github.com/Iron-Ham/debatemebro/internal/debate"
	"github.com/Iron-Ham/debatemebro/internal/util"
)

// Layout offsets
const (
	// headerHeight is the title line, topic line and phase bar with borders.
	headerHeight = 5
	// footerHeight is the message line and help bar.
	footerHeight = 3
	// columnGap separates side columns.
	columnGap = 1
	// columnChrome is the border plus horizontal padding of a column.
	columnChrome   = 4
	minColumnWidth = 20
)

const streamCursor = "▌"

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}
	if m.screen == screenTopic {
		return m.renderTopicScreen()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderPhaseBar())
	b.WriteString("\n\n")

	if m.showHelp {
		b.WriteString(m.renderHelpPanel())
	} else {
		b.WriteString(m.viewport(m.renderBody()))
	}

	b.WriteString("\n")
	b.WriteString(m.renderMessage())
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderTopicScreen() string {
	s := m.styles
	var b strings.Builder
	b.WriteString(s.Title.Render("DebateMeBro"))
	b.WriteString("\n")
	b.WriteString(s.Subtitle.Render("Two sides research, argue, and steelman any topic, scored by judges on logic, evidence, and intellectual honesty."))
	b.WriteString("\n\n")
	b.WriteString(s.InputBox.Render(m.input.View()))
	b.WriteString("\n")
	if chips := m.renderSuggestions(); chips != "" {
		b.WriteString(chips)
		b.WriteString("\n")
	}
	if m.errorMessage != "" {
		b.WriteString(s.Error.Render(m.errorMessage))
		b.WriteString("\n")
	}
	help := s.HelpKey.Render("enter") + " start  "
	if len(m.suggestions) > 0 {
		help += s.HelpKey.Render("↑/↓") + " suggestions  "
	}
	b.WriteString(s.HelpBar.Render(help + s.HelpKey.Render("esc") + " quit"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}

// renderSuggestions lays the suggested topics out as chips, wrapping rows
// to the terminal width.
func (m Model) renderSuggestions() string {
	if len(m.suggestions) == 0 {
		return ""
	}
	s := m.styles
	limit := max(m.width-4, minColumnWidth)
	selected := m.selectedSuggestion()

	var rows []string
	var row []string
	rowWidth := 0
	for i, topic := range m.suggestions {
		style := s.Suggestion
		if i == selected {
			style = s.SuggestionSelected
		}
		chip := style.Render(util.TruncateANSI(topic, max(limit-4, 10)))
		w := lipgloss.Width(chip)
		if len(row) > 0 && rowWidth+w+1 > limit {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, rowWidth = nil, 0
		}
		if len(row) > 0 {
			row = append(row, " ")
			rowWidth++
		}
		row = append(row, chip)
		rowWidth += w
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

func (m Model) renderHeader() string {
	s := m.styles
	title := s.Title.Render("DebateMeBro")
	status := s.Muted.Render(string(m.snap.Status))
	gap := max(m.width-lipgloss.Width(title)-lipgloss.Width(status), 1)
	topic := util.TruncateANSI(m.snap.Topic, max(m.width, 10))
	return s.Header.Width(max(m.width, 1)).Render(title + strings.Repeat(" ", gap) + status + "\n" + s.Bold.Render(topic))
}

// renderPhaseBar shows every navigable phase with its state: viewed,
// active, complete, or not yet reachable.
func (m Model) renderPhaseBar() string {
	s := m.styles
	var parts []string
	for i, p := range m.navPhases() {
		label := fmt.Sprintf("%d %s %s", i+1, p.Icon, p.Label)
		if m.snap.Complete[p.ID] && p.ID != m.snap.Phase {
			label = fmt.Sprintf("%d ✓ %s", i+1, p.Label)
		}
		var style lipgloss.Style
		switch {
		case p.ID == m.snap.ViewPhase && p.ID != m.snap.Phase:
			style = s.PhaseViewed
		case p.ID == m.snap.Phase:
			style = s.PhaseActive
		case m.snap.Complete[p.ID]:
			style = s.PhaseComplete
		default:
			style = s.PhaseLocked
		}
		parts = append(parts, style.Render(label))
	}
	return util.TruncateANSI(strings.Join(parts, s.Muted.Render("›")), max(m.width, 10))
}

// renderBody renders the viewed phase.
func (m Model) renderBody() string {
	s := m.styles
	var b strings.Builder

	if m.snap.Status == debate.StatusFailed {
		b.WriteString(s.Error.Render("Debate stopped: " + m.snap.FailReason))
		b.WriteString("\n")
		b.WriteString(s.Muted.Render("Press r to retry or n for a new topic."))
		b.WriteString("\n\n")
	}

	catalog := m.ctl.Catalog()
	view, _ := catalog.Phase(m.snap.ViewPhase)

	switch {
	case view.ID == catalog.Initial().ID:
		b.WriteString(m.renderResearch())
	case view.ID == catalog.Terminal().ID:
		b.WriteString(m.renderJudging())
	case view.Internal:
		b.WriteString(m.renderEvaluation(view))
	default:
		b.WriteString(m.renderColumns(view))
	}

	if tr := m.snap.Transition; tr != nil {
		b.WriteString("\n")
		b.WriteString(s.Banner.Render(m.spinner.View() + " " + tr.Message))
	}
	return b.String()
}

func (m Model) renderResearch() string {
	s := m.styles
	var b strings.Builder
	b.WriteString(s.Bold.Render("Research"))
	b.WriteString("\n\n")

	width := m.columnContentWidth(len(m.snap.Sides))
	var cols []string
	for _, side := range m.snap.Sides {
		var c strings.Builder
		c.WriteString(s.Side(side).Render(strings.ToUpper(string(side))))
		if m.snap.ResearchDone[side] {
			c.WriteString(" " + s.PhaseComplete.Render("✓ done"))
		} else {
			c.WriteString(" " + m.spinner.View() + s.Muted.Render(" gathering evidence"))
		}
		c.WriteString("\n")
		if pos := m.snap.Positions[side]; pos != "" {
			c.WriteString(s.Subtitle.Render(util.WrapANSI(pos, width)))
			c.WriteString("\n")
		}
		if m.showResearch {
			c.WriteString("\n")
			for _, q := range m.snap.Research[side] {
				line := fmt.Sprintf("🔍 %s %s", q.Query, s.Muted.Render(fmt.Sprintf("(%d results)", q.Results)))
				c.WriteString(util.WrapANSI(line, width))
				c.WriteString("\n")
			}
		}
		cols = append(cols, s.SideBorder(side).Width(width+2).Render(c.String()))
	}
	b.WriteString(joinColumns(cols))
	return b.String()
}

func (m Model) renderEvaluation(p debate.Phase) string {
	s := m.styles
	msg := p.Message
	if msg == "" {
		msg = p.Label
	}
	width := max(m.width-columnChrome, minColumnWidth)
	return s.Banner.Render(fmt.Sprintf("%s %s %s\n%s", m.spinner.View(), p.Icon, s.Bold.Render(p.Label), util.WrapANSI(msg, width-4)))
}

// renderColumns shows one column per side with its turns in phase p.
func (m Model) renderColumns(p debate.Phase) string {
	s := m.styles
	width := m.columnContentWidth(len(m.snap.Sides))
	focused := m.focusedCitation()

	var cols []string
	for _, side := range m.snap.Sides {
		var c strings.Builder
		c.WriteString(s.Side(side).Render(strings.ToUpper(string(side))))
		c.WriteString("\n")

		turns := m.snap.TurnsFor(p.ID, side)
		for _, ct := range turns {
			c.WriteString(util.WrapANSI(m.renderTurnText(ct, focused), width))
			c.WriteString("\n")
			c.WriteString(m.renderCitationList(ct, focused, width))
		}

		if at := m.snap.ActiveTurn; at != nil && at.Phase == p.ID && at.Side == side {
			c.WriteString(util.WrapANSI(citation.StripPartial(m.snap.Revealed)+s.Cursor.Render(streamCursor), width))
			c.WriteString("\n")
		} else if len(turns) == 0 {
			c.WriteString(s.Muted.Render("Waiting..."))
			c.WriteString("\n")
		}
		cols = append(cols, s.SideBorder(side).Width(width+2).Render(strings.TrimRight(c.String(), "\n")))
	}
	return joinColumns(cols)
}

// renderTurnText styles a completed turn's segments.
func (m Model) renderTurnText(t debate.CompletedTurn, focused debate.CitationRef) string {
	s := m.styles
	var b strings.Builder
	for _, seg := range citation.Parse(t.Text, t.Citations) {
		switch seg.Kind {
		case citation.KindBold:
			b.WriteString(s.Bold.Render(seg.Text))
		case citation.KindCitation:
			ref := debate.CitationRef{Turn: t.Index, ID: seg.Citation.ID}
			if ref == m.snap.ExpandedCitation || ref == focused {
				b.WriteString(s.CitationExpanded.Render(seg.Text))
			} else {
				b.WriteString(s.CitationBadge.Render(seg.Text))
			}
		default:
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}

// renderCitationList lists a turn's sources as badges, with the expanded
// citation's details beneath.
func (m Model) renderCitationList(t debate.CompletedTurn, focused debate.CitationRef, width int) string {
	if len(t.Citations) == 0 {
		return "\n"
	}
	s := m.styles
	var badges []string
	var detail string
	for _, c := range t.Citations {
		badge := citationIcon(c) + " " + c.ID
		ref := debate.CitationRef{Turn: t.Index, ID: c.ID}
		switch {
		case ref == m.snap.ExpandedCitation:
			badges = append(badges, s.CitationExpanded.Render(badge))
			detail = c.Title
			if c.URL != "" {
				detail += "\n" + c.URL
			}
		case ref == focused:
			badges = append(badges, s.CitationExpanded.Render(badge))
		default:
			badges = append(badges, s.CitationBadge.Render(badge))
		}
	}
	out := util.WrapANSI(strings.Join(badges, " "), width) + "\n"
	if detail != "" {
		out += s.CitationDetail.Render(util.WrapANSI(detail, max(width-2, 1))) + "\n"
	}
	return out + "\n"
}

func citationIcon(c debate.Citation) string {
	if c.Type == debate.CitationDocument {
		return "📄"
	}
	return "🌐"
}

func (m Model) focusedCitation() debate.CitationRef {
	cites := m.visibleCitations()
	if len(cites) == 0 || m.citationFocus >= len(cites) {
		return debate.CitationRef{}
	}
	return cites[m.citationFocus]
}

// renderJudging shows the rubric scorecard, the judges' winner and, after
// a vote, the blended result.
func (m Model) renderJudging() string {
	s := m.styles
	r := m.snap.Results
	if r == nil {
		return s.Muted.Render(m.spinner.View() + " Judges are evaluating the debate...")
	}

	var b strings.Builder
	width := max(m.width-2, minColumnWidth)
	b.WriteString(s.Bold.Render("Judges' Scorecard"))
	b.WriteString("\n")
	if r.Verdict != nil && r.Verdict.Panel != "" {
		b.WriteString(s.Muted.Render(util.WrapANSI(r.Verdict.Panel, width)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	labelWidth := 0
	for _, item := range debate.Rubric() {
		labelWidth = max(labelWidth, lipgloss.Width(item.Label)+6)
	}
	for _, item := range debate.Rubric() {
		label := fmt.Sprintf("%s (%d%%)", item.Label, item.Weight)
		b.WriteString(fmt.Sprintf("%-*s", labelWidth, label))
		for _, side := range m.snap.Sides {
			score := r.Scores[side].Get(item.Criterion)
			b.WriteString("  ")
			b.WriteString(s.Side(side).Render(strings.ToUpper(string(side))))
			b.WriteString(" ")
			b.WriteString(m.scoreBar(side, score))
			b.WriteString(fmt.Sprintf(" %d", score))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%-*s", labelWidth, "Weighted total"))
	for _, side := range m.snap.Sides {
		b.WriteString("  ")
		b.WriteString(s.Side(side).Render(fmt.Sprintf("%s %.2f", strings.ToUpper(string(side)), r.Totals[side])))
	}
	b.WriteString("\n\n")

	if r.Winner != "" {
		b.WriteString(s.Winner.Render(fmt.Sprintf("🏆 Judges favor %s", strings.ToUpper(string(r.Winner)))))
	} else {
		b.WriteString(s.Winner.Render("Judges scored it a tie"))
	}
	b.WriteString("\n\n")

	if m.snap.Vote == "" {
		b.WriteString(s.Bold.Render("Who won? "))
		b.WriteString(s.HelpKey.Render("p") + " pro  " + s.HelpKey.Render("c") + " con")
	} else {
		b.WriteString(fmt.Sprintf("Your vote: %s", s.Side(m.snap.Vote).Render(strings.ToUpper(string(m.snap.Vote)))))
		b.WriteString("\n")
		blend := r.Blend(m.snap.Vote)
		for _, side := range m.snap.Sides {
			b.WriteString(fmt.Sprintf("  %s %.0f%%", s.Side(side).Render(strings.ToUpper(string(side))), blend[side]*100))
		}
		b.WriteString("\n")
		b.WriteString(s.Muted.Render(fmt.Sprintf("Blended: %.0f%% judges, %.0f%% you", debate.JudgeShare*100, debate.HumanShare*100)))
	}

	if r.Verdict != nil {
		b.WriteString("\n\n")
		b.WriteString(m.renderVerdict(r.Verdict, width))
	}
	return b.String()
}

// renderVerdict shows the judges' summary and each judge's reasoning.
func (m Model) renderVerdict(v *debate.Verdict, width int) string {
	s := m.styles
	inner := max(width-4, 10)
	var parts []string

	var summary []string
	if v.Headline != "" {
		summary = append(summary, s.VerdictHead.Render(v.Headline))
	}
	if v.Summary != "" {
		summary = append(summary, v.Summary)
	}
	if len(summary) > 0 {
		body := s.Muted.Render("JUDGES' VERDICT") + "\n" + util.WrapANSI(strings.Join(summary, " "), inner)
		parts = append(parts, s.VerdictBox.Render(body))
	}
	for _, j := range v.Judges {
		body := s.Muted.Render("Judge reasoning ("+j.Name+")") + "\n" + util.WrapANSI(j.Reasoning, inner)
		parts = append(parts, s.VerdictBox.Render(body))
	}
	return strings.Join(parts, "\n")
}

func (m Model) scoreBar(side debate.Side, score int) string {
	filled := lipgloss.NewStyle().Foreground(m.styles.SideColor(side)).Render(strings.Repeat("█", score))
	empty := m.styles.ScoreBar.Render(strings.Repeat("░", max(debate.MaxScore-score, 0)))
	return filled + empty
}

func (m Model) renderMessage() string {
	switch {
	case m.errorMessage != "":
		return m.styles.Error.Render("Error: "+m.errorMessage) + "\n"
	case m.infoMessage != "":
		return m.styles.Muted.Render("ℹ "+m.infoMessage) + "\n"
	}
	return "\n"
}

func (m Model) renderHelp() string {
	s := m.styles
	keys := []struct{ key, desc string }{
		{"←/→", "phase"},
		{"tab", "citation"},
		{"enter", "expand"},
		{"j/k", "scroll"},
		{"r", "restart"},
		{"n", "new topic"},
		{"?", "help"},
		{"q", "quit"},
	}
	if m.snap.ResultsShown {
		keys = append([]struct{ key, desc string }{{"p/c", "vote"}}, keys...)
	}
	var parts []string
	for _, k := range keys {
		parts = append(parts, s.HelpKey.Render(k.key)+" "+k.desc)
	}
	return s.HelpBar.Render(util.TruncateANSI(strings.Join(parts, "  "), max(m.width, 10)))
}

func (m Model) renderHelpPanel() string {
	s := m.styles
	lines := []string{
		s.Bold.Render("Keys"),
		"",
		s.HelpKey.Render("←/→ h/l") + "   previous/next phase you have reached",
		s.HelpKey.Render("1-9") + "       jump to a phase",
		s.HelpKey.Render("tab") + "       focus the next citation in this phase",
		s.HelpKey.Render("enter") + "     expand or collapse the focused citation",
		s.HelpKey.Render("j/k ↑/↓") + "   scroll, " + s.HelpKey.Render("G") + " to follow the debate again",
		s.HelpKey.Render("p/c") + "       vote once judging is done",
		s.HelpKey.Render("r") + "         restart this topic",
		s.HelpKey.Render("n/esc") + "     new topic",
		s.HelpKey.Render("q") + "         quit",
		"",
		s.Muted.Render("Press any key to close."),
	}
	return strings.Join(lines, "\n")
}

// columnContentWidth returns the text width inside each of n side columns.
func (m Model) columnContentWidth(n int) int {
	if m.columnWidth > 0 {
		return max(m.columnWidth-columnChrome, minColumnWidth)
	}
	n = max(n, 1)
	total := m.width - (n-1)*columnGap
	return max(total/n-columnChrome, minColumnWidth)
}

func (m Model) bodyHeight() int {
	return max(m.height-headerHeight-footerHeight, 3)
}

// viewport clips body to the available height, honoring the scroll
// position or following the newest lines.
func (m Model) viewport(body string) string {
	lines := strings.Split(body, "\n")
	h := m.bodyHeight()
	if len(lines) <= h {
		return body
	}
	maxOffset := len(lines) - h
	offset := min(m.scroll, maxOffset)
	if m.follow {
		offset = maxOffset
	}
	return strings.Join(lines[offset:offset+h], "\n")
}

func joinColumns(cols []string) string {
	if len(cols) == 0 {
		return ""
	}
	spaced := make([]string, 0, len(cols)*2-1)
	for i, c := range cols {
		if i > 0 {
			spaced = append(spaced, strings.Repeat(" ", columnGap))
		}
		spaced = append(spaced, c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, spaced...)
}
