package export

import (
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"github.com/Iron-Ham/debatemebro/internal/debate"
)

// MarkdownExporter writes a readable transcript. Turn text is emitted as is:
// its bold spans are already Markdown and citation markers are listed as
// sources beneath each turn.
type MarkdownExporter struct{}

// Export implements Exporter.
func (e *MarkdownExporter) Export(t *Transcript, w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t.Topic)
	fmt.Fprintf(&b, "**Session:** %s  \n", t.SessionID)
	fmt.Fprintf(&b, "**Status:** %s\n\n", t.Status)

	if len(t.Positions) > 0 {
		b.WriteString("## Positions\n\n")
		for _, side := range sortedSides(t.Positions) {
			fmt.Fprintf(&b, "- **%s:** %s\n", sideTitle(side), t.Positions[side])
		}
		b.WriteString("\n")
	}

	if len(t.Research) > 0 {
		b.WriteString("## Research\n\n")
		for _, side := range sortedSides(t.Research) {
			fmt.Fprintf(&b, "### %s\n\n", sideTitle(side))
			for _, q := range t.Research[side] {
				fmt.Fprintf(&b, "- %s (%d results)\n", q.Query, q.Results)
			}
			b.WriteString("\n")
		}
	}

	var lastPhase debate.PhaseID
	for _, turn := range t.Turns {
		if turn.Phase != lastPhase {
			fmt.Fprintf(&b, "## %s\n\n", turn.PhaseLabel)
			lastPhase = turn.Phase
		}
		fmt.Fprintf(&b, "### %s\n\n%s\n\n", sideTitle(turn.Side), turn.Text)
		if len(turn.Citations) > 0 {
			b.WriteString("**Sources:**\n\n")
			for _, c := range turn.Citations {
				if c.URL != "" {
					fmt.Fprintf(&b, "- [%s] [%s](%s)\n", c.ID, c.Title, c.URL)
				} else {
					fmt.Fprintf(&b, "- [%s] %s\n", c.ID, c.Title)
				}
			}
			b.WriteString("\n")
		}
	}

	if r := t.Results; r != nil {
		writeScorecard(&b, r)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Extension implements Exporter.
func (e *MarkdownExporter) Extension() string { return "md" }

func writeScorecard(b *strings.Builder, r *ResultsRecord) {
	sides := sortedSides(r.Totals)

	b.WriteString("## Judging\n\n| Criterion |")
	for _, side := range sides {
		fmt.Fprintf(b, " %s |", sideTitle(side))
	}
	b.WriteString("\n|---|")
	for range sides {
		b.WriteString("---|")
	}
	b.WriteString("\n")

	for _, item := range debate.Rubric() {
		fmt.Fprintf(b, "| %s (%d%%) |", item.Label, item.Weight)
		for _, side := range sides {
			fmt.Fprintf(b, " %d/%d |", r.Scores[side].Get(item.Criterion), debate.MaxScore)
		}
		b.WriteString("\n")
	}
	b.WriteString("| **Weighted** |")
	for _, side := range sides {
		fmt.Fprintf(b, " **%.2f** |", r.Totals[side])
	}
	b.WriteString("\n\n")

	if r.Winner != "" {
		fmt.Fprintf(b, "**Judges' winner:** %s\n\n", sideTitle(r.Winner))
	} else {
		b.WriteString("**Judges' winner:** tie\n\n")
	}
	if r.Vote != "" {
		fmt.Fprintf(b, "**Your vote:** %s\n\n", sideTitle(r.Vote))
		for _, side := range sides {
			fmt.Fprintf(b, "- %s blended: %.0f%%\n", sideTitle(side), r.Blended[side]*100)
		}
		b.WriteString("\n")
	}
	if v := r.Verdict; v != nil {
		writeVerdict(b, v)
	}
}

func writeVerdict(b *strings.Builder, v *debate.Verdict) {
	b.WriteString("## Verdict\n\n")
	if v.Panel != "" {
		fmt.Fprintf(b, "_%s_\n\n", v.Panel)
	}
	switch {
	case v.Headline != "" && v.Summary != "":
		fmt.Fprintf(b, "**%s** %s\n\n", v.Headline, v.Summary)
	case v.Headline != "":
		fmt.Fprintf(b, "**%s**\n\n", v.Headline)
	case v.Summary != "":
		fmt.Fprintf(b, "%s\n\n", v.Summary)
	}
	for _, j := range v.Judges {
		fmt.Fprintf(b, "### %s\n\n%s\n\n", j.Name, j.Reasoning)
	}
}

func sideTitle(s debate.Side) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// sortedSides orders the default sides first, then the rest by name.
func sortedSides[V any](m map[debate.Side]V) []debate.Side {
	rank := func(s debate.Side) int {
		if i := slices.Index(debate.DefaultSides(), s); i >= 0 {
			return i
		}
		return len(debate.DefaultSides())
	}
	sides := make([]debate.Side, 0, len(m))
	for s := range m {
		sides = append(sides, s)
	}
	sort.Slice(sides, func(i, j int) bool {
		if ri, rj := rank(sides[i]), rank(sides[j]); ri != rj {
			return ri < rj
		}
		return sides[i] < sides[j]
	})
	return sides
}
