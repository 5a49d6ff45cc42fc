package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Iron-Ham/debatemebro/internal/citation"
	"github.com/Iron-Ham/debatemebro/internal/debate"
	"github.com/Iron-Ham/debatemebro/internal/event"
	"github.com/Iron-Ham/debatemebro/internal/research"
	"github.com/Iron-Ham/debatemebro/internal/schedule"
	"github.com/Iron-Ham/debatemebro/internal/util"
)

const defaultReplayWidth = 80

var replayCmd = &cobra.Command{
	Use:   "replay [topic]",
	Short: "Print a debate to the terminal without the interactive UI",
	Long: `Stage a debate headlessly and print each turn as it completes.

By default the configured pacing plays out in real time. Use --instant to
print the whole debate immediately, and --stream to print turns as they
are revealed instead of once they finish.

--stall-side keeps one side from ever finishing its research, so the
debate stops at the configured research timeout. With --instant the
timeout fires as soon as the other side is done.`,
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().Bool("instant", false, "skip all pauses and reveal delays")
	replayCmd.Flags().Bool("stream", false, "print turn text as it is revealed")
	replayCmd.Flags().String("vote", "", "cast a vote for a side once judging is done")
	replayCmd.Flags().Int("width", 0, "wrap width (default: terminal width, or 80)")
	replayCmd.Flags().String("stall-side", "", "never finish research for this side")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	instant, _ := cmd.Flags().GetBool("instant")
	stream, _ := cmd.Flags().GetBool("stream")
	vote, _ := cmd.Flags().GetString("vote")
	width, _ := cmd.Flags().GetInt("width")
	stall, _ := cmd.Flags().GetString("stall-side")

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	topic := rt.topic(args)
	var simOpts []research.Option
	timeout := rt.cfg.DebatePacing().ResearchTimeout
	if stall != "" {
		if err := checkStallSide(rt, topic, debate.Side(stall), timeout); err != nil {
			return err
		}
		simOpts = append(simOpts, research.WithStalledSide(debate.Side(stall)))
	}

	var clock *schedule.Manual
	var ctl *debate.Controller
	sim := rt.simulator(simOpts...)
	if instant {
		pacing := debate.Instant()
		if stall != "" {
			pacing.ResearchTimeout = timeout
		}
		clock = schedule.NewManual()
		ctl, err = rt.controller(debate.WithScheduler(clock), debate.WithPacing(pacing))
		sim = instantSimulator(rt, simOpts...)
	} else {
		ctl, err = rt.controller()
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	p := newReplayPrinter(out, ctl, replayWidth(out, width), stream)
	p.attach(ctl.Bus())

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sess, err := runHeadless(ctx, ctl, sim, clock, topic)
	if err != nil {
		return err
	}

	if err := sess.Err(); err != nil {
		return fmt.Errorf("debate failed: %w", err)
	}
	snap := sess.Snapshot()
	if vote != "" {
		if !sess.Vote(debate.Side(vote)) {
			return fmt.Errorf("cannot vote for %q", vote)
		}
		snap = sess.Snapshot()
	}
	p.results(snap)
	return nil
}

// checkStallSide rejects a stall that could never resolve: a side the
// debate does not have, or a disabled research timeout.
func checkStallSide(rt *runtime, topic string, side debate.Side, timeout time.Duration) error {
	if timeout <= 0 {
		return fmt.Errorf("--stall-side needs research.timeout_seconds above zero")
	}
	plan, err := rt.source.Plan(topic)
	if err != nil {
		return err
	}
	if !slices.Contains(plan.Participants(), side) {
		return fmt.Errorf("--stall-side: %q is not a side in this debate (sides: %v)", side, plan.Participants())
	}
	return nil
}

// replayWidth picks the wrap width: the flag, then the terminal, then 80.
func replayWidth(w io.Writer, flagWidth int) int {
	if flagWidth > 0 {
		return flagWidth
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			return tw
		}
	}
	return defaultReplayWidth
}

// replayPrinter writes debate events as plain text.
type replayPrinter struct {
	mu     sync.Mutex
	w      io.Writer
	ctl    *debate.Controller
	width  int
	stream bool

	plan  *debate.Plan
	bold  lipgloss.Style
	label lipgloss.Style
}

func newReplayPrinter(w io.Writer, ctl *debate.Controller, width int, stream bool) *replayPrinter {
	return &replayPrinter{
		w:      w,
		ctl:    ctl,
		width:  width,
		stream: stream,
		bold:   lipgloss.NewStyle().Bold(true),
		label:  lipgloss.NewStyle().Bold(true).Underline(true),
	}
}

func (p *replayPrinter) attach(bus *event.Bus) {
	bus.SubscribeAll(p.handle)
}

func (p *replayPrinter) handle(e event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch e := e.(type) {
	case event.SessionStartedEvent:
		if sess := p.ctl.Current(); sess != nil && sess.ID() == e.SessionID {
			p.plan = sess.Plan()
		}
		fmt.Fprintf(p.w, "%s\n\n", p.label.Render(e.Topic))
	case event.ResearchQueryEvent:
		fmt.Fprintf(p.w, "  [%s] 🔍 %s (%d results)\n", strings.ToUpper(e.Side), e.Query, e.Results)
	case event.ResearchSideCompletedEvent:
		fmt.Fprintf(p.w, "  [%s] research done\n", strings.ToUpper(e.Side))
	case event.PhaseChangedEvent:
		ph, _ := p.ctl.Catalog().Phase(debate.PhaseID(e.To))
		if ph.Internal {
			fmt.Fprintf(p.w, "\n%s %s\n", ph.Icon, util.WrapANSI(ph.Message, p.width))
			return
		}
		fmt.Fprintf(p.w, "\n%s\n", p.label.Render(strings.TrimSpace(ph.Icon+" "+ph.Label)))
	case event.TurnStartedEvent:
		fmt.Fprintf(p.w, "\n%s\n", p.bold.Render(strings.ToUpper(e.Side)))
	case event.TurnProgressEvent:
		if p.stream {
			fmt.Fprint(p.w, e.Delta)
		}
	case event.TurnCompletedEvent:
		p.turnCompleted(e)
	case event.SessionFailedEvent:
		fmt.Fprintf(p.w, "\nDebate stopped: %s\n", e.Reason)
	}
}

func (p *replayPrinter) turnCompleted(e event.TurnCompletedEvent) {
	if p.plan == nil || e.Index < 0 || e.Index >= len(p.plan.Turns) {
		if p.stream {
			fmt.Fprintln(p.w)
		}
		return
	}
	t := p.plan.Turns[e.Index]
	if p.stream {
		fmt.Fprintln(p.w)
	} else {
		var b strings.Builder
		for _, seg := range citation.Parse(t.Text, t.Citations) {
			if seg.Kind == citation.KindBold {
				b.WriteString(p.bold.Render(seg.Text))
			} else {
				b.WriteString(seg.Text)
			}
		}
		fmt.Fprintln(p.w, util.WrapANSI(b.String(), p.width))
	}
	for _, c := range t.Citations {
		line := fmt.Sprintf("  [%s] %s", c.ID, c.Title)
		if c.URL != "" {
			line += " <" + c.URL + ">"
		}
		fmt.Fprintln(p.w, util.TruncateANSI(line, p.width))
	}
}

// results prints the judges' totals and, after a vote, the blend.
func (p *replayPrinter) results(snap debate.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	r := snap.Results
	if r == nil {
		return
	}
	fmt.Fprintf(p.w, "\n%s\n", p.label.Render("Judges' Scorecard"))
	for _, item := range debate.Rubric() {
		fmt.Fprintf(p.w, "%-28s", fmt.Sprintf("%s (%d%%)", item.Label, item.Weight))
		for _, side := range snap.Sides {
			fmt.Fprintf(p.w, "  %s %d/%d", strings.ToUpper(string(side)), r.Scores[side].Get(item.Criterion), debate.MaxScore)
		}
		fmt.Fprintln(p.w)
	}
	fmt.Fprintf(p.w, "%-28s", "Weighted total")
	for _, side := range snap.Sides {
		fmt.Fprintf(p.w, "  %s %.2f", strings.ToUpper(string(side)), r.Totals[side])
	}
	fmt.Fprintln(p.w)

	if r.Winner != "" {
		fmt.Fprintf(p.w, "\nJudges favor %s\n", strings.ToUpper(string(r.Winner)))
	} else {
		fmt.Fprintln(p.w, "\nJudges scored it a tie")
	}
	if v := r.Verdict; v != nil {
		if v.Panel != "" {
			fmt.Fprintln(p.w, util.WrapANSI(v.Panel, p.width))
		}
		fmt.Fprintf(p.w, "\n%s\n", p.label.Render("Verdict"))
		var parts []string
		if v.Headline != "" {
			parts = append(parts, p.bold.Render(v.Headline))
		}
		if v.Summary != "" {
			parts = append(parts, v.Summary)
		}
		if len(parts) > 0 {
			fmt.Fprintln(p.w, util.WrapANSI(strings.Join(parts, " "), p.width))
		}
		for _, j := range v.Judges {
			fmt.Fprintf(p.w, "\n%s\n%s\n", p.label.Render("Judge reasoning ("+j.Name+")"), util.WrapANSI(j.Reasoning, p.width))
		}
		fmt.Fprintln(p.w)
	}

	if snap.Vote == "" {
		return
	}
	blend := r.Blend(snap.Vote)
	fmt.Fprintf(p.w, "Your vote: %s\n", strings.ToUpper(string(snap.Vote)))
	for _, side := range snap.Sides {
		fmt.Fprintf(p.w, "Blended %s: %.0f%%\n", strings.ToUpper(string(side)), blend[side]*100)
	}
}
