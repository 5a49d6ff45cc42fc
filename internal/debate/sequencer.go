package debate

import (
	"fmt"
	"time"

	"github.com/Iron-Ham/debatemebro/internal/event"
)

// The methods in this file form the phase sequencer. Each runs with s.mu
// held, either from a public input or from a generation-guarded task.

// researchSettledLocked runs when the research barrier releases. It enters
// the phase of the first turn and starts revealing it.
func (s *Session) researchSettledLocked() {
	s.emitLocked(event.NewResearchCompletedEvent(s.id))
	s.logger.Info("research complete")

	if len(s.plan.Turns) == 0 {
		s.transitionLocked(s.catalog.Terminal().ID, s.pacing.TransitionDelay, s.enterTerminalLocked)
		return
	}
	s.enterPhaseLocked(s.plan.Turns[0].Phase)
	s.activateTurnLocked(0)
}

func (s *Session) researchTimeoutLocked() {
	if s.status != StatusResearching || s.barrier.Complete() {
		return
	}
	missing := s.barrier.Remaining()
	names := make([]string, len(missing))
	for i, side := range missing {
		names[i] = string(side)
	}
	s.failLocked(fmt.Sprintf("research did not finish within %v", s.pacing.ResearchTimeout), names)
}

// failLocked stops the session from advancing. Queries keep working.
func (s *Session) failLocked(reason string, missing []string) {
	s.status = StatusFailed
	s.failReason = reason
	s.transition = nil
	s.reveal.Stop()
	s.barrier.Cancel()
	s.stopTimersLocked()
	s.emitLocked(event.NewSessionFailedEvent(s.id, reason, missing))
	s.logger.Warn("session failed", "reason", reason, "missing", missing)
}

func (s *Session) enterPhaseLocked(id PhaseID) {
	from := s.phase
	s.phase = id
	s.viewPhase = id
	s.transition = nil

	ph, _ := s.catalog.Phase(id)
	s.emitLocked(event.NewPhaseChangedEvent(s.id, string(from), string(id), ph.Internal))
	s.logger.WithPhase(string(id)).Info("phase changed", "from", string(from))
}

// activateTurnLocked makes turn i current and starts its reveal.
func (s *Session) activateTurnLocked(i int) {
	turn := s.plan.Turns[i]
	s.turnIdx = i
	s.status = StatusRevealing
	s.emitLocked(event.NewTurnStartedEvent(s.id, i, string(turn.Side), string(turn.Phase)))
	s.logger.WithPhase(string(turn.Phase)).WithSide(string(turn.Side)).Debug("turn started", "index", i)

	gen := s.gen
	s.reveal.Start(turn.Text,
		func(delta string, shown, total int) {
			s.guarded(gen, "reveal progress", func() {
				if s.turnIdx != i || s.status != StatusRevealing {
					return
				}
				s.emitLocked(event.NewTurnProgressEvent(s.id, i, delta, shown, total))
			})
		},
		func() {
			s.guarded(gen, "reveal complete", func() {
				if s.turnIdx != i || s.status != StatusRevealing {
					return
				}
				s.turnRevealedLocked(i)
			})
		},
	)
}

// turnRevealedLocked records turn i in history before any transition logic
// runs, then schedules the advance.
func (s *Session) turnRevealedLocked(i int) {
	turn := s.plan.Turns[i]
	s.history = append(s.history, CompletedTurn{Index: i, Turn: turn})
	s.status = StatusWaiting
	s.emitLocked(event.NewTurnCompletedEvent(s.id, i, string(turn.Side), string(turn.Phase), len(s.history)))
	s.logger.WithPhase(string(turn.Phase)).WithSide(string(turn.Side)).Debug("turn completed", "index", i)

	s.afterLocked(s.pacing.TurnGap, "advance", func() { s.advanceLocked(i) })
}

// advanceLocked decides the step after turn i: the next turn in the same
// phase, a move through an evaluation phase, a direct transition, or the
// final move to the terminal phase.
func (s *Session) advanceLocked(i int) {
	next := i + 1
	if next >= len(s.plan.Turns) {
		s.transitionLocked(s.catalog.Terminal().ID, s.pacing.TransitionDelay, s.enterTerminalLocked)
		return
	}

	target := s.plan.Turns[next].Phase
	if target == s.phase {
		s.activateTurnLocked(next)
		return
	}

	enter := func() {
		s.enterPhaseLocked(target)
		s.activateTurnLocked(next)
	}
	if eval, ok := s.catalog.EvaluationBetween(s.phase, target); ok {
		s.enterPhaseLocked(eval.ID)
		s.status = StatusWaiting
		s.afterLocked(s.pacing.EvaluationDwell, "evaluation dwell", enter)
		return
	}
	s.transitionLocked(target, s.pacing.TransitionDelay, enter)
}

// transitionLocked shows a transition notice for d, then runs enter.
func (s *Session) transitionLocked(to PhaseID, d time.Duration, enter func()) {
	msg := s.transitionMessage(to)
	s.status = StatusWaiting
	s.transition = &Transition{To: to, Message: msg}
	s.emitLocked(event.NewPhaseTransitionEvent(s.id, string(s.phase), string(to), msg))
	s.afterLocked(d, "transition", enter)
}

func (s *Session) transitionMessage(to PhaseID) string {
	ph, _ := s.catalog.Phase(to)
	if to == s.catalog.Terminal().ID && ph.Description != "" {
		return ph.Description
	}
	return fmt.Sprintf("Moving to %s...", s.catalog.Label(to))
}

// enterTerminalLocked enters the terminal phase, judges the plan's
// scorecards, and stops advancing.
func (s *Session) enterTerminalLocked() {
	s.enterPhaseLocked(s.catalog.Terminal().ID)
	s.turnIdx = -1
	s.status = StatusJudging
	res := Judge(s.plan.Scores)
	res.Verdict = s.plan.Verdict.Clone()
	s.results = &res

	totals := make(map[string]float64, len(res.Totals))
	for side, v := range res.Totals {
		totals[string(side)] = v
	}
	s.emitLocked(event.NewJudgingEvent(s.id, string(res.Winner), totals))
	s.logger.Info("debate judged", "winner", string(res.Winner), "history", len(s.history))
}
