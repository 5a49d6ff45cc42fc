package debate

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/Iron-Ham/debatemebro/internal/errors"
	"github.com/Iron-Ham/debatemebro/internal/event"
	"github.com/Iron-Ham/debatemebro/internal/logging"
	"github.com/Iron-Ham/debatemebro/internal/schedule"
)

// Transition is a pending timed move to another phase.
type Transition struct {
	To      PhaseID
	Message string
}

// Session is one staged debate. It is created by Controller.Start and stays
// valid until a later Start or Reset supersedes it; after that every input
// is ignored and queries return the state at the moment it was superseded.
//
// Session is safe for concurrent use. All mutations run under one mutex,
// which also serializes the scheduled tasks that drive the sequence.
type Session struct {
	mu sync.Mutex

	ctl     *Controller
	gen     uint64
	id      string
	topic   string
	catalog *Catalog
	plan    *Plan
	pacing  Pacing
	sched   schedule.Scheduler
	bus     *event.Bus
	logger  *logging.Logger

	status     SessionStatus
	phase      PhaseID
	viewPhase  PhaseID
	turnIdx    int
	history    []CompletedTurn
	barrier    *Barrier
	reveal     *Reveal
	research   map[Side][]ResearchQuery
	transition *Transition
	results    *Results
	expanded   CitationRef
	vote       Side
	failReason string
	closed     bool

	timers  map[schedule.Timer]struct{}
	pending []event.Event
}

func newSession(ctl *Controller, gen uint64, id, topic string, plan *Plan) *Session {
	s := &Session{
		ctl:      ctl,
		gen:      gen,
		id:       id,
		topic:    topic,
		catalog:  ctl.catalog,
		plan:     plan,
		pacing:   ctl.pacing,
		sched:    ctl.sched,
		bus:      ctl.bus,
		logger:   ctl.logger.WithSession(id),
		status:   StatusResearching,
		phase:    ctl.catalog.Initial().ID,
		turnIdx:  -1,
		research: make(map[Side][]ResearchQuery),
		timers:   make(map[schedule.Timer]struct{}),
	}
	s.viewPhase = s.phase
	s.barrier = NewBarrier(plan.Participants(), s.sched, s.pacing.SettleDelay, func() {
		s.guarded(gen, "research settled", s.researchSettledLocked)
	})
	s.reveal = NewReveal(s.sched, s.pacing.RevealTick, s.pacing.RunesPerTick)
	return s
}

// begin arms the research timeout and queues the start event. It returns the
// queued events for the controller to publish.
func (s *Session) begin() []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pacing.ResearchTimeout > 0 {
		s.afterLocked(s.pacing.ResearchTimeout, "research timeout", s.researchTimeoutLocked)
	}
	sides := make([]string, 0, len(s.plan.Participants()))
	for _, side := range s.plan.Participants() {
		sides = append(sides, string(side))
	}
	s.emitLocked(event.NewSessionStartedEvent(s.id, s.topic, sides, len(s.plan.Turns)))
	s.logger.Info("session started", "topic", s.topic, "turns", len(s.plan.Turns))
	return s.drainLocked()
}

// supersede closes the session: pending timers stop, the reveal is
// discarded, and every later input or stale task becomes a no-op.
func (s *Session) supersede() []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.status = StatusClosed
	s.transition = nil
	s.reveal.Stop()
	s.barrier.Cancel()
	s.stopTimersLocked()
	s.emitLocked(event.NewSessionResetEvent(s.id))
	s.logger.Info("session superseded", "history", len(s.history))
	return s.drainLocked()
}

// liveLocked reports whether a task tagged with gen may still act.
func (s *Session) liveLocked(gen uint64) bool {
	return !s.closed && gen == s.gen && s.ctl.gen.Load() == gen
}

// guarded runs fn under the session lock if gen is still current, then
// publishes whatever fn emitted.
func (s *Session) guarded(gen uint64, what string, fn func()) {
	s.mu.Lock()
	if !s.liveLocked(gen) {
		s.mu.Unlock()
		s.logger.Debug("discarding stale task", "task", what)
		return
	}
	fn()
	evs := s.drainLocked()
	s.mu.Unlock()
	s.publish(evs)
}

// afterLocked schedules fn after d, tagged with the current generation.
func (s *Session) afterLocked(d time.Duration, what string, fn func()) {
	gen := s.gen
	var t schedule.Timer
	t = s.sched.AfterFunc(d, func() {
		s.guarded(gen, what, func() {
			delete(s.timers, t)
			fn()
		})
	})
	s.timers[t] = struct{}{}
}

func (s *Session) stopTimersLocked() {
	for t := range s.timers {
		t.Stop()
	}
	clear(s.timers)
}

func (s *Session) emitLocked(e event.Event) {
	s.pending = append(s.pending, e)
}

func (s *Session) drainLocked() []event.Event {
	evs := s.pending
	s.pending = nil
	return evs
}

func (s *Session) publish(evs []event.Event) {
	if s.bus == nil {
		return
	}
	for _, e := range evs {
		s.bus.Publish(e)
	}
}

// mutate runs fn under the lock when the session is live and publishes the
// events it queued. It returns fn's result, or false for a closed session.
func (s *Session) mutate(fn func() bool) bool {
	s.mu.Lock()
	if !s.liveLocked(s.gen) {
		s.mu.Unlock()
		return false
	}
	ok := fn()
	evs := s.drainLocked()
	s.mu.Unlock()
	s.publish(evs)
	return ok
}

// -----------------------------------------------------------------------------
// Inputs
// -----------------------------------------------------------------------------

// ResearchSideComplete records that side finished research. Unknown sides,
// repeat signals, and signals after the barrier fired are ignored; the
// return value reports whether the signal was accepted.
func (s *Session) ResearchSideComplete(side Side) bool {
	return s.mutate(func() bool {
		if s.status != StatusResearching {
			return false
		}
		accepted, complete := s.barrier.Signal(side)
		if !accepted {
			s.logger.Debug("ignoring research signal", "side", string(side))
			return false
		}
		remaining := len(s.barrier.Remaining())
		s.emitLocked(event.NewResearchSideCompletedEvent(s.id, string(side), remaining))
		s.logger.WithSide(string(side)).Info("research side complete", "remaining", remaining, "barrier_complete", complete)
		return true
	})
}

// RecordResearchQuery appends a research query to side's log while research
// is still running for that side.
func (s *Session) RecordResearchQuery(side Side, q ResearchQuery) bool {
	return s.mutate(func() bool {
		if s.status != StatusResearching || !slices.Contains(s.plan.Participants(), side) || s.barrier.Done(side) {
			return false
		}
		s.research[side] = append(s.research[side], q)
		s.emitLocked(event.NewResearchQueryEvent(s.id, string(side), q.Query, q.Results))
		return true
	})
}

// SelectPhase changes the displayed phase. It is refused for phases that are
// neither completed nor active and never affects sequencing.
func (s *Session) SelectPhase(id PhaseID) bool {
	return s.mutate(func() bool {
		if !s.reachableLocked(id) {
			return false
		}
		s.viewPhase = id
		return true
	})
}

// ToggleCitation expands the referenced citation, or collapses it if it is
// already expanded. A ref whose turn does not carry that citation is
// ignored. It returns the expanded ref afterwards.
func (s *Session) ToggleCitation(ref CitationRef) CitationRef {
	var out CitationRef
	s.mutate(func() bool {
		out = s.expanded
		if ref.Turn < 0 || ref.Turn >= len(s.plan.Turns) {
			return false
		}
		if _, ok := s.plan.Turns[ref.Turn].Citation(ref.ID); !ok {
			return false
		}
		if s.expanded == ref {
			s.expanded = CitationRef{}
		} else {
			s.expanded = ref
		}
		out = s.expanded
		return true
	})
	return out
}

// Vote records the observer's pick once results are shown. A later vote
// replaces an earlier one.
func (s *Session) Vote(side Side) bool {
	return s.mutate(func() bool {
		if s.status != StatusJudging || !slices.Contains(s.plan.Participants(), side) {
			return false
		}
		s.vote = side
		s.emitLocked(event.NewVoteRecordedEvent(s.id, string(side)))
		return true
	})
}

// -----------------------------------------------------------------------------
// Queries
// -----------------------------------------------------------------------------

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Topic returns the debate topic.
func (s *Session) Topic() string { return s.topic }

// Catalog returns the phase catalog the session runs on.
func (s *Session) Catalog() *Catalog { return s.catalog }

// Plan returns a copy of the plan the session runs.
func (s *Session) Plan() *Plan { return s.plan.Clone() }

// Status returns the lifecycle state.
func (s *Session) Status() SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Err reports why the session stopped advancing. It returns
// errors.ErrSessionSuperseded once a later start or reset replaced the
// session, an error wrapping errors.ErrResearchTimeout after a research
// timeout, and nil otherwise.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.status {
	case StatusClosed:
		return errors.ErrSessionSuperseded
	case StatusFailed:
		return fmt.Errorf("%w: %s", errors.ErrResearchTimeout, s.failReason)
	}
	return nil
}

// CurrentPhase returns the active phase id.
func (s *Session) CurrentPhase() PhaseID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// ViewPhase returns the phase selected for display.
func (s *Session) ViewPhase() PhaseID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewPhase
}

// TurnIndex returns the plan index of the current turn, or -1 before the
// first turn and after judging begins.
func (s *Session) TurnIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.turnIdx
}

// ActiveTurn returns the turn being revealed, if any.
func (s *Session) ActiveTurn() (Turn, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusRevealing || s.turnIdx < 0 {
		return Turn{}, false
	}
	return s.plan.Turns[s.turnIdx], true
}

// RevealedText returns the shown prefix of the active turn.
func (s *Session) RevealedText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusRevealing {
		return ""
	}
	return s.reveal.Text()
}

// History returns a copy of the completed turns in completion order.
func (s *Session) History() []CompletedTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.history)
}

// IsTerminal reports whether the session reached the terminal phase.
func (s *Session) IsTerminal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results != nil
}

// IsPhaseComplete reports whether phase id is finished. A content phase is
// complete once every one of its turns is in history. A phase without turns
// is complete once the sequence has moved past it, and the terminal phase
// once results are shown.
func (s *Session) IsPhaseComplete(id PhaseID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phaseCompleteLocked(id)
}

// IsReachable reports whether phase id may be selected for display.
func (s *Session) IsReachable(id PhaseID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reachableLocked(id)
}

// TurnsForPhase returns completed turns of side in phase id. An empty side
// matches every side.
func (s *Session) TurnsForPhase(id PhaseID, side Side) []CompletedTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return filterTurns(s.history, id, side)
}

// Results returns the judged outcome once the terminal phase is reached.
func (s *Session) Results() (Results, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.results == nil {
		return Results{}, false
	}
	return *s.results, true
}

func (s *Session) phaseCompleteLocked(id PhaseID) bool {
	pos := s.catalog.Index(id)
	if pos < 0 {
		return false
	}
	if id == s.catalog.Terminal().ID {
		return s.results != nil
	}
	want := len(s.plan.TurnsInPhase(id))
	if want == 0 {
		return pos < s.catalog.Index(s.phase)
	}
	return len(filterTurns(s.history, id, "")) == want
}

func (s *Session) reachableLocked(id PhaseID) bool {
	return id == s.phase || s.phaseCompleteLocked(id)
}

func filterTurns(history []CompletedTurn, phase PhaseID, side Side) []CompletedTurn {
	var out []CompletedTurn
	for _, ct := range history {
		if ct.Phase == phase && (side == "" || ct.Side == side) {
			out = append(out, ct)
		}
	}
	return out
}
