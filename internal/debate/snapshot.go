package debate

import "slices"

// Snapshot is a read-only copy of session state for presentation.
type Snapshot struct {
	SessionID  string
	Topic      string
	Status     SessionStatus
	Phase      PhaseID
	ViewPhase  PhaseID
	TurnIndex  int
	TotalTurns int

	// ActiveTurn is set while a turn is being revealed; Revealed holds its
	// shown prefix.
	ActiveTurn *Turn
	Revealed   string

	History      []CompletedTurn
	Sides        []Side
	Positions    map[Side]string
	ResearchDone map[Side]bool
	Research     map[Side][]ResearchQuery
	Transition   *Transition

	ResultsShown     bool
	Results          *Results
	ExpandedCitation CitationRef
	Vote             Side
	FailReason       string

	// Complete and Reachable are keyed by every catalog phase.
	Complete  map[PhaseID]bool
	Reachable map[PhaseID]bool
}

// Snapshot captures the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		SessionID:        s.id,
		Topic:            s.topic,
		Status:           s.status,
		Phase:            s.phase,
		ViewPhase:        s.viewPhase,
		TurnIndex:        s.turnIdx,
		TotalTurns:       len(s.plan.Turns),
		History:          slices.Clone(s.history),
		Sides:            s.plan.Participants(),
		Positions:        make(map[Side]string, len(s.plan.Positions)),
		ResearchDone:     s.barrier.States(),
		Research:         make(map[Side][]ResearchQuery, len(s.research)),
		ResultsShown:     s.results != nil,
		ExpandedCitation: s.expanded,
		Vote:             s.vote,
		FailReason:       s.failReason,
		Complete:         make(map[PhaseID]bool),
		Reachable:        make(map[PhaseID]bool),
	}
	for side, pos := range s.plan.Positions {
		snap.Positions[side] = pos
	}
	for side, qs := range s.research {
		snap.Research[side] = slices.Clone(qs)
	}
	if s.status == StatusRevealing && s.turnIdx >= 0 {
		t := s.plan.Turns[s.turnIdx]
		snap.ActiveTurn = &t
		snap.Revealed = s.reveal.Text()
	}
	if s.transition != nil {
		tr := *s.transition
		snap.Transition = &tr
	}
	if s.results != nil {
		r := *s.results
		r.Verdict = r.Verdict.Clone()
		snap.Results = &r
	}
	for _, ph := range s.catalog.phases {
		snap.Complete[ph.ID] = s.phaseCompleteLocked(ph.ID)
		snap.Reachable[ph.ID] = s.reachableLocked(ph.ID)
	}
	return snap
}

// TurnsFor returns completed turns of side in phase. An empty side matches
// every side.
func (s Snapshot) TurnsFor(phase PhaseID, side Side) []CompletedTurn {
	return filterTurns(s.History, phase, side)
}

// Terminal reports whether results are shown.
func (s Snapshot) Terminal() bool {
	return s.ResultsShown
}
