package event

import "time"

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "turn.completed", "phase.changed")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Event type identifiers.
const (
	TypeSessionStarted  = "session.started"
	TypeSessionReset    = "session.reset"
	TypeSessionFailed   = "session.failed"
	TypeResearchQuery   = "research.query"
	TypeResearchSide    = "research.side_completed"
	TypeResearchDone    = "research.completed"
	TypePhaseTransition = "phase.transition"
	TypePhaseChanged    = "phase.changed"
	TypeTurnStarted     = "turn.started"
	TypeTurnProgress    = "turn.progress"
	TypeTurnCompleted   = "turn.completed"
	TypeJudging         = "debate.judging"
	TypeVoteRecorded    = "vote.recorded"
)

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Session Lifecycle Events
// -----------------------------------------------------------------------------

// SessionStartedEvent is emitted when a new debate session begins research.
type SessionStartedEvent struct {
	baseEvent
	SessionID string
	Topic     string
	Sides     []string // Participants the research barrier waits for
	Turns     int      // Total scripted turns
}

// NewSessionStartedEvent creates a SessionStartedEvent.
func NewSessionStartedEvent(sessionID, topic string, sides []string, turns int) SessionStartedEvent {
	return SessionStartedEvent{
		baseEvent: newBaseEvent(TypeSessionStarted),
		SessionID: sessionID,
		Topic:     topic,
		Sides:     sides,
		Turns:     turns,
	}
}

// SessionResetEvent is emitted when a session is superseded by a reset or a
// newer start.
type SessionResetEvent struct {
	baseEvent
	SessionID string
}

// NewSessionResetEvent creates a SessionResetEvent.
func NewSessionResetEvent(sessionID string) SessionResetEvent {
	return SessionResetEvent{
		baseEvent: newBaseEvent(TypeSessionReset),
		SessionID: sessionID,
	}
}

// SessionFailedEvent is emitted when a session stops advancing, for example
// because research did not complete before the timeout.
type SessionFailedEvent struct {
	baseEvent
	SessionID string
	Reason    string
	Missing   []string // Sides that never reported research completion
}

// NewSessionFailedEvent creates a SessionFailedEvent.
func NewSessionFailedEvent(sessionID, reason string, missing []string) SessionFailedEvent {
	return SessionFailedEvent{
		baseEvent: newBaseEvent(TypeSessionFailed),
		SessionID: sessionID,
		Reason:    reason,
		Missing:   missing,
	}
}

// -----------------------------------------------------------------------------
// Research Events
// -----------------------------------------------------------------------------

// ResearchQueryEvent is emitted when a side surfaces a research query.
type ResearchQueryEvent struct {
	baseEvent
	SessionID string
	Side      string
	Query     string
	Results   int
}

// NewResearchQueryEvent creates a ResearchQueryEvent.
func NewResearchQueryEvent(sessionID, side, query string, results int) ResearchQueryEvent {
	return ResearchQueryEvent{
		baseEvent: newBaseEvent(TypeResearchQuery),
		SessionID: sessionID,
		Side:      side,
		Query:     query,
		Results:   results,
	}
}

// ResearchSideCompletedEvent is emitted the first time a side reports that
// its research finished.
type ResearchSideCompletedEvent struct {
	baseEvent
	SessionID string
	Side      string
	Remaining int // Sides still outstanding
}

// NewResearchSideCompletedEvent creates a ResearchSideCompletedEvent.
func NewResearchSideCompletedEvent(sessionID, side string, remaining int) ResearchSideCompletedEvent {
	return ResearchSideCompletedEvent{
		baseEvent: newBaseEvent(TypeResearchSide),
		SessionID: sessionID,
		Side:      side,
		Remaining: remaining,
	}
}

// ResearchCompletedEvent is emitted once when the research barrier releases.
type ResearchCompletedEvent struct {
	baseEvent
	SessionID string
}

// NewResearchCompletedEvent creates a ResearchCompletedEvent.
func NewResearchCompletedEvent(sessionID string) ResearchCompletedEvent {
	return ResearchCompletedEvent{
		baseEvent: newBaseEvent(TypeResearchDone),
		SessionID: sessionID,
	}
}

// -----------------------------------------------------------------------------
// Phase Events
// -----------------------------------------------------------------------------

// PhaseTransitionEvent is emitted when the sequencer schedules a move to a
// new phase. Message is the informational text shown while waiting.
type PhaseTransitionEvent struct {
	baseEvent
	SessionID string
	From      string
	To        string
	Message   string
}

// NewPhaseTransitionEvent creates a PhaseTransitionEvent.
func NewPhaseTransitionEvent(sessionID, from, to, message string) PhaseTransitionEvent {
	return PhaseTransitionEvent{
		baseEvent: newBaseEvent(TypePhaseTransition),
		SessionID: sessionID,
		From:      from,
		To:        to,
		Message:   message,
	}
}

// PhaseChangedEvent is emitted when the active phase changes.
type PhaseChangedEvent struct {
	baseEvent
	SessionID string
	From      string
	To        string
	Internal  bool // True when To is an evaluation phase
}

// NewPhaseChangedEvent creates a PhaseChangedEvent.
func NewPhaseChangedEvent(sessionID, from, to string, internal bool) PhaseChangedEvent {
	return PhaseChangedEvent{
		baseEvent: newBaseEvent(TypePhaseChanged),
		SessionID: sessionID,
		From:      from,
		To:        to,
		Internal:  internal,
	}
}

// -----------------------------------------------------------------------------
// Turn Events
// -----------------------------------------------------------------------------

// TurnStartedEvent is emitted when a turn becomes active and begins revealing.
type TurnStartedEvent struct {
	baseEvent
	SessionID string
	Index     int
	Side      string
	Phase     string
}

// NewTurnStartedEvent creates a TurnStartedEvent.
func NewTurnStartedEvent(sessionID string, index int, side, phase string) TurnStartedEvent {
	return TurnStartedEvent{
		baseEvent: newBaseEvent(TypeTurnStarted),
		SessionID: sessionID,
		Index:     index,
		Side:      side,
		Phase:     phase,
	}
}

// TurnProgressEvent is emitted on every reveal tick that grows the prefix.
type TurnProgressEvent struct {
	baseEvent
	SessionID string
	Index     int
	Delta     string // Text revealed by this tick
	Revealed  int    // Runes revealed so far
	Total     int    // Runes in the full text
}

// NewTurnProgressEvent creates a TurnProgressEvent.
func NewTurnProgressEvent(sessionID string, index int, delta string, revealed, total int) TurnProgressEvent {
	return TurnProgressEvent{
		baseEvent: newBaseEvent(TypeTurnProgress),
		SessionID: sessionID,
		Index:     index,
		Delta:     delta,
		Revealed:  revealed,
		Total:     total,
	}
}

// TurnCompletedEvent is emitted after a fully revealed turn is appended to
// the session history.
type TurnCompletedEvent struct {
	baseEvent
	SessionID  string
	Index      int
	Side       string
	Phase      string
	HistoryLen int
}

// NewTurnCompletedEvent creates a TurnCompletedEvent.
func NewTurnCompletedEvent(sessionID string, index int, side, phase string, historyLen int) TurnCompletedEvent {
	return TurnCompletedEvent{
		baseEvent:  newBaseEvent(TypeTurnCompleted),
		SessionID:  sessionID,
		Index:      index,
		Side:       side,
		Phase:      phase,
		HistoryLen: historyLen,
	}
}

// -----------------------------------------------------------------------------
// Judging Events
// -----------------------------------------------------------------------------

// JudgingEvent is emitted when the session reaches the terminal phase and
// results become visible.
type JudgingEvent struct {
	baseEvent
	SessionID string
	Winner    string             // Empty on a tie or when no scores exist
	Totals    map[string]float64 // Weighted judge score per side
}

// NewJudgingEvent creates a JudgingEvent.
func NewJudgingEvent(sessionID, winner string, totals map[string]float64) JudgingEvent {
	return JudgingEvent{
		baseEvent: newBaseEvent(TypeJudging),
		SessionID: sessionID,
		Winner:    winner,
		Totals:    totals,
	}
}

// VoteRecordedEvent is emitted when the observer casts or changes a vote.
type VoteRecordedEvent struct {
	baseEvent
	SessionID string
	Side      string
}

// NewVoteRecordedEvent creates a VoteRecordedEvent.
func NewVoteRecordedEvent(sessionID, side string) VoteRecordedEvent {
	return VoteRecordedEvent{
		baseEvent: newBaseEvent(TypeVoteRecorded),
		SessionID: sessionID,
		Side:      side,
	}
}
