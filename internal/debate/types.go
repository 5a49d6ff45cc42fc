package debate

// Side identifies a debate participant.
type Side string

const (
	// SidePro argues for the topic.
	SidePro Side = "pro"
	// SideCon argues against the topic.
	SideCon Side = "con"
)

// DefaultSides returns the two-party participant set used when a plan does
// not name its own.
func DefaultSides() []Side {
	return []Side{SidePro, SideCon}
}

// PhaseID identifies a phase in the catalog.
type PhaseID string

// Well-known phase ids used by the default catalog.
const (
	PhaseResearch     PhaseID = "research"
	PhaseOpening      PhaseID = "opening"
	PhaseEvalRebuttal PhaseID = "eval_rebuttal"
	PhaseRebuttal     PhaseID = "rebuttal"
	PhaseEvalClosing  PhaseID = "eval_closing"
	PhaseClosing      PhaseID = "closing"
	PhaseJudging      PhaseID = "judging"
)

// SessionStatus represents the lifecycle state of a debate session.
type SessionStatus string

const (
	// StatusResearching means the barrier is waiting on research signals.
	StatusResearching SessionStatus = "researching"
	// StatusRevealing means a turn is actively being revealed.
	StatusRevealing SessionStatus = "revealing"
	// StatusWaiting means a timed pause (turn gap, transition, dwell) is pending.
	StatusWaiting SessionStatus = "waiting"
	// StatusJudging is the terminal state: results are shown.
	StatusJudging SessionStatus = "judging"
	// StatusFailed means the session stopped advancing (research timeout).
	StatusFailed SessionStatus = "failed"
	// StatusClosed means a later start or reset superseded the session.
	StatusClosed SessionStatus = "closed"
)

// CitationType classifies a citation's source.
type CitationType string

const (
	CitationWeb      CitationType = "web"
	CitationDocument CitationType = "document"
)

// Citation is a source referenced from a turn's text by an inline marker.
type Citation struct {
	ID    string       `yaml:"id" json:"id"`
	Title string       `yaml:"title" json:"title"`
	URL   string       `yaml:"url,omitempty" json:"url,omitempty"`
	Type  CitationType `yaml:"type" json:"type"`
}

// Turn is one side's complete statement within one content phase.
// Turns are immutable once a plan is loaded.
type Turn struct {
	Side      Side       `yaml:"side" json:"side"`
	Phase     PhaseID    `yaml:"phase" json:"phase"`
	Text      string     `yaml:"text" json:"text"`
	Citations []Citation `yaml:"citations,omitempty" json:"citations,omitempty"`
}

// Citation returns the citation with the given id, matching exactly.
func (t Turn) Citation(id string) (Citation, bool) {
	for _, c := range t.Citations {
		if c.ID == id {
			return c, true
		}
	}
	return Citation{}, false
}

// CitationRef names a citation within one turn. Citation ids are only
// unique inside a turn, so the plan turn index is part of the key. The
// zero value refers to no citation.
type CitationRef struct {
	Turn int
	ID   string
}

// IsZero reports whether r refers to no citation.
func (r CitationRef) IsZero() bool { return r.ID == "" }

// ResearchQuery is one search a side runs during the research phase.
type ResearchQuery struct {
	Query   string `yaml:"query" json:"query"`
	Results int    `yaml:"results" json:"results"`
}

// CompletedTurn is a history entry: the turn plus its position in the plan.
type CompletedTurn struct {
	Index int
	Turn
}
