// Package export writes debate transcripts in several formats.
package export

import (
	"github.com/Iron-Ham/debatemebro/internal/debate"
)

// Transcript is the exportable record of a session.
type Transcript struct {
	SessionID string                                 `json:"session_id" yaml:"session_id"`
	Topic     string                                 `json:"topic" yaml:"topic"`
	Status    string                                 `json:"status" yaml:"status"`
	Positions map[debate.Side]string                 `json:"positions,omitempty" yaml:"positions,omitempty"`
	Research  map[debate.Side][]debate.ResearchQuery `json:"research,omitempty" yaml:"research,omitempty"`
	Turns     []TurnRecord                           `json:"turns" yaml:"turns"`
	Results   *ResultsRecord                         `json:"results,omitempty" yaml:"results,omitempty"`
}

// TurnRecord is one completed turn.
type TurnRecord struct {
	Index      int               `json:"index" yaml:"index"`
	Side       debate.Side       `json:"side" yaml:"side"`
	Phase      debate.PhaseID    `json:"phase" yaml:"phase"`
	PhaseLabel string            `json:"phase_label" yaml:"phase_label"`
	Text       string            `json:"text" yaml:"text"`
	Citations  []debate.Citation `json:"citations,omitempty" yaml:"citations,omitempty"`
}

// ResultsRecord is the judged outcome plus the audience vote, if any.
type ResultsRecord struct {
	Scores  map[debate.Side]debate.Scores `json:"scores" yaml:"scores"`
	Totals  map[debate.Side]float64       `json:"totals" yaml:"totals"`
	Winner  debate.Side                   `json:"winner,omitempty" yaml:"winner,omitempty"`
	Vote    debate.Side                   `json:"vote,omitempty" yaml:"vote,omitempty"`
	Blended map[debate.Side]float64       `json:"blended,omitempty" yaml:"blended,omitempty"`
	Verdict *debate.Verdict               `json:"verdict,omitempty" yaml:"verdict,omitempty"`
}

// FromSnapshot builds a transcript of everything the session has completed.
// catalog supplies phase labels and may be nil.
func FromSnapshot(snap debate.Snapshot, catalog *debate.Catalog) *Transcript {
	t := &Transcript{
		SessionID: snap.SessionID,
		Topic:     snap.Topic,
		Status:    string(snap.Status),
		Positions: snap.Positions,
		Research:  snap.Research,
		Turns:     make([]TurnRecord, 0, len(snap.History)),
	}
	for _, ct := range snap.History {
		label := string(ct.Phase)
		if catalog != nil {
			label = catalog.Label(ct.Phase)
		}
		t.Turns = append(t.Turns, TurnRecord{
			Index:      ct.Index,
			Side:       ct.Side,
			Phase:      ct.Phase,
			PhaseLabel: label,
			Text:       ct.Text,
			Citations:  ct.Citations,
		})
	}
	if snap.Results != nil {
		t.Results = &ResultsRecord{
			Scores:  snap.Results.Scores,
			Totals:  snap.Results.Totals,
			Winner:  snap.Results.Winner,
			Vote:    snap.Vote,
			Verdict: snap.Results.Verdict,
		}
		if snap.Vote != "" {
			t.Results.Blended = snap.Results.Blend(snap.Vote)
		}
	}
	return t
}
