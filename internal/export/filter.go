package export

import (
	"fmt"

	"github.com/gobwas/glob"

	"github.com/Iron-Ham/debatemebro/internal/debate"
)

// PhaseFilter selects turns by phase id using a glob pattern such as
// "opening", "*ing", or "{opening,closing}".
type PhaseFilter struct {
	pattern string
	g       glob.Glob
}

// NewPhaseFilter compiles pattern. An empty pattern matches every phase.
func NewPhaseFilter(pattern string) (*PhaseFilter, error) {
	f := &PhaseFilter{pattern: pattern}
	if pattern == "" {
		return f, nil
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid phase pattern %q: %w", pattern, err)
	}
	f.g = g
	return f, nil
}

// Pattern returns the source pattern.
func (f *PhaseFilter) Pattern() string {
	return f.pattern
}

// Match reports whether phase passes the filter.
func (f *PhaseFilter) Match(phase debate.PhaseID) bool {
	if f == nil || f.g == nil {
		return true
	}
	return f.g.Match(string(phase))
}

// Apply returns a copy of t holding only the matching turns.
func (f *PhaseFilter) Apply(t *Transcript) *Transcript {
	out := *t
	out.Turns = make([]TurnRecord, 0, len(t.Turns))
	for _, turn := range t.Turns {
		if f.Match(turn.Phase) {
			out.Turns = append(out.Turns, turn)
		}
	}
	return &out
}
