package debate

import (
	"github.com/Iron-Ham/debatemebro/internal/errors"
)

// Plan is the scripted content of one debate: what each side researches,
// the ordered turns, and the judges' scorecards. A plan is read-only once a
// session starts; the controller works on its own copy.
type Plan struct {
	Topic     string                   `yaml:"topic" json:"topic"`
	Positions map[Side]string          `yaml:"positions,omitempty" json:"positions,omitempty"`
	Sides     []Side                   `yaml:"sides,omitempty" json:"sides,omitempty"`
	Research  map[Side][]ResearchQuery `yaml:"research,omitempty" json:"research,omitempty"`
	Turns     []Turn                   `yaml:"turns" json:"turns"`
	Scores    map[Side]Scores          `yaml:"scores,omitempty" json:"scores,omitempty"`
	Verdict   *Verdict                 `yaml:"verdict,omitempty" json:"verdict,omitempty"`
}

// ContentSource supplies the plan for a topic at session start.
type ContentSource interface {
	Plan(topic string) (*Plan, error)
}

// SourceFunc adapts a function to ContentSource.
type SourceFunc func(topic string) (*Plan, error)

// Plan implements ContentSource.
func (f SourceFunc) Plan(topic string) (*Plan, error) {
	return f(topic)
}

// StaticSource returns the same plan for every topic, with Topic replaced by
// the requested one.
func StaticSource(p *Plan) ContentSource {
	return SourceFunc(func(topic string) (*Plan, error) {
		c := p.Clone()
		if topic != "" {
			c.Topic = topic
		}
		return c, nil
	})
}

// Participants returns the sides the research barrier waits for.
func (p *Plan) Participants() []Side {
	if len(p.Sides) == 0 {
		return DefaultSides()
	}
	return append([]Side(nil), p.Sides...)
}

// TurnsInPhase returns the plan indices of turns belonging to phase.
func (p *Plan) TurnsInPhase(phase PhaseID) []int {
	var idx []int
	for i, t := range p.Turns {
		if t.Phase == phase {
			idx = append(idx, i)
		}
	}
	return idx
}

// Clone returns a deep copy of the plan.
func (p *Plan) Clone() *Plan {
	if p == nil {
		return nil
	}
	c := &Plan{
		Topic:   p.Topic,
		Sides:   append([]Side(nil), p.Sides...),
		Turns:   make([]Turn, len(p.Turns)),
		Verdict: p.Verdict.Clone(),
	}
	for i, t := range p.Turns {
		t.Citations = append([]Citation(nil), t.Citations...)
		c.Turns[i] = t
	}
	if p.Positions != nil {
		c.Positions = make(map[Side]string, len(p.Positions))
		for k, v := range p.Positions {
			c.Positions[k] = v
		}
	}
	if p.Research != nil {
		c.Research = make(map[Side][]ResearchQuery, len(p.Research))
		for k, v := range p.Research {
			c.Research[k] = append([]ResearchQuery(nil), v...)
		}
	}
	if p.Scores != nil {
		c.Scores = make(map[Side]Scores, len(p.Scores))
		for k, v := range p.Scores {
			c.Scores[k] = v
		}
	}
	return c
}

// Validate checks that the plan can be sequenced against catalog. All
// problems are reported together in a *errors.ConfigError wrapping
// errors.ErrPlanInvalid.
func (p *Plan) Validate(catalog *Catalog) error {
	ce := errors.NewConfigError("plan", errors.ErrPlanInvalid)
	if p == nil {
		ce.Addf("plan is nil")
		return ce
	}

	sides := p.Participants()
	seen := make(map[Side]bool, len(sides))
	for _, s := range sides {
		switch {
		case s == "":
			ce.Addf("empty side name")
		case seen[s]:
			ce.Addf("duplicate side %q", s)
		}
		seen[s] = true
	}

	initial, terminal := catalog.Initial().ID, catalog.Terminal().ID
	lastPos := -1
	for i, t := range p.Turns {
		if !seen[t.Side] {
			ce.Addf("turn %d: unknown side %q", i, t.Side)
		}
		ph, ok := catalog.Phase(t.Phase)
		switch {
		case !ok:
			ce.Addf("turn %d: unknown phase %q", i, t.Phase)
		case ph.Internal:
			ce.Addf("turn %d: phase %q is internal and cannot hold turns", i, t.Phase)
		case t.Phase == initial || t.Phase == terminal:
			ce.Addf("turn %d: phase %q cannot hold turns", i, t.Phase)
		default:
			pos := catalog.Index(t.Phase)
			if pos < lastPos {
				ce.Addf("turn %d: phase %q comes before the previous turn's phase", i, t.Phase)
			}
			lastPos = max(lastPos, pos)
		}

		ids := make(map[string]bool, len(t.Citations))
		for _, c := range t.Citations {
			if c.ID == "" {
				ce.Addf("turn %d: citation with empty id", i)
				continue
			}
			if ids[c.ID] {
				ce.Addf("turn %d: duplicate citation id %q", i, c.ID)
			}
			ids[c.ID] = true
		}
	}

	for side := range p.Research {
		if !seen[side] {
			ce.Addf("research for unknown side %q", side)
		}
	}
	for side, sc := range p.Scores {
		if !seen[side] {
			ce.Addf("scores for unknown side %q", side)
			continue
		}
		for _, crit := range Rubric() {
			if v := sc.Get(crit.Criterion); v < 0 || v > MaxScore {
				ce.Addf("scores for %q: %s = %d is outside 0..%d", side, crit.Criterion, v, MaxScore)
			}
		}
	}

	if p.Verdict != nil {
		for i, j := range p.Verdict.Judges {
			if j.Name == "" {
				ce.Addf("verdict judge %d: empty name", i)
			}
		}
	}

	return ce.ErrOrNil()
}
