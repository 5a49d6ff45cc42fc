package debate

import (
	"slices"

	"github.com/Iron-Ham/debatemebro/internal/errors"
)

// Phase describes one stage of the debate. Phases are static configuration.
type Phase struct {
	ID          PhaseID `yaml:"id" json:"id"`
	Label       string  `yaml:"label" json:"label"`
	Icon        string  `yaml:"icon,omitempty" json:"icon,omitempty"`
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
	// Internal marks an evaluation phase: it holds no turns and exists only
	// as a timed pause between content phases.
	Internal bool `yaml:"internal,omitempty" json:"internal,omitempty"`
	// Message is the informational text shown while dwelling in an
	// internal phase.
	Message string `yaml:"message,omitempty" json:"message,omitempty"`
}

// Evaluation routes the move from content phase From to content phase To
// through the internal phase Via.
type Evaluation struct {
	From PhaseID `yaml:"from" json:"from"`
	To   PhaseID `yaml:"to" json:"to"`
	Via  PhaseID `yaml:"via" json:"via"`
}

// Catalog is a validated, ordered phase list. The first phase is the initial
// (research) phase and the last is the terminal (judging) phase.
type Catalog struct {
	phases      []Phase
	evaluations []Evaluation
	index       map[PhaseID]int
	via         map[[2]PhaseID]PhaseID
}

// NewCatalog validates phases and evaluation adjacencies and returns an
// immutable Catalog. All problems are reported together in a
// *errors.ConfigError wrapping errors.ErrCatalogInvalid.
func NewCatalog(phases []Phase, evaluations []Evaluation) (*Catalog, error) {
	ce := errors.NewConfigError("catalog", errors.ErrCatalogInvalid)

	c := &Catalog{
		phases:      append([]Phase(nil), phases...),
		evaluations: append([]Evaluation(nil), evaluations...),
		index:       make(map[PhaseID]int, len(phases)),
		via:         make(map[[2]PhaseID]PhaseID, len(evaluations)),
	}

	if len(phases) < 2 {
		ce.Addf("need at least an initial and a terminal phase, got %d phase(s)", len(phases))
	}
	for i, p := range phases {
		if p.ID == "" {
			ce.Addf("phase %d has an empty id", i)
			continue
		}
		if _, dup := c.index[p.ID]; dup {
			ce.Addf("duplicate phase id %q", p.ID)
			continue
		}
		c.index[p.ID] = i
	}
	if len(phases) >= 2 {
		if phases[0].Internal {
			ce.Addf("initial phase %q cannot be internal", phases[0].ID)
		}
		if last := phases[len(phases)-1]; last.Internal {
			ce.Addf("terminal phase %q cannot be internal", last.ID)
		}
	}

	for _, ev := range evaluations {
		from, okFrom := c.lookup(ev.From)
		to, okTo := c.lookup(ev.To)
		via, okVia := c.lookup(ev.Via)
		switch {
		case !okFrom:
			ce.Addf("evaluation %s->%s references unknown phase %q", ev.From, ev.To, ev.From)
		case !okTo:
			ce.Addf("evaluation %s->%s references unknown phase %q", ev.From, ev.To, ev.To)
		case !okVia:
			ce.Addf("evaluation %s->%s references unknown phase %q", ev.From, ev.To, ev.Via)
		case !via.Internal:
			ce.Addf("evaluation %s->%s routes through %q, which is not internal", ev.From, ev.To, ev.Via)
		case from.Internal || to.Internal:
			ce.Addf("evaluation %s->%s must connect content phases", ev.From, ev.To)
		case ev.From == c.phases[0].ID:
			ce.Addf("evaluation %s->%s starts at the initial phase; research completion enters content directly", ev.From, ev.To)
		case ev.To == c.terminalID():
			ce.Addf("evaluation %s->%s targets the terminal phase; the final transition is always direct", ev.From, ev.To)
		case c.index[ev.From] >= c.index[ev.To]:
			ce.Addf("evaluation %s->%s runs backwards; %q must come before %q", ev.From, ev.To, ev.From, ev.To)
		case c.index[ev.Via] <= c.index[ev.From] || c.index[ev.Via] >= c.index[ev.To]:
			ce.Addf("evaluation %s->%s routes through %q, which is not between them", ev.From, ev.To, ev.Via)
		default:
			key := [2]PhaseID{ev.From, ev.To}
			if _, dup := c.via[key]; dup {
				ce.Addf("duplicate evaluation for %s->%s", ev.From, ev.To)
				continue
			}
			c.via[key] = ev.Via
		}
	}

	if err := ce.ErrOrNil(); err != nil {
		return nil, err
	}
	return c, nil
}

// DefaultCatalog returns the standard debate progression:
// research, opening, evaluation, rebuttal, evaluation, closing, judging.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultPhases(), DefaultEvaluations())
	if err != nil {
		panic(err) // static data
	}
	return c
}

// DefaultPhases returns the phase list used by DefaultCatalog.
func DefaultPhases() []Phase {
	return []Phase{
		{ID: PhaseResearch, Label: "Research", Icon: "🔍", Description: "Both sides are researching..."},
		{ID: PhaseOpening, Label: "Opening Arguments", Icon: "📖", Description: "Opening Arguments"},
		{
			ID: PhaseEvalRebuttal, Label: "Preparing Rebuttals", Icon: "🧠", Internal: true,
			Message: "Each side is reviewing the opponent's opening argument and preparing a targeted response...",
		},
		{ID: PhaseRebuttal, Label: "Rebuttals", Icon: "⚔️", Description: "Rebuttals: each side responds to the other's opening"},
		{
			ID: PhaseEvalClosing, Label: "Preparing Closings", Icon: "🧠", Internal: true,
			Message: "Each side is weighing all arguments and rebuttals to deliver a final synthesis...",
		},
		{ID: PhaseClosing, Label: "Closing Statements", Icon: "🏁", Description: "Closing Statements: final synthesis"},
		{ID: PhaseJudging, Label: "Judging", Icon: "📊", Description: "Judges are evaluating the debate..."},
	}
}

// DefaultEvaluations returns the adjacencies used by DefaultCatalog.
func DefaultEvaluations() []Evaluation {
	return []Evaluation{
		{From: PhaseOpening, To: PhaseRebuttal, Via: PhaseEvalRebuttal},
		{From: PhaseRebuttal, To: PhaseClosing, Via: PhaseEvalClosing},
	}
}

// Equal reports whether c and o define the same phases and evaluations in
// the same order.
func (c *Catalog) Equal(o *Catalog) bool {
	if c == nil || o == nil {
		return c == o
	}
	return slices.Equal(c.phases, o.phases) && slices.Equal(c.evaluations, o.evaluations)
}

func (c *Catalog) lookup(id PhaseID) (Phase, bool) {
	i, ok := c.index[id]
	if !ok {
		return Phase{}, false
	}
	return c.phases[i], true
}

func (c *Catalog) terminalID() PhaseID {
	if len(c.phases) == 0 {
		return ""
	}
	return c.phases[len(c.phases)-1].ID
}

// Phase returns the phase with the given id.
func (c *Catalog) Phase(id PhaseID) (Phase, bool) {
	return c.lookup(id)
}

// Index returns the catalog position of id, or -1 if it is unknown.
func (c *Catalog) Index(id PhaseID) int {
	if i, ok := c.index[id]; ok {
		return i
	}
	return -1
}

// Phases returns a copy of the ordered phase list.
func (c *Catalog) Phases() []Phase {
	return append([]Phase(nil), c.phases...)
}

// Evaluations returns a copy of the configured adjacencies.
func (c *Catalog) Evaluations() []Evaluation {
	return append([]Evaluation(nil), c.evaluations...)
}

// Initial returns the first phase.
func (c *Catalog) Initial() Phase {
	return c.phases[0]
}

// Terminal returns the last phase.
func (c *Catalog) Terminal() Phase {
	return c.phases[len(c.phases)-1]
}

// EvaluationBetween returns the internal phase configured between two
// content phases, if any.
func (c *Catalog) EvaluationBetween(from, to PhaseID) (Phase, bool) {
	via, ok := c.via[[2]PhaseID{from, to}]
	if !ok {
		return Phase{}, false
	}
	return c.lookup(via)
}

// Label returns the display label for id, falling back to the id itself.
func (c *Catalog) Label(id PhaseID) string {
	if p, ok := c.lookup(id); ok && p.Label != "" {
		return p.Label
	}
	return string(id)
}
