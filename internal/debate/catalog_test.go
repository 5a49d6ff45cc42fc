package debate

import (
	"strings"
	"testing"

	"github.com/Iron-Ham/debatemebro/internal/errors"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()

	if c.Initial().ID != PhaseResearch {
		t.Errorf("Initial() = %q, want %q", c.Initial().ID, PhaseResearch)
	}
	if c.Terminal().ID != PhaseJudging {
		t.Errorf("Terminal() = %q, want %q", c.Terminal().ID, PhaseJudging)
	}
	if got := len(c.Phases()); got != 7 {
		t.Errorf("len(Phases()) = %d, want 7", got)
	}

	eval, ok := c.EvaluationBetween(PhaseOpening, PhaseRebuttal)
	if !ok || eval.ID != PhaseEvalRebuttal || !eval.Internal {
		t.Errorf("EvaluationBetween(opening, rebuttal) = %+v, %v", eval, ok)
	}
	if _, ok := c.EvaluationBetween(PhaseClosing, PhaseJudging); ok {
		t.Error("closing -> judging should have no evaluation phase")
	}
	if _, ok := c.EvaluationBetween(PhaseOpening, PhaseClosing); ok {
		t.Error("opening -> closing should have no evaluation phase")
	}
	if c.Index(PhaseRebuttal) != 3 {
		t.Errorf("Index(rebuttal) = %d, want 3", c.Index(PhaseRebuttal))
	}
	if c.Index("nope") != -1 {
		t.Errorf("Index(unknown) = %d, want -1", c.Index("nope"))
	}
	if c.Label(PhaseOpening) != "Opening Arguments" {
		t.Errorf("Label(opening) = %q", c.Label(PhaseOpening))
	}
	if c.Label("custom") != "custom" {
		t.Errorf("Label(unknown) = %q, want id fallback", c.Label("custom"))
	}
}

func TestNewCatalog_Invalid(t *testing.T) {
	content := func(id PhaseID) Phase { return Phase{ID: id, Label: string(id)} }
	internal := func(id PhaseID) Phase { return Phase{ID: id, Label: string(id), Internal: true} }

	tests := []struct {
		name        string
		phases      []Phase
		evaluations []Evaluation
		wantProblem string
	}{
		{
			name:        "too few phases",
			phases:      []Phase{content("research")},
			wantProblem: "at least an initial and a terminal phase",
		},
		{
			name:        "duplicate id",
			phases:      []Phase{content("research"), content("opening"), content("opening"), content("judging")},
			wantProblem: `duplicate phase id "opening"`,
		},
		{
			name:        "empty id",
			phases:      []Phase{content("research"), content(""), content("judging")},
			wantProblem: "empty id",
		},
		{
			name:        "internal terminal",
			phases:      []Phase{content("research"), content("opening"), internal("judging")},
			wantProblem: "terminal phase",
		},
		{
			name:        "unknown adjacency phase",
			phases:      []Phase{content("research"), content("opening"), content("closing"), content("judging")},
			evaluations: []Evaluation{{From: "opening", To: "closing", Via: "eval"}},
			wantProblem: `unknown phase "eval"`,
		},
		{
			name:        "via not internal",
			phases:      []Phase{content("research"), content("opening"), content("middle"), content("closing"), content("judging")},
			evaluations: []Evaluation{{From: "opening", To: "closing", Via: "middle"}},
			wantProblem: "not internal",
		},
		{
			name:        "adjacency into terminal",
			phases:      []Phase{content("research"), content("closing"), internal("eval"), content("judging")},
			evaluations: []Evaluation{{From: "closing", To: "judging", Via: "eval"}},
			wantProblem: "terminal phase",
		},
		{
			name:        "adjacency from initial",
			phases:      []Phase{content("research"), internal("eval"), content("opening"), content("judging")},
			evaluations: []Evaluation{{From: "research", To: "opening", Via: "eval"}},
			wantProblem: "initial phase",
		},
		{
			name:        "adjacency runs backwards",
			phases:      []Phase{content("research"), content("opening"), internal("eval"), content("closing"), content("judging")},
			evaluations: []Evaluation{{From: "closing", To: "opening", Via: "eval"}},
			wantProblem: `"closing" must come before "opening"`,
		},
		{
			name:        "via before from",
			phases:      []Phase{content("research"), internal("eval"), content("opening"), content("closing"), content("judging")},
			evaluations: []Evaluation{{From: "opening", To: "closing", Via: "eval"}},
			wantProblem: `routes through "eval", which is not between them`,
		},
		{
			name:        "via after to",
			phases:      []Phase{content("research"), content("opening"), content("closing"), internal("eval"), content("judging")},
			evaluations: []Evaluation{{From: "opening", To: "closing", Via: "eval"}},
			wantProblem: "not between them",
		},
		{
			name:   "duplicate adjacency",
			phases: []Phase{content("research"), content("opening"), internal("eval"), content("closing"), content("judging")},
			evaluations: []Evaluation{
				{From: "opening", To: "closing", Via: "eval"},
				{From: "opening", To: "closing", Via: "eval"},
			},
			wantProblem: "duplicate evaluation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCatalog(tt.phases, tt.evaluations)
			if err == nil {
				t.Fatalf("NewCatalog() = %v, want error", c)
			}
			if !errors.Is(err, errors.ErrCatalogInvalid) {
				t.Errorf("error %v does not wrap ErrCatalogInvalid", err)
			}
			if !errors.IsConfigError(err) {
				t.Errorf("error %v is not a ConfigError", err)
			}
			if !strings.Contains(err.Error(), tt.wantProblem) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantProblem)
			}
		})
	}
}

func TestNewCatalog_ReportsEveryProblem(t *testing.T) {
	_, err := NewCatalog(
		[]Phase{{ID: "research"}, {ID: "a"}, {ID: "a"}, {ID: "judging", Internal: true}},
		[]Evaluation{{From: "a", To: "b", Via: "c"}},
	)
	var ce *errors.ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("error %v is not a ConfigError", err)
	}
	if ce.Len() != 3 {
		t.Errorf("Len() = %d, want 3; problems: %v", ce.Len(), ce.Problems)
	}
}

func TestCatalog_PhasesIsACopy(t *testing.T) {
	c := DefaultCatalog()
	phases := c.Phases()
	phases[0].Label = "changed"
	if c.Initial().Label == "changed" {
		t.Error("mutating Phases() result changed the catalog")
	}
}

func TestCatalog_Equal(t *testing.T) {
	custom, err := NewCatalog([]Phase{{ID: "research"}, {ID: "statements"}, {ID: "verdict"}}, nil)
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	relabeled := DefaultPhases()
	relabeled[1].Label = "Openers"
	renamed, err := NewCatalog(relabeled, DefaultEvaluations())
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}

	tests := []struct {
		name string
		a, b *Catalog
		want bool
	}{
		{"default twice", DefaultCatalog(), DefaultCatalog(), true},
		{"different phases", DefaultCatalog(), custom, false},
		{"different label", DefaultCatalog(), renamed, false},
		{"nil and catalog", nil, custom, false},
		{"both nil", nil, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}
