package debate

import "sort"

// MaxScore is the top of the 0..5 rubric scale.
const MaxScore = 5

// Criterion names one rubric dimension.
type Criterion string

const (
	CriterionLogic      Criterion = "logic"
	CriterionEvidence   Criterion = "evidence"
	CriterionRefutation Criterion = "refutation"
	CriterionSteelman   Criterion = "steelman"
)

// RubricItem is a criterion with its percentage weight.
type RubricItem struct {
	Criterion Criterion
	Label     string
	Weight    int
}

// Rubric returns the judging criteria in display order. Weights sum to 100.
func Rubric() []RubricItem {
	return []RubricItem{
		{CriterionLogic, "Logical Validity", 30},
		{CriterionEvidence, "Evidence Quality", 25},
		{CriterionRefutation, "Refutation Strength", 25},
		{CriterionSteelman, "Steelmanning Quality", 20},
	}
}

// Judge and human shares of a blended result.
const (
	JudgeShare = 0.6
	HumanShare = 0.4
)

// Scores is one side's scorecard.
type Scores struct {
	Logic      int `yaml:"logic" json:"logic"`
	Evidence   int `yaml:"evidence" json:"evidence"`
	Refutation int `yaml:"refutation" json:"refutation"`
	Steelman   int `yaml:"steelman" json:"steelman"`
}

// Get returns the score for c, or zero for an unknown criterion.
func (s Scores) Get(c Criterion) int {
	switch c {
	case CriterionLogic:
		return s.Logic
	case CriterionEvidence:
		return s.Evidence
	case CriterionRefutation:
		return s.Refutation
	case CriterionSteelman:
		return s.Steelman
	}
	return 0
}

// Weighted returns the weighted total on the 0..5 scale.
func (s Scores) Weighted() float64 {
	var total float64
	for _, item := range Rubric() {
		total += float64(s.Get(item.Criterion)) * float64(item.Weight) / 100
	}
	return total
}

// JudgeNote is one judge's written reasoning.
type JudgeNote struct {
	Name      string `yaml:"name" json:"name"`
	Reasoning string `yaml:"reasoning" json:"reasoning"`
}

// Verdict is the judges' written summary of a debate. Panel describes how
// the judging was done, e.g. the judge count and position-swap agreement.
type Verdict struct {
	Headline string      `yaml:"headline,omitempty" json:"headline,omitempty"`
	Summary  string      `yaml:"summary,omitempty" json:"summary,omitempty"`
	Panel    string      `yaml:"panel,omitempty" json:"panel,omitempty"`
	Judges   []JudgeNote `yaml:"judges,omitempty" json:"judges,omitempty"`
}

// Clone returns a deep copy of v.
func (v *Verdict) Clone() *Verdict {
	if v == nil {
		return nil
	}
	c := *v
	c.Judges = append([]JudgeNote(nil), v.Judges...)
	return &c
}

// Results is the judged outcome of a debate.
type Results struct {
	Scores map[Side]Scores
	Totals map[Side]float64
	// Winner is empty when the top totals tie or there are no scores.
	Winner Side
	// Verdict is the plan's written verdict, nil when the plan has none.
	Verdict *Verdict
}

// Judge computes weighted totals and the winner from per-side scorecards.
func Judge(scores map[Side]Scores) Results {
	r := Results{
		Scores: make(map[Side]Scores, len(scores)),
		Totals: make(map[Side]float64, len(scores)),
	}
	for side, sc := range scores {
		r.Scores[side] = sc
		r.Totals[side] = sc.Weighted()
	}
	r.Winner = leader(r.Totals)
	return r
}

// Blend mixes judge totals with a human vote. The voted side receives the
// full human share; other sides receive none. An empty vote returns the
// judge totals scaled to the judge share only.
func (r Results) Blend(vote Side) map[Side]float64 {
	out := make(map[Side]float64, len(r.Totals))
	for side, total := range r.Totals {
		v := total / MaxScore * JudgeShare
		if side == vote {
			v += HumanShare
		}
		out[side] = v
	}
	return out
}

// leader returns the side with the strictly highest value.
func leader(totals map[Side]float64) Side {
	sides := make([]Side, 0, len(totals))
	for s := range totals {
		sides = append(sides, s)
	}
	sort.Slice(sides, func(i, j int) bool { return totals[sides[i]] > totals[sides[j]] })
	if len(sides) == 0 || (len(sides) > 1 && totals[sides[0]] == totals[sides[1]]) {
		return ""
	}
	return sides[0]
}
