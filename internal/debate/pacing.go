package debate

import (
	"time"

	"github.com/Iron-Ham/debatemebro/internal/errors"
)

// Pacing holds every delay the sequencer schedules.
type Pacing struct {
	RevealTick      time.Duration // Interval between reveal growth steps
	RunesPerTick    int           // Runes added to the prefix per step
	SettleDelay     time.Duration // Barrier release delay after the last side reports
	TurnGap         time.Duration // Pause after a completed turn before advancing
	TransitionDelay time.Duration // Direct phase transition delay
	EvaluationDwell time.Duration // Time spent inside an internal evaluation phase
	ResearchTimeout time.Duration // Zero disables the research timeout
}

// DefaultPacing returns the pacing used by the interactive UI.
func DefaultPacing() Pacing {
	return Pacing{
		RevealTick:      8 * time.Millisecond,
		RunesPerTick:    3,
		SettleDelay:     800 * time.Millisecond,
		TurnGap:         600 * time.Millisecond,
		TransitionDelay: time.Second,
		EvaluationDwell: 2500 * time.Millisecond,
		ResearchTimeout: 60 * time.Second,
	}
}

// Instant returns pacing with every delay zeroed and whole-text reveals,
// useful for headless runs.
func Instant() Pacing {
	return Pacing{RunesPerTick: 1 << 20}
}

// Validate reports negative delays and a non-positive growth rate.
func (p Pacing) Validate() error {
	ce := errors.NewConfigError("pacing", errors.ErrConfigInvalid)
	if p.RunesPerTick <= 0 {
		ce.Addf("runes per tick must be positive, got %d", p.RunesPerTick)
	}
	for _, d := range []struct {
		name string
		v    time.Duration
	}{
		{"reveal tick", p.RevealTick},
		{"settle delay", p.SettleDelay},
		{"turn gap", p.TurnGap},
		{"transition delay", p.TransitionDelay},
		{"evaluation dwell", p.EvaluationDwell},
		{"research timeout", p.ResearchTimeout},
	} {
		if d.v < 0 {
			ce.Addf("%s must not be negative, got %v", d.name, d.v)
		}
	}
	return ce.ErrOrNil()
}
