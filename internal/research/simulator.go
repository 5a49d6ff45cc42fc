// Package research plays back a plan's scripted research phase.
//
// Each side runs in its own goroutine: its queries are recorded one at a
// time at a fixed interval, and after a short finishing delay the side
// signals completion. The session's barrier takes it from there.
package research

import (
	"context"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/Iron-Ham/debatemebro/internal/debate"
	"github.com/Iron-Ham/debatemebro/internal/logging"
)

// Default timings.
const (
	DefaultQueryInterval = 700 * time.Millisecond
	DefaultFinishDelay   = 500 * time.Millisecond
)

// Target receives research progress. *debate.Session implements it.
type Target interface {
	RecordResearchQuery(side debate.Side, q debate.ResearchQuery) bool
	ResearchSideComplete(side debate.Side) bool
	// Err explains why the target stopped accepting research, if it did.
	Err() error
}

// Simulator reveals research queries on a timer.
type Simulator struct {
	interval    time.Duration
	finishDelay time.Duration
	logger      *logging.Logger

	// skip lists sides that never signal completion.
	skip map[debate.Side]bool
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Simulator) { s.logger = l }
}

// WithStalledSide makes side record its queries but never report
// completion, which leaves the session to its research timeout.
func WithStalledSide(side debate.Side) Option {
	return func(s *Simulator) { s.skip[side] = true }
}

// NewSimulator creates a simulator. Negative durations are treated as zero.
func NewSimulator(interval, finishDelay time.Duration, opts ...Option) *Simulator {
	s := &Simulator{
		interval:    max(interval, 0),
		finishDelay: max(finishDelay, 0),
		logger:      logging.NopLogger(),
		skip:        make(map[debate.Side]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run plays the plan's research for every participant and blocks until all
// sides are done, the target stops accepting input, or ctx is cancelled.
// When cancelled the returned error wraps ctx.Err(). When the target stops
// accepting queries, Run returns the target's Err.
func (s *Simulator) Run(ctx context.Context, target Target, plan *debate.Plan) error {
	p := pool.New().WithContext(ctx)
	for _, side := range plan.Participants() {
		queries := plan.Research[side]
		p.Go(func(ctx context.Context) error {
			return s.runSide(ctx, target, side, queries)
		})
	}
	return p.Wait()
}

func (s *Simulator) runSide(ctx context.Context, target Target, side debate.Side, queries []debate.ResearchQuery) error {
	log := s.logger.WithSide(string(side))

	for i, q := range queries {
		if err := sleep(ctx, s.interval); err != nil {
			return err
		}
		if !target.RecordResearchQuery(side, q) {
			err := target.Err()
			log.Debug("research target stopped accepting queries", "recorded", i, "error", err)
			return err
		}
	}

	if s.skip[side] {
		log.Debug("side stalled, not signaling completion")
		return nil
	}
	if err := sleep(ctx, s.finishDelay); err != nil {
		return err
	}
	target.ResearchSideComplete(side)
	log.Debug("research finished", "queries", len(queries))
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
