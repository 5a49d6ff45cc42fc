// Package debate implements the phase and turn orchestration core of a
// staged debate.
//
// A debate runs over a Catalog of phases. The first phase is research, the
// last is judging, and internal evaluation phases may sit between content
// phases as timed pauses. A Plan supplies the ordered turns each side
// delivers. The core never generates content; it only reveals the plan's
// text at a controlled pace and records what has been shown.
//
// # Components
//
//   - Barrier waits for every participant to report research completion and
//     releases once after a settle delay.
//   - Reveal grows a prefix of a turn's text on a fixed tick and signals
//     completion exactly once.
//   - Session sequences phases and turns, inserting turn gaps, direct
//     transitions, and evaluation dwells.
//   - Controller starts and resets sessions. Starting supersedes the
//     previous session.
//
// # Scheduling
//
// Every delay goes through a schedule.Scheduler. Scheduled tasks carry the
// generation of the session that created them and are discarded once that
// session is superseded, so a stale timer can never mutate a newer session.
// Tests drive time with schedule.Manual.
//
// # Usage
//
//	ctl, err := debate.NewController(nil, content.Demo(), debate.WithBus(bus))
//	if err != nil { ... }
//	sess, err := ctl.Start("Should universal basic income be adopted?")
//	sess.ResearchSideComplete(debate.SidePro)
//	sess.ResearchSideComplete(debate.SideCon)
//	// ... phases and turns advance on their own; observe via bus or Snapshot.
//
// # Thread Safety
//
// Controller, Session, Barrier, and Reveal are safe for concurrent use.
// Events are published after the session lock is released, so handlers may
// call back into the session.
package debate
