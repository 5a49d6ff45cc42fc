// Package event provides a pub-sub event bus that decouples the debate core
// from its presentation consumers.
//
// The debate controller publishes lifecycle events (session, research, phase,
// turn, judging) and never knows who listens. The terminal UI, the headless
// replay printer, and the logger subscribe without the core depending on
// them.
//
// # Main Types
//
//   - [Event]: Interface that all events implement, providing EventType() and Timestamp()
//   - [Bus]: Synchronous pub-sub dispatcher, safe for concurrent use
//   - [Handler]: Function type for event handlers (func(Event))
//
// # Event Type Naming Convention
//
// Event types follow the pattern "category.action":
//   - session.started, session.reset, session.failed
//   - research.query, research.side_completed, research.completed
//   - phase.transition, phase.changed
//   - turn.started, turn.progress, turn.completed
//   - debate.judging, vote.recorded
//
// # Basic Usage
//
//	bus := event.NewBus()
//	bus.Subscribe(event.TypeTurnCompleted, func(e event.Event) {
//	    done := e.(event.TurnCompletedEvent)
//	    fmt.Printf("turn %d finished (%s)\n", done.Index, done.Side)
//	})
//	bus.SubscribeAll(func(e event.Event) { log.Print(e.EventType()) })
package event
