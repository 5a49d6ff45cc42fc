// Package logging provides structured logging for debatemebro.
//
// It wraps Go's log/slog with a JSON handler and adds child loggers that carry
// persistent debate context (session, phase, side) so the log of a single
// debate can be filtered after the fact.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/tmp/debatemebro", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	sessLog := logger.WithSession("a1b2").WithPhase("opening")
//	sessLog.Info("turn started", "index", 0, "side", "pro")
//
// A nil *Logger is safe to call and discards everything; [NopLogger] gives an
// explicit discarding logger for tests.
package logging
