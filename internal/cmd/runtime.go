package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/Iron-Ham/debatemebro/internal/config"
	"github.com/Iron-Ham/debatemebro/internal/content"
	"github.com/Iron-Ham/debatemebro/internal/debate"
	"github.com/Iron-Ham/debatemebro/internal/event"
	"github.com/Iron-Ham/debatemebro/internal/logging"
	"github.com/Iron-Ham/debatemebro/internal/research"
	"github.com/Iron-Ham/debatemebro/internal/schedule"
)

// runtime bundles everything a command needs to stage debates.
type runtime struct {
	cfg     *config.Config
	logger  *logging.Logger
	catalog *debate.Catalog // fixed for the process; reloads cannot change it
	source  debate.ContentSource
	library func() *content.Library
	watcher *content.Watcher
}

// newRuntime loads configuration, opens the log and selects the content
// source: the configured plan file, or the built-in demo.
func newRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.NopLogger()
	if cfg.Logging.Enabled {
		logger, err = logging.NewLogger(cfg.Logging.LogDir(), cfg.Logging.Level)
		if err != nil {
			return nil, fmt.Errorf("failed to open log: %w", err)
		}
	}

	rt := &runtime{cfg: cfg, logger: logger}
	if cfg.Content.PlanFile == "" {
		lib := content.Demo()
		rt.catalog = lib.Catalog()
		rt.source = lib
		rt.library = func() *content.Library { return lib }
		return rt, nil
	}

	src, err := content.NewFileSource(cfg.Content.PlanFile, logger)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}
	rt.catalog = src.Catalog()
	rt.source = src
	rt.library = src.Library

	if cfg.Content.Watch {
		w, err := content.NewWatcher(src, logger)
		if err != nil {
			logger.Warn("plan file watching disabled", "path", src.Path(), "error", err)
		} else {
			w.Start()
			rt.watcher = w
		}
	}
	return rt, nil
}

// Close stops the watcher and closes the log.
func (rt *runtime) Close() {
	if rt.watcher != nil {
		rt.watcher.Stop()
	}
	_ = rt.logger.Close()
}

// topic joins args into a topic, defaulting to the first scripted one.
func (rt *runtime) topic(args []string) string {
	if t := strings.TrimSpace(strings.Join(args, " ")); t != "" {
		return t
	}
	if topics := rt.library().Topics(); len(topics) > 0 {
		return topics[0]
	}
	return ""
}

// controller builds a controller over the runtime's content.
func (rt *runtime) controller(opts ...debate.Option) (*debate.Controller, error) {
	base := []debate.Option{
		debate.WithLogger(rt.logger),
		debate.WithBus(event.NewBus()),
		debate.WithPacing(rt.cfg.DebatePacing()),
	}
	return debate.NewController(rt.catalog, rt.source, append(base, opts...)...)
}

// simulator builds a research simulator with the configured timings.
func (rt *runtime) simulator(opts ...research.Option) *research.Simulator {
	return research.NewSimulator(
		rt.cfg.Research.QueryInterval(),
		rt.cfg.Research.FinishDelay(),
		append([]research.Option{research.WithLogger(rt.logger)}, opts...)...,
	)
}

// instantSimulator surfaces every query at once.
func instantSimulator(rt *runtime, opts ...research.Option) *research.Simulator {
	return research.NewSimulator(0, 0, append([]research.Option{research.WithLogger(rt.logger)}, opts...)...)
}

// runHeadless stages one debate without a UI and returns its session once
// it is terminal. With a manual clock every pause is skipped; otherwise the
// real pacing plays out.
func runHeadless(ctx context.Context, ctl *debate.Controller, sim *research.Simulator, clock *schedule.Manual, topic string) (*debate.Session, error) {
	done := make(chan struct{}, 1)
	signal := func(event.Event) {
		select {
		case done <- struct{}{}:
		default:
		}
	}
	bus := ctl.Bus()
	judged := bus.Subscribe(event.TypeJudging, signal)
	failed := bus.Subscribe(event.TypeSessionFailed, signal)
	defer bus.Unsubscribe(judged)
	defer bus.Unsubscribe(failed)

	sess, err := ctl.Start(topic)
	if err != nil {
		return nil, err
	}

	if clock != nil {
		if err := sim.Run(ctx, sess, sess.Plan()); err != nil {
			return sess, err
		}
		clock.RunAll(0)
		if !sess.IsTerminal() && sess.Status() != debate.StatusFailed {
			return sess, fmt.Errorf("debate %s stalled in phase %s", sess.ID(), sess.CurrentPhase())
		}
		return sess, nil
	}

	simCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() { _ = sim.Run(simCtx, sess, sess.Plan()) }()

	select {
	case <-done:
		return sess, nil
	case <-ctx.Done():
		ctl.Reset()
		return sess, ctx.Err()
	}
}
