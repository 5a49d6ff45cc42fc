package debate

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/Iron-Ham/debatemebro/internal/errors"
	"github.com/Iron-Ham/debatemebro/internal/event"
	"github.com/Iron-Ham/debatemebro/internal/logging"
	"github.com/Iron-Ham/debatemebro/internal/schedule"
)

// Controller owns the session lifecycle. At most one session is current;
// starting or resetting supersedes it.
type Controller struct {
	mu      sync.Mutex
	gen     atomic.Uint64
	current *Session

	catalog *Catalog
	source  ContentSource
	pacing  Pacing
	sched   schedule.Scheduler
	bus     *event.Bus
	logger  *logging.Logger
	newID   func() string
}

// Option configures a Controller.
type Option func(*Controller)

// WithScheduler sets the scheduler for every delay. Tests pass a
// *schedule.Manual.
func WithScheduler(s schedule.Scheduler) Option {
	return func(c *Controller) { c.sched = s }
}

// WithBus sets the bus that receives session events.
func WithBus(b *event.Bus) Option {
	return func(c *Controller) { c.bus = b }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithPacing overrides DefaultPacing.
func WithPacing(p Pacing) Option {
	return func(c *Controller) { c.pacing = p }
}

// WithIDGenerator overrides the session id generator.
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) { c.newID = fn }
}

// NewController creates a controller over catalog and source. A nil catalog
// means DefaultCatalog.
func NewController(catalog *Catalog, source ContentSource, opts ...Option) (*Controller, error) {
	if source == nil {
		return nil, fmt.Errorf("new controller: %w", errors.ErrContentNotFound)
	}
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	c := &Controller{
		catalog: catalog,
		source:  source,
		pacing:  DefaultPacing(),
		sched:   schedule.Real{},
		logger:  logging.NopLogger(),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.pacing.Validate(); err != nil {
		return nil, fmt.Errorf("new controller: %w", err)
	}
	return c, nil
}

// Catalog returns the controller's phase catalog.
func (c *Controller) Catalog() *Catalog { return c.catalog }

// Pacing returns the controller's pacing.
func (c *Controller) Pacing() Pacing { return c.pacing }

// Bus returns the event bus, which may be nil.
func (c *Controller) Bus() *event.Bus { return c.bus }

// Start loads and validates the plan for topic, supersedes the current
// session, and returns a new session in the research phase.
func (c *Controller) Start(topic string) (*Session, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("start session: %w", errors.ErrEmptyTopic)
	}
	plan, err := c.source.Plan(topic)
	if err != nil {
		return nil, fmt.Errorf("start session: load plan for %q: %w", topic, err)
	}
	plan = plan.Clone()
	if err := plan.Validate(c.catalog); err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	if plan.Topic == "" {
		plan.Topic = topic
	}

	c.mu.Lock()
	var evs []event.Event
	if old := c.current; old != nil {
		evs = append(evs, old.supersede()...)
	}
	gen := c.gen.Add(1)
	s := newSession(c, gen, c.newID(), topic, plan)
	evs = append(evs, s.begin()...)
	c.current = s
	c.mu.Unlock()

	c.publish(evs)
	return s, nil
}

// Reset supersedes the current session and returns to the pre-session
// state.
func (c *Controller) Reset() {
	c.mu.Lock()
	old := c.current
	c.current = nil
	c.gen.Add(1)
	var evs []event.Event
	if old != nil {
		evs = old.supersede()
	}
	c.mu.Unlock()

	c.publish(evs)
}

// Current returns the live session, or nil before the first start and after
// a reset.
func (c *Controller) Current() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *Controller) publish(evs []event.Event) {
	if c.bus == nil {
		return
	}
	for _, e := range evs {
		c.bus.Publish(e)
	}
}
