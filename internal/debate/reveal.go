package debate

import (
	"sync"
	"time"

	"github.com/Iron-Ham/debatemebro/internal/schedule"
)

// Reveal grows a prefix of a text on a fixed tick until the whole text is
// shown. Growth is counted in runes.
//
// Starting a new reveal discards the previous one, including a completion
// that had not yet been delivered. Callbacks run on the scheduler's
// goroutine without the reveal's lock held.
type Reveal struct {
	mu      sync.Mutex
	sched   schedule.Scheduler
	tick    time.Duration
	perTick int

	gen        uint64
	runes      []rune
	shown      int
	active     bool
	done       bool
	timer      schedule.Timer
	onGrow     func(delta string, shown, total int)
	onComplete func()
}

// NewReveal creates an idle reveal driver. runesPerTick values below one are
// raised to one.
func NewReveal(sched schedule.Scheduler, tick time.Duration, runesPerTick int) *Reveal {
	return &Reveal{
		sched:   sched,
		tick:    tick,
		perTick: max(runesPerTick, 1),
	}
}

// Start begins revealing text from an empty prefix. onGrow receives each
// newly shown chunk together with the shown and total rune counts;
// onComplete is called exactly once after the final chunk. Either callback
// may be nil.
func (r *Reveal) Start(text string, onGrow func(delta string, shown, total int), onComplete func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopLocked()
	r.gen++
	r.runes = []rune(text)
	r.shown = 0
	r.active = true
	r.done = false
	r.onGrow = onGrow
	r.onComplete = onComplete
	r.scheduleLocked(r.gen)
}

func (r *Reveal) scheduleLocked(gen uint64) {
	r.timer = r.sched.AfterFunc(r.tick, func() { r.step(gen) })
}

func (r *Reveal) step(gen uint64) {
	r.mu.Lock()
	if gen != r.gen || !r.active {
		r.mu.Unlock()
		return
	}

	prev := r.shown
	r.shown = min(r.shown+r.perTick, len(r.runes))
	delta := string(r.runes[prev:r.shown])
	shown, total := r.shown, len(r.runes)
	grow := r.onGrow

	var complete func()
	if r.shown >= len(r.runes) {
		r.active = false
		r.done = true
		r.timer = nil
		complete = r.onComplete
	} else {
		r.scheduleLocked(gen)
	}
	r.mu.Unlock()

	if grow != nil && delta != "" {
		grow(delta, shown, total)
	}
	if complete != nil {
		complete()
	}
}

// Stop cancels the current reveal without completing it. The shown prefix
// is discarded.
func (r *Reveal) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
	r.gen++
	r.runes = nil
	r.shown = 0
	r.done = false
}

func (r *Reveal) stopLocked() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.active = false
	r.onGrow = nil
	r.onComplete = nil
}

// Text returns the currently shown prefix.
func (r *Reveal) Text() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return string(r.runes[:r.shown])
}

// Progress returns the shown and total rune counts.
func (r *Reveal) Progress() (shown, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shown, len(r.runes)
}

// Active reports whether a reveal is in progress.
func (r *Reveal) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Done reports whether the current text has been fully shown.
func (r *Reveal) Done() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}
