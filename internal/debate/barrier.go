package debate

import (
	"sync"
	"time"

	"github.com/Iron-Ham/debatemebro/internal/schedule"
)

// Barrier waits for every participant in a fixed set to report completion,
// then invokes its release callback exactly once after a settle delay.
//
// Barrier is safe for concurrent use. The release callback runs on the
// scheduler's goroutine without the barrier's lock held.
type Barrier struct {
	mu       sync.Mutex
	sides    []Side
	done     map[Side]bool
	sched    schedule.Scheduler
	settle   time.Duration
	onFire   func()
	timer    schedule.Timer
	fired    bool
	canceled bool
}

// NewBarrier creates a barrier over sides. Duplicate sides are collapsed.
func NewBarrier(sides []Side, sched schedule.Scheduler, settle time.Duration, onFire func()) *Barrier {
	b := &Barrier{
		done:   make(map[Side]bool, len(sides)),
		sched:  sched,
		settle: settle,
		onFire: onFire,
	}
	for _, s := range sides {
		if _, ok := b.done[s]; ok {
			continue
		}
		b.done[s] = false
		b.sides = append(b.sides, s)
	}
	return b
}

// Signal records that side finished. accepted is false for unknown sides,
// repeat signals, and signals after cancellation. complete reports whether
// every side has now reported; the release is scheduled on the transition
// to complete.
func (b *Barrier) Signal(side Side) (accepted, complete bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	already, known := b.done[side]
	if !known || b.canceled {
		return false, b.completeLocked()
	}
	if already {
		return false, b.completeLocked()
	}
	b.done[side] = true
	if !b.completeLocked() {
		return true, false
	}
	b.timer = b.sched.AfterFunc(b.settle, b.release)
	return true, true
}

func (b *Barrier) release() {
	b.mu.Lock()
	if b.fired || b.canceled {
		b.mu.Unlock()
		return
	}
	b.fired = true
	b.timer = nil
	fn := b.onFire
	b.mu.Unlock()

	if fn != nil {
		fn()
	}
}

func (b *Barrier) completeLocked() bool {
	for _, ok := range b.done {
		if !ok {
			return false
		}
	}
	return true
}

// Done reports whether side has signaled.
func (b *Barrier) Done(side Side) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.done[side]
}

// Remaining returns the sides that have not signaled, in participant order.
func (b *Barrier) Remaining() []Side {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []Side
	for _, s := range b.sides {
		if !b.done[s] {
			out = append(out, s)
		}
	}
	return out
}

// States returns a copy of the per-side completion flags.
func (b *Barrier) States() map[Side]bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[Side]bool, len(b.done))
	for s, v := range b.done {
		out[s] = v
	}
	return out
}

// Complete reports whether every side has signaled. The release may still
// be pending.
func (b *Barrier) Complete() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.completeLocked()
}

// Fired reports whether the release callback has run.
func (b *Barrier) Fired() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fired
}

// Cancel stops a pending release and makes future signals no-ops.
func (b *Barrier) Cancel() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.canceled = true
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
