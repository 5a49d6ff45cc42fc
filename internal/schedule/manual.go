package schedule

import (
	"sync"
	"time"
)

// Manual is a Scheduler driven by virtual time. Nothing fires until Advance
// or RunAll is called, and callbacks run synchronously on the caller's
// goroutine in due-time order (ties in scheduling order).
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	seq   uint64
	tasks []*manualTask
}

type manualTask struct {
	m       *Manual
	at      time.Duration
	seq     uint64
	f       func()
	stopped bool
}

// Stop implements Timer.
func (t *manualTask) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()

	for i, task := range t.m.tasks {
		if task == t {
			t.m.tasks = append(t.m.tasks[:i], t.m.tasks[i+1:]...)
			t.stopped = true
			return true
		}
	}
	return false
}

// NewManual creates a Manual scheduler at virtual time zero.
func NewManual() *Manual {
	return &Manual{}
}

// AfterFunc implements Scheduler. Negative delays are treated as zero.
func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	if d < 0 {
		d = 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	t := &manualTask{m: m, at: m.now + d, seq: m.seq, f: f}
	m.tasks = append(m.tasks, t)
	return t
}

// Advance moves virtual time forward by d, firing every task that comes due,
// including tasks scheduled by callbacks during the advance. It returns the
// number of callbacks run.
func (m *Manual) Advance(d time.Duration) int {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	fired := 0
	for {
		t := m.popDue(target)
		if t == nil {
			break
		}
		t.f()
		fired++
	}

	m.mu.Lock()
	if m.now < target {
		m.now = target
	}
	m.mu.Unlock()
	return fired
}

// RunAll fires pending tasks in order, advancing virtual time to each one,
// until none remain or limit callbacks have run. A limit of zero or less
// means no limit. It returns the number of callbacks run.
func (m *Manual) RunAll(limit int) int {
	fired := 0
	for limit <= 0 || fired < limit {
		t := m.popDue(-1)
		if t == nil {
			break
		}
		t.f()
		fired++
	}
	return fired
}

// popDue removes and returns the earliest task due at or before target, or
// any earliest task when target is negative.
func (m *Manual) popDue(target time.Duration) *manualTask {
	m.mu.Lock()
	defer m.mu.Unlock()

	best := -1
	for i, t := range m.tasks {
		if target >= 0 && t.at > target {
			continue
		}
		if best < 0 || t.at < m.tasks[best].at || (t.at == m.tasks[best].at && t.seq < m.tasks[best].seq) {
			best = i
		}
	}
	if best < 0 {
		return nil
	}

	t := m.tasks[best]
	m.tasks = append(m.tasks[:best], m.tasks[best+1:]...)
	if t.at > m.now {
		m.now = t.at
	}
	return t
}

// Pending returns the number of scheduled, unfired tasks.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Elapsed returns the current virtual time.
func (m *Manual) Elapsed() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}
