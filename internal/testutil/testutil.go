// Package testutil provides testing utilities for debatemebro tests.
package testutil

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Iron-Ham/debatemebro/internal/event"
)

// WriteFile writes body to name inside a fresh temporary directory and
// returns its path. The directory is removed when the test completes.
func WriteFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// EventRecorder collects every event published on a bus.
type EventRecorder struct {
	mu     sync.Mutex
	events []event.Event
}

// RecordEvents subscribes a new recorder to bus. The subscription is removed
// when the test completes.
func RecordEvents(t *testing.T, bus *event.Bus) *EventRecorder {
	t.Helper()
	r := &EventRecorder{}
	id := bus.SubscribeAll(func(e event.Event) {
		r.mu.Lock()
		r.events = append(r.events, e)
		r.mu.Unlock()
	})
	t.Cleanup(func() { bus.Unsubscribe(id) })
	return r
}

// Events returns a copy of the recorded events in publish order.
func (r *EventRecorder) Events() []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]event.Event(nil), r.events...)
}

// Types returns the recorded event types, skipping any listed in skip.
func (r *EventRecorder) Types(skip ...string) []string {
	var out []string
	for _, e := range r.Events() {
		skipped := false
		for _, s := range skip {
			if e.EventType() == s {
				skipped = true
				break
			}
		}
		if !skipped {
			out = append(out, e.EventType())
		}
	}
	return out
}

// Count returns how many events of eventType were recorded.
func (r *EventRecorder) Count(eventType string) int {
	n := 0
	for _, e := range r.Events() {
		if e.EventType() == eventType {
			n++
		}
	}
	return n
}

// WaitFor polls cond until it returns true or timeout elapses, failing the
// test on timeout.
func WaitFor(t *testing.T, timeout time.Duration, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out after %v waiting for %s", timeout, what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}
