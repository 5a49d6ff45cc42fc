package event

import (
	"sync"
	"testing"
)

func TestBus_Subscribe(t *testing.T) {
	bus := NewBus()

	called := false
	id := bus.Subscribe("test.event", func(e Event) {
		called = true
	})

	if id == "" {
		t.Error("Subscribe should return a non-empty ID")
	}
	if bus.SubscriptionCount() != 1 {
		t.Errorf("Expected 1 subscription, got %d", bus.SubscriptionCount())
	}
	if called {
		t.Error("Handler should not be called until an event is published")
	}
}

func TestBus_Publish(t *testing.T) {
	bus := NewBus()

	var received Event
	bus.Subscribe(TypeTurnStarted, func(e Event) {
		received = e
	})

	bus.Publish(NewTurnStartedEvent("sess-1", 2, "pro", "rebuttal"))

	if received == nil {
		t.Fatal("Handler should have received the event")
	}
	started, ok := received.(TurnStartedEvent)
	if !ok {
		t.Fatalf("expected TurnStartedEvent, got %T", received)
	}
	if started.Index != 2 || started.Side != "pro" || started.Phase != "rebuttal" {
		t.Errorf("unexpected payload: %+v", started)
	}
	if started.Timestamp().IsZero() {
		t.Error("Timestamp() should be set")
	}
}

func TestBus_PublishNilSafe(t *testing.T) {
	var bus *Bus
	bus.Publish(NewSessionResetEvent("s")) // must not panic

	NewBus().Publish(nil) // must not panic
}

func TestBus_PublishOrder(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.SubscribeAll(func(e Event) { order = append(order, "wild") })
	bus.Subscribe("test.event", func(e Event) { order = append(order, "first") })
	bus.Subscribe("test.event", func(e Event) { order = append(order, "second") })

	bus.Publish(newBaseEvent("test.event"))

	want := []string{"first", "second", "wild"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestBus_PublishNoMatchingHandlers(t *testing.T) {
	bus := NewBus()
	bus.Subscribe("other.event", func(e Event) {
		t.Error("Handler should not be called for non-matching event type")
	})
	bus.Publish(newBaseEvent("test.event"))
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()

	calls := 0
	keep := bus.Subscribe("test.event", func(e Event) { calls++ })
	drop := bus.Subscribe("test.event", func(e Event) { calls += 100 })

	if !bus.Unsubscribe(drop) {
		t.Fatal("Unsubscribe should return true for an existing subscription")
	}
	if bus.Unsubscribe(drop) {
		t.Error("Unsubscribe should return false the second time")
	}

	bus.Publish(newBaseEvent("test.event"))
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if !bus.Unsubscribe(keep) {
		t.Error("Unsubscribe(keep) should return true")
	}
	if bus.SubscriptionCount() != 0 {
		t.Errorf("SubscriptionCount() = %d, want 0", bus.SubscriptionCount())
	}
}

func TestBus_Clear(t *testing.T) {
	bus := NewBus()
	bus.Subscribe("a", func(Event) {})
	bus.SubscribeAll(func(Event) {})
	bus.Clear()
	if bus.SubscriptionCount() != 0 {
		t.Errorf("SubscriptionCount() = %d after Clear, want 0", bus.SubscriptionCount())
	}
}

func TestBus_HandlerPanicRecovery(t *testing.T) {
	bus := NewBus()

	var panicked string
	bus.OnPanic(func(eventType string, recovered any, stack []byte) {
		panicked = eventType
	})

	secondCalled := false
	bus.Subscribe("test.event", func(e Event) { panic("boom") })
	bus.Subscribe("test.event", func(e Event) { secondCalled = true })

	bus.Publish(newBaseEvent("test.event"))

	if panicked != "test.event" {
		t.Errorf("panic hook received %q, want test.event", panicked)
	}
	if !secondCalled {
		t.Error("second handler should run after the first panics")
	}
}

func TestBus_HandlerMayPublish(t *testing.T) {
	bus := NewBus()

	var got []string
	bus.Subscribe(TypeResearchSide, func(e Event) {
		got = append(got, e.EventType())
		bus.Publish(NewResearchCompletedEvent("s"))
	})
	bus.Subscribe(TypeResearchDone, func(e Event) {
		got = append(got, e.EventType())
	})

	bus.Publish(NewResearchSideCompletedEvent("s", "con", 0))

	if len(got) != 2 || got[1] != TypeResearchDone {
		t.Errorf("got %v, want nested publish to be delivered", got)
	}
}

func TestBus_ConcurrentPublish(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	count := 0
	bus.Subscribe("test.event", func(e Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Publish(newBaseEvent("test.event"))
		}()
	}
	wg.Wait()

	if count != 50 {
		t.Errorf("count = %d, want 50", count)
	}
}

func TestBus_UniqueIDs(t *testing.T) {
	bus := NewBus()
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		id := bus.Subscribe("x", func(Event) {})
		if seen[id] {
			t.Fatalf("duplicate subscription ID %q", id)
		}
		seen[id] = true
	}
}
