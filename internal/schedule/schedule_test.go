package schedule

import (
	"sync"
	"testing"
	"time"
)

func TestManual_AdvanceFiresInOrder(t *testing.T) {
	m := NewManual()

	var got []string
	m.AfterFunc(30*time.Millisecond, func() { got = append(got, "c") })
	m.AfterFunc(10*time.Millisecond, func() { got = append(got, "a") })
	m.AfterFunc(10*time.Millisecond, func() { got = append(got, "b") })

	if n := m.Advance(9 * time.Millisecond); n != 0 {
		t.Fatalf("Advance(9ms) fired %d tasks, want 0", n)
	}
	if n := m.Advance(time.Millisecond); n != 2 {
		t.Fatalf("Advance(1ms) fired %d tasks, want 2", n)
	}
	m.Advance(time.Hour)

	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if m.Elapsed() != time.Hour+10*time.Millisecond {
		t.Errorf("Elapsed() = %v", m.Elapsed())
	}
}

func TestManual_NestedScheduling(t *testing.T) {
	m := NewManual()

	count := 0
	var tick func()
	tick = func() {
		count++
		if count < 5 {
			m.AfterFunc(10*time.Millisecond, tick)
		}
	}
	m.AfterFunc(10*time.Millisecond, tick)

	m.Advance(35 * time.Millisecond)
	if count != 3 {
		t.Errorf("count = %d after 35ms, want 3", count)
	}
	m.RunAll(0)
	if count != 5 {
		t.Errorf("count = %d after RunAll, want 5", count)
	}
	if m.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", m.Pending())
	}
}

func TestManual_Stop(t *testing.T) {
	m := NewManual()

	fired := false
	timer := m.AfterFunc(time.Second, func() { fired = true })
	if !timer.Stop() {
		t.Fatal("Stop() = false for a pending task")
	}
	if timer.Stop() {
		t.Error("second Stop() = true, want false")
	}
	m.Advance(2 * time.Second)
	if fired {
		t.Error("stopped task fired")
	}

	done := m.AfterFunc(0, func() {})
	m.Advance(0)
	if done.Stop() {
		t.Error("Stop() after firing = true, want false")
	}
}

func TestManual_RunAllLimit(t *testing.T) {
	m := NewManual()
	var loop func()
	loop = func() { m.AfterFunc(time.Millisecond, loop) }
	m.AfterFunc(0, loop)

	if n := m.RunAll(10); n != 10 {
		t.Errorf("RunAll(10) = %d, want 10", n)
	}
}

func TestReal_AfterFunc(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	Real{}.AfterFunc(time.Millisecond, wg.Done)
	wg.Wait()

	stopped := Real{}.AfterFunc(time.Hour, func() { t.Error("stopped timer fired") })
	if !stopped.Stop() {
		t.Error("Stop() = false for a pending timer")
	}
}
