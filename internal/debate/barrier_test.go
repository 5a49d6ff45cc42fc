package debate

import (
	"testing"
	"time"

	"github.com/Iron-Ham/debatemebro/internal/schedule"
)

func TestBarrier_FiresOnceAfterAllSides(t *testing.T) {
	m := schedule.NewManual()
	fired := 0
	b := NewBarrier(DefaultSides(), m, 800*time.Millisecond, func() { fired++ })

	if accepted, complete := b.Signal(SidePro); !accepted || complete {
		t.Fatalf("Signal(pro) = %v, %v; want true, false", accepted, complete)
	}
	m.Advance(time.Hour)
	if fired != 0 {
		t.Fatal("barrier fired with con outstanding")
	}
	if got := b.Remaining(); len(got) != 1 || got[0] != SideCon {
		t.Errorf("Remaining() = %v, want [con]", got)
	}

	if accepted, complete := b.Signal(SideCon); !accepted || !complete {
		t.Fatalf("Signal(con) = %v, %v; want true, true", accepted, complete)
	}
	if !b.Complete() || b.Fired() {
		t.Error("barrier should be complete but not yet fired during settle")
	}

	m.Advance(799 * time.Millisecond)
	if fired != 0 {
		t.Fatal("barrier fired before the settle delay elapsed")
	}
	m.Advance(time.Millisecond)
	if fired != 1 {
		t.Fatalf("fired = %d after settle, want 1", fired)
	}

	if accepted, _ := b.Signal(SidePro); accepted {
		t.Error("repeat signal after firing was accepted")
	}
	m.RunAll(0)
	if fired != 1 {
		t.Errorf("fired = %d after repeat signals, want 1", fired)
	}
}

func TestBarrier_IgnoresRepeatAndUnknown(t *testing.T) {
	m := schedule.NewManual()
	fired := 0
	b := NewBarrier(DefaultSides(), m, 0, func() { fired++ })

	b.Signal(SidePro)
	if accepted, _ := b.Signal(SidePro); accepted {
		t.Error("repeat signal was accepted")
	}
	if accepted, _ := b.Signal("moderator"); accepted {
		t.Error("unknown side was accepted")
	}
	m.RunAll(0)
	if fired != 0 {
		t.Error("barrier fired without con")
	}
}

func TestBarrier_ArbitraryParticipants(t *testing.T) {
	m := schedule.NewManual()
	fired := 0
	sides := []Side{"a", "b", "c", "a"}
	b := NewBarrier(sides, m, 0, func() { fired++ })

	if got := len(b.Remaining()); got != 3 {
		t.Fatalf("Remaining() has %d sides, want 3 (duplicates collapsed)", got)
	}
	for _, s := range []Side{"c", "a"} {
		b.Signal(s)
	}
	m.RunAll(0)
	if fired != 0 {
		t.Fatal("fired before b signaled")
	}
	b.Signal("b")
	m.RunAll(0)
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
}

func TestBarrier_CancelPreventsRelease(t *testing.T) {
	m := schedule.NewManual()
	fired := false
	b := NewBarrier(DefaultSides(), m, time.Second, func() { fired = true })

	b.Signal(SidePro)
	b.Signal(SideCon)
	b.Cancel()
	m.RunAll(0)
	if fired {
		t.Error("canceled barrier fired")
	}
	if accepted, _ := NewBarrier(nil, m, 0, nil).Signal(SidePro); accepted {
		t.Error("barrier with no participants accepted a signal")
	}
}
