package core

import (
	"testing"
	"time"

	"github.com/valter-silva-au/cyber-warrior/pkg/models"
	"go.uber.org/goleak"
)

func collectChanges(t *testing.T, ch <-chan PhaseChange, n int) []PhaseChange {
	t.Helper()
	var out []PhaseChange
	timeout := time.After(5 * time.Second)
	for len(out) < n {
		select {
		case c := <-ch:
			out = append(out, c)
		case <-timeout:
			t.Fatalf("timed out after %d of %d phase changes: %v", len(out), n, out)
		}
	}
	return out
}

func TestHelperTimer_RunsOneCycle(t *testing.T) {
	defer goleak.VerifyNone(t)

	ch := make(chan PhaseChange, 16)
	h := NewHelperTimer(5*time.Millisecond, func(c PhaseChange) { ch <- c })
	defer h.Close()

	h.Start()
	got := collectChanges(t, ch, 5)

	want := []PhaseChange{
		{Phase: models.PhaseBreatheIn, Active: true},
		{Phase: models.PhaseHoldIn, Active: true},
		{Phase: models.PhaseBreatheOut, Active: true},
		{Phase: models.PhaseHoldOut, Active: true},
		{Phase: models.PhaseBreatheIn, Active: false},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("change %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	// No further ticks once the cycle is over.
	select {
	case c := <-ch:
		t.Errorf("unexpected change after cycle end: %+v", c)
	case <-time.After(30 * time.Millisecond):
	}
	if _, active := h.Phase(); active {
		t.Error("timer reports active after cycle end")
	}
}

func TestHelperTimer_StopCancelsPendingTick(t *testing.T) {
	defer goleak.VerifyNone(t)

	ch := make(chan PhaseChange, 16)
	h := NewHelperTimer(20*time.Millisecond, func(c PhaseChange) { ch <- c })

	h.Start()
	collectChanges(t, ch, 1)
	h.Stop()

	select {
	case c := <-ch:
		t.Errorf("tick delivered after Stop: %+v", c)
	case <-time.After(60 * time.Millisecond):
	}
	phase, active := h.Phase()
	if active || phase != models.PhaseBreatheIn {
		t.Errorf("after Stop: phase=%s active=%v", phase, active)
	}
}

func TestHelperTimer_RestartDropsPendingTick(t *testing.T) {
	defer goleak.VerifyNone(t)

	const interval = 50 * time.Millisecond
	ch := make(chan PhaseChange, 16)
	h := NewHelperTimer(interval, func(c PhaseChange) { ch <- c })
	defer h.Close()

	h.Start()
	collectChanges(t, ch, 1)
	// Restart mid-phase; the first Start's tick would land 20ms later.
	time.Sleep(30 * time.Millisecond)
	h.Start()

	if c := collectChanges(t, ch, 1)[0]; c != (PhaseChange{Phase: models.PhaseBreatheIn, Active: true}) {
		t.Errorf("restart = %+v, want active breathe-in", c)
	}

	select {
	case c := <-ch:
		t.Fatalf("stale tick delivered after restart: %+v", c)
	case <-time.After(interval - 15*time.Millisecond):
	}

	next := collectChanges(t, ch, 1)[0]
	if next != (PhaseChange{Phase: models.PhaseHoldIn, Active: true}) {
		t.Errorf("first change after restart = %+v, want active hold-in", next)
	}
}

func TestHelperTimer_StartAfterCloseIsIgnored(t *testing.T) {
	defer goleak.VerifyNone(t)

	calls := 0
	h := NewHelperTimer(time.Millisecond, func(PhaseChange) { calls++ })
	h.Close()
	h.Start()

	time.Sleep(10 * time.Millisecond)
	if calls != 0 {
		t.Errorf("callback invoked %d times after Close", calls)
	}
}

func TestNewHelperTimer_DefaultInterval(t *testing.T) {
	h := NewHelperTimer(0, nil)
	if h.interval != DefaultHelperInterval {
		t.Errorf("interval = %s, want %s", h.interval, DefaultHelperInterval)
	}
}
