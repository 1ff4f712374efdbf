package core

import (
	"sync"
	"time"

	"github.com/valter-silva-au/cyber-warrior/pkg/models"
)

// DefaultHelperInterval is how long each breathing phase lasts.
const DefaultHelperInterval = 4 * time.Second

// PhaseChange is delivered to a HelperTimer's callback whenever the cycle
// starts or moves. Active is false once the cycle has finished.
type PhaseChange struct {
	Phase  models.BreathPhase
	Active bool
}

// HelperTimer drives a BreathingCycle in real time. Each Start schedules a
// single pending timer; Stop and Close cancel it, so no timer outlives the
// widget.
type HelperTimer struct {
	mu       sync.Mutex
	cycle    BreathingCycle
	interval time.Duration
	timer    *time.Timer
	onChange func(PhaseChange)
	closed   bool
}

// NewHelperTimer creates a timer advancing every interval. A non-positive
// interval falls back to DefaultHelperInterval. onChange may be nil.
func NewHelperTimer(interval time.Duration, onChange func(PhaseChange)) *HelperTimer {
	if interval <= 0 {
		interval = DefaultHelperInterval
	}
	if onChange == nil {
		onChange = func(PhaseChange) {}
	}
	return &HelperTimer{interval: interval, onChange: onChange}
}

// Start restarts the cycle at the first phase, cancelling any pending
// advance. It is a no-op after Close.
func (h *HelperTimer) Start() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.cancelLocked()
	gen := h.cycle.Start()
	change := PhaseChange{Phase: h.cycle.Phase(), Active: true}
	h.scheduleLocked(gen)
	h.mu.Unlock()

	h.onChange(change)
}

// Stop cancels the running cycle, if any.
func (h *HelperTimer) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cancelLocked()
	h.cycle.Stop()
}

// Close tears the timer down. Subsequent Starts are ignored.
func (h *HelperTimer) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cancelLocked()
	h.cycle.Stop()
	h.closed = true
}

// Phase returns the current phase and whether the cycle is running.
func (h *HelperTimer) Phase() (models.BreathPhase, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cycle.Phase(), h.cycle.Active()
}

func (h *HelperTimer) scheduleLocked(gen uint64) {
	h.timer = time.AfterFunc(h.interval, func() { h.tick(gen) })
}

func (h *HelperTimer) cancelLocked() {
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
}

func (h *HelperTimer) tick(gen uint64) {
	h.mu.Lock()
	if !h.cycle.Advance(gen) {
		h.mu.Unlock()
		return
	}
	change := PhaseChange{Phase: h.cycle.Phase(), Active: h.cycle.Active()}
	if change.Active {
		h.scheduleLocked(gen)
	} else {
		h.timer = nil
	}
	h.mu.Unlock()

	h.onChange(change)
}
