package core

import "github.com/valter-silva-au/cyber-warrior/pkg/models"

// BreathingCycle is the helper widget's four-phase state machine. Each Start
// hands out a generation token; advances carrying an older token are
// ignored, which is how a restarted or stopped cycle cancels ticks that are
// already scheduled.
type BreathingCycle struct {
	phase  models.BreathPhase
	active bool
	gen    uint64
}

// Start (re)starts the cycle at the first phase and returns the token that
// subsequent Advance calls must carry.
func (c *BreathingCycle) Start() uint64 {
	c.gen++
	c.phase = models.PhaseBreatheIn
	c.active = true
	return c.gen
}

// Advance moves to the next phase. After the last phase the cycle
// deactivates and resets to the first phase. It returns false when the
// token is stale or the cycle is inactive, in which case nothing changes.
func (c *BreathingCycle) Advance(gen uint64) bool {
	if !c.active || gen != c.gen {
		return false
	}
	if c.phase == models.PhaseHoldOut {
		c.active = false
		c.phase = models.PhaseBreatheIn
		return true
	}
	c.phase++
	return true
}

// Stop deactivates the cycle and invalidates any outstanding token.
func (c *BreathingCycle) Stop() {
	c.gen++
	c.active = false
	c.phase = models.PhaseBreatheIn
}

// Phase returns the current phase.
func (c BreathingCycle) Phase() models.BreathPhase { return c.phase }

// Active reports whether a cycle is running.
func (c BreathingCycle) Active() bool { return c.active }

// Generation returns the token of the most recent Start or Stop.
func (c BreathingCycle) Generation() uint64 { return c.gen }

// HelperWidget is the helper bot panel: it can be opened and closed, and
// while open it can run a breathing cycle. It shares no state with missions.
type HelperWidget struct {
	open  bool
	cycle BreathingCycle
}

// Open shows the widget.
func (w *HelperWidget) Open() { w.open = true }

// Close hides the widget and cancels any running cycle.
func (w *HelperWidget) Close() {
	w.open = false
	w.cycle.Stop()
}

// Toggle flips the widget between open and closed.
func (w *HelperWidget) Toggle() {
	if w.open {
		w.Close()
		return
	}
	w.Open()
}

// StartCycle opens the widget if needed and restarts the breathing cycle.
func (w *HelperWidget) StartCycle() uint64 {
	w.open = true
	return w.cycle.Start()
}

// Advance forwards a tick to the cycle.
func (w *HelperWidget) Advance(gen uint64) bool { return w.cycle.Advance(gen) }

// IsOpen reports whether the widget is visible.
func (w HelperWidget) IsOpen() bool { return w.open }

// Cycle returns the widget's breathing cycle state.
func (w HelperWidget) Cycle() BreathingCycle { return w.cycle }
