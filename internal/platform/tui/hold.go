package tui

import (
	"time"

	"github.com/vovakirdan/drop-arcade/internal/core"
)

// Terminals deliver a key press followed by auto-repeats and never a
// release, so a movement key counts as held for a while after each event.
// The first press has to bridge the OS repeat delay; repeats arrive fast.
const (
	firstHold  = 300 * time.Millisecond
	repeatHold = 100 * time.Millisecond
)

// heldKeys latches the left/right direction between key events.
type heldKeys struct {
	dir   core.Action // ActionLeft, ActionRight or ActionNone
	ticks int         // ticks the direction stays held
}

// press records a movement key. Pressing the other direction replaces the
// held one immediately.
func (h *heldKeys) press(dir core.Action, tickRate int) {
	hold := firstHold
	if dir == h.dir && h.ticks > 0 {
		hold = repeatHold
	}
	h.dir = dir
	h.ticks = ticksFor(hold, tickRate)
}

// apply marks the held direction on the frame and ages the latch by one tick.
func (h *heldKeys) apply(frame *core.InputFrame) {
	if h.ticks <= 0 {
		h.dir = core.ActionNone
		return
	}
	frame.Set(h.dir)
	h.ticks--
}

// release forgets the held direction.
func (h *heldKeys) release() {
	h.dir = core.ActionNone
	h.ticks = 0
}

func ticksFor(d time.Duration, tickRate int) int {
	if tickRate <= 0 {
		tickRate = 60
	}
	return max(1, int(d*time.Duration(tickRate)/time.Second))
}
