package world

import "github.com/segmentio/ksuid"

// HitStop freezes a set of actors for a number of ticks. Overlapping
// triggers extend the window to the longest request.
type HitStop struct {
	frames int
	frozen map[ksuid.KSUID]struct{}
}

func NewHitStop() *HitStop {
	return &HitStop{frozen: make(map[ksuid.KSUID]struct{})}
}

func (h *HitStop) Trigger(frames int, targets ...ksuid.KSUID) {
	if frames <= 0 && h.frames <= 0 {
		return
	}
	if frames > h.frames {
		h.frames = frames
	}
	for _, id := range targets {
		h.frozen[id] = struct{}{}
	}
}

// Update advances one tick and reports whether the freeze was released on
// this tick.
func (h *HitStop) Update() bool {
	if h.frames <= 0 {
		return false
	}
	h.frames--
	if h.frames > 0 {
		return false
	}
	for id := range h.frozen {
		delete(h.frozen, id)
	}
	return true
}

func (h *HitStop) Active() bool {
	return h.frames > 0
}

func (h *HitStop) Remaining() int {
	return h.frames
}

func (h *HitStop) Frozen(id ksuid.KSUID) bool {
	_, ok := h.frozen[id]
	return ok
}
