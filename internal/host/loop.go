package host

import (
	"time"

	"grid-viewer/internal/scene"
)

// Start arms the loop. Frame does nothing until Start has been called.
func (h *Host) Start() {
	if h.running {
		return
	}
	h.running = true
	h.started = false
}

// Stop disarms the loop. Calling it again is a no-op.
func (h *Host) Stop() {
	h.running = false
}

// Running reports whether the loop is armed.
func (h *Host) Running() bool { return h.running }

// Frame is called once per display frame with a monotonic timestamp. It reports whether
// the frame advanced: a tick, a camera update and a draw. A capped loop advances only
// once the accumulated time exceeds the interval.
func (h *Host) Frame(now time.Duration) bool {
	if !h.running {
		return false
	}
	var dt float32
	if h.started {
		dt = float32((now - h.lastFrame).Seconds())
	}
	h.started = true
	h.lastFrame = now

	advance, delta := h.limiter.Step(dt)
	if !advance {
		return false
	}
	h.tick(now, delta)
	return true
}

func (h *Host) tick(now time.Duration, delta float32) {
	if h.stats != nil {
		h.stats.Begin()
	}
	if h.opts.OnTick != nil {
		h.opts.OnTick(now, delta)
	}
	h.controls.Update()
	h.renderer.Render(h.scene, h.camera)
	if h.stats != nil {
		h.stats.End()
	}
}

// Reset disposes everything in the scene and empties the interactive list. The host
// stays usable.
func (h *Host) Reset() {
	scene.Clear(h.scene)
	h.interactive = nil
}

// Dispose stops the loop, stops reacting to input and releases the scene.
func (h *Host) Dispose() {
	h.Stop()
	h.listening = false
	h.Reset()
}
