package graphics

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"grid-viewer/internal/debug"
	"grid-viewer/internal/engineconfig"
	"grid-viewer/internal/host"
)

// Window is the raylib window. It reports the viewport size to the render host.
type Window struct{}

// Open creates the window. ESC is left to the key bindings; close via the window button.
func Open(w engineconfig.Window) *Window {
	var flags uint32 = rl.FlagMsaa4xHint | rl.FlagVsyncHint
	if w.Resizable {
		flags |= rl.FlagWindowResizable
	}
	if w.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	rl.SetConfigFlags(flags)
	width, height := int32(w.Width), int32(w.Height)
	if w.Fullscreen {
		width, height = int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0))
	}
	rl.InitWindow(width, height, w.Title)
	rl.SetExitKey(rl.KeyNull)
	return &Window{}
}

// ClientSize is the drawable size in pixels.
func (*Window) ClientSize() (int, int) {
	return int(rl.GetScreenWidth()), int(rl.GetScreenHeight())
}

// Close destroys the window and GL context.
func (*Window) Close() {
	rl.CloseWindow()
}

// Run drives the host until it stops or the window is closed. Each display frame it
// forwards pointer, wheel, resize and key input, lets the host decide whether to advance,
// and presents the last rendered frame with the overlay on top.
func Run(h *host.Host, r *Renderer, overlay *debug.Debug, onKey func(key int32)) {
	var last rl.Vector2
	first := true
	for h.Running() && !rl.WindowShouldClose() {
		pollPointer(h, &last, &first)
		if rl.IsWindowResized() {
			h.Resize()
		}
		for k := rl.GetKeyPressed(); k != 0; k = rl.GetKeyPressed() {
			if onKey != nil {
				onKey(k)
			}
		}

		h.Frame(time.Duration(rl.GetTime() * float64(time.Second)))

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		r.Present()
		if overlay != nil {
			overlay.Draw(h.Stats())
		}
		rl.EndDrawing()
	}
}

func pollPointer(h *host.Host, last *rl.Vector2, first *bool) {
	pos := rl.GetMousePosition()
	if *first || pos != *last {
		h.PointerMove(host.PointerEvent{X: pos.X, Y: pos.Y})
		*last = pos
		*first = false
	}
	for _, b := range []rl.MouseButton{rl.MouseLeftButton, rl.MouseRightButton} {
		if rl.IsMouseButtonPressed(b) {
			h.PointerDown(host.PointerEvent{X: pos.X, Y: pos.Y, Button: int(b)})
		}
	}

	w, ht := h.Size()
	controls := h.Controls()
	d := rl.GetMouseDelta()
	switch {
	case rl.IsMouseButtonDown(rl.MouseLeftButton):
		controls.Rotate(d.X, d.Y, float32(ht))
	case rl.IsMouseButtonDown(rl.MouseRightButton):
		controls.Pan(d.X, d.Y, float32(w), float32(ht))
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		controls.Zoom(wheel)
	}
}
