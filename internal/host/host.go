// Package host is the render host: it owns the scene, camera and orbit controls, turns
// pointer events into pick results for its callbacks, and paces the animation loop.
// Windowing and drawing are supplied by the caller through Viewport and Renderer.
package host

import (
	"time"

	"go.uber.org/zap"

	"grid-viewer/internal/camera"
	"grid-viewer/internal/frame"
	"grid-viewer/internal/pick"
	"grid-viewer/internal/scene"
	"grid-viewer/internal/stats"
)

// DefaultBackground is the scene clear color.
var DefaultBackground = scene.Hex(0xf3f4f5)

// Viewport reports the pixel size of the element the host draws into.
type Viewport interface {
	ClientSize() (width, height int)
}

// Renderer draws the scene. SetSize is called at construction and on every resize.
type Renderer interface {
	SetSize(width, height int)
	Render(s *scene.Scene, cam *camera.Orthographic)
}

// PointerEvent is a pointer position relative to the viewport's top-left corner.
type PointerEvent struct {
	X, Y   float32
	Button int
}

// Options configures a Host. Every field is optional.
type Options struct {
	// OnHover receives the nearest hit under the pointer, or nil, on every pointer move.
	OnHover func(hit *pick.Intersection)
	// OnClick receives the nearest hit, or nil, with the raw event on every pointer down.
	OnClick func(hit *pick.Intersection, ev PointerEvent)
	// OnTick runs once per advanced frame before the camera update and draw.
	// delta is in seconds; for a capped loop it is the time accumulated since the last tick.
	OnTick func(now time.Duration, delta float32)
	// OnResize runs after the camera bounds change and before the projection is rebuilt.
	OnResize func()
	// Filter drops hits before the nearest one is chosen.
	Filter func(hit pick.Intersection) bool

	// ShowStats enables the performance overlay showing StatsMode.
	ShowStats bool
	StatsMode stats.Mode

	// FPSLimit caps advanced frames per second; 0 advances every frame.
	FPSLimit float32

	Logger *zap.Logger
}

// Host is not safe for concurrent use; every method runs on the loop goroutine.
type Host struct {
	opts     Options
	log      *zap.Logger
	viewport Viewport
	renderer Renderer

	scene    *scene.Scene
	camera   *camera.Orthographic
	controls *camera.Orbit
	stats    *stats.Stats
	limiter  *frame.Limiter

	raycaster   pick.Raycaster
	interactive []scene.Object

	width, height int

	running   bool
	listening bool
	started   bool
	lastFrame time.Duration
}

// New builds the scene, camera and controls sized to vp and starts the loop.
// vp must report a positive size.
func New(vp Viewport, r Renderer, opts Options) *Host {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	h := &Host{
		opts:     opts,
		log:      log,
		viewport: vp,
		renderer: r,
		scene:    scene.New(DefaultBackground),
		limiter:  frame.NewLimiter(opts.FPSLimit),
	}
	h.width, h.height = vp.ClientSize()
	h.camera = camera.NewOrthographic(float32(h.width), float32(h.height))
	h.controls = camera.NewOrbit(h.camera)
	h.controls.OnChange = h.handleOrbitChange
	h.controls.Update()
	if opts.ShowStats {
		h.stats = stats.New(opts.StatsMode)
	}
	r.SetSize(h.width, h.height)
	h.listening = true
	h.Start()
	return h
}

// Scene returns the scene graph.
func (h *Host) Scene() *scene.Scene { return h.scene }

// Camera returns the camera.
func (h *Host) Camera() *camera.Orthographic { return h.camera }

// Controls returns the orbit controls driving the camera.
func (h *Host) Controls() *camera.Orbit { return h.controls }

// Stats returns the overlay stats, or nil when the overlay is off.
func (h *Host) Stats() *stats.Stats { return h.stats }

// Size is the viewport size seen at the last construction or resize.
func (h *Host) Size() (width, height int) { return h.width, h.height }

// Interactive returns the objects eligible for picking.
func (h *Host) Interactive() []scene.Object { return h.interactive }

// SetInteractive replaces the objects eligible for picking.
func (h *Host) SetInteractive(objs []scene.Object) { h.interactive = objs }

// AddInteractive appends objects eligible for picking.
func (h *Host) AddInteractive(objs ...scene.Object) {
	h.interactive = append(h.interactive, objs...)
}

// Listening reports whether input handlers still react to events.
func (h *Host) Listening() bool { return h.listening }

// PointerMove runs a fresh pick and reports it to OnHover.
func (h *Host) PointerMove(ev PointerEvent) {
	if !h.listening || h.opts.OnHover == nil {
		return
	}
	h.opts.OnHover(h.Intersect(ev))
}

// PointerDown runs a fresh pick and reports it to OnClick with the event.
func (h *Host) PointerDown(ev PointerEvent) {
	if !h.listening || h.opts.OnClick == nil {
		return
	}
	h.opts.OnClick(h.Intersect(ev), ev)
}

// Intersect returns the nearest interactive hit under ev that passes Filter, or nil.
func (h *Host) Intersect(ev PointerEvent) *pick.Intersection {
	w, ht := h.viewport.ClientSize()
	if w <= 0 || ht <= 0 {
		return nil
	}
	x, y := pick.NDC(ev.X, ev.Y, float32(w), float32(ht))
	h.raycaster.SetFromCamera(x, y, h.camera)
	for _, hit := range h.raycaster.IntersectObjects(h.interactive, true) {
		if h.opts.Filter == nil || h.opts.Filter(hit) {
			return &hit
		}
	}
	return nil
}

// Resize re-reads the viewport size, rebounds the camera, calls OnResize, resizes the
// renderer and rebuilds the projection.
func (h *Host) Resize() {
	if !h.listening {
		return
	}
	h.width, h.height = h.viewport.ClientSize()
	h.camera.SetViewport(float32(h.width), float32(h.height))
	if h.opts.OnResize != nil {
		h.opts.OnResize()
	}
	h.renderer.SetSize(h.width, h.height)
	h.camera.UpdateProjectionMatrix()
}

func (h *Host) handleOrbitChange() {
	h.log.Debug("orbit change",
		zap.Float32s("position", h.camera.Position[:]),
		zap.Float32s("target", h.camera.Target[:]),
		zap.Float32("zoom", h.camera.Zoom))
}
