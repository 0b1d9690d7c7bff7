package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const orbitEPS = 0.000001

// Orbit rotates, zooms and pans an Orthographic camera around its Target. Input methods
// only accumulate deltas; Update applies them, so with damping the camera keeps gliding
// for a few frames after the pointer stops.
type Orbit struct {
	Camera *Orthographic

	EnableDamping      bool
	DampingFactor      float32
	ScreenSpacePanning bool
	RotateSpeed        float32
	ZoomSpeed          float32
	PanSpeed           float32
	MinZoom, MaxZoom   float32

	// OnChange runs from Update whenever the camera actually moved or zoomed.
	OnChange func()

	deltaTheta, deltaPhi float32
	panOffset            mgl32.Vec3
	zoomChanged          bool

	lastPosition mgl32.Vec3
	lastTarget   mgl32.Vec3
}

// NewOrbit returns controls with damping on (factor 0.6), ground-plane panning, rotate
// speed 1.0, zoom speed 1.2 and pan speed 0.8.
func NewOrbit(cam *Orthographic) *Orbit {
	return &Orbit{
		Camera:        cam,
		EnableDamping: true,
		DampingFactor: 0.6,
		RotateSpeed:   1.0,
		ZoomSpeed:     1.2,
		PanSpeed:      0.8,
		MinZoom:       0,
		MaxZoom:       math32.Inf(1),
	}
}

// Rotate accumulates a drag of (dx, dy) pixels in a viewport of the given height.
// A drag across the full height turns the camera once around.
func (o *Orbit) Rotate(dx, dy, viewportHeight float32) {
	if viewportHeight <= 0 {
		return
	}
	o.deltaTheta -= 2 * math32.Pi * dx / viewportHeight * o.RotateSpeed
	o.deltaPhi -= 2 * math32.Pi * dy / viewportHeight * o.RotateSpeed
}

// Zoom applies a wheel step; positive zooms in.
func (o *Orbit) Zoom(wheel float32) {
	if wheel == 0 {
		return
	}
	scale := math32.Pow(0.95, o.ZoomSpeed)
	z := o.Camera.Zoom
	if wheel > 0 {
		z /= scale
	} else {
		z *= scale
	}
	o.Camera.Zoom = clamp(z, o.MinZoom, o.MaxZoom)
	o.Camera.UpdateProjectionMatrix()
	o.zoomChanged = true
}

// Pan accumulates a drag of (dx, dy) pixels in a viewport of the given size.
func (o *Orbit) Pan(dx, dy, viewportWidth, viewportHeight float32) {
	if viewportWidth <= 0 || viewportHeight <= 0 {
		return
	}
	c := o.Camera
	dx *= o.PanSpeed
	dy *= o.PanSpeed
	right := c.Forward().Cross(c.SafeUp()).Normalize()
	left := right.Mul(-dx * (c.Right - c.Left) / c.Zoom / viewportWidth)

	var upDir mgl32.Vec3
	if o.ScreenSpacePanning {
		upDir = right.Cross(c.Forward()).Normalize()
	} else {
		upDir = c.Up.Cross(right)
	}
	up := upDir.Mul(dy * (c.Top - c.Bottom) / c.Zoom / viewportHeight)
	o.panOffset = o.panOffset.Add(left).Add(up)
}

// Update applies pending deltas to the camera and reports whether it changed.
func (o *Orbit) Update() bool {
	c := o.Camera
	radius, theta, phi := c.Spherical()

	k := float32(1)
	if o.EnableDamping {
		k = o.DampingFactor
	}
	theta += o.deltaTheta * k
	phi += o.deltaPhi * k
	phi = clamp(phi, orbitEPS, math32.Pi-orbitEPS)

	c.Target = c.Target.Add(o.panOffset.Mul(k))

	s := math32.Sin(phi) * radius
	offset := mgl32.Vec3{s * math32.Sin(theta), math32.Cos(phi) * radius, s * math32.Cos(theta)}
	c.Position = c.Target.Add(offset)

	if o.EnableDamping {
		o.deltaTheta *= 1 - o.DampingFactor
		o.deltaPhi *= 1 - o.DampingFactor
		o.panOffset = o.panOffset.Mul(1 - o.DampingFactor)
	} else {
		o.deltaTheta, o.deltaPhi = 0, 0
		o.panOffset = mgl32.Vec3{}
	}

	moved := o.zoomChanged ||
		distSq(o.lastPosition, c.Position) > orbitEPS ||
		distSq(o.lastTarget, c.Target) > orbitEPS
	if !moved {
		return false
	}
	o.zoomChanged = false
	o.lastPosition = c.Position
	o.lastTarget = c.Target
	if o.OnChange != nil {
		o.OnChange()
	}
	return true
}

func distSq(a, b mgl32.Vec3) float32 {
	d := a.Sub(b)
	return d.Dot(d)
}
