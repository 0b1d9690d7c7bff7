// Package camera holds the orthographic view used by the grid viewer and the orbit
// controls that move it around a target point.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultNear and DefaultFar bound the view volume on both sides of the camera plane.
	DefaultNear = -2000
	DefaultFar  = 2000
)

// Orthographic is a parallel-projection camera. Left/Right/Top/Bottom are in pixels and
// Zoom converts them to world units, so a zoom of 90 shows width/90 world units across.
// Projection is cached; call UpdateProjectionMatrix after changing bounds or Zoom.
type Orthographic struct {
	Left, Right, Top, Bottom float32
	Near, Far                float32
	Zoom                     float32

	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	projection mgl32.Mat4
}

// NewOrthographic returns a camera sized to a width x height viewport, looking at the origin from +Z.
func NewOrthographic(width, height float32) *Orthographic {
	c := &Orthographic{
		Near:     DefaultNear,
		Far:      DefaultFar,
		Zoom:     1,
		Position: mgl32.Vec3{0, 0, 1},
		Up:       mgl32.Vec3{0, 1, 0},
	}
	c.SetViewport(width, height)
	c.UpdateProjectionMatrix()
	return c
}

// SetViewport sets the bounds to ±width/2 and ±height/2. The projection is not updated.
func (c *Orthographic) SetViewport(width, height float32) {
	c.Left = width / -2
	c.Right = width / 2
	c.Top = height / 2
	c.Bottom = height / -2
}

// UpdateProjectionMatrix recomputes the projection from the bounds and zoom.
func (c *Orthographic) UpdateProjectionMatrix() {
	l, r, b, t := c.ZoomedBounds()
	c.projection = mgl32.Ortho(l, r, b, t, c.Near, c.Far)
}

// ZoomedBounds returns the bounds after applying Zoom, in world units.
func (c *Orthographic) ZoomedBounds() (left, right, bottom, top float32) {
	dx := (c.Right - c.Left) / (2 * c.Zoom)
	dy := (c.Top - c.Bottom) / (2 * c.Zoom)
	cx := (c.Right + c.Left) / 2
	cy := (c.Top + c.Bottom) / 2
	return cx - dx, cx + dx, cy - dy, cy + dy
}

// ViewHeight is the visible height in world units.
func (c *Orthographic) ViewHeight() float32 {
	_, _, b, t := c.ZoomedBounds()
	return t - b
}

// Projection returns the matrix computed by the last UpdateProjectionMatrix.
func (c *Orthographic) Projection() mgl32.Mat4 {
	return c.projection
}

// Forward is the unit view direction.
func (c *Orthographic) Forward() mgl32.Vec3 {
	f := c.Target.Sub(c.Position)
	if f.Len() == 0 {
		return mgl32.Vec3{0, 0, -1}
	}
	return f.Normalize()
}

// SafeUp returns Up, or -Z when Up is parallel to the view direction (top-down view).
func (c *Orthographic) SafeUp() mgl32.Vec3 {
	if c.Forward().Cross(c.Up).Len() < 1e-6 {
		return mgl32.Vec3{0, 0, -1}
	}
	return c.Up
}

// View returns the world-to-camera matrix.
func (c *Orthographic) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.SafeUp())
}

// Ray returns the pick ray for a point in normalized device coordinates. The origin lies
// on the camera plane and the direction is the view direction.
func (c *Orthographic) Ray(ndcX, ndcY float32) (origin, dir mgl32.Vec3) {
	inv := c.projection.Mul4(c.View()).Inv()
	z := (c.Near + c.Far) / (c.Near - c.Far)
	origin = mgl32.TransformCoordinate(mgl32.Vec3{ndcX, ndcY, z}, inv)
	return origin, c.Forward()
}

// Spherical returns the camera offset from Target as radius, azimuth around +Y measured
// from +Z, and polar angle from +Y.
func (c *Orthographic) Spherical() (radius, theta, phi float32) {
	off := c.Position.Sub(c.Target)
	radius = off.Len()
	if radius == 0 {
		return 0, 0, 0
	}
	theta = math32.Atan2(off.X(), off.Z())
	phi = math32.Acos(clamp(off.Y()/radius, -1, 1))
	return radius, theta, phi
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}
