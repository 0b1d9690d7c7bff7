package scene

import "github.com/go-gl/mathgl/mgl32"

// resource tracks dispose listeners for anything backed by GPU memory. The renderer
// registers a listener when it uploads the resource and frees its copy when Dispose fires.
// A disposed resource stays usable; the next draw uploads it again.
type resource struct {
	listeners []func()
}

// OnDispose registers fn to run on the next Dispose.
func (r *resource) OnDispose(fn func()) {
	r.listeners = append(r.listeners, fn)
}

// Dispose runs and clears the pending listeners. Calling it again is a no-op.
func (r *resource) Dispose() {
	ls := r.listeners
	r.listeners = nil
	for _, fn := range ls {
		fn()
	}
}

// BoxGeometry is an axis-aligned box centered on its local origin.
type BoxGeometry struct {
	resource
	Width, Height, Depth float32
}

// NewBoxGeometry returns a box with the given extents.
func NewBoxGeometry(width, height, depth float32) *BoxGeometry {
	return &BoxGeometry{Width: width, Height: height, Depth: depth}
}

// Bounds returns the local-space min and max corners.
func (g *BoxGeometry) Bounds() (lo, hi mgl32.Vec3) {
	h := mgl32.Vec3{g.Width / 2, g.Height / 2, g.Depth / 2}
	return h.Mul(-1), h
}

// Side selects which faces a material renders.
type Side int

const (
	FrontSide Side = iota
	BackSide
	DoubleSide
)

// Texture is an image file sampled as the albedo map of a material.
type Texture struct {
	resource
	Path string
}

// Material is a Lambert-style material: diffuse color plus an emissive term.
type Material struct {
	resource
	Name     string
	Color    Color
	Emissive Color
	Side     Side
	Map      *Texture
}

// NewMaterial returns a double-sided material.
func NewMaterial(name string, color, emissive Color) *Material {
	return &Material{Name: name, Color: color, Emissive: emissive, Side: DoubleSide}
}
