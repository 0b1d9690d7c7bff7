// Package pick casts rays from the camera into the scene graph and reports what they hit.
package pick

import (
	"sort"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"grid-viewer/internal/camera"
	"grid-viewer/internal/scene"
)

// NoInstance is the InstanceID of a hit on anything other than an instanced batch.
const NoInstance = -1

// Intersection is one ray hit. Object is the mesh or batch that was hit; for batches
// InstanceID is the index of the instance, otherwise NoInstance.
type Intersection struct {
	Distance   float32
	Point      mgl32.Vec3
	Object     scene.Object
	InstanceID int
}

// Instanced reports whether the hit belongs to an instanced batch.
func (h Intersection) Instanced() bool {
	return h.InstanceID != NoInstance
}

// Ray is a half-line; Direction is unit length.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Raycaster intersects one ray with scene objects.
type Raycaster struct {
	Ray Ray
}

// SetFromCamera aims the ray through the given normalized device coordinates.
func (rc *Raycaster) SetFromCamera(ndcX, ndcY float32, cam *camera.Orthographic) {
	rc.Ray.Origin, rc.Ray.Direction = cam.Ray(ndcX, ndcY)
}

// NDC converts a pixel position inside a width x height viewport to normalized device
// coordinates, with +Y up.
func NDC(px, py, width, height float32) (x, y float32) {
	return px/width*2 - 1, -py/height*2 + 1
}

// IntersectObjects tests every object (and, when recursive, their descendants) and returns
// the hits sorted nearest first. Invisible objects and their subtrees are skipped.
func (rc *Raycaster) IntersectObjects(objs []scene.Object, recursive bool) []Intersection {
	var hits []Intersection
	for _, obj := range objs {
		hits = rc.intersect(obj, recursive, hits)
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

func (rc *Raycaster) intersect(obj scene.Object, recursive bool, hits []Intersection) []Intersection {
	n := obj.Base()
	if !n.Visible {
		return hits
	}
	switch o := obj.(type) {
	case *scene.Mesh:
		if o.Geometry != nil {
			if h, ok := rc.intersectBox(o.Geometry, o.WorldMatrix()); ok {
				h.Object = obj
				h.InstanceID = NoInstance
				hits = append(hits, h)
			}
		}
	case *scene.InstancedMesh:
		if o.Geometry != nil {
			world := o.WorldMatrix()
			for i, m := range o.Matrices() {
				if h, ok := rc.intersectBox(o.Geometry, world.Mul4(m)); ok {
					h.Object = obj
					h.InstanceID = i
					hits = append(hits, h)
				}
			}
		}
	}
	if recursive {
		for _, c := range n.Children() {
			hits = rc.intersect(c, recursive, hits)
		}
	}
	return hits
}

// intersectBox tests the ray against the geometry box transformed by m. The ray is moved
// into local space for the slab test and the hit is mapped back to measure world distance.
func (rc *Raycaster) intersectBox(g *scene.BoxGeometry, m mgl32.Mat4) (Intersection, bool) {
	inv := m.Inv()
	o := mgl32.TransformCoordinate(rc.Ray.Origin, inv)
	d := mgl32.TransformNormal(rc.Ray.Direction, inv)
	lo, hi := g.Bounds()
	t, ok := slab(o, d, lo, hi)
	if !ok {
		return Intersection{}, false
	}
	p := mgl32.TransformCoordinate(o.Add(d.Mul(t)), m)
	return Intersection{Distance: p.Sub(rc.Ray.Origin).Len(), Point: p}, true
}

// slab returns the entry parameter of the ray o+t*d into the box [lo,hi]. When the origin
// is inside the box the exit parameter is returned. Boxes entirely behind the origin miss.
func slab(o, d, lo, hi mgl32.Vec3) (float32, bool) {
	tmin := math32.Inf(-1)
	tmax := math32.Inf(1)
	for a := 0; a < 3; a++ {
		if d[a] == 0 {
			if o[a] < lo[a] || o[a] > hi[a] {
				return 0, false
			}
			continue
		}
		inv := 1 / d[a]
		t0 := (lo[a] - o[a]) * inv
		t1 := (hi[a] - o[a]) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tmin = math32.Max(tmin, t0)
		tmax = math32.Min(tmax, t1)
		if tmin > tmax {
			return 0, false
		}
	}
	if tmax < 0 {
		return 0, false
	}
	if tmin >= 0 {
		return tmin, true
	}
	return tmax, true
}
