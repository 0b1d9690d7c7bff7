package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Disposer is implemented by objects that own GPU resources.
type Disposer interface {
	DisposeResources()
}

// Mesh is a single drawable object with its own material slot. Swapping Material
// is how its visual state changes.
type Mesh struct {
	Node
	Geometry *BoxGeometry
	Material *Material
}

// NewMesh returns a mesh at the origin.
func NewMesh(g *BoxGeometry, m *Material) *Mesh {
	return &Mesh{Node: newNode(""), Geometry: g, Material: m}
}

// DisposeResources disposes the geometry, material and material texture.
func (m *Mesh) DisposeResources() {
	disposeOwned(m.Geometry, m.Material)
}

// InstancedMesh draws Count copies of one geometry in a single call. Each instance
// has its own transform and, once SetColorAt has been called, its own color.
type InstancedMesh struct {
	Node
	Geometry *BoxGeometry
	Material *Material

	matrices []mgl32.Mat4
	colors   *InstanceColors
}

// NewInstancedMesh returns a batch of count instances, all with identity transforms.
func NewInstancedMesh(g *BoxGeometry, m *Material, count int) *InstancedMesh {
	im := &InstancedMesh{Node: newNode(""), Geometry: g, Material: m, matrices: make([]mgl32.Mat4, count)}
	for i := range im.matrices {
		im.matrices[i] = mgl32.Ident4()
	}
	return im
}

// Count is the number of instances.
func (im *InstancedMesh) Count() int {
	return len(im.matrices)
}

// SetMatrixAt sets the local transform of instance i.
func (im *InstancedMesh) SetMatrixAt(i int, m mgl32.Mat4) {
	im.checkIndex(i)
	im.matrices[i] = m
}

// MatrixAt returns the local transform of instance i.
func (im *InstancedMesh) MatrixAt(i int) mgl32.Mat4 {
	im.checkIndex(i)
	return im.matrices[i]
}

// Matrices returns all instance transforms. The slice must not be modified.
func (im *InstancedMesh) Matrices() []mgl32.Mat4 {
	return im.matrices
}

// SetColorAt writes the color of instance i, allocating the color table on first use.
// The write is not visible to the renderer until InstanceColors.MarkDirty is called.
func (im *InstancedMesh) SetColorAt(i int, c Color) {
	im.checkIndex(i)
	if im.colors == nil {
		im.colors = &InstanceColors{data: make([]float32, 3*len(im.matrices))}
	}
	im.colors.set(i, c)
}

// ColorAt returns the stored color of instance i; ok is false before any SetColorAt.
func (im *InstancedMesh) ColorAt(i int) (c Color, ok bool) {
	im.checkIndex(i)
	if im.colors == nil {
		return Color{}, false
	}
	return im.colors.At(i), true
}

// InstanceColors returns the per-instance color table, or nil before any SetColorAt.
func (im *InstancedMesh) InstanceColors() *InstanceColors {
	return im.colors
}

// DisposeResources disposes the geometry, material and material texture.
func (im *InstancedMesh) DisposeResources() {
	disposeOwned(im.Geometry, im.Material)
}

func (im *InstancedMesh) checkIndex(i int) {
	if i < 0 || i >= len(im.matrices) {
		panic(fmt.Sprintf("scene: instance index %d out of range [0,%d)", i, len(im.matrices)))
	}
}

// InstanceColors is the per-instance RGB table. The renderer samples it from a texture
// laid out by ColorTexture.
// Version increases on every MarkDirty; the renderer re-uploads when it sees a new version.
type InstanceColors struct {
	data    []float32
	version uint64
}

func (ic *InstanceColors) set(i int, c Color) {
	ic.data[3*i] = c.R
	ic.data[3*i+1] = c.G
	ic.data[3*i+2] = c.B
}

// At returns the color stored for instance i.
func (ic *InstanceColors) At(i int) Color {
	return Color{R: ic.data[3*i], G: ic.data[3*i+1], B: ic.data[3*i+2]}
}

// Len is the number of instances in the table.
func (ic *InstanceColors) Len() int {
	return len(ic.data) / 3
}

// Data is the flat RGB buffer, three floats per instance.
func (ic *InstanceColors) Data() []float32 {
	return ic.data
}

// MarkDirty flags the table for re-upload before the next draw.
func (ic *InstanceColors) MarkDirty() {
	ic.version++
}

// Version counts MarkDirty calls.
func (ic *InstanceColors) Version() uint64 {
	return ic.version
}

func disposeOwned(g *BoxGeometry, m *Material) {
	if g != nil {
		g.Dispose()
	}
	if m != nil {
		m.Dispose()
		if m.Map != nil {
			m.Map.Dispose()
		}
	}
}
