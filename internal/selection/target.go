package selection

import (
	"fmt"

	"grid-viewer/internal/pick"
	"grid-viewer/internal/scene"
)

// Kind tells which representation a Target uses.
type Kind int

const (
	None Kind = iota
	Discrete
	Instanced
)

// Target identifies one pickable entity: a whole mesh, or one instance of a batch.
// The zero value is None.
type Target struct {
	kind  Kind
	mesh  *scene.Mesh
	batch *scene.InstancedMesh
	index int
}

// DiscreteTarget targets a mesh.
func DiscreteTarget(m *scene.Mesh) Target {
	if m == nil {
		return Target{}
	}
	return Target{kind: Discrete, mesh: m}
}

// InstancedTarget targets instance index of batch.
func InstancedTarget(batch *scene.InstancedMesh, index int) Target {
	if batch == nil {
		return Target{}
	}
	return Target{kind: Instanced, batch: batch, index: index}
}

// FromIntersection converts a pick result. A nil hit, or a hit on something that is
// neither a mesh nor a batch, yields None.
func FromIntersection(hit *pick.Intersection) Target {
	if hit == nil {
		return Target{}
	}
	switch o := hit.Object.(type) {
	case *scene.Mesh:
		return DiscreteTarget(o)
	case *scene.InstancedMesh:
		if hit.Instanced() {
			return InstancedTarget(o, hit.InstanceID)
		}
	}
	return Target{}
}

func (t Target) String() string {
	switch {
	case t.kind == Discrete && t.mesh != nil:
		return t.mesh.Name
	case t.kind == Instanced && t.batch != nil:
		return fmt.Sprintf("%s[%d]", t.batch.Name, t.index)
	}
	return "none"
}

// Kind returns the representation.
func (t Target) Kind() Kind { return t.kind }

// IsNone reports whether t targets nothing.
func (t Target) IsNone() bool { return t.kind == None }

// Mesh returns the targeted mesh for Discrete targets.
func (t Target) Mesh() *scene.Mesh { return t.mesh }

// Batch returns the batch and instance index for Instanced targets.
func (t Target) Batch() (*scene.InstancedMesh, int) { return t.batch, t.index }

// Visual is how an entity is shown.
type Visual int

const (
	Default Visual = iota
	Hovered
	Selected
)

func (v Visual) String() string {
	switch v {
	case Hovered:
		return "hovered"
	case Selected:
		return "selected"
	}
	return "default"
}

// Palette holds the materials used for discrete entities and the colors written into
// batch color tables for each Visual.
type Palette struct {
	DefaultMaterial   *scene.Material
	HoverMaterial     *scene.Material
	SelectionMaterial *scene.Material

	DefaultColor   scene.Color
	HoverColor     scene.Color
	SelectionColor scene.Color
}

func (p *Palette) material(v Visual) *scene.Material {
	switch v {
	case Hovered:
		return p.HoverMaterial
	case Selected:
		return p.SelectionMaterial
	}
	return p.DefaultMaterial
}

func (p *Palette) color(v Visual) scene.Color {
	switch v {
	case Hovered:
		return p.HoverColor
	case Selected:
		return p.SelectionColor
	}
	return p.DefaultColor
}
