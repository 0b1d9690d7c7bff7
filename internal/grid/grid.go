// Package grid builds the N×N field of boxes, either as one mesh per box or as a single
// instanced batch holding every box.
package grid

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"grid-viewer/internal/scene"
)

// BatchName is the name given to the instanced batch.
const BatchName = "Instanced Mesh"

// Mode selects how the grid is built.
type Mode int

const (
	Discrete Mode = iota
	Instanced
)

func (m Mode) String() string {
	if m == Instanced {
		return "instanced"
	}
	return "discrete"
}

// Next returns the other mode.
func (m Mode) Next() Mode {
	if m == Instanced {
		return Discrete
	}
	return Instanced
}

// Config fixes the layout. Boxes are Step*SizeRatio wide, Step apart, centered on the
// origin along X and Z and resting at Y=0.
type Config struct {
	RowCount  int
	Step      float32
	SizeRatio float32
}

// DefaultConfig is 100×100 boxes, 0.1 apart, filling 80% of each cell.
func DefaultConfig() Config {
	return Config{RowCount: 100, Step: 0.1, SizeRatio: 0.8}
}

// Count is the number of boxes.
func (c Config) Count() int {
	return c.RowCount * c.RowCount
}

// BoxSize is the edge length of one box.
func (c Config) BoxSize() float32 {
	return c.Step * c.SizeRatio
}

// Origin is the X and Z coordinate of box (0,0).
func (c Config) Origin() float32 {
	return -float32(c.RowCount) / 2 * c.Step
}

// Position is the center of box (i,j); i runs along X and j along Z.
func (c Config) Position(i, j int) mgl32.Vec3 {
	o := c.Origin()
	return mgl32.Vec3{o + float32(i)*c.Step, 0, o + float32(j)*c.Step}
}

// Index is the instance index of box (i,j) in a batch.
func (c Config) Index(i, j int) int {
	return i*c.RowCount + j
}

// Name is the name of the discrete box (i,j).
func Name(i, j int) string {
	return fmt.Sprintf("object_%d_%d", i, j)
}

// BuildDiscrete returns one mesh per box, all sharing one geometry and mat.
func BuildDiscrete(c Config, mat *scene.Material) []*scene.Mesh {
	size := c.BoxSize()
	geo := scene.NewBoxGeometry(size, size, size)
	meshes := make([]*scene.Mesh, 0, c.Count())
	for i := 0; i < c.RowCount; i++ {
		for j := 0; j < c.RowCount; j++ {
			m := scene.NewMesh(geo, mat)
			m.Position = c.Position(i, j)
			m.Name = Name(i, j)
			meshes = append(meshes, m)
		}
	}
	return meshes
}

// BuildInstanced returns one batch of Count boxes drawn with mat, every instance
// translated to its cell and colored color.
func BuildInstanced(c Config, mat *scene.Material, color scene.Color) *scene.InstancedMesh {
	size := c.BoxSize()
	batch := scene.NewInstancedMesh(scene.NewBoxGeometry(size, size, size), mat, c.Count())
	batch.Name = BatchName
	for i := 0; i < c.RowCount; i++ {
		for j := 0; j < c.RowCount; j++ {
			p := c.Position(i, j)
			k := c.Index(i, j)
			batch.SetMatrixAt(k, mgl32.Translate3D(p.X(), p.Y(), p.Z()))
			batch.SetColorAt(k, color)
		}
	}
	return batch
}
