package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grid-viewer/internal/grid"
	"grid-viewer/internal/pick"
	"grid-viewer/internal/scene"
)

func testPalette() Palette {
	emissive := scene.Hex(0x072534)
	return Palette{
		DefaultMaterial:   scene.NewMaterial("default", scene.Hex(0x156289), emissive),
		HoverMaterial:     scene.NewMaterial("hover", scene.Hex(0xf7ab4d), emissive),
		SelectionMaterial: scene.NewMaterial("selection", scene.Hex(0xff0000), emissive),
		DefaultColor:      scene.Hex(0x156289),
		HoverColor:        scene.Hex(0xf7ab4d),
		SelectionColor:    scene.Hex(0xff0000),
	}
}

func discreteFixture(t *testing.T) (*Controller, Palette, []*scene.Mesh) {
	t.Helper()
	p := testPalette()
	meshes := grid.BuildDiscrete(grid.Config{RowCount: 3, Step: 1, SizeRatio: 0.8}, p.DefaultMaterial)
	return NewController(p, nil), p, meshes
}

func instancedFixture(t *testing.T) (*Controller, Palette, *scene.InstancedMesh) {
	t.Helper()
	p := testPalette()
	batch := grid.BuildInstanced(grid.Config{RowCount: 4, Step: 1, SizeRatio: 0.8}, p.DefaultMaterial, p.DefaultColor)
	return NewController(p, nil), p, batch
}

func colorAt(t *testing.T, b *scene.InstancedMesh, i int) scene.Color {
	t.Helper()
	c, ok := b.ColorAt(i)
	require.True(t, ok)
	return c
}

func countMaterial(meshes []*scene.Mesh, m *scene.Material) int {
	n := 0
	for _, mesh := range meshes {
		if mesh.Material == m {
			n++
		}
	}
	return n
}

func TestFromIntersection(t *testing.T) {
	_, _, meshes := discreteFixture(t)
	_, _, batch := instancedFixture(t)

	assert.True(t, FromIntersection(nil).IsNone())
	assert.Equal(t, DiscreteTarget(meshes[2]),
		FromIntersection(&pick.Intersection{Object: meshes[2], InstanceID: pick.NoInstance}))
	assert.Equal(t, InstancedTarget(batch, 0),
		FromIntersection(&pick.Intersection{Object: batch, InstanceID: 0}))
	assert.True(t, FromIntersection(&pick.Intersection{Object: scene.NewAmbientLight(scene.Color{}, 1)}).IsNone())

	assert.Equal(t, "object_0_2", DiscreteTarget(meshes[2]).String())
	assert.Equal(t, "Instanced Mesh[7]", InstancedTarget(batch, 7).String())
	assert.Equal(t, "none", Target{}.String())
}

func TestTargetStringWithoutEntity(t *testing.T) {
	tests := []struct {
		name   string
		target Target
	}{
		{"discrete", Target{kind: Discrete}},
		{"instanced", Target{kind: Instanced, index: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, "none", tt.target.String())
			})
		})
	}
}

func TestHoverMovesBetweenMeshes(t *testing.T) {
	c, p, meshes := discreteFixture(t)
	for _, m := range meshes {
		c.Hover(DiscreteTarget(m))
		assert.Same(t, p.HoverMaterial, m.Material)
		assert.Equal(t, 1, countMaterial(meshes, p.HoverMaterial), "one hovered at a time")
	}
	c.Hover(Target{})
	assert.Equal(t, 0, countMaterial(meshes, p.HoverMaterial))
	assert.True(t, c.Hovered().IsNone())
}

func TestHoverLeavingSelectionRestoresSelection(t *testing.T) {
	c, p, meshes := discreteFixture(t)
	a, b := meshes[0], meshes[1]

	c.Hover(DiscreteTarget(a))
	c.Click(DiscreteTarget(a))
	assert.Same(t, p.SelectionMaterial, a.Material)

	c.Hover(DiscreteTarget(a))
	assert.Same(t, p.HoverMaterial, a.Material, "re-hovering a mesh shows hover again")

	c.Hover(DiscreteTarget(b))
	assert.Same(t, p.SelectionMaterial, a.Material)
	assert.Same(t, p.HoverMaterial, b.Material)

	c.Hover(Target{})
	assert.Same(t, p.DefaultMaterial, b.Material)
	assert.Same(t, p.SelectionMaterial, a.Material)
}

func TestClickAThenB(t *testing.T) {
	c, p, meshes := discreteFixture(t)
	a, b := meshes[3], meshes[5]

	c.Click(DiscreteTarget(a))
	c.Click(DiscreteTarget(b))

	assert.Same(t, p.DefaultMaterial, a.Material)
	assert.Same(t, p.SelectionMaterial, b.Material)
	assert.Equal(t, DiscreteTarget(b), c.Selected())
	assert.Equal(t, len(meshes)-1, countMaterial(meshes, p.DefaultMaterial), "no third mesh changes")
}

func TestClickRestoresHoveredSelectionToDefault(t *testing.T) {
	c, p, meshes := discreteFixture(t)
	a, b := meshes[0], meshes[1]

	c.Click(DiscreteTarget(a))
	c.Hover(DiscreteTarget(a))
	c.Click(DiscreteTarget(b))

	assert.Same(t, p.DefaultMaterial, a.Material, "previous selection goes to default even while hovered")
	assert.Equal(t, DiscreteTarget(a), c.Hovered())
}

func TestClickEmptySpace(t *testing.T) {
	c, p, meshes := discreteFixture(t)

	c.Click(Target{})
	assert.True(t, c.Selected().IsNone())
	assert.Equal(t, len(meshes), countMaterial(meshes, p.DefaultMaterial), "no-op without a selection")

	c.Click(DiscreteTarget(meshes[4]))
	c.Click(Target{})
	assert.True(t, c.Selected().IsNone())
	assert.Same(t, p.DefaultMaterial, meshes[4].Material)
}

func TestDeselect(t *testing.T) {
	c, p, meshes := discreteFixture(t)
	c.Deselect()
	assert.True(t, c.Selected().IsNone())

	c.Click(DiscreteTarget(meshes[2]))
	c.Deselect()
	assert.True(t, c.Selected().IsNone())
	assert.Same(t, p.DefaultMaterial, meshes[2].Material)
}

func TestInstancedHoverFiveThenNine(t *testing.T) {
	c, p, batch := instancedFixture(t)
	colors := batch.InstanceColors()
	v0 := colors.Version()

	c.Hover(InstancedTarget(batch, 5))
	assert.Equal(t, p.HoverColor, colorAt(t, batch, 5))
	assert.Equal(t, v0+1, colors.Version())

	c.Hover(InstancedTarget(batch, 9))
	assert.Equal(t, p.DefaultColor, colorAt(t, batch, 5))
	assert.Equal(t, p.HoverColor, colorAt(t, batch, 9))
	assert.Equal(t, v0+2, colors.Version(), "dirty exactly once per change")

	c.Hover(InstancedTarget(batch, 9))
	assert.Equal(t, v0+2, colors.Version(), "same instance is a no-op")
}

func TestInstancedIndexZero(t *testing.T) {
	c, p, batch := instancedFixture(t)
	c.Hover(InstancedTarget(batch, 0))
	assert.Equal(t, p.HoverColor, colorAt(t, batch, 0))
	c.Click(InstancedTarget(batch, 0))
	assert.Equal(t, p.SelectionColor, colorAt(t, batch, 0))
}

func TestInstancedSelection(t *testing.T) {
	c, p, batch := instancedFixture(t)
	colors := batch.InstanceColors()

	c.Click(InstancedTarget(batch, 3))
	assert.Equal(t, p.SelectionColor, colorAt(t, batch, 3))

	c.Hover(InstancedTarget(batch, 3))
	c.Hover(InstancedTarget(batch, 4))
	assert.Equal(t, p.SelectionColor, colorAt(t, batch, 3), "leaving hover keeps selection color")
	assert.Equal(t, p.HoverColor, colorAt(t, batch, 4))

	v := colors.Version()
	c.Click(InstancedTarget(batch, 7))
	assert.Equal(t, p.DefaultColor, colorAt(t, batch, 3))
	assert.Equal(t, p.SelectionColor, colorAt(t, batch, 7))
	assert.Equal(t, v+1, colors.Version())

	c.Click(Target{})
	assert.Equal(t, p.DefaultColor, colorAt(t, batch, 7))
	assert.True(t, c.Selected().IsNone())

	for i := 0; i < batch.Count(); i++ {
		if i == 4 {
			continue
		}
		assert.Equal(t, p.DefaultColor, colorAt(t, batch, i), "instance %d", i)
	}
}

func TestAtMostOneHoveredAcrossSequences(t *testing.T) {
	c, p, batch := instancedFixture(t)
	seq := []int{1, 2, 2, 15, -1, 0, 8, 8, -1, -1, 3}
	for step, i := range seq {
		target := Target{}
		if i >= 0 {
			target = InstancedTarget(batch, i)
		}
		c.Hover(target)
		if step == 5 {
			c.Click(target)
		}

		hovered := 0
		for k := 0; k < batch.Count(); k++ {
			if colorAt(t, batch, k) == p.HoverColor {
				hovered++
			}
		}
		if i >= 0 && step != 5 {
			assert.Equal(t, 1, hovered, "step %d", step)
		} else {
			assert.LessOrEqual(t, hovered, 1, "step %d", step)
		}
	}
	assert.Equal(t, p.SelectionColor, colorAt(t, batch, 0))
}

func TestReset(t *testing.T) {
	c, p, meshes := discreteFixture(t)
	c.Hover(DiscreteTarget(meshes[0]))
	c.Click(DiscreteTarget(meshes[1]))
	c.Reset()

	assert.True(t, c.Hovered().IsNone())
	assert.True(t, c.Selected().IsNone())
	assert.Same(t, p.SelectionMaterial, meshes[1].Material, "reset leaves visuals alone")
}
