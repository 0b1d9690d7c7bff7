// Package selection tracks which entity is hovered and which is selected, and keeps
// their visuals in sync with that state.
package selection

import (
	"go.uber.org/zap"

	"grid-viewer/internal/pick"
	"grid-viewer/internal/scene"
)

// Controller owns the hover and selection state of one scene session. At most one
// entity is hovered and at most one is selected.
//
// Leaving a hovered entity restores it to the selection visual when it is the current
// selection. Selecting a new entity always restores the previous selection to default,
// even if the pointer is still over it.
type Controller struct {
	palette   Palette
	log       *zap.Logger
	hover     Target
	selection Target

	// batches touched during the current transition; each is marked dirty once at the end.
	dirty []*scene.InstancedMesh
}

// NewController returns a controller with nothing hovered or selected. log may be nil.
func NewController(p Palette, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{palette: p, log: log}
}

// Hovered returns the current hover target.
func (c *Controller) Hovered() Target { return c.hover }

// Selected returns the current selection.
func (c *Controller) Selected() Target { return c.selection }

// HandleHover adapts Hover to the render host hover callback.
func (c *Controller) HandleHover(hit *pick.Intersection) {
	c.Hover(FromIntersection(hit))
}

// HandleClick adapts Click to the render host click callback.
func (c *Controller) HandleClick(hit *pick.Intersection) {
	c.Click(FromIntersection(hit))
}

// Hover moves the hover to t, which may be None. Re-hovering the same mesh shows the
// hover material again (a click may have replaced it); re-hovering the same instance is a no-op.
func (c *Controller) Hover(t Target) {
	if t == c.hover {
		if t.kind == Discrete {
			c.apply(t, Hovered)
		}
		return
	}
	if !c.hover.IsNone() {
		if c.hover == c.selection {
			c.apply(c.hover, Selected)
		} else {
			c.apply(c.hover, Default)
		}
	}
	if !t.IsNone() {
		c.apply(t, Hovered)
	}
	c.hover = t
	c.flush()
}

// Click commits t as the selection. A None target clears the selection.
func (c *Controller) Click(t Target) {
	if !c.selection.IsNone() {
		c.apply(c.selection, Default)
	}
	if !t.IsNone() {
		c.apply(t, Selected)
		c.log.Debug("selected", zap.Stringer("target", t))
	}
	c.selection = t
	c.flush()
}

// Deselect restores the selection to default and clears it.
func (c *Controller) Deselect() {
	if c.selection.IsNone() {
		return
	}
	c.apply(c.selection, Default)
	c.selection = Target{}
	c.flush()
}

// Reset forgets hover and selection without touching any visuals. Call it when the
// entities it refers to have been discarded.
func (c *Controller) Reset() {
	c.hover = Target{}
	c.selection = Target{}
	c.dirty = c.dirty[:0]
}

// apply shows t with visual v: a material swap for meshes, a color write for batches.
func (c *Controller) apply(t Target, v Visual) {
	switch t.kind {
	case Discrete:
		t.mesh.Material = c.palette.material(v)
	case Instanced:
		t.batch.SetColorAt(t.index, c.palette.color(v))
		c.touch(t.batch)
	}
}

func (c *Controller) touch(b *scene.InstancedMesh) {
	for _, d := range c.dirty {
		if d == b {
			return
		}
	}
	c.dirty = append(c.dirty, b)
}

// flush marks every batch written during this transition dirty, once each.
func (c *Controller) flush() {
	for i, b := range c.dirty {
		b.InstanceColors().MarkDirty()
		c.dirty[i] = nil
	}
	c.dirty = c.dirty[:0]
}
