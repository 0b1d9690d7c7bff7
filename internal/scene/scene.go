package scene

// Scene is the root of the graph. The renderer clears to Background and draws every
// visible descendant.
type Scene struct {
	Node
	Background Color
}

// New returns an empty scene with the given background color.
func New(background Color) *Scene {
	return &Scene{Node: newNode("scene"), Background: background}
}

// Clear detaches every descendant of obj depth-first and disposes the GPU resources
// each one owns, then disposes obj's own resources. obj itself stays attached to its parent.
// Shared geometry or materials may be disposed more than once; that is harmless.
func Clear(obj Object) {
	n := obj.Base()
	for len(n.children) > 0 {
		child := n.children[0]
		Clear(child)
		n.Remove(child)
	}
	if d, ok := obj.(Disposer); ok {
		d.DisposeResources()
	}
}
