package scene

import "github.com/go-gl/mathgl/mgl32"

// Object is anything that can live in the scene graph. Concrete types embed Node.
type Object interface {
	Base() *Node
}

// Node holds the name, transform and children shared by every scene object.
// Only translation and scale are modeled; the grid never rotates anything.
type Node struct {
	Name     string
	Position mgl32.Vec3
	Scale    mgl32.Vec3
	Visible  bool

	parent   *Node
	children []Object
}

func newNode(name string) Node {
	return Node{Name: name, Scale: mgl32.Vec3{1, 1, 1}, Visible: true}
}

// Base returns the node itself so that embedding types satisfy Object.
func (n *Node) Base() *Node {
	return n
}

// Parent returns the node this one is attached to, or nil.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the attached children in insertion order. The slice must not be modified.
func (n *Node) Children() []Object {
	return n.children
}

// Add attaches objects as children, detaching each from any previous parent first.
func (n *Node) Add(objs ...Object) {
	for _, obj := range objs {
		child := obj.Base()
		if child == n {
			continue
		}
		if child.parent != nil {
			child.parent.Remove(obj)
		}
		child.parent = n
		n.children = append(n.children, obj)
	}
}

// Remove detaches obj. Returns false when obj is not a direct child.
func (n *Node) Remove(obj Object) bool {
	child := obj.Base()
	for i, c := range n.children {
		if c.Base() != child {
			continue
		}
		copy(n.children[i:], n.children[i+1:])
		n.children[len(n.children)-1] = nil
		n.children = n.children[:len(n.children)-1]
		child.parent = nil
		return true
	}
	return false
}

// LocalMatrix is translate(Position) * scale(Scale).
func (n *Node) LocalMatrix() mgl32.Mat4 {
	t := mgl32.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z())
	return t.Mul4(mgl32.Scale3D(n.Scale.X(), n.Scale.Y(), n.Scale.Z()))
}

// WorldMatrix composes local matrices from the root down to this node.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// Walk visits obj and then every descendant depth-first.
func Walk(obj Object, fn func(Object)) {
	fn(obj)
	for _, c := range obj.Base().children {
		Walk(c, fn)
	}
}
