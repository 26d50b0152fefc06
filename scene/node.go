package scene

import "github.com/jtsiomb/meshfile/math32"

// Node is a scene-graph element: a name, a parent reference, an ordered
// list of children, an ordered list of owned meshes, a local transform
// and a cached global transform (parent.global · local).
type Node struct {
	Name     string
	Local    math32.Matrix4
	Global   math32.Matrix4
	UserData UserData

	parent   *Node
	children []*Node
	meshes   []*Mesh
}

// NewNode returns a new Node with the given name and an identity
// local/global matrix.
func NewNode(name string) *Node {

	n := &Node{Name: name}
	n.Local.Identity()
	n.Global.Identity()
	return n
}

// Parent returns the node's parent, or nil if this is a top-level node.
func (n *Node) Parent() *Node {

	return n.parent
}

// Children returns the node's children, in insertion order. The returned
// slice must not be mutated by the caller.
func (n *Node) Children() []*Node {

	return n.children
}

// Meshes returns the meshes owned by this node, in insertion order.
func (n *Node) Meshes() []*Mesh {

	return n.meshes
}

// AddChild appends child to this node's children and sets its parent
// pointer. If child already had a parent, it is first removed from that
// parent's children list.
func (n *Node) AddChild(child *Node) {

	if child == n {
		panic("scene: node cannot be added as a child of itself")
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// RemoveChild removes child from this node's children, if present.
// Returns true if it was found and removed.
func (n *Node) RemoveChild(child *Node) bool {

	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// AddMesh appends mesh to this node's owned meshes, unless it is already
// present (a node owning the same mesh twice would otherwise list it
// twice, violating the data model's uniqueness invariant).
func (n *Node) AddMesh(mesh *Mesh) {

	for _, m := range n.meshes {
		if m == mesh {
			return
		}
	}
	n.meshes = append(n.meshes, mesh)
}

// FindByName searches this node and its descendants, depth-first, for a
// node with the given name. Returns nil if not found.
func (n *Node) FindByName(name string) *Node {

	if n.Name == name {
		return n
	}
	for _, c := range n.children {
		if found := c.FindByName(name); found != nil {
			return found
		}
	}
	return nil
}

// UpdateGlobal recomputes this node's Global matrix from its parent's
// Global and its own Local, then recurses into every child. Call on each
// top-level node to propagate transforms through the whole tree.
func (n *Node) UpdateGlobal() {

	if n.parent == nil {
		n.Global = n.Local
	} else {
		n.Global.MultiplyMatrices(&n.parent.Global, &n.Local)
	}
	for _, c := range n.children {
		c.UpdateGlobal()
	}
}
