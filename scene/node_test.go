package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNode_AddChildSetsParentAndReparents(t *testing.T) {

	root := NewNode("root")
	child := NewNode("child")
	other := NewNode("other")

	root.AddChild(child)
	assert.Equal(t, root, child.Parent())
	assert.Equal(t, []*Node{child}, root.Children())

	other.AddChild(child)
	assert.Equal(t, other, child.Parent())
	assert.Empty(t, root.Children())
}

func TestNode_AddMeshDedupes(t *testing.T) {

	n := NewNode("n")
	m := NewMesh("m")
	n.AddMesh(m)
	n.AddMesh(m)

	assert.Equal(t, []*Mesh{m}, n.Meshes())
}

func TestNode_FindByName(t *testing.T) {

	root := NewNode("root")
	child := NewNode("child")
	grandchild := NewNode("grandchild")
	root.AddChild(child)
	child.AddChild(grandchild)

	assert.Equal(t, grandchild, root.FindByName("grandchild"))
	assert.Nil(t, root.FindByName("missing"))
}

func TestNode_UpdateGlobalPropagatesThroughHierarchy(t *testing.T) {

	root := NewNode("root")
	root.Local.MakeTranslation(1, 0, 0)

	child := NewNode("child")
	child.Local.MakeTranslation(0, 2, 0)
	root.AddChild(child)

	root.UpdateGlobal()

	assert.Equal(t, float32(1), root.Global[12])
	assert.Equal(t, float32(1), child.Global[12])
	assert.Equal(t, float32(2), child.Global[13])
}
