package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScene_FindMeshMaterialNode(t *testing.T) {

	s := New()
	mesh := NewMesh("box")
	mtl := NewMaterial("red")
	node := NewNode("root")
	s.AddMesh(mesh)
	s.AddMaterial(mtl)
	s.AddNode(node)

	assert.Equal(t, mesh, s.FindMesh("box"))
	assert.Equal(t, mtl, s.FindMaterial("red"))
	assert.Equal(t, node, s.FindNode("root"))
	assert.Nil(t, s.FindMesh("missing"))
}

func TestScene_BoundsEmptyWithoutMeshes(t *testing.T) {

	s := New()
	_, ok := s.Bounds()
	assert.False(t, ok)
}

func TestScene_RecomputeBoundsFollowsNodeTransforms(t *testing.T) {

	s := New()
	mesh := NewMesh("pt")
	mesh.AddVertex(1, 2, 3)
	s.AddMesh(mesh)

	n := NewNode("n")
	n.Local.MakeTranslation(10, 0, 0)
	n.AddMesh(mesh)
	s.AddNode(n)
	n.UpdateGlobal()

	s.RecomputeBounds()
	box, ok := s.Bounds()
	require.True(t, ok)
	assert.InDelta(t, 11, box.Min.X, 1e-5)
	assert.InDelta(t, 11, box.Max.X, 1e-5)
}

func TestScene_FindAssetResolvesAgainstDir(t *testing.T) {

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tex.png"), []byte("x"), 0o644))

	s := New()
	s.Dir = dir

	resolved := s.FindAsset("tex.png")
	assert.Equal(t, filepath.Join(dir, "tex.png"), resolved)

	assert.Equal(t, "missing.png", s.FindAsset("missing.png"))
}

func TestScene_Clear(t *testing.T) {

	s := New()
	s.AddMesh(NewMesh("m"))
	s.AddNode(NewNode("n"))
	s.Clear()

	assert.Equal(t, 0, s.MeshCount())
	assert.Equal(t, 0, s.NodeCount())
}
