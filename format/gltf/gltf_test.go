package gltf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtsiomb/meshfile/meshio"
	"github.com/jtsiomb/meshfile/scene"
)

func quadScene() *scene.Scene {

	s := scene.New()
	mtl := scene.NewMaterial("mat")
	mtl.Get(scene.Metallic).Value.X = 0.5
	s.AddMaterial(mtl)

	m := scene.NewMesh("quad")
	m.AddVertex(0, 0, 0)
	m.AddVertex(1, 0, 0)
	m.AddVertex(1, 1, 0)
	m.AddVertex(0, 1, 0)
	m.AddNormal(0, 0, 1)
	m.AddNormal(0, 0, 1)
	m.AddNormal(0, 0, 1)
	m.AddNormal(0, 0, 1)
	m.AddQuad(0, 1, 2, 3)
	m.Material = mtl
	s.AddMesh(m)

	root := scene.NewNode("root")
	root.Local.MakeTranslation(2, 0, 0)
	root.AddMesh(m)
	s.AddNode(root)

	return s
}

func TestCodec_Probe(t *testing.T) {

	assert.True(t, codec{}.Probe([]byte("glTF")))
	assert.False(t, codec{}.Probe([]byte("obj\n")))
}

func TestCodec_SaveLoadRoundTrip(t *testing.T) {

	s := quadScene()
	rw := meshio.NewMemIO(nil)

	require.NoError(t, codec{}.Save(s, rw))
	_, err := rw.Seek(0, meshio.SeekSet)
	require.NoError(t, err)

	out := scene.New()
	require.NoError(t, codec{}.Load(out, rw))

	require.Equal(t, 1, out.MeshCount())
	mesh := out.Mesh(0)
	assert.Equal(t, 4, mesh.VertexCount())
	assert.Equal(t, 2, len(mesh.Faces))

	require.Equal(t, 1, out.MaterialCount())
	assert.InDelta(t, 0.5, out.Material(0).Get(scene.Metallic).Value.X, 1e-5)

	require.Equal(t, 1, out.NodeCount())
	assert.InDelta(t, 2, out.Node(0).Local[12], 1e-5)
}
