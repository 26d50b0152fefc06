package tds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtsiomb/meshfile/meshio"
	"github.com/jtsiomb/meshfile/scene"
)

func triScene() *scene.Scene {

	s := scene.New()
	mtl := scene.NewMaterial("red")
	mtl.Get(scene.Color).Value.X = 1
	s.AddMaterial(mtl)

	m := scene.NewMesh("tri")
	m.AddVertex(0, 0, 0)
	m.AddVertex(1, 0, 0)
	m.AddVertex(0, 1, 0)
	m.AddTriangle(0, 1, 2)
	m.Material = mtl
	s.AddMesh(m)

	n := scene.NewNode("tri")
	n.AddMesh(m)
	s.AddNode(n)

	return s
}

func TestCodec_Probe(t *testing.T) {

	assert.True(t, codec{}.Probe([]byte{0x4d, 0x4d, 0, 0}))
	assert.False(t, codec{}.Probe([]byte{'O', 'B', 'J'}))
}

func TestCodec_SaveLoadRoundTrip(t *testing.T) {

	s := triScene()
	rw := meshio.NewMemIO(nil)

	require.NoError(t, codec{}.Save(s, rw))
	_, err := rw.Seek(0, meshio.SeekSet)
	require.NoError(t, err)

	out := scene.New()
	require.NoError(t, codec{}.Load(out, rw))

	require.Equal(t, 1, out.MeshCount())
	mesh := out.Mesh(0)
	assert.Equal(t, 3, mesh.VertexCount())
	require.Equal(t, 1, len(mesh.Faces))

	require.Equal(t, 1, out.MaterialCount())
	assert.InDelta(t, 1, out.Material(0).Get(scene.Color).Value.X, 1e-5)
}
