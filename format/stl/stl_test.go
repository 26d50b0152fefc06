package stl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtsiomb/meshfile/meshio"
	"github.com/jtsiomb/meshfile/scene"
)

func triScene() *scene.Scene {

	s := scene.New()
	m := scene.NewMesh("tri")
	m.AddVertex(0, 0, 0)
	m.AddVertex(1, 0, 0)
	m.AddVertex(0, 1, 0)
	m.AddTriangle(0, 1, 2)
	s.AddMesh(m)

	n := scene.NewNode("tri")
	n.AddMesh(m)
	s.AddNode(n)
	return s
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
	assert.Equal(t, 3, out.Mesh(0).VertexCount())
	assert.Equal(t, 1, len(out.Mesh(0).Faces))
}
