package jtf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtsiomb/meshfile/meshio"
	"github.com/jtsiomb/meshfile/scene"
)

func TestCodec_Probe(t *testing.T) {

	assert.True(t, codec{}.Probe([]byte("JTF!")))
	assert.False(t, codec{}.Probe([]byte("obj\n")))
}

func TestCodec_SaveLoadRoundTrip(t *testing.T) {

	s := scene.New()
	m := scene.NewMesh("tri")
	m.AddVertex(0, 0, 0)
	m.AddVertex(1, 0, 0)
	m.AddVertex(0, 1, 0)
	m.AddTriangle(0, 1, 2)
	s.AddMesh(m)

	rw := meshio.NewMemIO(nil)
	require.NoError(t, codec{}.Save(s, rw))
	_, err := rw.Seek(0, meshio.SeekSet)
	require.NoError(t, err)

	out := scene.New()
	require.NoError(t, codec{}.Load(out, rw))

	require.Equal(t, 1, out.MeshCount())
	mesh := out.Mesh(0)
	assert.Equal(t, 3, mesh.VertexCount())
	assert.Equal(t, 1, len(mesh.Faces))

	p := mesh.Position(1)
	assert.InDelta(t, 1, p.X, 1e-5)
}
