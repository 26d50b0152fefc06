package obj

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtsiomb/meshfile/meshio"
	"github.com/jtsiomb/meshfile/scene"
)

func triScene(withMaterial bool) *scene.Scene {

	s := scene.New()
	m := scene.NewMesh("tri")
	m.AddVertex(0, 0, 0)
	m.AddVertex(1, 0, 0)
	m.AddVertex(0, 1, 0)
	m.AddTriangle(0, 1, 2)

	if withMaterial {
		mtl := scene.NewMaterial("red")
		mtl.Get(scene.Color).Value.X = 1
		s.AddMaterial(mtl)
		m.Material = mtl
	}
	s.AddMesh(m)
	return s
}

func TestCodec_ProbeAlwaysFalse(t *testing.T) {

	assert.False(t, codec{}.Probe([]byte("v 0 0 0\n")))
}

func TestCodec_SaveLoadRoundTripViaMemIO(t *testing.T) {

	s := triScene(false)
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

func TestCodec_SaveLoadRoundTripWithMaterialViaFile(t *testing.T) {

	dir := t.TempDir()
	path := filepath.Join(dir, "tri.obj")

	s := triScene(true)
	f, err := meshio.CreateFile(path)
	require.NoError(t, err)
	require.NoError(t, codec{}.Save(s, f))
	require.NoError(t, f.Close())

	in, err := meshio.OpenFile(path)
	require.NoError(t, err)
	defer in.Close()

	out := scene.New()
	out.Dir = dir
	require.NoError(t, codec{}.Load(out, in))

	require.Equal(t, 1, out.MaterialCount())
	assert.InDelta(t, 1, out.Material(0).Get(scene.Color).Value.X, 1e-5)
}
