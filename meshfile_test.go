package meshfile

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtsiomb/meshfile/scene"
)

func newTriMesh() *scene.Mesh {

	m := scene.NewMesh("tri")
	m.AddVertex(0, 0, 0)
	m.AddVertex(1, 0, 0)
	m.AddVertex(0, 1, 0)
	m.AddTriangle(0, 1, 2)
	return m
}

func TestLoadSave_OBJRoundTripOnDisk(t *testing.T) {

	dir := t.TempDir()
	path := filepath.Join(dir, "tri.obj")

	s := NewScene()
	s.AddMesh(newTriMesh())

	require.NoError(t, Save(s, path))

	out, err := Load(path, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, out.MeshCount())
	assert.Equal(t, 3, out.Meshes()[0].VertexCount())
}

func TestSaveWriter_LoadReader_GLTFRoundTrip(t *testing.T) {

	s := NewScene()
	s.AddMesh(newTriMesh())

	var buf bytes.Buffer
	require.NoError(t, SaveWriter(s, &buf, GLTF))

	out, err := LoadReader(bytes.NewReader(buf.Bytes()), "", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, out.MeshCount())
	assert.Equal(t, 3, out.Meshes()[0].VertexCount())
}

func TestLoad_MissingFileReturnsError(t *testing.T) {

	_, err := Load(filepath.Join(t.TempDir(), "missing.obj"), 0)
	assert.Error(t, err)
}

func TestLoad_NoProcFlagSkipsNormalGeneration(t *testing.T) {

	dir := t.TempDir()
	path := filepath.Join(dir, "tri.obj")

	s := NewScene()
	s.AddMesh(newTriMesh())
	require.NoError(t, Save(s, path))

	out, err := Load(path, NoProc)
	require.NoError(t, err)
	assert.Empty(t, out.Meshes()[0].Normals)
}
