package postproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtsiomb/meshfile/math32"
	"github.com/jtsiomb/meshfile/scene"
)

func quadMesh() *scene.Mesh {

	m := scene.NewMesh("quad")
	m.AddVertex(0, 0, 0)
	m.AddVertex(1, 0, 0)
	m.AddVertex(1, 1, 0)
	m.AddVertex(0, 1, 0)
	m.AddQuad(0, 1, 2, 3)
	return m
}

func TestGenerateNormals_FlatQuadFacesPositiveZ(t *testing.T) {

	m := quadMesh()
	GenerateNormals(m)

	require.Equal(t, 4*3, len(m.Normals))
	for i := 0; i < 4; i++ {
		assert.InDelta(t, 0, m.Normals[i*3], 1e-5)
		assert.InDelta(t, 0, m.Normals[i*3+1], 1e-5)
		assert.InDelta(t, 1, m.Normals[i*3+2], 1e-5)
	}
}

func TestGenerateTangents_AlignsWithUAxis(t *testing.T) {

	m := quadMesh()
	m.AddTexcoord(0, 0)
	m.AddTexcoord(1, 0)
	m.AddTexcoord(1, 1)
	m.AddTexcoord(0, 1)
	GenerateNormals(m)
	GenerateTangents(m)

	require.Equal(t, 4*3, len(m.Tangents))
	for i := 0; i < 4; i++ {
		assert.InDelta(t, 1, m.Tangents[i*3], 1e-4)
		assert.InDelta(t, 0, m.Tangents[i*3+1], 1e-4)
		assert.InDelta(t, 0, m.Tangents[i*3+2], 1e-4)
	}
}

func TestApplyTransform_BakesTranslationAndResetsNode(t *testing.T) {

	s := scene.New()
	m := quadMesh()
	s.AddMesh(m)

	n := scene.NewNode("n")
	n.Local.MakeTranslation(5, 0, 0)
	n.AddMesh(m)
	s.AddNode(n)

	n.UpdateGlobal()
	ApplyTransform(n)

	p := m.Position(0)
	assert.InDelta(t, 5, p.X, 1e-5)

	var id math32.Matrix4
	id.Identity()
	assert.Equal(t, id, n.Local)
	assert.Equal(t, id, n.Global)
}

func TestApplyTransform_NonUniformScaleKeepsNormalPerpendicular(t *testing.T) {

	s := scene.New()
	m := scene.NewMesh("slant")
	m.AddVertex(0, 0, 0)
	m.AddVertex(1, 0, 1)
	m.AddVertex(0, 1, 0)
	m.AddTriangle(0, 1, 2)
	s.AddMesh(m)
	GenerateNormals(m)

	n := scene.NewNode("n")
	var scaleMat math32.Matrix4
	scaleMat.Identity()
	scaleMat.Scale(&math32.Vector3{X: 4, Y: 1, Z: 1})
	n.Local = scaleMat
	n.AddMesh(m)
	s.AddNode(n)

	n.UpdateGlobal()
	ApplyTransform(n)

	p0 := m.Position(0)
	p1 := m.Position(1)
	p2 := m.Position(2)
	e1 := p1
	e1.Sub(&p0)
	e2 := p2
	e2.Sub(&p0)

	var normal math32.Vector3
	m.Normals.GetVector3(0, &normal)

	assert.InDelta(t, 0, normal.Dot(&e1), 1e-4)
	assert.InDelta(t, 0, normal.Dot(&e2), 1e-4)
}

func TestProcess_GeneratesNormalsByDefault(t *testing.T) {

	s := scene.New()
	s.AddMesh(quadMesh())

	Process(s, 0)

	assert.Equal(t, 4*3, len(s.Meshes()[0].Normals))
}

func TestProcess_NoProcSkipsNormalGeneration(t *testing.T) {

	s := scene.New()
	s.AddMesh(quadMesh())

	Process(s, scene.NoProc)

	assert.Empty(t, s.Meshes()[0].Normals)
}
