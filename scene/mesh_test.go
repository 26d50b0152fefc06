package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMesh_AddVertexAndTriangle(t *testing.T) {

	m := NewMesh("tri")
	a := m.AddVertex(0, 0, 0)
	b := m.AddVertex(1, 0, 0)
	c := m.AddVertex(0, 1, 0)
	m.AddTriangle(uint32(a), uint32(b), uint32(c))

	assert.Equal(t, 3, m.VertexCount())
	assert.Equal(t, []Face{{0, 1, 2}}, m.Faces)

	p := m.Position(1)
	assert.Equal(t, float32(1), p.X)
	assert.Equal(t, float32(0), p.Y)
}

func TestMesh_AddQuadSplitsIntoTwoTriangles(t *testing.T) {

	m := NewMesh("quad")
	m.AddVertex(0, 0, 0)
	m.AddVertex(1, 0, 0)
	m.AddVertex(1, 1, 0)
	m.AddVertex(0, 1, 0)
	m.AddQuad(0, 1, 2, 3)

	assert.Equal(t, []Face{{0, 1, 2}, {0, 2, 3}}, m.Faces)
}

func TestMesh_BeginEndTriangles(t *testing.T) {

	m := NewMesh("builder")
	m.Begin(Triangles)
	m.Normal(0, 0, 1)
	m.Texcoord(0, 0)
	m.Vertex(0, 0, 0)
	m.Texcoord(1, 0)
	m.Vertex(1, 0, 0)
	m.Texcoord(0, 1)
	m.Vertex(0, 1, 0)
	m.End()

	assert.Equal(t, 3, m.VertexCount())
	assert.Equal(t, 1, len(m.Faces))
	assert.Equal(t, 3, len(m.Normals)/3)
	assert.Equal(t, 3, len(m.Texcoords)/2)
}

func TestMesh_VertexOutsideSessionIsIgnored(t *testing.T) {

	m := NewMesh("stray")
	m.Vertex(1, 2, 3)

	assert.Equal(t, 0, m.VertexCount())
}

func TestMesh_AddVertexExpandsBounds(t *testing.T) {

	m := NewMesh("bounds")
	m.AddVertex(-1, -2, -3)
	m.AddVertex(4, 5, 6)

	assert.Equal(t, float32(-1), m.Bounds.Min.X)
	assert.Equal(t, float32(6), m.Bounds.Max.Z)
}
