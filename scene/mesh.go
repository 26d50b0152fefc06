package scene

import "github.com/jtsiomb/meshfile/math32"

// Face is a triangle: three indices into a Mesh's Positions array, in
// counter-clockwise winding order.
type Face [3]uint32

// builderTag guards immediate-mode calls against use outside a Begin/End
// session; it mirrors the sentinel tag the original C mesh builder installs
// on its hidden state so stray attribute calls on a non-begun mesh can be
// detected and ignored rather than corrupting memory.
const builderTag = 0xaaed55de

// Primitive selects the immediate-mode assembly rule used between Begin
// and End.
type Primitive int

const (
	Triangles Primitive = iota
	Quads
)

// builderState is the mesh's immediate-mode session, installed by Begin
// and torn down by End.
type builderState struct {
	tag       uint32
	prim      Primitive
	pending   int // vertices emitted since the last face boundary
	curNormal math32.Vector3
	curTangent math32.Vector3
	curUV     math32.Vector2
	curColor  math32.Vector4
	haveNormal, haveTangent, haveUV, haveColor bool
}

// Mesh holds parallel per-vertex attribute arrays, a face list, a local
// bounding box, and a reference to the one Material it uses.
type Mesh struct {
	Name       string
	Positions  math32.ArrayF32 // 3 floats per vertex, required
	Normals    math32.ArrayF32 // 3 floats per vertex, or empty
	Tangents   math32.ArrayF32 // 3 floats per vertex, or empty
	Texcoords  math32.ArrayF32 // 2 floats per vertex, or empty
	Colors     math32.ArrayF32 // 4 floats per vertex, or empty
	Faces      []Face
	Bounds     math32.Box3
	Material   *Material
	UserData   UserData

	builder *builderState
}

// NewMesh returns an empty, named Mesh with an empty (degenerate) bounds box.
func NewMesh(name string) *Mesh {

	m := &Mesh{Name: name}
	m.Bounds.MakeEmpty()
	return m
}

// VertexCount returns the number of positions (and, transitively, the
// required length of any other non-empty attribute array).
func (m *Mesh) VertexCount() int {

	return len(m.Positions) / 3
}

// Position returns vertex i's position.
func (m *Mesh) Position(i int) math32.Vector3 {

	var v math32.Vector3
	m.Positions.GetVector3(i*3, &v)
	return v
}

// AddVertex appends a position and expands the mesh's local bounds.
// Returns the new vertex's index.
func (m *Mesh) AddVertex(x, y, z float32) int {

	idx := m.VertexCount()
	m.Positions.Append(x, y, z)
	p := math32.Vector3{X: x, Y: y, Z: z}
	m.Bounds.ExpandByPoint(&p)
	return idx
}

// AddNormal appends a normal.
func (m *Mesh) AddNormal(x, y, z float32) {

	m.Normals.Append(x, y, z)
}

// AddTangent appends a tangent.
func (m *Mesh) AddTangent(x, y, z float32) {

	m.Tangents.Append(x, y, z)
}

// AddTexcoord appends a texture coordinate.
func (m *Mesh) AddTexcoord(u, v float32) {

	m.Texcoords.Append(u, v)
}

// AddColor appends a vertex color.
func (m *Mesh) AddColor(r, g, b, a float32) {

	m.Colors.Append(r, g, b, a)
}

// AddTriangle appends one face referencing vertices a, b, c.
func (m *Mesh) AddTriangle(a, b, c uint32) {

	m.Faces = append(m.Faces, Face{a, b, c})
}

// AddQuad appends two faces, (a,b,c) and (a,c,d), covering the quad
// a-b-c-d.
func (m *Mesh) AddQuad(a, b, c, d uint32) {

	m.AddTriangle(a, b, c)
	m.AddTriangle(a, c, d)
}

// Begin starts an immediate-mode assembly session, clearing the mesh and
// installing a builder tag. Only Vertex/Normal/Tangent/Texcoord/Color/End
// are valid until the matching End.
func (m *Mesh) Begin(prim Primitive) {

	m.Positions = m.Positions[:0]
	m.Normals = m.Normals[:0]
	m.Tangents = m.Tangents[:0]
	m.Texcoords = m.Texcoords[:0]
	m.Colors = m.Colors[:0]
	m.Faces = m.Faces[:0]
	m.Bounds.MakeEmpty()
	m.builder = &builderState{tag: builderTag, prim: prim}
}

// inSession reports whether a Begin/End session is active, guarding
// against stray attribute calls the way the original's tag check does.
func (m *Mesh) inSession() bool {

	return m.builder != nil && m.builder.tag == builderTag
}

// Normal sets the sticky current normal applied to subsequent Vertex calls.
func (m *Mesh) Normal(x, y, z float32) {

	if !m.inSession() {
		return
	}
	m.builder.curNormal = math32.Vector3{X: x, Y: y, Z: z}
	m.builder.haveNormal = true
}

// Tangent sets the sticky current tangent applied to subsequent Vertex calls.
func (m *Mesh) Tangent(x, y, z float32) {

	if !m.inSession() {
		return
	}
	m.builder.curTangent = math32.Vector3{X: x, Y: y, Z: z}
	m.builder.haveTangent = true
}

// Texcoord sets the sticky current texture coordinate applied to
// subsequent Vertex calls.
func (m *Mesh) Texcoord(u, v float32) {

	if !m.inSession() {
		return
	}
	m.builder.curUV = math32.Vector2{X: u, Y: v}
	m.builder.haveUV = true
}

// Color sets the sticky current vertex color applied to subsequent Vertex
// calls.
func (m *Mesh) Color(r, g, b, a float32) {

	if !m.inSession() {
		return
	}
	m.builder.curColor = math32.Vector4{X: r, Y: g, Z: b, W: a}
	m.builder.haveColor = true
}

// Vertex appends a position plus any active sticky attributes, and every
// Primitive-many vertices emits the corresponding face (or two, for a
// quad).
func (m *Mesh) Vertex(x, y, z float32) {

	if !m.inSession() {
		return
	}
	b := m.builder
	idx := uint32(m.AddVertex(x, y, z))
	if b.haveNormal {
		m.AddNormal(b.curNormal.X, b.curNormal.Y, b.curNormal.Z)
	}
	if b.haveTangent {
		m.AddTangent(b.curTangent.X, b.curTangent.Y, b.curTangent.Z)
	}
	if b.haveUV {
		m.AddTexcoord(b.curUV.X, b.curUV.Y)
	}
	if b.haveColor {
		m.AddColor(b.curColor.X, b.curColor.Y, b.curColor.Z, b.curColor.W)
	}

	b.pending++
	n := 3
	if b.prim == Quads {
		n = 4
	}
	if b.pending == n {
		base := idx - uint32(n-1)
		if b.prim == Triangles {
			m.AddTriangle(base, base+1, base+2)
		} else {
			m.AddQuad(base, base+1, base+2, base+3)
		}
		b.pending = 0
	}
}

// End flushes and removes the builder session.
func (m *Mesh) End() {

	m.builder = nil
}
