package gltf

import (
	"encoding/binary"
	"encoding/json"
	"math"

	"github.com/jtsiomb/meshfile/math32"
	"github.com/jtsiomb/meshfile/scene"
)

// bufBuilder accumulates the single binary buffer a saved GLB embeds,
// handing back 4-byte-aligned byte offsets for each appended span.
type bufBuilder struct {
	data []byte
}

func (b *bufBuilder) appendFloats(v []float32) (offset, length int) {

	offset = len(b.data)
	for _, f := range v {
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(f))
		b.data = append(b.data, buf[:]...)
	}
	length = len(b.data) - offset
	b.pad()
	return offset, length
}

func (b *bufBuilder) appendIndices(v []uint32) (offset, length int) {

	offset = len(b.data)
	for _, idx := range v {
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], idx)
		b.data = append(b.data, buf[:]...)
	}
	length = len(b.data) - offset
	b.pad()
	return offset, length
}

func (b *bufBuilder) pad() {
	for len(b.data)%4 != 0 {
		b.data = append(b.data, 0)
	}
}

// buildDocument assembles a glTF document with one accessor/bufferView
// per mesh attribute array, one material/mesh/node per scene object, and
// a single default scene listing every top-level node.
func buildDocument(s *scene.Scene) ([]byte, []byte, error) {

	buf := &bufBuilder{}
	doc := document{
		Asset: asset{Version: "2.0"},
	}

	for _, mtl := range s.Materials() {
		doc.Materials = append(doc.Materials, saveMaterial(mtl))
	}

	meshIndex := map[*scene.Mesh]int{}
	for _, mesh := range s.Meshes() {
		gi := len(doc.Meshes)
		meshIndex[mesh] = gi
		doc.Meshes = append(doc.Meshes, saveMesh(&doc, buf, s, mesh))
	}

	nodeIndex := map[*scene.Node]int{}
	var assignIndex func(n *scene.Node)
	assignIndex = func(n *scene.Node) {
		nodeIndex[n] = len(doc.Nodes)
		doc.Nodes = append(doc.Nodes, nodeDesc{})
		for _, c := range n.Children() {
			assignIndex(c)
		}
	}
	for _, top := range s.TopLevelNodes() {
		assignIndex(top)
	}

	var fill func(n *scene.Node)
	fill = func(n *scene.Node) {
		nd := nodeDesc{Name: n.Name}
		m := n.Local

		var pos, scl math32.Vector3
		var rot math32.Quaternion
		if m.Determinant() != 0 {
			m.Decompose(&pos, &rot, &scl)
			p := [3]float32{pos.X, pos.Y, pos.Z}
			r := [4]float32{rot.X, rot.Y, rot.Z, rot.W}
			sc := [3]float32{scl.X, scl.Y, scl.Z}
			nd.Translation = &p
			nd.Rotation = &r
			nd.Scale = &sc
		} else {
			arr := m.ToArray(nil, 0)
			var fixed [16]float32
			copy(fixed[:], arr)
			nd.Matrix = &fixed
		}

		for _, c := range n.Children() {
			nd.Children = append(nd.Children, nodeIndex[c])
		}
		if meshes := n.Meshes(); len(meshes) > 0 {
			mi := meshIndex[meshes[0]]
			nd.Mesh = &mi
		}
		doc.Nodes[nodeIndex[n]] = nd
		for _, c := range n.Children() {
			fill(c)
		}
	}
	for _, top := range s.TopLevelNodes() {
		fill(top)
	}

	var roots []int
	for _, top := range s.TopLevelNodes() {
		roots = append(roots, nodeIndex[top])
	}
	doc.Scenes = []sceneDesc{{Nodes: roots}}
	zero := 0
	doc.Scene = &zero

	doc.Buffers = []bufferDesc{{ByteLength: len(buf.data)}}

	jsonBytes, err := json.Marshal(&doc)
	if err != nil {
		return nil, nil, err
	}
	return jsonBytes, buf.data, nil
}

func saveMaterial(mtl *scene.Material) matDesc {

	c := mtl.Attr[scene.Color].Value
	alpha := mtl.Attr[scene.Alpha].Value.X
	metallic := mtl.Attr[scene.Metallic].Value.X
	roughness := mtl.Attr[scene.Roughness].Value.X
	em := mtl.Attr[scene.Emissive].Value

	baseColor := [4]float32{c.X, c.Y, c.Z, alpha}
	emissive := [3]float32{em.X, em.Y, em.Z}

	return matDesc{
		Name: mtl.Name,
		PbrMetallicRoughness: &pbrDesc{
			BaseColorFactor: &baseColor,
			MetallicFactor:  &metallic,
			RoughnessFactor: &roughness,
		},
		EmissiveFactor: &emissive,
	}
}

func saveMesh(doc *document, buf *bufBuilder, s *scene.Scene, mesh *scene.Mesh) meshDesc {

	attrs := map[string]int{}

	posOff, posLen := buf.appendFloats(mesh.Positions)
	attrs["POSITION"] = addAccessor(doc, 0, posOff, posLen, mesh.VertexCount(), "VEC3")

	if len(mesh.Normals) > 0 {
		off, ln := buf.appendFloats(mesh.Normals)
		attrs["NORMAL"] = addAccessor(doc, 0, off, ln, mesh.VertexCount(), "VEC3")
	}
	if len(mesh.Texcoords) > 0 {
		off, ln := buf.appendFloats(mesh.Texcoords)
		attrs["TEXCOORD_0"] = addAccessor(doc, 0, off, ln, mesh.VertexCount(), "VEC2")
	}

	flat := make([]uint32, 0, len(mesh.Faces)*3)
	for _, f := range mesh.Faces {
		flat = append(flat, f[0], f[1], f[2])
	}
	idxOff, idxLen := buf.appendIndices(flat)
	idxAcc := addAccessor(doc, 0, idxOff, idxLen, len(flat), "SCALAR")
	doc.Accessors[idxAcc].ComponentType = compUInt

	prim := primitiveDesc{Attributes: attrs, Indices: &idxAcc}
	if mesh.Material != nil {
		for i, m := range s.Materials() {
			if m == mesh.Material {
				mi := i
				prim.Material = &mi
				break
			}
		}
	}

	return meshDesc{Name: mesh.Name, Primitives: []primitiveDesc{prim}}
}

func addAccessor(doc *document, bufferIdx, offset, length, count int, typ string) int {

	bvi := len(doc.BufferViews)
	doc.BufferViews = append(doc.BufferViews, bufferView{
		Buffer:     bufferIdx,
		ByteOffset: offset,
		ByteLength: length,
	})

	ai := len(doc.Accessors)
	bv := bvi
	doc.Accessors = append(doc.Accessors, accessor{
		BufferView:    &bv,
		ComponentType: compFloat,
		Count:         count,
		Type:          typ,
	})
	return ai
}
