// Package gltf implements the glTF 2.0 codec, in both its JSON (.gltf)
// and binary (.glb) container forms. Only the subset of the format
// needed to round-trip a scene's meshes, materials and node hierarchy
// is implemented: skins, animations and cameras are ignored and not
// translated into scene objects.
package gltf

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jtsiomb/meshfile/format"
	"github.com/jtsiomb/meshfile/meshio"
	"github.com/jtsiomb/meshfile/scene"
)

func init() {
	format.Register(codec{})
}

type codec struct{}

func (codec) Name() string       { return "gltf" }
func (codec) Suffixes() []string { return []string{"gltf", "glb"} }

const glbMagic = 0x46546c67 // "glTF"

func (codec) Probe(peek []byte) bool {

	return len(peek) >= 4 && binary.LittleEndian.Uint32(peek) == glbMagic
}

type glbHeader struct {
	Magic   uint32
	Version uint32
	Length  uint32
}

type glbChunkHeader struct {
	Length uint32
	Type   uint32
}

const (
	glbChunkJSON = 0x4e4f534a
	glbChunkBIN  = 0x004e4942
)

// document is the root of a decoded glTF JSON asset.
type document struct {
	Asset       asset        `json:"asset"`
	Scene       *int         `json:"scene"`
	Scenes      []sceneDesc  `json:"scenes"`
	Nodes       []nodeDesc   `json:"nodes"`
	Meshes      []meshDesc   `json:"meshes"`
	Materials   []matDesc    `json:"materials"`
	Accessors   []accessor   `json:"accessors"`
	BufferViews []bufferView `json:"bufferViews"`
	Buffers     []bufferDesc `json:"buffers"`
	Textures    []textureDesc `json:"textures"`
	Images      []imageDesc  `json:"images"`
	Samplers    []samplerDesc `json:"samplers"`

	// binData is chunk 1 of a GLB container, used by buffers with no URI.
	binData []byte
	// dir resolves relative buffer/image URIs against the scene's directory.
	dir string
	sc  *scene.Scene
}

type asset struct {
	Version string `json:"version"`
}

type sceneDesc struct {
	Nodes []int  `json:"nodes"`
	Name  string `json:"name"`
}

type nodeDesc struct {
	Children    []int       `json:"children"`
	Mesh        *int        `json:"mesh"`
	Matrix      *[16]float32 `json:"matrix"`
	Translation *[3]float32 `json:"translation"`
	Rotation    *[4]float32 `json:"rotation"`
	Scale       *[3]float32 `json:"scale"`
	Name        string      `json:"name"`
}

type meshDesc struct {
	Primitives []primitiveDesc `json:"primitives"`
	Name       string          `json:"name"`
}

type primitiveDesc struct {
	Attributes map[string]int `json:"attributes"`
	Indices    *int           `json:"indices"`
	Material   *int           `json:"material"`
	Mode       *int           `json:"mode"`
}

const modeTriangles = 4

type accessor struct {
	BufferView    *int      `json:"bufferView"`
	ByteOffset    int       `json:"byteOffset"`
	ComponentType int       `json:"componentType"`
	Normalized    bool      `json:"normalized"`
	Count         int       `json:"count"`
	Type          string    `json:"type"`
}

type bufferView struct {
	Buffer     int  `json:"buffer"`
	ByteOffset int  `json:"byteOffset"`
	ByteLength int  `json:"byteLength"`
	ByteStride *int `json:"byteStride"`
}

type bufferDesc struct {
	Uri        string `json:"uri"`
	ByteLength int    `json:"byteLength"`

	cache []byte
}

type textureDesc struct {
	Source  *int `json:"source"`
	Sampler *int `json:"sampler"`
}

type imageDesc struct {
	Uri        string `json:"uri"`
	MimeType   string `json:"mimeType"`
	BufferView *int   `json:"bufferView"`
}

type samplerDesc struct {
	WrapS *int `json:"wrapS"`
	WrapT *int `json:"wrapT"`
}

type textureRef struct {
	Index      int                        `json:"index"`
	TexCoord   int                        `json:"texCoord"`
	Extensions map[string]json.RawMessage `json:"extensions"`
}

// khrTextureTransformExt is KHR_texture_transform: a UV offset/scale/
// rotation applied in the shader ahead of sampling, independent of the
// sampler's own wrap/filter state.
type khrTextureTransformExt struct {
	Offset   *[2]float32 `json:"offset"`
	Scale    *[2]float32 `json:"scale"`
	Rotation *float32    `json:"rotation"`
}

type pbrDesc struct {
	BaseColorFactor          *[4]float32 `json:"baseColorFactor"`
	BaseColorTexture         *textureRef `json:"baseColorTexture"`
	MetallicFactor           *float32    `json:"metallicFactor"`
	RoughnessFactor          *float32    `json:"roughnessFactor"`
	MetallicRoughnessTexture *textureRef `json:"metallicRoughnessTexture"`
}

// khrSpecularExt is KHR_materials_specular: a scalar strength factor and
// an RGB tint on top of the PBR dielectric specular reflectance.
type khrSpecularExt struct {
	SpecularFactor      *float32    `json:"specularFactor"`
	SpecularColorFactor *[3]float32 `json:"specularColorFactor"`
	SpecularTexture     *textureRef `json:"specularTexture"`
}

// khrIorExt is KHR_materials_ior: an explicit index of refraction
// overriding the glTF default of 1.5.
type khrIorExt struct {
	IOR *float32 `json:"ior"`
}

// khrTransmissionExt is KHR_materials_transmission: the fraction of
// light that passes through the surface rather than reflecting.
type khrTransmissionExt struct {
	TransmissionFactor  *float32    `json:"transmissionFactor"`
	TransmissionTexture *textureRef `json:"transmissionTexture"`
}

type matDesc struct {
	Name                 string                 `json:"name"`
	PbrMetallicRoughness *pbrDesc               `json:"pbrMetallicRoughness"`
	NormalTexture        *textureRef            `json:"normalTexture"`
	EmissiveTexture      *textureRef            `json:"emissiveTexture"`
	EmissiveFactor       *[3]float32            `json:"emissiveFactor"`
	Extensions           map[string]json.RawMessage `json:"extensions"`
}

// Load decodes either a GLB container or a bare JSON document from rw
// into the scene's materials, meshes and node hierarchy.
func (codec) Load(s *scene.Scene, rw meshio.IO) error {

	all, err := readAll(rw)
	if err != nil {
		return scene.NewError(scene.ErrIO, "format/gltf: load", err)
	}

	var jsonBytes, binBytes []byte
	if len(all) >= 4 && binary.LittleEndian.Uint32(all) == glbMagic {
		jsonBytes, binBytes, err = splitGLB(all)
		if err != nil {
			return scene.NewError(scene.ErrFormat, "format/gltf: load", err)
		}
	} else {
		jsonBytes = all
	}

	doc := &document{dir: s.Dir, sc: s, binData: binBytes}
	if err := json.Unmarshal(jsonBytes, doc); err != nil {
		return scene.NewError(scene.ErrFormat, "format/gltf: load", err)
	}

	for _, m := range doc.Materials {
		s.AddMaterial(doc.loadMaterial(m))
	}

	meshSets := make([][]*scene.Mesh, len(doc.Meshes))
	for mi := range doc.Meshes {
		meshes, err := doc.loadMesh(mi)
		if err != nil {
			return scene.NewError(scene.ErrIO, "format/gltf: load", err)
		}
		for _, mesh := range meshes {
			s.AddMesh(mesh)
		}
		meshSets[mi] = meshes
	}

	nodeScenes := make([]*scene.Node, len(doc.Nodes))
	var build func(i int) (*scene.Node, error)
	build = func(i int) (*scene.Node, error) {
		if nodeScenes[i] != nil {
			return nodeScenes[i], nil
		}
		nd := doc.Nodes[i]
		node := scene.NewNode(nd.Name)
		applyTransform(node, nd)
		nodeScenes[i] = node

		if nd.Mesh != nil && *nd.Mesh < len(meshSets) {
			for _, mesh := range meshSets[*nd.Mesh] {
				node.AddMesh(mesh)
			}
		}
		for _, ci := range nd.Children {
			child, err := build(ci)
			if err != nil {
				return nil, err
			}
			node.AddChild(child)
		}
		return node, nil
	}

	roots := []int{}
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		roots = doc.Scenes[*doc.Scene].Nodes
	} else if len(doc.Scenes) > 0 {
		roots = doc.Scenes[0].Nodes
	} else {
		for i := range doc.Nodes {
			roots = append(roots, i)
		}
	}

	for _, ri := range roots {
		node, err := build(ri)
		if err != nil {
			return scene.NewError(scene.ErrIO, "format/gltf: load", err)
		}
		s.AddNode(node)
	}
	for i, n := range nodeScenes {
		if n != nil && n.Parent() == nil {
			found := false
			for _, ri := range roots {
				if ri == i {
					found = true
				}
			}
			if !found {
				s.AddNode(n)
			}
		}
	}

	return nil
}

func applyTransform(node *scene.Node, nd nodeDesc) {

	if nd.Matrix != nil {
		node.Local.FromArray(nd.Matrix[:], 0)
		return
	}

	pos := vec3From(nd.Translation, 0, 0, 0)
	scl := vec3From(nd.Scale, 1, 1, 1)
	q := quatFrom(nd.Rotation)
	node.Local.Compose(&pos, &q, &scl)
}

// Save writes a GLB container with a single buffer holding, for every
// scene mesh, separate (non-interleaved) position/normal/texcoord spans
// and a uint32 index span, one glTF mesh per scene mesh and one node per
// scene node.
func (codec) Save(s *scene.Scene, rw meshio.IO) error {

	jsonBytes, bin, err := buildDocument(s)
	if err != nil {
		return scene.NewError(scene.ErrIO, "format/gltf: save", err)
	}

	if err := writeGLB(rw, jsonBytes, bin); err != nil {
		return scene.NewError(scene.ErrIO, "format/gltf: save", err)
	}
	return nil
}

func writeGLB(rw meshio.IO, jsonBytes, bin []byte) error {

	for len(jsonBytes)%4 != 0 {
		jsonBytes = append(jsonBytes, ' ')
	}
	for len(bin)%4 != 0 {
		bin = append(bin, 0)
	}

	total := uint32(12 + 8 + len(jsonBytes) + 8 + len(bin))
	hdr := glbHeader{Magic: glbMagic, Version: 2, Length: total}
	if err := binary.Write(ioAdapter{rw}, binary.LittleEndian, &hdr); err != nil {
		return err
	}
	jh := glbChunkHeader{Length: uint32(len(jsonBytes)), Type: glbChunkJSON}
	if err := binary.Write(ioAdapter{rw}, binary.LittleEndian, &jh); err != nil {
		return err
	}
	if _, err := rw.Write(jsonBytes); err != nil {
		return err
	}
	bh := glbChunkHeader{Length: uint32(len(bin)), Type: glbChunkBIN}
	if err := binary.Write(ioAdapter{rw}, binary.LittleEndian, &bh); err != nil {
		return err
	}
	_, err := rw.Write(bin)
	return err
}

func splitGLB(data []byte) (jsonBytes, bin []byte, err error) {

	r := bytes.NewReader(data)
	var hdr glbHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, nil, err
	}
	if hdr.Magic != glbMagic {
		return nil, nil, fmt.Errorf("bad GLB magic")
	}
	if hdr.Version < 2 {
		return nil, nil, fmt.Errorf("unsupported GLB version %d", hdr.Version)
	}

	for r.Len() > 0 {
		var ch glbChunkHeader
		if err := binary.Read(r, binary.LittleEndian, &ch); err != nil {
			break
		}
		buf := make([]byte, ch.Length)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, nil, err
		}
		switch ch.Type {
		case glbChunkJSON:
			jsonBytes = buf
		case glbChunkBIN:
			bin = buf
		}
	}
	if jsonBytes == nil {
		return nil, nil, fmt.Errorf("GLB stream has no JSON chunk")
	}
	return jsonBytes, bin, nil
}

func readAll(rw meshio.IO) ([]byte, error) {

	var buf bytes.Buffer
	tmp := make([]byte, 32*1024)
	for {
		n, err := rw.Read(tmp)
		if n > 0 {
			buf.Write(tmp[:n])
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		if n == 0 {
			break
		}
	}
	return buf.Bytes(), nil
}

// ioAdapter adapts meshio.IO to io.Writer/io.Reader for encoding/binary.
type ioAdapter struct{ rw meshio.IO }

func (a ioAdapter) Write(p []byte) (int, error) { return a.rw.Write(p) }
func (a ioAdapter) Read(p []byte) (int, error)  { return a.rw.Read(p) }
