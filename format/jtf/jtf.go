// Package jtf implements the JTF codec: a minimal fixed-layout flat
// triangle stream (magic, format word, face count, then 3 vertices per
// face of position+normal+texcoord).
package jtf

import (
	"fmt"

	"github.com/jtsiomb/meshfile/format"
	"github.com/jtsiomb/meshfile/meshio"
	"github.com/jtsiomb/meshfile/scene"
)

func init() {
	format.Register(codec{})
}

type codec struct{}

func (codec) Name() string       { return "jtf" }
func (codec) Suffixes() []string { return []string{"jtf"} }

var magic = [4]byte{'J', 'T', 'F', '!'}

func (codec) Probe(peek []byte) bool {

	return len(peek) >= 4 && peek[0] == magic[0] && peek[1] == magic[1] &&
		peek[2] == magic[2] && peek[3] == magic[3]
}

const vertexRecordSize = 4 * (3 + 3 + 2) // pos + normal + uv, as float32

// Load reads a JTF stream into one flat (unindexed) mesh wrapped in one node.
func (codec) Load(s *scene.Scene, rw meshio.IO) error {

	b := meshio.NewBufIO(rw)

	var hdr [4]byte
	if _, err := io_ReadFull(rw, hdr[:]); err != nil {
		return scene.NewError(scene.ErrIO, "format/jtf: load", err)
	}
	if hdr != magic {
		return scene.NewError(scene.ErrFormat, "format/jtf: load", fmt.Errorf("bad magic"))
	}

	fmtVersion, err := b.ReadU32()
	if err != nil {
		return scene.NewError(scene.ErrIO, "format/jtf: load", err)
	}
	if fmtVersion != 0 {
		return scene.NewError(scene.ErrUnsupported, "format/jtf: load",
			fmt.Errorf("unsupported vertex format %d", fmtVersion))
	}

	nfaces, err := b.ReadU32()
	if err != nil {
		return scene.NewError(scene.ErrIO, "format/jtf: load", err)
	}

	mesh := scene.NewMesh("jtfmesh")
	vidx := uint32(0)
	for i := uint32(0); i < nfaces; i++ {
		for j := 0; j < 3; j++ {
			px, err := b.ReadF32()
			if err != nil {
				return scene.NewError(scene.ErrIO, "format/jtf: load", err)
			}
			py, _ := b.ReadF32()
			pz, _ := b.ReadF32()
			nx, _ := b.ReadF32()
			ny, _ := b.ReadF32()
			nz, _ := b.ReadF32()
			u, _ := b.ReadF32()
			v, err := b.ReadF32()
			if err != nil {
				return scene.NewError(scene.ErrIO, "format/jtf: load", err)
			}
			mesh.AddVertex(px, py, pz)
			mesh.AddNormal(nx, ny, nz)
			mesh.AddTexcoord(u, v)
		}
		mesh.AddTriangle(vidx, vidx+1, vidx+2)
		vidx += 3
	}

	s.AddMesh(mesh)
	node := scene.NewNode("")
	node.AddMesh(mesh)
	s.AddNode(node)
	return nil
}

func io_ReadFull(rw meshio.IO, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := rw.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
		if n == 0 {
			break
		}
	}
	return total, nil
}

// Save flattens every scene mesh's indexed faces into independent
// vertices and writes one JTF stream; meshes missing normals/texcoords
// use (0,1,0) and (0,0) respectively.
func (codec) Save(s *scene.Scene, rw meshio.IO) error {

	b := meshio.NewBufIO(rw)

	var totalFaces int
	for _, mesh := range s.Meshes() {
		totalFaces += len(mesh.Faces)
	}

	if _, err := rw.Write(magic[:]); err != nil {
		return scene.NewError(scene.ErrIO, "format/jtf: save", err)
	}
	if err := b.WriteU32(0); err != nil {
		return scene.NewError(scene.ErrIO, "format/jtf: save", err)
	}
	if err := b.WriteU32(uint32(totalFaces)); err != nil {
		return scene.NewError(scene.ErrIO, "format/jtf: save", err)
	}

	for _, mesh := range s.Meshes() {
		hasNormal := len(mesh.Normals) > 0
		hasUV := len(mesh.Texcoords) > 0
		for _, f := range mesh.Faces {
			for _, idx := range f {
				p := mesh.Position(int(idx))
				if err := b.WriteF32(p.X); err != nil {
					return scene.NewError(scene.ErrIO, "format/jtf: save", err)
				}
				b.WriteF32(p.Y)
				b.WriteF32(p.Z)

				nx, ny, nz := float32(0), float32(1), float32(0)
				if hasNormal {
					nx, ny, nz = mesh.Normals[idx*3], mesh.Normals[idx*3+1], mesh.Normals[idx*3+2]
				}
				b.WriteF32(nx)
				b.WriteF32(ny)
				b.WriteF32(nz)

				u, v := float32(0), float32(0)
				if hasUV {
					u, v = mesh.Texcoords[idx*2], mesh.Texcoords[idx*2+1]
				}
				b.WriteF32(u)
				if err := b.WriteF32(v); err != nil {
					return scene.NewError(scene.ErrIO, "format/jtf: save", err)
				}
			}
		}
	}
	return b.Flush()
}
