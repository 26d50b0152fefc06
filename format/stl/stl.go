// Package stl implements the binary STL codec. STL files are written
// and read with a Z-up vertex axis order in the file mapped to this
// library's Y-up convention (the second file float feeds Z, the third
// feeds Y); winding is correspondingly reversed.
package stl

import (
	"fmt"

	"github.com/jtsiomb/meshfile/format"
	"github.com/jtsiomb/meshfile/math32"
	"github.com/jtsiomb/meshfile/meshio"
	"github.com/jtsiomb/meshfile/scene"
)

func init() {
	format.Register(codec{})
}

type codec struct{}

func (codec) Name() string       { return "stl" }
func (codec) Suffixes() []string { return []string{"stl"} }

// Probe has nothing reliable to match on (STL's 80-byte header is
// free-form text), so Load is only ever reached through the trial order.
func (codec) Probe([]byte) bool { return false }

const headerSize = 80
const recordSize = 50 // 12 floats (48 bytes) + 2-byte attribute count

// Load reads a binary STL stream into one mesh wrapped in one node.
func (codec) Load(s *scene.Scene, rw meshio.IO) error {

	filesz, err := rw.Seek(0, meshio.SeekEnd)
	if err != nil {
		return scene.NewError(scene.ErrIO, "format/stl: load", err)
	}
	if _, err := rw.Seek(headerSize, meshio.SeekSet); err != nil {
		return scene.NewError(scene.ErrIO, "format/stl: load", err)
	}

	b := meshio.NewBufIO(rw)
	nfaces, err := b.ReadU32()
	if err != nil {
		return scene.NewError(scene.ErrFormat, "format/stl: load", err)
	}

	if int64(nfaces)*recordSize+headerSize+4 != filesz {
		return scene.NewError(scene.ErrFormat, "format/stl: load",
			fmt.Errorf("file size %d does not match face count %d", filesz, nfaces))
	}

	mesh := scene.NewMesh("")
	vidx := uint32(0)
	for i := uint32(0); i < nfaces; i++ {
		nx, ny, nz, err := readVec(b)
		if err != nil {
			return scene.NewError(scene.ErrIO, "format/stl: load", err)
		}
		for j := 0; j < 3; j++ {
			mesh.AddNormal(nx, ny, nz)
			vx, vy, vz, err := readVec(b)
			if err != nil {
				return scene.NewError(scene.ErrIO, "format/stl: load", err)
			}
			mesh.AddVertex(vx, vy, vz)
		}
		mesh.AddTriangle(vidx, vidx+2, vidx+1)
		vidx += 3
		// skip the 2-byte attribute count through the same buffered
		// reader rather than seeking the underlying stream directly,
		// which would desync bufio's read-ahead buffer
		if _, err := b.ReadU16(); err != nil {
			return scene.NewError(scene.ErrIO, "format/stl: load", err)
		}
	}

	s.AddMesh(mesh)
	node := scene.NewNode("")
	node.AddMesh(mesh)
	s.AddNode(node)
	return nil
}

// readVec reads three little-endian floats from the file in (x, z, y)
// order and returns them as (x, y, z).
func readVec(b *meshio.BufIO) (x, y, z float32, err error) {

	x, err = b.ReadF32()
	if err != nil {
		return
	}
	z, err = b.ReadF32()
	if err != nil {
		return
	}
	y, err = b.ReadF32()
	return
}

// writeVec writes x, y, z to the file in (x, z, y) order.
func writeVec(b *meshio.BufIO, x, y, z float32) error {

	if err := b.WriteF32(x); err != nil {
		return err
	}
	if err := b.WriteF32(z); err != nil {
		return err
	}
	return b.WriteF32(y)
}

var header = []byte("STL written by meshfile")

// Save writes every mesh owned by a scene node, transformed into world
// space by that node's global matrix, as one binary STL stream.
func (codec) Save(s *scene.Scene, rw meshio.IO) error {

	b := meshio.NewBufIO(rw)

	var hdr [headerSize]byte
	for i := range hdr {
		c := header[i%len(header)]
		hdr[i] = c
	}
	if _, err := rw.Write(hdr[:]); err != nil {
		return scene.NewError(scene.ErrIO, "format/stl: save", err)
	}

	var totalFaces uint32
	for _, node := range s.Nodes() {
		for _, mesh := range node.Meshes() {
			totalFaces += uint32(len(mesh.Faces))
		}
	}
	if err := b.WriteU32(totalFaces); err != nil {
		return scene.NewError(scene.ErrIO, "format/stl: save", err)
	}

	for _, node := range s.Nodes() {
		for _, mesh := range node.Meshes() {
			if err := writeMesh(b, mesh, &node.Global); err != nil {
				return scene.NewError(scene.ErrIO, "format/stl: save", err)
			}
		}
	}
	return b.Flush()
}

func writeMesh(b *meshio.BufIO, mesh *scene.Mesh, mat *math32.Matrix4) error {

	for _, f := range mesh.Faces {
		var v [3]math32.Vector3
		for j, idx := range f {
			v[j] = mesh.Position(int(idx))
			v[j].ApplyMatrix4(mat)
		}
		var va, vb, norm math32.Vector3
		va.SubVectors(&v[1], &v[0])
		vb.SubVectors(&v[2], &v[0])
		norm.CrossVectors(&va, &vb)
		norm.Normalize()

		if err := writeVec(b, norm.X, norm.Y, norm.Z); err != nil {
			return err
		}
		if err := writeVec(b, v[0].X, v[0].Y, v[0].Z); err != nil {
			return err
		}
		if err := writeVec(b, v[2].X, v[2].Y, v[2].Z); err != nil {
			return err
		}
		if err := writeVec(b, v[1].X, v[1].Y, v[1].Z); err != nil {
			return err
		}
		if err := b.WriteU16(0); err != nil {
			return err
		}
	}
	return nil
}
