package tds

import (
	"io"

	"github.com/jtsiomb/meshfile/math32"
	"github.com/jtsiomb/meshfile/meshio"
	"github.com/jtsiomb/meshfile/scene"
)

// mrowOffs maps the 4 rows read from a MESHMATRIX chunk, in file order,
// onto the flat column-major Matrix4 offset holding that row's data:
// file row 0 (X axis) into column 0, row 1 (Y axis) into column 2, row 2
// (Z axis) into column 1, row 3 (origin) into column 3 -- the axis swap
// that converts the file's Z-up convention to this library's Y-up one.
var mrowOffs = [4]int{0, 8, 4, 12}

func readObject(s *scene.Scene, rw meshio.IO, par *chunk) error {

	name, err := readCStr(rw, par.end)
	if err != nil {
		return err
	}

	mesh := scene.NewMesh(name)
	node := scene.NewNode(name)
	haveMatrix := false

	for {
		ck, err := readChunk(rw, par)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch ck.id {
		case cidTrimesh:
			hm, err := readTrimesh(s, mesh, node, rw, ck)
			if err != nil {
				return err
			}
			haveMatrix = haveMatrix || hm

		default:
			skipChunk(rw, ck)
		}
	}

	if mesh.VertexCount() == 0 {
		// object chunk with an empty trimesh: no mesh, no node emitted.
		return nil
	}

	if haveMatrix {
		inv := node.Local
		if inv.GetInverse(&node.Local) == nil {
			bakeInverse(mesh, &inv)
		}
	}

	s.AddMesh(mesh)
	node.AddMesh(mesh)
	s.AddNode(node)
	return nil
}

// bakeInverse applies inv to every position in mesh, in place --
// the asymmetric read-side behavior carried over unchanged from the
// reference implementation (see design notes): the node keeps the matrix
// as read, but the mesh's own vertices are baked into the node's local
// frame by the *inverse* of that same matrix.
func bakeInverse(mesh *scene.Mesh, inv *math32.Matrix4) {

	n := mesh.VertexCount()
	for i := 0; i < n; i++ {
		p := mesh.Position(i)
		p.ApplyMatrix4(inv)
		mesh.Positions[i*3] = p.X
		mesh.Positions[i*3+1] = p.Y
		mesh.Positions[i*3+2] = p.Z
	}
}

// readTrimesh reads one TRIMESH chunk's children into mesh/node. Returns
// whether a MESHMATRIX sub-chunk was found.
func readTrimesh(s *scene.Scene, mesh *scene.Mesh, node *scene.Node, rw meshio.IO, par *chunk) (bool, error) {

	haveMatrix := false

	for {
		ck, err := readChunk(rw, par)
		if err == io.EOF {
			break
		}
		if err != nil {
			return haveMatrix, err
		}

		switch ck.id {
		case cidVertList:
			nverts, err := readU16(rw)
			if err != nil {
				return haveMatrix, err
			}
			for i := 0; i < int(nverts); i++ {
				x, err := readF32(rw)
				if err != nil {
					return haveMatrix, err
				}
				y, err := readF32(rw)
				if err != nil {
					return haveMatrix, err
				}
				z, err := readF32(rw)
				if err != nil {
					return haveMatrix, err
				}
				mesh.AddVertex(x, z, -y)
			}

		case cidUVList:
			nverts, err := readU16(rw)
			if err != nil {
				return haveMatrix, err
			}
			for i := 0; i < int(nverts); i++ {
				u, err := readF32(rw)
				if err != nil {
					return haveMatrix, err
				}
				v, err := readF32(rw)
				if err != nil {
					return haveMatrix, err
				}
				mesh.AddTexcoord(u, v)
			}

		case cidFaceDesc:
			nfaces, err := readU16(rw)
			if err != nil {
				return haveMatrix, err
			}
			for i := 0; i < int(nfaces); i++ {
				a, err := readU16(rw)
				if err != nil {
					return haveMatrix, err
				}
				b, err := readU16(rw)
				if err != nil {
					return haveMatrix, err
				}
				c, err := readU16(rw)
				if err != nil {
					return haveMatrix, err
				}
				mesh.AddTriangle(uint32(a), uint32(b), uint32(c))
				if _, err := readU16(rw); err != nil { // edge flags, ignored
					return haveMatrix, err
				}
			}

		case cidFaceMtl:
			name, err := readCStr(rw, ck.end)
			if err == nil {
				if mtl := s.FindMaterial(name); mtl != nil {
					mesh.Material = mtl
				}
			}
			skipChunk(rw, ck)

		case cidMeshMatrix:
			for i := 0; i < 4; i++ {
				off := mrowOffs[i]
				var v [3]float32
				for j := 0; j < 3; j++ {
					f, err := readF32(rw)
					if err != nil {
						return haveMatrix, err
					}
					v[j] = f
				}
				node.Local[off] = v[0]
				node.Local[off+1] = v[2]
				node.Local[off+2] = v[1]
				node.Local[off+3] = 0
			}
			node.Local[15] = 1
			haveMatrix = true

		default:
			skipChunk(rw, ck)
		}
	}

	return haveMatrix, nil
}

func writeMaterial(rw meshio.IO, mtl *scene.Material) error {

	start, err := curPos(rw)
	if err != nil {
		return err
	}
	if err := writeChunkHeader(rw, cidMaterial, 0); err != nil {
		return err
	}

	if err := writeStrChunk(rw, cidMtlName, mtl.Name); err != nil {
		return err
	}
	color := mtl.Attr[scene.Color].Value
	if err := writeMtlColor(rw, cidMtlAmbient, color); err != nil {
		return err
	}
	if err := writeMtlColor(rw, cidMtlDiffuse, color); err != nil {
		return err
	}
	spec := mtl.Attr[scene.Specular].Value
	if err := writeMtlColor(rw, cidMtlSpecular, spec); err != nil {
		return err
	}

	sstr := float32(0)
	if spec.X != 0 || spec.Y != 0 || spec.Z != 0 {
		sstr = 1
	}
	em := mtl.Attr[scene.Emissive].Value
	selfIllum := (em.X + em.Y + em.Z) / 3.0

	if err := writeMtlPercent(rw, cidMtlShin, mtl.Attr[scene.Shininess].Value.X/128.0); err != nil {
		return err
	}
	if err := writeMtlPercent(rw, cidMtlShinStr, sstr); err != nil {
		return err
	}
	if selfIllum > 1e-5 {
		if err := writeMtlPercent(rw, cidMtlSelfIllu, selfIllum); err != nil {
			return err
		}
	}

	for _, mm := range mapmap {
		attr := mtl.Attr[mm.slot]
		if attr.Map != nil && attr.Map.File != "" {
			if err := writeMap(rw, mm.chunk, attr.Map); err != nil {
				return err
			}
		}
	}

	return patchLength(rw, start)
}

func writeMtlColor(rw meshio.IO, id uint16, v math32.Vector4) error {

	if err := writeChunkHeader(rw, id, chdrSize*2+3); err != nil {
		return err
	}
	if err := writeChunkHeader(rw, cidRGB, chdrSize+3); err != nil {
		return err
	}
	rgb := [3]byte{byte(v.X * 255.0), byte(v.Y * 255.0), byte(v.Z * 255.0)}
	_, err := rw.Write(rgb[:])
	return err
}

func writeMtlPercent(rw meshio.IO, id uint16, val float32) error {

	if err := writeChunkHeader(rw, id, chdrSize*2+4); err != nil {
		return err
	}
	if err := writeChunkHeader(rw, cidPercentFlt, chdrSize+4); err != nil {
		return err
	}
	return writeF32(rw, val*100.0)
}

func writeMap(rw meshio.IO, id uint16, tm *scene.TexMap) error {

	size := uint32(chdrSize*2+len(tm.File)+1) + (chdrSize+4)*5
	if err := writeChunkHeader(rw, id, size); err != nil {
		return err
	}
	if err := writeStrChunk(rw, cidMapFilename, tm.File); err != nil {
		return err
	}
	if err := writeFltChunk(rw, cidMapUOffs, tm.Offset.X); err != nil {
		return err
	}
	if err := writeFltChunk(rw, cidMapVOffs, tm.Offset.Y); err != nil {
		return err
	}
	if err := writeFltChunk(rw, cidMapUScale, tm.Scale.X); err != nil {
		return err
	}
	if err := writeFltChunk(rw, cidMapVScale, tm.Scale.Y); err != nil {
		return err
	}
	return writeFltChunk(rw, cidMapUVRot, tm.Rotation)
}

func writeStrChunk(rw meshio.IO, id uint16, s string) error {
	if err := writeChunkHeader(rw, id, uint32(chdrSize+len(s)+1)); err != nil {
		return err
	}
	return writeCStr(rw, s)
}

func writeFltChunk(rw meshio.IO, id uint16, v float32) error {
	if err := writeChunkHeader(rw, id, chdrSize+4); err != nil {
		return err
	}
	return writeF32(rw, v)
}

// maxMeshVerts3DS / maxMeshFaces3DS are the 3DS format's 16-bit index
// limit: meshes at or above this are skipped with a warning on save.
const maxMeshVerts3DS = 65536
const maxMeshFaces3DS = 65536

func writeMesh(s *scene.Scene, rw meshio.IO, node *scene.Node, mesh *scene.Mesh) error {

	if mesh.VertexCount() >= maxMeshVerts3DS || len(mesh.Faces) >= maxMeshFaces3DS {
		s.Logger().Warn("tds: skipping mesh %q, too large for the 3DS format", mesh.Name)
		return nil
	}

	start, err := curPos(rw)
	if err != nil {
		return err
	}

	mtlName := ""
	if mesh.Material != nil {
		mtlName = mesh.Material.Name
	}

	if err := writeChunkHeader(rw, cidObject, 0); err != nil {
		return err
	}
	if err := writeCStr(rw, node.Name); err != nil {
		return err
	}

	trimeshHdrStart, err := curPos(rw)
	if err != nil {
		return err
	}
	if err := writeChunkHeader(rw, cidTrimesh, 0); err != nil {
		return err
	}

	n := mesh.VertexCount()
	vertsz := uint32(chdrSize+2) + uint32(n*3*4)
	if err := writeChunkHeader(rw, cidVertList, vertsz); err != nil {
		return err
	}
	if err := writeU16(rw, uint16(n)); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		p := mesh.Position(i)
		p.ApplyMatrix4(&node.Global)
		if err := writeF32(rw, p.X); err != nil {
			return err
		}
		if err := writeF32(rw, -p.Z); err != nil {
			return err
		}
		if err := writeF32(rw, p.Y); err != nil {
			return err
		}
	}

	nfaces := len(mesh.Faces)
	mtlsz := uint32(chdrSize+len(mtlName)+3) + uint32(nfaces*2)
	facesz := uint32(chdrSize+2) + uint32(nfaces*8)
	if err := writeChunkHeader(rw, cidFaceDesc, facesz); err != nil {
		return err
	}
	if err := writeU16(rw, uint16(nfaces)); err != nil {
		return err
	}
	for _, f := range mesh.Faces {
		if err := writeU16(rw, uint16(f[0])); err != nil {
			return err
		}
		if err := writeU16(rw, uint16(f[1])); err != nil {
			return err
		}
		if err := writeU16(rw, uint16(f[2])); err != nil {
			return err
		}
		if err := writeU16(rw, 7); err != nil {
			return err
		}
	}

	if err := writeChunkHeader(rw, cidFaceMtl, mtlsz); err != nil {
		return err
	}
	if err := writeCStr(rw, mtlName); err != nil {
		return err
	}
	if err := writeU16(rw, uint16(nfaces)); err != nil {
		return err
	}
	for i := 0; i < nfaces; i++ {
		if err := writeU16(rw, uint16(i)); err != nil {
			return err
		}
	}

	if len(mesh.Texcoords) > 0 {
		uvsz := uint32(chdrSize+2) + uint32(n*2*4)
		if err := writeChunkHeader(rw, cidUVList, uvsz); err != nil {
			return err
		}
		if err := writeU16(rw, uint16(n)); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := writeF32(rw, mesh.Texcoords[i*2]); err != nil {
				return err
			}
			if err := writeF32(rw, mesh.Texcoords[i*2+1]); err != nil {
				return err
			}
		}
	}

	lcssz := uint32(chdrSize + 12*4)
	if err := writeChunkHeader(rw, cidMeshMatrix, lcssz); err != nil {
		return err
	}
	for i := 0; i < 4; i++ {
		off := mrowOffs[i]
		row := [3]float32{node.Global[off], node.Global[off+1], node.Global[off+2]}
		if err := writeF32(rw, row[0]); err != nil {
			return err
		}
		if err := writeF32(rw, row[2]); err != nil {
			return err
		}
		if err := writeF32(rw, row[1]); err != nil {
			return err
		}
	}

	if err := patchLength(rw, trimeshHdrStart); err != nil {
		return err
	}
	return patchLength(rw, start)
}
