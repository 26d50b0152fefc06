package gltf

import (
	"github.com/jtsiomb/meshfile/scene"
)

// loadMesh converts every primitive of glTF mesh mi into one scene.Mesh
// each (this library's Mesh has a single material, unlike glTF's
// per-primitive material, so multi-primitive meshes become sibling
// meshes on the same node rather than one merged mesh). Primitives
// whose mode isn't TRIANGLES are skipped with a warning.
func (d *document) loadMesh(mi int) ([]*scene.Mesh, error) {

	gm := d.Meshes[mi]
	var out []*scene.Mesh

	for pi, p := range gm.Primitives {
		mode := modeTriangles
		if p.Mode != nil {
			mode = *p.Mode
		}
		if mode != modeTriangles {
			if d.sc != nil {
				d.sc.Logger().Warn("gltf: mesh %q primitive %d has non-triangle mode %d, skipping", gm.Name, pi, mode)
			}
			continue
		}

		mesh := scene.NewMesh(gm.Name)

		posIdx, ok := p.Attributes["POSITION"]
		if !ok {
			continue
		}
		positions, err := d.accessorFloats(posIdx)
		if err != nil {
			return nil, err
		}
		nverts := len(positions) / 3
		for i := 0; i < nverts; i++ {
			mesh.AddVertex(positions[i*3], positions[i*3+1], positions[i*3+2])
		}

		if ni, ok := p.Attributes["NORMAL"]; ok {
			normals, err := d.accessorFloats(ni)
			if err != nil {
				return nil, err
			}
			for i := 0; i < len(normals)/3; i++ {
				mesh.AddNormal(normals[i*3], normals[i*3+1], normals[i*3+2])
			}
		}

		if ti, ok := p.Attributes["TEXCOORD_0"]; ok {
			uvs, err := d.accessorFloats(ti)
			if err != nil {
				return nil, err
			}
			for i := 0; i < len(uvs)/2; i++ {
				mesh.AddTexcoord(uvs[i*2], uvs[i*2+1])
			}
		}

		if p.Indices != nil {
			indices, err := d.accessorIndices(*p.Indices)
			if err != nil {
				return nil, err
			}
			for i := 0; i+2 < len(indices); i += 3 {
				mesh.AddTriangle(indices[i], indices[i+1], indices[i+2])
			}
		} else {
			for i := uint32(0); int(i)+2 < nverts; i += 3 {
				mesh.AddTriangle(i, i+1, i+2)
			}
		}

		if p.Material != nil && *p.Material < d.sc.MaterialCount() {
			mesh.Material = d.sc.Material(*p.Material)
		}

		out = append(out, mesh)
	}

	return out, nil
}
