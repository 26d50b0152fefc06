package obj

import (
	"fmt"
	"strings"

	"github.com/jtsiomb/meshfile/meshio"
	"github.com/jtsiomb/meshfile/scene"
)

// Save writes every mesh in s as a single OBJ file sharing a global
// vertex namespace across meshes. A sibling MTL file is written only when
// rw has a filesystem path (PathIO) and s has materials; rw itself is
// flushed but not closed.
func (codec) Save(s *scene.Scene, rw meshio.IO) error {

	b := meshio.NewBufIO(rw)

	mtlName := "scene.mtl"
	mtlPath := ""
	if pio, ok := rw.(meshio.PathIO); ok && pio.Path() != "" {
		base := strings.TrimSuffix(pio.Path(), extOf(pio.Path()))
		mtlPath = base + ".mtl"
		mtlName = strings.TrimSuffix(basename(pio.Path()), extOf(pio.Path())) + ".mtl"
	}

	if err := b.Puts("# exported by meshfile\n"); err != nil {
		return scene.NewError(scene.ErrIO, "format/obj: save", err)
	}
	if len(s.Materials()) > 0 {
		if err := b.Printf("mtllib %s\n", mtlName); err != nil {
			return scene.NewError(scene.ErrIO, "format/obj: save", err)
		}
	}

	base := 0
	for _, mesh := range s.Meshes() {
		if err := writeMesh(b, mesh, base); err != nil {
			return scene.NewError(scene.ErrIO, "format/obj: save", err)
		}
		base += mesh.VertexCount()
	}

	if err := b.Flush(); err != nil {
		return scene.NewError(scene.ErrIO, "format/obj: save", err)
	}

	if mtlPath != "" && len(s.Materials()) > 0 {
		if err := writeMTL(mtlPath, s); err != nil {
			s.Logger().Warn("obj: could not write %s: %v", mtlPath, err)
		}
	}
	return nil
}

func extOf(path string) string {
	for i := len(path) - 1; i >= 0 && path[i] != '/' && path[i] != '\\'; i-- {
		if path[i] == '.' {
			return path[i:]
		}
	}
	return ""
}

func basename(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			return path[i+1:]
		}
	}
	return path
}

func writeMTL(path string, s *scene.Scene) error {

	f, err := meshio.CreateFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	b := meshio.NewBufIO(f)
	for _, m := range s.Materials() {
		if err := writeMaterial(b, m); err != nil {
			return err
		}
	}
	return b.Close()
}

func writeMaterial(b *meshio.BufIO, m *scene.Material) error {

	if err := b.Printf("newmtl %s\n", m.Name); err != nil {
		return err
	}
	c := m.Get(scene.Color).Value
	if err := b.Printf("Kd %g %g %g\n", c.X, c.Y, c.Z); err != nil {
		return err
	}
	sp := m.Get(scene.Specular).Value
	if err := b.Printf("Ks %g %g %g\n", sp.X, sp.Y, sp.Z); err != nil {
		return err
	}
	em := m.Get(scene.Emissive).Value
	if err := b.Printf("Ke %g %g %g\n", em.X, em.Y, em.Z); err != nil {
		return err
	}
	if err := b.Printf("Ns %g\n", m.Get(scene.Shininess).Value.X); err != nil {
		return err
	}
	if err := b.Printf("d %g\n", m.Get(scene.Alpha).Value.X); err != nil {
		return err
	}
	if err := b.Printf("Ni %g\n", m.Get(scene.IOR).Value.X); err != nil {
		return err
	}
	if err := b.Printf("Pr %g\n", m.Get(scene.Roughness).Value.X); err != nil {
		return err
	}
	if err := b.Printf("Pm %g\n", m.Get(scene.Metallic).Value.X); err != nil {
		return err
	}
	if tm := m.Get(scene.Color).Map; tm != nil && tm.File != "" {
		if err := b.Printf("map_Kd %s\n", tm.File); err != nil {
			return err
		}
	}
	return nil
}

func writeMesh(b *meshio.BufIO, mesh *scene.Mesh, base int) error {

	name := mesh.Name
	if name == "" {
		name = "mesh"
	}
	if err := b.Printf("o %s\n", name); err != nil {
		return err
	}
	if mesh.Material != nil {
		if err := b.Printf("usemtl %s\n", mesh.Material.Name); err != nil {
			return err
		}
	}

	hasNormal := len(mesh.Normals) > 0
	hasUV := len(mesh.Texcoords) > 0

	n := mesh.VertexCount()
	for i := 0; i < n; i++ {
		p := mesh.Position(i)
		if err := b.Printf("v %g %g %g\n", p.X, p.Y, p.Z); err != nil {
			return err
		}
	}
	if hasUV {
		for i := 0; i < n; i++ {
			u := mesh.Texcoords[i*2]
			v := mesh.Texcoords[i*2+1]
			if err := b.Printf("vt %g %g\n", u, v); err != nil {
				return err
			}
		}
	}
	if hasNormal {
		for i := 0; i < n; i++ {
			nx := mesh.Normals[i*3]
			ny := mesh.Normals[i*3+1]
			nz := mesh.Normals[i*3+2]
			if err := b.Printf("vn %g %g %g\n", nx, ny, nz); err != nil {
				return err
			}
		}
	}

	for _, f := range mesh.Faces {
		tok := func(idx uint32) string {
			i := int(idx) + base + 1
			switch {
			case hasUV && hasNormal:
				return fmt.Sprintf("%d/%d/%d", i, i, i)
			case hasUV:
				return fmt.Sprintf("%d/%d", i, i)
			case hasNormal:
				return fmt.Sprintf("%d//%d", i, i)
			default:
				return fmt.Sprintf("%d", i)
			}
		}
		if err := b.Printf("f %s %s %s\n", tok(f[0]), tok(f[1]), tok(f[2])); err != nil {
			return err
		}
	}
	return nil
}
