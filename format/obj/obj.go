// Package obj implements the Wavefront OBJ + MTL codec.
package obj

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/jtsiomb/meshfile/format"
	"github.com/jtsiomb/meshfile/meshio"
	"github.com/jtsiomb/meshfile/scene"
)

func init() {
	format.Register(codec{})
}

type codec struct{}

func (codec) Name() string        { return "obj" }
func (codec) Suffixes() []string  { return []string{"obj"} }

// Probe always returns false: OBJ has no magic bytes, so it is only ever
// reached as the trial order's catch-all.
func (codec) Probe([]byte) bool { return false }

// vkey identifies one unique (position, texcoord, normal) combination
// referenced by a face; t and n are -1 when the vspec omitted them.
type vkey struct{ v, t, n int }

type outVertex struct {
	v, t, n int
}

type meshAccum struct {
	name     string
	material string
	dedup    map[vkey]uint32
	verts    []outVertex
	faces    [][3]uint32
}

func newMeshAccum(name string) *meshAccum {
	return &meshAccum{name: name, dedup: make(map[vkey]uint32)}
}

// Load parses an OBJ stream (and any mtllib it references) into s.
func (codec) Load(s *scene.Scene, rw meshio.IO) error {

	sc := bufio.NewScanner(asReader(rw))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var positions, normals, uvs [][3]float32 // uvs uses only X,Y

	var meshes []*meshAccum
	cur := newMeshAccum("default")
	haveCurrent := false

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		directive := fields[0]
		args := fields[1:]

		switch directive {
		case "v":
			p, err := parseFloat3(args)
			if err != nil {
				return fmtErr(lineNo, err)
			}
			positions = append(positions, p)

		case "vn":
			n, err := parseFloat3(args)
			if err != nil {
				return fmtErr(lineNo, err)
			}
			normals = append(normals, n)

		case "vt":
			uv, err := parseFloat2(args)
			if err != nil {
				return fmtErr(lineNo, err)
			}
			uv[1] = 1 - uv[1]
			uvs = append(uvs, [3]float32{uv[0], uv[1], 0})

		case "f":
			if len(args) < 3 {
				return fmtErr(lineNo, fmt.Errorf("face needs at least 3 vertices"))
			}
			if err := addFace(cur, args, len(positions), len(uvs), len(normals)); err != nil {
				return fmtErr(lineNo, err)
			}
			haveCurrent = true

		case "o", "g":
			if len(args) == 0 {
				return fmtErr(lineNo, fmt.Errorf("%s directive needs a name", directive))
			}
			if haveCurrent && len(cur.verts) > 0 {
				meshes = append(meshes, cur)
			}
			cur = newMeshAccum(args[0])
			haveCurrent = false

		case "usemtl":
			if len(args) == 0 {
				return fmtErr(lineNo, fmt.Errorf("usemtl needs a name"))
			}
			cur.material = args[0]

		case "mtllib":
			if len(args) == 0 {
				return fmtErr(lineNo, fmt.Errorf("mtllib needs a filename"))
			}
			if err := loadMtllib(s, args[0]); err != nil {
				s.Logger().Warn("obj: mtllib %q: %v", args[0], err)
			}

		case "s":
			// Smoothing group: accepted and otherwise ignored at this
			// mesh granularity.

		default:
			s.Logger().Warn("obj: line %d: unrecognized directive %q", lineNo, directive)
		}
	}
	if err := sc.Err(); err != nil {
		return scene.NewError(scene.ErrIO, "format/obj: load", err)
	}
	if len(cur.verts) > 0 {
		meshes = append(meshes, cur)
	}
	if len(meshes) == 0 {
		return scene.NewError(scene.ErrFormat, "format/obj: load", fmt.Errorf("no faces found"))
	}

	for _, ma := range meshes {
		mesh := buildMesh(ma, positions, normals, uvs)
		if ma.material != "" {
			mesh.Material = s.FindMaterial(ma.material)
		}
		s.AddMesh(mesh)
		node := scene.NewNode(ma.name)
		node.AddMesh(mesh)
		s.AddNode(node)
	}
	return nil
}

func fmtErr(line int, err error) error {
	return scene.NewError(scene.ErrFormat, "format/obj: load",
		fmt.Errorf("line %d: %w", line, err))
}

func parseFloat3(args []string) ([3]float32, error) {
	var v [3]float32
	if len(args) < 3 {
		return v, fmt.Errorf("expected 3 components, got %d", len(args))
	}
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return v, err
		}
		v[i] = float32(f)
	}
	return v, nil
}

func parseFloat2(args []string) ([2]float32, error) {
	var v [2]float32
	if len(args) < 2 {
		return v, fmt.Errorf("expected 2 components, got %d", len(args))
	}
	for i := 0; i < 2; i++ {
		f, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return v, err
		}
		v[i] = float32(f)
	}
	return v, nil
}

// resolveIndex turns a 1-based (or negative, counting from the end) OBJ
// index into a 0-based index, or -1 if s is empty (vspec component absent).
func resolveIndex(s string, count int) (int, error) {
	if s == "" {
		return -1, nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return -1, err
	}
	if i < 0 {
		return count + i, nil
	}
	return i - 1, nil
}

func parseVspec(tok string, posCount, uvCount, normCount int) (outVertex, error) {
	parts := strings.Split(tok, "/")
	var ov outVertex
	var err error
	ov.v, err = resolveIndex(parts[0], posCount)
	if err != nil {
		return ov, err
	}
	ov.t, ov.n = -1, -1
	if len(parts) >= 2 {
		ov.t, err = resolveIndex(parts[1], uvCount)
		if err != nil {
			return ov, err
		}
	}
	if len(parts) >= 3 {
		ov.n, err = resolveIndex(parts[2], normCount)
		if err != nil {
			return ov, err
		}
	}
	return ov, nil
}

func addFace(m *meshAccum, args []string, posCount, uvCount, normCount int) error {

	idx := make([]uint32, len(args))
	for i, tok := range args {
		ov, err := parseVspec(tok, posCount, uvCount, normCount)
		if err != nil {
			return err
		}
		key := vkey(ov)
		out, ok := m.dedup[key]
		if !ok {
			out = uint32(len(m.verts))
			m.verts = append(m.verts, ov)
			m.dedup[key] = out
		}
		idx[i] = out
	}
	m.faces = append(m.faces, [3]uint32{idx[0], idx[1], idx[2]})
	for i := 3; i < len(idx); i++ {
		m.faces = append(m.faces, [3]uint32{idx[0], idx[i-1], idx[i]})
	}
	return nil
}

func buildMesh(m *meshAccum, positions, normals, uvs [][3]float32) *scene.Mesh {

	mesh := scene.NewMesh(m.name)

	hasNormal, hasUV := false, false
	for _, v := range m.verts {
		if v.n >= 0 {
			hasNormal = true
		}
		if v.t >= 0 {
			hasUV = true
		}
	}

	for _, v := range m.verts {
		p := positions[v.v]
		mesh.AddVertex(p[0], p[1], p[2])
		if hasNormal {
			if v.n >= 0 {
				n := normals[v.n]
				mesh.AddNormal(n[0], n[1], n[2])
			} else {
				mesh.AddNormal(0, 1, 0)
			}
		}
		if hasUV {
			if v.t >= 0 {
				uv := uvs[v.t]
				mesh.AddTexcoord(uv[0], uv[1])
			} else {
				mesh.AddTexcoord(0, 0)
			}
		}
	}
	for _, f := range m.faces {
		mesh.AddTriangle(f[0], f[1], f[2])
	}
	return mesh
}

func loadMtllib(s *scene.Scene, name string) error {

	resolved := s.FindAsset(name)
	f, err := meshio.OpenFile(resolved)
	if err != nil {
		return err
	}
	defer f.Close()
	return parseMTL(s, f)
}

type ioReaderAdapter struct{ io meshio.IO }

func (a ioReaderAdapter) Read(p []byte) (int, error) { return a.io.Read(p) }

func asReader(io meshio.IO) ioReaderAdapter { return ioReaderAdapter{io: io} }
