// Package postproc runs the fix-up pipeline Load applies to a scene after
// a codec has decoded it: transform propagation, bounds recomputation and,
// gated by scene.LoadFlags, normal and tangent synthesis and transform
// baking. It mirrors the repair pass g3n-engine's loaders leave to the
// caller (CalculateNormals in geometry/tube.go, UpdateMatrixWorld in
// core/node.go) but folds it into one pipeline invoked automatically by
// Load.
package postproc

import (
	"github.com/jtsiomb/meshfile/math32"
	"github.com/jtsiomb/meshfile/scene"
)

// Process runs the fix-up pipeline on s according to flags. Transform
// propagation and bounds recomputation always run; normal synthesis runs
// on any mesh with no normals unless flags has NoProc set; tangent
// synthesis additionally runs when flags has GenTangents set; transform
// baking runs when flags has ApplyXform set.
func Process(s *scene.Scene, flags scene.LoadFlags) {

	for _, top := range s.TopLevelNodes() {
		top.UpdateGlobal()
	}

	if flags&scene.NoProc == 0 {
		for _, mesh := range s.Meshes() {
			if len(mesh.Normals) == 0 && mesh.VertexCount() > 0 {
				GenerateNormals(mesh)
			}
		}
	}

	if flags&scene.GenTangents != 0 {
		for _, mesh := range s.Meshes() {
			if len(mesh.Normals) > 0 && len(mesh.Texcoords) > 0 {
				GenerateTangents(mesh)
			}
		}
	}

	if flags&scene.ApplyXform != 0 {
		for _, node := range s.Nodes() {
			ApplyTransform(node)
		}
	}

	for _, mesh := range s.Meshes() {
		mesh.Bounds.MakeEmpty()
		for i := 0; i < mesh.VertexCount(); i++ {
			p := mesh.Position(i)
			mesh.Bounds.ExpandByPoint(&p)
		}
	}

	s.RecomputeBounds()
}

// GenerateNormals overwrites mesh's Normals with per-vertex averaged face
// normals, accumulating each triangle's unnormalized cross product into
// its three vertices and normalizing the result.
func GenerateNormals(mesh *scene.Mesh) {

	n := mesh.VertexCount()
	sums := make([]math32.Vector3, n)

	for _, f := range mesh.Faces {
		p0 := mesh.Position(int(f[0]))
		p1 := mesh.Position(int(f[1]))
		p2 := mesh.Position(int(f[2]))

		e1 := p1
		e1.Sub(&p0)
		e2 := p2
		e2.Sub(&p0)

		var fn math32.Vector3
		fn.CrossVectors(&e1, &e2)

		sums[f[0]].Add(&fn)
		sums[f[1]].Add(&fn)
		sums[f[2]].Add(&fn)
	}

	mesh.Normals = mesh.Normals[:0]
	for i := 0; i < n; i++ {
		v := sums[i]
		if v.LengthSq() == 0 {
			v.Set(0, 0, 1)
		} else {
			v.Normalize()
		}
		mesh.AddNormal(v.X, v.Y, v.Z)
	}
}

// GenerateTangents overwrites mesh's Tangents with per-vertex tangents
// derived from each triangle's position/texcoord deltas (the standard
// UV-gradient construction), accumulated and normalized the same way as
// GenerateNormals, then orthogonalized against the vertex normal with
// Gram-Schmidt.
func GenerateTangents(mesh *scene.Mesh) {

	n := mesh.VertexCount()
	sums := make([]math32.Vector3, n)

	uvAt := func(i int) math32.Vector2 {
		return math32.Vector2{X: mesh.Texcoords[i*2], Y: mesh.Texcoords[i*2+1]}
	}

	for _, f := range mesh.Faces {
		p0 := mesh.Position(int(f[0]))
		p1 := mesh.Position(int(f[1]))
		p2 := mesh.Position(int(f[2]))
		uv0 := uvAt(int(f[0]))
		uv1 := uvAt(int(f[1]))
		uv2 := uvAt(int(f[2]))

		e1 := p1
		e1.Sub(&p0)
		e2 := p2
		e2.Sub(&p0)

		var duv1, duv2 math32.Vector2
		duv1.SubVectors(&uv1, &uv0)
		duv2.SubVectors(&uv2, &uv0)

		det := duv1.Cross(&duv2)
		if det == 0 {
			continue
		}
		r := 1.0 / det

		tan := math32.Vector3{
			X: (e1.X*duv2.Y - e2.X*duv1.Y) * r,
			Y: (e1.Y*duv2.Y - e2.Y*duv1.Y) * r,
			Z: (e1.Z*duv2.Y - e2.Z*duv1.Y) * r,
		}

		sums[f[0]].Add(&tan)
		sums[f[1]].Add(&tan)
		sums[f[2]].Add(&tan)
	}

	mesh.Tangents = mesh.Tangents[:0]
	for i := 0; i < n; i++ {
		t := sums[i]
		var nrm math32.Vector3
		mesh.Normals.GetVector3(i*3, &nrm)

		d := nrm.Dot(&t)
		proj := nrm
		proj.MultiplyScalar(d)
		t.Sub(&proj)

		if t.LengthSq() == 0 {
			t = arbitraryPerp(&nrm)
		} else {
			t.Normalize()
		}
		mesh.AddTangent(t.X, t.Y, t.Z)
	}
}

// arbitraryPerp returns a unit vector perpendicular to n, for vertices
// whose accumulated tangent degenerates to zero (an isolated or
// UV-seam-only triangle).
func arbitraryPerp(n *math32.Vector3) math32.Vector3 {

	up := math32.Vector3{X: 0, Y: 1, Z: 0}
	if n.Y > 0.99 || n.Y < -0.99 {
		up = math32.Vector3{X: 1, Y: 0, Z: 0}
	}
	var t math32.Vector3
	t.CrossVectors(&up, n)
	t.Normalize()
	return t
}

// ApplyTransform bakes node's Global matrix into the positions, normals
// and tangents of every mesh it owns, then resets the node's Local and
// Global matrices to identity. Positions take the matrix itself;
// normals and tangents take its inverse-transpose, so non-uniform scale
// and shear don't tilt them off-perpendicular, and are renormalized
// after.
func ApplyTransform(node *scene.Node) {

	m := node.Global

	dirmat := m
	if dirmat.GetInverse(&m) == nil {
		dirmat.Transpose()
	} else {
		dirmat = m
	}

	for _, mesh := range node.Meshes() {
		for i := 0; i < mesh.VertexCount(); i++ {
			p := mesh.Position(i)
			p.ApplyMatrix4(&m)
			mesh.Positions[i*3] = p.X
			mesh.Positions[i*3+1] = p.Y
			mesh.Positions[i*3+2] = p.Z
		}
		for i := 0; i < len(mesh.Normals)/3; i++ {
			var v math32.Vector3
			mesh.Normals.GetVector3(i*3, &v)
			v.ApplyMatrix4Dir(&dirmat)
			v.Normalize()
			mesh.Normals[i*3] = v.X
			mesh.Normals[i*3+1] = v.Y
			mesh.Normals[i*3+2] = v.Z
		}
		for i := 0; i < len(mesh.Tangents)/3; i++ {
			var v math32.Vector3
			mesh.Tangents.GetVector3(i*3, &v)
			v.ApplyMatrix4Dir(&dirmat)
			v.Normalize()
			mesh.Tangents[i*3] = v.X
			mesh.Tangents[i*3+1] = v.Y
			mesh.Tangents[i*3+2] = v.Z
		}
	}

	node.Local.Identity()
	node.Global.Identity()
}
