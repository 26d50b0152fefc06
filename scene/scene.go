package scene

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jtsiomb/meshfile/internal/mlog"
	"github.com/jtsiomb/meshfile/math32"
)

// Scene owns every Mesh, Material and Node added to it, tracks which
// nodes are top-level (no parent), caches a combined bounding box, and
// resolves texture filenames against the directory the scene was loaded
// from.
type Scene struct {
	Dir      string // directory the scene was loaded from, if any
	Filename string // source filename, if any
	Flags    LoadFlags

	meshes    []*Mesh
	materials []*Material
	nodes     []*Node
	topLevel  []*Node

	bounds      math32.Box3
	boundsValid bool

	assetCache map[string]string

	log *mlog.Logger
}

// New returns an empty Scene with a default logger writing warnings to
// stderr.
func New() *Scene {

	s := &Scene{
		assetCache: make(map[string]string),
		log:        mlog.Default(),
	}
	s.bounds.MakeEmpty()
	return s
}

// Clear truncates the scene back to empty without affecting its
// directory/filename/flags or logger.
func (s *Scene) Clear() {

	s.meshes = nil
	s.materials = nil
	s.nodes = nil
	s.topLevel = nil
	s.bounds.MakeEmpty()
	s.boundsValid = false
	s.assetCache = make(map[string]string)
}

// Logger returns the scene's diagnostic logger.
func (s *Scene) Logger() *mlog.Logger {

	return s.log
}

// SetLogger replaces the scene's diagnostic logger.
func (s *Scene) SetLogger(l *mlog.Logger) {

	s.log = l
}

// Warnings returns every warning- (or higher-) level message logged while
// working with this scene.
func (s *Scene) Warnings() []string {

	return s.log.Warnings()
}

// AddMesh appends mesh to the scene's owned meshes.
func (s *Scene) AddMesh(mesh *Mesh) {

	s.meshes = append(s.meshes, mesh)
	s.boundsValid = false
}

// AddMaterial appends mat to the scene's owned materials.
func (s *Scene) AddMaterial(mat *Material) {

	s.materials = append(s.materials, mat)
}

// AddNode appends node to the scene's owned nodes, and additionally to
// the top-level list iff node has no parent.
func (s *Scene) AddNode(node *Node) {

	s.nodes = append(s.nodes, node)
	if node.Parent() == nil {
		s.topLevel = append(s.topLevel, node)
	}
	s.boundsValid = false
}

// MeshCount, MaterialCount, NodeCount, TopLevelCount return the number of
// owned entities of each kind.
func (s *Scene) MeshCount() int     { return len(s.meshes) }
func (s *Scene) MaterialCount() int { return len(s.materials) }
func (s *Scene) NodeCount() int     { return len(s.nodes) }
func (s *Scene) TopLevelCount() int { return len(s.topLevel) }

// Mesh, Material, Node, TopLevel return the entity at index i.
func (s *Scene) Mesh(i int) *Mesh         { return s.meshes[i] }
func (s *Scene) Material(i int) *Material { return s.materials[i] }
func (s *Scene) Node(i int) *Node         { return s.nodes[i] }
func (s *Scene) TopLevel(i int) *Node     { return s.topLevel[i] }

// Meshes, Materials, Nodes, TopLevelNodes return the full backing slices.
// Callers must not mutate them.
func (s *Scene) Meshes() []*Mesh          { return s.meshes }
func (s *Scene) Materials() []*Material   { return s.materials }
func (s *Scene) Nodes() []*Node           { return s.nodes }
func (s *Scene) TopLevelNodes() []*Node   { return s.topLevel }

// FindMesh, FindMaterial, FindNode return the first entity with the given
// name, or nil if none matches.
func (s *Scene) FindMesh(name string) *Mesh {

	for _, m := range s.meshes {
		if m.Name == name {
			return m
		}
	}
	return nil
}

func (s *Scene) FindMaterial(name string) *Material {

	for _, m := range s.materials {
		if m.Name == name {
			return m
		}
	}
	return nil
}

func (s *Scene) FindNode(name string) *Node {

	for _, n := range s.nodes {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// Bounds returns the scene's cached bounding box. ok is false if the
// scene is empty (no meshes).
func (s *Scene) Bounds() (box math32.Box3, ok bool) {

	if len(s.meshes) == 0 {
		return math32.Box3{}, false
	}
	if !s.boundsValid {
		s.RecomputeBounds()
	}
	return s.bounds, true
}

// RecomputeBounds rebuilds the scene's bounding box as the union of every
// node's meshes' positions transformed by that node's global matrix.
// Nodes not reachable from a top-level node (should not occur under
// normal construction) are not visited.
func (s *Scene) RecomputeBounds() {

	s.bounds.MakeEmpty()
	var visit func(n *Node)
	visit = func(n *Node) {
		for _, mesh := range n.Meshes() {
			for i := 0; i < mesh.VertexCount(); i++ {
				p := mesh.Position(i)
				p.ApplyMatrix4(&n.Global)
				s.bounds.ExpandByPoint(&p)
			}
		}
		for _, c := range n.Children() {
			visit(c)
		}
	}
	for _, top := range s.topLevel {
		visit(top)
	}
	s.boundsValid = true
}

// FindAsset resolves a filename referenced by a loaded scene (a texture,
// an MTL library, a glTF external buffer) against the scene's source
// directory: it returns the first of "<Dir>/name" and "name" that exists
// on disk, caching the result keyed by the requested name. If neither
// exists, name is returned unchanged (the caller decides whether that is
// fatal).
func (s *Scene) FindAsset(name string) string {

	if cached, ok := s.assetCache[name]; ok {
		return cached
	}

	resolved := name
	if s.Dir != "" {
		candidate := filepath.Join(s.Dir, name)
		if fileExists(candidate) {
			resolved = candidate
		}
	}
	s.assetCache[name] = resolved
	return resolved
}

func fileExists(path string) bool {

	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// String implements fmt.Stringer for debugging.
func (s *Scene) String() string {

	return fmt.Sprintf("Scene{meshes=%d materials=%d nodes=%d top=%d}",
		len(s.meshes), len(s.materials), len(s.nodes), len(s.topLevel))
}
