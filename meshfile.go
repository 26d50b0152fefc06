// Package meshfile loads and saves 3D scenes (meshes, materials and a
// node hierarchy) across a fixed set of mesh file formats: OBJ/MTL, 3DS,
// glTF/GLB, JTF and STL. It is a thin facade over format.Load/format.Save
// and postproc.Process so callers working with files or filenames never
// need to import those packages directly.
package meshfile

import (
	"io"
	"path/filepath"

	"github.com/jtsiomb/meshfile/format"
	_ "github.com/jtsiomb/meshfile/format/gltf"
	_ "github.com/jtsiomb/meshfile/format/jtf"
	_ "github.com/jtsiomb/meshfile/format/obj"
	_ "github.com/jtsiomb/meshfile/format/stl"
	_ "github.com/jtsiomb/meshfile/format/tds"
	"github.com/jtsiomb/meshfile/meshio"
	"github.com/jtsiomb/meshfile/postproc"
	"github.com/jtsiomb/meshfile/scene"
)

// Scene is the in-memory representation every loader fills in and every
// saver reads from.
type Scene = scene.Scene

// Re-exported so callers never need to import scene directly.
const (
	NoProc      = scene.NoProc
	GenTangents = scene.GenTangents
	ApplyXform  = scene.ApplyXform

	Auto = scene.Auto
	OBJ  = scene.OBJ
	JTF  = scene.JTF
	GLTF = scene.GLTF
	TDS  = scene.TDS
	STL  = scene.STL
)

// NewScene returns an empty scene, ready for Load or manual construction.
func NewScene() *Scene { return scene.New() }

// Load opens path, detects its format by magic bytes (falling back to a
// full trial-and-rewind over every registered codec), decodes it into a
// new Scene and runs the post-processing pipeline per flags.
func Load(path string, flags scene.LoadFlags) (*Scene, error) {

	f, err := meshio.OpenFile(path)
	if err != nil {
		return nil, scene.NewError(scene.ErrIO, "meshfile.Load", err)
	}
	defer f.Close()

	s := scene.New()
	s.Dir = filepath.Dir(path)
	s.Filename = path
	s.Flags = flags

	if err := format.Load(s, f); err != nil {
		return nil, err
	}
	postproc.Process(s, flags)
	return s, nil
}

// LoadReader decodes r into a new Scene the same way Load does, without
// a backing file: asset resolution (companion MTL/bin files, textures)
// only works if dir names the directory those assets live in. Format
// dispatch seeks and rewinds between codec attempts, so r must implement
// io.Seeker (e.g. bytes.NewReader); with a non-seekable r the load fails.
func LoadReader(r io.Reader, dir string, flags scene.LoadFlags) (*Scene, error) {

	rw := meshio.NewReader(r)

	s := scene.New()
	s.Dir = dir
	s.Flags = flags

	if err := format.Load(s, rw); err != nil {
		return nil, err
	}
	postproc.Process(s, flags)
	return s, nil
}

// Save writes s to path in the format selected by its suffix (OBJ, 3DS,
// glTF/GLB, JTF or STL; unrecognized suffixes fall back to OBJ).
func Save(s *Scene, path string) error {

	f, err := meshio.CreateFile(path)
	if err != nil {
		return scene.NewError(scene.ErrIO, "meshfile.Save", err)
	}
	defer f.Close()

	return format.Save(s, f, scene.Auto, path)
}

// SaveWriter writes s to w in the given explicit format. There is no path
// to infer a suffix from, so Auto writes OBJ.
func SaveWriter(s *Scene, w io.Writer, fmt_ scene.SaveFormat) error {

	rw := meshio.NewWriter(w)
	return format.Save(s, rw, fmt_, "")
}
