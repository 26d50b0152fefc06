// Package tds implements the binary 3D Studio (.3ds) codec: a tree of
// length-prefixed chunks rooted at a MAIN chunk, holding an EDITOR chunk
// with MATERIAL and OBJECT children.
package tds

import (
	"errors"
	"io"

	"github.com/jtsiomb/meshfile/format"
	"github.com/jtsiomb/meshfile/meshio"
	"github.com/jtsiomb/meshfile/scene"
)

var errNotA3DS = errors.New("not a 3DS stream (bad MAIN chunk magic)")

func init() {
	format.Register(codec{})
}

type codec struct{}

func (codec) Name() string       { return "3ds" }
func (codec) Suffixes() []string { return []string{"3ds"} }

// Probe matches the MAIN chunk's 2-byte little-endian magic (0x4D4D).
func (codec) Probe(peek []byte) bool {

	return len(peek) >= 2 && peek[0] == 0x4d && peek[1] == 0x4d
}

// Load reads a 3DS stream: a MAIN chunk wrapping an EDITOR chunk, whose
// MATERIAL and OBJECT children populate the scene's materials, meshes
// and nodes.
func (codec) Load(s *scene.Scene, rw meshio.IO) error {

	root, err := readChunk(rw, nil)
	if err != nil || root.id != cidMain {
		return scene.NewError(scene.ErrFormat, "format/tds: load", errNotA3DS)
	}

	for {
		ck, err := readChunk(rw, root)
		if err == io.EOF {
			break
		}
		if err != nil {
			return scene.NewError(scene.ErrIO, "format/tds: load", err)
		}

		if ck.id != cid3DEditor {
			skipChunk(rw, ck)
			continue
		}

		for {
			c2, err := readChunk(rw, ck)
			if err == io.EOF {
				break
			}
			if err != nil {
				return scene.NewError(scene.ErrIO, "format/tds: load", err)
			}

			switch c2.id {
			case cidMaterial:
				if err := readMaterial(s, rw, c2); err != nil {
					return scene.NewError(scene.ErrIO, "format/tds: load", err)
				}
				skipChunk(rw, c2)

			case cidObject:
				if err := readObject(s, rw, c2); err != nil {
					return scene.NewError(scene.ErrIO, "format/tds: load", err)
				}
				skipChunk(rw, c2)

			default:
				skipChunk(rw, c2)
			}
		}
	}

	return nil
}

// Save writes a MAIN chunk wrapping an EDITOR chunk holding one MATERIAL
// chunk per scene material and one OBJECT chunk per node-owned mesh.
func (codec) Save(s *scene.Scene, rw meshio.IO) error {

	mainStart, err := curPos(rw)
	if err != nil {
		return scene.NewError(scene.ErrIO, "format/tds: save", err)
	}
	if err := writeChunkHeader(rw, cidMain, 0); err != nil {
		return scene.NewError(scene.ErrIO, "format/tds: save", err)
	}
	if err := writeVersionChunk(rw); err != nil {
		return scene.NewError(scene.ErrIO, "format/tds: save", err)
	}

	editorStart, err := curPos(rw)
	if err != nil {
		return scene.NewError(scene.ErrIO, "format/tds: save", err)
	}
	if err := writeChunkHeader(rw, cid3DEditor, 0); err != nil {
		return scene.NewError(scene.ErrIO, "format/tds: save", err)
	}

	for _, mtl := range s.Materials() {
		if err := writeMaterial(rw, mtl); err != nil {
			return scene.NewError(scene.ErrIO, "format/tds: save", err)
		}
	}

	for _, node := range s.Nodes() {
		for _, mesh := range node.Meshes() {
			if err := writeMesh(s, rw, node, mesh); err != nil {
				return scene.NewError(scene.ErrIO, "format/tds: save", err)
			}
		}
	}

	if err := patchLength(rw, editorStart); err != nil {
		return scene.NewError(scene.ErrIO, "format/tds: save", err)
	}
	if err := patchLength(rw, mainStart); err != nil {
		return scene.NewError(scene.ErrIO, "format/tds: save", err)
	}
	return nil
}

func writeVersionChunk(rw meshio.IO) error {

	if err := writeChunkHeader(rw, cidVersion, chdrSize+4); err != nil {
		return err
	}
	return writeU32(rw, 3)
}
