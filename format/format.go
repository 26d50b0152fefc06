// Package format dispatches scene loading and saving across the codecs
// registered in format/obj, format/tds, format/gltf, format/jtf and
// format/stl. Codecs register themselves from an init() function (the
// same pattern image and database/sql use for their driver registries)
// so this package never imports them directly and there is no import
// cycle between the dispatcher and its codecs.
package format

import (
	"fmt"
	"strings"

	"github.com/jtsiomb/meshfile/meshio"
	"github.com/jtsiomb/meshfile/scene"
)

// Codec is a format plugin: a name, a set of filename suffixes it claims
// on save, an optional fast magic-byte probe, and Load/Save entry points.
type Codec interface {
	// Name is a short lowercase identifier ("obj", "3ds", "gltf", "jtf", "stl").
	Name() string

	// Suffixes lists the filename extensions (without the leading dot,
	// lowercase) this codec claims when saving by suffix match.
	Suffixes() []string

	// Probe reports whether peek - the first few bytes of the stream -
	// look like this codec's format. A codec with no recognizable magic
	// (OBJ) should always return false so it is only tried as the
	// catch-all at the end of the trial order.
	Probe(peek []byte) bool

	// Load reads a scene from rw, which is positioned at the start of
	// the stream. On failure the caller rewinds rw and tries the next
	// codec; Load must not leave partial scene state registered in s
	// beyond what it has already completed (codecs build up the scene
	// incrementally and simply return the error; the dispatcher does
	// not attempt to undo partial additions, matching the original
	// library's behavior of trying the next format rather than
	// reverting the first).
	Load(s *scene.Scene, rw meshio.IO) error

	// Save writes s to rw in this codec's format.
	Save(s *scene.Scene, rw meshio.IO) error
}

// trialOrder is the fixed sequence codecs are tried in on load: formats
// with strong magic bytes first, OBJ (no magic) last.
var trialOrder = []string{"3ds", "jtf", "gltf", "stl", "obj"}

var registry = map[string]Codec{}

// Register adds c to the dispatcher's registry, keyed by c.Name(). Called
// from each codec package's init().
func Register(c Codec) {

	registry[c.Name()] = c
}

// suffixIndex maps a lowercase suffix (no dot) to the codec claiming it.
func suffixIndex() map[string]Codec {

	idx := make(map[string]Codec)
	for _, c := range registry {
		for _, suf := range c.Suffixes() {
			idx[strings.ToLower(suf)] = c
		}
	}
	return idx
}

// peekLen is how many leading bytes are buffered for the fast-probe path
// before falling back to the full trial-and-rewind loop.
const peekLen = 16

// Load tries each registered codec in trialOrder, rewinding rw between
// attempts, and returns the first one that succeeds. If a peek of the
// first peekLen bytes unambiguously matches exactly one codec's Probe,
// that codec is tried first (the common case resolves without any
// rewind); OBJ, which has no magic, always falls through to the full
// trial order.
func Load(s *scene.Scene, rw meshio.IO) error {

	start, err := rw.Seek(0, meshio.SeekCur)
	if err != nil {
		return scene.NewError(scene.ErrIO, "format.Load", err)
	}

	peek := make([]byte, peekLen)
	n, _ := io_ReadFull(rw, peek)
	peek = peek[:n]
	if _, err := rw.Seek(start, meshio.SeekSet); err != nil {
		return scene.NewError(scene.ErrIO, "format.Load", err)
	}

	var order []string
	first := probeOrder(peek)
	if first != "" {
		order = append(order, first)
	}
	for _, name := range trialOrder {
		if name != first {
			order = append(order, name)
		}
	}

	var lastErr error
	for _, name := range order {
		c, ok := registry[name]
		if !ok {
			continue
		}
		if err := c.Load(s, rw); err == nil {
			return nil
		} else {
			lastErr = err
		}
		if _, err := rw.Seek(start, meshio.SeekSet); err != nil {
			return scene.NewError(scene.ErrIO, "format.Load", err)
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no codec recognized the stream")
	}
	return scene.NewError(scene.ErrFormat, "format.Load", lastErr)
}

// probeOrder returns the name of the single codec whose Probe matches
// peek, or "" if none (or more than one, which should not happen with a
// well-behaved set of magic numbers) claims it.
func probeOrder(peek []byte) string {

	match := ""
	for _, name := range trialOrder {
		c, ok := registry[name]
		if !ok {
			continue
		}
		if c.Probe(peek) {
			if match != "" {
				return ""
			}
			match = name
		}
	}
	return match
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

// Save selects a codec by explicit format (if not scene.Auto), else by
// path's suffix matched case-insensitively, else OBJ, and writes s to rw
// in that format.
func Save(s *scene.Scene, rw meshio.IO, explicit scene.SaveFormat, path string) error {

	var name string
	switch explicit {
	case scene.OBJ:
		name = "obj"
	case scene.JTF:
		name = "jtf"
	case scene.GLTF:
		name = "gltf"
	case scene.TDS:
		name = "3ds"
	case scene.STL:
		name = "stl"
	case scene.Auto:
		if c, ok := suffixIndex()[strings.ToLower(strings.TrimPrefix(ext(path), "."))]; ok {
			name = c.Name()
		} else {
			name = "obj"
		}
	}

	c, ok := registry[name]
	if !ok {
		return scene.NewError(scene.ErrUnsupported, "format.Save",
			fmt.Errorf("no codec registered for format %q", name))
	}
	if err := c.Save(s, rw); err != nil {
		return scene.NewError(scene.ErrIO, "format.Save", err)
	}
	return nil
}

func ext(path string) string {

	for i := len(path) - 1; i >= 0 && path[i] != '/' && path[i] != '\\'; i-- {
		if path[i] == '.' {
			return path[i:]
		}
	}
	return ""
}
