package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtsiomb/meshfile/meshio"
	"github.com/jtsiomb/meshfile/scene"
)

type stubCodec struct {
	name     string
	suffixes []string
	magic    byte
	loadErr  error
	loaded   *bool
}

func (c stubCodec) Name() string       { return c.name }
func (c stubCodec) Suffixes() []string { return c.suffixes }
func (c stubCodec) Probe(peek []byte) bool {
	return len(peek) > 0 && peek[0] == c.magic
}
func (c stubCodec) Load(s *scene.Scene, rw meshio.IO) error {
	if c.loaded != nil {
		*c.loaded = true
	}
	return c.loadErr
}
func (c stubCodec) Save(s *scene.Scene, rw meshio.IO) error {
	_, err := rw.Write([]byte(c.name))
	return err
}

func resetRegistry(t *testing.T) {
	saved := registry
	registry = map[string]Codec{}
	t.Cleanup(func() { registry = saved })
}

func TestDispatcher_SaveSelectsByExplicitFormat(t *testing.T) {

	resetRegistry(t)
	Register(stubCodec{name: "obj"})
	Register(stubCodec{name: "gltf"})

	rw := meshio.NewMemIO(nil)
	require.NoError(t, Save(scene.New(), rw, scene.GLTF, ""))
	assert.Equal(t, "gltf", string(rw.Bytes()))
}

func TestDispatcher_SaveSelectsBySuffixWhenAuto(t *testing.T) {

	resetRegistry(t)
	Register(stubCodec{name: "stl", suffixes: []string{"stl"}})
	Register(stubCodec{name: "obj", suffixes: []string{"obj"}})

	rw := meshio.NewMemIO(nil)
	require.NoError(t, Save(scene.New(), rw, scene.Auto, "model.STL"))
	assert.Equal(t, "stl", string(rw.Bytes()))
}

func TestDispatcher_SaveFallsBackToOBJ(t *testing.T) {

	resetRegistry(t)
	Register(stubCodec{name: "obj", suffixes: []string{"obj"}})

	rw := meshio.NewMemIO(nil)
	require.NoError(t, Save(scene.New(), rw, scene.Auto, "model.unknown"))
	assert.Equal(t, "obj", string(rw.Bytes()))
}

func TestDispatcher_LoadTriesProbedCodecFirst(t *testing.T) {

	resetRegistry(t)
	var threeDSLoaded, objLoaded bool
	Register(stubCodec{name: "3ds", magic: 0xAA, loaded: &threeDSLoaded})
	Register(stubCodec{name: "obj", loaded: &objLoaded})

	rw := meshio.NewMemIO([]byte{0xAA, 0, 0, 0})
	require.NoError(t, Load(scene.New(), rw))

	assert.True(t, threeDSLoaded)
	assert.False(t, objLoaded)
}

func TestDispatcher_LoadFallsThroughOnError(t *testing.T) {

	resetRegistry(t)
	var objLoaded bool
	Register(stubCodec{name: "3ds", magic: 0xAA, loadErr: assert.AnError})
	Register(stubCodec{name: "obj", loaded: &objLoaded})

	rw := meshio.NewMemIO([]byte{0xAA, 0, 0, 0})
	require.NoError(t, Load(scene.New(), rw))

	assert.True(t, objLoaded)
}
