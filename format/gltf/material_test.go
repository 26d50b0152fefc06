package gltf

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtsiomb/meshfile/scene"
)

func rawExt(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestLoadMaterial_RoughnessDerivesShininess(t *testing.T) {

	d := &document{}
	roughness := float32(0.25)
	m := matDesc{PbrMetallicRoughness: &pbrDesc{RoughnessFactor: &roughness}}

	mtl := d.loadMaterial(m)
	assert.InDelta(t, (1-0.25)*100+1, mtl.Get(scene.Shininess).Value.X, 1e-5)
}

func TestLoadMaterial_KHRSpecular(t *testing.T) {

	d := &document{}
	factor := float32(0.5)
	m := matDesc{
		Extensions: map[string]json.RawMessage{
			"KHR_materials_specular": rawExt(t, khrSpecularExt{
				SpecularFactor:      &factor,
				SpecularColorFactor: &[3]float32{1, 0.5, 0.25},
			}),
		},
	}

	mtl := d.loadMaterial(m)
	spec := mtl.Get(scene.Specular).Value
	assert.InDelta(t, 0.5, spec.X, 1e-5)
	assert.InDelta(t, 0.25, spec.Y, 1e-5)
	assert.InDelta(t, 0.125, spec.Z, 1e-5)
}

func TestLoadMaterial_KHRIor(t *testing.T) {

	d := &document{}
	ior := float32(1.8)
	m := matDesc{
		Extensions: map[string]json.RawMessage{
			"KHR_materials_ior": rawExt(t, khrIorExt{IOR: &ior}),
		},
	}

	mtl := d.loadMaterial(m)
	assert.InDelta(t, 1.8, mtl.Get(scene.IOR).Value.X, 1e-5)
}

func TestLoadMaterial_KHRTransmission(t *testing.T) {

	d := &document{}
	factor := float32(0.75)
	m := matDesc{
		Extensions: map[string]json.RawMessage{
			"KHR_materials_transmission": rawExt(t, khrTransmissionExt{TransmissionFactor: &factor}),
		},
	}

	mtl := d.loadMaterial(m)
	assert.InDelta(t, 0.75, mtl.Get(scene.Transmit).Value.X, 1e-5)
}

func TestLoadMaterial_MetallicRoughnessTextureAttachesBothSlots(t *testing.T) {

	d := &document{
		Textures: []textureDesc{{Source: intPtr(0)}},
		Images:   []imageDesc{{Uri: "mr.png"}},
	}
	m := matDesc{
		PbrMetallicRoughness: &pbrDesc{
			MetallicRoughnessTexture: &textureRef{Index: 0},
		},
	}

	mtl := d.loadMaterial(m)
	require.NotNil(t, mtl.Get(scene.Metallic).Map)
	require.NotNil(t, mtl.Get(scene.Roughness).Map)
	assert.Equal(t, "mr.png", mtl.Get(scene.Metallic).Map.File)
	assert.Equal(t, "mr.png", mtl.Get(scene.Roughness).Map.File)
}

func TestAttachTexture_KHRTextureTransform(t *testing.T) {

	d := &document{
		Textures: []textureDesc{{Source: intPtr(0)}},
		Images:   []imageDesc{{Uri: "tex.png"}},
	}
	ref := &textureRef{
		Index: 0,
		Extensions: map[string]json.RawMessage{
			"KHR_texture_transform": rawExt(t, khrTextureTransformExt{
				Offset: &[2]float32{0.1, 0.2},
				Scale:  &[2]float32{2, 3},
			}),
		},
	}

	var attr scene.MtlAttr
	d.attachTexture(&attr, ref)

	require.NotNil(t, attr.Map)
	assert.InDelta(t, 0.1, attr.Map.Offset.X, 1e-5)
	assert.InDelta(t, 0.2, attr.Map.Offset.Y, 1e-5)
	assert.InDelta(t, 2, attr.Map.Scale.X, 1e-5)
	assert.InDelta(t, 3, attr.Map.Scale.Y, 1e-5)
}

func intPtr(i int) *int { return &i }
