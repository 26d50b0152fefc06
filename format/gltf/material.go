package gltf

import (
	"encoding/json"

	"github.com/jtsiomb/meshfile/scene"
)

// loadMaterial maps a glTF material onto the fixed attribute-slot model:
// pbrMetallicRoughness's baseColorFactor/metallicFactor/roughnessFactor
// feed Color/Metallic/Roughness (roughness additionally derives a
// Phong-style Shininess), emissiveFactor feeds Emissive, and the
// KHR_materials_pbrSpecularGlossiness / KHR_materials_unlit /
// KHR_materials_specular / KHR_materials_ior / KHR_materials_transmission
// extensions (when present) override or extend that mapping.
func (d *document) loadMaterial(m matDesc) *scene.Material {

	mtl := scene.NewMaterial(m.Name)

	if pbr := m.PbrMetallicRoughness; pbr != nil {
		if pbr.BaseColorFactor != nil {
			c := pbr.BaseColorFactor
			mtl.Attr[scene.Color].Value.X = c[0]
			mtl.Attr[scene.Color].Value.Y = c[1]
			mtl.Attr[scene.Color].Value.Z = c[2]
			mtl.Attr[scene.Alpha].Value.X = c[3]
		}
		if pbr.MetallicFactor != nil {
			mtl.Attr[scene.Metallic].Value.X = *pbr.MetallicFactor
		} else {
			mtl.Attr[scene.Metallic].Value.X = 1
		}
		roughness := float32(1)
		if pbr.RoughnessFactor != nil {
			roughness = *pbr.RoughnessFactor
		}
		mtl.Attr[scene.Roughness].Value.X = roughness
		mtl.Attr[scene.Shininess].Value.X = (1-roughness)*100 + 1

		if pbr.BaseColorTexture != nil {
			d.attachTexture(&mtl.Attr[scene.Color], pbr.BaseColorTexture)
		}
		if pbr.MetallicRoughnessTexture != nil {
			d.attachTexture(&mtl.Attr[scene.Metallic], pbr.MetallicRoughnessTexture)
			d.attachTexture(&mtl.Attr[scene.Roughness], pbr.MetallicRoughnessTexture)
		}
	}

	if m.EmissiveFactor != nil {
		e := m.EmissiveFactor
		mtl.Attr[scene.Emissive].Value.X = e[0]
		mtl.Attr[scene.Emissive].Value.Y = e[1]
		mtl.Attr[scene.Emissive].Value.Z = e[2]
	}
	if m.NormalTexture != nil {
		d.attachTexture(&mtl.Attr[scene.Bump], m.NormalTexture)
	}
	if m.EmissiveTexture != nil {
		d.attachTexture(&mtl.Attr[scene.Emissive], m.EmissiveTexture)
	}

	if raw, ok := m.Extensions["KHR_materials_pbrSpecularGlossiness"]; ok {
		d.applySpecularGlossiness(mtl, raw)
	}
	if _, ok := m.Extensions["KHR_materials_unlit"]; ok {
		mtl.Attr[scene.Roughness].Value.X = 1
		mtl.Attr[scene.Metallic].Value.X = 0
	}
	if raw, ok := m.Extensions["KHR_materials_specular"]; ok {
		d.applySpecular(mtl, raw)
	}
	if raw, ok := m.Extensions["KHR_materials_ior"]; ok {
		var ext khrIorExt
		if json.Unmarshal(raw, &ext) == nil && ext.IOR != nil {
			mtl.Attr[scene.IOR].Value.X = *ext.IOR
		}
	}
	if raw, ok := m.Extensions["KHR_materials_transmission"]; ok {
		d.applyTransmission(mtl, raw)
	}

	return mtl
}

// applySpecular maps KHR_materials_specular's strength factor and RGB
// tint onto the Specular slot as factor*color per channel.
func (d *document) applySpecular(mtl *scene.Material, raw json.RawMessage) {

	var ext khrSpecularExt
	if json.Unmarshal(raw, &ext) != nil {
		return
	}

	factor := float32(1)
	if ext.SpecularFactor != nil {
		factor = *ext.SpecularFactor
	}
	color := [3]float32{1, 1, 1}
	if ext.SpecularColorFactor != nil {
		color = *ext.SpecularColorFactor
	}
	mtl.Attr[scene.Specular].Value.X = factor * color[0]
	mtl.Attr[scene.Specular].Value.Y = factor * color[1]
	mtl.Attr[scene.Specular].Value.Z = factor * color[2]

	if ext.SpecularTexture != nil {
		d.attachTexture(&mtl.Attr[scene.Specular], ext.SpecularTexture)
	}
}

// applyTransmission maps KHR_materials_transmission's factor and texture
// onto the Transmit slot.
func (d *document) applyTransmission(mtl *scene.Material, raw json.RawMessage) {

	var ext khrTransmissionExt
	if json.Unmarshal(raw, &ext) != nil {
		return
	}
	if ext.TransmissionFactor != nil {
		mtl.Attr[scene.Transmit].Value.X = *ext.TransmissionFactor
	}
	if ext.TransmissionTexture != nil {
		d.attachTexture(&mtl.Attr[scene.Transmit], ext.TransmissionTexture)
	}
}

type specGlossExt struct {
	DiffuseFactor             *[4]float32 `json:"diffuseFactor"`
	DiffuseTexture            *textureRef `json:"diffuseTexture"`
	SpecularFactor            *[3]float32 `json:"specularFactor"`
	GlossinessFactor          *float32    `json:"glossinessFactor"`
	SpecularGlossinessTexture *textureRef `json:"specularGlossinessTexture"`
}

// applySpecularGlossiness overrides a material's Color/Specular/Roughness
// slots with the KHR_materials_pbrSpecularGlossiness fallback model:
// glossiness is the inverse of roughness.
func (d *document) applySpecularGlossiness(mtl *scene.Material, raw json.RawMessage) {

	var ext specGlossExt
	if json.Unmarshal(raw, &ext) != nil {
		return
	}

	if ext.DiffuseFactor != nil {
		c := ext.DiffuseFactor
		mtl.Attr[scene.Color].Value.X = c[0]
		mtl.Attr[scene.Color].Value.Y = c[1]
		mtl.Attr[scene.Color].Value.Z = c[2]
		mtl.Attr[scene.Alpha].Value.X = c[3]
	}
	if ext.SpecularFactor != nil {
		c := ext.SpecularFactor
		mtl.Attr[scene.Specular].Value.X = c[0]
		mtl.Attr[scene.Specular].Value.Y = c[1]
		mtl.Attr[scene.Specular].Value.Z = c[2]
	}
	if ext.GlossinessFactor != nil {
		mtl.Attr[scene.Roughness].Value.X = 1 - *ext.GlossinessFactor
	}
	if ext.DiffuseTexture != nil {
		d.attachTexture(&mtl.Attr[scene.Color], ext.DiffuseTexture)
	}
}

// attachTexture sets attr's map filename from the image referenced by
// ref.Index, when that image is a plain URI (embedded/bufferView images
// are not extracted to files by this codec), and applies ref's
// KHR_texture_transform offset/scale/rotation, if present, to the map's
// UV transform.
func (d *document) attachTexture(attr *scene.MtlAttr, ref *textureRef) {

	ti := ref.Index
	if ti < 0 || ti >= len(d.Textures) {
		return
	}
	tex := d.Textures[ti]
	if tex.Source == nil || *tex.Source >= len(d.Images) {
		return
	}
	img := d.Images[*tex.Source]
	if img.Uri == "" {
		return
	}

	attr.Map = scene.NewTexMap()
	attr.Map.File = img.Uri

	if tex.Sampler != nil && *tex.Sampler < len(d.Samplers) {
		smp := d.Samplers[*tex.Sampler]
		if smp.WrapS != nil && *smp.WrapS == wrapClampToEdge {
			attr.Map.WrapS = scene.WrapClamp
		}
		if smp.WrapT != nil && *smp.WrapT == wrapClampToEdge {
			attr.Map.WrapT = scene.WrapClamp
		}
	}

	if raw, ok := ref.Extensions["KHR_texture_transform"]; ok {
		var t khrTextureTransformExt
		if json.Unmarshal(raw, &t) == nil {
			if t.Offset != nil {
				attr.Map.Offset.X = t.Offset[0]
				attr.Map.Offset.Y = t.Offset[1]
			}
			if t.Scale != nil {
				attr.Map.Scale.X = t.Scale[0]
				attr.Map.Scale.Y = t.Scale[1]
			}
			if t.Rotation != nil {
				attr.Map.Rotation = *t.Rotation
			}
		}
	}
}

const wrapClampToEdge = 33071
